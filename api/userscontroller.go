package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newswire/types"
)

// RegisterUserRoutes registers user (reader/editor/journalist) endpoints.
// Authentication is handled upstream; these endpoints only manage records.
func RegisterUserRoutes(r *gin.Engine, deps *Deps) {
	g := r.Group("/api/users")
	g.GET("/:id", func(c *gin.Context) { handleGetUser(c, deps) })
	g.POST("", func(c *gin.Context) { handleCreateUser(c, deps) })
}

func handleGetUser(c *gin.Context, deps *Deps) {
	u := deps.Store.GetReader(c.Param("id"))
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

func handleCreateUser(c *gin.Context, deps *Deps) {
	var u types.Reader
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if u.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}
	switch u.Role {
	case types.RoleReader, types.RoleEditor, types.RoleJournalist:
	case "":
		u.Role = types.RoleReader
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role " + u.Role})
		return
	}
	if u.ID == "" {
		u.ID = types.GenerateID(u.Username)
	}
	if err := deps.Store.SaveReader(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, u)
}
