package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newswire/types"
)

// RegisterPublisherRoutes registers publisher endpoints.
func RegisterPublisherRoutes(r *gin.Engine, deps *Deps) {
	g := r.Group("/api/publishers")
	g.GET("", func(c *gin.Context) { c.JSON(http.StatusOK, deps.Store.ListPublishers()) })
	g.GET("/:id", func(c *gin.Context) { handleGetPublisher(c, deps) })
	g.POST("", func(c *gin.Context) { handleCreatePublisher(c, deps) })
}

func handleGetPublisher(c *gin.Context, deps *Deps) {
	p := deps.Store.GetPublisher(c.Param("id"))
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "publisher not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func handleCreatePublisher(c *gin.Context, deps *Deps) {
	var p types.Publisher
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if p.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if p.ID == "" {
		p.ID = types.GenerateID(p.Name)
	}
	if err := deps.Store.SavePublisher(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}
