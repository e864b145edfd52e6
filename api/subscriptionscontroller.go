package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSubscriptionRoutes registers subscribe/unsubscribe endpoints for
// publishers and journalists.
func RegisterSubscriptionRoutes(r *gin.Engine, deps *Deps) {
	g := r.Group("/api/subscriptions")
	g.POST("/publishers/:id", func(c *gin.Context) { handleSubscription(c, deps, "publisher", true) })
	g.DELETE("/publishers/:id", func(c *gin.Context) { handleSubscription(c, deps, "publisher", false) })
	g.POST("/journalists/:id", func(c *gin.Context) { handleSubscription(c, deps, "journalist", true) })
	g.DELETE("/journalists/:id", func(c *gin.Context) { handleSubscription(c, deps, "journalist", false) })
}

type subscriptionRequest struct {
	Email string `json:"email"`
}

func handleSubscription(c *gin.Context, deps *Deps, kind string, subscribe bool) {
	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	id := c.Param("id")
	ctx := c.Request.Context()

	var err error
	switch {
	case kind == "publisher" && subscribe:
		err = deps.Subs.SubscribePublisher(ctx, id, req.Email)
	case kind == "publisher":
		err = deps.Subs.UnsubscribePublisher(ctx, id, req.Email)
	case subscribe:
		err = deps.Subs.SubscribeJournalist(ctx, id, req.Email)
	default:
		err = deps.Subs.UnsubscribeJournalist(ctx, id, req.Email)
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	status := "subscribed"
	if !subscribe {
		status = "unsubscribed"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, kind: id, "email": req.Email})
}
