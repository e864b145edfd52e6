package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"newswire/images"
	"newswire/imports"
	"newswire/store"
	"newswire/subscriptions"
	"newswire/types"
)

// Deps holds everything the HTTP handlers need. Fire hands a detected
// approval transition to the dispatch path (in-process or Kafka); it must
// never fail the request, so it returns nothing.
type Deps struct {
	Store    *store.Store
	Subs     subscriptions.Store
	Importer *imports.Importer
	// Images is nil when no bucket is configured; image endpoints then 503.
	Images *images.Store
	Fire   func(ctx context.Context, event types.ApprovalEvent)
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(deps *Deps) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	RegisterArticleRoutes(r, deps)
	RegisterSubscriptionRoutes(r, deps)
	RegisterPublisherRoutes(r, deps)
	RegisterUserRoutes(r, deps)
	RegisterImportRoutes(r, deps)
	RegisterHealthRoutes(r)
	return r
}

// RegisterHealthRoutes registers the liveness endpoint.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})
}
