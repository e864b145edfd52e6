package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterImportRoutes registers the feed import endpoint.
func RegisterImportRoutes(r *gin.Engine, deps *Deps) {
	g := r.Group("/api/imports")
	g.POST("/feed", func(c *gin.Context) { handleImportFeed(c, deps) })
}

type importRequest struct {
	FeedURL     string `json:"feed_url"`
	AuthorID    string `json:"author_id"`
	PublisherID string `json:"publisher_id"`
}

// handleImportFeed pulls a feed into unapproved drafts. The fetch and
// extraction run in the background; the request returns 202 immediately.
func handleImportFeed(c *gin.Context, deps *Deps) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FeedURL == "" || req.AuthorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "feed_url and author_id are required"})
		return
	}

	go func() {
		result, err := deps.Importer.Run(req.FeedURL, req.AuthorID, req.PublisherID)
		if err != nil {
			log.Printf("imports: feed %s failed: %v", req.FeedURL, err)
			return
		}
		log.Printf("imports: feed %s imported %d draft(s), skipped %d",
			req.FeedURL, len(result.Imported), result.Skipped)
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "import started"})
}
