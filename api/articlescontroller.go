package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"newswire/pipeline"
	"newswire/types"
)

// RegisterArticleRoutes registers article-related routes.
func RegisterArticleRoutes(r *gin.Engine, deps *Deps) {
	g := r.Group("/api/articles")
	g.GET("", func(c *gin.Context) { handleListArticles(c, deps) })
	g.GET("/:id", func(c *gin.Context) { handleGetArticle(c, deps) })
	g.POST("", func(c *gin.Context) { handleCreateArticle(c, deps) })
	g.PUT("/:id", func(c *gin.Context) { handleUpdateArticle(c, deps) })
	g.POST("/:id/approve", func(c *gin.Context) { handleSetApproval(c, deps, true) })
	g.POST("/:id/revoke", func(c *gin.Context) { handleSetApproval(c, deps, false) })
	g.PUT("/:id/image", func(c *gin.Context) { handlePutImage(c, deps) })
	g.GET("/:id/image", func(c *gin.Context) { handleGetImage(c, deps) })
}

type articleRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	AuthorID    string `json:"author_id"`
	PublisherID string `json:"publisher_id"`
	Approved    bool   `json:"approved"`
}

type articleUpdateRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Approved *bool   `json:"approved"`
}

func handleListArticles(c *gin.Context, deps *Deps) {
	approvedOnly := c.Query("approved") == "true"
	c.JSON(http.StatusOK, deps.Store.ListArticles(approvedOnly))
}

func handleGetArticle(c *gin.Context, deps *Deps) {
	article := deps.Store.GetArticle(c.Param("id"))
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	c.JSON(http.StatusOK, article)
}

// handleCreateArticle files a new article. Articles created already approved
// count as a rising edge and fire the pipeline immediately.
func handleCreateArticle(c *gin.Context, deps *Deps) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" || req.Content == "" || req.AuthorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, content, and author_id are required"})
		return
	}

	article := &types.Article{
		ID:          req.ID,
		Title:       req.Title,
		Content:     req.Content,
		AuthorID:    req.AuthorID,
		PublisherID: req.PublisherID,
		Approved:    req.Approved,
	}
	if article.ID == "" {
		article.ID = types.GenerateID(req.AuthorID + ":" + req.Title)
	}

	saved := commitAndFire(c, deps, article)
	if saved == nil {
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// handleUpdateArticle applies a partial update. Editing fields other than
// approved never fires the pipeline; flipping approved on does.
func handleUpdateArticle(c *gin.Context, deps *Deps) {
	existing := deps.Store.GetArticle(c.Param("id"))
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	var req articleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Content != nil {
		existing.Content = *req.Content
	}
	if req.Approved != nil {
		existing.Approved = *req.Approved
	}

	saved := commitAndFire(c, deps, existing)
	if saved == nil {
		return
	}
	c.JSON(http.StatusOK, saved)
}

func handleSetApproval(c *gin.Context, deps *Deps, approved bool) {
	existing := deps.Store.GetArticle(c.Param("id"))
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	existing.Approved = approved
	saved := commitAndFire(c, deps, existing)
	if saved == nil {
		return
	}
	c.JSON(http.StatusOK, saved)
}

// commitAndFire saves the article and, on a genuine approval edge, hands the
// event to the dispatch path. The save result is what the caller sees;
// dispatch outcome never changes the response.
func commitAndFire(c *gin.Context, deps *Deps, article *types.Article) *types.Article {
	saved, prevApproved, err := deps.Store.SaveArticle(article)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil
	}

	event, err := pipeline.Detect(prevApproved, saved, time.Now())
	if err != nil {
		// Malformed state: abstain from dispatch, keep the committed write.
		log.Printf("api: approval detection for %s abstained: %v", saved.ID, err)
		return saved
	}
	if event != nil {
		deps.Fire(c.Request.Context(), *event)
	}
	return saved
}

func handlePutImage(c *gin.Context, deps *Deps) {
	if deps.Images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	article := deps.Store.GetArticle(c.Param("id"))
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	key, err := deps.Images.Put(c.Request.Context(), article.ID, c.Request.Body, c.ContentType())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	article.ImageKey = key
	saved := commitAndFire(c, deps, article)
	if saved == nil {
		return
	}
	c.JSON(http.StatusOK, saved)
}

func handleGetImage(c *gin.Context, deps *Deps) {
	if deps.Images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	article := deps.Store.GetArticle(c.Param("id"))
	if article == nil || article.ImageKey == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		return
	}

	body, err := deps.Images.Get(c.Request.Context(), article.ID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	defer body.Close()
	c.DataFromReader(http.StatusOK, -1, "application/octet-stream", body, nil)
}
