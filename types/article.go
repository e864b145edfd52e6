package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Role identifies what a user is allowed to do with articles.
const (
	RoleReader     = "reader"
	RoleEditor     = "editor"
	RoleJournalist = "journalist"
)

// Article represents a news article submission.
// Approved flips from false to true when an editor signs off; that flip is
// what drives the notification pipeline.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	AuthorID    string    `json:"author_id"`
	PublisherID string    `json:"publisher_id,omitempty"`
	ImageKey    string    `json:"image_key,omitempty"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsIndependent reports whether the article has no owning publisher.
func (a *Article) IsIndependent() bool {
	return a.PublisherID == ""
}

// Publisher groups journalists under a shared masthead.
type Publisher struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	JournalistIDs []string  `json:"journalist_ids,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Reader is a user who can subscribe to publishers and journalists.
// Email is the delivery address for approval notifications.
type Reader struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// GenerateID creates a stable short ID from a seed string (title, URL, ...).
func GenerateID(seed string) string {
	hash := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(hash[:])[:16]
}
