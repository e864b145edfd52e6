// Package social posts a short status update to X when an article is
// approved. The adapter is an isolated failure domain: every transport
// error, bad status, or malformed response collapses to a false return,
// so a broken or slow social endpoint can never affect the approval that
// triggered it. An empty bearer token disables the feature entirely.
package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"unicode/utf8"

	"newswire/config"
	"newswire/types"
)

// Poster sends approval announcements to the configured social endpoint.
type Poster struct {
	token      string
	endpoint   string
	httpClient *http.Client
}

// NewPoster creates a Poster. An empty token means posting is disabled and
// Post will return false without any network call.
func NewPoster(token, endpoint string) *Poster {
	if endpoint == "" {
		endpoint = config.DefaultTweetEndpoint
	}
	return &Poster{
		token:    token,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: config.SocialTimeout,
		},
	}
}

// Enabled reports whether a credential is configured.
func (p *Poster) Enabled() bool {
	return p.token != ""
}

// Post publishes a short announcement for the article. link is the absolute
// article URL. It returns true only when the endpoint acknowledges the post;
// every failure mode returns false and is logged, never propagated.
func (p *Poster) Post(ctx context.Context, article *types.Article, authorName, scope, link string) bool {
	if !p.Enabled() {
		return false
	}
	return p.PostText(ctx, fmt.Sprintf("NEW: %s - %s (%s) %s", article.Title, authorName, scope, link))
}

// PostText publishes raw status text, truncated to the platform cap.
func (p *Poster) PostText(ctx context.Context, text string) bool {
	if !p.Enabled() {
		return false
	}

	// The platform cap counts characters; cutting bytes would split a rune.
	if utf8.RuneCountInString(text) > config.MaxPostLength {
		text = string([]rune(text)[:config.MaxPostLength])
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		log.Printf("social: marshal failed: %v", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		log.Printf("social: building request failed: %v", err)
		return false
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Printf("social: post failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("social: endpoint returned %d", resp.StatusCode)
		return false
	}

	return true
}
