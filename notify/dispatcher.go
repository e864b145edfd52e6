// Package notify formats and sends per-recipient emails for newly approved
// articles. Delivery is best-effort and fire-and-report: a rejected address
// never stops the rest of the batch, and nothing here retries. Uniqueness of
// delivery is the caller's job; calling Notify twice sends twice.
package notify

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"newswire/config"
	"newswire/types"
)

// Mailer is the external mail transport. Implementations report success or
// failure per message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Dispatcher builds and sends approval notifications.
type Dispatcher struct {
	mailer  Mailer
	baseURL string
}

// NewDispatcher creates a Dispatcher sending through the given transport.
// baseURL is the site root used to build article links.
func NewDispatcher(mailer Mailer, baseURL string) *Dispatcher {
	return &Dispatcher{
		mailer:  mailer,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// ArticleURL builds the absolute detail link for an article.
func (d *Dispatcher) ArticleURL(article *types.Article) string {
	return fmt.Sprintf("%s/articles/%s", d.baseURL, article.ID)
}

// Notify sends one message per recipient and aggregates per-recipient
// failures into the report. An empty recipient list is a no-op.
// scope is the publisher name, or "Independent" for unaffiliated articles.
func (d *Dispatcher) Notify(ctx context.Context, article *types.Article, authorName, scope string, recipients []string) types.DispatchReport {
	report := types.DispatchReport{ArticleID: article.ID}
	if len(recipients) == 0 {
		return report
	}

	subject := fmt.Sprintf("New Article: %s", article.Title)
	body := fmt.Sprintf(
		"Title: %s\nAuthor: %s\nPublisher: %s\n\nExcerpt:\n%s\n\nRead more: %s\n",
		article.Title, authorName, scope,
		BuildExcerpt(article.Content, config.ExcerptLimit),
		d.ArticleURL(article),
	)

	for _, to := range recipients {
		if err := d.mailer.Send(ctx, to, subject, body); err != nil {
			log.Printf("notify: delivery to %s failed: %v", to, err)
			report.Failed = append(report.Failed, types.DispatchFailure{
				Email:  to,
				Reason: err.Error(),
			})
			continue
		}
		report.Sent = append(report.Sent, to)
	}

	return report
}

// BuildExcerpt trims text to at most limit characters, cutting at the last
// word boundary and appending an ellipsis when truncated. The limit counts
// runes, not bytes, so multibyte content is never cut mid-character.
func BuildExcerpt(text string, limit int) string {
	cleaned := strings.TrimSpace(text)
	if utf8.RuneCountInString(cleaned) <= limit {
		return cleaned
	}

	cut := string([]rune(cleaned)[:limit])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
