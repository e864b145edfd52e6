// Package imports pulls an RSS/Atom feed and files its items as unapproved
// drafts for a journalist. Imported drafts go through the same editorial
// approval pipeline as hand-written ones.
package imports

import (
	"fmt"
	"log"
	"sync"

	readability "github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"

	"newswire/config"
	"newswire/store"
	"newswire/types"
)

// Result summarizes one feed import.
type Result struct {
	FeedURL  string   `json:"feed_url"`
	Imported []string `json:"imported"`
	Skipped  int      `json:"skipped"`
}

// Importer fetches feeds and files drafts into the article store.
type Importer struct {
	store  *store.Store
	parser *gofeed.Parser
}

// NewImporter creates an Importer writing into the given store.
func NewImporter(st *store.Store) *Importer {
	return &Importer{store: st, parser: gofeed.NewParser()}
}

// Run fetches feedURL, extracts readable text for up to ImportMaxItems items
// with a worker pool, and saves each as an unapproved draft authored by
// authorID. Items whose content cannot be extracted fall back to the feed
// description; items with neither are skipped.
func (im *Importer) Run(feedURL, authorID, publisherID string) (*Result, error) {
	feed, err := im.parser.ParseURL(feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}

	count := len(feed.Items)
	if count > config.ImportMaxItems {
		count = config.ImportMaxItems
	}

	drafts := make([]*types.Article, count)
	var wg sync.WaitGroup
	sem := make(chan struct{}, config.ImportWorkerCount)

	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(idx int, item *gofeed.Item) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			drafts[idx] = draftFromItem(item, authorID, publisherID)
		}(i, feed.Items[i])
	}
	wg.Wait()

	result := &Result{FeedURL: feedURL}
	for _, draft := range drafts {
		if draft == nil {
			result.Skipped++
			continue
		}
		if _, _, err := im.store.SaveArticle(draft); err != nil {
			log.Printf("imports: saving draft %q failed: %v", draft.Title, err)
			result.Skipped++
			continue
		}
		result.Imported = append(result.Imported, draft.ID)
	}

	return result, nil
}

// draftFromItem builds an unapproved draft from a feed item, or nil when the
// item has no usable text.
func draftFromItem(item *gofeed.Item, authorID, publisherID string) *types.Article {
	if item == nil || item.Title == "" {
		return nil
	}

	content := ""
	if item.Link != "" {
		extracted, err := readability.FromURL(item.Link, config.ExtractTimeout)
		if err != nil {
			log.Printf("imports: extraction failed for %s: %v", item.Link, err)
		} else {
			content = extracted.TextContent
		}
	}
	if content == "" {
		content = item.Description
	}
	if content == "" {
		content = item.Content
	}
	if content == "" {
		return nil
	}

	seed := item.GUID
	if seed == "" {
		seed = item.Link
	}
	if seed == "" {
		seed = item.Title
	}

	return &types.Article{
		ID:          types.GenerateID(seed),
		Title:       item.Title,
		Content:     content,
		AuthorID:    authorID,
		PublisherID: publisherID,
		Approved:    false,
	}
}
