// Package subscriptions resolves a newly approved article to the set of
// reader emails that should be notified. Reads are snapshots: a subscribe or
// unsubscribe racing with a notification may or may not be included, which
// is acceptable for this pipeline.
package subscriptions

import (
	"context"
	"sort"

	"newswire/types"
)

// Store is the queryable subscription relation. Implementations must be safe
// for concurrent use; reads take no locks visible to callers.
type Store interface {
	SubscribePublisher(ctx context.Context, publisherID, email string) error
	UnsubscribePublisher(ctx context.Context, publisherID, email string) error
	SubscribeJournalist(ctx context.Context, journalistID, email string) error
	UnsubscribeJournalist(ctx context.Context, journalistID, email string) error

	PublisherSubscribers(ctx context.Context, publisherID string) ([]string, error)
	JournalistSubscribers(ctx context.Context, journalistID string) ([]string, error)
}

// Index computes notification audiences from a Store.
type Index struct {
	store Store
}

// NewIndex creates an Index over the given store.
func NewIndex(store Store) *Index {
	return &Index{store: store}
}

// Recipients returns the deduplicated union of readers subscribed to the
// article's publisher and readers subscribed to its author. No subscribers
// is an empty slice, not an error. The result is sorted for stable output.
func (ix *Index) Recipients(ctx context.Context, article *types.Article) ([]string, error) {
	seen := make(map[string]bool)

	journo, err := ix.store.JournalistSubscribers(ctx, article.AuthorID)
	if err != nil {
		return nil, err
	}
	for _, email := range journo {
		if email != "" {
			seen[email] = true
		}
	}

	if article.PublisherID != "" {
		pub, err := ix.store.PublisherSubscribers(ctx, article.PublisherID)
		if err != nil {
			return nil, err
		}
		for _, email := range pub {
			if email != "" {
				seen[email] = true
			}
		}
	}

	out := make([]string, 0, len(seen))
	for email := range seen {
		out = append(out, email)
	}
	sort.Strings(out)
	return out, nil
}
