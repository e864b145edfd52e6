package subscriptions

import (
	"context"
	"reflect"
	"testing"

	"newswire/types"
)

func TestRecipientsUnionDedup(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.SubscribePublisher(ctx, "pub1", "alice@test.com")
	store.SubscribePublisher(ctx, "pub1", "bob@test.com")
	store.SubscribeJournalist(ctx, "journo1", "alice@test.com")
	store.SubscribeJournalist(ctx, "journo1", "carol@test.com")

	index := NewIndex(store)
	got, err := index.Recipients(ctx, &types.Article{ID: "a1", AuthorID: "journo1", PublisherID: "pub1"})
	if err != nil {
		t.Fatalf("recipients failed: %v", err)
	}

	want := []string{"alice@test.com", "bob@test.com", "carol@test.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRecipientsIndependentArticleSkipsPublisher(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.SubscribePublisher(ctx, "pub1", "pubonly@test.com")
	store.SubscribeJournalist(ctx, "journo1", "fan@test.com")

	index := NewIndex(store)
	got, err := index.Recipients(ctx, &types.Article{ID: "a1", AuthorID: "journo1"})
	if err != nil {
		t.Fatalf("recipients failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"fan@test.com"}) {
		t.Fatalf("independent article must only reach journalist subscribers, got %v", got)
	}
}

func TestRecipientsEmptyIsNotAnError(t *testing.T) {
	index := NewIndex(NewMemoryStore())

	got, err := index.Recipients(context.Background(), &types.Article{ID: "a1", AuthorID: "journo1", PublisherID: "pub1"})
	if err != nil {
		t.Fatalf("expected empty set, got error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}
}

func TestUnsubscribeRemovesReader(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.SubscribePublisher(ctx, "pub1", "alice@test.com")
	store.UnsubscribePublisher(ctx, "pub1", "alice@test.com")

	subs, err := store.PublisherSubscribers(ctx, "pub1")
	if err != nil {
		t.Fatalf("subscribers failed: %v", err)
	}
	if len(subs) != 0 {
		t.Fatalf("expected no subscribers after unsubscribe, got %v", subs)
	}
}
