package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"newswire/notify"
	"newswire/social"
	"newswire/store"
	"newswire/subscriptions"
	"newswire/types"
)

type fakeMailer struct {
	mu     sync.Mutex
	sent   []string
	reject map[string]bool
}

func (f *fakeMailer) Send(_ context.Context, to, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reject[to] {
		return context.DeadlineExceeded
	}
	f.sent = append(f.sent, to)
	return nil
}

type fixture struct {
	store  *store.Store
	subs   *subscriptions.MemoryStore
	mailer *fakeMailer
	pipe   *Pipeline
}

func newFixture(t *testing.T, poster *social.Poster) *fixture {
	t.Helper()

	st := store.New()
	subs := subscriptions.NewMemoryStore()
	mailer := &fakeMailer{reject: make(map[string]bool)}
	if poster == nil {
		poster = social.NewPoster("", "")
	}

	dispatcher := notify.NewDispatcher(mailer, "http://testserver")
	return &fixture{
		store:  st,
		subs:   subs,
		mailer: mailer,
		pipe:   New(st, subscriptions.NewIndex(subs), dispatcher, poster),
	}
}

func (f *fixture) seedArticle(t *testing.T, approved bool) *types.Article {
	t.Helper()

	if err := f.store.SaveReader(&types.Reader{ID: "journo1", Username: "journo1", Email: "journo@test.com", Role: types.RoleJournalist}); err != nil {
		t.Fatalf("seed reader: %v", err)
	}
	if err := f.store.SavePublisher(&types.Publisher{ID: "pub1", Name: "Daily Planet"}); err != nil {
		t.Fatalf("seed publisher: %v", err)
	}

	article := &types.Article{
		ID:          "a1",
		Title:       "Approved A1",
		Content:     "Hello world",
		AuthorID:    "journo1",
		PublisherID: "pub1",
		Approved:    approved,
	}
	if _, _, err := f.store.SaveArticle(article); err != nil {
		t.Fatalf("seed article: %v", err)
	}
	return article
}

func TestDetectRisingEdge(t *testing.T) {
	article := &types.Article{ID: "a1", Approved: true}

	event, err := Detect(false, article, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event == nil {
		t.Fatal("expected an event for false->true")
	}
	if event.ArticleID != "a1" || event.PrevApproved || !event.Approved {
		t.Fatalf("bad event: %+v", event)
	}
}

func TestDetectNoFireCases(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name     string
		prev     bool
		approved bool
	}{
		{"unapproved save", false, false},
		{"already approved edit", true, true},
		{"revocation", true, false},
	}

	for _, tc := range cases {
		event, err := Detect(tc.prev, &types.Article{ID: "a1", Approved: tc.approved}, now)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if event != nil {
			t.Fatalf("%s: expected no event, got %+v", tc.name, event)
		}
	}
}

func TestDetectMalformedState(t *testing.T) {
	if _, err := Detect(false, nil, time.Now()); err == nil {
		t.Fatal("expected error for nil article")
	}
	if _, err := Detect(false, &types.Article{Approved: true}, time.Now()); err == nil {
		t.Fatal("expected error for article without ID")
	}
}

func TestRunNotifiesDedupedUnion(t *testing.T) {
	f := newFixture(t, nil)
	article := f.seedArticle(t, true)

	ctx := context.Background()
	// 2 via publisher, 1 via journalist, one overlapping both.
	f.subs.SubscribePublisher(ctx, "pub1", "alice@test.com")
	f.subs.SubscribePublisher(ctx, "pub1", "bob@test.com")
	f.subs.SubscribeJournalist(ctx, "journo1", "alice@test.com")

	report, err := f.pipe.Run(ctx, types.ApprovalEvent{
		ArticleID:    article.ID,
		Approved:     true,
		TransitionAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(report.Sent) != 2 {
		t.Fatalf("expected 2 distinct notifications, got %v", report.Sent)
	}
	if len(f.mailer.sent) != 2 {
		t.Fatalf("mailer saw %d sends, want 2", len(f.mailer.sent))
	}
}

func TestRunEmptyAudienceIsNoop(t *testing.T) {
	f := newFixture(t, nil)
	article := f.seedArticle(t, true)

	report, err := f.pipe.Run(context.Background(), types.ApprovalEvent{
		ArticleID:    article.ID,
		Approved:     true,
		TransitionAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(report.Sent) != 0 || len(report.Failed) != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
}

func TestRunIsolatesRecipientFailures(t *testing.T) {
	f := newFixture(t, nil)
	article := f.seedArticle(t, true)

	ctx := context.Background()
	f.subs.SubscribePublisher(ctx, "pub1", "ok1@test.com")
	f.subs.SubscribePublisher(ctx, "pub1", "ok2@test.com")
	f.subs.SubscribePublisher(ctx, "pub1", "broken@test.com")
	f.mailer.reject["broken@test.com"] = true

	report, err := f.pipe.Run(ctx, types.ApprovalEvent{
		ArticleID:    article.ID,
		Approved:     true,
		TransitionAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(report.Sent) != 2 {
		t.Fatalf("expected 2 deliveries despite 1 failure, got %v", report.Sent)
	}
	if len(report.Failed) != 1 || report.Failed[0].Email != "broken@test.com" {
		t.Fatalf("expected broken@test.com in failures, got %+v", report.Failed)
	}
}

func TestRunRejectsNonRisingEvents(t *testing.T) {
	f := newFixture(t, nil)
	f.seedArticle(t, true)

	if _, err := f.pipe.Run(context.Background(), types.ApprovalEvent{ArticleID: "a1", PrevApproved: true, Approved: true}); err == nil {
		t.Fatal("expected error for level-triggered event")
	}
	if _, err := f.pipe.Run(context.Background(), types.ApprovalEvent{Approved: true}); err == nil {
		t.Fatal("expected error for event without article ID")
	}
	if _, err := f.pipe.Run(context.Background(), types.ApprovalEvent{ArticleID: "ghost", Approved: true}); err == nil {
		t.Fatal("expected error for unknown article")
	}
	if len(f.mailer.sent) != 0 {
		t.Fatalf("abstaining runs must not send mail, sent %v", f.mailer.sent)
	}
}

func TestRunOnceSkipsRedelivery(t *testing.T) {
	f := newFixture(t, nil)
	article := f.seedArticle(t, true)

	ctx := context.Background()
	f.subs.SubscribePublisher(ctx, "pub1", "alice@test.com")

	event := types.ApprovalEvent{
		ArticleID:    article.ID,
		Approved:     true,
		TransitionAt: time.Now(),
	}
	ledger := NewMemoryLedger()

	if _, err := f.pipe.RunOnce(ctx, event, ledger); err != nil {
		t.Fatalf("first delivery failed: %v", err)
	}
	if _, err := f.pipe.RunOnce(ctx, event, ledger); err != nil {
		t.Fatalf("redelivery failed: %v", err)
	}

	if len(f.mailer.sent) != 1 {
		t.Fatalf("redelivered event must not dispatch twice, sent %v", f.mailer.sent)
	}

	// A later re-approval has a new transition timestamp and fires again.
	again := event
	again.TransitionAt = event.TransitionAt.Add(time.Minute)
	if _, err := f.pipe.RunOnce(ctx, again, ledger); err != nil {
		t.Fatalf("re-approval failed: %v", err)
	}
	if len(f.mailer.sent) != 2 {
		t.Fatalf("re-approval must dispatch, sent %v", f.mailer.sent)
	}
}

func TestRunAttemptsSocialIndependently(t *testing.T) {
	var posts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posts++
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	f := newFixture(t, social.NewPoster("token", server.URL))
	article := f.seedArticle(t, true)

	ctx := context.Background()
	f.subs.SubscribePublisher(ctx, "pub1", "broken@test.com")
	f.mailer.reject["broken@test.com"] = true

	report, err := f.pipe.Run(ctx, types.ApprovalEvent{
		ArticleID:    article.ID,
		Approved:     true,
		TransitionAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// Mail failed entirely, the social post still went out.
	if len(report.Failed) != 1 {
		t.Fatalf("expected mail failure, got %+v", report)
	}
	if posts != 1 {
		t.Fatalf("expected exactly 1 social post, got %d", posts)
	}
}
