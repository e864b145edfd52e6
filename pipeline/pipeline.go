// Package pipeline reacts to article approval transitions. The detector
// decides whether a save is a genuine false->true edge; the runner resolves
// the audience, fans out notifications, and independently attempts a social
// post. Nothing in here may fail the write that triggered it: runner errors
// are reported to the caller for logging only.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"newswire/notify"
	"newswire/social"
	"newswire/store"
	"newswire/subscriptions"
	"newswire/types"
)

// Detect compares the approval flag before and after a committed write and
// returns an ApprovalEvent on a rising edge, nil otherwise. A save that does
// not touch the flag, or that revokes approval, produces nil. A nil article
// or one without an ID is a logic error: the caller must abstain from
// dispatch rather than guess.
func Detect(prevApproved bool, article *types.Article, now time.Time) (*types.ApprovalEvent, error) {
	if article == nil || article.ID == "" {
		return nil, fmt.Errorf("approval detect: article state is malformed")
	}
	if prevApproved || !article.Approved {
		return nil, nil
	}
	return &types.ApprovalEvent{
		ArticleID:    article.ID,
		PrevApproved: prevApproved,
		Approved:     true,
		TransitionAt: now,
	}, nil
}

// Ledger remembers dispatched transitions so a redelivered event is not
// dispatched twice.
type Ledger interface {
	// FirstDelivery returns true exactly once per key.
	FirstDelivery(ctx context.Context, key string) (bool, error)
}

// Pipeline wires the subscription index, mail dispatcher, and social poster
// behind a single Run entry point.
type Pipeline struct {
	store      *store.Store
	index      *subscriptions.Index
	dispatcher *notify.Dispatcher
	poster     *social.Poster
}

// New creates a Pipeline.
func New(st *store.Store, index *subscriptions.Index, dispatcher *notify.Dispatcher, poster *social.Poster) *Pipeline {
	return &Pipeline{
		store:      st,
		index:      index,
		dispatcher: dispatcher,
		poster:     poster,
	}
}

// Run executes one fan-out for an approval event: resolve recipients, send
// mail, then attempt the social post. The social attempt happens regardless
// of mail outcome. Returned errors mean the pipeline abstained (malformed
// event, unknown article, audience lookup failure); partial mail failures
// are not errors, they live in the report.
func (p *Pipeline) Run(ctx context.Context, event types.ApprovalEvent) (types.DispatchReport, error) {
	if event.ArticleID == "" {
		return types.DispatchReport{}, fmt.Errorf("pipeline: event missing article ID")
	}
	if event.PrevApproved || !event.Approved {
		return types.DispatchReport{}, fmt.Errorf("pipeline: event for %s is not a rising edge", event.ArticleID)
	}

	article := p.store.GetArticle(event.ArticleID)
	if article == nil {
		return types.DispatchReport{}, fmt.Errorf("pipeline: unknown article %s", event.ArticleID)
	}

	authorName := article.AuthorID
	if author := p.store.GetReader(article.AuthorID); author != nil && author.Username != "" {
		authorName = author.Username
	}
	scope := "Independent"
	if article.PublisherID != "" {
		if pub := p.store.GetPublisher(article.PublisherID); pub != nil {
			scope = pub.Name
		}
	}

	recipients, err := p.index.Recipients(ctx, article)
	if err != nil {
		return types.DispatchReport{}, fmt.Errorf("pipeline: resolving recipients for %s: %w", event.ArticleID, err)
	}

	report := p.dispatcher.Notify(ctx, article, authorName, scope, recipients)
	log.Printf("pipeline: article %s notified %d recipient(s), %d failed",
		article.ID, len(report.Sent), len(report.Failed))

	if posted := p.poster.Post(ctx, article, authorName, scope, p.dispatcher.ArticleURL(article)); posted {
		log.Printf("pipeline: article %s posted to social", article.ID)
	} else if p.poster.Enabled() {
		log.Printf("pipeline: article %s social post did not succeed", article.ID)
	}

	return report, nil
}

// RunOnce is Run guarded by the ledger: a transition key that was already
// seen is skipped. A ledger error fails open on the side of not dispatching,
// since double delivery is worse than a dropped redelivery here.
func (p *Pipeline) RunOnce(ctx context.Context, event types.ApprovalEvent, ledger Ledger) (types.DispatchReport, error) {
	first, err := ledger.FirstDelivery(ctx, event.Key())
	if err != nil {
		return types.DispatchReport{}, fmt.Errorf("pipeline: ledger check for %s: %w", event.Key(), err)
	}
	if !first {
		log.Printf("pipeline: transition %s already dispatched, skipping", event.Key())
		return types.DispatchReport{ArticleID: event.ArticleID}, nil
	}
	return p.Run(ctx, event)
}
