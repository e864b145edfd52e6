package types

import (
	"fmt"
	"time"
)

// ApprovalEvent is emitted by the article store whenever a save changes the
// approved flag from false to true. It carries both sides of the flip so
// consumers can re-check the edge instead of trusting the producer.
type ApprovalEvent struct {
	ArticleID    string    `json:"article_id"`
	PrevApproved bool      `json:"prev_approved"`
	Approved     bool      `json:"approved"`
	TransitionAt time.Time `json:"transition_at"`
}

// Key returns the idempotency key for this transition. Two deliveries of the
// same event share a key; a later re-approval of the same article does not.
func (e ApprovalEvent) Key() string {
	return fmt.Sprintf("%s:%d", e.ArticleID, e.TransitionAt.UnixNano())
}

// DispatchFailure records one recipient the mail transport rejected.
type DispatchFailure struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// DispatchReport summarizes one notification fan-out. Failures are collected
// per recipient; they never abort the rest of the batch.
type DispatchReport struct {
	ArticleID string            `json:"article_id"`
	Sent      []string          `json:"sent"`
	Failed    []DispatchFailure `json:"failed,omitempty"`
}

// AllDelivered reports whether every recipient got the message.
func (r DispatchReport) AllDelivered() bool {
	return len(r.Failed) == 0
}
