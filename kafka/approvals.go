package kafka

import (
	"context"
	"log"

	"newswire/pipeline"
	"newswire/types"
)

// ApprovalConsumerConfig wires the notification pipeline to a topic.
type ApprovalConsumerConfig struct {
	Brokers  []string
	Topic    string
	GroupID  string
	Pipeline *pipeline.Pipeline
	Ledger   pipeline.Ledger
}

// NewApprovalConsumer creates a consumer that runs the pipeline once per
// approval event. Every event is marked exactly once whatever the outcome:
// dispatch is best-effort, and replaying a logic error (unknown article,
// malformed event) cannot fix it. Failures are logged for operators.
func NewApprovalConsumer(config ApprovalConsumerConfig) (*Consumer, error) {
	handler := &TypedMessageHandler[types.ApprovalEvent]{
		Validate: func(event *types.ApprovalEvent) bool {
			if event.ArticleID == "" {
				log.Printf("kafka: approval event missing article ID, skipping")
				return false
			}
			if event.PrevApproved || !event.Approved {
				log.Printf("kafka: event for %s is not an approval edge, skipping", event.ArticleID)
				return false
			}
			return true
		},
		Process: func(ctx context.Context, event *types.ApprovalEvent) error {
			if _, err := config.Pipeline.RunOnce(ctx, *event, config.Ledger); err != nil {
				log.Printf("kafka: pipeline abstained for %s: %v", event.ArticleID, err)
			}
			return nil
		},
		AlwaysMark: true,
	}

	return NewConsumer(ConsumerConfig{
		Brokers: config.Brokers,
		Topic:   config.Topic,
		GroupID: config.GroupID,
		Handler: handler,
	})
}
