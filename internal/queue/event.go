// Package queue defines message payloads exchanged over the message broker.
package queue

// ReviewQueueName is the durable queue review events are published to.
const ReviewQueueName = "review.events"

// Review event actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ReviewEvent is published after a review is created, updated or deleted.
// It carries enough information for downstream consumers to log or
// trigger analytics without querying the API.
type ReviewEvent struct {
	Action     string `json:"action"`
	ReviewID   uint64 `json:"review_id"`
	ISBN       string `json:"isbn"`
	Username   string `json:"username"`
	Rating     int    `json:"rating,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
