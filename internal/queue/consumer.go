package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ReviewLogFile is the file, inside the consumer's log directory, that
// review events are appended to.
const ReviewLogFile = "reviews.log"

// ReviewConsumer drains the review.events queue and appends one line per
// event to <LogDir>/reviews.log.
type ReviewConsumer struct {
	URL    string
	LogDir string
	Logger *slog.Logger
}

// NewReviewConsumer returns a consumer with a default log directory of
// "logs" when dir is blank.
func NewReviewConsumer(url, dir string, logger *slog.Logger) *ReviewConsumer {
	if dir == "" {
		dir = "logs"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewConsumer{URL: url, LogDir: dir, Logger: logger}
}

// Run connects to the broker, declares the queue (durable) and consumes
// until ctx is cancelled. Dial failures and dropped connections are
// retried with exponential backoff capped at 30s. Run returns ctx.Err()
// on shutdown.
func (rc *ReviewConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(rc.URL)
		if err != nil {
			rc.Logger.Warn("review-consumer: dial failed", "err", err, "retry_in", backoff)
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = rc.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		rc.Logger.Warn("review-consumer: consume loop ended, reconnecting", "err", err)
		if !sleepCtx(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (rc *ReviewConsumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		rc.Logger.Warn("review-consumer: set QoS failed", "err", err)
	}
	if _, err := ch.QueueDeclare(ReviewQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(ReviewQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := appendReviewEvent(rc.LogDir, d.Body); err != nil {
				rc.Logger.Error("review-consumer: handle message failed", "err", err)
				_ = d.Nack(false, false) // do not requeue poison messages
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// appendReviewEvent decodes body as a ReviewEvent and appends a single
// human-readable line to dir/reviews.log.
func appendReviewEvent(dir string, body []byte) error {
	var ev ReviewEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Action == "" || ev.ISBN == "" {
		return errors.New("event missing action or isbn")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, ReviewLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(formatReviewEvent(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func formatReviewEvent(ev ReviewEvent) string {
	line := fmt.Sprintf("[%s] Review %s | review_id=%d | isbn=%s | user=%q",
		ev.OccurredAt, ev.Action, ev.ReviewID, ev.ISBN, ev.Username)
	if ev.Rating > 0 {
		line += fmt.Sprintf(" | rating=%d", ev.Rating)
	}
	return line + "\n"
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
