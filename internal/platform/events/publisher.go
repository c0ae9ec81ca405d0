// Package events fans activity feed transitions out to Kafka so downstream
// consumers (push notifications, analytics) can react without polling the
// feed table. Publishing is best-effort: the engine's writes are the source
// of truth and never block on the broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"wanderlist/internal/platform/config"
)

// Type labels the lifecycle transition of a feed entry.
type Type string

const (
	TypeEntryCreated Type = "entry_created"
	TypeEntryDeleted Type = "entry_deleted"
)

// ActivityEvent is the JSON payload produced to the activity topic.
type ActivityEvent struct {
	Type        Type      `json:"type"`
	EntryID     string    `json:"entry_id"`
	UserID      string    `json:"user_id"`
	Kind        string    `json:"kind"`
	ObjectiveID string    `json:"objective_id,omitempty"`
	ItemID      string    `json:"item_id,omitempty"`
	FollowID    string    `json:"follow_id,omitempty"`
	Title       string    `json:"title,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher produces activity events. A nil Publisher is valid and drops
// every event, which keeps the engine runnable without a broker.
type Publisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewPublisher connects to the Kafka seed brokers and ensures the activity
// topic exists. Returns nil when no brokers are configured.
func NewPublisher(ctx context.Context, cfg config.Kafka, logger *slog.Logger) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	if err := ensureTopic(ctx, client, cfg.Topic); err != nil {
		client.Close()
		return nil, err
	}

	return &Publisher{client: client, topic: cfg.Topic, logger: logger}, nil
}

func ensureTopic(ctx context.Context, client *kgo.Client, topic string) error {
	adm := kadm.NewClient(client)
	resp, err := adm.CreateTopics(ctx, 1, 1, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	for _, r := range resp {
		if r.Err != nil && !kerr.IsRetriable(r.Err) && r.Err != kerr.TopicAlreadyExists {
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// Publish produces the event asynchronously, keyed by owning user so one
// user's entries stay ordered. Failures are logged, never returned: feed
// consistency does not depend on the broker.
func (p *Publisher) Publish(ctx context.Context, event ActivityEvent) {
	if p == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "marshal activity event", "error", err)
		return
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.UserID),
		Value: payload,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.Error("produce activity event",
				"error", err,
				"type", event.Type,
				"entry_id", event.EntryID,
			)
		}
	})
}

// Close flushes buffered records and releases the client.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = p.client.Flush(ctx)
	p.client.Close()
}
