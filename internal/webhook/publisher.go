package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/elias3446/reporta/internal/models"
)

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

const (
	eventQueueKey = "report_events"

	// Event types delivered to the configured webhook endpoint.
	EventReportCreated   = "report.created"
	EventReportConfirmed = "report.confirmed"
)

// Event is the payload delivered for report lifecycle changes.
type Event struct {
	Type      string         `json:"type"`
	ReportID  string         `json:"report_id"`
	UserID    string         `json:"user_id,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Report    *models.Report `json:"report,omitempty"`
}

// EventPublisher enqueues report events for asynchronous delivery.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisEventPublisher is an EventPublisher backed by a Redis list.
type RedisEventPublisher struct {
	redisClient *redis.Client
}

func NewRedisEventPublisher(client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{
		redisClient: client,
	}
}

// Publish pushes an event onto the Redis delivery queue.
func (p *RedisEventPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal report event: %w", err)
	}

	if err := p.redisClient.LPush(ctx, eventQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish report event to Redis: %w", err)
	}
	return nil
}
