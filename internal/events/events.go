package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"cloud-kitchen-client/internal/session"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const TypeSessionCleared = "session_cleared"

type SessionEvent struct {
	Type      string    `json:"type"`
	UserID    int64     `json:"user_id,omitempty"`
	Role      string    `json:"role,omitempty"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

type Publisher interface {
	Publish(ctx context.Context, event SessionEvent) error
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	Writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event SessionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.UserID, 10)),
		Value: payload,
	})
}

// Subscribe publishes a session_cleared event every time m tears a session
// down. Publish failures are logged; they never block logout.
func Subscribe(m *session.Manager, p Publisher, logger *zap.SugaredLogger) {
	if p == nil {
		logger.Warn("session event publisher is nil, skipping subscription")
		return
	}
	m.OnCleared(func(ctx context.Context, prev *session.State, reason session.Reason) {
		event := SessionEvent{
			Type:      TypeSessionCleared,
			Reason:    string(reason),
			Timestamp: time.Now(),
		}
		if prev != nil && prev.User != nil {
			event.UserID = prev.User.ID
			event.Role = string(prev.User.Role)
		}
		if err := p.Publish(ctx, event); err != nil {
			logger.Warnw("failed to publish session event", "reason", reason, "error", err)
		}
	})
}
