package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type Handler func(ctx context.Context, event SessionEvent)

// Consumer tails the session events topic and hands every session_cleared
// event to Handle.
type Consumer struct {
	Reader MessageReader
	Handle Handler
	logger *zap.SugaredLogger
}

func NewConsumer(reader MessageReader, handle Handler, logger *zap.SugaredLogger) *Consumer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Consumer{Reader: reader, Handle: handle, logger: logger}
}

// Start blocks until ctx is done or the reader is closed.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Debug("session event consumer started")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			c.logger.Warnw("failed to read session event", "error", err)
			continue
		}
		c.Process(ctx, message.Value)
	}
}

// Process decodes one message value. Malformed payloads and other event
// types are skipped.
func (c *Consumer) Process(ctx context.Context, value []byte) {
	var event SessionEvent
	if err := json.Unmarshal(value, &event); err != nil {
		c.logger.Warnw("failed to decode session event", "error", err)
		return
	}
	if event.Type != TypeSessionCleared {
		return
	}
	c.Handle(ctx, event)
}
