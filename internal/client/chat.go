package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"cloud-kitchen-client/internal/domain"

	"github.com/gorilla/websocket"
)

type ChatClient struct {
	r      *Requester
	dialer *websocket.Dialer
}

func NewChatClient(r *Requester) *ChatClient {
	return &ChatClient{r: r, dialer: websocket.DefaultDialer}
}

func (c *ChatClient) Messages(ctx context.Context, orderID int64) ([]domain.ChatMessage, error) {
	return sendData[[]domain.ChatMessage](ctx, c.r, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/chat/order/%d/messages", orderID),
		Auth:   AuthOptional,
	})
}

// Enabled reports whether chat is open for the order. Chat closes once the
// order is delivered or cancelled.
func (c *ChatClient) Enabled(ctx context.Context, orderID int64) (*domain.ChatStatus, error) {
	status, err := sendData[domain.ChatStatus](ctx, c.r, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/chat/order/%d/enabled", orderID),
		Auth:   AuthOptional,
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *ChatClient) Send(ctx context.Context, orderID int64, content string) (*domain.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, validationError("message is empty")
	}
	msg, err := sendData[domain.ChatMessage](ctx, c.r, Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/chat/order/%d/messages", orderID),
		Body:   map[string]string{"content": content},
		Auth:   AuthOptional,
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Stream subscribes to live messages for an order. The returned channel is
// closed when ctx is done or the server closes the socket.
func (c *ChatClient) Stream(ctx context.Context, orderID int64) (<-chan domain.ChatMessage, error) {
	token, err := c.r.Token(ctx, AuthRequired)
	if err != nil {
		return nil, err
	}

	target, err := c.streamURL(orderID, token)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "invalid chat URL", Err: err}
	}

	conn, resp, err := c.dialer.DialContext(ctx, target, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			c.r.Unauthorized(ctx)
			return nil, &Error{Kind: KindUnauthorized, Status: resp.StatusCode, Message: "Unauthorized access. Please log in again."}
		}
		return nil, &Error{Kind: KindTransport, Message: "failed to open chat stream", Err: err}
	}

	out := make(chan domain.ChatMessage)
	done := make(chan struct{})

	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		conn.Close()
	}()

	go func() {
		defer close(out)
		defer close(done)
		for {
			var msg domain.ChatMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if ctx.Err() == nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					c.r.logger.Warnw("chat stream closed", "order_id", orderID, "error", err)
				}
				return
			}
			select {
			case out <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (c *ChatClient) streamURL(orderID int64, token string) (string, error) {
	u, err := url.Parse(c.r.URL(fmt.Sprintf("/ws/chat/order/%d", orderID)))
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
