package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"cloud-kitchen-client/internal/domain"
)

// OrderClient does not check for a token before sending: an unauthenticated
// call reaches the server and the 401 drives the logout.
type OrderClient struct {
	r *Requester
}

func NewOrderClient(r *Requester) *OrderClient {
	return &OrderClient{r: r}
}

func (c *OrderClient) Place(ctx context.Context, req domain.PlaceOrderRequest) (*domain.Order, error) {
	return c.order(ctx, Request{
		Method: http.MethodPost,
		Path:   "/orders",
		Body:   req,
		Auth:   AuthOptional,
	})
}

func (c *OrderClient) Mine(ctx context.Context) ([]domain.Order, error) {
	return c.list(ctx, "/orders/my-orders")
}

func (c *OrderClient) ForChef(ctx context.Context) ([]domain.Order, error) {
	return c.list(ctx, "/orders/chef/my-orders")
}

// All lists every order on the platform. Admin only.
func (c *OrderClient) All(ctx context.Context) ([]domain.Order, error) {
	return c.list(ctx, "/orders")
}

func (c *OrderClient) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return c.order(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/orders/%d", id),
		Auth:   AuthOptional,
	})
}

// UpdateStatus asks the server for a transition; the server decides whether
// it is allowed.
func (c *OrderClient) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, validationError("unknown order status %q", status)
	}
	return c.order(ctx, Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/orders/%d/status", id),
		Query:  url.Values{"status": {string(status)}},
		Auth:   AuthOptional,
	})
}

func (c *OrderClient) Cancel(ctx context.Context, id int64) (*Envelope[json.RawMessage], error) {
	return send[json.RawMessage](ctx, c.r, Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/orders/%d", id),
		Auth:   AuthOptional,
	})
}

func (c *OrderClient) order(ctx context.Context, req Request) (*domain.Order, error) {
	order, err := sendData[domain.Order](ctx, c.r, req)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *OrderClient) list(ctx context.Context, path string) ([]domain.Order, error) {
	return sendData[[]domain.Order](ctx, c.r, Request{
		Method: http.MethodGet,
		Path:   path,
		Auth:   AuthOptional,
	})
}
