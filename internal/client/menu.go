package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"cloud-kitchen-client/internal/domain"
)

type MenuClient struct {
	r *Requester
}

func NewMenuClient(r *Requester) *MenuClient {
	return &MenuClient{r: r}
}

func (c *MenuClient) Available(ctx context.Context) ([]domain.MenuItem, error) {
	return sendData[[]domain.MenuItem](ctx, c.r, Request{
		Method: http.MethodGet,
		Path:   "/menu/available",
		Auth:   AuthOptional,
	})
}

func (c *MenuClient) Get(ctx context.Context, id int64) (*domain.MenuItem, error) {
	item, err := sendData[domain.MenuItem](ctx, c.r, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/menu/%d", id),
		Auth:   AuthOptional,
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *MenuClient) ByCategory(ctx context.Context, category string) ([]domain.MenuItem, error) {
	return sendData[[]domain.MenuItem](ctx, c.r, Request{
		Method: http.MethodGet,
		Path:   "/menu/category/" + url.PathEscape(category),
		Auth:   AuthOptional,
	})
}

func (c *MenuClient) ByChef(ctx context.Context, chefID int64) ([]domain.MenuItem, error) {
	return sendData[[]domain.MenuItem](ctx, c.r, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/menu/chef/%d", chefID),
		Auth:   AuthOptional,
	})
}

// Mine lists the signed-in chef's own items.
func (c *MenuClient) Mine(ctx context.Context) ([]domain.MenuItem, error) {
	return sendData[[]domain.MenuItem](ctx, c.r, Request{
		Method: http.MethodGet,
		Path:   "/chef/my-menu-items",
		Auth:   AuthRequired,
	})
}

func (c *MenuClient) Create(ctx context.Context, req domain.MenuItemRequest) (*domain.MenuItem, error) {
	return c.write(ctx, http.MethodPost, "/menu", req)
}

func (c *MenuClient) Update(ctx context.Context, id int64, req domain.MenuItemRequest) (*domain.MenuItem, error) {
	return c.write(ctx, http.MethodPut, fmt.Sprintf("/menu/%d", id), req)
}

func (c *MenuClient) Delete(ctx context.Context, id int64) error {
	_, err := sendData[any](ctx, c.r, Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/menu/%d", id),
		Auth:   AuthRequired,
	})
	return err
}

// ToggleAvailability flips the item's available flag server-side and returns
// the updated item.
func (c *MenuClient) ToggleAvailability(ctx context.Context, id int64) (*domain.MenuItem, error) {
	return c.write(ctx, http.MethodPatch, fmt.Sprintf("/menu/%d/toggle-availability", id), nil)
}

func (c *MenuClient) write(ctx context.Context, method, path string, body any) (*domain.MenuItem, error) {
	item, err := sendData[domain.MenuItem](ctx, c.r, Request{
		Method: method,
		Path:   path,
		Body:   body,
		Auth:   AuthRequired,
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}
