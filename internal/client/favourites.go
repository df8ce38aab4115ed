package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"cloud-kitchen-client/internal/domain"
)

type FavouriteClient struct {
	r *Requester
}

func NewFavouriteClient(r *Requester) *FavouriteClient {
	return &FavouriteClient{r: r}
}

func (c *FavouriteClient) List(ctx context.Context) ([]domain.Favourite, error) {
	return sendData[[]domain.Favourite](ctx, c.r, Request{
		Method: http.MethodGet,
		Path:   "/favourites",
		Auth:   AuthRequired,
	})
}

// IDs returns only the favourite menu item ids, for marking hearts on a menu
// page without fetching full records.
func (c *FavouriteClient) IDs(ctx context.Context) ([]int64, error) {
	return sendData[[]int64](ctx, c.r, Request{
		Method: http.MethodGet,
		Path:   "/favourites/ids",
		Auth:   AuthRequired,
	})
}

func (c *FavouriteClient) Add(ctx context.Context, menuItemID int64) (*Envelope[json.RawMessage], error) {
	return send[json.RawMessage](ctx, c.r, Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/favourites/%d", menuItemID),
		Auth:   AuthRequired,
	})
}

func (c *FavouriteClient) Remove(ctx context.Context, menuItemID int64) (*Envelope[json.RawMessage], error) {
	return send[json.RawMessage](ctx, c.r, Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/favourites/%d", menuItemID),
		Auth:   AuthRequired,
	})
}

func (c *FavouriteClient) Check(ctx context.Context, menuItemID int64) (bool, error) {
	return sendData[bool](ctx, c.r, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/favourites/check/%d", menuItemID),
		Auth:   AuthRequired,
	})
}
