package client

import (
	"context"
	"fmt"
	"net/http"

	"cloud-kitchen-client/internal/domain"
)

// RatingClient returns raw envelopes; callers inspect Success themselves.
type RatingClient struct {
	r *Requester
}

func NewRatingClient(r *Requester) *RatingClient {
	return &RatingClient{r: r}
}

func (c *RatingClient) RateChef(ctx context.Context, req domain.ChefRatingRequest) (*Envelope[domain.Rating], error) {
	if err := validateScore(req.Rating); err != nil {
		return nil, err
	}
	return send[domain.Rating](ctx, c.r, Request{
		Method: http.MethodPost,
		Path:   "/ratings/chef",
		Body:   req,
		Auth:   AuthRequired,
	})
}

func (c *RatingClient) RateMenuItem(ctx context.Context, req domain.MenuItemRatingRequest) (*Envelope[domain.Rating], error) {
	if err := validateScore(req.Rating); err != nil {
		return nil, err
	}
	return send[domain.Rating](ctx, c.r, Request{
		Method: http.MethodPost,
		Path:   "/ratings/menu-item",
		Body:   req,
		Auth:   AuthRequired,
	})
}

func (c *RatingClient) ChefRatings(ctx context.Context, chefID int64) (*Envelope[[]domain.Rating], error) {
	return c.ratings(ctx, fmt.Sprintf("/ratings/chef/%d", chefID), AuthOptional)
}

func (c *RatingClient) MenuItemRatings(ctx context.Context, menuItemID int64) (*Envelope[[]domain.Rating], error) {
	return c.ratings(ctx, fmt.Sprintf("/ratings/menu-item/%d", menuItemID), AuthOptional)
}

func (c *RatingClient) Mine(ctx context.Context) (*Envelope[[]domain.Rating], error) {
	return c.ratings(ctx, "/ratings/my-ratings", AuthRequired)
}

func (c *RatingClient) ChefStats(ctx context.Context, chefID int64) (*Envelope[domain.RatingStats], error) {
	return c.stats(ctx, fmt.Sprintf("/ratings/chef/%d/stats", chefID))
}

func (c *RatingClient) MenuItemStats(ctx context.Context, menuItemID int64) (*Envelope[domain.RatingStats], error) {
	return c.stats(ctx, fmt.Sprintf("/ratings/menu-item/%d/stats", menuItemID))
}

// OrderRated reports what the signed-in student already rated for an order.
func (c *RatingClient) OrderRated(ctx context.Context, orderID int64) (*Envelope[domain.RatingStatus], error) {
	return send[domain.RatingStatus](ctx, c.r, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/ratings/order/%d/status", orderID),
		Auth:   AuthRequired,
	})
}

func (c *RatingClient) ratings(ctx context.Context, path string, auth AuthMode) (*Envelope[[]domain.Rating], error) {
	return send[[]domain.Rating](ctx, c.r, Request{
		Method: http.MethodGet,
		Path:   path,
		Auth:   auth,
	})
}

func (c *RatingClient) stats(ctx context.Context, path string) (*Envelope[domain.RatingStats], error) {
	return send[domain.RatingStats](ctx, c.r, Request{
		Method: http.MethodGet,
		Path:   path,
		Auth:   AuthOptional,
	})
}

func validateScore(score int) error {
	if score < 1 || score > 5 {
		return validationError("rating must be between 1 and 5, got %d", score)
	}
	return nil
}
