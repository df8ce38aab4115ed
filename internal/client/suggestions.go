package client

import (
	"context"
	"fmt"
	"net/http"

	"cloud-kitchen-client/internal/domain"
)

// SuggestionClient talks to the separate recommendation service. Suggestions
// are optional at checkout, so every call degrades to a failure-shaped
// Suggestion by default instead of returning an error.
type SuggestionClient struct {
	r *Requester
}

func NewSuggestionClient(r *Requester) *SuggestionClient {
	return &SuggestionClient{r: r}
}

func (c *SuggestionClient) Combinations(ctx context.Context, opts ...CallOption) (*domain.Suggestion, error) {
	return c.fetch(ctx, Request{
		Method: http.MethodGet,
		Path:   "/api/suggestions/combinations",
	}, "Failed to fetch combinations", opts)
}

func (c *SuggestionClient) Suggest(ctx context.Context, prefs domain.Preferences, opts ...CallOption) (*domain.Suggestion, error) {
	return c.fetch(ctx, Request{
		Method: http.MethodPost,
		Path:   "/api/suggestions",
		Body:   prefs,
	}, "Failed to fetch suggestions", opts)
}

func (c *SuggestionClient) Pairings(ctx context.Context, menuItemID int64, opts ...CallOption) (*domain.Suggestion, error) {
	return c.fetch(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/api/suggestions/pairings/%d", menuItemID),
	}, "Failed to fetch pairings", opts)
}

func (c *SuggestionClient) fetch(ctx context.Context, req Request, failure string, opts []CallOption) (*domain.Suggestion, error) {
	o := resolveOptions(PolicyDegrade, opts)
	req.Auth = AuthNone

	var out domain.Suggestion
	if err := c.r.Do(ctx, req, &out); err != nil {
		return degrade(c.r, o, req.Path, &domain.Suggestion{
			Success: false,
			Error:   failure,
			Message: causeText(err),
		}, err)
	}
	return &out, nil
}
