package client

import (
	"net/http"

	"cloud-kitchen-client/config"
	"cloud-kitchen-client/internal/session"

	"go.uber.org/zap"
)

// Client groups one client per backend resource. The clients share the
// session and HTTP transport but never call each other.
type Client struct {
	Auth         *AuthClient
	Menu         *MenuClient
	Orders       *OrderClient
	Ratings      *RatingClient
	Testimonials *TestimonialClient
	Favourites   *FavouriteClient
	Invoices     *InvoiceClient
	Chat         *ChatClient
	Suggestions  *SuggestionClient
}

// New wires every resource client to the endpoint it has always targeted:
// menu and rating fall back to the local API, suggestions use the AI origin,
// the rest use API_BASE_URL as is.
func New(cfg config.Config, httpClient HTTPClient, sess *session.Manager, nav Navigator, logger *zap.SugaredLogger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if cfg.APIBaseURL == "" {
		logger.Warn("API_BASE_URL is not set, requests to the primary backend will fail")
	}

	requester := func(e config.Endpoint) *Requester {
		return NewRequester(cfg.BaseURLFor(e), httpClient, sess, nav, logger)
	}
	primary := requester(config.EndpointPrimary)
	local := requester(config.EndpointLocalFallback)
	ai := requester(config.EndpointAI)

	return &Client{
		Auth:         NewAuthClient(primary, sess),
		Menu:         NewMenuClient(local),
		Orders:       NewOrderClient(primary),
		Ratings:      NewRatingClient(local),
		Testimonials: NewTestimonialClient(primary),
		Favourites:   NewFavouriteClient(primary),
		Invoices:     NewInvoiceClient(primary),
		Chat:         NewChatClient(primary),
		Suggestions:  NewSuggestionClient(ai),
	}
}
