package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"cloud-kitchen-client/internal/domain"
)

const MinTestimonialLength = 20

type TestimonialClient struct {
	r *Requester
}

func NewTestimonialClient(r *Requester) *TestimonialClient {
	return &TestimonialClient{r: r}
}

// Approved lists published testimonials. It degrades to an empty list by
// default so a broken backend never blanks the landing page.
func (c *TestimonialClient) Approved(ctx context.Context, opts ...CallOption) ([]domain.Testimonial, error) {
	return c.list(ctx, "testimonials.approved", "/testimonials", AuthOptional, opts)
}

// All lists every testimonial regardless of approval. Admin only.
func (c *TestimonialClient) All(ctx context.Context, opts ...CallOption) ([]domain.Testimonial, error) {
	return c.list(ctx, "testimonials.all", "/testimonials/all", AuthRequired, opts)
}

func (c *TestimonialClient) Pending(ctx context.Context, opts ...CallOption) ([]domain.Testimonial, error) {
	return c.list(ctx, "testimonials.pending", "/testimonials/pending", AuthRequired, opts)
}

// Mine returns the signed-in user's testimonial, nil when they have none.
func (c *TestimonialClient) Mine(ctx context.Context) (*domain.Testimonial, error) {
	t, err := sendData[*domain.Testimonial](ctx, c.r, Request{
		Method: http.MethodGet,
		Path:   "/testimonials/my-testimonial",
		Auth:   AuthRequired,
	})
	if isNotFound(err) {
		return nil, nil
	}
	return t, err
}

func (c *TestimonialClient) Create(ctx context.Context, req domain.TestimonialRequest) (*Envelope[domain.Testimonial], error) {
	return send[domain.Testimonial](ctx, c.r, Request{
		Method: http.MethodPost,
		Path:   "/testimonials",
		Body:   req,
		Auth:   AuthRequired,
	})
}

func (c *TestimonialClient) Update(ctx context.Context, id int64, req domain.TestimonialRequest) (*Envelope[domain.Testimonial], error) {
	return send[domain.Testimonial](ctx, c.r, Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/testimonials/%d", id),
		Body:   req,
		Auth:   AuthRequired,
	})
}

func (c *TestimonialClient) Delete(ctx context.Context, id int64) (*Envelope[domain.Testimonial], error) {
	return send[domain.Testimonial](ctx, c.r, Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/testimonials/%d", id),
		Auth:   AuthRequired,
	})
}

// Submit validates the form and then updates the user's existing testimonial,
// or creates one when none exists. Users hold at most one.
func (c *TestimonialClient) Submit(ctx context.Context, req domain.TestimonialRequest) (*Envelope[domain.Testimonial], error) {
	if err := ValidateTestimonial(req); err != nil {
		return nil, err
	}
	existing, err := c.Mine(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return c.Update(ctx, existing.ID, req)
	}
	return c.Create(ctx, req)
}

func (c *TestimonialClient) Approve(ctx context.Context, id int64) (*Envelope[domain.Testimonial], error) {
	return c.moderate(ctx, id, "approve")
}

func (c *TestimonialClient) Reject(ctx context.Context, id int64) (*Envelope[domain.Testimonial], error) {
	return c.moderate(ctx, id, "reject")
}

func (c *TestimonialClient) moderate(ctx context.Context, id int64, action string) (*Envelope[domain.Testimonial], error) {
	return send[domain.Testimonial](ctx, c.r, Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/testimonials/%d/%s", id, action),
		Auth:   AuthRequired,
	})
}

func (c *TestimonialClient) list(ctx context.Context, op, path string, auth AuthMode, opts []CallOption) ([]domain.Testimonial, error) {
	o := resolveOptions(PolicyDegrade, opts)
	items, err := sendData[[]domain.Testimonial](ctx, c.r, Request{
		Method: http.MethodGet,
		Path:   path,
		Auth:   auth,
	})
	if err != nil {
		return degrade(c.r, o, op, []domain.Testimonial{}, err)
	}
	if items == nil {
		items = []domain.Testimonial{}
	}
	return items, nil
}

func ValidateTestimonial(req domain.TestimonialRequest) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(req.Content)); n < MinTestimonialLength {
		return validationError("testimonial must be at least %d characters, got %d", MinTestimonialLength, n)
	}
	return validateScore(req.Rating)
}
