package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"testing"

	"cloud-kitchen-client/internal/client"
	"cloud-kitchen-client/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testimonialBackend stores at most one testimonial for the single test user.
type testimonialBackend struct {
	mu      sync.Mutex
	mine    *domain.Testimonial
	creates int
	updates int
}

func (s *testimonialBackend) register(b *backend, token string) {
	b.router.HandleFunc("/api/testimonials/my-testimonial", requireBearer(token, func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.mine == nil {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "No testimonial found"})
			return
		}
		writeJSON(w, http.StatusOK, ok(s.mine))
	})).Methods("GET")

	b.router.HandleFunc("/api/testimonials", requireBearer(token, func(w http.ResponseWriter, r *http.Request) {
		var req domain.TestimonialRequest
		json.NewDecoder(r.Body).Decode(&req)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.creates++
		s.mine = &domain.Testimonial{ID: 5, Content: req.Content, Rating: req.Rating, Approved: false}
		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "message": "Testimonial submitted for review", "data": s.mine})
	})).Methods("POST")

	b.router.HandleFunc("/api/testimonials/{id}", requireBearer(token, func(w http.ResponseWriter, r *http.Request) {
		var req domain.TestimonialRequest
		json.NewDecoder(r.Body).Decode(&req)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.updates++
		s.mine.Content, s.mine.Rating, s.mine.Approved = req.Content, req.Rating, false
		writeJSON(w, http.StatusOK, ok(s.mine))
	})).Methods("PUT")
}

func TestTestimonialClient_SubmitThenMine(t *testing.T) {
	b := newBackend(t)
	b.signIn("tok")
	store := &testimonialBackend{}
	store.register(b, "tok")

	testimonials := client.NewTestimonialClient(b.requester())
	ctx := context.Background()

	content := "The biryani arrived hot and on time every single week."
	env, err := testimonials.Submit(ctx, domain.TestimonialRequest{Content: content, Rating: 5})
	require.NoError(t, err)
	assert.True(t, env.Success)

	mine, err := testimonials.Mine(ctx)
	require.NoError(t, err)
	require.NotNil(t, mine)
	assert.Equal(t, content, mine.Content)
	assert.Equal(t, 5, mine.Rating)
	assert.False(t, mine.Approved)
	assert.Equal(t, 1, store.creates)
}

func TestTestimonialClient_SubmitUpdatesExisting(t *testing.T) {
	b := newBackend(t)
	b.signIn("tok")
	store := &testimonialBackend{mine: &domain.Testimonial{ID: 5, Content: "An older review of the kitchen.", Rating: 3, Approved: true}}
	store.register(b, "tok")

	testimonials := client.NewTestimonialClient(b.requester())

	env, err := testimonials.Submit(context.Background(), domain.TestimonialRequest{Content: "Changed my mind, it is excellent now.", Rating: 4})

	require.NoError(t, err)
	assert.Equal(t, 4, env.Data.Rating)
	assert.False(t, env.Data.Approved)
	assert.Equal(t, 0, store.creates)
	assert.Equal(t, 1, store.updates)
}

func TestTestimonialClient_ContentLengthBoundary(t *testing.T) {
	b := newBackend(t)
	b.signIn("tok")
	store := &testimonialBackend{}
	store.register(b, "tok")

	testimonials := client.NewTestimonialClient(b.requester())
	ctx := context.Background()

	_, err := testimonials.Submit(ctx, domain.TestimonialRequest{Content: strings.Repeat("a", 19), Rating: 4})
	assert.Equal(t, client.KindValidation, client.KindOf(err))
	assert.Equal(t, int32(0), b.hits.Load())

	_, err = testimonials.Submit(ctx, domain.TestimonialRequest{Content: strings.Repeat("a", 20), Rating: 4})
	assert.NoError(t, err)
	assert.Equal(t, 1, store.creates)
}

func TestValidateTestimonial(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.TestimonialRequest
		wantErr bool
	}{
		{name: "valid", req: domain.TestimonialRequest{Content: strings.Repeat("x", 20), Rating: 1}},
		{name: "too_short", req: domain.TestimonialRequest{Content: strings.Repeat("x", 19), Rating: 3}, wantErr: true},
		{name: "padded_short", req: domain.TestimonialRequest{Content: "   " + strings.Repeat("x", 19) + "   ", Rating: 3}, wantErr: true},
		{name: "multibyte", req: domain.TestimonialRequest{Content: strings.Repeat("é", 20), Rating: 5}},
		{name: "rating_zero", req: domain.TestimonialRequest{Content: strings.Repeat("x", 20), Rating: 0}, wantErr: true},
		{name: "rating_six", req: domain.TestimonialRequest{Content: strings.Repeat("x", 20), Rating: 6}, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := client.ValidateTestimonial(testCase.req)
			if testCase.wantErr {
				assert.Equal(t, client.KindValidation, client.KindOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTestimonialClient_ApprovedDegrades(t *testing.T) {
	b := newBackend(t)
	b.router.HandleFunc("/api/testimonials", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "database down"})
	}).Methods("GET")

	testimonials := client.NewTestimonialClient(b.requester())

	items, err := testimonials.Approved(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	items, err = testimonials.Approved(context.Background(), client.WithErrorPolicy(client.PolicyThrow))
	assert.Nil(t, items)
	assert.EqualError(t, err, "database down")
}

func TestTestimonialClient_Approved(t *testing.T) {
	b := newBackend(t)
	b.router.HandleFunc("/api/testimonials", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ok([]domain.Testimonial{{ID: 1, Content: "Great food", Rating: 5, Approved: true}}))
	}).Methods("GET")

	items, err := client.NewTestimonialClient(b.requester()).Approved(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Approved)
}

func TestTestimonialClient_Moderation(t *testing.T) {
	b := newBackend(t)
	b.signIn("admin")

	b.router.HandleFunc("/api/testimonials/{id}/approve", requireBearer("admin", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ok(domain.Testimonial{ID: 8, Approved: true}))
	})).Methods("PATCH")
	b.router.HandleFunc("/api/testimonials/{id}/reject", requireBearer("admin", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ok(domain.Testimonial{ID: 8, Approved: false}))
	})).Methods("PATCH")
	b.router.HandleFunc("/api/testimonials/pending", requireBearer("admin", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ok([]domain.Testimonial{{ID: 8}}))
	})).Methods("GET")

	testimonials := client.NewTestimonialClient(b.requester())
	ctx := context.Background()

	pending, err := testimonials.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	approved, err := testimonials.Approve(ctx, 8)
	require.NoError(t, err)
	assert.True(t, approved.Data.Approved)

	rejected, err := testimonials.Reject(ctx, 8)
	require.NoError(t, err)
	assert.False(t, rejected.Data.Approved)
}

func TestTestimonialClient_MineWithoutToken(t *testing.T) {
	b := newBackend(t)

	mine, err := client.NewTestimonialClient(b.requester()).Mine(context.Background())

	assert.Nil(t, mine)
	assert.ErrorIs(t, err, client.ErrNotAuthenticated)
}
