package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"cloud-kitchen-client/internal/client"
	"cloud-kitchen-client/internal/domain"
	"cloud-kitchen-client/internal/mocks"
	"cloud-kitchen-client/internal/session"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// backend is a fake cloud-kitchen API. Tests register only the routes they
// exercise; anything else returns 404.
type backend struct {
	t         *testing.T
	router    *mux.Router
	server    *httptest.Server
	session   *session.Manager
	navigator *mocks.Navigator
	hits      atomic.Int32
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{
		t:         t,
		router:    mux.NewRouter(),
		session:   session.NewManager(session.NewMemoryStore()),
		navigator: mocks.NewNavigator(t),
	}
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.hits.Add(1)
		b.router.ServeHTTP(w, r)
	}))
	t.Cleanup(b.server.Close)
	return b
}

func (b *backend) requester() *client.Requester {
	return client.NewRequester(b.server.URL+"/api", b.server.Client(), b.session, b.navigator, zap.NewNop().Sugar())
}

func (b *backend) signIn(token string) {
	b.t.Helper()
	require.NoError(b.t, b.session.SignIn(context.Background(), token, &domain.User{ID: 1, Name: "Test", Role: domain.RoleStudent}))
}

func (b *backend) token() string {
	b.t.Helper()
	token, err := b.session.Token(context.Background())
	require.NoError(b.t, err)
	return token
}

func (b *backend) expectRedirect() {
	b.navigator.On("RedirectToLogin", context.Background()).Return().Once()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func ok(data any) map[string]any {
	return map[string]any{"success": true, "data": data}
}

func requireBearer(token string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid or expired token"})
			return
		}
		next(w, r)
	}
}
