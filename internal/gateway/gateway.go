package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the upstream origins. Request paths are forwarded unchanged,
// so both values are scheme://host[:port] without a path.
type Config struct {
	BackendURL   string
	AIServiceURL string
}

// Gateway puts the cloud-kitchen backend and the suggestion service behind a
// single origin for local development.
type Gateway struct {
	config Config
	client HTTPClient
	logger *zap.SugaredLogger
}

func NewGateway(config Config, client HTTPClient, logger *zap.SugaredLogger) *Gateway {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Gateway{
		config: Config{
			BackendURL:   strings.TrimRight(config.BackendURL, "/"),
			AIServiceURL: strings.TrimRight(config.AIServiceURL, "/"),
		},
		client: client,
		logger: logger,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":  "healthy",
		"service": "dev-gateway",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}
	g.logger.Debugw("proxy", "method", r.Method, "path", r.URL.Path, "target", url)

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		g.logger.Errorw("failed to create upstream request", "target", url, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warnw("upstream unavailable", "target", targetURL, "error", err)
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		g.logger.Warnw("failed to copy upstream response", "target", targetURL, "error", err)
	}
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if path == "/api/suggestions" || strings.HasPrefix(path, "/api/suggestions/") {
		g.ProxyRequest(w, r, g.config.AIServiceURL)
		return
	}

	if strings.HasPrefix(path, "/api/") {
		g.ProxyRequest(w, r, g.config.BackendURL)
		return
	}

	g.logger.Debugw("unmatched route", "method", r.Method, "path", path)
	http.Error(w, "route not found", http.StatusNotFound)
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r
}
