package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cloud-kitchen-client/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxErrorBody = 64 << 10

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Navigator sends the user back to the login screen after a forced logout.
type Navigator interface {
	RedirectToLogin(ctx context.Context)
}

type NavigatorFunc func(ctx context.Context)

func (f NavigatorFunc) RedirectToLogin(ctx context.Context) {
	f(ctx)
}

type AuthMode int

const (
	// AuthNone never sends a token. A 401 here is an ordinary API error.
	AuthNone AuthMode = iota
	// AuthOptional sends the token when one is stored and always proceeds.
	AuthOptional
	// AuthRequired fails before any network call when no token is stored.
	AuthRequired
)

type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Auth   AuthMode
}

// Envelope is the {success, message, data} wrapper most endpoints return.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

type Requester struct {
	baseURL   string
	client    HTTPClient
	session   *session.Manager
	navigator Navigator
	logger    *zap.SugaredLogger
}

func NewRequester(baseURL string, client HTTPClient, sess *session.Manager, nav Navigator, logger *zap.SugaredLogger) *Requester {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Requester{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    client,
		session:   sess,
		navigator: nav,
		logger:    logger,
	}
}

func (r *Requester) BaseURL() string {
	return r.baseURL
}

// URL joins path onto the configured base URL.
func (r *Requester) URL(path string) string {
	return r.baseURL + path
}

// Do issues req against the base URL and decodes a successful JSON body into
// out. out may be nil to discard the body.
func (r *Requester) Do(ctx context.Context, req Request, out any) error {
	target := r.URL(req.Path)
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	header, err := r.headers(ctx, req.Auth)
	if err != nil {
		return err
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return &Error{Kind: KindValidation, Message: "failed to encode request body", Err: err}
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return &Error{Kind: KindTransport, Message: "failed to create API request", Err: err}
	}
	httpReq.Header = header
	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-ID", requestID)

	started := time.Now()
	resp, err := r.client.Do(httpReq)
	if err != nil {
		r.logger.Debugw("request failed", "method", req.Method, "url", target, "request_id", requestID, "error", err)
		return &Error{Kind: KindTransport, Message: "backend unavailable", Err: err}
	}
	defer resp.Body.Close()

	r.logger.Debugw("request",
		"method", req.Method,
		"url", target,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(started),
	)

	if resp.StatusCode == http.StatusUnauthorized && req.Auth != AuthNone {
		r.Unauthorized(ctx)
		return &Error{Kind: KindUnauthorized, Status: resp.StatusCode, Message: "Unauthorized access. Please log in again."}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{Kind: KindAPI, Status: resp.StatusCode, Message: errorMessage(raw, resp)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Status: resp.StatusCode, Message: "failed to read response", Err: err}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Kind: KindTransport, Status: resp.StatusCode, Message: "invalid JSON response", Err: err}
	}
	return nil
}

// Unauthorized tears the session down and redirects to login. Every 401 on an
// authenticated call ends here.
func (r *Requester) Unauthorized(ctx context.Context) {
	if r.session != nil {
		if err := r.session.Invalidate(ctx); err != nil {
			r.logger.Errorw("failed to clear session", "error", err)
		}
	}
	r.logger.Info("session rejected by server, redirecting to login")
	if r.navigator != nil {
		r.navigator.RedirectToLogin(ctx)
	}
}

// Token returns the stored token, failing fast when auth is required and
// none is stored.
func (r *Requester) Token(ctx context.Context, mode AuthMode) (string, error) {
	if mode == AuthNone || r.session == nil {
		if mode == AuthRequired {
			return "", &Error{Kind: KindNotAuthenticated, Message: "Not authenticated. Please log in."}
		}
		return "", nil
	}
	token, err := r.session.Token(ctx)
	if err != nil {
		return "", &Error{Kind: KindTransport, Message: "failed to read session", Err: err}
	}
	if token == "" && mode == AuthRequired {
		return "", &Error{Kind: KindNotAuthenticated, Message: "Not authenticated. Please log in."}
	}
	return token, nil
}

func (r *Requester) headers(ctx context.Context, mode AuthMode) (http.Header, error) {
	token, err := r.Token(ctx, mode)
	if err != nil {
		return nil, err
	}
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h, nil
}

func errorMessage(raw []byte, resp *http.Response) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	if resp.Status != "" {
		return resp.Status
	}
	return fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

func send[T any](ctx context.Context, r *Requester, req Request) (*Envelope[T], error) {
	var env Envelope[T]
	if err := r.Do(ctx, req, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// sendData unwraps the envelope, treating success=false as an API error.
func sendData[T any](ctx context.Context, r *Requester, req Request) (T, error) {
	var zero T
	env, err := send[T](ctx, r, req)
	if err != nil {
		return zero, err
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "request was not successful"
		}
		return zero, &Error{Kind: KindAPI, Message: msg}
	}
	return env.Data, nil
}

// degrade applies the call's error policy to a failed request.
func degrade[T any](r *Requester, o callOptions, op string, fallback T, err error) (T, error) {
	if o.policy != PolicyDegrade {
		var zero T
		return zero, err
	}
	r.logger.Warnw("request failed, returning empty result", "op", op, "error", err)
	return fallback, nil
}

func isNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindAPI && e.Status == http.StatusNotFound
}
