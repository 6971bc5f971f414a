// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/fx-desk/internal/config"
	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/internal/notify"
	"github.com/MKhiriev/fx-desk/internal/utils"
	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/singleflight"
)

// RootPath is where the navigator sends the user when the session expires.
const RootPath = "/"

// SessionExpiredTitle is the title of the notice shown after a 401.
const SessionExpiredTitle = "Session expired"

// Transport is the single choke point for outbound REST calls. It attaches
// the session's bearer token, decodes the response envelope, classifies
// failures into [APIError] values and runs the global side effects: the
// session-expiry flow on 401 and a notification for every other failure.
type Transport struct {
	client *utils.HTTPClient

	session   SessionContext
	navigator Navigator
	notifier  notify.Notifier

	timeout       time.Duration
	healthTimeout time.Duration

	// expiry collapses concurrent 401s into one invalidate-and-redirect.
	expiry singleflight.Group

	logger *logger.Logger
}

// NewTransport constructs a [Transport] for the REST API at cfg.BaseURL.
//
// Returns [ErrInvalidBaseURL] (wrapped) if the address is empty or cannot be
// parsed as a URL with a host.
func NewTransport(cfg config.ClientAdapter, session SessionContext, navigator Navigator, notifier notify.Notifier, log *logger.Logger) (*Transport, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = config.DefaultRequestTimeout
	}
	healthTimeout := cfg.HealthTimeout
	if healthTimeout <= 0 {
		healthTimeout = config.DefaultHealthTimeout
	}

	return &Transport{
		client:        utils.NewHTTPClient(baseURL),
		session:       session,
		navigator:     navigator,
		notifier:      notifier,
		timeout:       timeout,
		healthTimeout: healthTimeout,
		logger:        log.Component("adapter"),
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (t *Transport) options(opts []RequestOption) requestOptions {
	o := requestOptions{timeout: t.timeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Request performs one REST call against path (relative to the base URL) and
// returns the envelope's data member.
//
// body, when non-nil, is sent as JSON. Every failure is returned as an
// *[APIError]; the caller decides how to recover locally.
func (t *Transport) Request(ctx context.Context, method, path string, body any, opts ...RequestOption) (json.RawMessage, error) {
	o := t.options(opts)

	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	req := t.client.R().
		SetContext(callCtx).
		SetHeader("Content-Type", "application/json")
	if body != nil {
		req.SetBody(body)
	}
	if len(o.query) > 0 {
		req.SetQueryParams(o.query)
	}
	t.authorize(ctx, req, o)

	started := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, t.fail(ctx, method, path, o, classifyTransportError(ctx, callCtx, err))
	}

	t.logger.Debug().
		Str("func", "Transport.Request").
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode()).
		Dur("elapsed", time.Since(started)).
		Msg("request completed")

	data, apiErr := decodeResponse(resp.StatusCode(), resp.Header(), resp.Body())
	if apiErr != nil {
		return nil, t.fail(ctx, method, path, o, apiErr)
	}
	return data, nil
}

// authorize attaches the bearer token: the explicit one if the caller set it,
// otherwise the first token of the session.
func (t *Transport) authorize(ctx context.Context, req *resty.Request, o requestOptions) {
	if o.anonymous {
		return
	}

	token := o.token
	if !o.hasToken {
		token, _ = t.session.Token(ctx)
	}
	if token != "" {
		req.SetAuthToken(token)
	}
}

// fail logs apiErr, runs the side effect its kind calls for and returns it.
func (t *Transport) fail(ctx context.Context, method, path string, o requestOptions, apiErr *APIError) error {
	t.logger.Warn().
		Str("func", "Transport.Request").
		Str("method", method).
		Str("path", path).
		Str("kind", apiErr.Kind.String()).
		Int("status", apiErr.Status).
		Msg("request failed")
	if ev := t.logger.Diagnostic(); ev != nil {
		ev.Err(apiErr.Err).Str("path", path).Str("message", apiErr.Message).Msg("request failure detail")
	}

	switch {
	case apiErr.Kind == KindUnauthorized && !o.anonymous:
		t.expireSession(ctx)
	case apiErr.Kind == KindCanceled:
	case o.silent || isSilent(ctx):
	default:
		n := notify.Error(apiErr.UserMessage())
		if apiErr.Kind == KindRateLimited || apiErr.Kind == KindTimeout || apiErr.Kind == KindNetwork {
			n.Level = notify.LevelWarning
		}
		t.notifier.Notify(n)
	}
	return apiErr
}

// expireSession clears every role token, redirects to the root route and
// tells the user why. Concurrent callers share one run.
func (t *Transport) expireSession(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)

	_, _, _ = t.expiry.Do("expire", func() (any, error) {
		if err := t.session.Invalidate(ctx); err != nil {
			t.logger.Err(err).Str("func", "Transport.expireSession").Msg("failed to invalidate session")
		}
		t.navigator.Redirect(RootPath)

		n := notify.Warning(KindUnauthorized.defaultMessage())
		n.Title = SessionExpiredTitle
		t.notifier.Notify(n)
		return nil, nil
	})
}
