package adapter

import (
	"context"
	"time"
)

type requestOptions struct {
	query     map[string]string
	timeout   time.Duration
	token     string
	hasToken  bool
	anonymous bool
	silent    bool
}

// RequestOption tunes a single adapter call.
type RequestOption func(*requestOptions)

// WithQuery adds query parameters. Empty values are skipped.
func WithQuery(params map[string]string) RequestOption {
	return func(o *requestOptions) {
		if o.query == nil {
			o.query = make(map[string]string, len(params))
		}
		for k, v := range params {
			if v != "" {
				o.query[k] = v
			}
		}
	}
}

// WithTimeout overrides the configured per-call deadline.
func WithTimeout(d time.Duration) RequestOption {
	return func(o *requestOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithToken sends token instead of the session's token.
func WithToken(token string) RequestOption {
	return func(o *requestOptions) {
		o.token = token
		o.hasToken = true
	}
}

// Anonymous sends no Authorization header. A 401 on an anonymous call is an
// ordinary error: there is no session to expire.
func Anonymous() RequestOption {
	return func(o *requestOptions) {
		o.anonymous = true
	}
}

// Silent suppresses the error notification. The session-expiry flow still runs.
func Silent() RequestOption {
	return func(o *requestOptions) {
		o.silent = true
	}
}

type silentKey struct{}

// SilentContext marks every adapter call made with ctx as silent. Background
// refreshes use it so typed endpoints need no extra parameters.
func SilentContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, silentKey{}, true)
}

func isSilent(ctx context.Context) bool {
	silent, _ := ctx.Value(silentKey{}).(bool)
	return silent
}
