package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/fx-desk/models"
)

// maxPlainMessage bounds the length of a text/plain error body used as a message.
const maxPlainMessage = 200

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest:
		return KindBadRequest
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusTooManyRequests:
		return KindRateLimited
	}
	if status >= http.StatusInternalServerError && status <= 599 {
		return KindServerError
	}
	return KindUnknown
}

// decodeResponse turns a received response into the envelope's data member or
// a classified error.
func decodeResponse(status int, header http.Header, body []byte) (json.RawMessage, *APIError) {
	var env models.Envelope
	decodeErr := json.Unmarshal(body, &env)

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		apiErr := &APIError{Kind: kindForStatus(status), Status: status}
		switch {
		case decodeErr == nil:
			apiErr.Message = env.Text()
		case strings.HasPrefix(header.Get("Content-Type"), "text/plain"):
			apiErr.Message = plainMessage(body)
		}
		if apiErr.Kind == KindRateLimited {
			apiErr.RetryAfter = parseRetryAfter(header.Get("Retry-After"), time.Now())
		}
		return nil, apiErr
	}

	if decodeErr != nil {
		return nil, &APIError{Kind: KindMalformed, Status: status, Err: decodeErr}
	}
	if !env.Success {
		return nil, &APIError{Kind: KindMalformed, Status: status, Message: env.Text(), Err: errors.New("envelope reports failure")}
	}
	if !env.HasData() {
		return nil, &APIError{Kind: KindMalformed, Status: status, Message: env.Text(), Err: errors.New("envelope has no data")}
	}
	return env.Data, nil
}

// classifyTransportError maps a failure where no response was received. ctx
// is the per-call context carrying the deadline, parent the caller's context.
func classifyTransportError(parent, ctx context.Context, err error) *APIError {
	switch {
	case errors.Is(parent.Err(), context.Canceled):
		return &APIError{Kind: KindCanceled, Err: err}
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return &APIError{Kind: KindTimeout, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &APIError{Kind: KindTimeout, Err: err}
	}
	return &APIError{Kind: KindNetwork, Err: err}
}

func plainMessage(body []byte) string {
	msg := strings.TrimSpace(string(body))
	if len(msg) <= maxPlainMessage {
		return msg
	}
	cut := maxPlainMessage
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut]
}

// parseRetryAfter accepts both the delay-seconds and the HTTP-date forms.
func parseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
