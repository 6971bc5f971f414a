// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryPolicy bounds automatic retries of a failed fetch.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// DefaultRetryPolicy is used by pollers that do not configure their own policy.
var DefaultRetryPolicy = RetryPolicy{MaxRetries: 3, BaseDelay: time.Second}

// Delay returns the wait before the retry that follows retryCount earlier retries.
func (p RetryPolicy) Delay(retryCount int) time.Duration {
	if retryCount < 0 {
		retryCount = 0
	}
	return p.BaseDelay << uint(retryCount)
}

// Backoff returns a fresh backoff yielding Delay(0), Delay(1), ... and
// stopping after MaxRetries values. A zero policy yields a backoff that stops
// immediately.
func (p RetryPolicy) Backoff() retry.Backoff {
	if p.MaxRetries <= 0 || p.BaseDelay <= 0 {
		return retry.BackoffFunc(func() (time.Duration, bool) { return 0, true })
	}
	return retry.WithMaxRetries(uint64(p.MaxRetries), retry.NewExponential(p.BaseDelay))
}
