// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
)

// Envelope is the standard response wrapper returned by every backend endpoint.
//
// A successful response carries its resource in Data. Message and Error hold
// human-readable text the backend may attach to both successes and failures.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// HasData reports whether the envelope carries a non-null data member.
func (e Envelope) HasData() bool {
	trimmed := bytes.TrimSpace(e.Data)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// Text returns the most specific server-provided text: Error first, then Message.
func (e Envelope) Text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// Page is the list payload shape used by paginated endpoints.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}
