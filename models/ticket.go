// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// TicketStatus is the workflow state of a support ticket.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

// Ticket is a support conversation between a client and agents.
type Ticket struct {
	ID         string       `json:"id"`
	Subject    string       `json:"subject"`
	Category   string       `json:"category"`
	Priority   string       `json:"priority"`
	Status     TicketStatus `json:"status"`
	UserID     string       `json:"userId"`
	AssignedTo string       `json:"assignedTo,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// NewTicketMessage is the body of a message persisted through the REST API.
type NewTicketMessage struct {
	Text string `json:"message"`
}

// UploadedFile describes a file accepted by an upload endpoint.
type UploadedFile struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
}
