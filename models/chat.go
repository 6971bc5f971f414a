// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// Socket event names exchanged with the realtime backend.
const (
	EventAuth         = "auth"
	EventConnect      = "connect"
	EventDisconnect   = "disconnect"
	EventError        = "error"
	EventJoinTicket   = "joinTicket"
	EventLeaveTicket  = "leaveTicket"
	EventTyping       = "typing"
	EventSendMessage  = "sendMessage"
	EventNewMessage   = "newMessage"
	EventUserTyping   = "userTyping"
	EventJoinedTicket = "joinedTicket"
	EventLeftTicket   = "leftTicket"
	EventNotification = "notification"
)

// SocketFrame is one event on the realtime connection.
type SocketFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// SocketAuth is the payload of the first frame a client sends after dialing.
type SocketAuth struct {
	Token string `json:"token"`
}

// SocketHandshake wraps SocketAuth the way the backend expects it: {"auth":{"token":...}}.
type SocketHandshake struct {
	Auth SocketAuth `json:"auth"`
}

// RoomRequest is the payload of joinTicket and leaveTicket.
type RoomRequest struct {
	TicketID string `json:"ticketId"`
}

// ChatMessage is a single message in a support ticket conversation.
type ChatMessage struct {
	ID         string    `json:"id"`
	TicketID   string    `json:"ticketId"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	SenderRole Role      `json:"senderRole"`
	Text       string    `json:"message"`
	Attachment string    `json:"attachment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TypingEvent announces that a participant started or stopped typing in a ticket.
type TypingEvent struct {
	TicketID  string `json:"ticketId"`
	UserLabel string `json:"userName"`
	IsTyping  bool   `json:"isTyping"`
}

// SocketError is the payload of the inbound error event.
type SocketError struct {
	Message string `json:"message"`
}
