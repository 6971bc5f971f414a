// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// NotificationKind is the discriminator of the notification union.
type NotificationKind string

const (
	NotificationDeposit        NotificationKind = "deposit"
	NotificationWithdrawal     NotificationKind = "withdrawal"
	NotificationTicketReply    NotificationKind = "ticket_reply"
	NotificationLeverageChange NotificationKind = "leverage_change"
	NotificationSystem         NotificationKind = "system"
)

// ErrUnknownNotificationKind is returned by DecodeNotification for an unrecognized type.
var ErrUnknownNotificationKind = errors.New("unknown notification kind")

// NotificationHeader holds the fields shared by every notification kind.
type NotificationHeader struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notification is a closed sum type. Only the variants in this package implement it.
type Notification interface {
	Kind() NotificationKind
	Header() NotificationHeader
	isNotification()
}

type DepositNotification struct {
	NotificationHeader
	DepositID string  `json:"depositId"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Status    string  `json:"status"`
}

type WithdrawalNotification struct {
	NotificationHeader
	WithdrawalID string  `json:"withdrawalId"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	Status       string  `json:"status"`
}

type TicketReplyNotification struct {
	NotificationHeader
	TicketID string `json:"ticketId"`
	Subject  string `json:"subject"`
}

type LeverageChangeNotification struct {
	NotificationHeader
	AccountID   string `json:"accountId"`
	OldLeverage int    `json:"oldLeverage"`
	NewLeverage int    `json:"newLeverage"`
}

type SystemNotification struct {
	NotificationHeader
}

func (DepositNotification) Kind() NotificationKind        { return NotificationDeposit }
func (WithdrawalNotification) Kind() NotificationKind     { return NotificationWithdrawal }
func (TicketReplyNotification) Kind() NotificationKind    { return NotificationTicketReply }
func (LeverageChangeNotification) Kind() NotificationKind { return NotificationLeverageChange }
func (SystemNotification) Kind() NotificationKind         { return NotificationSystem }

func (n DepositNotification) Header() NotificationHeader        { return n.NotificationHeader }
func (n WithdrawalNotification) Header() NotificationHeader     { return n.NotificationHeader }
func (n TicketReplyNotification) Header() NotificationHeader    { return n.NotificationHeader }
func (n LeverageChangeNotification) Header() NotificationHeader { return n.NotificationHeader }
func (n SystemNotification) Header() NotificationHeader         { return n.NotificationHeader }

func (DepositNotification) isNotification()        {}
func (WithdrawalNotification) isNotification()     {}
func (TicketReplyNotification) isNotification()    {}
func (LeverageChangeNotification) isNotification() {}
func (SystemNotification) isNotification()         {}

// rawNotification is the wire shape: the kind-specific fields live under data.
type rawNotification struct {
	NotificationHeader
	Type NotificationKind `json:"type"`
	Data json.RawMessage  `json:"data"`
}

// DecodeNotification resolves a wire notification into its variant by the type discriminator.
func DecodeNotification(raw []byte) (Notification, error) {
	var wire rawNotification
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("decode notification: %w", err)
	}

	var (
		n   Notification
		err error
	)
	switch wire.Type {
	case NotificationDeposit:
		v := DepositNotification{NotificationHeader: wire.NotificationHeader}
		err = unmarshalData(wire.Data, &v)
		n = v
	case NotificationWithdrawal:
		v := WithdrawalNotification{NotificationHeader: wire.NotificationHeader}
		err = unmarshalData(wire.Data, &v)
		n = v
	case NotificationTicketReply:
		v := TicketReplyNotification{NotificationHeader: wire.NotificationHeader}
		err = unmarshalData(wire.Data, &v)
		n = v
	case NotificationLeverageChange:
		v := LeverageChangeNotification{NotificationHeader: wire.NotificationHeader}
		err = unmarshalData(wire.Data, &v)
		n = v
	case NotificationSystem:
		n = SystemNotification{NotificationHeader: wire.NotificationHeader}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNotificationKind, wire.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s notification: %w", wire.Type, err)
	}
	return n, nil
}

// unmarshalData fills only the variant-specific fields; the header is already set.
func unmarshalData[T any](data json.RawMessage, dst *T) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, dst)
}

// DecodeNotifications decodes a list, skipping kinds this client does not know.
func DecodeNotifications(raw []json.RawMessage) ([]Notification, error) {
	out := make([]Notification, 0, len(raw))
	for _, r := range raw {
		n, err := DecodeNotification(r)
		if errors.Is(err, ErrUnknownNotificationKind) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
