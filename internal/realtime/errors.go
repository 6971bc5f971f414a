package realtime

import "errors"

var (
	ErrClosed       = errors.New("realtime channel closed")
	ErrDial         = errors.New("realtime dial failed")
	ErrHandshake    = errors.New("realtime handshake failed")
	ErrNotConnected = errors.New("realtime channel not connected")
	ErrEmptyMessage = errors.New("message is empty")
	ErrNoTicket     = errors.New("ticket id is required")
)
