package synchronizer

import (
	"context"

	"github.com/MKhiriev/fx-desk/internal/lifecycle"
)

// Resource is the type-independent surface of a [Poller].
type Resource interface {
	Start(ctx context.Context)
	Refresh()
	ClearError()
	Close()
}

// Group drives the pollers of one screen together. Closing the group closes
// every member in reverse start order.
type Group struct {
	members []Resource
	scope   lifecycle.Scope
}

// NewGroup returns a group of members. Members are started by Start.
func NewGroup(members ...Resource) *Group {
	return &Group{members: members}
}

// Start starts every member.
func (g *Group) Start(ctx context.Context) {
	for _, m := range g.members {
		m.Start(ctx)
		g.scope.Defer(m.Close)
	}
}

// Refresh refreshes every member.
func (g *Group) Refresh() {
	for _, m := range g.members {
		m.Refresh()
	}
}

// ClearError clears the error of every member.
func (g *Group) ClearError() {
	for _, m := range g.members {
		m.ClearError()
	}
}

// Close closes every member.
func (g *Group) Close() {
	_ = g.scope.Close()
}
