// Package workers runs the client's background jobs for as long as a
// session lasts.
package workers

import (
	"context"

	"github.com/MKhiriev/fx-desk/internal/environment"
)

// Worker is a background job. Run blocks until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}

// HealthChecker reaches the backend with a short deadline. The server
// adapter implements it.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Publisher receives connectivity transitions. *environment.Bus implements it.
type Publisher interface {
	Publish(e environment.Event) bool
}
