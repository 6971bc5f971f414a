// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/fx-desk/internal/adapter"
	"github.com/MKhiriev/fx-desk/internal/environment"
	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/juju/clock"
)

// DefaultProbeInterval is used when the probe is given no interval.
const DefaultProbeInterval = 10 * time.Second

// ConnectivityProbe checks the backend periodically and publishes
// Online/Offline on every transition. It is what tells the synchronizers
// that the connection came back.
type ConnectivityProbe struct {
	health    HealthChecker
	publisher Publisher
	clock     clock.Clock
	interval  time.Duration

	logger *logger.Logger
}

func NewConnectivityProbe(health HealthChecker, publisher Publisher, clk clock.Clock, interval time.Duration, log *logger.Logger) *ConnectivityProbe {
	if clk == nil {
		clk = clock.WallClock
	}
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	return &ConnectivityProbe{
		health:    health,
		publisher: publisher,
		clock:     clk,
		interval:  interval,
		logger:    log.Component("connectivity-probe"),
	}
}

// Run probes once right away, then every interval until ctx is cancelled.
func (p *ConnectivityProbe) Run(ctx context.Context) {
	for {
		p.Probe(ctx)

		select {
		case <-ctx.Done():
			return
		case <-p.clock.After(p.interval):
		}
	}
}

// Probe runs a single health check and publishes its outcome. It reports
// whether the backend was reachable.
func (p *ConnectivityProbe) Probe(ctx context.Context) bool {
	err := p.health.Health(ctx)
	if err != nil && (ctx.Err() != nil || errors.Is(err, adapter.ErrCanceled)) {
		// Shutting down, not offline.
		return false
	}

	event := environment.Online
	if err != nil {
		event = environment.Offline
	}
	if p.publisher.Publish(event) {
		l := p.logger.Info()
		if err != nil {
			l = p.logger.Warn().Err(err)
		}
		l.Str("func", "ConnectivityProbe.Probe").Str("event", string(event)).Msg("connectivity changed")
	}
	return err == nil
}
