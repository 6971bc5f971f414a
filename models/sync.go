// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SnapshotSource tells which kind of fetch produced a snapshot.
type SnapshotSource string

const (
	SourceInitial       SnapshotSource = "initial"
	SourceManualRefresh SnapshotSource = "manual-refresh"
	SourceAutoRefresh   SnapshotSource = "auto-refresh"
	SourceRetry         SnapshotSource = "retry"
)

// ResourceSnapshot is the last successfully fetched state of a named resource.
// A snapshot is immutable once built; a newer fetch replaces it as a whole.
type ResourceSnapshot[T any] struct {
	Payload   T
	FetchedAt time.Time
	Source    SnapshotSource
	// Seq is the request sequence number of the fetch that produced the payload.
	Seq uint64
}

// SyncPhase is the coarse state of a polled resource.
type SyncPhase int

const (
	PhaseIdle SyncPhase = iota
	PhaseLoading
	PhaseReady
	PhaseRefreshing
	PhaseFailed
	// PhaseFailedStale is a failure that still has a previously fetched payload on display.
	PhaseFailedStale
)

func (p SyncPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseRefreshing:
		return "refreshing"
	case PhaseFailed:
		return "failed"
	case PhaseFailedStale:
		return "failed-stale"
	default:
		return "unknown"
	}
}

// SyncState is the loading/error bookkeeping that accompanies a snapshot.
type SyncState struct {
	Phase       SyncPhase
	Loading     bool
	Refreshing  bool
	Error       string
	RetryCount  int
	LastUpdated time.Time
}

// HasError reports whether the last fetch failed and the error was not cleared.
func (s SyncState) HasError() bool {
	return s.Error != ""
}
