// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It wires the session store, the REST transport, the dashboard pollers,
// the realtime ticket chat and the connectivity probe into a single process
// lifecycle around the terminal UI.
package client
