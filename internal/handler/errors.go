// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoBackend is returned by NewHandlers when it is given no backend to
// serve. This is a fatal misconfiguration and stops the server at startup.
var errNoBackend = errors.New("no backend to serve")
