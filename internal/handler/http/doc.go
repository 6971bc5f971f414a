// Package http implements the REST surface of the development server.
//
// It exposes route wiring, request handlers, and middleware used by the API
// the fx-desk client talks to. Authentication, role checks, request tracing,
// access logging and response compression are handled in this package
// before requests reach the in-memory backend.
package http
