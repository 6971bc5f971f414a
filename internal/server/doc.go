// Package server runs the development backend: the HTTP listener that
// serves both the REST API and the websocket endpoint, with signal handling
// and graceful shutdown.
package server
