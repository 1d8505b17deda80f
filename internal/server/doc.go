// Package server implements the HTTP and WebSocket transport of the realtime
// chat core.
//
// The implementation is organized into specialized files for configuration, hub
// management, clients, routing, the internal hook API, and HTTP handlers.
package server
