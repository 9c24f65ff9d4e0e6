// Package pkgrouter wraps HTTP routing and common middleware used by the
// fragment server.
//
// It provides a small router abstraction over httprouter plus shared concerns
// like JSON encoding, error mapping, logging, recovery, and correlation ID
// propagation. HTML page serving plugs in through Router.Fallback.
package pkgrouter
