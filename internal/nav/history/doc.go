// Package history models the session history the router pushes to and the
// full-page location used when a partial navigation is abandoned.
package history
