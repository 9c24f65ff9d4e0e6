// Package entity holds the navigation domain types shared by the router,
// the fetcher and the fragment server.
package entity
