// Package router matches paths against registered patterns and swaps page
// fragments in without a full reload.
//
// A navigation moves the router from idle to navigating and back. While
// navigating it runs the before hooks, loads the page from the cache or the
// fetcher, runs the route middleware and handler, and finally the after
// hooks. Starting a new navigation cancels the fetch of the previous one.
// Load failures are handed to the error hooks and, unless one of them
// handles it, end in a full page load through the Fallback.
package router
