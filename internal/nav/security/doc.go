// Package security carries the CSRF token and CSP nonce between the page
// and outgoing requests.
//
// On the client side a Provider detects the token from the csrf-token meta
// tag and injects it into fetch headers and form values. On the server side
// the same Provider renders the meta tag and verifies incoming tokens.
package security
