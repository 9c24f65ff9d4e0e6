// Package fetch loads pages over HTTP for the router.
//
// Fetch asks for a partial page with the PJAX headers, Document asks for the
// full page and Submit sends a form. Failures are reported as
// entity.NetworkError or entity.TimeoutError. A canceled caller context is
// returned as is so the router can tell a superseded navigation apart.
package fetch
