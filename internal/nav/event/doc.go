// Package event delivers router lifecycle events (router:ready,
// router:before-load, router:complete, router:error) to listeners off the
// navigation path.
package event
