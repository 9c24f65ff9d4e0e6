package entity

import "time"

// EventType names a router lifecycle event.
type EventType string

const (
	EventReady      EventType = "router:ready"
	EventBeforeLoad EventType = "router:before-load"
	EventComplete   EventType = "router:complete"
	EventError      EventType = "router:error"
)

// Event is published by the router at lifecycle points.
type Event struct {
	ID    int64
	Type  EventType
	Path  string
	Route string
	Err   string
	At    time.Time
}
