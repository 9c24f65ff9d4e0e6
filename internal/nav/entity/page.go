package entity

import "net/url"

// Page is a fragment ready to be swapped into the container.
type Page struct {
	Path    string
	Title   string
	Content string
	Scroll  bool
}

// Form describes a form submission routed through the fetcher.
type Form struct {
	Action string
	Method string
	Values url.Values
}
