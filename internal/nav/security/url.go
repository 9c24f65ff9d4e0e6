package security

import (
	"net/url"
	"strings"
)

// IsValidURL reports whether raw parses as an http or https URL. Relative
// references count as valid because they resolve against the current origin.
func IsValidURL(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		return true
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// IsSameOrigin reports whether raw, resolved against base, has the same
// scheme and host as base. A nil base only accepts relative references.
func IsSameOrigin(base *url.URL, raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if base == nil {
		return !u.IsAbs() && u.Host == ""
	}

	resolved := base.ResolveReference(u)
	return strings.EqualFold(resolved.Scheme, base.Scheme) && strings.EqualFold(resolved.Host, base.Host)
}
