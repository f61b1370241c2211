package analytics

import (
	"net/url"
	"strings"
)

// Domain returns the lowercased hostname of rawURL, without scheme, port,
// path or query.
//
// Malformed input yields "". So does input without a scheme ("app.foo.com"),
// which parses as a path. An empty hostname later falls back to
// FallbackAnonymousID when used as an anonymous id.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
