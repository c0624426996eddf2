// Package urlnorm rewrites TippmixPro URLs into the form the headless
// renderer can load.
//
// The public www host refuses to render outside its iframe embedding, while
// the sports2 backend host serves the same single-page application directly.
package urlnorm

import (
	"net/url"
	"strings"
)

const (
	// BackendHost serves the sportsbook application without the embedding
	// restriction of the public host.
	BackendHost = "sports2.tippmixpro.hu"

	publicHost = "tippmixpro.hu"

	// embeddedSegment marks iframe delivery, legacySegment the old
	// standalone delivery mode.
	embeddedSegment = "/i/"
	legacySegment   = "/e/"
)

// IsPublic reports whether host is the public hostname variant.
func IsPublic(host string) bool {
	host = strings.ToLower(host)
	return host == publicHost || host == "www."+publicHost
}

// Normalize returns the renderable form of raw. URLs on other hosts, and
// anything that fails to parse, are returned unchanged.
func Normalize(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || !IsPublic(u.Hostname()) {
		return raw
	}

	if port := u.Port(); port != "" {
		u.Host = BackendHost + ":" + port
	} else {
		u.Host = BackendHost
	}

	// Work on the escaped form so encoded slashes survive.
	escaped := stripSegment(u.EscapedPath(), embeddedSegment)
	escaped = stripSegment(escaped, legacySegment)
	path, err := url.PathUnescape(escaped)
	if err != nil {
		return raw
	}
	u.Path, u.RawPath = path, escaped

	return u.String()
}

// stripSegment removes the first occurrence of seg, keeping one slash in
// its place.
func stripSegment(path, seg string) string {
	return strings.Replace(path, seg, "/", 1)
}
