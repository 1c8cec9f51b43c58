package rdf

import (
	"net/url"
	"strings"
)

// uriHasScheme reports whether s begins with a URI scheme, i.e. is an
// absolute URI reference.
func uriHasScheme(s string) bool {
	if len(s) == 0 || !isAlpha(int(s[0])) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := int(s[i])
		if c == ':' {
			return true
		}
		if !isURISchemeChar(c) {
			return false
		}
	}
	return false
}

// resolveIRI resolves a relative IRI against a base IRI according to RFC 3986.
func resolveIRI(baseStr, relative string) string {
	// Use Go's net/url for proper RFC 3986 resolution.
	baseURL, err := url.Parse(baseStr)
	if err != nil {
		return joinIRI(baseStr, relative)
	}

	relURL, err := url.Parse(relative)
	if err != nil {
		return joinIRI(baseStr, relative)
	}

	// If relative URL has a scheme, it's absolute - return as-is.
	if relURL.Scheme != "" {
		return relative
	}

	return baseURL.ResolveReference(relURL).String()
}

// joinIRI is the fallback for references net/url refuses to parse: replace
// everything after the base's last slash.
func joinIRI(baseStr, relative string) string {
	if strings.HasSuffix(baseStr, "/") {
		return baseStr + relative
	}
	if lastSlash := strings.LastIndex(baseStr, "/"); lastSlash >= 0 {
		return baseStr[:lastSlash+1] + relative
	}
	return baseStr + "/" + relative
}
