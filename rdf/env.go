package rdf

import (
	"sort"
	"strings"
)

// Env is a namespace environment: a current base URI plus a prefix table.
// It resolves relative references and expands prefixed names for a single
// parse or write session. An Env is not safe for concurrent use.
type Env struct {
	base     string
	prefixes map[string]string
}

// NewEnv returns an environment with the given base URI, which may be empty.
func NewEnv(base string) *Env {
	return &Env{base: base, prefixes: map[string]string{}}
}

// BaseURI returns the current base URI, or the empty string.
func (e *Env) BaseURI() string { return e.base }

// SetBaseURI replaces the base URI. A relative URI is resolved against the
// current base first, so nested @base directives compose.
func (e *Env) SetBaseURI(uri string) {
	if uri == "" {
		e.base = ""
		return
	}
	if e.base != "" && !uriHasScheme(uri) {
		uri = resolveIRI(e.base, uri)
	}
	e.base = uri
}

// SetPrefix defines or redefines a namespace prefix.
func (e *Env) SetPrefix(name, uri string) {
	e.prefixes[name] = uri
}

// Prefix returns the URI bound to a prefix name.
func (e *Env) Prefix(name string) (string, bool) {
	uri, ok := e.prefixes[name]
	return uri, ok
}

// Prefixes returns the defined prefix names in sorted order.
func (e *Env) Prefixes() []string {
	names := make([]string, 0, len(e.prefixes))
	for name := range e.prefixes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Expand expands a prefix:local name to an absolute URI.
func (e *Env) Expand(curie string) (string, status) {
	colon := strings.IndexByte(curie, ':')
	if colon < 0 {
		return "", statusBadCURIE
	}
	uri, ok := e.prefixes[curie[:colon]]
	if !ok {
		return "", statusBadCURIE
	}
	return uri + curie[colon+1:], statusSuccess
}

// Resolve resolves a URI reference against the current base. References
// that are already absolute are returned unchanged; a relative reference
// with no base in scope cannot be resolved.
func (e *Env) Resolve(ref string) (string, status) {
	if uriHasScheme(ref) {
		return ref, statusSuccess
	}
	if e.base == "" {
		return "", statusBadSyntax
	}
	resolved := resolveIRI(e.base, ref)
	if !uriHasScheme(resolved) {
		return "", statusBadSyntax
	}
	return resolved, statusSuccess
}
