// Package routes derives per-resource REST paths from the operator-configured
// login path template. The backend may be mounted flat (api/login) or
// namespaced (api/auth/login); siblings of the login route are found by
// substituting the resource name for the final "login" component, so a single
// setting covers every resource.
package routes

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultTemplate is assumed when the configured login path is blank.
const DefaultTemplate = "api/login"

// Derive returns the path segments for a resource, substituting the resource
// name for the literal "login" in the template, case-insensitively. A template
// of just "login" yields the bare resource name; that is intentional.
func Derive(template, resource string) []string {
	template = strings.TrimSpace(template)
	if template == "" {
		template = DefaultTemplate
	}

	replaced := replaceFold(template, "login", resource)

	parts := strings.Split(replaced, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		segments = append(segments, p)
	}
	return segments
}

// Join appends derived segments to the base URL.
func Join(base string, segments []string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(s)
	}
	return b.String()
}

// Resource is shorthand for Join(base, Derive(template, resource)).
func Resource(base, template, resource string) string {
	return Join(base, Derive(template, resource))
}

// replaceFold replaces every occurrence of old in s, ignoring case, with new.
func replaceFold(s, old, new string) string {
	if old == "" {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); {
		if n := foldMatchLen(s[i:], old); n > 0 {
			b.WriteString(new)
			i += n
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

// foldMatchLen reports how many bytes at the start of s match old ignoring
// case, or 0 when they do not. Offsets stay in s itself: lowercasing a rune
// can change its byte length, so a match length computed on a lowered copy
// would not be valid for slicing s.
func foldMatchLen(s, old string) int {
	var i int
	for _, or := range old {
		r, size := utf8.DecodeRuneInString(s[i:])
		if size == 0 || unicode.ToLower(r) != unicode.ToLower(or) {
			return 0
		}
		i += size
	}
	return i
}
