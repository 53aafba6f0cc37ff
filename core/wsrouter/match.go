package wsrouter

import "strings"

// Params holds route parameters extracted from a matched path.
type Params map[string]string

// Match reports whether pathname matches pattern and returns the extracted parameters.
//
// A pattern equal to the pathname, or the wildcard "*", matches with no parameters.
// Otherwise both strings are split on "/" with empty segments dropped, so leading and
// trailing slashes are insignificant. Segment counts must be equal. A pattern segment
// starting with ":" binds the path segment under the name that follows the colon;
// every other segment must be equal byte for byte. Matching is case-sensitive.
func Match(pathname, pattern string) (Params, bool) {
	if pattern == pathname || pattern == "*" {
		return Params{}, true
	}

	pathSegments := splitSegments(pathname)
	patternSegments := splitSegments(pattern)

	if len(pathSegments) != len(patternSegments) {
		return nil, false
	}

	params := Params{}
	for i, seg := range patternSegments {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			params[name] = pathSegments[i]
			continue
		}
		if seg != pathSegments[i] {
			return nil, false
		}
	}

	return params, true
}

// JoinPath resolves route against a mount prefix. The result has a single leading
// slash and no repeated slashes.
func JoinPath(prefix, route string) string {
	return collapseSlashes("/" + prefix + "/" + route)
}

// normalizePrefix returns prefix with a single leading slash and no trailing slash.
func normalizePrefix(prefix string) string {
	p := strings.TrimRight(collapseSlashes("/"+prefix), "/")
	if p == "" {
		return "/"
	}
	return p
}

func splitSegments(s string) []string {
	parts := strings.Split(s, "/")
	segments := parts[:0]
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

func collapseSlashes(s string) string {
	if !strings.Contains(s, "//") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	prevSlash := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteByte(c)
	}
	return b.String()
}
