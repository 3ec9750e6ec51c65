// Package normalize holds the string normalizations used to derive channel
// identities: invisible-character trimming, ASCII slugs and URL bases.
package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Trim removes Unicode whitespace and invisible edge characters
// (zero-width spaces and joiners, BOM).
func Trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) ||
			r == '\u200B' || // Zero Width Space
			r == '\u200C' || // Zero Width Non-Joiner
			r == '\u200D' || // Zero Width Joiner
			r == '\uFEFF' // Zero Width Non-Breaking Space (BOM)
	})
}

// Token normalizes a string token for case-insensitive matching.
func Token(s string) string {
	return strings.ToLower(Trim(s))
}

// Slug turns a display name into an ASCII identifier:
// NFD decomposition, combining marks removed, lower-cased, every run of
// characters outside [a-z0-9] collapsed into one hyphen, edge hyphens
// trimmed. "Österreich 1 (HD)" becomes "osterreich-1-hd".
//
// Names without any ASCII letter or digit yield "".
func Slug(s string) string {
	// Transformers carry state, so the chain is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}

	var b strings.Builder
	b.Grow(len(s))
	hyphen := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			hyphen = false
			b.WriteRune(r)
			continue
		}
		hyphen = true
	}
	return b.String()
}

// maxPathSegments is how many leading path segments a URL base keeps.
const maxPathSegments = 2

// URLBase reduces a stream URL to its origin and path prefix:
// lower-cased scheme://host followed by up to two non-empty path segments.
// Query and fragment are dropped.
//
//	http://Origin.Example/live/ch1/index.m3u8?t=1 -> http://origin.example/live/ch1
//
// Input that is not an absolute URL with a host goes through a best-effort
// split on "?", "#" and "/" instead.
func URLBase(raw string) string {
	raw = strings.TrimSpace(raw)
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" && u.Host != "" {
		return withSegments(strings.ToLower(u.Scheme+"://"+u.Host), u.EscapedPath(), maxPathSegments)
	}
	return fallbackBase(raw)
}

func fallbackBase(raw string) string {
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}
	if scheme, rest, ok := strings.Cut(raw, "://"); ok {
		host, path, _ := strings.Cut(rest, "/")
		return withSegments(strings.ToLower(scheme+"://"+host), path, maxPathSegments)
	}
	return withSegments("", raw, maxPathSegments+1)
}

// withSegments appends up to n non-empty segments of path to base.
func withSegments(base, path string, n int) string {
	var b strings.Builder
	b.WriteString(base)
	for _, seg := range strings.Split(path, "/") {
		if n == 0 {
			break
		}
		if seg == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('/')
		}
		b.WriteString(seg)
		n--
	}
	return b.String()
}

// RequestHash returns a SHA-256 hex digest over body and params. params are
// marshalled with encoding/json, which sorts map keys, so equal inputs hash
// equally regardless of map iteration order.
func RequestHash(body []byte, params map[string]any) (string, error) {
	meta, err := json.Marshal(params)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write(meta)
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil)), nil
}
