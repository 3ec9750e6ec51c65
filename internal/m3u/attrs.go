// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package m3u

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// parseAttributes scans s for key=value pairs and stores them in dst with
// lower-cased keys (last write wins). When order is non-nil every matched
// key is appended to it, duplicates included.
//
// A value is "double quoted", 'single quoted' or an unquoted run of
// non-whitespace. An unterminated quote is read as the start of an unquoted
// run. Identifiers that are not directly followed by '=' are skipped, as
// are pairs whose value would be empty. No escape sequences are recognised.
func parseAttributes(s string, dst *Attributes, order *[]string) {
	i := 0
	for i < len(s) {
		if !isKeyByte(s[i]) {
			i++
			continue
		}
		start := i
		for i < len(s) && isKeyByte(s[i]) {
			i++
		}
		if i >= len(s) || s[i] != '=' {
			continue
		}
		key := strings.ToLower(s[start:i])
		value, next, ok := scanValue(s, i+1)
		if !ok {
			continue
		}
		dst.Set(key, value)
		if order != nil {
			*order = append(*order, key)
		}
		i = next
	}
}

// scanValue reads the attribute value starting at s[pos]. It returns the
// value, the index just past it and whether a value was found.
func scanValue(s string, pos int) (string, int, bool) {
	if pos >= len(s) {
		return "", pos, false
	}
	if q := s[pos]; q == '"' || q == '\'' {
		if end := strings.IndexByte(s[pos+1:], q); end >= 0 {
			closing := pos + 1 + end
			return s[pos+1 : closing], closing + 1, true
		}
	}
	end := pos
	for end < len(s) {
		r, size := utf8.DecodeRuneInString(s[end:])
		if unicode.IsSpace(r) {
			break
		}
		end += size
	}
	if end == pos {
		return "", pos, false
	}
	return s[pos:end], end, true
}

func isKeyByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '-', c == '.':
		return true
	}
	return false
}
