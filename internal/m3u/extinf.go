// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package m3u

import (
	"strconv"
	"strings"
)

// parseExtinf parses the text after "#EXTINF:" into a track without URL.
//
//	-1 tvg-id="orf1.at" group-title="AT",ORF1 HD
//	^dur ^attributes                    ^name
func parseExtinf(rest string) Track {
	left, name := splitExtinf(rest)
	left = strings.TrimSpace(left)

	t := Track{Name: strings.TrimSpace(name)}
	if n := leadingInt(left); n > 0 {
		if d, err := strconv.Atoi(left[:n]); err == nil {
			t.Duration = intPtr(d)
			left = left[n:]
		}
	}

	var order []string
	parseAttributes(left, &t.Attrs, &order)
	t.AttrOrder = firstSeen(order)

	if group, ok := t.Attrs.Get("group"); ok && t.Attrs.Value("group-title") == "" {
		t.Attrs.Set("group-title", group)
	}
	return t
}

// splitExtinf splits at the first comma outside single or double quotes.
// Without such a comma the whole input is the attribute segment.
func splitExtinf(s string) (attrs, name string) {
	var inSingle, inDouble bool
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
		case ',':
			if !inSingle && !inDouble {
				return s[:i], s[i+1:]
			}
		}
	}
	return s, ""
}

// leadingInt returns the length of an optionally signed run of ASCII digits
// at the start of s, or 0 when there is none.
func leadingInt(s string) int {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	digits := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digits {
		return 0
	}
	return i
}

func firstSeen(keys []string) []string {
	if len(keys) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(keys))
	out := keys[:0]
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
