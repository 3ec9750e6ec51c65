// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package channels

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ManuGH/m3uplus/internal/m3u"
)

// Score weights.
const (
	weightCatchup       = 2.0
	weightCatchupSource = 1.0
	weightLogo          = 1.5
	weightGroup         = 1.0
	weightTvgID         = 1.0
	weightTvgName       = 0.5
	// urlBonusBase minus log10 of the URL length favours short URLs:
	// 1 up to 10 runes, 0 from 100 runes on.
	urlBonusBase = 2.0
)

// Score rates t as a source for its channel. Higher is better.
func Score(t *m3u.Track, opts Options) float64 {
	var s float64
	if c := t.Attr("catchup"); c != "" && c != "default" {
		s += weightCatchup
		if t.Attr("catchup-source") != "" {
			s += weightCatchupSource
		}
	}
	if opts.PreferLogo && t.Attr("tvg-logo") != "" {
		s += weightLogo
	}
	if opts.PreferGroup != "" && strings.EqualFold(opts.PreferGroup, t.Attr("group-title")) {
		s += weightGroup
	}
	if t.Attr("tvg-id") != "" {
		s += weightTvgID
	}
	if t.Attr("tvg-name") != "" {
		s += weightTvgName
	}
	n := max(10, utf8.RuneCountInString(t.URL))
	s += max(0, urlBonusBase-math.Log10(float64(n)))
	return s
}
