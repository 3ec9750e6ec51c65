// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package m3u

import (
	"strings"
)

// ParseOptions controls Parse. The zero value parses in tolerant mode.
type ParseOptions struct {
	// Strict makes a URL line without a preceding #EXTINF an error instead
	// of a synthesized track.
	Strict bool
}

// DefaultParseOptions returns tolerant parsing options.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{}
}

const (
	tagHeader = "#EXTM3U"
	tagExtinf = "#EXTINF:"
	tagExtgrp = "#EXTGRP:"
)

// extraTags are directives kept verbatim on the pending track.
var extraTags = [...]string{tagExtgrp, "#EXTVLCOPT:", "#KODIPROP:", "#EXT-"}

// Parse reads a complete playlist text.
//
// Each line is classified once, left to right. An #EXTINF directive opens a
// pending track that the next URL line completes; a second #EXTINF before
// that replaces it and the first one is counted in Playlist.Dropped. In
// tolerant mode Parse never fails. In strict mode a URL line without pending
// track aborts the parse with a *MalformedPlaylistError and no playlist.
func Parse(text string, opts ParseOptions) (*Playlist, error) {
	text = strings.TrimPrefix(text, "\ufeff")

	p := &Playlist{Tracks: make([]Track, 0, strings.Count(text, "\n")/2+1)}
	var pending *Track
	sawContent := false

	for lineNo := 1; text != ""; lineNo++ {
		var line string
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			line, text = text[:i], text[i+1:]
		} else {
			line, text = text, ""
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		first := !sawContent
		sawContent = true
		if first && hasPrefixFold(line, tagHeader) {
			parseAttributes(line[len(tagHeader):], &p.Header, nil)
			continue
		}

		switch {
		case hasPrefixFold(line, tagExtinf):
			if pending != nil {
				p.Dropped++
			}
			t := parseExtinf(line[len(tagExtinf):])
			pending = &t

		case line[0] == '#':
			if pending != nil && isExtraTag(line) {
				pending.Extras = append(pending.Extras, line)
				if hasPrefixFold(line, tagExtgrp) && pending.Attrs.Value("group-title") == "" {
					pending.Attrs.Set("group-title", strings.TrimSpace(line[len(tagExtgrp):]))
				}
			}

		case pending != nil:
			pending.URL = line
			p.Tracks = append(p.Tracks, *pending)
			pending = nil

		case opts.Strict:
			return nil, &MalformedPlaylistError{Line: lineNo, URL: line}

		default:
			p.Tracks = append(p.Tracks, Track{Name: line, URL: line})
		}
	}
	if pending != nil {
		p.Dropped++
	}
	return p, nil
}

func isExtraTag(line string) bool {
	for _, tag := range extraTags {
		if hasPrefixFold(line, tag) {
			return true
		}
	}
	return false
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
