// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package m3u parses and writes M3U / M3U8 / "M3U Plus" playlists.
//
// Parse turns a complete playlist text into a Playlist; Export and Write turn
// a Playlist back into canonical text. Both are pure functions: they share no
// state between calls and never mutate their input, so they are safe to call
// concurrently on independent inputs.
package m3u

import (
	"slices"

	"github.com/ManuGH/m3uplus/internal/omap"
)

// Attributes holds directive attributes keyed by lower-cased name, in
// insertion order.
type Attributes = omap.Map[string]

// AttributesOf builds Attributes from alternating key/value arguments.
// Keys are stored as given; a trailing key without value is ignored.
func AttributesOf(pairs ...string) Attributes {
	a := omap.New[string](len(pairs) / 2)
	for i := 0; i+1 < len(pairs); i += 2 {
		a.Set(pairs[i], pairs[i+1])
	}
	return a
}

// Track is one playlist entry: an EXTINF directive and the URL line that
// follows it.
type Track struct {
	Name string `json:"name"`
	// Duration is nil when the directive carried no parsable duration.
	// -1 is the conventional live/unknown value.
	Duration *int       `json:"duration"`
	Attrs    Attributes `json:"attrs"`
	// AttrOrder lists attribute keys as first seen on the EXTINF line.
	// Keys added later (group alias, #EXTGRP) are not recorded here.
	AttrOrder []string `json:"attr_order,omitempty"`
	URL       string   `json:"url"`
	// Extras are the raw directive lines found between EXTINF and URL.
	Extras []string `json:"extras,omitempty"`
}

// Attr returns the value of attribute key, or "" when unset.
func (t *Track) Attr(key string) string {
	return t.Attrs.Value(key)
}

// DurationOr returns the track duration, or def when it is absent.
func (t *Track) DurationOr(def int) int {
	if t.Duration == nil {
		return def
	}
	return *t.Duration
}

// Clone returns a deep copy of t.
func (t *Track) Clone() Track {
	c := *t
	if t.Duration != nil {
		c.Duration = intPtr(*t.Duration)
	}
	c.Attrs = t.Attrs.Clone()
	c.AttrOrder = slices.Clone(t.AttrOrder)
	c.Extras = slices.Clone(t.Extras)
	return c
}

// Playlist is the parsed form of a playlist text.
type Playlist struct {
	Header Attributes `json:"header"`
	Tracks []Track    `json:"tracks"`
	// Dropped counts EXTINF directives discarded because no URL line
	// followed them. It is diagnostic only and never exported.
	Dropped int `json:"dropped"`
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Tracks)
}

func intPtr(v int) *int {
	return &v
}
