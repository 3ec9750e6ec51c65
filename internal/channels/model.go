// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package channels groups playlist tracks that carry the same logical
// channel and ranks the candidate sources of each group.
package channels

import (
	"github.com/ManuGH/m3uplus/internal/m3u"
	"github.com/ManuGH/m3uplus/internal/omap"
)

// Options tunes scoring. The zero value applies no preferences.
type Options struct {
	// PreferCatchup is carried for callers and recorded in outputs; catchup
	// capability is rewarded regardless of this flag.
	PreferCatchup bool `json:"prefer_catchup" yaml:"preferCatchup"`
	// PreferLogo rewards sources with a tvg-logo.
	PreferLogo bool `json:"prefer_logo" yaml:"preferLogo"`
	// PreferGroup rewards sources whose group-title matches, ignoring case.
	PreferGroup string `json:"prefer_group,omitempty" yaml:"preferGroup"`
}

// NormalizedSource is one candidate stream for a channel.
type NormalizedSource struct {
	m3u.Track
	ChannelKey string  `json:"channel_key"`
	URLBase    string  `json:"url_base"`
	Score      float64 `json:"score"`
}

// NormalizedPlaylist maps channel keys to their candidate sources, in order
// of first appearance. Each source list has unique URLs and is sorted by
// score, best first.
type NormalizedPlaylist struct {
	Header   m3u.Attributes               `json:"header"`
	Channels omap.Map[[]NormalizedSource] `json:"channels"`
	// DuplicatesRemoved counts sources dropped because their group already
	// held the same URL.
	DuplicatesRemoved int `json:"duplicates_removed"`
}

// Len returns the number of channel groups.
func (np *NormalizedPlaylist) Len() int {
	if np == nil {
		return 0
	}
	return np.Channels.Len()
}

// BestSources maps each channel key to its highest scored source.
type BestSources struct {
	Channels omap.Map[NormalizedSource] `json:"channels"`
}

// Len returns the number of channels.
func (b *BestSources) Len() int {
	if b == nil {
		return 0
	}
	return b.Channels.Len()
}
