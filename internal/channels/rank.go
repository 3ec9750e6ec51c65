// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package channels

import (
	"cmp"
	"slices"

	"github.com/ManuGH/m3uplus/internal/m3u"
	"github.com/ManuGH/m3uplus/internal/omap"
)

// Normalize groups the tracks of p by channel key and ranks each group.
//
// Groups keep the order in which their key first appears. Inside a group a
// URL occurs once: a later track with the same URL and a strictly higher
// score takes over the earlier slot, otherwise it is dropped. Each group is
// then stably sorted by descending score. p is not modified; the result
// shares no memory with it.
func Normalize(p *m3u.Playlist, opts Options) *NormalizedPlaylist {
	np := &NormalizedPlaylist{}
	if p == nil {
		return np
	}
	np.Header = p.Header.Clone()
	np.Channels = omap.New[[]NormalizedSource](len(p.Tracks))

	// channel key -> URL -> index into the group slice
	seen := make(map[string]map[string]int, len(p.Tracks))

	for i := range p.Tracks {
		t := &p.Tracks[i]
		key, base := ChannelKey(t)
		score := Score(t, opts)

		urls, ok := seen[key]
		if !ok {
			urls = make(map[string]int, 1)
			seen[key] = urls
		}
		group := np.Channels.Value(key)
		if at, dup := urls[t.URL]; dup {
			np.DuplicatesRemoved++
			if score > group[at].Score {
				group[at] = newSource(t, key, base, score)
			}
			continue
		}
		urls[t.URL] = len(group)
		np.Channels.Set(key, append(group, newSource(t, key, base, score)))
	}

	for key, group := range np.Channels.All() {
		slices.SortStableFunc(group, func(a, b NormalizedSource) int {
			return cmp.Compare(b.Score, a.Score)
		})
		np.Channels.Set(key, group)
	}
	return np
}

func newSource(t *m3u.Track, key, base string, score float64) NormalizedSource {
	return NormalizedSource{
		Track:      t.Clone(),
		ChannelKey: key,
		URLBase:    base,
		Score:      score,
	}
}

// SelectBestSources returns the first, highest scored source of every
// group in np.
func SelectBestSources(np *NormalizedPlaylist) *BestSources {
	best := &BestSources{}
	if np == nil {
		return best
	}
	best.Channels = omap.New[NormalizedSource](np.Channels.Len())
	for key, group := range np.Channels.All() {
		if len(group) == 0 {
			continue
		}
		src := group[0]
		src.Track = src.Track.Clone()
		best.Channels.Set(key, src)
	}
	return best
}
