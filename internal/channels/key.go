// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package channels

import (
	"github.com/ManuGH/m3uplus/internal/m3u"
	"github.com/ManuGH/m3uplus/internal/normalize"
)

// keySep joins identity and URL base in a channel key.
const keySep = "::"

// ChannelKey derives the grouping key of t, "<identity>::<urlBase>", and
// returns the URL base alongside.
func ChannelKey(t *m3u.Track) (key, urlBase string) {
	urlBase = normalize.URLBase(t.URL)
	return Identity(t) + keySep + urlBase, urlBase
}

// Identity returns the trimmed tvg-id, or else a slug of tvg-name (or the
// display name when tvg-name is blank).
func Identity(t *m3u.Track) string {
	if id := normalize.Trim(t.Attr("tvg-id")); id != "" {
		return id
	}
	name := normalize.Trim(t.Attr("tvg-name"))
	if name == "" {
		name = normalize.Trim(t.Name)
	}
	return normalize.Slug(name)
}
