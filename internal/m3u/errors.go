// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package m3u

import (
	"errors"
	"fmt"
)

// ErrMalformedPlaylist classifies strict-mode parse failures.
// Use errors.Is(err, ErrMalformedPlaylist) instead of string matching.
var ErrMalformedPlaylist = errors.New("malformed playlist")

// MalformedPlaylistError reports a URL line that has no preceding EXTINF
// directive. It is only returned in strict mode.
type MalformedPlaylistError struct {
	Line int    // 1-based line number in the input
	URL  string // the offending line
}

func (e *MalformedPlaylistError) Error() string {
	return fmt.Sprintf("%s: line %d: URL without preceding #EXTINF: %q", ErrMalformedPlaylist, e.Line, e.URL)
}

func (e *MalformedPlaylistError) Unwrap() error {
	return ErrMalformedPlaylist
}
