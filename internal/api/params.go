// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/ManuGH/m3uplus/internal/channels"
	"github.com/ManuGH/m3uplus/internal/config"
	"github.com/ManuGH/m3uplus/internal/m3u"
)

// paramError reports an unusable query parameter.
type paramError struct {
	name  string
	value string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("query parameter %s: %q is not a boolean", e.name, e.value)
}

// boolParam returns the named boolean query parameter, or def when it is
// absent or empty.
func boolParam(q url.Values, name string, def bool) (bool, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &paramError{name: name, value: raw}
	}
	return v, nil
}

func parseOptions(q url.Values, cfg config.Config) (m3u.ParseOptions, error) {
	strict, err := boolParam(q, "strict", cfg.Parse.Strict)
	if err != nil {
		return m3u.ParseOptions{}, err
	}
	return m3u.ParseOptions{Strict: strict}, nil
}

// normalizeOptions overlays the query parameters on the configured
// defaults. prefer_group is taken as given when present, even if empty.
func normalizeOptions(q url.Values, cfg config.Config) (channels.Options, error) {
	opts := cfg.Normalize
	var err error
	if opts.PreferCatchup, err = boolParam(q, "prefer_catchup", opts.PreferCatchup); err != nil {
		return channels.Options{}, err
	}
	if opts.PreferLogo, err = boolParam(q, "prefer_logo", opts.PreferLogo); err != nil {
		return channels.Options{}, err
	}
	if q.Has("prefer_group") {
		opts.PreferGroup = q.Get("prefer_group")
	}
	return opts, nil
}
