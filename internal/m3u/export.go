// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package m3u

import (
	"bufio"
	"io"
	"slices"
	"strconv"
	"strings"
)

// preferredAttrOrder is emitted first, in this order, for keys a track has.
var preferredAttrOrder = [...]string{
	"tvg-id",
	"tvg-name",
	"tvg-logo",
	"group-title",
	"catchup",
	"catchup-source",
	"catchup-days",
	"tvg-shift",
	"audio-track",
	"aspect-ratio",
}

// ExportOptions controls Export and Write.
type ExportOptions struct {
	// HeaderAttributes replaces the playlist header on the #EXTM3U line.
	// Nil keeps the playlist's own header.
	HeaderAttributes *Attributes
}

// Export renders p as canonical playlist text.
func Export(p *Playlist, opts ExportOptions) string {
	var b strings.Builder
	_ = Write(&b, p, opts) // strings.Builder never fails
	return b.String()
}

// Write renders p as canonical playlist text to w.
//
// Attributes are written as key="value" without escaping: first the keys of
// the preferred list, then the remaining keys in the order they were parsed,
// then anything left in lexicographic order. A missing duration is written
// as -1. Every line, including the last, ends with "\n".
func Write(w io.Writer, p *Playlist, opts ExportOptions) error {
	bw := bufio.NewWriter(w)

	header := Attributes{}
	if opts.HeaderAttributes != nil {
		header = *opts.HeaderAttributes
	} else if p != nil {
		header = p.Header
	}

	bw.WriteString(tagHeader)
	for k, v := range header.All() {
		writeAttr(bw, k, v)
	}
	bw.WriteByte('\n')

	if p != nil {
		for i := range p.Tracks {
			writeTrack(bw, &p.Tracks[i])
		}
	}
	return bw.Flush()
}

func writeTrack(bw *bufio.Writer, t *Track) {
	bw.WriteString(tagExtinf)
	bw.WriteString(strconv.Itoa(t.DurationOr(-1)))
	for _, k := range attrExportOrder(t) {
		writeAttr(bw, k, t.Attrs.Value(k))
	}
	bw.WriteByte(',')
	bw.WriteString(t.Name)
	bw.WriteByte('\n')

	for _, extra := range t.Extras {
		bw.WriteString(extra)
		bw.WriteByte('\n')
	}
	bw.WriteString(t.URL)
	bw.WriteByte('\n')
}

func writeAttr(bw *bufio.Writer, key, value string) {
	bw.WriteByte(' ')
	bw.WriteString(key)
	bw.WriteString(`="`)
	bw.WriteString(value)
	bw.WriteByte('"')
}

// attrExportOrder returns every attribute key of t exactly once, in export
// order.
func attrExportOrder(t *Track) []string {
	n := t.Attrs.Len()
	if n == 0 {
		return nil
	}
	out := make([]string, 0, n)
	emitted := make(map[string]struct{}, n)
	emit := func(k string) {
		if _, done := emitted[k]; done || !t.Attrs.Has(k) {
			return
		}
		emitted[k] = struct{}{}
		out = append(out, k)
	}

	for _, k := range preferredAttrOrder {
		emit(k)
	}
	for _, k := range t.AttrOrder {
		emit(k)
	}
	if len(out) < n {
		var rest []string
		for _, k := range t.Attrs.Keys() {
			if _, done := emitted[k]; !done {
				rest = append(rest, k)
			}
		}
		slices.Sort(rest)
		out = append(out, rest...)
	}
	return out
}
