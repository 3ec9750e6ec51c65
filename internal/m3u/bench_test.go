// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package m3u

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func largePlaylist(n int) string {
	var b strings.Builder
	b.Grow(n * 220)
	b.WriteString("#EXTM3U x-tvg-url=\"http://epg.example/guide.xml\"\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b,
			"#EXTINF:-1 tvg-id=\"ch%d.example\" tvg-name=\"Channel %d\" tvg-logo=\"http://logo.example/%d.png\" group-title=\"Group %d\" catchup=\"shift\",Channel %d\n",
			i, i, i, i%40, i)
		fmt.Fprintf(&b, "http://origin.example/live/%d/index.m3u8?token=abc\n", i)
	}
	return b.String()
}

func TestParse_LargePlaylistWithinBudget(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large playlist parse in short mode")
	}
	text := largePlaylist(50_000)

	start := time.Now()
	p, err := Parse(text, ParseOptions{})
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.Len() != 50_000 {
		t.Fatalf("expected 50000 tracks, got %d", p.Len())
	}
	if elapsed > 3*time.Second {
		t.Fatalf("parsing 50000 entries took %v, want < 3s", elapsed)
	}
}

// Benchmark parse throughput on a realistic IPTV playlist
func BenchmarkParse(b *testing.B) {
	text := largePlaylist(5_000)
	b.SetBytes(int64(len(text)))
	b.ReportAllocs()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(text, ParseOptions{}); err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark export of the same playlist
func BenchmarkExport(b *testing.B) {
	p, err := Parse(largePlaylist(5_000), ParseOptions{})
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Export(p, ExportOptions{})
	}
}
