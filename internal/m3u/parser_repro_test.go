package m3u

import (
	"testing"
)

// Enigma2-style entries carry colons in tvg-id, a query string full of
// escaped colons in the URL and a single dot as display name.
func TestParseRepro(t *testing.T) {
	content := `#EXTM3U
#EXTINF:-1 tvg-chno="1" tvg-id="1:0:1:300:7:85:C00000:0:0:0:" tvg-logo="/logos/1_0_1_300_7_85_C00000_0_0_0.png?v=1767922888" group-title="Last Scanned" tvg-name=".",.
http://10.10.55.64/web/stream.m3u?ref=1%3A0%3A1%3A300%3A7%3A85%3AC00000%3A0%3A0%3A0%3A&name=.
`
	p, err := Parse(content, ParseOptions{Strict: true})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(p.Tracks) != 1 {
		t.Fatalf("Expected 1 track, got %d", len(p.Tracks))
	}
	tr := p.Tracks[0]
	if got := tr.Attr("tvg-id"); got != "1:0:1:300:7:85:C00000:0:0:0:" {
		t.Errorf("Expected tvg-id '1:0:1:300:7:85:C00000:0:0:0:', got '%s'", got)
	}
	if got := tr.Attr("group-title"); got != "Last Scanned" {
		t.Errorf("Expected group-title 'Last Scanned', got '%s'", got)
	}
	if got := tr.Attr("tvg-chno"); got != "1" {
		t.Errorf("Expected tvg-chno '1', got '%s'", got)
	}
	if tr.Name != "." {
		t.Errorf("Expected name '.', got '%s'", tr.Name)
	}
}

// A display name that looks like an attribute must stay the name.
func TestParseRepro_NameWithEquals(t *testing.T) {
	p, err := Parse("#EXTINF:-1 tvg-id=\"x\",a=b\nhttp://x\n", ParseOptions{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	tr := p.Tracks[0]
	if tr.Name != "a=b" {
		t.Errorf("Expected name 'a=b', got '%s'", tr.Name)
	}
	if tr.Attrs.Has("a") {
		t.Errorf("name segment leaked into attributes: %v", tr.Attrs.Keys())
	}
}
