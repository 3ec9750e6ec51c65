// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package m3u

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAttributes(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantKeys  []string
		wantVals  map[string]string
		wantOrder []string
	}{
		{
			name:      "double quoted",
			in:        `tvg-id="orf1.at" group-title="AT"`,
			wantKeys:  []string{"tvg-id", "group-title"},
			wantVals:  map[string]string{"tvg-id": "orf1.at", "group-title": "AT"},
			wantOrder: []string{"tvg-id", "group-title"},
		},
		{
			name:      "single quoted keeps comma and space",
			in:        `tvg-name='A, B'`,
			wantKeys:  []string{"tvg-name"},
			wantVals:  map[string]string{"tvg-name": "A, B"},
			wantOrder: []string{"tvg-name"},
		},
		{
			name:      "unquoted runs to whitespace",
			in:        `tvg-chno=12 tvg-shift=-2`,
			wantKeys:  []string{"tvg-chno", "tvg-shift"},
			wantVals:  map[string]string{"tvg-chno": "12", "tvg-shift": "-2"},
			wantOrder: []string{"tvg-chno", "tvg-shift"},
		},
		{
			name:      "keys are lower-cased",
			in:        `TVG-ID="a" Group-Title="b"`,
			wantKeys:  []string{"tvg-id", "group-title"},
			wantVals:  map[string]string{"tvg-id": "a", "group-title": "b"},
			wantOrder: []string{"tvg-id", "group-title"},
		},
		{
			name:      "duplicate key last write wins, order records both",
			in:        `tvg-id="first" tvg-logo="l" TVG-ID="second"`,
			wantKeys:  []string{"tvg-id", "tvg-logo"},
			wantVals:  map[string]string{"tvg-id": "second", "tvg-logo": "l"},
			wantOrder: []string{"tvg-id", "tvg-logo", "tvg-id"},
		},
		{
			name:      "empty quoted value is kept",
			in:        `tvg-logo=""`,
			wantKeys:  []string{"tvg-logo"},
			wantVals:  map[string]string{"tvg-logo": ""},
			wantOrder: []string{"tvg-logo"},
		},
		{
			name:      "bare words and empty unquoted values are skipped",
			in:        `junk tvg-id= next=1 trailing=`,
			wantKeys:  []string{"next"},
			wantVals:  map[string]string{"next": "1"},
			wantOrder: []string{"next"},
		},
		{
			name:      "unterminated quote falls back to unquoted run",
			in:        `tvg-name="Broken tvg-id=x`,
			wantKeys:  []string{"tvg-name", "tvg-id"},
			wantVals:  map[string]string{"tvg-name": `"Broken`, "tvg-id": "x"},
			wantOrder: []string{"tvg-name", "tvg-id"},
		},
		{
			name:      "dots and underscores in keys",
			in:        `x.custom_key="v"`,
			wantKeys:  []string{"x.custom_key"},
			wantVals:  map[string]string{"x.custom_key": "v"},
			wantOrder: []string{"x.custom_key"},
		},
		{
			name:      "mixed quote inside other quote",
			in:        `tvg-name="O'Brien TV" catchup='say "hi"'`,
			wantKeys:  []string{"tvg-name", "catchup"},
			wantVals:  map[string]string{"tvg-name": "O'Brien TV", "catchup": `say "hi"`},
			wantOrder: []string{"tvg-name", "catchup"},
		},
		{
			name: "empty input",
			in:   "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var attrs Attributes
			var order []string
			parseAttributes(tc.in, &attrs, &order)

			assert.Equal(t, len(tc.wantKeys), attrs.Len())
			if len(tc.wantKeys) > 0 {
				assert.Equal(t, tc.wantKeys, attrs.Keys())
			}
			for k, v := range tc.wantVals {
				got, ok := attrs.Get(k)
				assert.True(t, ok, "missing key %q", k)
				assert.Equal(t, v, got, "value of %q", k)
			}
			assert.Equal(t, tc.wantOrder, order)
		})
	}
}

func TestParseAttributes_NilOrder(t *testing.T) {
	var attrs Attributes
	parseAttributes(`x-tvg-url="http://epg/guide.xml"`, &attrs, nil)
	assert.Equal(t, "http://epg/guide.xml", attrs.Value("x-tvg-url"))
}

// Every call owns its scanner state, so concurrent use must not interfere.
func TestParseAttributes_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				var attrs Attributes
				parseAttributes(`tvg-id="a" tvg-name='b c' group-title=d`, &attrs, nil)
				if attrs.Len() != 3 || attrs.Value("tvg-name") != "b c" {
					t.Errorf("unexpected attrs: %v", attrs.Keys())
					return
				}
			}
		}()
	}
	wg.Wait()
}
