// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package m3u

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitExtinf(t *testing.T) {
	tests := []struct {
		in       string
		wantLeft string
		wantName string
	}{
		{`-1,Name`, `-1`, `Name`},
		{`-1 tvg-name="A, B",A, B`, `-1 tvg-name="A, B"`, `A, B`},
		{`-1 tvg-name='A, B',A, B`, `-1 tvg-name='A, B'`, `A, B`},
		{`-1 tvg-name="O'Brien, Jr",X`, `-1 tvg-name="O'Brien, Jr"`, `X`},
		{`-1 tvg-id=abc`, `-1 tvg-id=abc`, ``},
		{`,Only name`, ``, `Only name`},
		{``, ``, ``},
	}
	for _, tc := range tests {
		left, name := splitExtinf(tc.in)
		assert.Equal(t, tc.wantLeft, left, "left of %q", tc.in)
		assert.Equal(t, tc.wantName, name, "name of %q", tc.in)
	}
}

func TestParseExtinf_Duration(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		present bool
	}{
		{`-1,X`, -1, true},
		{`0,X`, 0, true},
		{`120 tvg-id="a",X`, 120, true},
		{`+5,X`, 5, true},
		{`,X`, 0, false},
		{`tvg-id="a",X`, 0, false},
		{`abc,X`, 0, false},
		{`-,X`, 0, false},
		{`99999999999999999999999,X`, 0, false},
	}
	for _, tc := range tests {
		tr := parseExtinf(tc.in)
		if !tc.present {
			assert.Nil(t, tr.Duration, "duration of %q", tc.in)
			continue
		}
		require.NotNil(t, tr.Duration, "duration of %q", tc.in)
		assert.Equal(t, tc.want, *tr.Duration, "duration of %q", tc.in)
	}
}

func TestParseExtinf_DurationPrefixStripped(t *testing.T) {
	tr := parseExtinf(`-1tvg-id="x",Name`)
	require.NotNil(t, tr.Duration)
	assert.Equal(t, -1, *tr.Duration)
	assert.Equal(t, "x", tr.Attr("tvg-id"))
}

func TestParseExtinf_AttributesAndName(t *testing.T) {
	tr := parseExtinf(` -1 tvg-id="orf1.at" Tvg-Name="ORF 1" tvg-logo=http://l/1.png group-title="AT" ,  ORF1 HD  `)

	assert.Equal(t, "ORF1 HD", tr.Name)
	assert.Equal(t, "orf1.at", tr.Attr("tvg-id"))
	assert.Equal(t, "ORF 1", tr.Attr("tvg-name"))
	assert.Equal(t, "http://l/1.png", tr.Attr("tvg-logo"))
	assert.Equal(t, "AT", tr.Attr("group-title"))
	assert.Equal(t, []string{"tvg-id", "tvg-name", "tvg-logo", "group-title"}, tr.AttrOrder)
}

func TestParseExtinf_AttrOrderFirstSeen(t *testing.T) {
	tr := parseExtinf(`-1 b="1" a="2" b="3",N`)
	assert.Equal(t, []string{"b", "a"}, tr.AttrOrder)
	assert.Equal(t, "3", tr.Attr("b"))
}

func TestParseExtinf_GroupAlias(t *testing.T) {
	t.Run("copies group into missing group-title", func(t *testing.T) {
		tr := parseExtinf(`-1 group="News",N`)
		assert.Equal(t, "News", tr.Attr("group-title"))
		assert.Equal(t, "News", tr.Attr("group"))
		assert.Equal(t, []string{"group"}, tr.AttrOrder, "alias must not enter AttrOrder")
	})
	t.Run("keeps existing group-title", func(t *testing.T) {
		tr := parseExtinf(`-1 group-title="Sports" group="News",N`)
		assert.Equal(t, "Sports", tr.Attr("group-title"))
		assert.Equal(t, "News", tr.Attr("group"))
	})
	t.Run("fills empty group-title", func(t *testing.T) {
		tr := parseExtinf(`-1 group-title="" group="News",N`)
		assert.Equal(t, "News", tr.Attr("group-title"))
	})
}

func TestParseExtinf_NoComma(t *testing.T) {
	tr := parseExtinf(`-1 tvg-id="a"`)
	assert.Equal(t, "", tr.Name)
	assert.Equal(t, "a", tr.Attr("tvg-id"))
}
