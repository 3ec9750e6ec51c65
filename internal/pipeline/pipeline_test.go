// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/m3uplus/internal/channels"
	"github.com/ManuGH/m3uplus/internal/m3u"
)

const inputA = `#EXTM3U x-tvg-url="http://epg/a.xml"
#EXTINF:-1 tvg-id="ch1" tvg-name="Channel 1",Channel 1
http://origin/live/ch1/a.ts
#EXTINF:-1 tvg-id="ch2",Two
`

const inputB = `#EXTM3U x-tvg-url="http://epg/b.xml" url-tvg="http://epg/b2.xml"
#EXTINF:-1 tvg-id="ch1" catchup="shift",Channel 1 HD
http://origin/live/ch1/b.ts
#EXTINF:-1 tvg-id="ch3",Three
http://b/3
`

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func urls(p *m3u.Playlist) []string {
	out := make([]string, 0, len(p.Tracks))
	for _, tr := range p.Tracks {
		out = append(out, tr.URL)
	}
	return out
}

func TestRun_MergesAndWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.m3u", inputA)
	b := writeInput(t, dir, "b.m3u", inputB)

	job := Job{
		Inputs:          []string{a, b},
		ExportPath:      filepath.Join(dir, "out.m3u"),
		NormalizedPath:  filepath.Join(dir, "normalized.json"),
		BestPath:        filepath.Join(dir, "best.json"),
		MetricsTextfile: filepath.Join(dir, "m3uplus.prom"),
	}
	res, err := NewRunner(2).Run(context.Background(), job)
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Positive(t, res.Duration)
	if diff := cmp.Diff([]string{"http://origin/live/ch1/a.ts", "http://origin/live/ch1/b.ts", "http://b/3"}, urls(res.Playlist)); diff != "" {
		t.Errorf("merged tracks mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, res.Playlist.Dropped)
	assert.Equal(t, "http://epg/a.xml", res.Playlist.Header.Value("x-tvg-url"), "first header wins")
	assert.Equal(t, "http://epg/b2.xml", res.Playlist.Header.Value("url-tvg"), "later headers add keys")

	exported, err := os.ReadFile(job.ExportPath)
	require.NoError(t, err)
	assert.Equal(t, m3u.Export(res.Playlist, m3u.ExportOptions{}), string(exported))

	raw, err := os.ReadFile(job.NormalizedPath)
	require.NoError(t, err)
	var np channels.NormalizedPlaylist
	require.NoError(t, json.Unmarshal(raw, &np))
	const ch1 = "ch1::http://origin/live/ch1"
	assert.Equal(t, []string{ch1, "ch3::http://b/3"}, np.Channels.Keys())
	group := np.Channels.Value(ch1)
	require.Len(t, group, 2, "sources of one origin and path prefix share a group")
	assert.Equal(t, "http://origin/live/ch1/b.ts", group[0].URL, "catchup source ranks first")

	raw, err = os.ReadFile(job.BestPath)
	require.NoError(t, err)
	var best channels.BestSources
	require.NoError(t, json.Unmarshal(raw, &best))
	assert.Equal(t, "http://origin/live/ch1/b.ts", best.Channels.Value(ch1).URL)
	assert.Equal(t, res.Best.Len(), best.Len())

	prom, err := os.ReadFile(job.MetricsTextfile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "m3uplus_pipeline_runs_total")
}

func TestRun_SkipsUnsetOutputs(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.m3u", inputA)

	res, err := NewRunner(0).Run(context.Background(), Job{Inputs: []string{a}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Normalized.Len())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no outputs besides the input")
}

func TestRun_StrictFailureKeepsPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	good := writeInput(t, dir, "good.m3u", inputB)
	bad := writeInput(t, dir, "bad.m3u", "#EXTM3U\nhttp://bare/url\n")
	out := writeInput(t, dir, "out.m3u", "previous\n")

	job := Job{
		Inputs:     []string{good, bad},
		ExportPath: out,
		Parse:      m3u.ParseOptions{Strict: true},
	}
	_, err := NewRunner(4).Run(context.Background(), job)
	require.Error(t, err)
	assert.True(t, errors.Is(err, m3u.ErrMalformedPlaylist))
	var malformed *m3u.MalformedPlaylistError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "http://bare/url", malformed.URL)
	assert.Contains(t, err.Error(), "bad.m3u")

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous\n", string(content))
}

func TestRun_Errors(t *testing.T) {
	_, err := NewRunner(1).Run(context.Background(), Job{})
	assert.ErrorIs(t, err, ErrNoInputs)

	_, err = NewRunner(1).Run(context.Background(), Job{Inputs: []string{filepath.Join(t.TempDir(), "missing.m3u")}})
	assert.ErrorIs(t, err, os.ErrNotExist)

	dir := t.TempDir()
	a := writeInput(t, dir, "a.m3u", inputA)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewRunner(1).Run(ctx, Job{Inputs: []string{a}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMerge(t *testing.T) {
	p1, err := m3u.Parse(inputA, m3u.ParseOptions{})
	require.NoError(t, err)
	p2, err := m3u.Parse(inputB, m3u.ParseOptions{})
	require.NoError(t, err)

	merged := Merge(p1, nil, p2)
	assert.Equal(t, 3, merged.Len())
	assert.Equal(t, []string{"x-tvg-url", "url-tvg"}, merged.Header.Keys())

	merged.Tracks[0].Attrs.Set("tvg-id", "changed")
	assert.Equal(t, "ch1", p1.Tracks[0].Attr("tvg-id"), "inputs are not aliased")

	empty := Merge()
	assert.Equal(t, 0, empty.Len())
	assert.True(t, strings.HasPrefix(m3u.Export(empty, m3u.ExportOptions{}), "#EXTM3U"))
}

func TestWriteFileAtomic_WriterErrorLeavesTarget(t *testing.T) {
	dir := t.TempDir()
	target := writeInput(t, dir, "out.json", "{}\n")

	boom := errors.New("boom")
	err := WriteFileAtomic(context.Background(), target, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "pending file cleaned up")
}
