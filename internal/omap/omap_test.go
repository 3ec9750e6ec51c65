// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package omap

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMap_SetKeepsFirstPosition(t *testing.T) {
	var m Map[string]
	m.Set("b", "1")
	m.Set("a", "2")
	m.Set("b", "3")

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	assert.Equal(t, "3", m.Value("b"))
	assert.Equal(t, 2, m.Len())
}

func TestMap_ZeroValueReads(t *testing.T) {
	var m Map[int]
	v, ok := m.Get("missing")
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.False(t, m.Has("missing"))
	assert.Empty(t, m.Keys())
}

func TestMap_Delete(t *testing.T) {
	var m Map[int]
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)
	m.Delete("b")
	m.Delete("zzz")

	assert.Equal(t, []string{"a", "c"}, m.Keys())
	assert.False(t, m.Has("b"))
}

func TestMap_CloneIsIndependent(t *testing.T) {
	var m Map[string]
	m.Set("a", "1")
	c := m.Clone()
	c.Set("a", "changed")
	c.Set("b", "2")

	assert.Equal(t, "1", m.Value("a"))
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, []string{"a", "b"}, c.Keys())
}

func TestMap_AllStopsEarly(t *testing.T) {
	var m Map[int]
	m.Set("x", 1)
	m.Set("y", 2)
	m.Set("z", 3)

	var seen []string
	for k := range m.All() {
		seen = append(seen, k)
		if k == "y" {
			break
		}
	}
	assert.Equal(t, []string{"x", "y"}, seen)
}

func TestMap_JSONPreservesOrder(t *testing.T) {
	var m Map[string]
	m.Set("zeta", "1")
	m.Set("alpha", `q"uote`)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":"1","alpha":"q\"uote"}`, string(data))

	var back Map[string]
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []string{"zeta", "alpha"}, back.Keys())
	assert.Equal(t, `q"uote`, back.Value("alpha"))
}

func TestMap_JSONInsideStruct(t *testing.T) {
	type wrapper struct {
		Attrs Map[int] `json:"attrs"`
	}
	var w wrapper
	w.Attrs.Set("b", 2)
	w.Attrs.Set("a", 1)

	data, err := json.Marshal(w)
	require.NoError(t, err)
	assert.Equal(t, `{"attrs":{"b":2,"a":1}}`, string(data))
}

func TestMap_UnmarshalJSONRejectsArray(t *testing.T) {
	var m Map[string]
	err := json.Unmarshal([]byte(`["a"]`), &m)
	assert.Error(t, err)
}

func TestMap_YAMLRoundTrip(t *testing.T) {
	src := "x-tvg-url: http://epg.example/guide.xml\nurl-tvg: other\ncatchup: append\n"

	var m Map[string]
	require.NoError(t, yaml.Unmarshal([]byte(src), &m))
	assert.Equal(t, []string{"x-tvg-url", "url-tvg", "catchup"}, m.Keys())

	out, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, src, string(out))
}

func TestMap_YAMLRejectsSequence(t *testing.T) {
	var m Map[string]
	err := yaml.Unmarshal([]byte("- a\n- b\n"), &m)
	assert.Error(t, err)
}
