package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID    int      `json:"id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

func TestEncodeWritesEnvelope(t *testing.T) {
	b, err := Encode([]sample{{ID: 1, Title: "A"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"schemaVersion":1,"data":[{"id":1,"title":"A","tags":null}]}`, string(b))
}

func TestDecodeEnvelope(t *testing.T) {
	b, err := Encode(sample{ID: 2, Title: "B", Tags: []string{"x"}})
	require.NoError(t, err)

	var got sample
	version, err := Decode(b, &got)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, version)
	assert.Equal(t, sample{ID: 2, Title: "B", Tags: []string{"x"}}, got)
}

func TestDecodeBarePayloads(t *testing.T) {
	var list []sample
	version, err := Decode([]byte(`[{"id":3,"title":"legacy"}]`), &list)
	require.NoError(t, err)
	assert.Equal(t, 0, version)
	require.Len(t, list, 1)
	assert.Equal(t, "legacy", list[0].Title)

	var obj sample
	version, err = Decode([]byte(` {"id":4,"title":"bare object"}`), &obj)
	require.NoError(t, err)
	assert.Equal(t, 0, version)
	assert.Equal(t, 4, obj.ID)
}

func TestDecodeRejectsNewerVersion(t *testing.T) {
	var v sample
	_, err := Decode([]byte(`{"schemaVersion":99,"data":{}}`), &v)
	assert.True(t, errors.Is(err, ErrUnsupportedVersion), "got %v", err)
}

func TestDecodeRejectsEmpty(t *testing.T) {
	var v sample
	_, err := Decode([]byte("  "), &v)
	assert.Error(t, err)
}

func TestLoadSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var missing []sample
	found, err := Load(ctx, s, KeyDefinition, &missing)
	require.NoError(t, err)
	assert.False(t, found)

	in := []sample{{ID: 1, Title: "first", Tags: []string{"a", "b"}}, {ID: 2, Title: "second"}}
	require.NoError(t, Save(ctx, s, KeyDefinition, in))

	var out []sample
	found, err = Load(ctx, s, KeyDefinition, &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestLoadCorruptRecord(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Put(ctx, KeyResponses, []byte("{not json")))

	var out []sample
	_, err := Load(ctx, s, KeyResponses, &out)
	assert.ErrorContains(t, err, "load surveyResponses")
}
