package storage

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags,omitempty"`
}

type failingBackend struct{ *MemoryBackend }

func (failingBackend) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func TestLoadSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	in := []record{{ID: "1", Title: "a", Tags: []string{"x"}}, {ID: "2", Title: "b"}}

	require.NoError(t, Save(ctx, b, "savedTasks", in))
	out := Load(ctx, b, "savedTasks", []record{})
	assert.Equal(t, in, out)
}

func TestLoadMissingReturnsDefault(t *testing.T) {
	out := Load(context.Background(), NewMemoryBackend(), "savedTasks", []record{{ID: "default"}})
	require.Len(t, out, 1)
	assert.Equal(t, "default", out[0].ID)
}

func TestLoadCorruptReturnsDefaultAndWarns(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	ctx := logger.WithContext(context.Background())

	b := NewMemoryBackend()
	cases := []string{`{"not":"a list"}`, `[{"id": 5}]`, `not json`, `   `}
	for _, raw := range cases {
		require.NoError(t, b.Put(ctx, "savedTasks", []byte(raw)))
		out := Load(ctx, b, "savedTasks", []record{})
		assert.NotNil(t, out, "input %q", raw)
		assert.Empty(t, out, "input %q", raw)
	}
	assert.Contains(t, logs.String(), "slot is corrupt")
}

func TestLoadReadErrorReturnsDefault(t *testing.T) {
	b := failingBackend{MemoryBackend: NewMemoryBackend()}
	out := Load[[]record](context.Background(), b, "savedTasks", nil)
	assert.Nil(t, out)
}
