package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archilab/renderstudio/internal/models"
)

func asset(tag string) models.Asset {
	return models.Asset{Data: []byte(tag), MimeType: "image/png"}
}

func TestStackEmpty(t *testing.T) {
	s := NewStack()

	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())

	_, ok := s.Undo()
	assert.False(t, ok)
	_, ok = s.Redo()
	assert.False(t, ok)
	_, ok = s.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestStackPushUndoRedo(t *testing.T) {
	s := NewStack()
	s.Push(asset("a"))
	s.Push(asset("b"))
	s.Push(asset("c"))

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, asset("c"), cur)

	got, ok := s.Undo()
	require.True(t, ok)
	assert.Equal(t, asset("b"), got)

	got, ok = s.Undo()
	require.True(t, ok)
	assert.Equal(t, asset("a"), got)

	// First entry is the floor: no undo past it.
	assert.False(t, s.CanUndo())
	_, ok = s.Undo()
	assert.False(t, ok)

	got, ok = s.Redo()
	require.True(t, ok)
	assert.Equal(t, asset("b"), got)

	got, ok = s.Redo()
	require.True(t, ok)
	assert.Equal(t, asset("c"), got)
	assert.False(t, s.CanRedo())
}

func TestStackPushTruncatesRedoBranch(t *testing.T) {
	s := NewStack()
	s.Push(asset("a"))
	s.Push(asset("b"))
	s.Push(asset("c"))

	_, ok := s.Undo()
	require.True(t, ok)
	require.True(t, s.CanRedo())

	s.Push(asset("d"))

	// The abandoned branch ("c") is gone for good.
	assert.False(t, s.CanRedo())
	assert.Equal(t, 3, s.Len())

	got, ok := s.Undo()
	require.True(t, ok)
	assert.Equal(t, asset("b"), got)
	got, ok = s.Redo()
	require.True(t, ok)
	assert.Equal(t, asset("d"), got)
}

func TestStackSingleEntry(t *testing.T) {
	s := NewStack()
	s.Push(asset("a"))

	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, asset("a"), cur)
}

func TestStackReset(t *testing.T) {
	s := NewStack()
	s.Push(asset("a"))
	s.Push(asset("b"))

	s.Reset(asset("x"))
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, asset("x"), cur)

	s.Reset()
	assert.Equal(t, 0, s.Len())
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestStackUndoRedoRoundTrip(t *testing.T) {
	s := NewStack()
	s.Push(asset("a"))
	s.Push(asset("b"))

	before, ok := s.Current()
	require.True(t, ok)

	_, ok = s.Undo()
	require.True(t, ok)
	after, ok := s.Redo()
	require.True(t, ok)
	assert.Equal(t, before, after)
}
