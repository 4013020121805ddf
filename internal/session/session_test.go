package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archilab/renderstudio/internal/models"
)

func asset(tag string) models.Asset {
	return models.Asset{Data: []byte(tag), MimeType: "image/png"}
}

func TestSessionSourceAndReference(t *testing.T) {
	s := newSession("alice")

	_, ok := s.SourceImage()
	assert.False(t, ok)
	_, ok = s.ActiveImage()
	assert.False(t, ok)

	s.SetSource(asset("src"))
	got, ok := s.SourceImage()
	require.True(t, ok)
	assert.Equal(t, asset("src"), got)

	// With no generated result yet, the source is the active image.
	active, ok := s.ActiveImage()
	require.True(t, ok)
	assert.Equal(t, asset("src"), active)

	s.SetReference(asset("ref"))
	ref, ok := s.ReferenceImage()
	require.True(t, ok)
	assert.Equal(t, asset("ref"), ref)

	s.ClearReference()
	_, ok = s.ReferenceImage()
	assert.False(t, ok)

	s.ClearSource()
	_, ok = s.SourceImage()
	assert.False(t, ok)
	_, ok = s.ActiveImage()
	assert.False(t, ok)
}

func TestSessionRecordResultBecomesActive(t *testing.T) {
	s := newSession("alice")
	s.SetSource(asset("src"))

	rec := s.RecordResult(asset("gen1"), "prompt one")
	require.NotEmpty(t, rec.ID)

	active, ok := s.ActiveImage()
	require.True(t, ok)
	assert.Equal(t, asset("gen1"), active)

	// Source stays intact under the generated result.
	src, ok := s.SourceImage()
	require.True(t, ok)
	assert.Equal(t, asset("src"), src)
}

func TestSessionUndoRedoTargetsActiveSlot(t *testing.T) {
	s := newSession("alice")
	s.SetSource(asset("src"))
	s.RecordResult(asset("gen1"), "p1")
	s.RecordResult(asset("gen2"), "p2")

	got, ok := s.Undo()
	require.True(t, ok)
	assert.Equal(t, asset("gen1"), got)
	active, _ := s.ActiveImage()
	assert.Equal(t, asset("gen1"), active)

	got, ok = s.Undo()
	require.True(t, ok)
	assert.Equal(t, asset("src"), got)
	// The undone frame lands in the generated slot; the uploaded source is
	// not overwritten by history movement while a result exists.
	active, _ = s.ActiveImage()
	assert.Equal(t, asset("src"), active)

	assert.False(t, s.CanUndo())

	got, ok = s.Redo()
	require.True(t, ok)
	assert.Equal(t, asset("gen1"), got)

	got, ok = s.Redo()
	require.True(t, ok)
	assert.Equal(t, asset("gen2"), got)
	assert.False(t, s.CanRedo())
}

func TestSessionNewResultTruncatesRedo(t *testing.T) {
	s := newSession("alice")
	s.SetSource(asset("src"))
	s.RecordResult(asset("gen1"), "p1")
	s.RecordResult(asset("gen2"), "p2")

	_, ok := s.Undo()
	require.True(t, ok)
	require.True(t, s.CanRedo())

	s.RecordResult(asset("gen3"), "p3")
	assert.False(t, s.CanRedo())

	// But the abandoned result is still recoverable from the archive.
	records := s.Archive()
	require.Len(t, records, 3)
	assert.Equal(t, "p3", records[0].Prompt)
	assert.Equal(t, "p1", records[2].Prompt)
}

func TestSessionResetWorking(t *testing.T) {
	s := newSession("alice")
	s.SetSource(asset("src"))
	s.SetReference(asset("ref"))
	s.RecordResult(asset("gen1"), "p1")

	s.ResetWorking()

	// Back to the bare source; reference and result are gone.
	active, ok := s.ActiveImage()
	require.True(t, ok)
	assert.Equal(t, asset("src"), active)
	_, ok = s.ReferenceImage()
	assert.False(t, ok)
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())

	// The archive survives the reset.
	assert.Len(t, s.Archive(), 1)
}

func TestSessionRestoreFromArchive(t *testing.T) {
	s := newSession("alice")
	s.SetSource(asset("src"))
	rec := s.RecordResult(asset("gen1"), "p1")
	s.ResetWorking()

	restored, ok := s.RestoreFromArchive(rec.ID)
	require.True(t, ok)
	assert.Equal(t, asset("gen1"), restored.Asset)

	active, ok := s.ActiveImage()
	require.True(t, ok)
	assert.Equal(t, asset("gen1"), active)

	_, ok = s.RestoreFromArchive("missing")
	assert.False(t, ok)
}

func TestSessionBridgeCapture(t *testing.T) {
	s := newSession("alice")
	s.SetSource(asset("old"))
	s.RecordResult(asset("gen1"), "p1")

	s.BridgeCapture(asset("captured"))

	src, ok := s.SourceImage()
	require.True(t, ok)
	assert.Equal(t, asset("captured"), src)

	active, ok := s.ActiveImage()
	require.True(t, ok)
	assert.Equal(t, asset("captured"), active)
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestSessionGenerationSlot(t *testing.T) {
	s := newSession("alice")

	require.True(t, s.TryBeginGeneration())
	assert.False(t, s.TryBeginGeneration())

	s.EndGeneration()
	assert.True(t, s.TryBeginGeneration())
	s.EndGeneration()
}

func TestManager(t *testing.T) {
	m := NewManager()

	a := m.Get("alice")
	require.NotNil(t, a)
	assert.Equal(t, "alice", a.Identity())

	// Same identity returns the same session.
	assert.Same(t, a, m.Get("alice"))
	assert.NotSame(t, a, m.Get("bob"))

	m.Remove("alice")
	assert.NotSame(t, a, m.Get("alice"))
}
