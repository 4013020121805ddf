// Package session keeps the per-identity editing state: the uploaded source
// image, the optional style reference, the latest generated result, the
// undo/redo stack and the session archive. State lives for one editing
// session and is dropped on teardown.
package session

import (
	"sync"
	"time"

	"github.com/archilab/renderstudio/internal/history"
	"github.com/archilab/renderstudio/internal/models"
)

type Session struct {
	mu sync.Mutex

	identity  string
	source    models.Asset
	reference models.Asset
	generated models.Asset

	stack   *history.Stack
	archive *history.Archive

	inFlight     bool
	lastActivity time.Time
}

func newSession(identity string) *Session {
	return &Session{
		identity:     identity,
		stack:        history.NewStack(),
		archive:      history.NewArchive(),
		lastActivity: time.Now(),
	}
}

func (s *Session) Identity() string { return s.identity }

// SetSource installs a new working image. When no generated result exists
// yet, the history restarts at this single frame.
func (s *Session) SetSource(asset models.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.source = asset
	if s.generated.Empty() {
		s.stack.Reset(asset)
	}
}

func (s *Session) ClearSource() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.source = models.Asset{}
	if s.generated.Empty() {
		s.stack.Reset()
	}
}

func (s *Session) SetReference(asset models.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.reference = asset
}

func (s *Session) ClearReference() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.reference = models.Asset{}
}

func (s *Session) SourceImage() (models.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source, !s.source.Empty()
}

func (s *Session) ReferenceImage() (models.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reference, !s.reference.Empty()
}

// ActiveImage is the current edit target: the latest generated result when
// one exists, otherwise the uploaded source.
func (s *Session) ActiveImage() (models.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.generated.Empty() {
		return s.generated, true
	}
	return s.source, !s.source.Empty()
}

// RecordResult installs a successful generation: it becomes the active
// image, joins the undo history and is archived with its prompt.
func (s *Session) RecordResult(asset models.Asset, promptText string) models.SessionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.generated = asset
	s.stack.Push(asset)
	return s.archive.Append(asset, promptText)
}

// ApplyTransform writes a locally transformed image into the active slot
// and pushes it onto the history.
func (s *Session) ApplyTransform(asset models.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.writeActiveLocked(asset)
	s.stack.Push(asset)
}

// Undo steps the history cursor back and writes the entry into the active
// slot. Reports false when there is nothing to undo.
func (s *Session) Undo() (models.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset, ok := s.stack.Undo()
	if !ok {
		return models.Asset{}, false
	}
	s.touch()
	s.writeActiveLocked(asset)
	return asset, true
}

func (s *Session) Redo() (models.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset, ok := s.stack.Redo()
	if !ok {
		return models.Asset{}, false
	}
	s.touch()
	s.writeActiveLocked(asset)
	return asset, true
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stack.CanUndo()
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stack.CanRedo()
}

// ResetWorking discards the generated result and the reference image,
// restarting the history at the source frame when one is present. The
// archive is untouched.
func (s *Session) ResetWorking() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.generated = models.Asset{}
	s.reference = models.Asset{}
	if s.source.Empty() {
		s.stack.Reset()
	} else {
		s.stack.Reset(s.source)
	}
}

// BridgeCapture installs an image delivered by the host-embedding bridge:
// it becomes the source, any generated result is discarded and the history
// resets to this single frame.
func (s *Session) BridgeCapture(asset models.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.source = asset
	s.generated = models.Asset{}
	s.stack.Reset(asset)
}

// Archive returns the session backup records, most recent first.
func (s *Session) Archive() []models.SessionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.archive.List()
}

// RestoreFromArchive loads an archived record back as the active generated
// image, pushing it onto the history.
func (s *Session) RestoreFromArchive(id string) (models.SessionRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.archive.Find(id)
	if !ok {
		return models.SessionRecord{}, false
	}
	s.touch()
	s.generated = rec.Asset
	s.stack.Push(rec.Asset)
	return rec, true
}

// TryBeginGeneration claims the single generation slot for this session.
// Exactly one generation may be in flight at a time.
func (s *Session) TryBeginGeneration() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

func (s *Session) EndGeneration() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}

func (s *Session) writeActiveLocked(asset models.Asset) {
	if !s.generated.Empty() {
		s.generated = asset
		return
	}
	s.source = asset
}

func (s *Session) touch() {
	s.lastActivity = time.Now()
}
