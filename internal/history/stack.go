// Package history holds the per-session undo/redo stack and the append-only
// archive of successful generations.
package history

import "github.com/archilab/renderstudio/internal/models"

// Stack is a linear branch-truncating undo history: pushing while the
// cursor sits before the end discards every forward entry first. The
// cursor always satisfies 0 <= step < len(entries) when non-empty.
type Stack struct {
	entries []models.Asset
	step    int
}

func NewStack() *Stack {
	return &Stack{step: -1}
}

// Push truncates any redo entries beyond the cursor, appends the asset and
// moves the cursor onto it.
func (s *Stack) Push(asset models.Asset) {
	s.entries = append(s.entries[:s.step+1], asset)
	s.step = len(s.entries) - 1
}

// Undo moves the cursor back one entry and returns it. The second return
// is false when there is nothing to undo to.
func (s *Stack) Undo() (models.Asset, bool) {
	if !s.CanUndo() {
		return models.Asset{}, false
	}
	s.step--
	return s.entries[s.step], true
}

// Redo moves the cursor forward one entry and returns it. The second
// return is false when the redo buffer is empty.
func (s *Stack) Redo() (models.Asset, bool) {
	if !s.CanRedo() {
		return models.Asset{}, false
	}
	s.step++
	return s.entries[s.step], true
}

// Reset replaces the whole stack. With no assets the stack becomes empty;
// otherwise the cursor lands on the last provided asset.
func (s *Stack) Reset(assets ...models.Asset) {
	s.entries = append([]models.Asset(nil), assets...)
	s.step = len(s.entries) - 1
}

// Current returns the asset under the cursor.
func (s *Stack) Current() (models.Asset, bool) {
	if s.step < 0 {
		return models.Asset{}, false
	}
	return s.entries[s.step], true
}

func (s *Stack) CanUndo() bool { return s.step > 0 }

func (s *Stack) CanRedo() bool { return s.step >= 0 && s.step < len(s.entries)-1 }

func (s *Stack) Len() int { return len(s.entries) }
