package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/archilab/renderstudio/internal/models"
)

// Archive is the session backup log: every successful generation is
// recorded here regardless of what undo/redo later discards, so a result
// lost from the stack can always be recovered. There is no delete; the
// archive lives and dies with the editing session.
type Archive struct {
	records []models.SessionRecord
}

func NewArchive() *Archive {
	return &Archive{}
}

// Append records an asset with the prompt that produced it. Returns the
// record for the caller to report its id.
func (a *Archive) Append(asset models.Asset, promptText string) models.SessionRecord {
	rec := models.SessionRecord{
		ID:        uuid.NewString(),
		Asset:     asset,
		Prompt:    promptText,
		CreatedAt: time.Now().UTC(),
	}
	a.records = append(a.records, rec)
	return rec
}

// List returns the records most recent first.
func (a *Archive) List() []models.SessionRecord {
	out := make([]models.SessionRecord, len(a.records))
	for i, rec := range a.records {
		out[len(a.records)-1-i] = rec
	}
	return out
}

// Find returns the record with the given id.
func (a *Archive) Find(id string) (models.SessionRecord, bool) {
	for _, rec := range a.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return models.SessionRecord{}, false
}

func (a *Archive) Len() int { return len(a.records) }
