package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/archilab/renderstudio/internal/catalog"
	"github.com/archilab/renderstudio/internal/imaging"
	"github.com/archilab/renderstudio/internal/models"
	"github.com/archilab/renderstudio/internal/prompt"
	"github.com/archilab/renderstudio/internal/service"
)

type imagePayload struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType,omitempty"`
}

type generateRequest struct {
	Tab           string `json:"tab"`
	RenderStyle   string `json:"renderStyle,omitempty"`
	ArchStyle     string `json:"archStyle,omitempty"`
	Scene         string `json:"scene,omitempty"`
	RoomType      string `json:"roomType,omitempty"`
	InteriorStyle string `json:"interiorStyle,omitempty"`
	InteriorMode  string `json:"interiorMode,omitempty"`
	PlanStyle     string `json:"planStyle,omitempty"`
	FreeText      string `json:"freeText,omitempty"`
	EditCommand   string `json:"editCommand,omitempty"`
	RequestedTier string `json:"requestedTier,omitempty"`
	OverrideKey   string `json:"overrideKey,omitempty"`
}

type generateResponse struct {
	Image      imagePayload `json:"image"`
	Prompt     string       `json:"prompt"`
	Tier       string       `json:"tier"`
	Downgraded bool         `json:"downgraded"`
	Notice     string       `json:"notice,omitempty"`
	RecordID   string       `json:"recordId"`
	StorageURL string       `json:"storageUrl,omitempty"`
}

type historyState struct {
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
}

type imageStateResponse struct {
	Image   *imagePayload `json:"image,omitempty"`
	History historyState  `json:"history"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"roomTypes":      catalog.RoomTypes(),
		"interiorStyles": catalog.InteriorStyles(),
		"planStyles":     catalog.PlanStyles(),
		"exteriorScenes": catalog.ExteriorScenes(),
		"archStyles":     catalog.ArchStyles(),
		"renderStyles":   catalog.RenderStyles(),
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	sess := s.session(r)
	if !sess.TryBeginGeneration() {
		writeError(w, http.StatusConflict, "generation already in progress")
		return
	}
	defer sess.EndGeneration()

	tier := models.TierStandard
	if req.RequestedTier == string(models.TierPremium) || req.RequestedTier == "" {
		tier = models.TierPremium
	}

	out, err := s.generations.Generate(r.Context(), sess, s.identity(r), service.GenerateInput{
		Request: prompt.Request{
			Tab:             models.Tab(req.Tab),
			RenderStyleID:   req.RenderStyle,
			ArchStyleID:     req.ArchStyle,
			SceneID:         req.Scene,
			RoomTypeID:      req.RoomType,
			InteriorStyleID: req.InteriorStyle,
			InteriorMode:    models.InteriorMode(req.InteriorMode),
			PlanStyleID:     req.PlanStyle,
			FreeText:        req.FreeText,
			EditCommand:     req.EditCommand,
		},
		RequestedTier: tier,
		OverrideKey:   req.OverrideKey,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	resp := generateResponse{
		Image:      encodeAsset(out.Asset),
		Prompt:     out.Prompt,
		Tier:       string(out.Tier),
		Downgraded: out.Downgraded,
		RecordID:   out.RecordID,
		StorageURL: out.StorageURL,
	}
	if out.Downgraded {
		resp.Notice = "Daily limit for the premium engine reached. Generated with the standard engine."
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAnalyzePlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InteriorStyle string `json:"interiorStyle,omitempty"`
		OverrideKey   string `json:"overrideKey,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	sess := s.session(r)
	if !sess.TryBeginGeneration() {
		writeError(w, http.StatusConflict, "generation already in progress")
		return
	}
	defer sess.EndGeneration()

	text, err := s.generations.AnalyzePlan(r.Context(), sess, req.InteriorStyle, req.OverrideKey)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"analysis": text})
}

func (s *Server) handleQuota(w http.ResponseWriter, r *http.Request) {
	user, used, err := s.generations.QuotaStatus(r.Context(), s.identity(r))
	if err != nil {
		s.log.Error("quota lookup failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"dailyLimit":   user.DailyLimit,
		"usedToday":    used,
		"remaining":    max(user.DailyLimit-used, 0),
		"isPrivileged": user.IsPrivileged,
	})
}

func (s *Server) handleSetSource(w http.ResponseWriter, r *http.Request) {
	var payload imagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	asset, err := decodeImagePayload(payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess := s.session(r)
	sess.SetSource(asset)
	s.writeJSON(w, http.StatusOK, historyState{CanUndo: sess.CanUndo(), CanRedo: sess.CanRedo()})
}

func (s *Server) handleClearSource(w http.ResponseWriter, r *http.Request) {
	s.session(r).ClearSource()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetReference(w http.ResponseWriter, r *http.Request) {
	var payload imagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	asset, err := decodeImagePayload(payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.session(r).SetReference(asset)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearReference(w http.ResponseWriter, r *http.Request) {
	s.session(r).ClearReference()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	asset, ok := sess.Undo()
	if !ok {
		writeError(w, http.StatusConflict, "nothing to undo")
		return
	}
	s.writeImageState(w, asset, sess)
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	asset, ok := sess.Redo()
	if !ok {
		writeError(w, http.StatusConflict, "nothing to redo")
		return
	}
	s.writeImageState(w, asset, sess)
}

func (s *Server) handleHistoryState(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	s.writeJSON(w, http.StatusOK, historyState{CanUndo: sess.CanUndo(), CanRedo: sess.CanRedo()})
}

func (s *Server) handleSessionReset(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	sess.ResetWorking()
	s.writeJSON(w, http.StatusOK, historyState{CanUndo: sess.CanUndo(), CanRedo: sess.CanRedo()})
}

func (s *Server) handleSessionTeardown(w http.ResponseWriter, r *http.Request) {
	s.sessions.Remove(s.identity(r))
	w.WriteHeader(http.StatusNoContent)
}

type archiveEntry struct {
	ID        string       `json:"id"`
	Prompt    string       `json:"prompt"`
	CreatedAt string       `json:"createdAt"`
	Image     imagePayload `json:"image"`
}

func (s *Server) handleArchiveList(w http.ResponseWriter, r *http.Request) {
	records := s.session(r).Archive()
	entries := make([]archiveEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, archiveEntry{
			ID:        rec.ID,
			Prompt:    rec.Prompt,
			CreatedAt: rec.CreatedAt.UTC().Format(timeLayout),
			Image:     encodeAsset(rec.Asset),
		})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"records": entries})
}

func (s *Server) handleArchiveRestore(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	rec, ok := sess.RestoreFromArchive(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	s.writeImageState(w, rec.Asset, sess)
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Op string `json:"op"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	var op imaging.Op
	switch req.Op {
	case "rotate":
		op = imaging.OpRotate
	case "flip":
		op = imaging.OpFlip
	default:
		writeError(w, http.StatusBadRequest, "unknown transform op")
		return
	}

	sess := s.session(r)
	current, ok := sess.ActiveImage()
	if !ok {
		writeError(w, http.StatusConflict, "no image to transform")
		return
	}
	transformed := s.transformer.Apply(current, op)
	sess.ApplyTransform(transformed)
	s.writeImageState(w, transformed, sess)
}

func (s *Server) handleBridgeCapture(w http.ResponseWriter, r *http.Request) {
	asset, err := readRawImage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess := s.session(r)
	sess.BridgeCapture(asset)
	s.writeJSON(w, http.StatusOK, historyState{CanUndo: sess.CanUndo(), CanRedo: sess.CanRedo()})
}

const timeLayout = "2006-01-02T15:04:05Z"

type sessionState interface {
	CanUndo() bool
	CanRedo() bool
}

func (s *Server) writeImageState(w http.ResponseWriter, asset models.Asset, sess sessionState) {
	payload := encodeAsset(asset)
	s.writeJSON(w, http.StatusOK, imageStateResponse{
		Image:   &payload,
		History: historyState{CanUndo: sess.CanUndo(), CanRedo: sess.CanRedo()},
	})
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	msg := service.UserMessage(err)
	switch {
	case errors.Is(err, service.ErrEmptyRequest),
		errors.Is(err, service.ErrNoSourceImage):
		writeError(w, http.StatusBadRequest, msg)
	case errors.Is(err, service.ErrNoCredential):
		writeError(w, http.StatusServiceUnavailable, msg)
	case errors.Is(err, service.ErrRateLimited):
		writeError(w, http.StatusServiceUnavailable, msg)
	case errors.Is(err, service.ErrBackendAuth):
		writeError(w, http.StatusBadGateway, msg)
	case errors.Is(err, service.ErrNoImage):
		writeError(w, http.StatusBadGateway, msg)
	default:
		s.log.Error("generation failed", "identity", s.identity(r), "err", err)
		writeError(w, http.StatusInternalServerError, msg)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
