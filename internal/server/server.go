// Package server exposes the generation engine over a JSON API. Identity
// arrives on a request header; authenticating it is the front door's job,
// not ours.
package server

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/archilab/renderstudio/internal/imaging"
	"github.com/archilab/renderstudio/internal/models"
	"github.com/archilab/renderstudio/internal/service"
	"github.com/archilab/renderstudio/internal/session"
)

const identityHeader = "X-Identity"

// maxImageBytes caps inbound image payloads (~20 MB of raw bytes).
const maxImageBytes = 20 << 20

type Server struct {
	addr        string
	log         *slog.Logger
	sessions    *session.Manager
	generations *service.GenerationService
	transformer *imaging.Transformer
	router      *chi.Mux
}

func New(addr string, log *slog.Logger, sessions *session.Manager, generations *service.GenerationService, transformer *imaging.Transformer) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	s := &Server{
		addr:        addr,
		log:         log,
		sessions:    sessions,
		generations: generations,
		transformer: transformer,
		router:      r,
	}

	r.Get("/api/catalog", s.handleCatalog)

	r.Group(func(api chi.Router) {
		api.Use(s.identityMiddleware)

		api.Post("/api/generate", s.handleGenerate)
		api.Post("/api/analyze", s.handleAnalyzePlan)
		api.Get("/api/quota", s.handleQuota)

		api.Post("/api/images/source", s.handleSetSource)
		api.Delete("/api/images/source", s.handleClearSource)
		api.Post("/api/images/reference", s.handleSetReference)
		api.Delete("/api/images/reference", s.handleClearReference)

		api.Post("/api/history/undo", s.handleUndo)
		api.Post("/api/history/redo", s.handleRedo)
		api.Get("/api/history", s.handleHistoryState)

		api.Get("/api/archive", s.handleArchiveList)
		api.Post("/api/archive/{id}/restore", s.handleArchiveRestore)

		api.Post("/api/transform", s.handleTransform)

		api.Post("/api/bridge/capture", s.handleBridgeCapture)

		api.Post("/api/session/reset", s.handleSessionReset)
		api.Delete("/api/session", s.handleSessionTeardown)
	})

	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error("server shutdown error", "err", err)
		}
	}()

	s.log.Info("render service listening", "addr", s.addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

type identityKey struct{}

func (s *Server) identityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := strings.TrimSpace(r.Header.Get(identityHeader))
		if identity == "" {
			writeError(w, http.StatusUnauthorized, "identity header required")
			return
		}
		ctx := context.WithValue(r.Context(), identityKey{}, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) identity(r *http.Request) string {
	identity, _ := r.Context().Value(identityKey{}).(string)
	return identity
}

func (s *Server) session(r *http.Request) *session.Session {
	return s.sessions.Get(s.identity(r))
}

func decodeImagePayload(p imagePayload) (models.Asset, error) {
	raw := p.Data
	// Accept data URLs as sent by browser/editor clients.
	if idx := strings.IndexByte(raw, ','); idx >= 0 && strings.HasPrefix(raw, "data:") {
		if p.MimeType == "" {
			meta := raw[len("data:"):idx]
			if semi := strings.IndexByte(meta, ';'); semi >= 0 {
				p.MimeType = meta[:semi]
			}
		}
		raw = raw[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return models.Asset{}, fmt.Errorf("decode image data: %w", err)
	}
	if len(data) == 0 {
		return models.Asset{}, errors.New("empty image data")
	}
	if len(data) > maxImageBytes {
		return models.Asset{}, errors.New("image too large")
	}
	mime := p.MimeType
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	return models.Asset{Data: data, MimeType: mime}, nil
}

func encodeAsset(a models.Asset) imagePayload {
	return imagePayload{
		Data:     base64.StdEncoding.EncodeToString(a.Data),
		MimeType: a.MimeType,
	}
}

func readRawImage(r *http.Request) (models.Asset, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImageBytes+1))
	if err != nil {
		return models.Asset{}, fmt.Errorf("read body: %w", err)
	}
	if len(data) == 0 {
		return models.Asset{}, errors.New("empty image payload")
	}
	if len(data) > maxImageBytes {
		return models.Asset{}, errors.New("image too large")
	}

	// Host bridges deliver either raw bytes or a base64/data-URL string.
	if decoded, ok := maybeDecodeBase64(data); ok {
		data = decoded
	}

	mime := r.Header.Get("Content-Type")
	if mime == "" || strings.HasPrefix(mime, "text/") || strings.HasPrefix(mime, "application/octet-stream") {
		mime = http.DetectContentType(data)
	}
	return models.Asset{Data: data, MimeType: mime}, nil
}

func maybeDecodeBase64(data []byte) ([]byte, bool) {
	text := strings.TrimSpace(string(data))
	if idx := strings.IndexByte(text, ','); idx >= 0 && strings.HasPrefix(text, "data:") {
		text = text[idx+1:]
	}
	decoded, err := base64.StdEncoding.DecodeString(text)
	if err != nil || len(decoded) == 0 {
		return nil, false
	}
	return decoded, true
}
