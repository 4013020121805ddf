package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/archilab/renderstudio/internal/config"
	"github.com/archilab/renderstudio/internal/gemini"
	"github.com/archilab/renderstudio/internal/models"
	"github.com/archilab/renderstudio/internal/prompt"
	"github.com/archilab/renderstudio/internal/quota"
)

// ImageBackend is the generation collaborator.
type ImageBackend interface {
	GenerateContent(ctx context.Context, req gemini.Request) (*gemini.Result, error)
}

// UserStore loads (and lazily creates) the per-identity quota record.
type UserStore interface {
	Ensure(ctx context.Context, username string, dailyLimit int) (*models.User, bool, error)
}

// GenerationLogger records the per-generation audit row. Failures are
// logged, never fatal.
type GenerationLogger interface {
	Log(ctx context.Context, userID int64, model string, tier models.Tier, promptText string, billable bool) error
}

// RenderUploader persists a successful render to object storage,
// best-effort.
type RenderUploader interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

// EditSession is the slice of the editing session the dispatcher touches:
// the input images going out, and the result coming back in.
type EditSession interface {
	SourceImage() (models.Asset, bool)
	ReferenceImage() (models.Asset, bool)
	RecordResult(asset models.Asset, promptText string) models.SessionRecord
}

// GenerationService orchestrates one end-to-end generation: validation,
// credential resolution, tier decision, prompt composition, the backend
// call, and result routing into history, archive, billing and storage.
type GenerationService struct {
	cfg         config.Config
	log         *slog.Logger
	users       UserStore
	settings    SettingsStore
	gate        *quota.Gate
	backend     ImageBackend
	generations GenerationLogger
	uploader    RenderUploader
}

func NewGenerationService(cfg config.Config, log *slog.Logger, users UserStore, settings SettingsStore, gate *quota.Gate, backend ImageBackend, generations GenerationLogger, uploader RenderUploader) *GenerationService {
	return &GenerationService{
		cfg:         cfg,
		log:         log,
		users:       users,
		settings:    settings,
		gate:        gate,
		backend:     backend,
		generations: generations,
		uploader:    uploader,
	}
}

type GenerateInput struct {
	Request       prompt.Request
	RequestedTier models.Tier
	OverrideKey   string
}

type GenerateOutcome struct {
	Asset      models.Asset
	Prompt     string
	Tier       models.Tier
	Downgraded bool
	RecordID   string
	StorageURL string
}

// Generate runs one generation for the identity's session. On any failure
// the quota record and the session history are left untouched; on success
// the result is recorded before billing, so a billing failure never costs
// the user their image.
func (s *GenerationService) Generate(ctx context.Context, sess EditSession, identity string, in GenerateInput) (*GenerateOutcome, error) {
	req := in.Request
	source, hasSource := sess.SourceImage()
	reference, hasReference := sess.ReferenceImage()
	req.HasSource = hasSource
	req.HasReference = hasReference

	if err := prompt.Validate(req); err != nil {
		return nil, err
	}

	user, _, err := s.users.Ensure(ctx, identity, s.cfg.DefaultDailyLimit)
	if err != nil {
		return nil, fmt.Errorf("load quota record: %w", err)
	}

	apiKey, usedOverride, err := s.resolveCredential(ctx, in.OverrideKey)
	if err != nil {
		return nil, err
	}

	decision := quota.Decide(quota.State{
		Identity:      user.Username,
		DailyLimit:    user.DailyLimit,
		UsedToday:     user.UsedToday,
		LastUsageDate: user.LastUsageDate,
		IsPrivileged:  user.IsPrivileged,
	}, in.RequestedTier, usedOverride, time.Now().UTC())

	if decision.Downgraded {
		s.log.Info("premium quota exhausted, downgrading", "identity", identity)
	}

	promptText := prompt.Compose(req)

	parts := []gemini.Part{gemini.TextPart(promptText)}
	if hasSource {
		parts = append(parts, gemini.ImagePart(source.Data, mediaType(source)))
	}
	if hasReference {
		parts = append(parts, gemini.ImagePart(reference.Data, mediaType(reference)))
	}

	model := s.cfg.StandardModel
	var imageCfg *gemini.ImageConfig
	if decision.Granted == models.TierPremium {
		model = s.cfg.PremiumModel
		imageCfg = &gemini.ImageConfig{
			ImageSize:   s.cfg.PremiumImageSize,
			AspectRatio: s.cfg.PremiumAspectRatio,
		}
	}

	result, err := s.backend.GenerateContent(ctx, gemini.Request{
		APIKey:    apiKey,
		Model:     model,
		Parts:     parts,
		WantImage: true,
		Image:     imageCfg,
	})
	if err != nil {
		return nil, mapBackendError(err)
	}
	if len(result.Images) == 0 {
		return nil, ErrNoImage
	}

	asset := models.Asset{
		Data:     result.Images[0].Data,
		MimeType: result.Images[0].Mime,
	}
	if asset.MimeType == "" {
		asset.MimeType = http.DetectContentType(asset.Data)
	}

	rec := sess.RecordResult(asset, promptText)

	if decision.Billable {
		if err := s.gate.Bill(ctx, user.Username); err != nil {
			// The image is already delivered; accounting slippage is an
			// operator problem, not the user's.
			s.log.Error("billing failed after delivered result", "identity", identity, "err", err)
		}
	}

	outcome := &GenerateOutcome{
		Asset:      asset,
		Prompt:     promptText,
		Tier:       decision.Granted,
		Downgraded: decision.Downgraded,
		RecordID:   rec.ID,
	}

	if s.uploader != nil {
		url, err := s.uploader.Upload(ctx, asset.Data, asset.MimeType)
		if err != nil {
			s.log.Error("failed to persist render", "err", err)
		} else {
			outcome.StorageURL = url
		}
	}

	if s.generations != nil {
		if err := s.generations.Log(ctx, user.ID, model, decision.Granted, promptText, decision.Billable); err != nil {
			s.log.Error("failed to log generation", "err", err)
		}
	}

	return outcome, nil
}

// AnalyzePlan reads the session's source image as a 2D floor plan and
// returns a textual layout description suitable for the strict from_2d
// composition block.
func (s *GenerationService) AnalyzePlan(ctx context.Context, sess EditSession, interiorStyleID, overrideKey string) (string, error) {
	source, ok := sess.SourceImage()
	if !ok {
		return "", ErrNoSourceImage
	}

	apiKey, _, err := s.resolveCredential(ctx, overrideKey)
	if err != nil {
		return "", err
	}

	result, err := s.backend.GenerateContent(ctx, gemini.Request{
		APIKey: apiKey,
		Model:  s.cfg.AnalysisModel,
		Parts: []gemini.Part{
			gemini.TextPart(prompt.AnalysisInstruction(interiorStyleID)),
			gemini.ImagePart(source.Data, mediaType(source)),
		},
	})
	if err != nil {
		return "", mapBackendError(err)
	}

	text := strings.TrimSpace(result.Text)
	if text == "" {
		return "", fmt.Errorf("plan analysis returned no text")
	}
	return text, nil
}

// QuotaStatus reports the identity's quota record with the lazy day reset
// applied for display.
func (s *GenerationService) QuotaStatus(ctx context.Context, identity string) (*models.User, int, error) {
	user, _, err := s.users.Ensure(ctx, identity, s.cfg.DefaultDailyLimit)
	if err != nil {
		return nil, 0, fmt.Errorf("load quota record: %w", err)
	}
	effective := quota.EffectiveUsed(quota.State{
		UsedToday:     user.UsedToday,
		LastUsageDate: user.LastUsageDate,
	}, time.Now().UTC())
	return user, effective, nil
}

func mediaType(asset models.Asset) string {
	if asset.MimeType != "" {
		return asset.MimeType
	}
	return http.DetectContentType(asset.Data)
}
