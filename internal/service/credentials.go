package service

import (
	"context"
	"strings"

	"github.com/archilab/renderstudio/internal/repository"
)

// SettingsStore is the remote key-value lookup behind the last credential
// fallback. A missing value is a valid empty result, not an error.
type SettingsStore interface {
	Get(ctx context.Context, name string) (string, error)
}

type credentialResolver struct {
	source  string
	resolve func(ctx context.Context) (string, error)
}

// resolveCredential walks the resolver chain in priority order (request
// override, process default, settings table) and returns the first
// non-empty key. The result is owned by this one call and never cached.
func (s *GenerationService) resolveCredential(ctx context.Context, override string) (key string, usedOverride bool, err error) {
	resolvers := []credentialResolver{
		{"override", func(context.Context) (string, error) {
			return strings.TrimSpace(override), nil
		}},
		{"process", func(context.Context) (string, error) {
			return strings.TrimSpace(s.cfg.GeminiAPIKey), nil
		}},
		{"settings", func(ctx context.Context) (string, error) {
			return s.settings.Get(ctx, repository.SettingGeminiAPIKey)
		}},
	}

	for _, r := range resolvers {
		key, rerr := r.resolve(ctx)
		if rerr != nil {
			// A failed remote lookup counts as absence; the chain only
			// fails when nothing at all resolves.
			s.log.Warn("credential resolver failed", "source", r.source, "err", rerr)
			continue
		}
		if key != "" {
			return key, r.source == "override", nil
		}
	}

	return "", false, ErrNoCredential
}
