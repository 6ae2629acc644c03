package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/patrickprogramme/ytexport/internal/captions"
	"github.com/patrickprogramme/ytexport/internal/config"
	"github.com/patrickprogramme/ytexport/internal/fetch"
	"github.com/patrickprogramme/ytexport/internal/transcript"
	"github.com/patrickprogramme/ytexport/internal/ui"
	"github.com/patrickprogramme/ytexport/internal/yt"
	"github.com/patrickprogramme/ytexport/internal/ytapi"
)

// NewFromConfig construit l'application avec les implémentations réelles.
// yt-dlp est optionnel : s'il est absent, la dernière stratégie est simplement indisponible.
func NewFromConfig(ctx context.Context, cfg *config.Config, uiClient ui.Interface, flags *CLIFlags, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration invalide : %w", err)
	}

	videos, err := ytapi.New(ctx, cfg.APIKey,
		ytapi.WithRate(cfg.APIRequestsPerSecond),
		ytapi.WithTimeout(cfg.HTTPTimeout),
		ytapi.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	warnings, err := cfg.ValidateYtDlpPresence()
	for _, w := range warnings {
		logger.Debug("yt-dlp", slog.String("warning", w))
	}
	var extractor transcript.Extractor
	if err == nil {
		dl, version, ierr := yt.InitYtDlp(ctx, cfg)
		switch {
		case ierr != nil && dl == nil:
			logger.Warn("yt-dlp indisponible, dernier recours désactivé", slog.Any("error", ierr))
		case ierr != nil:
			logger.Warn("version yt-dlp inconnue", slog.Any("error", ierr))
			extractor = dl
		default:
			logger.Debug("yt-dlp prêt", slog.String("version", version), slog.String("path", dl.Path))
			extractor = dl
		}
	} else {
		logger.Warn("yt-dlp désactivé", slog.Any("error", err))
	}

	cc := captions.New(fetch.New(cfg.HTTPTimeout), logger)
	resolver := transcript.New(transcript.NewCaptionService(cc), extractor,
		transcript.WithLogger(logger),
		transcript.WithScratchRoot(cfg.ScratchDir),
	)

	return New(cfg, uiClient, flags, videos, resolver, logger), nil
}
