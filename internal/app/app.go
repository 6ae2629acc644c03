package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/patrickprogramme/ytexport/internal/config"
	"github.com/patrickprogramme/ytexport/internal/export"
	"github.com/patrickprogramme/ytexport/internal/transcript"
	"github.com/patrickprogramme/ytexport/internal/ui"
	"github.com/patrickprogramme/ytexport/internal/yt"
	"github.com/patrickprogramme/ytexport/pkg/model"
)

// Mode choisit les exports effectués par Run.
type Mode int

const (
	ModeAll Mode = iota
	ModeTranscript
	ModeComments
)

func (m Mode) comments() bool   { return m == ModeAll || m == ModeComments }
func (m Mode) transcript() bool { return m == ModeAll || m == ModeTranscript }

// CLIFlags contient les information venant des flags de l'app
type CLIFlags struct {
	ConfigPath string
	Input      string // URL ou ID passé en argument
	Languages  []string
	OutputDir  string
	YtDlpPath  string
	Verbose    bool
}

// VideoSource fournit les métadonnées et les commentaires (API Data v3).
type VideoSource interface {
	VideoMeta(ctx context.Context, videoID string) (model.VideoMeta, error)
	Comments(ctx context.Context, videoID, ownerChannelID string) ([]model.Comment, error)
}

// TranscriptResolver résout une transcription pour une langue.
type TranscriptResolver interface {
	ResolveReport(ctx context.Context, videoID, lang string) transcript.Report
}

// Result résume ce qui a été écrit.
type Result struct {
	Meta         model.VideoMeta
	OutDir       string
	CommentsFile string
	Comments     int
	Transcript   export.TranscriptFiles
	Language     string // langue exportée, vide si aucune transcription
	Strategy     string
}

// App orchestre les différentes dépendances (UI, API, résolution, export)
type App struct {
	cfg      *config.Config
	ui       ui.Interface
	flags    *CLIFlags
	videos   VideoSource
	resolver TranscriptResolver
	logger   *slog.Logger
}

// New construit l'application à partir de dépendances déjà initialisées.
// Pour les tests, on injecte des implémentations factices.
func New(cfg *config.Config, uiClient ui.Interface, flags *CLIFlags, videos VideoSource, resolver TranscriptResolver, logger *slog.Logger) *App {
	if flags == nil {
		flags = &CLIFlags{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		cfg:      cfg,
		ui:       uiClient,
		flags:    flags,
		videos:   videos,
		resolver: resolver,
		logger:   logger,
	}
}

// Run exécute le flux principal : entrée, métadonnées, commentaires, transcription.
func (a *App) Run(ctx context.Context, mode Mode) error {
	// Récupération de l'entrée : priorité argument > clipboard > prompt
	input := a.flags.Input
	if input == "" {
		u, err := a.ui.GetVideoInput(ctx)
		if err != nil {
			return fmt.Errorf("get url: %w", err)
		}
		input = u
	}

	res, err := a.Export(ctx, input, mode)
	if res.OutDir != "" {
		a.ui.PrintInfo(ctx, fmt.Sprintf("📁 %s", res.OutDir))
	}
	return err
}

// Export traite une vidéo. Les métadonnées sont indispensables ; un échec sur les
// commentaires n'empêche pas la transcription et est remonté à la fin.
func (a *App) Export(ctx context.Context, input string, mode Mode) (Result, error) {
	var res Result

	videoID, err := yt.ExtractVideoID(input)
	if err != nil {
		return res, fmt.Errorf("%w : %q", err, input)
	}
	log := a.logger.With(slog.String("video", videoID))

	err = a.ui.Step(ctx, "Métadonnées", func() error {
		meta, err := a.videos.VideoMeta(ctx, videoID)
		res.Meta = meta
		return err
	})
	if err != nil {
		return res, err
	}
	a.ui.PrintInfo(ctx, res.Meta.Pretty())
	res.OutDir = export.VideoDir(a.cfg.OutputDir, res.Meta.Title)

	var errs []error
	if mode.comments() && a.cfg.SaveComments {
		err := a.ui.Step(ctx, "Export des commentaires", func() error {
			comments, err := a.videos.Comments(ctx, videoID, res.Meta.ChannelID)
			if err != nil {
				return err
			}
			path, err := export.WriteComments(comments, res.OutDir, videoID, res.Meta.Title)
			res.CommentsFile, res.Comments = path, len(comments)
			return err
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("commentaires : %w", err))
		} else {
			log.Info("commentaires exportés", slog.Int("count", res.Comments), slog.String("file", res.CommentsFile))
		}
	}

	if mode.transcript() && a.cfg.SaveTranscript {
		if err := a.exportTranscript(ctx, videoID, &res); err != nil {
			errs = append(errs, fmt.Errorf("transcription : %w", err))
		}
	}

	return res, errors.Join(errs...)
}

// exportTranscript essaie chaque langue dans l'ordre configuré ; la cascade
// complète est rejouée pour la langue suivante seulement si la précédente ne donne rien.
func (a *App) exportTranscript(ctx context.Context, videoID string, res *Result) error {
	for _, lang := range a.cfg.Languages {
		var rep transcript.Report
		_ = a.ui.Step(ctx, fmt.Sprintf("Transcription (%s)", lang), func() error {
			rep = a.resolver.ResolveReport(ctx, videoID, lang)
			return nil
		})
		if !rep.OK() {
			a.logger.Debug("langue sans transcription", slog.String("lang", lang), slog.Int("attempts", len(rep.Attempts)))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}

		files, ok, err := export.WriteTranscript(rep.Segments, res.OutDir, videoID, res.Meta.Title, lang)
		if err != nil {
			return err
		}
		if ok {
			res.Transcript, res.Language, res.Strategy = files, lang, rep.Strategy
			a.ui.PrintInfo(ctx, fmt.Sprintf("✔︎ Transcription %s (%s) → %s", lang, rep.Strategy, files.CSV))
			return nil
		}
	}
	a.ui.PrintError(ctx, "⚠️  Aucune transcription disponible.")
	return nil
}
