package transcript

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/patrickprogramme/ytexport/internal/subtitles"
	"github.com/patrickprogramme/ytexport/pkg/model"
)

// Noms des stratégies, dans l'ordre d'exécution.
const (
	StrategyDirect      = "direct"
	StrategyManual      = "manual"
	StrategyGenerated   = "generated"
	StrategyTranslation = "translation"
	StrategyYtDlp       = "yt-dlp"
)

type strategyFunc func(ctx context.Context, res *resolution) ([]model.Segment, error)

type strategy struct {
	name string
	run  strategyFunc
}

// Resolver applique la cascade de stratégies pour une vidéo et une langue.
// Il ne conserve aucun état entre deux résolutions.
type Resolver struct {
	captions    CaptionService
	extractor   Extractor
	logger      *slog.Logger
	scratchRoot string
	parseFile   func(path string) ([]model.Segment, error)
	strategies  []strategy
}

type Option func(*Resolver)

// WithLogger fixe le logger ; nil => slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithScratchRoot fixe la racine des dossiers de travail de l'outil externe.
func WithScratchRoot(dir string) Option {
	return func(r *Resolver) {
		if dir != "" {
			r.scratchRoot = dir
		}
	}
}

// New construit un Resolver. extractor peut être nil : la dernière stratégie
// échoue alors comme indisponible.
func New(cs CaptionService, extractor Extractor, opts ...Option) *Resolver {
	r := &Resolver{
		captions:    cs,
		extractor:   extractor,
		logger:      slog.Default(),
		scratchRoot: filepath.Join(os.TempDir(), "ytvtt"),
		parseFile:   subtitles.ParseVTTFile,
	}
	for _, o := range opts {
		o(r)
	}
	r.strategies = []strategy{
		{StrategyDirect, r.direct},
		{StrategyManual, r.manual},
		{StrategyGenerated, r.generated},
		{StrategyTranslation, r.translation},
		{StrategyYtDlp, r.ytDlp},
	}
	return r
}

// Strategies retourne les noms des stratégies dans l'ordre d'exécution.
func (r *Resolver) Strategies() []string {
	names := make([]string, len(r.strategies))
	for i, s := range r.strategies {
		names[i] = s.name
	}
	return names
}

// Resolve retourne les segments de la première stratégie qui en produit,
// ou une slice vide si toutes échouent. Aucune erreur n'est remontée.
func (r *Resolver) Resolve(ctx context.Context, videoID, lang string) []model.Segment {
	return r.ResolveReport(ctx, videoID, lang).Segments
}

// ResolveReport exécute la cascade et détaille chaque tentative.
func (r *Resolver) ResolveReport(ctx context.Context, videoID, lang string) Report {
	log := r.logger.With(slog.String("video", videoID), slog.String("lang", lang))
	rep := Report{VideoID: videoID, Language: lang}
	res := &resolution{videoID: videoID, lang: lang, service: r.captions}

	for _, s := range r.strategies {
		if err := ctx.Err(); err != nil {
			rep.Attempts = append(rep.Attempts, Attempt{Strategy: s.name, Category: Classify(err), Err: err})
			log.Warn("résolution interrompue", slog.String("strategy", s.name), slog.Any("error", err))
			break
		}

		start := time.Now()
		segs, err := s.run(ctx, res)
		if err == nil && len(segs) == 0 {
			err = errEmpty
		}
		a := Attempt{Strategy: s.name, Category: Classify(err), Err: err, Segments: len(segs), Elapsed: time.Since(start)}
		rep.Attempts = append(rep.Attempts, a)

		if err != nil {
			log.Debug("stratégie en échec",
				slog.String("strategy", s.name), slog.String("category", string(a.Category)), slog.Any("error", err))
			continue
		}

		rep.Segments = segs
		rep.Strategy = s.name
		log.Info("transcription obtenue",
			slog.String("strategy", s.name), slog.Int("segments", len(segs)), slog.Duration("elapsed", a.Elapsed))
		return rep
	}

	log.Warn("aucune transcription", slog.Int("attempts", len(rep.Attempts)))
	return rep
}

// resolution porte l'état d'une seule résolution : l'énumération des pistes
// est faite au plus une fois et partagée par les stratégies qui en dépendent.
type resolution struct {
	videoID string
	lang    string
	service CaptionService

	listed  bool
	tracks  []Track
	listErr error
}

func (res *resolution) listTracks(ctx context.Context) ([]Track, error) {
	if !res.listed {
		res.listed = true
		res.tracks, res.listErr = res.service.ListTracks(ctx, res.videoID)
	}
	return res.tracks, res.listErr
}

func (res *resolution) findTrack(ctx context.Context, manual bool) (Track, error) {
	tracks, err := res.listTracks(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tracks {
		if t.Language() == res.lang && t.IsManual() == manual {
			return t, nil
		}
	}
	kind := "auto-générée"
	if manual {
		kind = "manuelle"
	}
	return nil, fmt.Errorf("%w: aucune piste %s en %s", model.ErrSourceUnavailable, kind, res.lang)
}
