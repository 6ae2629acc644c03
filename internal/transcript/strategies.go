package transcript

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/patrickprogramme/ytexport/pkg/model"
)

// direct : transcription déjà rendue dans la langue demandée.
func (r *Resolver) direct(ctx context.Context, res *resolution) ([]model.Segment, error) {
	return r.captions.Fetch(ctx, res.videoID, res.lang)
}

// manual : piste créée manuellement dans la langue demandée.
func (r *Resolver) manual(ctx context.Context, res *resolution) ([]model.Segment, error) {
	t, err := res.findTrack(ctx, true)
	if err != nil {
		return nil, err
	}
	return t.Fetch(ctx)
}

// generated : piste auto-générée dans la langue demandée.
func (r *Resolver) generated(ctx context.Context, res *resolution) ([]model.Segment, error) {
	t, err := res.findTrack(ctx, false)
	if err != nil {
		return nil, err
	}
	return t.Fetch(ctx)
}

// translation : première piste traduisible, dans l'ordre d'énumération,
// dont la traduction vers la langue demandée réussit.
func (r *Resolver) translation(ctx context.Context, res *resolution) ([]model.Segment, error) {
	tracks, err := res.listTracks(ctx)
	if err != nil {
		return nil, err
	}
	var errs []error
	for _, t := range tracks {
		if !t.IsTranslatable() {
			continue
		}
		segs, err := t.Translate(ctx, res.lang)
		if err == nil && len(segs) > 0 {
			return segs, nil
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s -> %s: %w", t.Language(), res.lang, err))
		}
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: aucune piste traduisible vers %s", model.ErrSourceUnavailable, res.lang)
	}
	return nil, errors.Join(errs...)
}

// ytDlp : sous-titres automatiques téléchargés par l'outil externe dans un
// dossier de travail propre à cette résolution, supprimé ensuite.
func (r *Resolver) ytDlp(ctx context.Context, res *resolution) ([]model.Segment, error) {
	if r.extractor == nil {
		return nil, fmt.Errorf("%w: aucun extracteur configuré", model.ErrSourceUnavailable)
	}

	dir := filepath.Join(r.scratchRoot, res.videoID+"-"+uuid.NewString())
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			r.logger.Warn("nettoyage du dossier de travail", "dir", dir, "error", err)
		}
	}()

	path, err := r.extractor.ExtractAutoSubs(ctx, res.videoID, res.lang, dir)
	if err != nil {
		return nil, err
	}
	segs, err := r.parseFile(path)
	if err != nil && len(segs) > 0 {
		r.logger.Warn("lecture partielle des sous-titres", "file", filepath.Base(path), "segments", len(segs), "error", err)
		return segs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: lecture %s: %v", model.ErrExternalTool, filepath.Base(path), err)
	}
	return segs, nil
}
