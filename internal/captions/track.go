package captions

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/patrickprogramme/ytexport/internal/fetch"
	"github.com/patrickprogramme/ytexport/internal/subtitles"
	"github.com/patrickprogramme/ytexport/pkg/model"
)

// Track est une piste de sous-titres listée par le lecteur.
type Track struct {
	LanguageCode string
	Name         string
	Kind         string
	BaseURL      string
	Translatable bool

	client *Client
}

func (t *Track) Language() string     { return t.LanguageCode }
func (t *Track) IsManual() bool       { return t.Kind != kindASR }
func (t *Track) IsTranslatable() bool { return t.Translatable }

// Source retourne la provenance de la piste.
func (t *Track) Source() model.SubSource {
	if t.IsManual() {
		return model.SubSourceManual
	}
	return model.SubSourceAutomatic
}

func (t *Track) String() string {
	return fmt.Sprintf("Track(lang=%s, name=%q, source=%s, translatable=%t)", t.LanguageCode, t.Name, t.Source(), t.Translatable)
}

// Fetch télécharge la piste au format json3 et la convertit en segments.
func (t *Track) Fetch(ctx context.Context) ([]model.Segment, error) {
	return t.download(ctx, "")
}

// Translate demande la traduction automatique de la piste vers lang.
func (t *Track) Translate(ctx context.Context, lang string) ([]model.Segment, error) {
	if !t.Translatable {
		return nil, fmt.Errorf("%w: piste %s non traduisible", model.ErrSourceUnavailable, t.LanguageCode)
	}
	return t.download(ctx, lang)
}

func (t *Track) download(ctx context.Context, tlang string) ([]model.Segment, error) {
	if t.client == nil {
		return nil, fmt.Errorf("piste %s sans client", t.LanguageCode)
	}
	u, err := url.Parse(t.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("url de piste invalide: %w", err)
	}
	q := u.Query()
	q.Set("fmt", string(model.FormatJSON3))
	if tlang != "" {
		q.Set("tlang", tlang)
	}
	u.RawQuery = q.Encode()

	data, err := t.client.http.GetBytes(ctx, u.String(), nil)
	if err != nil {
		if fetch.IsStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: %v", model.ErrSourceUnavailable, err)
		}
		return nil, fmt.Errorf("timedtext %s: %w", t.LanguageCode, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: piste %s vide", model.ErrSourceUnavailable, t.LanguageCode)
	}

	segs, err := subtitles.SegmentsFromJSON3(data)
	if err != nil {
		return nil, fmt.Errorf("timedtext %s: %w", t.LanguageCode, err)
	}
	if len(segs) == 0 {
		return nil, fmt.Errorf("%w: piste %s sans texte", model.ErrSourceUnavailable, t.LanguageCode)
	}
	return segs, nil
}
