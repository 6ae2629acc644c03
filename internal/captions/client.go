// Package captions récupère les pistes de sous-titres YouTube sans clé d'API :
// page de visionnage (ytInitialPlayerResponse) pour l'accès direct, endpoint
// InnerTube /player (client ANDROID) pour l'énumération des pistes.
package captions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/patrickprogramme/ytexport/internal/fetch"
	"github.com/patrickprogramme/ytexport/pkg/model"
)

// Client interroge YouTube. PlayerURL et WatchURL sont exportés pour les tests.
type Client struct {
	http      *fetch.Client
	logger    *slog.Logger
	PlayerURL string
	WatchURL  string // préfixe, l'identifiant vidéo est ajouté à la fin
}

// New construit un client ; logger nil -> slog.Default().
func New(fc *fetch.Client, logger *slog.Logger) *Client {
	if fc == nil {
		fc = fetch.New(0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:      fc,
		logger:    logger,
		PlayerURL: defaultPlayerURL,
		WatchURL:  defaultWatchURL,
	}
}

// Fetch retourne la transcription déjà disponible dans la langue lang :
// piste manuelle si elle existe, sinon piste auto-générée, trouvées dans la
// réponse lecteur de la page de visionnage.
func (c *Client) Fetch(ctx context.Context, videoID, lang string) ([]model.Segment, error) {
	tracks, err := c.watchPageTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}
	t, ok := FindTrack(tracks, lang, true)
	if !ok {
		t, ok = FindTrack(tracks, lang, false)
	}
	if !ok {
		return nil, fmt.Errorf("%w: aucune piste %q pour %s", model.ErrSourceUnavailable, lang, videoID)
	}
	return t.Fetch(ctx)
}

// ListTracks énumère les pistes de la vidéo via InnerTube /player.
// Les pistes qui exigent un PoToken (navigateur uniquement) sont écartées.
func (c *Client) ListTracks(ctx context.Context, videoID string) ([]*Track, error) {
	body, err := c.http.PostJSON(ctx, c.PlayerURL+"?prettyPrint=false", newAndroidPlayerReq(videoID), map[string]string{
		"User-Agent":               androidUA,
		"X-Youtube-Client-Name":    "3",
		"X-Youtube-Client-Version": androidVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("innertube player: %w", err)
	}

	var resp playerResp
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	return c.tracksFrom(resp, videoID)
}

// FindTrack retourne la première piste de langue lang, manuelle ou auto selon manual.
func FindTrack(tracks []*Track, lang string, manual bool) (*Track, bool) {
	for _, t := range tracks {
		if t.LanguageCode == lang && t.IsManual() == manual {
			return t, true
		}
	}
	return nil, false
}

// watchPageTracks extrait ytInitialPlayerResponse du HTML de la page de visionnage.
func (c *Client) watchPageTracks(ctx context.Context, videoID string) ([]*Track, error) {
	body, err := c.http.GetBytes(ctx, c.WatchURL+videoID, map[string]string{
		"Accept-Language": "en-US,en;q=0.9",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	})
	if err != nil {
		if fetch.IsStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: page introuvable: %v", model.ErrSourceUnavailable, err)
		}
		return nil, fmt.Errorf("watch page: %w", err)
	}

	idx := bytes.Index(body, []byte(playerResponseMarker))
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse absent de la page")
	}
	// le décodeur s'arrête à la fin du premier objet JSON, le reste du script est ignoré
	var resp playerResp
	dec := json.NewDecoder(bytes.NewReader(body[idx+len(playerResponseMarker):]))
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return c.tracksFrom(resp, videoID)
}

func (c *Client) tracksFrom(resp playerResp, videoID string) ([]*Track, error) {
	if resp.Captions == nil {
		reason := "aucun sous-titre"
		if resp.PlayabilityStatus != nil && resp.PlayabilityStatus.Reason != "" {
			reason = resp.PlayabilityStatus.Reason
		}
		return nil, fmt.Errorf("%w: %s", model.ErrSourceUnavailable, reason)
	}

	raw := resp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	tracks := make([]*Track, 0, len(raw))
	for _, ct := range raw {
		if ct.BaseURL == "" || needsPoToken(ct.BaseURL) {
			continue
		}
		tracks = append(tracks, &Track{
			LanguageCode: ct.LanguageCode,
			Name:         ct.displayName(),
			Kind:         ct.Kind,
			BaseURL:      ct.BaseURL,
			Translatable: ct.Translatable,
			client:       c,
		})
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: aucune piste exploitable (%d listées)", model.ErrSourceUnavailable, len(raw))
	}
	c.logger.Debug("pistes de sous-titres",
		slog.String("video", videoID), slog.Int("count", len(tracks)))
	return tracks, nil
}

// needsPoToken indique si l'URL d'une piste exige un PoToken (&exp=xpe) :
// ces pistes ne sont pas téléchargeables hors navigateur.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}
