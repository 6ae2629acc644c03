// Package transcript résout la transcription d'une vidéo dans une langue en
// essayant des stratégies d'acquisition dans un ordre fixe, de la moins coûteuse
// (transcription directe) à la plus coûteuse (yt-dlp).
package transcript

import (
	"context"

	"github.com/patrickprogramme/ytexport/pkg/model"
)

// Track est une piste de sous-titres énumérée par le service.
type Track interface {
	Language() string
	IsManual() bool
	IsTranslatable() bool
	Fetch(ctx context.Context) ([]model.Segment, error)
	Translate(ctx context.Context, lang string) ([]model.Segment, error)
}

// CaptionService donne accès aux sous-titres hébergés.
type CaptionService interface {
	// Fetch retourne une transcription déjà disponible dans lang.
	Fetch(ctx context.Context, videoID, lang string) ([]model.Segment, error)
	// ListTracks énumère les pistes de la vidéo.
	ListTracks(ctx context.Context, videoID string) ([]Track, error)
}

// Extractor télécharge les sous-titres automatiques via un outil externe
// et retourne le chemin du fichier WebVTT produit dans dir.
type Extractor interface {
	ExtractAutoSubs(ctx context.Context, videoID, lang, dir string) (string, error)
}
