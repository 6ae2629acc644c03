package ui

import "context"

type Interface interface {
	// GetVideoInput renvoie une entrée contenant un identifiant vidéo valide.
	// Implémentation terminale : priorité clipboard -> prompt
	GetVideoInput(ctx context.Context) (string, error)

	PrintInfo(ctx context.Context, s string)
	PrintError(ctx context.Context, s string)

	// Step affiche une étape en cours puis son issue.
	Step(ctx context.Context, label string, fn func() error) error
}
