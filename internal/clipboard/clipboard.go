package clipboard

import (
	"strings"

	"github.com/atotto/clipboard"
)

// ReadAll lit le contenu texte du presse-papier.
// Retourne une chaîne de caractères et une erreur éventuelle.
// Le BOM éventuel et les espaces de bord sont retirés.
func ReadAll() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.TrimPrefix(text, "\ufeff")), nil
}

// Unsupported indique si aucun presse-papier n'est accessible (serveur sans X11, etc.).
func Unsupported() bool {
	return clipboard.Unsupported
}
