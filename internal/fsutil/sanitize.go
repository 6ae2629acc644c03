package fsutil

import (
	"strings"
)

// limite de longueur de la chaine
const max = 200

// SanitizeFilename nettoie une chaîne pour en faire un nom de fichier ou de dossier.
// Étapes :
// - Conserve lettres ASCII, chiffres et les caractères "-_.() "
// - Remplace tout autre caractère par "_"
// - Supprime les espaces en début/fin puis remplace les espaces restants par "_"
// - Limite la longueur du nom
// - Fournit un nom par défaut si la chaîne est vide
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if keepRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	clean := strings.TrimSpace(b.String())
	clean = strings.ReplaceAll(clean, " ", "_")

	if clean == "" {
		return "untitled"
	}
	if len(clean) > max {
		clean = clean[:max]
	}
	return clean
}

func keepRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case strings.ContainsRune("-_.() ", r):
		return true
	}
	return false
}
