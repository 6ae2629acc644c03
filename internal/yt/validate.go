package yt

import (
	"errors"
	"regexp"
	"strings"
)

// identifiant seul : exactement 11 caractères
var bareID = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// identifiant dans une URL
var urlID = regexp.MustCompile(`(?:v=|youtu\.be/)([A-Za-z0-9_-]{11})`)

// ErrInvalidVideo est retournée quand l'entrée ne contient aucun identifiant.
var ErrInvalidVideo = errors.New("URL ou ID YouTube invalide")

// ExtractVideoID retourne l'identifiant de 11 caractères contenu dans s
// (identifiant seul, ...watch?v=<id> ou youtu.be/<id>).
func ExtractVideoID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if bareID.MatchString(s) {
		return s, nil
	}
	if m := urlID.FindStringSubmatch(s); m != nil {
		return m[1], nil
	}
	return "", ErrInvalidVideo
}

// VideoURL retourne l'URL courte de la vidéo.
func VideoURL(id string) string {
	return "https://youtu.be/" + id
}
