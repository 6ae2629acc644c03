package model

import (
	"errors"
	"fmt"
)

// Segment représente une unité de sous-titre horodatée.
// Start et Duration sont en secondes. Les segments peuvent se chevaucher ou
// laisser des trous : c'est le reflet des données réelles, on n'y touche pas.
type Segment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"` // texte brut, éventuellement avec balisage
}

// End retourne Start+Duration.
func (s Segment) End() float64 {
	return s.Start + s.Duration
}

func (s Segment) String() string {
	return fmt.Sprintf("Segment(%.3f+%.3f, %q)", s.Start, s.Duration, s.Text)
}

// Catégories d'échec des sources de sous-titres.
// Tout ce qui n'entre pas dans ces catégories est traité comme une erreur de transport.
var (
	ErrSourceUnavailable = errors.New("source de sous-titres indisponible")
	ErrExternalTool      = errors.New("échec de l'outil externe")
)

// constantes pour les formats de fichiers
type Format string

const (
	FormatTXT   Format = "txt"
	FormatCSV   Format = "csv"
	FormatJSON3 Format = "json3"
	FormatVTT   Format = "vtt"
)

func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) String() string {
	return string(f)
}
