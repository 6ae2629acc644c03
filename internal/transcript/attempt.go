package transcript

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickprogramme/ytexport/pkg/model"
)

// Category classe l'issue d'une stratégie.
type Category string

const (
	CategoryOK          Category = "ok"
	CategoryEmpty       Category = "empty"
	CategoryUnavailable Category = "unavailable"
	CategoryExternal    Category = "external_tool"
	CategoryTimeout     Category = "timeout"
	CategoryTransport   Category = "transport"
	CategoryCanceled    Category = "canceled"
)

// errEmpty signale une stratégie terminée sans erreur mais sans segment.
var errEmpty = fmt.Errorf("%w: aucun segment", model.ErrSourceUnavailable)

// Classify range une erreur de stratégie dans une catégorie.
// Toute erreur non typée est considérée comme un échec de transport.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryOK
	case errors.Is(err, errEmpty):
		return CategoryEmpty
	case errors.Is(err, context.DeadlineExceeded):
		return CategoryTimeout
	case errors.Is(err, context.Canceled):
		return CategoryCanceled
	case errors.Is(err, model.ErrExternalTool):
		return CategoryExternal
	case errors.Is(err, model.ErrSourceUnavailable):
		return CategoryUnavailable
	default:
		return CategoryTransport
	}
}

// Attempt décrit l'exécution d'une stratégie.
type Attempt struct {
	Strategy string
	Category Category
	Err      error
	Segments int
	Elapsed  time.Duration
}

func (a Attempt) String() string {
	if a.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", a.Strategy, a.Category, a.Err)
	}
	return fmt.Sprintf("%s: %s (%d segments)", a.Strategy, a.Category, a.Segments)
}

// Report est le résultat détaillé d'une résolution.
// Segments est non vide en cas de succès, vide si toutes les stratégies ont échoué.
type Report struct {
	VideoID  string
	Language string
	Segments []model.Segment
	Strategy string // stratégie gagnante, vide si épuisement
	Attempts []Attempt
}

// OK indique si une stratégie a produit des segments.
func (r Report) OK() bool { return len(r.Segments) > 0 }
