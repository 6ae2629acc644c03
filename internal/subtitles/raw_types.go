package subtitles

import "strings"

// rawJSON3 représente la structure "brute" d'une piste timedtext YouTube au format json3
// (fmt=json3 sur l'URL de la piste).
type rawJSON3 struct {
	WireMagic string     `json:"wireMagic,omitempty"`
	Events    []rawEvent `json:"events"`
}

type rawEvent struct {
	TStartMs    *int64   `json:"tStartMs,omitempty"`
	DDurationMs *int64   `json:"dDurationMs,omitempty"`
	AAppend     *int     `json:"aAppend,omitempty"` // event de retour à la ligne des captions auto
	Segs        []rawSeg `json:"segs,omitempty"`
	// On ignore volontairement d'autres champs (wpWinPosId, wWinId, etc.)
}

type rawSeg struct {
	Utf8      string `json:"utf8"`
	TOffsetMs *int64 `json:"tOffsetMs,omitempty"`
}

// IsNewlineOnly indique si l'event est uniquement un retour à la ligne.
// Il retourne true pour des segs qui ne contiennent que "\n", "\\n" ou des espaces.
func (e rawEvent) IsNewlineOnly() bool {
	if len(e.Segs) == 0 {
		return false
	}
	for _, s := range e.Segs {
		t := strings.TrimSpace(s.Utf8)
		if t == "" || t == "\\n" {
			continue
		}
		// si un seg contient du contenu non-newline, il n'est pas "NewlineOnly"
		return false
	}
	return true
}

// text concatène les segs de l'event.
func (e rawEvent) text() string {
	var b strings.Builder
	for _, s := range e.Segs {
		b.WriteString(s.Utf8)
	}
	return strings.TrimSpace(b.String())
}

// msToSeconds convertit un champ optionnel en millisecondes, nil -> 0.
func msToSeconds(ms *int64) float64 {
	if ms == nil || *ms < 0 {
		return 0
	}
	return float64(*ms) / 1000
}
