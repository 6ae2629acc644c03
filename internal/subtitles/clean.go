package subtitles

import (
	"regexp"
	"strings"
)

// inlineTimecode : timecodes mot à mot des captions auto, ex. <00:00:01.000>
var inlineTimecode = regexp.MustCompile(`<\d{2}:\d{2}:\d{2}\.\d{3}>`)

// styleTag : balises de style VTT ouvrantes/fermantes, avec classe éventuelle (<c.colorE5E5E5>)
var styleTag = regexp.MustCompile(`</?[cibu](?:\.[^<>\s]*)?>`)

// Clean retire les timecodes inline et les balises de style d'un texte de
// sous-titre, puis supprime les espaces en début/fin.
// Les autres espaces et la ponctuation sont conservés tels quels.
//
// La suppression est répétée jusqu'à stabilité : "<<c>c>" donnerait sinon "<c>"
// après un seul passage et Clean ne serait pas idempotente.
func Clean(raw string) string {
	txt := raw
	for {
		next := inlineTimecode.ReplaceAllString(txt, "")
		next = styleTag.ReplaceAllString(next, "")
		if next == txt {
			break
		}
		txt = next
	}
	return strings.TrimSpace(txt)
}

