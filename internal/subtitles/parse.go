package subtitles

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/patrickprogramme/ytexport/pkg/model"
)

// ParseJSON3Bytes parse un blob JSON ([]byte) et retourne la structure rawJSON3.
//
// Utilise json.Decoder en lecture depuis un bytes.Reader quand les données sont
// déjà présentes en mémoire : adapté aux fichiers pas trop volumineux
func ParseJSON3Bytes(b []byte) (rawJSON3, error) {
	var raw rawJSON3
	if len(b) == 0 {
		return raw, fmt.Errorf("ParseJSON3Bytes: empty input")
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	// Ne pas appeler DisallowUnknownFields() car le JSON contient souvent des champs
	// inutiles/non mappés : on veut ignorer proprement ces champs.
	if err := dec.Decode(&raw); err != nil {
		return raw, fmt.Errorf("ParseJSON3Bytes: decode error: %w", err)
	}
	return raw, nil
}

// SegmentsFromJSON3 décode une piste json3 et retourne un segment par event
// portant du texte. Les events vides ou de simple retour à la ligne sont ignorés.
func SegmentsFromJSON3(b []byte) ([]model.Segment, error) {
	raw, err := ParseJSON3Bytes(b)
	if err != nil {
		return nil, err
	}
	return raw.segments(), nil
}

func (r rawJSON3) segments() []model.Segment {
	segs := make([]model.Segment, 0, len(r.Events))
	for _, ev := range r.Events {
		if len(ev.Segs) == 0 || ev.IsNewlineOnly() {
			continue
		}
		txt := ev.text()
		if txt == "" {
			continue
		}
		segs = append(segs, model.Segment{
			Start:    msToSeconds(ev.TStartMs),
			Duration: msToSeconds(ev.DDurationMs),
			Text:     txt,
		})
	}
	return segs
}
