package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/patrickprogramme/ytexport/internal/fsutil"
	"github.com/patrickprogramme/ytexport/internal/subtitles"
	"github.com/patrickprogramme/ytexport/pkg/model"
)

// TranscriptHeader est l'en-tête du CSV de transcription.
var TranscriptHeader = []string{"start_sec", "duration", "text"}

// TranscriptFiles contient les chemins écrits par WriteTranscript.
type TranscriptFiles struct {
	CSV string
	TXT string
}

// TranscriptBaseName retourne transcript_<id>_<titre>_<lang>, sans extension.
func TranscriptBaseName(videoID, title, lang string) string {
	return fmt.Sprintf("transcript_%s_%s_%s", videoID, fsutil.SanitizeFilename(title), lang)
}

// WriteTranscript écrit la transcription dans outDir :
//   - <base>.csv : une ligne par segment, texte brut
//   - <base>.txt : texte nettoyé des segments non vides, séparés par un espace
//
// Sans segment rien n'est écrit (pas même le dossier) et ok vaut false.
func WriteTranscript(segs []model.Segment, outDir, videoID, title, lang string) (files TranscriptFiles, ok bool, err error) {
	if len(segs) == 0 {
		return TranscriptFiles{}, false, nil
	}

	base := filepath.Join(outDir, TranscriptBaseName(videoID, title, lang))
	files = TranscriptFiles{
		CSV: base + model.FormatCSV.Extension(),
		TXT: base + model.FormatTXT.Extension(),
	}

	rows := make([][]string, 0, len(segs)+1)
	rows = append(rows, TranscriptHeader)
	for _, s := range segs {
		rows = append(rows, []string{formatFloat(s.Start), formatFloat(s.Duration), s.Text})
	}
	if err := writeCSV(files.CSV, rows); err != nil {
		return TranscriptFiles{}, false, err
	}

	if err := fsutil.WriteFileAtomic(files.TXT, []byte(PlainText(segs)), filePerm); err != nil {
		// pas de CSV orphelin : l'export est tout ou rien
		_ = os.Remove(files.CSV)
		return TranscriptFiles{}, false, fmt.Errorf("write %s: %w", files.TXT, err)
	}
	return files, true, nil
}

// PlainText retourne le texte nettoyé des segments dont le texte brut n'est pas vide.
func PlainText(segs []model.Segment) string {
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		parts = append(parts, subtitles.Clean(s.Text))
	}
	return strings.Join(parts, " ")
}

// ReadTranscriptCSV relit un CSV écrit par WriteTranscript.
func ReadTranscriptCSV(path string) ([]model.Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(TranscriptHeader)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("lecture en-tête %s: %w", path, err)
	}
	if strings.Join(header, ",") != strings.Join(TranscriptHeader, ",") {
		return nil, fmt.Errorf("en-tête inattendu %q dans %s", header, path)
	}

	var segs []model.Segment
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		start, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%s ligne %d: start_sec: %w", path, line, err)
		}
		dur, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s ligne %d: duration: %w", path, line, err)
		}
		segs = append(segs, model.Segment{Start: start, Duration: dur, Text: rec[2]})
	}
	return segs, nil
}
