// Package export écrit les transcriptions et les commentaires sur disque,
// en CSV et en texte brut.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/patrickprogramme/ytexport/internal/fsutil"
)

const filePerm = 0o644

// VideoDir retourne le dossier d'export d'une vidéo : <root>/<titre nettoyé>.
func VideoDir(root, title string) string {
	return filepath.Join(root, fsutil.SanitizeFilename(title))
}

// writeCSV encode rows (en-tête compris) puis écrit le fichier atomiquement.
func writeCSV(path string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("encode csv %s: %w", filepath.Base(path), err)
	}
	if err := fsutil.WriteFileAtomic(path, buf.Bytes(), filePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
