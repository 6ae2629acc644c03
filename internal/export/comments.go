package export

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/patrickprogramme/ytexport/internal/fsutil"
	"github.com/patrickprogramme/ytexport/pkg/model"
)

// CommentsHeader est l'en-tête du CSV des commentaires.
var CommentsHeader = []string{"type", "author", "text", "likes", "published_at", "parent_id", "is_owner"}

// CommentsFileName retourne comments_<id>_<titre>.csv.
func CommentsFileName(videoID, title string) string {
	return fmt.Sprintf("comments_%s_%s%s", videoID, fsutil.SanitizeFilename(title), model.FormatCSV.Extension())
}

// WriteComments écrit les commentaires dans outDir et retourne le chemin du fichier.
// Une liste vide produit un fichier réduit à l'en-tête.
func WriteComments(comments []model.Comment, outDir, videoID, title string) (string, error) {
	rows := make([][]string, 0, len(comments)+1)
	rows = append(rows, CommentsHeader)
	for _, c := range comments {
		rows = append(rows, []string{
			string(c.Kind),
			c.Author,
			c.Text,
			strconv.FormatInt(c.Likes, 10),
			c.PublishedAt,
			c.ParentID,
			strconv.FormatBool(c.IsOwner),
		})
	}

	path := filepath.Join(outDir, CommentsFileName(videoID, title))
	if err := writeCSV(path, rows); err != nil {
		return "", err
	}
	return path, nil
}
