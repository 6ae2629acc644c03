package updater

import (
	"time"
)

// Asset représente un exécutable publié pour une plateforme.
type Asset struct {
	Name               string
	BrowserDownloadURL string
	ContentType        string
}

// Release contient les métadonnées de la dernière release de yt-dlp
// et les deux exécutables qui nous intéressent.
type Release struct {
	TagName     string
	Name        string
	PublishedAt time.Time
	HTMLURL     string
	Windows     Asset
	Linux       Asset
}

// UpdateCheck contient le résultat de la comparaison
type UpdateCheck struct {
	CurrentVersion string   // version récupérée localement
	Latest         *Release // release distante
	IsUpToDate     bool     // true si CurrentVersion == Latest.TagName
}

// DownloadURL retourne le lien de l'exécutable pour goos.
func (u UpdateCheck) DownloadURL(goos string) string {
	if u.Latest == nil {
		return ""
	}
	if goos == "windows" {
		return u.Latest.Windows.BrowserDownloadURL
	}
	return u.Latest.Linux.BrowserDownloadURL
}
