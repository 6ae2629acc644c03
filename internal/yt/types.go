package yt

import (
	"fmt"
	"time"
)

// YtDlp représente la commande yt-dlp à exécuter (nom de binaire ou chemin) + args.
type YtDlp struct {
	Name    string
	Path    string // chemin vers l'exe
	Config  YtDlpConfig
	Timeout time.Duration // 0 => pas de limite autre que le ctx de l'appelant
}

func (y YtDlp) String() string {
	return fmt.Sprintf("yt-dlp(name=%s, path=%s, timeout=%s)", y.Name, y.Path, y.Timeout)
}

// exe retourne le chemin résolu, ou le nom du binaire à défaut.
func (y *YtDlp) exe() string {
	if y.Path != "" {
		return y.Path
	}
	return y.Name
}
