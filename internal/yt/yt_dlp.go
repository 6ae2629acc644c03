package yt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/patrickprogramme/ytexport/internal/fsutil"
	"github.com/patrickprogramme/ytexport/pkg/model"
)

// NewYtDlp construit une instance. Path doit être le chemin résolu vers l'exe
func NewYtDlp(name string, resolvedPath string, cfg YtDlpConfig) *YtDlp {
	return &YtDlp{
		Name:   name,
		Path:   resolvedPath,
		Config: cfg,
	}
}

// CheckBinary vérifie que le binaire existe et n'est pas un répertoire.
// Sans chemin résolu, le nom est cherché dans le PATH.
func (y *YtDlp) CheckBinary() error {
	if y == nil {
		return fmt.Errorf("yt-dlp non initialisé")
	}

	if y.Path == "" {
		p, err := exec.LookPath(y.Name)
		if err != nil {
			return fmt.Errorf("yt-dlp introuvable dans le PATH (%s) : %w", y.Name, err)
		}
		y.Path = p
		return nil
	}

	info, err := os.Stat(y.Path)
	if err != nil {
		return fmt.Errorf("yt-dlp introuvable (%s) à l'emplacement spécifié : %w", y.Path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("le chemin spécifié pour yt-dlp est un répertoire, pas un fichier exécutable")
	}
	return nil
}

// ExtractAutoSubs télécharge les sous-titres automatiques de lang dans dir
// (modèle de sortie <dir>/%(id)s.%(ext)s) et retourne le chemin du .vtt produit.
// Code de sortie non nul, dépassement du délai ou fichier absent : model.ErrExternalTool.
func (y *YtDlp) ExtractAutoSubs(ctx context.Context, videoID, lang, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	if y.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, y.Timeout)
		defer cancel()
	}

	tmpl := filepath.Join(dir, "%(id)s.%(ext)s")
	args := y.Config.BuildSubtitleArgs(VideoURL(videoID), lang, tmpl)

	start := time.Now()
	cmd := exec.CommandContext(ctx, y.exe(), args...)
	cmd.WaitDelay = 2 * time.Second
	out, err := cmd.CombinedOutput()
	slog.Debug("yt-dlp terminé",
		slog.String("video", videoID), slog.String("lang", lang),
		slog.Duration("elapsed", time.Since(start)))

	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		return "", fmt.Errorf("%w: yt-dlp a dépassé %s: %w", model.ErrExternalTool, y.Timeout, ctxErr)
	}
	if err != nil {
		return "", fmt.Errorf("%w: yt-dlp: %v, output: %s", model.ErrExternalTool, err, string(out))
	}

	matches, err := fsutil.FindMatchingFiles(dir, []string{videoID + "*" + model.FormatVTT.Extension()})
	if err != nil {
		return "", fmt.Errorf("recherche vtt: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: aucun fichier vtt produit pour %s (%s)", model.ErrExternalTool, videoID, lang)
	}
	return matches[0], nil
}
