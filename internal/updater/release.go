// Package updater compare la version locale de yt-dlp à la dernière release GitHub.
// Un yt-dlp trop ancien est la cause la plus fréquente d'échec de l'extraction externe.
package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/patrickprogramme/ytexport/internal/fetch"
)

const defaultReleaseURL = "https://api.github.com/repos/yt-dlp/yt-dlp/releases/latest"

type rawRelease struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
	Assets      []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
		ContentType        string `json:"content_type"`
	} `json:"assets"`
}

// Checker interroge l'API GitHub. ReleaseURL est exporté pour les tests.
type Checker struct {
	http       *fetch.Client
	ReleaseURL string
}

func NewChecker(fc *fetch.Client) *Checker {
	if fc == nil {
		fc = fetch.New(0)
	}
	return &Checker{http: fc, ReleaseURL: defaultReleaseURL}
}

// Latest récupère et décode la dernière release de yt-dlp.
func (c *Checker) Latest(ctx context.Context) (*Release, error) {
	data, err := c.http.GetBytes(ctx, c.ReleaseURL, map[string]string{
		"Accept": "application/vnd.github+json",
	})
	if err != nil {
		return nil, fmt.Errorf("requête GitHub: %w", err)
	}

	var raw rawRelease
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("décodage JSON: %w", err)
	}

	info := &Release{
		TagName:     raw.TagName,
		Name:        raw.Name,
		PublishedAt: raw.PublishedAt,
		HTMLURL:     raw.HTMLURL,
	}
	for _, a := range raw.Assets {
		switch a.Name {
		case "yt-dlp.exe":
			info.Windows = Asset{a.Name, a.BrowserDownloadURL, a.ContentType}
		case "yt-dlp":
			info.Linux = Asset{a.Name, a.BrowserDownloadURL, a.ContentType}
		}
	}

	if info.TagName == "" {
		return nil, fmt.Errorf("release sans tag")
	}
	return info, nil
}

// Check compare la version locale et la version GitHub.
func (c *Checker) Check(ctx context.Context, localVer string) (*UpdateCheck, error) {
	latest, err := c.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("impossible de récupérer la release GitHub : %w", err)
	}
	return &UpdateCheck{
		CurrentVersion: localVer,
		Latest:         latest,
		IsUpToDate:     strings.TrimSpace(localVer) == latest.TagName,
	}, nil
}
