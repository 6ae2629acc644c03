package yt

// YtDlpConfig représente les flags ajoutables quand on utilise yt-dlp
type YtDlpConfig struct {
	NoWarnings bool // true => ajouter --no-warnings
	Quiet      bool
	NoConfig   bool // true => ajouter --no-config pour ignorer les configs utilisateur
}

// NewYtDlpConfig initalise une configuration standard de yt-dlp, showWarning vient du yaml de config
func NewYtDlpConfig(showWarning bool) *YtDlpConfig {
	return &YtDlpConfig{
		NoWarnings: !showWarning,
		Quiet:      true,
		NoConfig:   true, // valeur par défaut : ignorer les fichiers de config extérieurs (plus prévisible)
	}
}

// BuildSubtitleArgs construit les arguments pour ne télécharger que les
// sous-titres automatiques de lang, au format vtt, vers outTemplate.
func (c *YtDlpConfig) BuildSubtitleArgs(url, lang, outTemplate string) []string {
	args := make([]string, 0, 12)
	// mettre --no-config en tête pour éviter que des configs locales modifient le comportement
	if c.NoConfig {
		args = append(args, "--no-config")
	}
	args = append(args,
		"--skip-download",
		"--write-auto-sub",
		"--sub-lang="+lang,
		"--sub-format", "vtt",
		"-o", outTemplate,
		url,
	)
	if c.Quiet {
		args = append(args, "--quiet")
	}
	if c.NoWarnings {
		args = append(args, "--no-warnings")
	}
	return args
}
