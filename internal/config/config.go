package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/patrickprogramme/ytexport/internal/assets"
	"github.com/patrickprogramme/ytexport/internal/bootstrap"
	"gopkg.in/yaml.v3"
)

const CurrentConfigVersion = 1

// DefaultFileName est le nom du fichier de configuration cherché à côté de l'exécutable.
const DefaultFileName = "ytexport.yaml"

// EnvAPIKey est la variable d'environnement lue si api_key est vide.
const EnvAPIKey = "YOUTUBE_API_KEY"

// struct pour les paramètres de configuration
type Config struct {
	// API YouTube Data v3
	APIKey               string        `yaml:"api_key"`
	HTTPTimeout          time.Duration `yaml:"http_timeout"`
	APIRequestsPerSecond float64       `yaml:"api_requests_per_second"`

	// Chemins
	OutputDir  string `yaml:"output_dir"`
	ScratchDir string `yaml:"scratch_dir"`

	// Langues essayées dans l'ordre pour la transcription
	Languages []string `yaml:"languages"`

	// Exports
	SaveComments   bool `yaml:"save_comments"`
	SaveTranscript bool `yaml:"save_transcript"`

	LogLevel string `yaml:"log_level"`

	// yt-dlp
	YtDlp struct {
		Name         string        `yaml:"name"`
		Path         string        `yaml:"path"`
		ShowWarnings bool          `yaml:"show_warnings"`
		Timeout      time.Duration `yaml:"timeout"`

		// ResolvedPath contient le chemin effectif vers l'exécutable
		ResolvedPath string `yaml:"-"`
	} `yaml:"yt_dlp"`

	ConfigVersion int `yaml:"config_version"`

	configFilePath string
}

// Default retourne la configuration par défaut (fallback si l'asset embarqué est manquant
// ou si une clé est absente du fichier).
func Default() *Config {
	c := &Config{}

	// API
	c.HTTPTimeout = 30 * time.Second
	c.APIRequestsPerSecond = 5

	// Chemins
	c.OutputDir = "fichier"
	c.ScratchDir = filepath.Join(os.TempDir(), "ytvtt")

	c.Languages = []string{"fr", "en"}

	c.SaveComments = true
	c.SaveTranscript = true

	c.LogLevel = "info"

	// yt-dlp
	c.YtDlp.Name = "yt-dlp"
	c.YtDlp.Path = ""
	c.YtDlp.ShowWarnings = false
	c.YtDlp.Timeout = 2 * time.Minute

	c.ConfigVersion = CurrentConfigVersion

	return c
}

// Load lit la config; si le fichier n'existe pas, on copie l'exemple embarqué depuis internal/assets
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFileName
	}

	// si le fichier n'existe pas -> le créer à partir de l'asset embarqué
	if err := bootstrap.EnsureConfigPresent(path, assets.Embedded, assets.DefaultConfigAsset); err != nil {
		return nil, fmt.Errorf("échec de création du fichier de configuration par défaut : %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	// gestion de version : si le fichier est plus ancien -> orchestrer la mise à jour
	if cfg.ConfigVersion < CurrentConfigVersion {
		if err := orchestrateConfigUpgrade(cfg, cfg.ConfigVersion); err != nil {
			return nil, fmt.Errorf("échec de mise à niveau de la configuration : %w", err)
		}
	}

	return cfg, nil
}

// Parse déserialise data par-dessus les valeurs par défaut puis normalise.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	// un fichier sans config_version est considéré comme version 0
	cfg.ConfigVersion = 0

	// corriger les chemins Windows avec des backslashes
	data = bytes.ReplaceAll(data, []byte(`\`), []byte(`/`))

	// les champs absents conservent les valeurs par défaut
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.normalizeConfig()
	return cfg, nil
}

// Path retourne le chemin du fichier chargé (vide si la config vient de Parse).
func (c *Config) Path() string { return c.configFilePath }

func (c *Config) normalizeConfig() {
	// Nettoyage des chemins
	c.OutputDir = filepath.Clean(strings.TrimSpace(c.OutputDir))
	if strings.TrimSpace(c.ScratchDir) == "" {
		c.ScratchDir = filepath.Join(os.TempDir(), "ytvtt")
	}
	c.ScratchDir = filepath.Clean(c.ScratchDir)

	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.APIKey == "" {
		c.APIKey = strings.TrimSpace(os.Getenv(EnvAPIKey))
	}

	c.SetLanguages(c.Languages)

	c.LogLevel = strings.TrimSpace(strings.ToLower(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 30 * time.Second
	}
	if c.APIRequestsPerSecond <= 0 {
		c.APIRequestsPerSecond = 5
	}
	if c.YtDlp.Timeout <= 0 {
		c.YtDlp.Timeout = 2 * time.Minute
	}

	// centraliser la résolution/normalisation de yt-dlp
	c.ResolveYtDlpPath()
}

// SetLanguages remplace la liste de langues : codes en minuscules, vides et doublons écartés.
func (c *Config) SetLanguages(langs []string) {
	seen := make(map[string]bool, len(langs))
	out := make([]string, 0, len(langs))
	for _, l := range langs {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	c.Languages = out
}

// Validate vérifie les champs indispensables à une exécution complète.
func (c *Config) Validate() error {
	var errs []error
	if c.APIKey == "" {
		errs = append(errs, fmt.Errorf("clé API manquante : renseigner api_key ou %s", EnvAPIKey))
	}
	if len(c.Languages) == 0 {
		errs = append(errs, errors.New("aucune langue configurée"))
	}
	return errors.Join(errs...)
}

// ResolveYtDlpPath normalise le nom et résout le chemin complet vers l'exécutable.
// Appeler après avoir modifié cfg.YtDlp.Name ou cfg.YtDlp.Path.
// Sans chemin configuré, ResolvedPath reste vide : le binaire sera cherché dans le PATH.
func (c *Config) ResolveYtDlpPath() {
	if c == nil {
		return
	}

	// Normaliser le nom et ajouter .exe sur Windows si nécessaire
	c.YtDlp.Name = strings.TrimSpace(c.YtDlp.Name)
	if c.YtDlp.Name == "" {
		c.YtDlp.Name = "yt-dlp"
	}
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(c.YtDlp.Name), ".exe") {
		c.YtDlp.Name = c.YtDlp.Name + ".exe"
	}

	exeName := c.YtDlp.Name
	cfgPath := strings.TrimSpace(c.YtDlp.Path)
	if cfgPath == "" {
		c.YtDlp.ResolvedPath = ""
		return
	}
	cleanPath := filepath.Clean(cfgPath)

	// si le chemin fourni finit déjà par l'exécutable -> on l'utilise
	if filepath.Base(cleanPath) == exeName {
		c.YtDlp.ResolvedPath = cleanPath
	} else {
		// sinon on considère cfgPath comme un répertoire et on y joint l'exe
		c.YtDlp.ResolvedPath = filepath.Join(cleanPath, exeName)
	}
}
