package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultFile(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	path := filepath.Join(t.TempDir(), DefaultFileName)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, path, cfg.Path())

	assert.Equal(t, []string{"fr", "en"}, cfg.Languages)
	assert.Equal(t, "fichier", cfg.OutputDir)
	assert.Equal(t, filepath.Join(os.TempDir(), "ytvtt"), cfg.ScratchDir)
	assert.Equal(t, 2*time.Minute, cfg.YtDlp.Timeout)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.SaveComments)
	assert.True(t, cfg.SaveTranscript)
	assert.Equal(t, CurrentConfigVersion, cfg.ConfigVersion)

	assert.Error(t, cfg.Validate(), "pas de clé API")
}

func TestParseOverridesDefaults(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	cfg, err := Parse([]byte(`
config_version: 1
api_key: " k "
languages: [EN, "", en, de]
output_dir: out
log_level: DEBUG
yt_dlp:
  timeout: 30s
`))
	require.NoError(t, err)
	assert.Equal(t, "k", cfg.APIKey)
	assert.Equal(t, []string{"en", "de"}, cfg.Languages)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.YtDlp.Timeout)
	assert.True(t, cfg.SaveTranscript, "clé absente -> défaut conservé")
	assert.NoError(t, cfg.Validate())
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "from-env")
	cfg, err := Parse([]byte("config_version: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey)
}

func TestValidateEmptyLanguages(t *testing.T) {
	cfg := Default()
	cfg.APIKey = "k"
	cfg.SetLanguages([]string{" ", ""})
	assert.Error(t, cfg.Validate())
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("languages: [fr"))
	assert.Error(t, err)
}

func TestLoadMigratesOldFile(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("api_key: k\noutput_dir: .\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, CurrentConfigVersion, cfg.ConfigVersion)
	assert.Equal(t, "fichier", cfg.OutputDir)

	// sauvegarde créée et fichier réécrit à la version courante
	backups, err := filepath.Glob(path + ".bak.*")
	require.NoError(t, err)
	assert.Len(t, backups, 1)

	again, err := Parse(mustRead(t, path))
	require.NoError(t, err)
	assert.Equal(t, CurrentConfigVersion, again.ConfigVersion)
	assert.Equal(t, "k", again.APIKey)
}

func TestResolveYtDlpPath(t *testing.T) {
	exe := "yt-dlp"
	if runtime.GOOS == "windows" {
		exe += ".exe"
	}

	cfg := Default()
	cfg.ResolveYtDlpPath()
	assert.Empty(t, cfg.YtDlp.ResolvedPath, "sans chemin -> PATH")

	cfg.YtDlp.Path = "/opt/bin"
	cfg.ResolveYtDlpPath()
	assert.Equal(t, filepath.Join("/opt/bin", exe), cfg.YtDlp.ResolvedPath)

	cfg.YtDlp.Path = filepath.Join("/opt/bin", exe)
	cfg.ResolveYtDlpPath()
	assert.Equal(t, filepath.Join("/opt/bin", exe), cfg.YtDlp.ResolvedPath)
}

func TestValidateYtDlpPresence(t *testing.T) {
	cfg := Default()
	w, err := cfg.ValidateYtDlpPresence()
	require.NoError(t, err)
	assert.Len(t, w, 1)

	cfg.YtDlp.Path = t.TempDir()
	w, err = cfg.ValidateYtDlpPresence()
	require.NoError(t, err)
	assert.Len(t, w, 1, "exécutable absent du dossier")
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return b
}
