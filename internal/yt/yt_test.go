package yt

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickprogramme/ytexport/pkg/model"
)

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"  dQw4w9WgXcQ \n", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ?si=xyz", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?feature=share&v=a_b-c_d-e_f", "a_b-c_d-e_f", true},
		{"trop-court", "", false},
		{"https://example.com/", "", false},
	}
	for _, c := range cases {
		got, err := ExtractVideoID(c.in)
		if !c.ok {
			assert.ErrorIs(t, err, ErrInvalidVideo, c.in)
			continue
		}
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got)
	}
}

func TestBuildSubtitleArgs(t *testing.T) {
	cfg := NewYtDlpConfig(false)
	got := cfg.BuildSubtitleArgs("https://youtu.be/abc", "fr", "/tmp/x/%(id)s.%(ext)s")
	assert.Equal(t, []string{
		"--no-config",
		"--skip-download", "--write-auto-sub", "--sub-lang=fr",
		"--sub-format", "vtt",
		"-o", "/tmp/x/%(id)s.%(ext)s",
		"https://youtu.be/abc",
		"--quiet", "--no-warnings",
	}, got)

	cfg = NewYtDlpConfig(true)
	assert.NotContains(t, cfg.BuildSubtitleArgs("u", "en", "o"), "--no-warnings")
}

// fakeYtDlp écrit un script shell qui se fait passer pour yt-dlp.
func fakeYtDlp(t *testing.T, body string) *YtDlp {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("script shell")
	}
	path := filepath.Join(t.TempDir(), "yt-dlp")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return NewYtDlp("yt-dlp", path, *NewYtDlpConfig(false))
}

const writesVTT = `out=""
while [ $# -gt 0 ]; do
  if [ "$1" = "-o" ]; then out="$2"; shift; fi
  shift
done
printf 'WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nbonjour\n' > "${out%/*}/abcdefghijk.fr.vtt"
`

func TestExtractAutoSubs(t *testing.T) {
	y := fakeYtDlp(t, writesVTT)
	dir := filepath.Join(t.TempDir(), "scratch")

	path, err := y.ExtractAutoSubs(context.Background(), "abcdefghijk", "fr", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "abcdefghijk.fr.vtt"), path)
}

func TestExtractAutoSubsFailures(t *testing.T) {
	t.Run("exit non nul", func(t *testing.T) {
		y := fakeYtDlp(t, "echo boom >&2\nexit 1\n")
		_, err := y.ExtractAutoSubs(context.Background(), "abcdefghijk", "fr", t.TempDir())
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrExternalTool))
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("aucun fichier", func(t *testing.T) {
		y := fakeYtDlp(t, "exit 0\n")
		_, err := y.ExtractAutoSubs(context.Background(), "abcdefghijk", "fr", t.TempDir())
		assert.True(t, errors.Is(err, model.ErrExternalTool))
	})

	t.Run("délai dépassé", func(t *testing.T) {
		y := fakeYtDlp(t, "exec sleep 5\n")
		y.Timeout = 100 * time.Millisecond
		start := time.Now()
		_, err := y.ExtractAutoSubs(context.Background(), "abcdefghijk", "fr", t.TempDir())
		assert.True(t, errors.Is(err, model.ErrExternalTool))
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
		assert.Less(t, time.Since(start), 4*time.Second)
	})
}

func TestCheckBinary(t *testing.T) {
	y := NewYtDlp("yt-dlp", t.TempDir(), YtDlpConfig{})
	assert.Error(t, y.CheckBinary(), "un répertoire n'est pas un exécutable")

	y = NewYtDlp("yt-dlp", filepath.Join(t.TempDir(), "absent"), YtDlpConfig{})
	assert.Error(t, y.CheckBinary())

	y = NewYtDlp("binaire-qui-n-existe-pas-ytexport", "", YtDlpConfig{})
	assert.Error(t, y.CheckBinary())
}

func TestGetVersion(t *testing.T) {
	y := fakeYtDlp(t, "echo 2025.01.01\n")
	v, err := y.GetVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025.01.01", v)
}
