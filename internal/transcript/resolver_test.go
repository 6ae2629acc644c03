package transcript

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickprogramme/ytexport/pkg/model"
)

var (
	segFR = []model.Segment{{Start: 0, Duration: 1, Text: "bonjour"}}
	segEN = []model.Segment{{Start: 0, Duration: 1, Text: "hello"}}
)

type fakeTrack struct {
	lang         string
	manual       bool
	translatable bool
	segs         []model.Segment
	fetchErr     error
	translations map[string][]model.Segment
	translateErr error

	fetchCalls, translateCalls int
}

func (t *fakeTrack) Language() string     { return t.lang }
func (t *fakeTrack) IsManual() bool       { return t.manual }
func (t *fakeTrack) IsTranslatable() bool { return t.translatable }

func (t *fakeTrack) Fetch(ctx context.Context) ([]model.Segment, error) {
	t.fetchCalls++
	return t.segs, t.fetchErr
}

func (t *fakeTrack) Translate(ctx context.Context, lang string) ([]model.Segment, error) {
	t.translateCalls++
	if t.translateErr != nil {
		return nil, t.translateErr
	}
	return t.translations[lang], nil
}

type fakeService struct {
	direct    []model.Segment
	directErr error
	tracks    []Track
	listErr   error

	fetchCalls, listCalls int
}

func (s *fakeService) Fetch(ctx context.Context, videoID, lang string) ([]model.Segment, error) {
	s.fetchCalls++
	if s.directErr != nil {
		return nil, s.directErr
	}
	return s.direct, nil
}

func (s *fakeService) ListTracks(ctx context.Context, videoID string) ([]Track, error) {
	s.listCalls++
	return s.tracks, s.listErr
}

type fakeExtractor struct {
	vtt    string // contenu écrit dans <dir>/<id>.<lang>.vtt, vide => aucun fichier
	err    error
	calls  int
	gotDir string
}

func (e *fakeExtractor) ExtractAutoSubs(ctx context.Context, videoID, lang, dir string) (string, error) {
	e.calls++
	e.gotDir = dir
	if e.err != nil {
		return "", e.err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, videoID+"."+lang+".vtt")
	if err := os.WriteFile(path, []byte(e.vtt), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

var unavailable = fmt.Errorf("%w: test", model.ErrSourceUnavailable)

func newResolver(t *testing.T, s CaptionService, ex Extractor) *Resolver {
	return New(s, ex, WithScratchRoot(t.TempDir()))
}

func TestStrategyOrder(t *testing.T) {
	r := New(&fakeService{}, nil)
	assert.Equal(t, []string{StrategyDirect, StrategyManual, StrategyGenerated, StrategyTranslation, StrategyYtDlp}, r.Strategies())
}

func TestDirectWins(t *testing.T) {
	s := &fakeService{direct: segFR}
	ex := &fakeExtractor{}
	rep := newResolver(t, s, ex).ResolveReport(context.Background(), "abcdefghijk", "fr")

	assert.Equal(t, segFR, rep.Segments)
	assert.Equal(t, StrategyDirect, rep.Strategy)
	assert.Len(t, rep.Attempts, 1)
	assert.Zero(t, s.listCalls)
	assert.Zero(t, ex.calls)
}

func TestManualTrackWinsAndFallbackNeverInvoked(t *testing.T) {
	auto := &fakeTrack{lang: "fr", segs: segEN}
	manual := &fakeTrack{lang: "fr", manual: true, segs: segFR}
	s := &fakeService{directErr: unavailable, tracks: []Track{auto, manual}}
	ex := &fakeExtractor{}

	got := newResolver(t, s, ex).Resolve(context.Background(), "abcdefghijk", "fr")
	assert.Equal(t, segFR, got)
	assert.Equal(t, 1, manual.fetchCalls)
	assert.Zero(t, auto.fetchCalls, "la piste manuelle passe avant l'auto-générée")
	assert.Zero(t, ex.calls, "yt-dlp n'est jamais lancé")
}

func TestGeneratedTrack(t *testing.T) {
	auto := &fakeTrack{lang: "fr", segs: segFR}
	other := &fakeTrack{lang: "en", manual: true, segs: segEN}
	s := &fakeService{directErr: unavailable, tracks: []Track{other, auto}}

	rep := newResolver(t, s, nil).ResolveReport(context.Background(), "abcdefghijk", "fr")
	assert.Equal(t, segFR, rep.Segments)
	assert.Equal(t, StrategyGenerated, rep.Strategy)
	assert.Equal(t, 1, s.listCalls, "énumération partagée entre stratégies")
	require.Len(t, rep.Attempts, 3)
	assert.Equal(t, CategoryUnavailable, rep.Attempts[0].Category)
	assert.Equal(t, CategoryUnavailable, rep.Attempts[1].Category)
}

func TestTranslationFirstSuccessfulInEnumerationOrder(t *testing.T) {
	notTranslatable := &fakeTrack{lang: "de", manual: true}
	failing := &fakeTrack{lang: "es", manual: true, translatable: true, translateErr: errors.New("réseau")}
	good := &fakeTrack{lang: "en", manual: true, translatable: true, translations: map[string][]model.Segment{"fr": segFR}}
	later := &fakeTrack{lang: "it", manual: true, translatable: true, translations: map[string][]model.Segment{"fr": segEN}}
	s := &fakeService{directErr: unavailable, tracks: []Track{notTranslatable, failing, good, later}}

	rep := newResolver(t, s, nil).ResolveReport(context.Background(), "abcdefghijk", "fr")
	assert.Equal(t, segFR, rep.Segments)
	assert.Equal(t, StrategyTranslation, rep.Strategy)
	assert.Zero(t, notTranslatable.translateCalls)
	assert.Equal(t, 1, failing.translateCalls)
	assert.Zero(t, later.translateCalls)
}

func TestExternalToolFallback(t *testing.T) {
	s := &fakeService{directErr: unavailable, listErr: errors.New("connexion refusée")}
	ex := &fakeExtractor{vtt: "WEBVTT\n\n00:00:01.000 --> 00:00:02.500\nsalut <c>tout</c>\nle monde\n"}
	r := newResolver(t, s, ex)

	rep := r.ResolveReport(context.Background(), "abcdefghijk", "fr")
	require.True(t, rep.OK())
	assert.Equal(t, StrategyYtDlp, rep.Strategy)
	require.Len(t, rep.Segments, 1)
	assert.InDelta(t, 1.0, rep.Segments[0].Start, 1e-9)
	assert.InDelta(t, 1.5, rep.Segments[0].Duration, 1e-9)
	assert.Equal(t, "salut <c>tout</c> le monde", rep.Segments[0].Text)

	assert.Equal(t, 1, s.listCalls)
	for _, a := range rep.Attempts[1:4] {
		assert.Equal(t, CategoryTransport, a.Category, a.Strategy)
	}

	// dossier de travail unique, supprimé après la résolution
	assert.True(t, strings.HasPrefix(filepath.Base(ex.gotDir), "abcdefghijk-"))
	assert.NoDirExists(t, ex.gotDir)
}

func TestExhaustionReturnsEmpty(t *testing.T) {
	s := &fakeService{directErr: unavailable, listErr: unavailable}
	ex := &fakeExtractor{err: fmt.Errorf("%w: exit 1", model.ErrExternalTool)}

	rep := newResolver(t, s, ex).ResolveReport(context.Background(), "abcdefghijk", "fr")
	assert.Empty(t, rep.Segments)
	assert.False(t, rep.OK())
	assert.Empty(t, rep.Strategy)
	require.Len(t, rep.Attempts, 5)
	assert.Equal(t, CategoryExternal, rep.Attempts[4].Category)
	assert.Equal(t, 1, ex.calls)
}

func TestEmptySegmentsFallThrough(t *testing.T) {
	s := &fakeService{direct: nil, listErr: unavailable}
	ex := &fakeExtractor{vtt: "WEBVTT\n"}

	rep := newResolver(t, s, ex).ResolveReport(context.Background(), "abcdefghijk", "fr")
	assert.Empty(t, rep.Segments)
	assert.Equal(t, CategoryEmpty, rep.Attempts[0].Category)
	assert.Equal(t, CategoryEmpty, rep.Attempts[4].Category)
}

func TestNoExtractor(t *testing.T) {
	s := &fakeService{directErr: unavailable, listErr: unavailable}
	got := New(s, nil).Resolve(context.Background(), "abcdefghijk", "fr")
	assert.Empty(t, got)
}

func TestCanceledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &fakeService{direct: segFR}

	rep := newResolver(t, s, nil).ResolveReport(ctx, "abcdefghijk", "fr")
	assert.Empty(t, rep.Segments)
	assert.Zero(t, s.fetchCalls)
	require.Len(t, rep.Attempts, 1)
	assert.Equal(t, CategoryCanceled, rep.Attempts[0].Category)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want Category
	}{
		{nil, CategoryOK},
		{errEmpty, CategoryEmpty},
		{unavailable, CategoryUnavailable},
		{fmt.Errorf("%w: x", model.ErrExternalTool), CategoryExternal},
		{fmt.Errorf("%w: %w", model.ErrExternalTool, context.DeadlineExceeded), CategoryTimeout},
		{context.Canceled, CategoryCanceled},
		{errors.New("dial tcp"), CategoryTransport},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(c.err), "%v", c.err)
	}
}

func TestExternalToolPartialParseKeepsSegments(t *testing.T) {
	s := &fakeService{directErr: unavailable, listErr: unavailable}
	ex := &fakeExtractor{vtt: "WEBVTT\n"}
	r := newResolver(t, s, ex)
	r.parseFile = func(string) ([]model.Segment, error) {
		return segFR, errors.New("lecture vtt: flux tronqué")
	}

	rep := r.ResolveReport(context.Background(), "abcdefghijk", "fr")
	require.True(t, rep.OK())
	assert.Equal(t, StrategyYtDlp, rep.Strategy)
	assert.Equal(t, segFR, rep.Segments)
}

func TestExternalToolUnreadableFile(t *testing.T) {
	s := &fakeService{directErr: unavailable, listErr: unavailable}
	ex := &fakeExtractor{vtt: "WEBVTT\n"}
	r := newResolver(t, s, ex)
	r.parseFile = func(string) ([]model.Segment, error) {
		return nil, errors.New("lecture vtt: flux tronqué")
	}

	rep := r.ResolveReport(context.Background(), "abcdefghijk", "fr")
	assert.False(t, rep.OK())
	require.Len(t, rep.Attempts, 5)
	assert.Equal(t, CategoryExternal, rep.Attempts[4].Category)
}
