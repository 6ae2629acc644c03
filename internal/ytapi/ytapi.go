// Package ytapi interroge l'API YouTube Data v3 : métadonnées de la vidéo et
// commentaires (fils et réponses).
package ytapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/patrickprogramme/ytexport/pkg/model"
)

const (
	pageSize       = 100
	textFormat     = "plainText"
	defaultTimeout = 10 * time.Second
)

// ErrVideoUnavailable : l'API ne retourne aucune vidéo pour l'identifiant.
var ErrVideoUnavailable = errors.New("vidéo inaccessible")

// Client encapsule le service youtube/v3 et le limiteur de débit.
type Client struct {
	svc     *youtube.Service
	limiter *rate.Limiter
	timeout time.Duration
	logger  *slog.Logger
}

type settings struct {
	endpoint string
	rps      float64
	timeout  time.Duration
	logger   *slog.Logger
}

type Option func(*settings)

// WithEndpoint remplace l'URL de base de l'API (tests).
func WithEndpoint(url string) Option { return func(s *settings) { s.endpoint = url } }

// WithRate limite le nombre de requêtes par seconde ; <= 0 => illimité.
func WithRate(rps float64) Option { return func(s *settings) { s.rps = rps } }

// WithTimeout borne chaque requête.
func WithTimeout(d time.Duration) Option { return func(s *settings) { s.timeout = d } }

func WithLogger(l *slog.Logger) Option { return func(s *settings) { s.logger = l } }

// New construit le client à partir d'une clé API.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("clé API YouTube manquante")
	}
	s := settings{timeout: defaultTimeout}
	for _, o := range opts {
		o(&s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	copts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if s.endpoint != "" {
		copts = append(copts, option.WithEndpoint(s.endpoint))
	}
	svc, err := youtube.NewService(ctx, copts...)
	if err != nil {
		return nil, fmt.Errorf("service youtube: %w", err)
	}

	limit := rate.Inf
	if s.rps > 0 {
		limit = rate.Limit(s.rps)
	}
	return &Client{
		svc:     svc,
		limiter: rate.NewLimiter(limit, 1),
		timeout: s.timeout,
		logger:  s.logger,
	}, nil
}

// call attend son tour auprès du limiteur et retourne un contexte borné par le timeout.
func (c *Client) call(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, err
	}
	if c.timeout <= 0 {
		cctx, cancel := context.WithCancel(ctx)
		return cctx, cancel, nil
	}
	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	return cctx, cancel, nil
}

// VideoMeta retourne la chaîne et le titre de la vidéo.
func (c *Client) VideoMeta(ctx context.Context, videoID string) (model.VideoMeta, error) {
	cctx, cancel, err := c.call(ctx)
	if err != nil {
		return model.VideoMeta{}, err
	}
	defer cancel()

	resp, err := c.svc.Videos.List([]string{"snippet"}).Id(videoID).Context(cctx).Do()
	if err != nil {
		return model.VideoMeta{}, fmt.Errorf("videos.list %s: %w", videoID, err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return model.VideoMeta{}, fmt.Errorf("%w : %s", ErrVideoUnavailable, videoID)
	}
	sn := resp.Items[0].Snippet
	return model.VideoMeta{ID: videoID, ChannelID: sn.ChannelId, Title: sn.Title}, nil
}
