package transcript

import (
	"context"

	"github.com/patrickprogramme/ytexport/internal/captions"
	"github.com/patrickprogramme/ytexport/pkg/model"
)

// captionService adapte *captions.Client à CaptionService.
type captionService struct {
	c *captions.Client
}

// NewCaptionService expose un client captions comme CaptionService.
func NewCaptionService(c *captions.Client) CaptionService {
	return captionService{c: c}
}

func (s captionService) Fetch(ctx context.Context, videoID, lang string) ([]model.Segment, error) {
	return s.c.Fetch(ctx, videoID, lang)
}

func (s captionService) ListTracks(ctx context.Context, videoID string) ([]Track, error) {
	tracks, err := s.c.ListTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}
	out := make([]Track, len(tracks))
	for i, t := range tracks {
		out[i] = t
	}
	return out, nil
}
