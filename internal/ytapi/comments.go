package ytapi

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/youtube/v3"

	"github.com/patrickprogramme/ytexport/pkg/model"
)

// Comments retourne tous les commentaires de la vidéo, chaque fil suivi de ses réponses.
// ownerChannelID sert à marquer les commentaires de l'auteur de la vidéo.
// Un échec sur les réponses d'un fil n'arrête que ce fil.
func (c *Client) Comments(ctx context.Context, videoID, ownerChannelID string) ([]model.Comment, error) {
	var out []model.Comment
	pageToken := ""
	for {
		resp, err := c.threadsPage(ctx, videoID, pageToken)
		if err != nil {
			return out, err
		}

		for _, th := range resp.Items {
			if th.Snippet == nil || th.Snippet.TopLevelComment == nil {
				continue
			}
			top := th.Snippet.TopLevelComment
			out = append(out, toComment(top, model.CommentTopLevel, "", ownerChannelID))

			if th.Snippet.TotalReplyCount == 0 {
				continue
			}
			replies, err := c.replies(ctx, top.Id)
			if err != nil {
				c.logger.Warn("réponses ignorées",
					slog.String("video", videoID), slog.String("thread", top.Id), slog.Any("error", err))
			}
			for _, r := range replies {
				out = append(out, toComment(r, model.CommentReply, top.Id, ownerChannelID))
			}
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}
	c.logger.Debug("commentaires récupérés", slog.String("video", videoID), slog.Int("count", len(out)))
	return out, nil
}

func (c *Client) threadsPage(ctx context.Context, videoID, pageToken string) (*youtube.CommentThreadListResponse, error) {
	cctx, cancel, err := c.call(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	call := c.svc.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).
		MaxResults(pageSize).
		TextFormat(textFormat).
		Context(cctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("commentThreads.list %s: %w", videoID, err)
	}
	return resp, nil
}

// replies retourne les réponses déjà lues si une page échoue en cours de route.
func (c *Client) replies(ctx context.Context, parentID string) ([]*youtube.Comment, error) {
	var out []*youtube.Comment
	pageToken := ""
	for {
		cctx, cancel, err := c.call(ctx)
		if err != nil {
			return out, err
		}
		call := c.svc.Comments.List([]string{"snippet"}).
			ParentId(parentID).
			MaxResults(pageSize).
			TextFormat(textFormat).
			Context(cctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		cancel()
		if err != nil {
			return out, fmt.Errorf("comments.list %s: %w", parentID, err)
		}
		out = append(out, resp.Items...)
		if resp.NextPageToken == "" {
			return out, nil
		}
		pageToken = resp.NextPageToken
	}
}

func toComment(cm *youtube.Comment, kind model.CommentKind, parentID, owner string) model.Comment {
	out := model.Comment{Kind: kind, ParentID: parentID}
	sn := cm.Snippet
	if sn == nil {
		return out
	}
	out.Author = sn.AuthorDisplayName
	out.Text = sn.TextDisplay
	out.Likes = sn.LikeCount
	out.PublishedAt = sn.PublishedAt
	if sn.AuthorChannelId != nil && owner != "" {
		out.IsOwner = sn.AuthorChannelId.Value == owner
	}
	return out
}
