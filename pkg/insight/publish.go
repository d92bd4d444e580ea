package insight

import (
	"context"
	"strings"

	"github.com/insightbot/reddit-insight/pkg/types"
)

// CreatePost submits a new self post. When flairText is given it is
// resolved against the forum's flair templates by case-insensitive exact
// match; an unmatched name submits without a flair rather than failing.
// Any failure is reported to the observer and yields nil.
func (p *Pipeline) CreatePost(ctx context.Context, forum, title, body, flairText string) *types.Post {
	flairID := ""
	if flairText != "" {
		templates, err := p.client.ListFlairTemplates(ctx, forum)
		if err != nil {
			p.observer.Warn(warning(types.StagePublish, forum, title,
				"listing flair templates failed", err))
			return nil
		}
		for _, ft := range templates {
			if strings.EqualFold(ft.Text, flairText) {
				flairID = ft.ID
				break
			}
		}
	}

	created, err := p.client.SubmitPost(ctx, forum, title, body, flairID)
	if err != nil {
		p.observer.Warn(warning(types.StagePublish, forum, title,
			"submitting post failed", err))
		return nil
	}

	return &types.Post{
		Forum:     forum,
		Title:     created.Title,
		Body:      created.SelfText,
		Permalink: created.Permalink,
		Upvotes:   created.Score,
	}
}
