package insight

import (
	"context"
	"strings"

	"github.com/insightbot/reddit-insight/pkg/agent"
	"github.com/insightbot/reddit-insight/pkg/types"
)

// GenerateCommentFromBest picks the highest-voted comment (first wins ties)
// and asks the comment agent for a fresh take in the same style. Returns
// false when the input is empty or the agent fails.
func (p *Pipeline) GenerateCommentFromBest(ctx context.Context, comments []types.Comment) (string, bool) {
	if len(comments) == 0 {
		return "", false
	}

	best := comments[0]
	for _, c := range comments[1:] {
		if c.Upvotes > best.Upvotes {
			best = c
		}
	}

	text, err := p.runner.RunTask(ctx, p.pool.Commenter, agent.CommentPrompt(best.Body), agent.CommentExpected)
	if err != nil {
		p.observer.Warn(warning(types.StageComment, "", "",
			"comment agent failed", err))
		return "", false
	}
	return strings.TrimSpace(text), true
}

// AskHelper runs a one-shot helper question. Failures come back as a fixed
// apology instead of an error.
func (p *Pipeline) AskHelper(ctx context.Context, question string) string {
	text, err := p.runner.RunTask(ctx, p.pool.Helper, question, agent.HelperExpected)
	if err != nil {
		p.observer.Warn(warning(types.StageHelper, "", "",
			"helper agent failed", err))
		return HelperFallback
	}
	return strings.TrimSpace(text)
}
