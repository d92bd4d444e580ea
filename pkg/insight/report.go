package insight

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/insightbot/reddit-insight/pkg/agent"
	"github.com/insightbot/reddit-insight/pkg/types"
)

// SentimentResult is a scored comment. Defaulted marks rows where the agent
// call or the parse failed and 0.0 was substituted; Err keeps the cause.
type SentimentResult struct {
	Score     float64
	Defaulted bool
	Err       error
}

// VerdictResult is a fact-checked comment, with the same default semantics.
type VerdictResult struct {
	Verdict   types.Verdict
	Defaulted bool
	Err       error
}

// GenerateReport produces one row per comment across all post records,
// preserving post order then comment order. Sentiment and fact-check calls
// are independent: a failure in one never blocks the other, and neither
// aborts the report.
func (p *Pipeline) GenerateReport(ctx context.Context, posts []types.Post) []types.ReportRow {
	var rows []types.ReportRow
	for _, post := range posts {
		for _, comment := range post.Comments {
			sentiment := p.ScoreSentiment(ctx, post.Forum, post.Title, comment.Body)
			verdict := p.CheckFact(ctx, post.Forum, post.Title, comment.Body)

			rows = append(rows, types.ReportRow{
				Forum:          post.Forum,
				Title:          post.Title,
				Link:           post.Permalink,
				PostUpvotes:    post.Upvotes,
				Summary:        post.Summary,
				Comment:        comment.Body,
				CommentUpvotes: comment.Upvotes,
				Sentiment:      sentiment.Score,
				Verdict:        verdict.Verdict,
			})
		}
	}
	return rows
}

// ScoreSentiment asks the sentiment agent for a score in [-1, 1]. Any call
// or parse failure, including an out-of-range number, defaults to 0.0.
func (p *Pipeline) ScoreSentiment(ctx context.Context, forum, postTitle, body string) SentimentResult {
	text, err := p.runner.RunTask(ctx, p.pool.Sentiment, agent.SentimentPrompt(body), agent.SentimentExpected)
	if err != nil {
		p.observer.Warn(warning(types.StageSentiment, forum, postTitle,
			"sentiment agent failed, defaulting to 0.0", err))
		return SentimentResult{Score: 0.0, Defaulted: true, Err: err}
	}

	score, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		p.observer.Warn(warning(types.StageSentiment, forum, postTitle,
			"sentiment result not numeric, defaulting to 0.0", err))
		return SentimentResult{Score: 0.0, Defaulted: true, Err: err}
	}
	if score < -1.0 || score > 1.0 {
		err := fmt.Errorf("sentiment score %v outside [-1, 1]", score)
		p.observer.Warn(warning(types.StageSentiment, forum, postTitle,
			"sentiment score out of range, defaulting to 0.0", err))
		return SentimentResult{Score: 0.0, Defaulted: true, Err: err}
	}

	return SentimentResult{Score: score}
}

// CheckFact asks the fact-check agent for one of the three verdict tokens.
// Anything else, or any failure, defaults to Unverified.
func (p *Pipeline) CheckFact(ctx context.Context, forum, postTitle, body string) VerdictResult {
	text, err := p.runner.RunTask(ctx, p.pool.FactChecker, agent.FactCheckPrompt(body), agent.FactCheckExpected)
	if err != nil {
		p.observer.Warn(warning(types.StageFactCheck, forum, postTitle,
			"fact-check agent failed, defaulting to Unverified", err))
		return VerdictResult{Verdict: types.VerdictUnverified, Defaulted: true, Err: err}
	}

	verdict, ok := parseVerdict(text)
	if !ok {
		err := fmt.Errorf("unexpected verdict %q", text)
		p.observer.Warn(warning(types.StageFactCheck, forum, postTitle,
			"fact-check result not a known verdict, defaulting to Unverified", err))
		return VerdictResult{Verdict: types.VerdictUnverified, Defaulted: true, Err: err}
	}

	return VerdictResult{Verdict: verdict}
}

func parseVerdict(text string) (types.Verdict, bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true":
		return types.VerdictTrue, true
	case "false":
		return types.VerdictFalse, true
	case "unverified":
		return types.VerdictUnverified, true
	}
	return "", false
}
