package insight

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/insightbot/reddit-insight/pkg/agent"
	"github.com/insightbot/reddit-insight/pkg/reddit"
	"github.com/insightbot/reddit-insight/pkg/types"
)

// FetchOptions controls one fetch run.
type FetchOptions struct {
	// Keywords filter comments by case-insensitive substring match.
	// Empty keeps every comment.
	Keywords []string
	// PostLimit caps posts per forum; defaults to 2.
	PostLimit int
	// CommentLimit caps kept comments per post; defaults to 3.
	CommentLimit int
}

func (o FetchOptions) withDefaults() FetchOptions {
	if o.PostLimit <= 0 {
		o.PostLimit = 2
	}
	if o.CommentLimit <= 0 {
		o.CommentLimit = 3
	}
	return o
}

// FetchPosts retrieves the top posts of each forum, keeps each post's
// highest-voted matching comments, and attaches a collector summary.
// A platform failure mid-loop stops the run and returns whatever was
// accumulated; a collector failure only degrades that post's summary.
func (p *Pipeline) FetchPosts(ctx context.Context, forums []string, opts FetchOptions) []types.Post {
	opts = opts.withDefaults()
	records := make([]types.Post, 0, len(forums)*opts.PostLimit)

	for _, forum := range forums {
		posts, err := p.client.ListTopPosts(ctx, forum, opts.PostLimit)
		if err != nil {
			p.observer.Warn(warning(types.StageFetch, forum, "",
				"listing top posts failed, returning partial results", err))
			return records
		}

		for _, post := range posts {
			all, err := p.client.ListComments(ctx, forum, post.ID)
			if err != nil {
				p.observer.Warn(warning(types.StageFetch, forum, post.Title,
					"listing comments failed, returning partial results", err))
				return records
			}

			top := topComments(all, opts.Keywords, opts.CommentLimit)
			summary := p.collectorSummary(ctx, forum, post.Title, top)

			records = append(records, types.Post{
				Forum:     forum,
				Title:     post.Title,
				Body:      post.SelfText,
				Permalink: "https://reddit.com" + post.Permalink,
				Upvotes:   post.Score,
				Thumbnail: absoluteThumbnail(post.Thumbnail),
				Summary:   summary,
				Comments:  top,
			})

			// Politeness pacing against the platform API.
			if p.pacing > 0 {
				p.sleep(p.pacing)
			}
		}
	}

	return records
}

// topComments filters by keyword, sorts by upvotes descending and truncates.
func topComments(all []reddit.Comment, keywords []string, limit int) []types.Comment {
	filtered := make([]types.Comment, 0, len(all))
	for _, c := range all {
		if matchesKeywords(c.Body, keywords) {
			filtered = append(filtered, types.Comment{Body: c.Body, Upvotes: c.Score})
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Upvotes > filtered[j].Upvotes
	})

	if limit < len(filtered) {
		filtered = filtered[:limit]
	}
	return filtered
}

func matchesKeywords(body string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	lower := strings.ToLower(body)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// absoluteThumbnail keeps only absolute http(s) URLs. Reddit uses sentinel
// values like "self" and "default" for posts without one.
func absoluteThumbnail(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return raw
}

func (p *Pipeline) collectorSummary(ctx context.Context, forum, title string, comments []types.Comment) string {
	prompt := agent.CollectorPrompt(forum, title, comments)
	text, err := p.runner.RunTask(ctx, p.pool.Collector, prompt, agent.CollectorExpected)
	if err != nil {
		p.observer.Warn(warning(types.StageCollector, forum, title,
			"collector agent failed, using fallback summary", err))
		return CollectorFallback
	}
	return strings.TrimSpace(text)
}
