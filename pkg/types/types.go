// Package types defines core types for the Reddit Insight agent.
package types

import "time"

// Comment is a single fetched comment, kept only while a report is built.
type Comment struct {
	Body    string `json:"comment_body"`
	Upvotes int    `json:"upvotes"`
}

// Post is one fetched post together with its collector summary and the
// top comments that survived filtering. Immutable once assembled.
type Post struct {
	Forum     string    `json:"forum"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Permalink string    `json:"permalink"`
	Upvotes   int       `json:"upvotes"`
	Thumbnail string    `json:"thumbnail,omitempty"` // empty unless an absolute http(s) URL
	Summary   string    `json:"collector_summary"`
	Comments  []Comment `json:"comments"`
}

// Verdict is the fact-check outcome for a comment.
type Verdict string

const (
	VerdictTrue       Verdict = "True"
	VerdictFalse      Verdict = "False"
	VerdictUnverified Verdict = "Unverified"
)

// ReportRow is one flattened (post, comment) record of the insight report.
type ReportRow struct {
	Forum          string  `json:"forum"`
	Title          string  `json:"post_title"`
	Link           string  `json:"post_link"`
	PostUpvotes    int     `json:"post_upvotes"`
	Summary        string  `json:"collector_summary"`
	Comment        string  `json:"comment"`
	CommentUpvotes int     `json:"comment_upvotes"`
	Sentiment      float64 `json:"sentiment"`
	Verdict        Verdict `json:"fact_verdict"`
}

// Stage names the pipeline step a warning originated from.
type Stage string

const (
	StageFetch     Stage = "fetch"
	StageCollector Stage = "collector"
	StageSentiment Stage = "sentiment"
	StageFactCheck Stage = "fact_check"
	StagePublish   Stage = "publish"
	StageComment   Stage = "comment"
	StageHelper    Stage = "helper"
)

// Warning captures one swallowed failure for later analysis. The pipelines
// substitute a default value and keep going; the warning is the only trace.
type Warning struct {
	Timestamp time.Time `json:"timestamp"`
	Stage     Stage     `json:"stage"`
	Forum     string    `json:"forum,omitempty"`
	PostTitle string    `json:"post_title,omitempty"`
	Detail    string    `json:"detail"`
	Err       string    `json:"error,omitempty"`
}
