package agent

import (
	"fmt"
	"strings"

	"github.com/insightbot/reddit-insight/pkg/types"
)

// Expected-output hints bound to each task at call time.
const (
	CollectorExpected = "A structured summary with post title, summary, top comments, and tone classification."
	SentimentExpected = "A single numeric sentiment score between -1.0 and +1.0"
	FactCheckExpected = "One of: True, False, or Unverified"
	CommentExpected   = "A natural Reddit-style comment written in similar tone and context."
	HelperExpected    = "A clear, beginner-friendly explanation relevant to the Reddit Insight Agent project."
)

// CollectorPrompt builds the structured-summary task for one post and its
// numbered top comments.
func CollectorPrompt(forum, title string, comments []types.Comment) string {
	var sb strings.Builder
	for i, c := range comments {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, c.Body)
	}
	return fmt.Sprintf(`Subreddit: %s
Post: %s
Comments:
%s
For each post, generate exactly:
Post Title: <Post title>
Collector Summary: <3-5 sentence summary>
Comments:
1. Comment Body: <first comment>
   Upvotes: <number>
2. Comment Body: <second comment>
   Upvotes: <number>
Overall Discussion Tone: <Neutral / Supportive / Critical / Mixed>`, forum, title, sb.String())
}

// SentimentPrompt builds the fixed scoring task for one comment.
func SentimentPrompt(body string) string {
	return fmt.Sprintf("Analyze sentiment (positive=1, neutral=0, negative=-1). Comment: %s", body)
}

// FactCheckPrompt builds the fixed fact-check task for one comment.
func FactCheckPrompt(body string) string {
	return fmt.Sprintf("Fact check this comment. Respond only with True, False, or Unverified:\n%s", body)
}

// CommentPrompt builds the comment-generation task from the best comment.
func CommentPrompt(body string) string {
	return fmt.Sprintf("Original Comment: %s\nGenerate a new comment in a similar style.", body)
}

// Instruction renders a descriptor into the system instruction of an ADK
// agent, binding the expected-output hint of the current task.
func (d *Descriptor) Instruction(expectedOutput string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s.\n\n", d.Role)
	fmt.Fprintf(&sb, "## Background\n%s\n\n", d.Backstory)
	fmt.Fprintf(&sb, "## Goal\n%s\n", d.Goal)
	if expectedOutput != "" {
		fmt.Fprintf(&sb, "\n## Expected output\n%s\n", expectedOutput)
	}
	return sb.String()
}
