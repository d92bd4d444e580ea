package insight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/insightbot/reddit-insight/pkg/agent"
	"github.com/insightbot/reddit-insight/pkg/reddit"
	"github.com/insightbot/reddit-insight/pkg/types"
)

// fakeRunner scripts agent answers per descriptor ID.
type fakeRunner struct {
	answers map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) RunTask(_ context.Context, desc *agent.Descriptor, prompt, _ string) (string, error) {
	f.calls = append(f.calls, desc.ID+": "+prompt)
	if err, ok := f.errs[desc.ID]; ok && err != nil {
		return "", err
	}
	if answer, ok := f.answers[desc.ID]; ok {
		return answer, nil
	}
	return "ok", nil
}

// fakeClient serves canned posts and comments, optionally failing after a
// number of calls to simulate a platform outage mid-loop.
type fakeClient struct {
	posts    map[string][]reddit.Post
	comments map[string][]reddit.Comment

	topErr          error
	commentCalls    int
	commentFailOn   int // fail the nth ListComments call (1-based), 0 disables
	flairs          []reddit.FlairTemplate
	flairErr        error
	submitErr       error
	submittedFlair  string
	submittedForums []string
}

func (f *fakeClient) ListTopPosts(_ context.Context, forum string, limit int) ([]reddit.Post, error) {
	if f.topErr != nil {
		return nil, f.topErr
	}
	posts := f.posts[forum]
	if limit < len(posts) {
		posts = posts[:limit]
	}
	return posts, nil
}

func (f *fakeClient) ListComments(_ context.Context, _, postID string) ([]reddit.Comment, error) {
	f.commentCalls++
	if f.commentFailOn > 0 && f.commentCalls >= f.commentFailOn {
		return nil, errors.New("platform unavailable")
	}
	return f.comments[postID], nil
}

func (f *fakeClient) SubmitPost(_ context.Context, forum, title, body, flairID string) (*reddit.Post, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submittedFlair = flairID
	f.submittedForums = append(f.submittedForums, forum)
	return &reddit.Post{
		ID:        "new1",
		Title:     title,
		SelfText:  body,
		Subreddit: forum,
		Permalink: fmt.Sprintf("https://reddit.com/r/%s/comments/new1/", forum),
	}, nil
}

func (f *fakeClient) ListFlairTemplates(_ context.Context, _ string) ([]reddit.FlairTemplate, error) {
	if f.flairErr != nil {
		return nil, f.flairErr
	}
	return f.flairs, nil
}

// recordingObserver collects warnings for assertions.
type recordingObserver struct {
	warnings []types.Warning
}

func (r *recordingObserver) Warn(w types.Warning) {
	r.warnings = append(r.warnings, w)
}

func (r *recordingObserver) stages() []types.Stage {
	out := make([]types.Stage, 0, len(r.warnings))
	for _, w := range r.warnings {
		out = append(out, w.Stage)
	}
	return out
}

func newTestPipeline(client reddit.Client, runner agent.TaskRunner) (*Pipeline, *recordingObserver) {
	observer := &recordingObserver{}
	p := New(Config{
		Client:   client,
		Runner:   runner,
		Pool:     agent.DefaultPool("test-model"),
		Observer: observer,
		Pacing:   -1, // no pacing in tests unless a test overrides sleep
	})
	p.sleep = func(time.Duration) {}
	return p, observer
}
