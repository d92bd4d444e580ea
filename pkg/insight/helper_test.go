package insight

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/insightbot/reddit-insight/pkg/types"
)

func TestGenerateCommentFromBest_EmptyInput(t *testing.T) {
	p, _ := newTestPipeline(&fakeClient{}, &fakeRunner{})

	if _, ok := p.GenerateCommentFromBest(context.Background(), nil); ok {
		t.Error("expected no comment for empty input")
	}
}

func TestGenerateCommentFromBest_SelectsHighestUpvoted(t *testing.T) {
	runner := &fakeRunner{answers: map[string]string{"commenter": "  fresh take  "}}
	p, _ := newTestPipeline(&fakeClient{}, runner)

	comments := []types.Comment{
		{Body: "a", Upvotes: 1},
		{Body: "b", Upvotes: 5},
	}
	text, ok := p.GenerateCommentFromBest(context.Background(), comments)
	if !ok {
		t.Fatal("expected a generated comment")
	}
	if text != "fresh take" {
		t.Errorf("expected trimmed agent output, got %q", text)
	}
	if len(runner.calls) != 1 || !strings.Contains(runner.calls[0], "Original Comment: b") {
		t.Errorf("expected prompt built from comment %q, got %v", "b", runner.calls)
	}
}

func TestGenerateCommentFromBest_TieKeepsFirst(t *testing.T) {
	runner := &fakeRunner{}
	p, _ := newTestPipeline(&fakeClient{}, runner)

	comments := []types.Comment{
		{Body: "first", Upvotes: 5},
		{Body: "second", Upvotes: 5},
	}
	if _, ok := p.GenerateCommentFromBest(context.Background(), comments); !ok {
		t.Fatal("expected a generated comment")
	}
	if !strings.Contains(runner.calls[0], "Original Comment: first") {
		t.Errorf("tie should keep the first comment, prompt was %q", runner.calls[0])
	}
}

func TestGenerateCommentFromBest_AgentFailure(t *testing.T) {
	runner := &fakeRunner{errs: map[string]error{"commenter": errors.New("timeout")}}
	p, observer := newTestPipeline(&fakeClient{}, runner)

	if _, ok := p.GenerateCommentFromBest(context.Background(), []types.Comment{{Body: "a", Upvotes: 1}}); ok {
		t.Error("expected failure to yield no comment")
	}
	if len(observer.warnings) != 1 || observer.warnings[0].Stage != types.StageComment {
		t.Errorf("expected one comment-stage warning, got %+v", observer.warnings)
	}
}

func TestAskHelper(t *testing.T) {
	runner := &fakeRunner{answers: map[string]string{"helper": "It works like this."}}
	p, _ := newTestPipeline(&fakeClient{}, runner)

	if got := p.AskHelper(context.Background(), "how does fetching work?"); got != "It works like this." {
		t.Errorf("unexpected helper answer: %q", got)
	}
}

func TestAskHelper_FailureReturnsApology(t *testing.T) {
	runner := &fakeRunner{errs: map[string]error{"helper": errors.New("quota exceeded")}}
	p, _ := newTestPipeline(&fakeClient{}, runner)

	if got := p.AskHelper(context.Background(), "anything"); got != HelperFallback {
		t.Errorf("expected apology fallback, got %q", got)
	}
}
