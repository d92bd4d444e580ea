package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"

	adkagent "google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const appName = "reddit-insight"

// TaskRunner executes exactly one task against one agent and returns its
// text result. Implementations may fail on transport or model errors; they
// never retry and never plan multi-step work.
type TaskRunner interface {
	RunTask(ctx context.Context, desc *Descriptor, prompt, expectedOutput string) (string, error)
}

// ADKRunner runs tasks through the ADK single-agent sequential protocol.
// Safe for use from a single goroutine, matching the pipelines.
type ADKRunner struct {
	mu        sync.Mutex
	clientCfg *genai.ClientConfig
	models    map[string]model.LLM
	seq       int64
}

// NewADKRunner creates a runner backed by the Gemini API.
func NewADKRunner(apiKey string) (*ADKRunner, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	return &ADKRunner{
		clientCfg: &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		},
		models: make(map[string]model.LLM),
	}, nil
}

// NewADKRunnerWithModel creates a runner that serves the given model for
// every descriptor. Used in tests with a mock LLM.
func NewADKRunnerWithModel(m model.LLM) *ADKRunner {
	return &ADKRunner{
		models: map[string]model.LLM{"": m},
	}
}

func (r *ADKRunner) modelFor(ctx context.Context, name string) (model.LLM, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.models[name]; ok {
		return m, nil
	}
	if m, ok := r.models[""]; ok {
		// Fixed-model runner (tests) ignores the descriptor's model name.
		return m, nil
	}
	m, err := gemini.NewModel(ctx, name, r.clientCfg)
	if err != nil {
		return nil, fmt.Errorf("creating gemini model %s: %w", name, err)
	}
	r.models[name] = m
	return m, nil
}

// RunTask builds a one-shot agent from the descriptor, sends the task
// description as a single user message, and concatenates the text parts of
// the resulting event stream. Each call gets a fresh in-memory session, so
// no state leaks between tasks.
func (r *ADKRunner) RunTask(ctx context.Context, desc *Descriptor, prompt, expectedOutput string) (string, error) {
	m, err := r.modelFor(ctx, desc.Model)
	if err != nil {
		return "", err
	}

	oneShot, err := llmagent.New(llmagent.Config{
		Name:        desc.ID,
		Model:       m,
		Description: desc.Role,
		Instruction: desc.Instruction(expectedOutput),
	})
	if err != nil {
		return "", fmt.Errorf("creating agent %s: %w", desc.ID, err)
	}

	sessionService := session.InMemoryService()
	run, err := runner.New(runner.Config{
		AppName:        appName,
		Agent:          oneShot,
		SessionService: sessionService,
	})
	if err != nil {
		return "", fmt.Errorf("creating runner for %s: %w", desc.ID, err)
	}

	r.mu.Lock()
	r.seq++
	sessionID := fmt.Sprintf("%s-task-%d", desc.ID, r.seq)
	r.mu.Unlock()

	sess, err := sessionService.Create(ctx, &session.CreateRequest{
		AppName:   appName,
		UserID:    desc.ID,
		SessionID: sessionID,
	})
	if err != nil {
		return "", fmt.Errorf("creating session for %s: %w", desc.ID, err)
	}

	msg := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}

	var sb strings.Builder
	for event, err := range run.Run(ctx, desc.ID, sess.Session.ID(), msg, adkagent.RunConfig{}) {
		if err != nil {
			return "", fmt.Errorf("agent %s: %w", desc.ID, err)
		}
		if event == nil || event.Content == nil {
			continue
		}
		for _, part := range event.Content.Parts {
			if part.Text != "" {
				sb.WriteString(part.Text)
			}
		}
	}

	result := strings.TrimSpace(sb.String())
	if result == "" {
		return "", fmt.Errorf("agent %s returned no text", desc.ID)
	}
	return result, nil
}
