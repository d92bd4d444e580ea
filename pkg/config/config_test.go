package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setAllCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_API_KEY", "model-key")
	t.Setenv("REDDIT_CLIENT_ID", "id")
	t.Setenv("REDDIT_CLIENT_SECRET", "secret")
	t.Setenv("REDDIT_USER_AGENT", "insight-bot/1.0")
	t.Setenv("REDDIT_USERNAME", "user")
	t.Setenv("REDDIT_PASSWORD", "pass")
}

func TestLoadCredentials_AllPresent(t *testing.T) {
	setAllCredentials(t)

	creds, err := LoadCredentials()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.GoogleAPIKey != "model-key" {
		t.Errorf("expected model key, got %q", creds.GoogleAPIKey)
	}
	if creds.RedditUsername != "user" {
		t.Errorf("expected username, got %q", creds.RedditUsername)
	}
}

func TestLoadCredentials_MissingVarsAreNamed(t *testing.T) {
	setAllCredentials(t)
	t.Setenv("REDDIT_CLIENT_SECRET", "")
	t.Setenv("REDDIT_PASSWORD", "")

	_, err := LoadCredentials()
	if err == nil {
		t.Fatal("expected error for missing credentials")
	}
	msg := err.Error()
	if !strings.Contains(msg, "REDDIT_CLIENT_SECRET") || !strings.Contains(msg, "REDDIT_PASSWORD") {
		t.Errorf("error should name every missing variable, got: %s", msg)
	}
	if strings.Contains(msg, "REDDIT_USERNAME") {
		t.Errorf("error should not name present variables, got: %s", msg)
	}
}

func TestDefaults(t *testing.T) {
	opts := Defaults()
	if opts.PostLimit != 2 || opts.CommentLimit != 3 {
		t.Errorf("expected default limits 2/3, got %d/%d", opts.PostLimit, opts.CommentLimit)
	}
	if opts.PacingSeconds != 1 {
		t.Errorf("expected default pacing 1s, got %d", opts.PacingSeconds)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	content := "post_limit: 5\ncomment_limit: 10\ndefault_model: gemini-2.5-pro\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	opts, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.PostLimit != 5 || opts.CommentLimit != 10 {
		t.Errorf("expected limits 5/10, got %d/%d", opts.PostLimit, opts.CommentLimit)
	}
	if opts.DefaultModel != "gemini-2.5-pro" {
		t.Errorf("expected overridden model, got %q", opts.DefaultModel)
	}
	// Untouched fields keep their defaults.
	if opts.LogLevel != "info" {
		t.Errorf("expected default log level, got %q", opts.LogLevel)
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	opts, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts != Defaults() {
		t.Errorf("expected defaults, got %+v", opts)
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Options)
	}{
		{"zero post limit", func(o *Options) { o.PostLimit = 0 }},
		{"negative comment limit", func(o *Options) { o.CommentLimit = -1 }},
		{"negative pacing", func(o *Options) { o.PacingSeconds = -1 }},
		{"empty model", func(o *Options) { o.DefaultModel = "" }},
		{"bad log level", func(o *Options) { o.LogLevel = "loud" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := Defaults()
			tc.mutate(&opts)
			if err := opts.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
