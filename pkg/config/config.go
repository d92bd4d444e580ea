// Package config loads credentials and runtime options.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Credentials holds the secrets required to talk to Gemini and Reddit.
// All fields are mandatory; the process refuses to start without them.
type Credentials struct {
	GoogleAPIKey       string
	RedditClientID     string
	RedditClientSecret string
	RedditUserAgent    string
	RedditUsername     string
	RedditPassword     string
}

var credentialVars = []struct {
	env string
	set func(*Credentials, string)
}{
	{"GOOGLE_API_KEY", func(c *Credentials, v string) { c.GoogleAPIKey = v }},
	{"REDDIT_CLIENT_ID", func(c *Credentials, v string) { c.RedditClientID = v }},
	{"REDDIT_CLIENT_SECRET", func(c *Credentials, v string) { c.RedditClientSecret = v }},
	{"REDDIT_USER_AGENT", func(c *Credentials, v string) { c.RedditUserAgent = v }},
	{"REDDIT_USERNAME", func(c *Credentials, v string) { c.RedditUsername = v }},
	{"REDDIT_PASSWORD", func(c *Credentials, v string) { c.RedditPassword = v }},
}

// LoadCredentials reads credentials from the environment, after loading a
// .env file when one is present. The returned error names every missing
// variable so a misconfigured deployment fails with one actionable message.
func LoadCredentials() (Credentials, error) {
	_ = godotenv.Load()

	var creds Credentials
	var missing []string
	for _, v := range credentialVars {
		val := os.Getenv(v.env)
		if val == "" {
			missing = append(missing, v.env)
			continue
		}
		v.set(&creds, val)
	}
	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf("missing required credentials: %s", strings.Join(missing, ", "))
	}
	return creds, nil
}

// Options holds the tunables of the insight pipelines.
type Options struct {
	DefaultModel   string `yaml:"default_model"`
	PostLimit      int    `yaml:"post_limit"`
	CommentLimit   int    `yaml:"comment_limit"`
	PacingSeconds  int    `yaml:"pacing_seconds"`
	LogLevel       string `yaml:"log_level"`
	LogFile        string `yaml:"log_file"`
	WarningLogPath string `yaml:"warning_log_path"`
}

// Defaults returns an Options with all default values set.
func Defaults() Options {
	return Options{
		DefaultModel:  "gemini-2.5-flash",
		PostLimit:     2,
		CommentLimit:  3,
		PacingSeconds: 1,
		LogLevel:      "info",
	}
}

// Load reads a YAML options file on top of Defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Options, error) {
	opts := Defaults()
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("reading options file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parsing options file %s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Validate checks that option values are usable.
func (o *Options) Validate() error {
	if o.DefaultModel == "" {
		return fmt.Errorf("default_model must not be empty")
	}
	if o.PostLimit <= 0 {
		return fmt.Errorf("post_limit must be positive, got %d", o.PostLimit)
	}
	if o.CommentLimit <= 0 {
		return fmt.Errorf("comment_limit must be positive, got %d", o.CommentLimit)
	}
	if o.PacingSeconds < 0 {
		return fmt.Errorf("pacing_seconds must not be negative, got %d", o.PacingSeconds)
	}
	if _, err := logrus.ParseLevel(o.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", o.LogLevel, err)
	}
	return nil
}
