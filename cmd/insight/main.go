package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/insightbot/reddit-insight/pkg/agent"
	"github.com/insightbot/reddit-insight/pkg/config"
	"github.com/insightbot/reddit-insight/pkg/insight"
	"github.com/insightbot/reddit-insight/pkg/logger"
	"github.com/insightbot/reddit-insight/pkg/reddit"
)

func main() {
	forums := flag.String("forums", "", "Comma-separated forum (subreddit) names to fetch")
	keywords := flag.String("keywords", "", "Comma-separated keywords to filter comments (optional)")
	postLimit := flag.Int("posts", 0, "Top posts per forum (0 uses configured default)")
	commentLimit := flag.Int("comments", 0, "Top comments per post (0 uses configured default)")
	configPath := flag.String("config", "", "Path to YAML options file (optional)")
	reportPath := flag.String("report", "-", "Report output path, or - for stdout")
	postForum := flag.String("post-forum", "", "Forum to publish a new post to (optional)")
	postTitle := flag.String("post-title", "", "Title of the post to publish")
	postBody := flag.String("post-body", "", "Body of the post to publish")
	postFlair := flag.String("post-flair", "", "Flair display name for the published post (optional)")
	ask := flag.String("ask", "", "Ask the helper agent a one-shot question and exit")
	flag.Parse()

	creds, err := config.LoadCredentials()
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup: %v\n", err)
		os.Exit(1)
	}

	opts, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(opts.LogLevel, opts.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "startup: init logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	runner, err := agent.NewADKRunner(creds.GoogleAPIKey)
	if err != nil {
		logger.Log.Fatalf("Failed to create agent runner: %v", err)
	}

	client := reddit.NewClient(&http.Client{Timeout: 30 * time.Second}, reddit.Credentials{
		ClientID:     creds.RedditClientID,
		ClientSecret: creds.RedditClientSecret,
		UserAgent:    creds.RedditUserAgent,
		Username:     creds.RedditUsername,
		Password:     creds.RedditPassword,
	})

	var observer insight.Observer = insight.NewLogObserver()
	if opts.WarningLogPath != "" {
		jsonl, err := insight.NewJSONLObserver(opts.WarningLogPath)
		if err != nil {
			logger.Log.Fatalf("Failed to open warning log: %v", err)
		}
		defer jsonl.Close()
		observer = insight.MultiObserver{observer, jsonl}
	}

	pipeline := insight.New(insight.Config{
		Client:   client,
		Runner:   runner,
		Pool:     agent.DefaultPool(opts.DefaultModel),
		Observer: observer,
		Pacing:   time.Duration(opts.PacingSeconds) * time.Second,
	})

	if *ask != "" {
		fmt.Println(pipeline.AskHelper(ctx, *ask))
		return
	}

	if *postForum != "" {
		if *postTitle == "" || *postBody == "" {
			logger.Log.Fatal("-post-title and -post-body are required with -post-forum")
		}
		created := pipeline.CreatePost(ctx, *postForum, *postTitle, *postBody, *postFlair)
		if created == nil {
			logger.Log.Fatal("Post creation failed")
		}
		fmt.Printf("Post created: %s\n", created.Permalink)
		return
	}

	forumList := splitList(*forums)
	if len(forumList) == 0 {
		logger.Log.Fatal("-forums is required (example: -forums golang,programming)")
	}

	fetchOpts := insight.FetchOptions{
		Keywords:     splitList(*keywords),
		PostLimit:    opts.PostLimit,
		CommentLimit: opts.CommentLimit,
	}
	if *postLimit > 0 {
		fetchOpts.PostLimit = *postLimit
	}
	if *commentLimit > 0 {
		fetchOpts.CommentLimit = *commentLimit
	}

	logger.Log.Infof("Fetching %d forum(s), %d post(s) each", len(forumList), fetchOpts.PostLimit)
	posts := pipeline.FetchPosts(ctx, forumList, fetchOpts)
	logger.Log.Infof("Fetched %d post(s)", len(posts))

	rows := pipeline.GenerateReport(ctx, posts)
	logger.Log.Infof("Report has %d row(s)", len(rows))

	out := os.Stdout
	if *reportPath != "-" && *reportPath != "" {
		f, err := os.Create(*reportPath)
		if err != nil {
			logger.Log.Fatalf("Failed to create report file: %v", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		logger.Log.Fatalf("Failed to write report: %v", err)
	}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
