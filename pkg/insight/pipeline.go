// Package insight implements the fetch, report and publish pipelines.
package insight

import (
	"time"

	"github.com/insightbot/reddit-insight/pkg/agent"
	"github.com/insightbot/reddit-insight/pkg/reddit"
)

// CollectorFallback is substituted when the collector agent fails.
const CollectorFallback = "Collector agent failed"

// HelperFallback is returned when the helper agent fails.
const HelperFallback = "Sorry, Helper Agent could not answer."

// Pipeline sequences platform reads and agent calls. Strictly synchronous:
// every call blocks until done, posts are paced by a fixed delay, and
// failures degrade to defaults instead of aborting.
type Pipeline struct {
	client   reddit.Client
	runner   agent.TaskRunner
	pool     *agent.Pool
	observer Observer

	// Pacing delay between successive post fetches.
	pacing time.Duration
	sleep  func(time.Duration)
}

// Config assembles a Pipeline.
type Config struct {
	Client   reddit.Client
	Runner   agent.TaskRunner
	Pool     *agent.Pool
	Observer Observer
	// Pacing defaults to one second when zero; a negative value disables it.
	Pacing time.Duration
}

// New creates a pipeline. A nil Observer falls back to the log observer.
func New(cfg Config) *Pipeline {
	observer := cfg.Observer
	if observer == nil {
		observer = NewLogObserver()
	}
	pacing := cfg.Pacing
	if pacing == 0 {
		pacing = time.Second
	} else if pacing < 0 {
		pacing = 0
	}
	return &Pipeline{
		client:   cfg.Client,
		runner:   cfg.Runner,
		pool:     cfg.Pool,
		observer: observer,
		pacing:   pacing,
		sleep:    time.Sleep,
	}
}
