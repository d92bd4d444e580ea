// Package agent defines the five insight agents and their execution protocol.
package agent

// Descriptor is the static configuration of one agent: who it is, what it
// pursues, and which model backs it. Built once at startup, never mutated.
type Descriptor struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Goal      string `json:"goal"`
	Backstory string `json:"backstory"`
	Model     string `json:"model"`
}

// Pool holds the five agents the pipelines delegate to. All share the same
// single-agent, single-task execution contract; only configuration differs.
type Pool struct {
	Collector   *Descriptor
	Sentiment   *Descriptor
	FactChecker *Descriptor
	Commenter   *Descriptor
	Helper      *Descriptor
}

// DefaultPool builds the standard agent pool, all backed by the given model.
func DefaultPool(model string) *Pool {
	return &Pool{
		Collector: &Descriptor{
			ID:        "collector",
			Role:      "Reddit Data Collector & Summarizer",
			Goal:      "Collect top posts and summarize discussions with structured output",
			Backstory: "An expert Reddit analyst who reads threads and summarizes their tone, content, and top comments clearly.",
			Model:     model,
		},
		Sentiment: &Descriptor{
			ID:        "sentiment",
			Role:      "Sentiment Analysis Agent",
			Goal:      "Return a numeric sentiment score between -1.0 and +1.0",
			Backstory: "A sentiment scoring AI that only outputs a single number.",
			Model:     model,
		},
		FactChecker: &Descriptor{
			ID:        "factchecker",
			Role:      "Fact-Checking Agent",
			Goal:      "Verify factual accuracy of comments and output True, False, or Unverified",
			Backstory: "A concise fact-checking AI that only outputs one word.",
			Model:     model,
		},
		Commenter: &Descriptor{
			ID:        "commenter",
			Role:      "Reddit Comment Generator",
			Goal:      "Given a top comment, generate a new one with similar tone but fresh perspective",
			Backstory: "An AI that mimics human Redditors' tone and insight in comments.",
			Model:     model,
		},
		Helper: &Descriptor{
			ID:        "helper",
			Role:      "Helper",
			Goal:      "Explain and resolve project-related doubts in simple terms",
			Backstory: "A friendly AI tutor that explains the functioning of agents, Reddit posting, and fetching logic. Provides solutions, examples, and fixes clearly.",
			Model:     model,
		},
	}
}
