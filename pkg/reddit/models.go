package reddit

import "encoding/json"

// Wire shapes of the Reddit JSON API. Listings wrap every payload in a
// kind/data envelope; comments nest their replies in further listings.

// Post is one link or self post as returned by the listing endpoints.
type Post struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	SelfText  string `json:"selftext"`
	Permalink string `json:"permalink"`
	Score     int    `json:"score"`
	Thumbnail string `json:"thumbnail"`
	Subreddit string `json:"subreddit"`
	Name      string `json:"name"` // fullname, e.g. t3_abc123
	URL       string `json:"url"`
}

// Comment is one comment node. Replies are decoded separately because
// Reddit sends either a listing object or an empty string.
type Comment struct {
	ID     string `json:"id"`
	Body   string `json:"body"`
	Score  int    `json:"score"`
	Author string `json:"author"`
}

// FlairTemplate is one link-flair choice of a subreddit.
type FlairTemplate struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Error       string `json:"error"`
}

type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type listingData struct {
	Children []thing `json:"children"`
	After    string  `json:"after"`
}

type commentData struct {
	Comment
	Replies json.RawMessage `json:"replies"`
}

type submitResponse struct {
	JSON struct {
		Errors [][]any `json:"errors"`
		Data   struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"data"`
	} `json:"json"`
}
