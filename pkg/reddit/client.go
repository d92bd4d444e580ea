// Package reddit wraps the authenticated Reddit OAuth API.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultAuthURL = "https://www.reddit.com"
	DefaultAPIURL  = "https://oauth.reddit.com"
)

// Credentials is the script-app credential set for the password grant.
type Credentials struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	Username     string
	Password     string
}

// Client is the read/write surface the pipelines need from Reddit.
type Client interface {
	// ListTopPosts returns up to limit posts from the forum's "top" listing,
	// in platform order.
	ListTopPosts(ctx context.Context, forum string, limit int) ([]Post, error)
	// ListComments returns the post's comments flattened depth-first.
	// Unresolved "load more" placeholders are excluded.
	ListComments(ctx context.Context, forum, postID string) ([]Comment, error)
	// SubmitPost creates a self post, optionally with a flair template ID.
	SubmitPost(ctx context.Context, forum, title, body, flairID string) (*Post, error)
	// ListFlairTemplates returns the forum's link flair choices.
	ListFlairTemplates(ctx context.Context, forum string) ([]FlairTemplate, error)
}

type httpClient struct {
	client  *http.Client
	creds   Credentials
	authURL string
	apiURL  string

	token       string
	tokenExpiry time.Time
}

// NewClient creates a Reddit client authenticating with the password grant.
func NewClient(client *http.Client, creds Credentials) Client {
	return newClient(client, creds, DefaultAuthURL, DefaultAPIURL)
}

// NewClientWithBaseURLs creates a client against custom endpoints (tests).
func NewClientWithBaseURLs(client *http.Client, creds Credentials, authURL, apiURL string) Client {
	return newClient(client, creds, authURL, apiURL)
}

func newClient(client *http.Client, creds Credentials, authURL, apiURL string) *httpClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &httpClient{
		client:  client,
		creds:   creds,
		authURL: authURL,
		apiURL:  apiURL,
	}
}

// ensureToken fetches or refreshes the OAuth token. Reddit script apps use
// the resource-owner password grant with HTTP basic auth.
func (c *httpClient) ensureToken(ctx context.Context) error {
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return nil
	}

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", c.creds.Username)
	form.Set("password", c.creds.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.authURL+"/api/v1/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating token request: %w", err)
	}
	req.SetBasicAuth(c.creds.ClientID, c.creds.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.creds.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("access token request returned status %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return fmt.Errorf("decoding token response: %w", err)
	}
	if tok.Error != "" {
		return fmt.Errorf("access token request failed: %s", tok.Error)
	}
	if tok.AccessToken == "" {
		return fmt.Errorf("access token response contained no token")
	}

	c.token = tok.AccessToken
	// Refresh one minute early so in-flight requests never race expiry.
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)
	return nil
}

func (c *httpClient) get(ctx context.Context, path string, out any) error {
	if err := c.ensureToken(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.creds.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func (c *httpClient) postForm(ctx context.Context, path string, form url.Values, out any) error {
	if err := c.ensureToken(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.creds.UserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding %s response: %w", path, err)
		}
	}
	return nil
}

// ListTopPosts implements Client.
func (c *httpClient) ListTopPosts(ctx context.Context, forum string, limit int) ([]Post, error) {
	var envelope thing
	path := fmt.Sprintf("/r/%s/top?limit=%d", url.PathEscape(forum), limit)
	if err := c.get(ctx, path, &envelope); err != nil {
		return nil, err
	}

	var listing listingData
	if err := json.Unmarshal(envelope.Data, &listing); err != nil {
		return nil, fmt.Errorf("decoding top listing for r/%s: %w", forum, err)
	}

	posts := make([]Post, 0, len(listing.Children))
	for _, child := range listing.Children {
		if child.Kind != "t3" {
			continue
		}
		var p Post
		if err := json.Unmarshal(child.Data, &p); err != nil {
			return nil, fmt.Errorf("decoding post in r/%s: %w", forum, err)
		}
		posts = append(posts, p)
	}
	if limit > 0 && limit < len(posts) {
		posts = posts[:limit]
	}
	return posts, nil
}

// ListComments implements Client. The comments endpoint returns two
// listings: the post itself and the comment tree. The tree is flattened
// depth-first; "more" placeholders carry no bodies and are skipped.
func (c *httpClient) ListComments(ctx context.Context, forum, postID string) ([]Comment, error) {
	var payload []thing
	path := fmt.Sprintf("/r/%s/comments/%s?limit=500&depth=10", url.PathEscape(forum), url.PathEscape(postID))
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, err
	}
	if len(payload) < 2 {
		return nil, fmt.Errorf("comments response for %s had %d listings, want 2", postID, len(payload))
	}

	var listing listingData
	if err := json.Unmarshal(payload[1].Data, &listing); err != nil {
		return nil, fmt.Errorf("decoding comment listing for %s: %w", postID, err)
	}

	var comments []Comment
	flattenComments(listing.Children, &comments)
	return comments, nil
}

func flattenComments(children []thing, out *[]Comment) {
	for _, child := range children {
		if child.Kind != "t1" {
			continue
		}
		var cd commentData
		if err := json.Unmarshal(child.Data, &cd); err != nil {
			continue
		}
		*out = append(*out, cd.Comment)

		// Replies are either a nested listing or "".
		if len(cd.Replies) == 0 || string(cd.Replies) == `""` {
			continue
		}
		var replies thing
		if err := json.Unmarshal(cd.Replies, &replies); err != nil {
			continue
		}
		var nested listingData
		if err := json.Unmarshal(replies.Data, &nested); err != nil {
			continue
		}
		flattenComments(nested.Children, out)
	}
}

// SubmitPost implements Client.
func (c *httpClient) SubmitPost(ctx context.Context, forum, title, body, flairID string) (*Post, error) {
	form := url.Values{}
	form.Set("sr", forum)
	form.Set("kind", "self")
	form.Set("title", title)
	form.Set("text", body)
	form.Set("api_type", "json")
	if flairID != "" {
		form.Set("flair_id", flairID)
	}

	var result submitResponse
	if err := c.postForm(ctx, "/api/submit", form, &result); err != nil {
		return nil, err
	}
	if len(result.JSON.Errors) > 0 {
		return nil, fmt.Errorf("submit to r/%s rejected: %v", forum, result.JSON.Errors)
	}

	return &Post{
		ID:        result.JSON.Data.ID,
		Name:      result.JSON.Data.Name,
		Title:     title,
		SelfText:  body,
		Subreddit: forum,
		URL:       result.JSON.Data.URL,
		Permalink: result.JSON.Data.URL,
	}, nil
}

// ListFlairTemplates implements Client.
func (c *httpClient) ListFlairTemplates(ctx context.Context, forum string) ([]FlairTemplate, error) {
	var templates []FlairTemplate
	path := fmt.Sprintf("/r/%s/api/link_flair_v2", url.PathEscape(forum))
	if err := c.get(ctx, path, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}
