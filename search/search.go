// Package search provides the web search capability: a DuckDuckGo Instant
// Answer API client and the web_search tool built on top of it.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the DuckDuckGo Instant Answer API endpoint.
const DefaultBaseURL = "https://api.duckduckgo.com/"

// DefaultTimeout bounds one search call end to end.
const DefaultTimeout = 10 * time.Second

// RelatedTopic is one entry of the RelatedTopics list. Nested topic groups
// carry no Text and are skipped when rendering.
type RelatedTopic struct {
	Text string `json:"Text"`
}

// InstantAnswer is the subset of the Instant Answer API response the agent
// consumes. Empty or absent fields are common and must be tolerated.
type InstantAnswer struct {
	AbstractText  string         `json:"AbstractText"`
	Answer        string         `json:"Answer"`
	RelatedTopics []RelatedTopic `json:"RelatedTopics"`
}

// maxRelatedTopics caps how many related topic snippets are rendered.
const maxRelatedTopics = 3

// Render formats the answer into the plain text block handed back to the
// model. Returns "" when the response carried no usable content.
func (a *InstantAnswer) Render() string {
	var sections []string

	if a.AbstractText != "" {
		sections = append(sections, "Summary: "+a.AbstractText)
	}
	if a.Answer != "" {
		sections = append(sections, "Answer: "+a.Answer)
	}

	var topics []string
	for _, topic := range a.RelatedTopics {
		if topic.Text == "" {
			continue
		}
		topics = append(topics, topic.Text)
		if len(topics) == maxRelatedTopics {
			break
		}
	}
	if len(topics) > 0 {
		sections = append(sections, "Related: "+strings.Join(topics, ", "))
	}

	return strings.Join(sections, "\n")
}

// ClientOptions configures the search client.
type ClientOptions struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client (tests). Timeout is applied to
	// the default client only.
	HTTPClient *http.Client
}

// Client queries the DuckDuckGo Instant Answer API. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a search client with the fixed bounded timeout.
func NewClient(optFns ...func(o *ClientOptions)) *Client {
	opts := ClientOptions{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{baseURL: opts.BaseURL, http: httpClient}
}

// InstantAnswer issues one search query. HTML is suppressed and disambiguation
// pages are skipped so the response stays machine-consumable.
func (c *Client) InstantAnswer(ctx context.Context, query string) (*InstantAnswer, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var answer InstantAnswer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &answer, nil
}
