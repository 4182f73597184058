package search

import (
	"context"
	"fmt"

	"github.com/hupe1980/searchagent/core"
	"github.com/hupe1980/searchagent/internal/util"
	"github.com/hupe1980/searchagent/logging"
	"github.com/hupe1980/searchagent/model"
)

// ToolName is the identifier the model uses to request a web search.
const ToolName = "web_search"

// WebSearchToolOptions configures the web search tool.
type WebSearchToolOptions struct {
	Client *Client
	Logger logging.Logger
}

// WebSearchTool exposes web search to the model. Failures never escape as
// errors that would abort the agent loop:
//   - an empty search result triggers degraded-mode synthesis, asking the
//     fallback model to answer the query from its own knowledge
//   - a transport failure returns "Search failed: <detail>" as the result so
//     the model can react to the failure text itself
type WebSearchTool struct {
	client   *Client
	fallback model.Model
	logger   logging.Logger
}

// NewWebSearchTool builds the tool. fallback is consulted only when the
// search backend returns no usable content; it may be nil, in which case the
// degraded path reports a search failure instead.
func NewWebSearchTool(fallback model.Model, optFns ...func(o *WebSearchToolOptions)) *WebSearchTool {
	opts := WebSearchToolOptions{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Client == nil {
		opts.Client = NewClient()
	}
	return &WebSearchTool{client: opts.Client, fallback: fallback, logger: opts.Logger}
}

// Name implements tool.Tool.
func (t *WebSearchTool) Name() string { return ToolName }

// Description implements tool.Tool.
func (t *WebSearchTool) Description() string {
	return "Search the web for current information, news, facts, or real-time data"
}

// Parameters implements tool.Tool.
func (t *WebSearchTool) Parameters() map[string]any {
	return util.StringParameter("query", "The search query to find information", true)
}

// Call implements tool.Tool. A missing query argument defaults to the empty
// string rather than failing the call.
func (t *WebSearchTool) Call(ctx context.Context, args map[string]any) (string, error) {
	query, _ := args["query"].(string)
	t.logger.Info("search.execute", "query", query)

	answer, err := t.client.InstantAnswer(ctx, query)
	if err != nil {
		t.logger.Warn("search.failed", "query", query, "error", err.Error())
		return fmt.Sprintf("Search failed: %v", err), nil
	}

	if result := answer.Render(); result != "" {
		return result, nil
	}

	// No usable content from the search backend; synthesize from the model's
	// own knowledge instead of treating this as a hard failure.
	t.logger.Warn("search.empty_result", "query", query)
	return t.synthesize(ctx, query)
}

func (t *WebSearchTool) synthesize(ctx context.Context, query string) (string, error) {
	if t.fallback == nil {
		return fmt.Sprintf("Search failed: no results for %q and no fallback model configured", query), nil
	}

	prompt := fmt.Sprintf(
		"Please provide current information about: %s. If you don't have current information, say so.",
		query,
	)
	resp, err := t.fallback.Generate(ctx, model.Request{
		Contents: []core.Content{{Role: "user", Parts: []core.Part{core.TextPart{Text: prompt}}}},
	})
	if err != nil {
		t.logger.Warn("search.fallback_failed", "query", query, "error", err.Error())
		return fmt.Sprintf("Search failed: %v", err), nil
	}

	for _, cand := range resp.Candidates {
		if text := cand.Content.Text(); text != "" {
			return text, nil
		}
	}
	return fmt.Sprintf("Search failed: no results for %q", query), nil
}
