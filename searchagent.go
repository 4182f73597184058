// Package searchagent provides a high-level façade over the agent loop, the
// web_search tool and trace delivery, enabling one-call construction of a
// working search agent. Most applications interact with this package by:
//  1. Creating a SearchAgent via New() with a model implementation
//  2. Calling Ask() once per query
//
// The façade delegates the loop itself to the agent package while keeping
// setup concise. All defaults are safe for local development; production
// deployments typically supply a structured logger and Langfuse credentials.
package searchagent

import (
	"context"

	"github.com/hupe1980/searchagent/agent"
	"github.com/hupe1980/searchagent/core"
	"github.com/hupe1980/searchagent/logging"
	"github.com/hupe1980/searchagent/model"
	"github.com/hupe1980/searchagent/observability"
	"github.com/hupe1980/searchagent/search"
	"github.com/hupe1980/searchagent/tool"
)

// DefaultAgentName identifies the agent in logs and traces.
const DefaultAgentName = "search_agent"

// Options configures the SearchAgent instance.
type Options struct {
	// Name identifies the agent in logs, traces and transcript turns.
	Name string

	// MaxIterations bounds tool round-trips per query (defaults to 5).
	MaxIterations int

	// SearchClient overrides the DuckDuckGo client used by the web_search tool.
	SearchClient *search.Client

	// ExtraTools are registered alongside web_search.
	ExtraTools []tool.Tool

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// Tracer delivers run traces (defaults to a no-op tracer if nil)
	Tracer *observability.Tracer
}

// SearchAgent is the high-level façade aggregating the agent loop and its
// default toolset.
type SearchAgent struct {
	agent    *agent.Agent
	registry *tool.Registry
}

// New creates a SearchAgent around llm. The web_search tool is always
// registered; llm doubles as its degraded-mode fallback when the search
// backend returns no usable content.
func New(llm model.Model, optFns ...func(o *Options)) (*SearchAgent, error) {
	opts := Options{
		Name:          DefaultAgentName,
		MaxIterations: agent.DefaultMaxIterations,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	webSearch := search.NewWebSearchTool(llm, func(o *search.WebSearchToolOptions) {
		o.Logger = opts.Logger
		if opts.SearchClient != nil {
			o.Client = opts.SearchClient
		}
	})

	tools := append([]tool.Tool{webSearch}, opts.ExtraTools...)
	registry, err := tool.NewRegistry(tools...)
	if err != nil {
		return nil, err
	}

	a := agent.New(opts.Name, llm, registry, func(o *agent.Options) {
		o.MaxIterations = opts.MaxIterations
		o.Logger = opts.Logger
		o.Tracer = opts.Tracer
	})

	return &SearchAgent{agent: a, registry: registry}, nil
}

// Ask runs the full agent loop for one query. See agent.Agent.Run for the
// error contract; the returned record always carries a final answer.
func (s *SearchAgent) Ask(ctx context.Context, query string) (*core.RunRecord, error) {
	return s.agent.Run(ctx, query)
}

// Tools returns the names of all registered tools.
func (s *SearchAgent) Tools() []string { return s.registry.Names() }
