// Command searchagent runs the web-search agent against one or more queries
// from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/searchagent/agent"
	"github.com/hupe1980/searchagent/config"
	"github.com/hupe1980/searchagent/logging"
	"github.com/hupe1980/searchagent/model/gemini"
	"github.com/hupe1980/searchagent/observability"
	"github.com/hupe1980/searchagent/search"
	"github.com/hupe1980/searchagent/tool"
)

// defaultQueries run when no queries are given on the command line.
var defaultQueries = []string{
	"What is 10 + 25?",
	"Name 3 popular car brands",
}

const flushTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath    string
		modelName     string
		maxIterations int
	)

	cmd := &cobra.Command{
		Use:   "searchagent [query ...]",
		Short: "Tool-using agent that answers queries with web search",
		Long: `searchagent sends each query to a Gemini model together with a web_search
tool backed by the DuckDuckGo Instant Answer API. The model decides per query
whether to answer directly or to search first; tool results are fed back until
the model produces a final answer or the iteration budget is reached.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if modelName != "" {
				cfg.Model = modelName
			}
			if maxIterations > 0 {
				cfg.MaxIterations = maxIterations
			}

			queries := args
			if len(queries) == 0 {
				queries = defaultQueries
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg, queries)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVarP(&modelName, "model", "m", "", "Gemini model id (overrides config)")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "tool round-trip budget per query (overrides config)")

	return cmd
}

func run(ctx context.Context, cfg *config.Config, queries []string) error {
	logger := logging.NewSlogLogger(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format, os.Stderr)

	tracerCfg := observability.Config{
		ServiceName: "searchagent",
		Environment: cfg.Langfuse.Environment,
	}
	if cfg.Langfuse.Enabled() {
		tracerCfg.PublicKey = cfg.Langfuse.PublicKey
		tracerCfg.SecretKey = cfg.Langfuse.SecretKey
		tracerCfg.Host = cfg.Langfuse.Host
	}
	tracer, err := observability.NewTracer(ctx, tracerCfg)
	if err != nil {
		return err
	}
	// Buffered spans must reach the backend even on early return.
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		defer cancel()
		if err := tracer.Flush(flushCtx); err != nil {
			logger.Warn("trace.flush_failed", "error", err.Error())
		}
		_ = tracer.Shutdown(flushCtx)
	}()

	llm, err := gemini.NewModel(ctx, cfg.GeminiAPIKey, func(o *gemini.Options) {
		o.Model = cfg.Model
	})
	if err != nil {
		return err
	}

	webSearch := search.NewWebSearchTool(llm, func(o *search.WebSearchToolOptions) {
		o.Logger = logger
	})
	registry, err := tool.NewRegistry(webSearch)
	if err != nil {
		return err
	}

	a := agent.New("search_agent", llm, registry, func(o *agent.Options) {
		o.MaxIterations = cfg.MaxIterations
		o.Logger = logger
		o.Tracer = tracer
	})

	// Queries run sequentially; a failing query is reported and the batch
	// continues, matching interactive expectations.
	for _, query := range queries {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rec, err := a.Run(ctx, query)
		if err != nil {
			logger.Error("query.failed", "query", query, "error", err.Error())
		}

		fmt.Printf("Query: %s\n", query)
		fmt.Printf("Answer: %s\n", rec.FinalAnswer)
		if len(rec.ToolCalls) > 0 {
			fmt.Printf("Tool calls: %d (iterations: %d)\n", len(rec.ToolCalls), rec.Iterations)
		}
		fmt.Println()
	}

	return nil
}
