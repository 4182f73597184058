// Package agent implements the tool-using agent loop: it drives a model
// service round-trip by round-trip, dispatches requested tool calls through
// the executor, feeds results back into the transcript and decides when the
// run terminates.
package agent

import (
	"context"
	"fmt"

	"github.com/hupe1980/searchagent/core"
	"github.com/hupe1980/searchagent/logging"
	"github.com/hupe1980/searchagent/model"
	"github.com/hupe1980/searchagent/observability"
	"github.com/hupe1980/searchagent/tool"
)

// DefaultMaxIterations bounds the number of tool round-trips per run.
const DefaultMaxIterations = 5

// Options configures an Agent instance.
//
// Use functional options with New to override defaults.
type Options struct {
	Instruction   string
	MaxIterations int
	Logger        logging.Logger
	Tracer        *observability.Tracer
}

// Agent runs one bounded tool-calling loop per query against an injected
// model, tool registry and tracer. There is no hidden process-wide state; all
// collaborators are explicit, so independent queries can run concurrently on
// separate Agent.Run calls sharing only the read-only registry and the
// concurrency-safe tracer.
type Agent struct {
	name          string
	llm           model.Model
	registry      *tool.Registry
	executor      *tool.Executor
	tracer        *observability.Tracer
	logger        logging.Logger
	instruction   string
	maxIterations int
}

// New creates an agent with sensible defaults: a five round-trip budget, a
// no-op logger and a no-op tracer.
func New(name string, llm model.Model, registry *tool.Registry, optFns ...func(o *Options)) *Agent {
	opts := Options{
		Instruction:   fmt.Sprintf("You are %s, a helpful AI assistant.", name),
		MaxIterations: DefaultMaxIterations,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Tracer == nil {
		// No credentials: never exports, never fails.
		opts.Tracer, _ = observability.NewTracer(context.Background(), observability.Config{})
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}

	executor := tool.NewExecutor(registry, func(o *tool.ExecutorOptions) {
		o.Logger = opts.Logger
		o.Observer = opts.Tracer
	})

	return &Agent{
		name:          name,
		llm:           llm,
		registry:      registry,
		executor:      executor,
		tracer:        opts.Tracer,
		logger:        opts.Logger,
		instruction:   opts.Instruction,
		maxIterations: opts.MaxIterations,
	}
}

// Name returns the agent's display name.
func (a *Agent) Name() string { return a.name }

// Run executes the full agent loop for one query and returns its RunRecord.
// The record always carries a non-empty FinalAnswer, even when an error is
// returned; tool failures and malformed replies never abort the run, only a
// failing model call does.
func (a *Agent) Run(ctx context.Context, query string) (*core.RunRecord, error) {
	rec := core.NewRunRecord(query)
	sess := core.NewSession()
	sess.RecordUser(query)

	ctx, span := a.tracer.StartRun(ctx, "agent_run", query)
	manifest := a.registry.Definitions()

	a.logger.Info("agent.run.start", "agent", a.name, "query", query)

	resp, err := a.generate(ctx, sess, manifest)
	if err != nil {
		return a.fail(span, rec, err)
	}

	for rec.Iterations < a.maxIterations {
		call, ok := a.pendingFunctionCall(resp)
		if !ok {
			break
		}

		a.logger.Info("agent.tool_requested", "agent", a.name, "tool", call.Name, "iteration", rec.Iterations)
		rec.AddToolCall(call.Name, call.ArgumentsMap())
		rec.Iterations++

		result := a.executor.Execute(ctx, call)

		sess.RecordModel(a.name, resp.Candidates[0].Content)
		sess.RecordToolResult(a.name, call, result.Content, result.Err)

		resp, err = a.generate(ctx, sess, manifest)
		if err != nil {
			return a.fail(span, rec, err)
		}
	}

	answer, _ := ExtractText(resp)
	rec.Finish(answer)
	span.End(rec)

	a.logger.Info(
		"agent.run.complete",
		"agent", a.name,
		"iterations", rec.Iterations,
		"tool_calls", len(rec.ToolCalls),
	)

	return rec, nil
}

func (a *Agent) generate(ctx context.Context, sess *core.Session, manifest []model.ToolDefinition) (*model.Response, error) {
	return a.llm.Generate(ctx, model.Request{
		Instructions: a.instruction,
		Contents:     sess.Contents(),
		Tools:        manifest,
	})
}

// fail terminates a run whose model call errored. The record still gets the
// placeholder answer so downstream consumers never see an empty result.
func (a *Agent) fail(span *observability.RunSpan, rec *core.RunRecord, err error) (*core.RunRecord, error) {
	a.logger.Error("agent.run.model_error", "agent", a.name, "error", err.Error())
	rec.Finish("")
	span.RecordError(err)
	span.End(rec)
	return rec, fmt.Errorf("model call failed: %w", err)
}

// pendingFunctionCall inspects the first content part of the first candidate
// only; whether multiple simultaneous calls or candidates should ever occur
// is an open protocol question, so index 0 is taken deterministically. Any
// panic while inspecting a malformed reply is absorbed and treated as "no
// function call" so the loop falls through to answer extraction.
func (a *Agent) pendingFunctionCall(resp *model.Response) (call core.FunctionCall, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("agent.reply.inspect_panic", "agent", a.name, "recover", r)
			ok = false
		}
	}()

	if resp == nil || len(resp.Candidates) == 0 {
		return core.FunctionCall{}, false
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return core.FunctionCall{}, false
	}
	fc, isCall := parts[0].(core.FunctionCallPart)
	if !isCall {
		return core.FunctionCall{}, false
	}

	call = fc.FunctionCall
	if call.ID == "" {
		call.ID = core.NewID()
	}
	return call, true
}
