package tool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/searchagent/core"
	"github.com/hupe1980/searchagent/logging"
)

// ErrUnknownTool classifies a request for a tool name absent from the registry.
var ErrUnknownTool = errors.New("unknown tool")

// UnknownToolResult is the placeholder content returned to the model when it
// requests a tool that is not registered.
const UnknownToolResult = "Unknown tool"

// Result is the terminal outcome of a tool dispatch. Content is always set so
// the agent loop can continue the conversation; Err only classifies the
// failure and is never propagated as a hard error.
type Result struct {
	Content string
	Err     error
}

// Failed reports whether the dispatch was classified as a failure.
func (r Result) Failed() bool { return r.Err != nil }

// Observer receives one structured observation per tool dispatch (name,
// input, output, error level). Implementations must be safe for concurrent
// use; observation failures are the observer's problem and must never
// surface to the caller.
type Observer interface {
	Observation(ctx context.Context, name, input, output string, err error)
}

// ExecutorOptions configures an Executor.
type ExecutorOptions struct {
	Logger   logging.Logger
	Observer Observer
}

// Executor dispatches function call requests from the model to registered
// tools. It never returns an error to the agent loop: unknown tools, argument
// problems, tool errors and panics are all converted into a textual Result.
type Executor struct {
	registry *Registry
	logger   logging.Logger
	observer Observer
}

// NewExecutor constructs an Executor over the given registry.
func NewExecutor(registry *Registry, optFns ...func(o *ExecutorOptions)) *Executor {
	opts := ExecutorOptions{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Executor{registry: registry, logger: opts.Logger, observer: opts.Observer}
}

// Execute looks up and invokes the tool named by the function call. The
// arguments payload is decoded leniently (missing or malformed JSON becomes
// an empty argument map).
func (e *Executor) Execute(ctx context.Context, call core.FunctionCall) Result {
	start := time.Now()
	e.logger.Debug("tool.call.start", "tool", call.Name, "fc_id", call.ID)

	res := e.dispatch(ctx, call)

	e.logger.Info(
		"tool.call.complete",
		"tool", call.Name,
		"duration_ms", time.Since(start).Milliseconds(),
		"error", res.Failed(),
	)
	e.observe(ctx, call, res)

	return res
}

func (e *Executor) dispatch(ctx context.Context, call core.FunctionCall) (res Result) {
	// A panicking tool must not abort the run.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("tool.call.panic", "tool", call.Name, "recover", r)
			res = Result{Content: fmt.Sprintf("tool %s panicked", call.Name), Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	impl, ok := e.registry.Get(call.Name)
	if !ok {
		e.logger.Warn("tool.call.unknown", "tool", call.Name)
		return Result{Content: UnknownToolResult, Err: ErrUnknownTool}
	}

	content, err := impl.Call(ctx, call.ArgumentsMap())
	if err != nil {
		e.logger.Error("tool.call.error", "tool", call.Name, "error", err.Error())
		if content == "" {
			content = err.Error()
		}
		return Result{Content: content, Err: err}
	}

	return Result{Content: content}
}

// observe emits the per-dispatch observation. Observer failures (including
// panics) are suppressed; observation must never fail the tool call.
func (e *Executor) observe(ctx context.Context, call core.FunctionCall, res Result) {
	if e.observer == nil {
		return
	}
	defer func() { _ = recover() }()
	e.observer.Observation(ctx, call.Name, call.Arguments, res.Content, res.Err)
}
