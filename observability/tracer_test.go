package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/searchagent/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTracer_NoCredentialsIsNoOp(t *testing.T) {
	tr, err := NewTracer(context.Background(), Config{})
	require.NoError(t, err)

	// All operations must be safe on the no-op tracer.
	ctx, run := tr.StartRun(context.Background(), "agent_run", "query")
	tr.Observation(ctx, "web_search", "input", "output", nil)
	tr.Observation(ctx, "web_search", "input", "Search failed: boom", errors.New("boom"))
	run.RecordError(errors.New("boom"))

	rec := core.NewRunRecord("query")
	rec.AddToolCall("web_search", map[string]any{"query": "x"})
	rec.Iterations = 1
	rec.Finish("answer")
	run.End(rec)

	assert.NoError(t, tr.Flush(context.Background()))
	assert.NoError(t, tr.Shutdown(context.Background()))
}

func TestNewTracer_WithCredentials(t *testing.T) {
	tr, err := NewTracer(context.Background(), Config{
		PublicKey: "pk-lf-test",
		SecretKey: "sk-lf-test",
		Host:      "http://127.0.0.1:0", // never contacted: batcher only exports on flush
	})
	require.NoError(t, err)
	require.NotNil(t, tr.provider)

	ctx, run := tr.StartRun(context.Background(), "agent_run", "query")
	tr.Observation(ctx, "web_search", "in", "out", nil)
	run.End(core.NewRunRecord("query"))

	// Shutdown attempts a flush against the unreachable endpoint; the error
	// (if any) is the exporter's, not a panic.
	_ = tr.Shutdown(context.Background())
}
