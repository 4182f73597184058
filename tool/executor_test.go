package tool

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hupe1980/searchagent/core"
	"github.com/hupe1980/searchagent/internal/util"
	"github.com/stretchr/testify/assert"
)

type recordingObserver struct {
	mu      sync.Mutex
	entries []string
	errs    []error
}

func (o *recordingObserver) Observation(_ context.Context, name, _, output string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries = append(o.entries, name+":"+output)
	o.errs = append(o.errs, err)
}

type panickyObserver struct{}

func (panickyObserver) Observation(context.Context, string, string, string, error) {
	panic("observer down")
}

func newTestExecutor(t *testing.T, obs Observer, tools ...Tool) *Executor {
	t.Helper()
	reg, err := NewRegistry(tools...)
	assert.NoError(t, err)
	return NewExecutor(reg, func(o *ExecutorOptions) { o.Observer = obs })
}

func TestExecutor_UnknownTool(t *testing.T) {
	exec := newTestExecutor(t, nil)

	res := exec.Execute(context.Background(), core.FunctionCall{ID: "fc1", Name: "fly_to_moon"})
	assert.Equal(t, UnknownToolResult, res.Content)
	assert.True(t, res.Failed())
	assert.ErrorIs(t, res.Err, ErrUnknownTool)
}

func TestExecutor_Success(t *testing.T) {
	obs := &recordingObserver{}
	echo := NewFunctionTool("echo", "Echo", util.StringParameter("text", "", false),
		func(_ context.Context, args map[string]any) (string, error) {
			text, _ := args["text"].(string)
			return "echo: " + text, nil
		})
	exec := newTestExecutor(t, obs, echo)

	res := exec.Execute(context.Background(), core.FunctionCall{ID: "fc1", Name: "echo", Arguments: `{"text":"hi"}`})
	assert.False(t, res.Failed())
	assert.Equal(t, "echo: hi", res.Content)
	assert.Equal(t, []string{"echo:echo: hi"}, obs.entries)
	assert.NoError(t, obs.errs[0])
}

func TestExecutor_MalformedArgumentsTolerated(t *testing.T) {
	var seen map[string]any
	echo := NewFunctionTool("echo", "Echo", map[string]any{"type": "object", "properties": map[string]any{}},
		func(_ context.Context, args map[string]any) (string, error) {
			seen = args
			return "ok", nil
		})
	exec := newTestExecutor(t, nil, echo)

	res := exec.Execute(context.Background(), core.FunctionCall{Name: "echo", Arguments: "{broken"})
	assert.False(t, res.Failed())
	assert.Empty(t, seen)
}

func TestExecutor_ToolErrorBecomesResultText(t *testing.T) {
	failing := NewFunctionTool("fail", "Fails", map[string]any{"type": "object", "properties": map[string]any{}},
		func(_ context.Context, _ map[string]any) (string, error) {
			return "", errors.New("backend unreachable")
		})
	exec := newTestExecutor(t, nil, failing)

	res := exec.Execute(context.Background(), core.FunctionCall{Name: "fail"})
	assert.True(t, res.Failed())
	assert.Contains(t, res.Content, "backend unreachable")
}

func TestExecutor_PanicRecovered(t *testing.T) {
	boom := NewFunctionTool("boom", "Panics", map[string]any{"type": "object", "properties": map[string]any{}},
		func(_ context.Context, _ map[string]any) (string, error) { panic("kaboom") })
	exec := newTestExecutor(t, nil, boom)

	res := exec.Execute(context.Background(), core.FunctionCall{Name: "boom"})
	assert.True(t, res.Failed())
	assert.NotEmpty(t, res.Content)
}

func TestExecutor_ObserverFailureSuppressed(t *testing.T) {
	echo := NewFunctionTool("echo", "Echo", map[string]any{"type": "object", "properties": map[string]any{}},
		func(_ context.Context, _ map[string]any) (string, error) { return "ok", nil })
	exec := newTestExecutor(t, panickyObserver{}, echo)

	res := exec.Execute(context.Background(), core.FunctionCall{Name: "echo"})
	assert.False(t, res.Failed())
	assert.Equal(t, "ok", res.Content)
}
