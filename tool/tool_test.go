package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/searchagent/internal/util"
	"github.com/stretchr/testify/assert"
)

// -------------------- Schema & Validation Tests --------------------

func TestStringParameter(t *testing.T) {
	schema := util.StringParameter("query", "The search query", true)
	props, ok := schema["properties"].(map[string]any)
	assert.True(t, ok)
	assert.Contains(t, props, "query")
	assert.Equal(t, []string{"query"}, schema["required"])
}

func TestValidateParameters(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x": map[string]any{"type": "integer"},
		},
		// Use []any to mirror possible JSON decoded schema shape
		"required": []any{"x"},
	}

	// Success
	err := util.ValidateParameters(map[string]any{"x": 5}, schema)
	assert.NoError(t, err)

	// Missing required
	err = util.ValidateParameters(map[string]any{}, schema)
	assert.Error(t, err)
	if vErr, ok := err.(*ValidationError); ok {
		assert.Equal(t, "x", vErr.Field)
	} else {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	// Wrong type
	err = util.ValidateParameters(map[string]any{"x": "not-int"}, schema)
	assert.Error(t, err)
	if vErr, ok := err.(*ValidationError); ok {
		assert.Contains(t, vErr.Message, "expected type integer")
	} else {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	// Extra fields are allowed
	err = util.ValidateParameters(map[string]any{"x": 1, "extra": true}, schema)
	assert.NoError(t, err)
}

// -------------------- FunctionTool Tests --------------------

func TestFunctionTool_Success(t *testing.T) {
	echoTool := NewFunctionTool(
		"echo", "Echo text",
		util.StringParameter("text", "Text to echo", true),
		func(_ context.Context, args map[string]any) (string, error) {
			text, _ := args["text"].(string)
			return text, nil
		},
	)

	result, err := echoTool.Call(context.Background(), map[string]any{"text": "hello"})
	assert.NoError(t, err)
	assert.Equal(t, "hello", result)
}

func TestFunctionTool_ValidationError(t *testing.T) {
	tTool := NewFunctionTool(
		"test", "Test",
		util.StringParameter("a", "", true),
		func(_ context.Context, _ map[string]any) (string, error) { return "", nil },
	)
	_, err := tTool.Call(context.Background(), map[string]any{})
	assert.Error(t, err)
	toolErr, ok := err.(*ToolError)
	assert.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)
}

func TestFunctionTool_ExecutionError(t *testing.T) {
	execTool := NewFunctionTool(
		"fail", "Fails",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(_ context.Context, _ map[string]any) (string, error) {
			return "", errors.New("boom")
		},
	)
	_, err := execTool.Call(context.Background(), map[string]any{})
	assert.Error(t, err)
	toolErr, ok := err.(*ToolError)
	assert.True(t, ok)
	assert.Equal(t, "EXECUTION_ERROR", toolErr.Code)
}

// -------------------- Registry Tests --------------------

func staticTool(name string) Tool {
	return NewFunctionTool(name, "static", map[string]any{"type": "object", "properties": map[string]any{}},
		func(_ context.Context, _ map[string]any) (string, error) { return name, nil })
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	reg, err := NewRegistry(staticTool("web_search"))
	assert.NoError(t, err)

	err = reg.Register(staticTool("web_search"))
	assert.Error(t, err)
	var dup *DuplicateToolError
	assert.True(t, errors.As(err, &dup))
	assert.Equal(t, "web_search", dup.Name)
}

func TestRegistry_DefinitionsIdempotent(t *testing.T) {
	reg, err := NewRegistry(staticTool("a"), staticTool("b"))
	assert.NoError(t, err)

	first := reg.Definitions()
	second := reg.Definitions()
	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
	assert.Equal(t, "a", first[0].Function.Name)
	assert.Equal(t, "function", first[0].Type)
	assert.Equal(t, []string{"a", "b"}, reg.Names())
}

// -------------------- ToolError Formatting --------------------

func TestToolErrorFormatting(t *testing.T) {
	err := NewToolError("demo", "something failed", "E123")
	assert.Contains(t, err.Error(), "E123")
	assert.Contains(t, err.Error(), "demo")
}
