package model

import (
	"context"
	"fmt"

	"github.com/hupe1980/searchagent/core"
)

// ToolDefinition declaratively exposes a callable function to the model.
type ToolDefinition struct {
	Type     string             `json:"type"` // "function"
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes an individual function (tool) exposed to the model.
// Parameters is a JSON Schema object (draft agnostic, minimal subset expected).
type FunctionDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"` // JSON Schema
}

// Request captures the normalized model input produced by the agent loop. The
// full transcript plus the tool manifest is resent on every round-trip; the
// model service is treated as stateless per call.
type Request struct {
	Instructions string           `json:"instructions"` // System instructions for the model
	Contents     []core.Content   `json:"contents"`     // Full ordered transcript
	Tools        []ToolDefinition `json:"tools,omitempty"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Candidate is one alternative reply produced by the model service. The agent
// loop deterministically inspects index 0 only; further candidates are kept
// for best-effort answer extraction.
type Candidate struct {
	Content      core.Content `json:"content"`
	FinishReason string       `json:"finish_reason"` // "stop", "length", "tool_calls", etc.
}

// Response is a complete (non-streaming) model reply.
type Response struct {
	ID         string      `json:"id"`
	Candidates []Candidate `json:"candidates"`
	Usage      *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "gemini", "openai", "anthropic", "mock", etc.
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface required by the agent loop to drive
// generation. Generate blocks until the provider returns a full reply; it is
// the loop's only model-side suspension point.
type Model interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples. It
// replays enqueued responses in FIFO order; once the script is exhausted it
// echoes a canned completion for the last user text.
type MockModel struct {
	info      Info
	script    []*Response
	responses map[string]string
	requests  []Request
}

// NewMockModel constructs a MockModel with basic tool support enabled.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{
		info: Info{
			Name:          name,
			Provider:      provider,
			SupportsTools: true,
		},
		responses: make(map[string]string),
	}
}

// Enqueue appends a scripted response replayed by the next Generate call.
func (m *MockModel) Enqueue(resp *Response) { m.script = append(m.script, resp) }

// EnqueueText is shorthand for a single-candidate plain text reply.
func (m *MockModel) EnqueueText(text string) {
	m.Enqueue(&Response{Candidates: []Candidate{{
		Content:      core.Content{Role: "assistant", Parts: []core.Part{core.TextPart{Text: text}}},
		FinishReason: "stop",
	}}})
}

// EnqueueFunctionCall is shorthand for a single-candidate tool request reply.
func (m *MockModel) EnqueueFunctionCall(name, args string) {
	m.Enqueue(&Response{Candidates: []Candidate{{
		Content: core.Content{Role: "assistant", Parts: []core.Part{
			core.FunctionCallPart{FunctionCall: core.FunctionCall{ID: core.NewID(), Name: name, Arguments: args}},
		}},
		FinishReason: "tool_calls",
	}}})
}

// AddResponse registers a deterministic canned completion for an input prompt,
// used once the script is exhausted.
func (m *MockModel) AddResponse(prompt, response string) { m.responses[prompt] = response }

// Requests returns the requests seen so far, in order.
func (m *MockModel) Requests() []Request { return m.requests }

// Generate implements Model; replays the script, then canned completions.
func (m *MockModel) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.requests = append(m.requests, req)

	if len(m.script) > 0 {
		resp := m.script[0]
		m.script = m.script[1:]
		return resp, nil
	}

	var inputText string
	if len(req.Contents) > 0 {
		inputText = req.Contents[len(req.Contents)-1].Text()
	}
	full := m.responses[inputText]
	if full == "" {
		full = fmt.Sprintf("Mock response to: %s", inputText)
	}
	return &Response{Candidates: []Candidate{{
		Content:      core.Content{Role: "assistant", Parts: []core.Part{core.TextPart{Text: full}}},
		FinishReason: "stop",
	}}}, nil
}

// Info implements Model interface.
func (m *MockModel) Info() Info { return m.info }
