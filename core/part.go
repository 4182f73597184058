package core

import "encoding/json"

// Part represents a polymorphic segment of role-based content. Concrete part
// types implement the unexported isPart marker enabling a closed set.
type Part interface{ isPart() }

// TextPart is a plain text content segment.
type TextPart struct {
	Text     string         // Plain UTF-8 text
	Metadata map[string]any // Optional producer-provided metadata
}

// isPart implements the Part interface for TextPart.
func (TextPart) isPart() {}

// FunctionCall describes a tool/function invocation request surfaced by a
// model. Arguments carries the raw JSON argument payload exactly as the model
// produced it; decoding is deferred to the tool executor so that malformed
// payloads can be tolerated instead of failing the turn.
type FunctionCall struct {
	ID        string `json:"id,omitempty"`        // Optional stable id (providers without ids get one generated)
	Name      string `json:"name"`                // Tool / function name
	Arguments string `json:"arguments,omitempty"` // Serialized argument payload (JSON object)
}

// ArgumentsMap decodes the JSON argument payload into a map. Empty or
// malformed payloads yield an empty map rather than an error; the agent loop
// must always be able to continue the conversation.
func (fc FunctionCall) ArgumentsMap() map[string]any {
	args := map[string]any{}
	if fc.Arguments == "" {
		return args
	}
	if err := json.Unmarshal([]byte(fc.Arguments), &args); err != nil {
		return map[string]any{}
	}
	return args
}

// FunctionCallPart wraps a FunctionCall as a content part.
type FunctionCallPart struct {
	FunctionCall FunctionCall
	Metadata     map[string]any
}

// isPart implements the Part interface for FunctionCallPart.
func (FunctionCallPart) isPart() {}

// FunctionResponse describes the outcome of a function call. Response is
// always a terminal string value returned to the model; Error is populated
// for non-fatal failures so the model can react to the failure text itself.
type FunctionResponse struct {
	ID       string `json:"id,omitempty"`       // Matches originating FunctionCall ID
	Name     string `json:"name"`               // Function name
	Response string `json:"response,omitempty"` // Result text handed back to the model
	Error    string `json:"error,omitempty"`    // Populated on failure
}

// FunctionResponsePart wraps a FunctionResponse as a content part.
type FunctionResponsePart struct {
	FunctionResponse FunctionResponse
	Metadata         map[string]any
}

// isPart implements the Part interface for FunctionResponsePart.
func (FunctionResponsePart) isPart() {}

// Content holds role + ordered parts.
type Content struct {
	Role  string `json:"role,omitempty"` // Conversation role (user, assistant, tool, system,...)
	Parts []Part `json:"parts"`          // Ordered heterogeneous parts
}

// Text concatenates all text parts preserving order. Non-text parts are skipped.
func (c Content) Text() string {
	var out string
	for _, p := range c.Parts {
		if tp, ok := p.(TextPart); ok {
			out += tp.Text
		}
	}
	return out
}
