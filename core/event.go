package core

import (
	"time"

	"github.com/google/uuid"
)

// Event is a single conversation turn recorded in a Session transcript. After
// being appended it should be treated as immutable. It captures:
//   - Correlation (ID, Author)
//   - Conversational content (role-based Parts)
//   - High precision UTC timestamp
type Event struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
	Content   *Content  `json:"content,omitempty"`
}

// NewEvent creates a bare event authored by 'author'. Prefer the helper
// constructors for common semantic categories (user message, model turn,
// function response).
func NewEvent(author string) Event {
	return Event{
		ID:        NewID(),
		Author:    author,
		Timestamp: time.Now().UTC(),
	}
}

// NewUserMessageEvent creates a user-authored text message event.
func NewUserMessageEvent(message string) Event {
	e := NewEvent("user")
	e.Content = &Content{Role: "user", Parts: []Part{TextPart{Text: message}}}
	return e
}

// NewModelEvent records a model reply (text, function call request, or both)
// as an assistant turn.
func NewModelEvent(author string, content Content) Event {
	e := NewEvent(author)
	content.Role = "assistant"
	e.Content = &content
	return e
}

// NewFunctionResponseEvent records the completion result (or error) of a
// previously requested function call. If err is non-nil its message is copied
// into the response Error field; the result text is still handed back so the
// model can react to failure text itself.
func NewFunctionResponseEvent(author string, call FunctionCall, result string, err error) Event {
	e := NewEvent(author)
	fr := FunctionResponse{ID: call.ID, Name: call.Name, Response: result}
	if err != nil {
		fr.Error = err.Error()
	}
	e.Content = &Content{Role: "tool", Parts: []Part{FunctionResponsePart{FunctionResponse: fr}}}
	return e
}

// NewID generates a new unique identifier for events and function calls.
func NewID() string { return uuid.NewString() }

// GetFunctionCalls returns any FunctionCall parts contained within the event
// content preserving their original order.
func (e Event) GetFunctionCalls() []FunctionCall {
	if e.Content == nil {
		return nil
	}
	var calls []FunctionCall
	for _, p := range e.Content.Parts {
		if fc, ok := p.(FunctionCallPart); ok {
			calls = append(calls, fc.FunctionCall)
		}
	}
	return calls
}
