package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_RecordsTurnsInOrder(t *testing.T) {
	s := NewSession()
	s.RecordUser("What is 10 + 25?")
	s.RecordModel("agent", Content{Parts: []Part{
		FunctionCallPart{FunctionCall: FunctionCall{ID: "fc1", Name: "web_search", Arguments: `{"query":"x"}`}},
	}})
	s.RecordToolResult("agent", FunctionCall{ID: "fc1", Name: "web_search"}, "result text", nil)

	events := s.GetEvents()
	assert.Len(t, events, 3)
	assert.Equal(t, "user", events[0].Content.Role)
	assert.Equal(t, "assistant", events[1].Content.Role)
	assert.Equal(t, "tool", events[2].Content.Role)

	calls := events[1].GetFunctionCalls()
	assert.Len(t, calls, 1)
	assert.Equal(t, "web_search", calls[0].Name)
}

func TestSession_ContentsMirrorsTranscript(t *testing.T) {
	s := NewSession()
	s.RecordUser("hello")
	s.RecordModel("agent", Content{Parts: []Part{TextPart{Text: "hi"}}})

	contents := s.Contents()
	assert.Len(t, contents, 2)
	assert.Equal(t, "hello", contents[0].Text())
	assert.Equal(t, "hi", contents[1].Text())
}

func TestSession_GetEventsReturnsCopy(t *testing.T) {
	s := NewSession()
	s.RecordUser("a")
	events := s.GetEvents()
	events[0].Author = "mutated"
	assert.Equal(t, "user", s.Events[0].Author)
}

func TestFunctionResponseEvent_CarriesError(t *testing.T) {
	ev := NewFunctionResponseEvent("agent", FunctionCall{ID: "fc1", Name: "web_search"}, "Search failed: boom", errors.New("boom"))
	fr, ok := ev.Content.Parts[0].(FunctionResponsePart)
	assert.True(t, ok)
	assert.Equal(t, "boom", fr.FunctionResponse.Error)
	assert.Equal(t, "Search failed: boom", fr.FunctionResponse.Response)
}

func TestFunctionCall_ArgumentsMap(t *testing.T) {
	fc := FunctionCall{Arguments: `{"query":"latest news"}`}
	assert.Equal(t, map[string]any{"query": "latest news"}, fc.ArgumentsMap())

	// Empty and malformed payloads are tolerated.
	assert.Empty(t, FunctionCall{}.ArgumentsMap())
	assert.Empty(t, FunctionCall{Arguments: "{not json"}.ArgumentsMap())
}

func TestRunRecord_FinishFallsBackToPlaceholder(t *testing.T) {
	rec := NewRunRecord("q")
	rec.Finish("")
	assert.Equal(t, PlaceholderAnswer, rec.FinalAnswer)
	assert.False(t, rec.Completed.IsZero())

	rec2 := NewRunRecord("q")
	rec2.Finish("35")
	assert.Equal(t, "35", rec2.FinalAnswer)
}
