package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/hupe1980/searchagent/core"
	"github.com/hupe1980/searchagent/internal/util"
	"github.com/hupe1980/searchagent/model"
)

func TestBuildContents(t *testing.T) {
	contents := buildContents([]core.Content{
		{Role: "system", Parts: []core.Part{core.TextPart{Text: "ignored"}}},
		{Role: "user", Parts: []core.Part{core.TextPart{Text: "What is the capital of France?"}}},
		{Role: "assistant", Parts: []core.Part{
			core.FunctionCallPart{FunctionCall: core.FunctionCall{
				ID: "fc-1", Name: "web_search", Arguments: `{"query":"capital of france"}`,
			}},
		}},
		{Role: "tool", Parts: []core.Part{
			core.FunctionResponsePart{FunctionResponse: core.FunctionResponse{
				ID: "fc-1", Name: "web_search", Response: "Paris",
			}},
		}},
	})

	require.Len(t, contents, 3)

	assert.Equal(t, genai.RoleUser, contents[0].Role)
	assert.Equal(t, "What is the capital of France?", contents[0].Parts[0].Text)

	assert.Equal(t, genai.RoleModel, contents[1].Role)
	require.NotNil(t, contents[1].Parts[0].FunctionCall)
	assert.Equal(t, "web_search", contents[1].Parts[0].FunctionCall.Name)
	assert.Equal(t, map[string]any{"query": "capital of france"}, contents[1].Parts[0].FunctionCall.Args)

	// Tool results travel on the user side.
	assert.Equal(t, genai.RoleUser, contents[2].Role)
	require.NotNil(t, contents[2].Parts[0].FunctionResponse)
	assert.Equal(t, map[string]any{"result": "Paris"}, contents[2].Parts[0].FunctionResponse.Response)
}

func TestBuildContents_FailedToolResultCarriesError(t *testing.T) {
	contents := buildContents([]core.Content{
		{Role: "tool", Parts: []core.Part{
			core.FunctionResponsePart{FunctionResponse: core.FunctionResponse{
				ID: "fc-1", Name: "web_search", Response: "Unknown tool", Error: "unknown tool",
			}},
		}},
	})

	require.Len(t, contents, 1)
	assert.Equal(t, map[string]any{
		"result": "Unknown tool",
		"error":  "unknown tool",
	}, contents[0].Parts[0].FunctionResponse.Response)
}

func TestBuildTools(t *testing.T) {
	tools := buildTools([]model.ToolDefinition{{
		Type: "function",
		Function: model.FunctionDefinition{
			Name:        "web_search",
			Description: "Search the web",
			Parameters:  util.StringParameter("query", "The search query", true),
		},
	}})

	require.Len(t, tools, 1)
	require.Len(t, tools[0].FunctionDeclarations, 1)

	decl := tools[0].FunctionDeclarations[0]
	assert.Equal(t, "web_search", decl.Name)
	require.NotNil(t, decl.Parameters)
	assert.Equal(t, genai.TypeObject, decl.Parameters.Type)
	require.Contains(t, decl.Parameters.Properties, "query")
	assert.Equal(t, genai.TypeString, decl.Parameters.Properties["query"].Type)
	assert.Equal(t, []string{"query"}, decl.Parameters.Required)
}

func TestToGeminiSchema_NestedArrays(t *testing.T) {
	schema := toGeminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "enum": []any{"a", "b"}},
			},
		},
		"required": []any{"tags"},
	})

	require.NotNil(t, schema)
	assert.Equal(t, genai.TypeObject, schema.Type)
	require.Contains(t, schema.Properties, "tags")
	tags := schema.Properties["tags"]
	assert.Equal(t, genai.TypeArray, tags.Type)
	require.NotNil(t, tags.Items)
	assert.Equal(t, []string{"a", "b"}, tags.Items.Enum)
	assert.Equal(t, []string{"tags"}, schema.Required)
}
