package searchagent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/searchagent/model"
)

func TestNew_RegistersWebSearch(t *testing.T) {
	sa, err := New(model.NewMockModel("mock", "mock"))
	require.NoError(t, err)
	assert.Equal(t, []string{"web_search"}, sa.Tools())
}

func TestAsk_DirectAnswer(t *testing.T) {
	llm := model.NewMockModel("mock", "mock")
	llm.EnqueueText("35")

	sa, err := New(llm)
	require.NoError(t, err)

	rec, err := sa.Ask(context.Background(), "What is 10 + 25?")
	require.NoError(t, err)
	assert.Equal(t, "35", rec.FinalAnswer)
	assert.Equal(t, 0, rec.Iterations)
}
