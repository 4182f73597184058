package core

import "time"

// PlaceholderAnswer is substituted whenever no usable answer text can be
// extracted from the final model reply.
const PlaceholderAnswer = "Agent completed processing"

// ToolCallRecord captures one tool invocation requested by the model during a
// run, with its decoded arguments.
type ToolCallRecord struct {
	Function  string         `json:"function"`
	Arguments map[string]any `json:"arguments"`
}

// RunRecord is the trace record of one full agent run. It is created at the
// start of a run, mutated only by the owning agent loop, and becomes
// read-only once the loop returns.
//
// Invariants maintained by the loop:
//   - 0 <= Iterations <= the configured maximum
//   - len(ToolCalls) <= Iterations
//   - FinalAnswer is always non-empty before the run returns, falling back to
//     PlaceholderAnswer on any internal failure.
type RunRecord struct {
	Query       string           `json:"query"`
	ToolCalls   []ToolCallRecord `json:"tool_calls"`
	Iterations  int              `json:"iterations"`
	FinalAnswer string           `json:"final_answer"`
	Started     time.Time        `json:"started"`
	Completed   time.Time        `json:"completed"`
}

// NewRunRecord starts the record for a single agent run.
func NewRunRecord(query string) *RunRecord {
	return &RunRecord{Query: query, ToolCalls: []ToolCallRecord{}, Started: time.Now().UTC()}
}

// AddToolCall records a tool invocation request in order.
func (r *RunRecord) AddToolCall(function string, args map[string]any) {
	r.ToolCalls = append(r.ToolCalls, ToolCallRecord{Function: function, Arguments: args})
}

// Finish stamps the completion time and applies the placeholder fallback if
// no answer was extracted.
func (r *RunRecord) Finish(answer string) {
	if answer == "" {
		answer = PlaceholderAnswer
	}
	r.FinalAnswer = answer
	r.Completed = time.Now().UTC()
}
