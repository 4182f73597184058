package agent

import (
	"github.com/hupe1980/searchagent/core"
	"github.com/hupe1980/searchagent/model"
)

// ExtractText pulls the best available answer text out of a model reply.
// Fallback strategies are applied in order:
//  1. the aggregate text of the first candidate
//  2. the first non-empty text part of any candidate, scanned in order
//
// Returns ("", false) when the reply carries no text at all (nil reply, no
// candidates, or function-call-only parts); callers substitute the
// placeholder answer in that case.
func ExtractText(resp *model.Response) (string, bool) {
	if resp == nil {
		return "", false
	}

	if len(resp.Candidates) > 0 {
		if text := resp.Candidates[0].Content.Text(); text != "" {
			return text, true
		}
	}

	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if tp, ok := p.(core.TextPart); ok && tp.Text != "" {
				return tp.Text, true
			}
		}
	}

	return "", false
}
