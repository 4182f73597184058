// Package model defines the vendor-neutral request/response structures and
// the Model interface the agent loop drives. Provider subpackages (gemini,
// openai, anthropic) adapt these structures to the respective SDKs; the loop
// never needs per-provider branching.
package model
