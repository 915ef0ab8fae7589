package agents

import "context"

// ModelClient defines the interface agents use to call a language model.
// It is the boundary between the application core and external AI/LLM
// services; the concrete implementation lives in internal/platform/gemini.
type ModelClient interface {
	// Generate sends the prompts to the model and returns the generated text.
	// systemPrompt sets the model's role and constraints; userPrompt carries
	// the actual request.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
