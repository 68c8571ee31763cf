package ai

import "context"

// GenerationClient is the narrow contract against the text-generation
// service: prompt in, raw completion text out. Implement this to swap
// providers (Gemini, Ollama, ...) without touching the adapters.
type GenerationClient interface {
	Generate(ctx context.Context, prompt string, opts GenerationOptions) (string, error)
}

// GenerationOptions are the per-call generation parameters.
type GenerationOptions struct {
	Temperature     float64
	MaxOutputTokens int
}

// SummaryResult is the bounded output of the summarization adapter.
type SummaryResult struct {
	Summary string   `json:"summary"`
	Tasks   []string `json:"tasks"`
}

// TaskExtraction represents one structured task extracted from a transcript.
type TaskExtraction struct {
	Description string `json:"description"`
	Assignee    string `json:"assignee,omitempty"`
	DueDate     string `json:"due_date,omitempty"` // YYYY-MM-DD, empty when unspecified
	Priority    string `json:"priority"`
	Context     string `json:"context,omitempty"`
}
