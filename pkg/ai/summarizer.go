package ai

import (
	"context"
	"encoding/json"
	"log"
	"strings"
)

const summarizerPrompt = `You are MeetingMate, an expert note-taker.
Return ONLY valid JSON with:
  "summary": 2-3 lines summarising the meeting, and
  "tasks":   an array of concise action items (max 10, each <= 15 words, imperative verb first).
Do not output any additional keys or formatting.`

// Summarizer turns a transcript into a short summary plus action items.
// It never returns an error: any failure degrades to a deterministic
// truncated-transcript fallback that callers rely on.
type Summarizer struct {
	client GenerationClient
}

func NewSummarizer(client GenerationClient) *Summarizer {
	return &Summarizer{client: client}
}

// Summarize summarizes a meeting transcript. Non-throwing by contract.
func (s *Summarizer) Summarize(ctx context.Context, transcript string) SummaryResult {
	if s.client == nil {
		return fallbackSummary(transcript)
	}

	content, err := s.client.Generate(ctx, summarizerPrompt+"\n\n"+transcript, GenerationOptions{
		Temperature:     0.2,
		MaxOutputTokens: 512,
	})
	if err != nil {
		log.Printf("[Summarizer] generation failed: %v", err)
		return fallbackSummary(transcript)
	}

	var result SummaryResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &result); err != nil {
		log.Printf("[Summarizer] unparsable response: %v", err)
		return fallbackSummary(transcript)
	}
	if result.Tasks == nil {
		result.Tasks = []string{}
	}

	return result
}

// fallbackSummary is the degraded result when the generation service is
// unavailable: the first 140 characters of the transcript, no tasks.
func fallbackSummary(transcript string) SummaryResult {
	runes := []rune(transcript)
	if len(runes) > 140 {
		runes = runes[:140]
	}
	return SummaryResult{
		Summary: string(runes) + "...",
		Tasks:   []string{},
	}
}
