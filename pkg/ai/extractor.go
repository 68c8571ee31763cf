package ai

import (
	"context"
	"encoding/json"
	"log"
	"strings"
)

const extractorPrompt = `You are an expert task extractor from meeting transcriptions.
Analyze the following meeting transcript and extract actionable tasks.

For each task, identify:
1. The task description
2. Who is assigned (if mentioned)
3. Due date/deadline (if mentioned)
4. Priority (high/medium/low based on context)

Return ONLY a valid JSON array with this structure:
[
  {
    "description": "Task description",
    "assignee": "person name or 'me' if assigned to the speaker",
    "due_date": "YYYY-MM-DD or null if not specified",
    "priority": "high/medium/low",
    "context": "Brief context from the conversation"
  }
]

If no tasks are found, return an empty array [].`

// Extractor pulls structured tasks out of a transcript. Like the
// Summarizer it never returns an error; parse or transport failures
// yield an empty list.
type Extractor struct {
	client GenerationClient
}

func NewExtractor(client GenerationClient) *Extractor {
	return &Extractor{client: client}
}

// Extract returns structured tasks found in the transcript, or an empty
// slice on any failure.
func (e *Extractor) Extract(ctx context.Context, transcript string) []TaskExtraction {
	if e.client == nil {
		return []TaskExtraction{}
	}

	content, err := e.client.Generate(ctx, extractorPrompt+"\n\nTranscript:\n"+transcript, GenerationOptions{
		Temperature:     0.1,
		MaxOutputTokens: 1024,
	})
	if err != nil {
		log.Printf("[Extractor] generation failed: %v", err)
		return []TaskExtraction{}
	}

	tasks, err := parseTaskJSON(content)
	if err != nil {
		log.Printf("[Extractor] unparsable response: %v", err)
		return []TaskExtraction{}
	}

	log.Printf("[Extractor] extracted %d tasks from transcript", len(tasks))
	return tasks
}

// parseTaskJSON handles markdown-fenced responses the model sometimes
// produces despite the prompt.
func parseTaskJSON(content string) ([]TaskExtraction, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.ReplaceAll(content, "```", "")
	} else if strings.HasPrefix(content, "```") {
		content = strings.ReplaceAll(content, "```", "")
	}
	content = strings.TrimSpace(content)

	var tasks []TaskExtraction
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, err
	}

	out := make([]TaskExtraction, 0, len(tasks))
	for _, t := range tasks {
		if t.Description == "" {
			continue
		}
		switch t.Priority {
		case "high", "medium", "low":
		default:
			t.Priority = "medium"
		}
		out = append(out, t)
	}
	return out, nil
}
