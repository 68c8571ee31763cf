package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubClient struct {
	response string
	err      error
}

func (s *stubClient) Generate(ctx context.Context, prompt string, opts GenerationOptions) (string, error) {
	return s.response, s.err
}

func TestSummarizeParsesJSON(t *testing.T) {
	client := &stubClient{response: `{"summary": "Team agreed on the Q3 roadmap.", "tasks": ["Ship beta by Friday", "Email the roadmap deck"]}`}
	s := NewSummarizer(client)

	result := s.Summarize(context.Background(), "long transcript here")

	assert.Equal(t, "Team agreed on the Q3 roadmap.", result.Summary)
	assert.Equal(t, []string{"Ship beta by Friday", "Email the roadmap deck"}, result.Tasks)
}

func TestSummarizeFallbackOnGenerationError(t *testing.T) {
	client := &stubClient{err: errors.New("503 service unavailable")}
	s := NewSummarizer(client)

	result := s.Summarize(context.Background(), "Discuss launch. ACTION: ship by Friday.")

	assert.Equal(t, "Discuss launch. ACTION: ship by Friday....", result.Summary)
	assert.Empty(t, result.Tasks)
	assert.NotNil(t, result.Tasks)
}

func TestSummarizeFallbackOnNonJSON(t *testing.T) {
	client := &stubClient{response: "Sorry, I can't summarize this."}
	s := NewSummarizer(client)

	result := s.Summarize(context.Background(), "abc")

	assert.Equal(t, "abc...", result.Summary)
	assert.Empty(t, result.Tasks)
}

func TestSummarizeFallbackTruncatesAt140(t *testing.T) {
	client := &stubClient{err: errors.New("down")}
	s := NewSummarizer(client)

	input := strings.Repeat("x", 300)
	result := s.Summarize(context.Background(), input)

	assert.Equal(t, strings.Repeat("x", 140)+"...", result.Summary)
}

func TestSummarizeFallbackEmptyInput(t *testing.T) {
	client := &stubClient{err: errors.New("down")}
	s := NewSummarizer(client)

	result := s.Summarize(context.Background(), "")

	assert.Equal(t, "...", result.Summary)
	assert.Empty(t, result.Tasks)
}

func TestSummarizeNilTasksBecomesEmpty(t *testing.T) {
	client := &stubClient{response: `{"summary": "Short sync.", "tasks": null}`}
	s := NewSummarizer(client)

	result := s.Summarize(context.Background(), "t")

	assert.NotNil(t, result.Tasks)
	assert.Empty(t, result.Tasks)
}
