package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractParsesArray(t *testing.T) {
	client := &stubClient{response: `[
		{"description": "Send the launch email", "assignee": "me", "due_date": "2026-09-01", "priority": "high", "context": "launch prep"},
		{"description": "Update the changelog", "assignee": null, "due_date": null, "priority": "low", "context": ""}
	]`}
	e := NewExtractor(client)

	tasks := e.Extract(context.Background(), "transcript")

	require.Len(t, tasks, 2)
	assert.Equal(t, "Send the launch email", tasks[0].Description)
	assert.Equal(t, "2026-09-01", tasks[0].DueDate)
	assert.Equal(t, "high", tasks[0].Priority)
	assert.Empty(t, tasks[1].DueDate)
}

func TestExtractStripsCodeFences(t *testing.T) {
	client := &stubClient{response: "```json\n[{\"description\": \"Book the venue\", \"priority\": \"medium\"}]\n```"}
	e := NewExtractor(client)

	tasks := e.Extract(context.Background(), "transcript")

	require.Len(t, tasks, 1)
	assert.Equal(t, "Book the venue", tasks[0].Description)
}

func TestExtractEmptyOnTransportError(t *testing.T) {
	client := &stubClient{err: errors.New("connection refused")}
	e := NewExtractor(client)

	tasks := e.Extract(context.Background(), "transcript")

	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestExtractEmptyOnGarbage(t *testing.T) {
	client := &stubClient{response: "no tasks found in this meeting"}
	e := NewExtractor(client)

	tasks := e.Extract(context.Background(), "transcript")

	assert.Empty(t, tasks)
}

func TestExtractDefaultsPriority(t *testing.T) {
	client := &stubClient{response: `[{"description": "Do the thing", "priority": "urgent"}]`}
	e := NewExtractor(client)

	tasks := e.Extract(context.Background(), "transcript")

	require.Len(t, tasks, 1)
	assert.Equal(t, "medium", tasks[0].Priority)
}

func TestExtractSkipsEmptyDescriptions(t *testing.T) {
	client := &stubClient{response: `[{"description": "", "priority": "high"}, {"description": "Real task", "priority": "low"}]`}
	e := NewExtractor(client)

	tasks := e.Extract(context.Background(), "transcript")

	require.Len(t, tasks, 1)
	assert.Equal(t, "Real task", tasks[0].Description)
}
