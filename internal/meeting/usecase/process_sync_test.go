package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingmate-backend/pkg/ai"
	"meetingmate-backend/pkg/gtasks"
)

func TestProcessCreatesTasksAndEvents(t *testing.T) {
	tasks := newFakeTasks(gtasks.TaskList{ID: "default", Title: "My Tasks"})
	calendar := &fakeCalendar{}
	extractor := &fakeExtractor{tasks: []ai.TaskExtraction{
		{Description: "Send the deck", DueDate: "2026-09-01", Context: "launch prep"},
		{Description: "Update the wiki"},
	}}
	p := newSyncProcessor(extractor, tasks, calendar)

	report := p.Process(context.Background(), cred, "transcript")

	assert.Equal(t, 2, report.TasksExtracted)
	assert.Equal(t, 2, report.TasksCreated)
	assert.Equal(t, 1, report.EventsCreated)
	assert.Empty(t, report.Errors)
	require.Len(t, report.ExtractedTasks, 2)

	created := tasks.tasksByList["default"]
	require.Len(t, created, 2)
	assert.Equal(t, "Send the deck", created[0].Title)
	assert.Equal(t, "From meeting: launch prep", created[0].Notes)
	assert.Equal(t, "2026-09-01T00:00:00Z", created[0].Due)
	assert.Equal(t, "From meeting: No context provided", created[1].Notes)
	assert.Empty(t, created[1].Due)

	assert.Equal(t, []string{"Send the deck"}, calendar.created)
}

func TestProcessNoTasksExtracted(t *testing.T) {
	p := newSyncProcessor(&fakeExtractor{}, newFakeTasks(), &fakeCalendar{})

	report := p.Process(context.Background(), cred, "transcript")

	assert.Equal(t, 0, report.TasksExtracted)
	assert.Equal(t, 0, report.TasksCreated)
	assert.NotNil(t, report.Errors)
	assert.NotNil(t, report.ExtractedTasks)
}

func TestProcessIsolatesTaskFailures(t *testing.T) {
	tasks := newFakeTasks(gtasks.TaskList{ID: "default", Title: "My Tasks"})
	tasks.createTaskErr["Broken task"] = errors.New("backend error")
	extractor := &fakeExtractor{tasks: []ai.TaskExtraction{
		{Description: "Broken task"},
		{Description: "Working task"},
	}}
	p := newSyncProcessor(extractor, tasks, &fakeCalendar{})

	report := p.Process(context.Background(), cred, "transcript")

	assert.Equal(t, 2, report.TasksExtracted)
	assert.Equal(t, 1, report.TasksCreated)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "Broken task")
}

func TestProcessCalendarFailureCountsAsError(t *testing.T) {
	tasks := newFakeTasks(gtasks.TaskList{ID: "default", Title: "My Tasks"})
	calendar := &fakeCalendar{err: errors.New("calendar down")}
	extractor := &fakeExtractor{tasks: []ai.TaskExtraction{
		{Description: "Dated task", DueDate: "2026-09-01"},
	}}
	p := newSyncProcessor(extractor, tasks, calendar)

	report := p.Process(context.Background(), cred, "transcript")

	assert.Equal(t, 1, report.TasksCreated)
	assert.Equal(t, 0, report.EventsCreated)
	require.Len(t, report.Errors, 1)
}

func TestProcessInvalidDueDateSkipsEvent(t *testing.T) {
	tasks := newFakeTasks(gtasks.TaskList{ID: "default", Title: "My Tasks"})
	calendar := &fakeCalendar{}
	extractor := &fakeExtractor{tasks: []ai.TaskExtraction{
		{Description: "Oddly dated task", DueDate: "next Tuesday"},
	}}
	p := newSyncProcessor(extractor, tasks, calendar)

	report := p.Process(context.Background(), cred, "transcript")

	assert.Equal(t, 1, report.TasksCreated)
	assert.Equal(t, 0, report.EventsCreated)
	assert.Empty(t, report.Errors)
	assert.Empty(t, calendar.created)

	assert.Empty(t, tasks.tasksByList["default"][0].Due)
}
