package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"meetingmate-backend/pkg/ai"
	"meetingmate-backend/pkg/googleauth"
	"meetingmate-backend/pkg/gtasks"
)

// ProcessReport summarizes one extract-and-create pass over a transcript.
type ProcessReport struct {
	TasksExtracted int
	TasksCreated   int
	EventsCreated  int
	Errors         []string
	ExtractedTasks []ai.TaskExtraction
}

// syncProcessor extracts action items from a transcript and pushes them
// into Google Tasks, plus Calendar deadline events for dated items. Failures
// on one task never block the rest.
type syncProcessor struct {
	extractor Extractor
	tasks     TasksService
	calendar  CalendarService
}

func newSyncProcessor(extractor Extractor, tasks TasksService, calendar CalendarService) *syncProcessor {
	return &syncProcessor{extractor: extractor, tasks: tasks, calendar: calendar}
}

func (p *syncProcessor) Process(ctx context.Context, cred *googleauth.Credential, transcript string) *ProcessReport {
	report := &ProcessReport{
		Errors:         []string{},
		ExtractedTasks: []ai.TaskExtraction{},
	}

	extracted := p.extractor.Extract(ctx, transcript)
	if len(extracted) == 0 {
		log.Printf("[SyncProcessor] No tasks found in transcript")
		return report
	}
	report.TasksExtracted = len(extracted)
	report.ExtractedTasks = extracted

	for _, task := range extracted {
		if err := p.createGoogleTask(ctx, cred, task); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to process task '%s': %v", task.Description, err))
			continue
		}
		report.TasksCreated++

		if task.DueDate == "" {
			continue
		}
		due, err := time.Parse("2006-01-02", task.DueDate)
		if err != nil {
			log.Printf("[SyncProcessor] Invalid due date %q on task %q", task.DueDate, task.Description)
			continue
		}
		if _, err := p.calendar.CreateDeadlineEvent(ctx, cred, task.Description, taskContext(task), due); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to process task '%s': %v", task.Description, err))
			continue
		}
		report.EventsCreated++
	}

	log.Printf("[SyncProcessor] Task processing complete: %d tasks created, %d events created",
		report.TasksCreated, report.EventsCreated)
	return report
}

func (p *syncProcessor) createGoogleTask(ctx context.Context, cred *googleauth.Credential, task ai.TaskExtraction) error {
	lists, err := p.tasks.ListTaskLists(ctx, cred)
	if err != nil {
		return err
	}
	if len(lists) == 0 {
		return fmt.Errorf("no task lists found")
	}

	body := gtasks.Task{
		Title: task.Description,
		Notes: "From meeting: " + taskContext(task),
	}
	if task.DueDate != "" {
		if due, err := time.Parse("2006-01-02", task.DueDate); err == nil {
			body.Due = due.UTC().Format(time.RFC3339)
		}
	}

	_, err = p.tasks.CreateTask(ctx, cred, lists[0].ID, body)
	return err
}

func taskContext(task ai.TaskExtraction) string {
	if task.Context == "" {
		return "No context provided"
	}
	return task.Context
}
