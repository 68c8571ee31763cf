package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"meetingmate-backend/internal/meeting/domain"
	"meetingmate-backend/pkg/googleauth"
	"meetingmate-backend/pkg/gtasks"
)

// dedicatedListThreshold is the task count at which a meeting gets its own
// task list instead of sharing the user's default list.
const dedicatedListThreshold = 3

// syncOutcome is the result of pushing one record's tasks to Google Tasks.
type syncOutcome struct {
	Synced    int
	Skipped   int
	ListID    string
	ListTitle string
	Errors    []string
	// Links maps local task IDs to the remote tasks created for them.
	Links map[string]*domain.RemoteLink
}

// syncEngine mirrors a record's tasks into Google Tasks without creating
// duplicates, and propagates completion status back and forth via a sync
// marker in the remote task's notes.
type syncEngine struct {
	tasks TasksService
}

func newSyncEngine(tasks TasksService) *syncEngine {
	return &syncEngine{tasks: tasks}
}

func (e *syncEngine) SyncRecord(ctx context.Context, cred *googleauth.Credential, record *domain.MeetingRecord) (*syncOutcome, error) {
	lists, err := e.tasks.ListTaskLists(ctx, cred)
	if err != nil {
		return nil, fmt.Errorf("unable to list task lists: %v", err)
	}
	if len(lists) == 0 {
		return nil, fmt.Errorf("no Google Tasks lists found")
	}

	target := lists[0]
	if len(record.Tasks) >= dedicatedListThreshold {
		target = e.resolveDedicatedList(ctx, cred, lists, record.Title, target)
	}

	existing, err := e.tasks.ListTasks(ctx, cred, target.ID)
	if err != nil {
		log.Printf("[TaskSync] Failed to get existing Google Tasks: %v", err)
		existing = nil
	}

	outcome := &syncOutcome{
		ListID:    target.ID,
		ListTitle: target.Title,
		Links:     map[string]*domain.RemoteLink{},
	}

	for _, task := range record.Tasks {
		if isTaskDuplicate(task.Text, existing, record.Title) {
			outcome.Skipped++
			log.Printf("[TaskSync] Skipped duplicate task: %s", task.Text)
			continue
		}

		body := gtasks.Task{
			Title: task.Text,
			Notes: fmt.Sprintf("From meeting: %s\nMeeting Date: %s\nSync ID: %s",
				record.Title,
				record.CreatedAt.Format("2006-01-02 15:04"),
				record.SyncID(task.ID)),
		}
		if task.Completed {
			body.Status = "completed"
		}

		created, err := e.tasks.CreateTask(ctx, cred, target.ID, body)
		if err != nil {
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("Failed to sync task '%s': %v", task.Text, err))
			log.Printf("[TaskSync] Failed to sync task '%s': %v", task.Text, err)
			continue
		}

		outcome.Synced++
		outcome.Links[task.ID] = &domain.RemoteLink{TaskID: created.ID, ListID: target.ID}
		log.Printf("[TaskSync] Synced task to Google Tasks: %s", task.Text)
	}

	return outcome, nil
}

// resolveDedicatedList finds or creates the per-meeting list. Creation
// failure falls back to the default list rather than failing the sync.
func (e *syncEngine) resolveDedicatedList(ctx context.Context, cred *googleauth.Credential, lists []gtasks.TaskList, meetingTitle string, fallback gtasks.TaskList) gtasks.TaskList {
	title := "Meeting: " + truncateRunes(meetingTitle, 50)

	for _, list := range lists {
		if list.Title == title {
			log.Printf("[TaskSync] Using existing task list: %s", title)
			return list
		}
	}

	created, err := e.tasks.CreateTaskList(ctx, cred, title)
	if err != nil {
		log.Printf("[TaskSync] Failed to create dedicated task list, using default: %v", err)
		return fallback
	}
	log.Printf("[TaskSync] Created dedicated task list: %s", title)
	return *created
}

// FindBySyncID scans every list for the task carrying the given sync marker
// in its notes. Returns (nil, "", nil) when no task matches.
func (e *syncEngine) FindBySyncID(ctx context.Context, cred *googleauth.Credential, syncID string) (*gtasks.Task, string, error) {
	lists, err := e.tasks.ListTaskLists(ctx, cred)
	if err != nil {
		return nil, "", fmt.Errorf("unable to list task lists: %v", err)
	}

	for _, list := range lists {
		tasks, err := e.tasks.ListTasks(ctx, cred, list.ID)
		if err != nil {
			log.Printf("[TaskSync] Failed to list tasks in %s: %v", list.ID, err)
			continue
		}
		for _, task := range tasks {
			if strings.Contains(task.Notes, syncID) {
				found := task
				return &found, list.ID, nil
			}
		}
	}
	return nil, "", nil
}

// UpdateRemoteStatus finds the remote task for a sync marker and flips its
// completion status. Returns false when no remote task exists.
func (e *syncEngine) UpdateRemoteStatus(ctx context.Context, cred *googleauth.Credential, syncID string, completed bool) (bool, error) {
	task, listID, err := e.FindBySyncID(ctx, cred, syncID)
	if err != nil {
		return false, err
	}
	if task == nil {
		return false, nil
	}

	if err := e.tasks.UpdateTaskStatus(ctx, cred, listID, task.ID, completed); err != nil {
		return false, err
	}
	return true, nil
}

// isTaskDuplicate reports whether a task already exists remotely: either an
// exact normalized title match, or (for longer tasks) the text is contained
// in an existing title whose notes reference the same meeting.
func isTaskDuplicate(taskText string, existing []gtasks.Task, meetingTitle string) bool {
	textLower := strings.ToLower(strings.TrimSpace(taskText))
	titleLower := strings.ToLower(meetingTitle)

	for _, task := range existing {
		existingTitle := strings.ToLower(strings.TrimSpace(task.Title))
		existingNotes := strings.ToLower(task.Notes)

		if existingTitle == textLower {
			return true
		}
		if len(textLower) > 10 &&
			strings.Contains(existingTitle, textLower) &&
			strings.Contains(existingNotes, titleLower) {
			return true
		}
	}
	return false
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
