package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	authrepo "meetingmate-backend/internal/auth/repository"
	"meetingmate-backend/internal/meeting/domain"
	"meetingmate-backend/internal/meeting/dto"
	"meetingmate-backend/internal/meeting/repository"
	"meetingmate-backend/pkg/googleauth"
)

const taskListURL = "https://tasks.google.com/embed/?origin=https://calendar.google.com&fullWidth=1"

const defaultSyncAllLimit = 10

type meetingUsecase struct {
	users   authrepo.UserRepository
	records repository.MeetingRecordRepository
	creds   CredentialResolver
	engine  *syncEngine
	scanner GmailScanner
}

func NewMeetingUsecase(
	users authrepo.UserRepository,
	records repository.MeetingRecordRepository,
	creds CredentialResolver,
	tasks TasksService,
	scanner GmailScanner,
) MeetingUsecase {
	return &meetingUsecase{
		users:   users,
		records: records,
		creds:   creds,
		engine:  newSyncEngine(tasks),
		scanner: scanner,
	}
}

func (u *meetingUsecase) ListSummaries(ctx context.Context, userID string) ([]dto.SummaryResponse, error) {
	records, err := u.records.FindByUserID(userID, 0)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SummaryResponse, 0, len(records))
	for i := range records {
		responses = append(responses, toSummaryResponse(&records[i]))
	}
	return responses, nil
}

func (u *meetingUsecase) GetSummary(ctx context.Context, userID, recordID string) (*dto.SummaryResponse, error) {
	record, err := u.records.FindByID(userID, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	resp := toSummaryResponse(record)
	return &resp, nil
}

func (u *meetingUsecase) ListTasks(ctx context.Context, userID string) ([]dto.TaskItem, error) {
	records, err := u.records.FindByUserID(userID, 0)
	if err != nil {
		return nil, err
	}

	items := []dto.TaskItem{}
	for _, record := range records {
		for _, task := range record.Tasks {
			items = append(items, dto.TaskItem{
				ID:           fmt.Sprintf("%s_%s", record.ID, task.ID),
				Text:         task.Text,
				Completed:    task.Completed,
				SummaryID:    record.ID,
				SummaryTitle: record.Title,
				CreatedAt:    record.CreatedAt.Format(time.RFC3339),
			})
		}
	}
	return items, nil
}

func (u *meetingUsecase) ListGoogleTasks(ctx context.Context, userID string) ([]dto.GoogleTask, error) {
	cred, err := u.resolveCredential(ctx, userID)
	if err != nil {
		return nil, err
	}

	lists, err := u.engine.tasks.ListTaskLists(ctx, cred)
	if err != nil {
		return nil, err
	}

	all := []dto.GoogleTask{}
	for _, list := range lists {
		tasks, err := u.engine.tasks.ListTasks(ctx, cred, list.ID)
		if err != nil {
			log.Printf("[Meeting] Failed to list tasks in %s: %v", list.ID, err)
			continue
		}
		for _, task := range tasks {
			all = append(all, dto.GoogleTask{
				ID:            task.ID,
				Title:         task.Title,
				Notes:         task.Notes,
				Status:        task.Status,
				Due:           task.Due,
				TasklistID:    list.ID,
				TasklistTitle: list.Title,
			})
		}
	}
	return all, nil
}

func (u *meetingUsecase) UpdateTaskStatus(ctx context.Context, userID, recordID, taskID string, completed bool) (*dto.UpdateTaskStatusResponse, error) {
	record, err := u.records.FindByID(userID, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	task := record.FindTask(taskID)
	if task == nil {
		return nil, fmt.Errorf("task not found: %s", taskID)
	}

	task.Completed = completed
	if err := u.records.UpdateTasks(record.ID, record.Tasks); err != nil {
		return nil, err
	}

	verb := "reopened"
	if completed {
		verb = "completed"
	}

	cred, err := u.resolveCredential(ctx, userID)
	if err != nil {
		log.Printf("[Meeting] Credential failure during status update for user %s: %v", userID, err)
		return &dto.UpdateTaskStatusResponse{
			Success: true,
			Message: fmt.Sprintf("Task %s locally, but Google Tasks update failed", verb),
		}, nil
	}

	updated, err := u.engine.UpdateRemoteStatus(ctx, cred, record.SyncID(taskID), completed)
	if err != nil {
		log.Printf("[Meeting] Failed to update Google Task for user %s: %v", userID, err)
		return &dto.UpdateTaskStatusResponse{
			Success: true,
			Message: fmt.Sprintf("Task %s locally, but failed to update Google Tasks", verb),
		}, nil
	}
	if !updated {
		return &dto.UpdateTaskStatusResponse{
			Success: true,
			Message: fmt.Sprintf("Task %s locally. No corresponding Google Task found.", verb),
		}, nil
	}

	return &dto.UpdateTaskStatusResponse{
		Success:           true,
		Message:           fmt.Sprintf("Task %s in both local and Google Tasks", verb),
		GoogleTaskUpdated: true,
	}, nil
}

func (u *meetingUsecase) SyncRecord(ctx context.Context, userID, recordID string) (*dto.SyncResponse, error) {
	record, err := u.records.FindByID(userID, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	if len(record.Tasks) == 0 {
		return &dto.SyncResponse{Success: true, Message: "No tasks to sync"}, nil
	}

	cred, err := u.resolveCredential(ctx, userID)
	if err != nil {
		return nil, err
	}

	outcome, err := u.engine.SyncRecord(ctx, cred, record)
	if err != nil {
		return nil, err
	}

	if len(outcome.Links) > 0 {
		for taskID, link := range outcome.Links {
			if task := record.FindTask(taskID); task != nil {
				task.Remote = link
			}
		}
		if err := u.records.UpdateTasks(record.ID, record.Tasks); err != nil {
			log.Printf("[Meeting] Failed to store remote links for record %s: %v", record.ID, err)
		}
	}

	log.Printf("[Meeting] Sync completed for summary %s: %d tasks synced, %d skipped",
		record.ID, outcome.Synced, outcome.Skipped)

	return &dto.SyncResponse{
		Success:       true,
		Message:       syncMessage(outcome.Synced, outcome.Skipped),
		TasksSynced:   outcome.Synced,
		TasksSkipped:  outcome.Skipped,
		TaskListTitle: outcome.ListTitle,
		TaskListURL:   taskListURL,
		Errors:        outcome.Errors,
	}, nil
}

func (u *meetingUsecase) SyncAll(ctx context.Context, userID string, limit int) (*dto.BulkSyncResponse, error) {
	if limit <= 0 {
		limit = defaultSyncAllLimit
	}

	records, err := u.records.FindByUserID(userID, limit)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &dto.BulkSyncResponse{Success: true, Message: "No meeting summaries found"}, nil
	}

	processed := 0
	totalSynced := 0
	var syncErrors []string

	for _, record := range records {
		if len(record.Tasks) == 0 {
			continue
		}

		result, err := u.SyncRecord(ctx, userID, record.ID)
		if err != nil || result == nil {
			syncErrors = append(syncErrors, fmt.Sprintf("Failed to sync summary '%s'", record.Title))
			if err != nil {
				log.Printf("[Meeting] Failed to sync summary '%s': %v", record.Title, err)
			}
			continue
		}

		processed++
		totalSynced += result.TasksSynced
	}

	return &dto.BulkSyncResponse{
		Success:            true,
		Message:            fmt.Sprintf("Synced tasks from %d meeting summaries", processed),
		SummariesProcessed: processed,
		TotalTasksSynced:   totalSynced,
		Errors:             syncErrors,
	}, nil
}

func (u *meetingUsecase) ScanGmail(ctx context.Context, userID string, daysBack int) (*dto.ScanResponse, error) {
	cred, err := u.resolveCredential(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries, err := u.scanner.ScanForSummaries(ctx, cred, daysBack)
	if err != nil {
		return nil, err
	}

	stored := 0
	for _, summary := range summaries {
		existing, err := u.records.FindByUserAndSource(userID, domain.SourceGmail, summary.EmailID)
		if err != nil {
			log.Printf("[Meeting] Dedup lookup failed for email %s: %v", summary.EmailID, err)
			continue
		}
		if existing != nil {
			continue
		}

		tasks := domain.TaskSlice{}
		for _, task := range summary.Tasks {
			tasks = append(tasks, domain.Task{ID: task.ID, Text: task.Text, Completed: task.Completed})
		}

		record := &domain.MeetingRecord{
			UserID:      userID,
			Source:      domain.SourceGmail,
			SourceID:    summary.EmailID,
			Title:       summary.Title,
			SummaryText: summary.Summary,
			Tasks:       tasks,
			CreatedAt:   summary.ReceivedAt,
		}
		if err := u.records.Create(record); err != nil {
			log.Printf("[Meeting] Failed to store email summary %s: %v", summary.EmailID, err)
			continue
		}
		stored++
	}

	log.Printf("[Meeting] Gmail scan for user %s: %d emails, %d stored", userID, len(summaries), stored)
	return &dto.ScanResponse{Success: true, EmailsScanned: len(summaries), SummariesStored: stored}, nil
}

func (u *meetingUsecase) resolveCredential(ctx context.Context, userID string) (*googleauth.Credential, error) {
	user, err := u.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user not found: %s", userID)
	}
	return u.creds.Resolve(ctx, user)
}

func syncMessage(synced, skipped int) string {
	switch {
	case synced > 0 && skipped > 0:
		return fmt.Sprintf("Successfully synced %d new tasks to Google Tasks (skipped %d duplicates)", synced, skipped)
	case synced > 0:
		return fmt.Sprintf("Successfully synced %d tasks to Google Tasks", synced)
	case skipped > 0:
		return fmt.Sprintf("All %d tasks were already synced to Google Tasks", skipped)
	default:
		return "No tasks were synced"
	}
}
