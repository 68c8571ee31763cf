package usecase

import (
	"context"
	"fmt"
	"log"
	"strconv"

	authdomain "meetingmate-backend/internal/auth/domain"
	authrepo "meetingmate-backend/internal/auth/repository"
	"meetingmate-backend/internal/meeting/domain"
	"meetingmate-backend/internal/meeting/repository"
	"meetingmate-backend/pkg/ai"
	"meetingmate-backend/pkg/drive"
	"meetingmate-backend/pkg/googleauth"
)

// IngestUsecase runs the Drive ingestion pipeline: collect changes, fetch
// transcripts, summarize, push tasks to Google, and store one record per
// source file.
type IngestUsecase interface {
	RunForUser(ctx context.Context, user *authdomain.User) (*IngestReport, error)
	RunForUserID(ctx context.Context, userID string) (*IngestReport, error)
	EnsureMeetFolder(ctx context.Context, user *authdomain.User) error
}

type ingestUsecase struct {
	users      authrepo.UserRepository
	records    repository.MeetingRecordRepository
	creds      CredentialResolver
	drive      DriveService
	tracker    *changeTracker
	summarizer Summarizer
	processor  *syncProcessor
}

func NewIngestUsecase(
	users authrepo.UserRepository,
	records repository.MeetingRecordRepository,
	creds CredentialResolver,
	driveSvc DriveService,
	summarizer Summarizer,
	extractor Extractor,
	tasks TasksService,
	calendar CalendarService,
) IngestUsecase {
	return &ingestUsecase{
		users:      users,
		records:    records,
		creds:      creds,
		drive:      driveSvc,
		tracker:    newChangeTracker(driveSvc),
		summarizer: summarizer,
		processor:  newSyncProcessor(extractor, tasks, calendar),
	}
}

func (u *ingestUsecase) RunForUserID(ctx context.Context, userID string) (*IngestReport, error) {
	user, err := u.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user not found: %s", userID)
	}
	return u.RunForUser(ctx, user)
}

func (u *ingestUsecase) RunForUser(ctx context.Context, user *authdomain.User) (*IngestReport, error) {
	cred, err := u.creds.Resolve(ctx, user)
	if err != nil {
		return nil, err
	}

	changes, newToken, err := u.tracker.Collect(ctx, cred, user)
	if err != nil {
		return nil, err
	}

	log.Printf("[Ingest] user=%s pageToken=%s changes=%d", user.Email, user.DrivePageToken, len(changes))

	report := &IngestReport{ChangesSeen: len(changes), NewPageToken: newToken}

	for _, change := range changes {
		if change.Trashed {
			continue
		}
		if user.MeetFolderID != "" && !containsString(change.Parents, user.MeetFolderID) {
			continue
		}
		if !drive.SupportedMime(change.MimeType) {
			continue
		}

		// Fresh read per item keeps concurrent runs from double-inserting.
		existing, err := u.records.FindByUserAndSource(user.ID, domain.SourceDrive, change.FileID)
		if err != nil {
			log.Printf("[Ingest] Dedup lookup failed for %s: %v", change.FileID, err)
			continue
		}
		if existing != nil {
			report.SkippedExisting++
			continue
		}

		record, err := u.processFile(ctx, cred, user, change.FileID)
		if err != nil {
			log.Printf("[Ingest] Failed to process file %s: %v", change.FileID, err)
			continue
		}

		report.RecordsCreated++
		report.RecordIDs = append(report.RecordIDs, record.ID)
	}

	// The cursor always advances, even when every item failed: a poison
	// file must not wedge the feed.
	if err := u.users.UpdatePageToken(user.ID, newToken); err != nil {
		return report, fmt.Errorf("unable to store page token: %v", err)
	}
	user.DrivePageToken = newToken

	log.Printf("[Ingest] Finished user=%s created=%d newToken=%s", user.Email, report.RecordsCreated, newToken)
	return report, nil
}

func (u *ingestUsecase) processFile(ctx context.Context, cred *googleauth.Credential, user *authdomain.User, fileID string) (*domain.MeetingRecord, error) {
	title, content, err := u.drive.FetchContent(ctx, cred, fileID)
	if err != nil {
		return nil, err
	}

	summary := u.summarizer.Summarize(ctx, content)
	processReport := u.processor.Process(ctx, cred, content)

	tasks := formatTasks(processReport.ExtractedTasks, summary.Tasks)

	record := &domain.MeetingRecord{
		UserID:      user.ID,
		Source:      domain.SourceDrive,
		SourceID:    fileID,
		Title:       title,
		SummaryText: summary.Summary,
		Tasks:       tasks,
	}
	if err := u.records.Create(record); err != nil {
		return nil, fmt.Errorf("unable to store record: %v", err)
	}

	log.Printf("[Ingest] Stored summary id=%s title=%q tasks=%d chars=%d",
		record.ID, title, len(tasks), len(content))
	return record, nil
}

// EnsureMeetFolder locates and stores the user's "Meet Recordings" folder
// when it is not yet known. A missing folder is not an error.
func (u *ingestUsecase) EnsureMeetFolder(ctx context.Context, user *authdomain.User) error {
	if user.MeetFolderID != "" {
		return nil
	}

	cred, err := u.creds.Resolve(ctx, user)
	if err != nil {
		return err
	}

	folderID, err := u.drive.FindMeetFolder(ctx, cred)
	if err != nil {
		return err
	}
	if folderID == "" {
		log.Printf("[Ingest] No Meet Recordings folder for user %s", user.Email)
		return nil
	}

	if err := u.users.UpdateMeetFolder(user.ID, folderID); err != nil {
		return err
	}
	user.MeetFolderID = folderID
	log.Printf("[Ingest] Found Meet Recordings folder %s for user %s", folderID, user.Email)
	return nil
}

// formatTasks turns extraction output into stored tasks, falling back to
// the summarizer's plain-text tasks when extraction found nothing.
func formatTasks(extracted []ai.TaskExtraction, fallback []string) domain.TaskSlice {
	tasks := domain.TaskSlice{}
	if len(extracted) > 0 {
		for i, task := range extracted {
			tasks = append(tasks, domain.Task{
				ID:   strconv.Itoa(i + 1),
				Text: task.Description,
			})
		}
		return tasks
	}

	for i, text := range fallback {
		tasks = append(tasks, domain.Task{
			ID:   strconv.Itoa(i + 1),
			Text: text,
		})
	}
	return tasks
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
