package usecase

import (
	"context"
	"time"

	authdomain "meetingmate-backend/internal/auth/domain"
	"meetingmate-backend/internal/meeting/domain"
	"meetingmate-backend/internal/meeting/dto"
	"meetingmate-backend/pkg/ai"
	"meetingmate-backend/pkg/drive"
	"meetingmate-backend/pkg/gmailscan"
	"meetingmate-backend/pkg/googleauth"
	"meetingmate-backend/pkg/gtasks"
)

// CredentialResolver turns a stored user into live Google API credentials.
type CredentialResolver interface {
	Resolve(ctx context.Context, user *authdomain.User) (*googleauth.Credential, error)
}

// DriveService is the slice of the Drive API the ingestion pipeline uses.
type DriveService interface {
	StartPageToken(ctx context.Context, cred *googleauth.Credential) (string, error)
	ListChangesPage(ctx context.Context, cred *googleauth.Credential, pageToken string) (*drive.ChangePage, error)
	ListFolderPage(ctx context.Context, cred *googleauth.Credential, folderID, pageToken string) (*drive.FilePage, error)
	FetchContent(ctx context.Context, cred *googleauth.Credential, fileID string) (string, string, error)
	FindMeetFolder(ctx context.Context, cred *googleauth.Credential) (string, error)
}

// TasksService is the slice of the Google Tasks API the sync engine uses.
type TasksService interface {
	ListTaskLists(ctx context.Context, cred *googleauth.Credential) ([]gtasks.TaskList, error)
	CreateTaskList(ctx context.Context, cred *googleauth.Credential, title string) (*gtasks.TaskList, error)
	ListTasks(ctx context.Context, cred *googleauth.Credential, listID string) ([]gtasks.Task, error)
	CreateTask(ctx context.Context, cred *googleauth.Credential, listID string, task gtasks.Task) (*gtasks.Task, error)
	UpdateTaskStatus(ctx context.Context, cred *googleauth.Credential, listID, taskID string, completed bool) error
}

// CalendarService creates deadline events for extracted tasks.
type CalendarService interface {
	CreateDeadlineEvent(ctx context.Context, cred *googleauth.Credential, description, meetingContext string, due time.Time) (string, error)
}

// GmailScanner finds meeting summaries shared over email.
type GmailScanner interface {
	ScanForSummaries(ctx context.Context, cred *googleauth.Credential, daysBack int) ([]gmailscan.EmailSummary, error)
}

// Summarizer produces a summary and candidate tasks from transcript text.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) ai.SummaryResult
}

// Extractor pulls structured action items from transcript text.
type Extractor interface {
	Extract(ctx context.Context, transcript string) []ai.TaskExtraction
}

// IngestReport summarizes one ingestion run for a user.
type IngestReport struct {
	ChangesSeen     int
	RecordsCreated  int
	RecordIDs       []string
	NewPageToken    string
	SkippedExisting int
}

// MeetingUsecase is the API-facing surface over meeting records and their
// Google Tasks / Calendar integration.
type MeetingUsecase interface {
	ListSummaries(ctx context.Context, userID string) ([]dto.SummaryResponse, error)
	GetSummary(ctx context.Context, userID, recordID string) (*dto.SummaryResponse, error)
	ListTasks(ctx context.Context, userID string) ([]dto.TaskItem, error)
	ListGoogleTasks(ctx context.Context, userID string) ([]dto.GoogleTask, error)
	UpdateTaskStatus(ctx context.Context, userID, recordID, taskID string, completed bool) (*dto.UpdateTaskStatusResponse, error)
	SyncRecord(ctx context.Context, userID, recordID string) (*dto.SyncResponse, error)
	SyncAll(ctx context.Context, userID string, limit int) (*dto.BulkSyncResponse, error)
	ScanGmail(ctx context.Context, userID string, daysBack int) (*dto.ScanResponse, error)
}

func toSummaryResponse(record *domain.MeetingRecord) dto.SummaryResponse {
	tasks := make([]domain.Task, len(record.Tasks))
	copy(tasks, record.Tasks)
	return dto.SummaryResponse{
		ID:        record.ID,
		Source:    string(record.Source),
		Title:     record.Title,
		Summary:   record.SummaryText,
		Tasks:     tasks,
		CreatedAt: record.CreatedAt.Format(time.RFC3339),
	}
}
