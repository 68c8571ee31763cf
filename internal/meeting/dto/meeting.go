package dto

import "meetingmate-backend/internal/meeting/domain"

// SummaryResponse is one meeting record as returned by the API.
type SummaryResponse struct {
	ID        string        `json:"id"`
	Source    string        `json:"source"`
	Title     string        `json:"title"`
	Summary   string        `json:"summary"`
	Tasks     []domain.Task `json:"tasks"`
	CreatedAt string        `json:"created_at"`
}

// TaskItem is a task flattened out of its meeting record.
type TaskItem struct {
	ID           string `json:"id"` // "{record_id}_{task_id}"
	Text         string `json:"text"`
	Completed    bool   `json:"completed"`
	SummaryID    string `json:"summary_id"`
	SummaryTitle string `json:"summary_title"`
	CreatedAt    string `json:"created_at"`
}

// GoogleTask is a task read back from the Google Tasks API.
type GoogleTask struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Notes         string `json:"notes"`
	Status        string `json:"status"`
	Due           string `json:"due,omitempty"`
	TasklistID    string `json:"tasklist_id"`
	TasklistTitle string `json:"tasklist_title"`
}

// UpdateTaskStatusRequest toggles a task's completion.
type UpdateTaskStatusRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// UpdateTaskStatusResponse reports the local and remote outcome.
type UpdateTaskStatusResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	GoogleTaskUpdated bool   `json:"google_task_updated"`
}

// SyncResponse reports a single-record sync to Google Tasks.
type SyncResponse struct {
	Success               bool     `json:"success"`
	Message               string   `json:"message"`
	TasksSynced           int      `json:"tasks_synced"`
	TasksSkipped          int      `json:"tasks_skipped"`
	CalendarEventsCreated int      `json:"calendar_events_created"`
	TaskListTitle         string   `json:"task_list_title,omitempty"`
	TaskListURL           string   `json:"task_list_url,omitempty"`
	Errors                []string `json:"errors,omitempty"`
}

// BulkSyncResponse reports a sync across recent records.
type BulkSyncResponse struct {
	Success            bool     `json:"success"`
	Message            string   `json:"message"`
	SummariesProcessed int      `json:"summaries_processed"`
	TotalTasksSynced   int      `json:"total_tasks_synced"`
	Errors             []string `json:"errors,omitempty"`
}

// ScanResponse reports a Gmail scan run.
type ScanResponse struct {
	Success         bool `json:"success"`
	EmailsScanned   int  `json:"emails_scanned"`
	SummariesStored int  `json:"summaries_stored"`
}

// CreateEventRequest creates a calendar event.
type CreateEventRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Start       string   `json:"start" binding:"required"`
	End         string   `json:"end" binding:"required"`
	Attendees   []string `json:"attendees"`
}

// NotificationResponse is a derived notification entry.
type NotificationResponse struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Timestamp string                 `json:"timestamp"`
	Read      bool                   `json:"read"`
	Metadata  map[string]interface{} `json:"metadata"`
}
