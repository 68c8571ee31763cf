package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SourceKind identifies where a meeting record was ingested from.
type SourceKind string

const (
	SourceDrive SourceKind = "drive"
	SourceGmail SourceKind = "gmail"
)

// RemoteLink ties a local task to the Google Task created for it.
type RemoteLink struct {
	TaskID string `json:"task_id"`
	ListID string `json:"list_id"`
}

// Task is one action item on a meeting record. IDs are positional strings
// ("1", "2", ...) assigned at ingestion time.
type Task struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	Completed bool        `json:"completed"`
	Remote    *RemoteLink `json:"remote,omitempty"`
}

// TaskSlice stores a record's tasks as a JSON column.
type TaskSlice []Task

func (t TaskSlice) Value() (driver.Value, error) {
	if t == nil {
		t = TaskSlice{}
	}
	return json.Marshal(t)
}

func (t *TaskSlice) Scan(value interface{}) error {
	if value == nil {
		*t = TaskSlice{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unable to scan task slice from %T", value)
	}

	if len(data) == 0 {
		*t = TaskSlice{}
		return nil
	}
	return json.Unmarshal(data, t)
}

// MeetingRecord is one processed meeting summary. The (UserID, Source,
// SourceID) triple is the idempotency key: a Drive file or Gmail message is
// ingested at most once per user.
type MeetingRecord struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	UserID      string     `gorm:"index;uniqueIndex:idx_user_source" json:"user_id"`
	Source      SourceKind `gorm:"uniqueIndex:idx_user_source" json:"source"`
	SourceID    string     `gorm:"uniqueIndex:idx_user_source" json:"source_id"`
	Title       string     `json:"title"`
	SummaryText string     `json:"summary_text"`
	Tasks       TaskSlice  `gorm:"type:jsonb" json:"tasks"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FindTask returns the task with the given ID, or nil.
func (r *MeetingRecord) FindTask(taskID string) *Task {
	for i := range r.Tasks {
		if r.Tasks[i].ID == taskID {
			return &r.Tasks[i]
		}
	}
	return nil
}

// SyncID builds the marker written into a Google Task's notes so the task
// can be found again across lists.
func (r *MeetingRecord) SyncID(taskID string) string {
	return fmt.Sprintf("meeting_%s_task_%s", r.ID, taskID)
}
