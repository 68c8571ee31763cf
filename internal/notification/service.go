package notification

import (
	"fmt"
	"sort"
	"time"

	"meetingmate-backend/internal/meeting/repository"
)

// Notification is a derived feed entry. Nothing is stored: the feed is
// rebuilt from recent meeting records on every request.
type Notification struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Timestamp string                 `json:"timestamp"`
	Read      bool                   `json:"read"`
	Metadata  map[string]interface{} `json:"metadata"`
}

const (
	recentWindow = 7 * 24 * time.Hour
	unreadWindow = 24 * time.Hour
	syncWindow   = time.Hour
)

// Service builds the notification feed from meeting records.
type Service struct {
	records repository.MeetingRecordRepository
	now     func() time.Time
}

func NewService(records repository.MeetingRecordRepository) *Service {
	return &Service{records: records, now: time.Now}
}

// List returns up to limit notifications, newest first.
func (s *Service) List(userID string, limit int) ([]Notification, error) {
	if limit <= 0 {
		limit = 20
	}

	records, err := s.records.FindByUserID(userID, limit)
	if err != nil {
		return nil, err
	}

	now := s.now()
	notifications := []Notification{}

	for _, record := range records {
		taskCount := len(record.Tasks)
		notifications = append(notifications, Notification{
			ID:        "summary_" + record.ID,
			Type:      "meeting_summary",
			Title:     "New meeting summary generated",
			Message:   fmt.Sprintf("'%s' has been processed with %d action items", record.Title, taskCount),
			Timestamp: record.CreatedAt.Format(time.RFC3339),
			Read:      now.Sub(record.CreatedAt) > recentWindow,
			Metadata: map[string]interface{}{
				"summaryId":    record.ID,
				"summaryTitle": record.Title,
				"taskCount":    taskCount,
			},
		})
	}

	// Integration notifications for a just-processed meeting.
	if len(records) > 0 && now.Sub(records[0].CreatedAt) <= syncWindow {
		latest := records[0]
		meta := map[string]interface{}{
			"summaryId":    latest.ID,
			"summaryTitle": latest.Title,
		}
		notifications = append(notifications,
			Notification{
				ID:        "tasks_sync_" + latest.ID,
				Type:      "tasks_sync",
				Title:     "Tasks synced to Google Tasks",
				Message:   fmt.Sprintf("Action items from '%s' have been added to your Google Tasks", latest.Title),
				Timestamp: latest.CreatedAt.Add(time.Minute).Format(time.RFC3339),
				Metadata:  meta,
			},
			Notification{
				ID:        "calendar_sync_" + latest.ID,
				Type:      "calendar_sync",
				Title:     "Calendar events created",
				Message:   fmt.Sprintf("Due dates from '%s' have been added to your Google Calendar", latest.Title),
				Timestamp: latest.CreatedAt.Add(2 * time.Minute).Format(time.RFC3339),
				Metadata:  meta,
			},
		)
	}

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].Timestamp > notifications[j].Timestamp
	})

	if len(notifications) > limit {
		notifications = notifications[:limit]
	}
	return notifications, nil
}

// UnreadCount counts notifications for records created in the last day.
// The first recent record contributes its summary plus both integration
// entries; later ones add their summary and tasks entries.
func (s *Service) UnreadCount(userID string) (int, error) {
	records, err := s.records.FindByUserID(userID, 10)
	if err != nil {
		return 0, err
	}

	now := s.now()
	count := 0
	for _, record := range records {
		if now.Sub(record.CreatedAt) > unreadWindow {
			continue
		}
		if count == 0 {
			count = 3
		} else {
			count += 2
		}
	}

	if count > 10 {
		count = 10
	}
	return count, nil
}
