package repository

import "meetingmate-backend/internal/meeting/domain"

// MeetingRecordRepository persists processed meeting summaries.
type MeetingRecordRepository interface {
	Create(record *domain.MeetingRecord) error
	FindByID(userID, recordID string) (*domain.MeetingRecord, error)
	FindByUserAndSource(userID string, source domain.SourceKind, sourceID string) (*domain.MeetingRecord, error)
	FindByUserID(userID string, limit int) ([]domain.MeetingRecord, error)
	UpdateTasks(recordID string, tasks domain.TaskSlice) error
}
