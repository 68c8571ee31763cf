package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"meetingmate-backend/internal/meeting/domain"
)

type meetingRecordRepository struct {
	db *gorm.DB
}

func NewMeetingRecordRepository(db *gorm.DB) MeetingRecordRepository {
	return &meetingRecordRepository{db: db}
}

func (r *meetingRecordRepository) Create(record *domain.MeetingRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Tasks == nil {
		record.Tasks = domain.TaskSlice{}
	}
	return r.db.Create(record).Error
}

func (r *meetingRecordRepository) FindByID(userID, recordID string) (*domain.MeetingRecord, error) {
	var record domain.MeetingRecord
	err := r.db.Where("id = ? AND user_id = ?", recordID, userID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *meetingRecordRepository) FindByUserAndSource(userID string, source domain.SourceKind, sourceID string) (*domain.MeetingRecord, error) {
	var record domain.MeetingRecord
	err := r.db.Where("user_id = ? AND source = ? AND source_id = ?", userID, source, sourceID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *meetingRecordRepository) FindByUserID(userID string, limit int) ([]domain.MeetingRecord, error) {
	var records []domain.MeetingRecord
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *meetingRecordRepository) UpdateTasks(recordID string, tasks domain.TaskSlice) error {
	return r.db.Model(&domain.MeetingRecord{}).
		Where("id = ?", recordID).
		Update("tasks", tasks).Error
}
