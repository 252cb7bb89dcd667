package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"familyhub-backend/internal/model"
)

func (s *gormStore) CreateEvent(ctx context.Context, event *model.CalendarEvent) error {
	return s.db.WithContext(ctx).Create(event).Error
}

// ListEvents returns the family's events whose start time falls in [from, to).
func (s *gormStore) ListEvents(ctx context.Context, familyID uuid.UUID, from, to time.Time) ([]model.CalendarEvent, error) {
	var events []model.CalendarEvent
	err := s.db.WithContext(ctx).
		Where("family_id = ? AND start_time >= ? AND start_time < ?", familyID, from, to).
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

func (s *gormStore) GetEvent(ctx context.Context, familyID, id uuid.UUID) (*model.CalendarEvent, error) {
	var event model.CalendarEvent
	err := s.db.WithContext(ctx).
		First(&event, "id = ? AND family_id = ?", id, familyID).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &event, nil
}

func (s *gormStore) UpdateEvent(ctx context.Context, event *model.CalendarEvent) error {
	res := s.db.WithContext(ctx).
		Model(&model.CalendarEvent{}).
		Where("id = ? AND family_id = ?", event.ID, event.FamilyID).
		Select("Title", "Description", "Location", "StartTime", "EndTime", "AllDay", "Color").
		Updates(event)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) DeleteEvent(ctx context.Context, familyID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND family_id = ?", id, familyID).
		Delete(&model.CalendarEvent{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
