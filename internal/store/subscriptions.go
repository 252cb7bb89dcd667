package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"familyhub-backend/internal/model"
)

// UpsertSubscription creates or refreshes a push subscription keyed by its
// endpoint.
func (s *gormStore) UpsertSubscription(ctx context.Context, sub *model.PushSubscription) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "family_id", "p256dh", "auth"}),
	}).Create(sub).Error
}

func (s *gormStore) GetSubscription(ctx context.Context, userID uuid.UUID, endpoint string) (*model.PushSubscription, error) {
	var sub model.PushSubscription
	err := s.db.WithContext(ctx).
		First(&sub, "endpoint = ? AND user_id = ?", endpoint, userID).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &sub, nil
}

func (s *gormStore) DeleteSubscription(ctx context.Context, userID uuid.UUID, endpoint string) error {
	res := s.db.WithContext(ctx).
		Where("endpoint = ? AND user_id = ?", endpoint, userID).
		Delete(&model.PushSubscription{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) ListFamilySubscriptions(ctx context.Context, familyID uuid.UUID) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	err := s.db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Find(&subs).Error
	return subs, err
}

// DeleteSubscriptionByEndpoint removes a subscription regardless of owner.
// The notification worker uses this to drop endpoints the push service
// reports as gone.
func (s *gormStore) DeleteSubscriptionByEndpoint(ctx context.Context, endpoint string) error {
	return s.db.WithContext(ctx).
		Where("endpoint = ?", endpoint).
		Delete(&model.PushSubscription{}).Error
}
