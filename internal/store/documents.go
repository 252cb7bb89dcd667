package store

import (
	"context"

	"github.com/google/uuid"

	"familyhub-backend/internal/model"
)

func (s *gormStore) CreateDocument(ctx context.Context, doc *model.Document) error {
	return s.db.WithContext(ctx).Create(doc).Error
}

func (s *gormStore) ListDocuments(ctx context.Context, familyID uuid.UUID) ([]model.Document, error) {
	var docs []model.Document
	err := s.db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}

func (s *gormStore) GetDocument(ctx context.Context, familyID, id uuid.UUID) (*model.Document, error) {
	var doc model.Document
	err := s.db.WithContext(ctx).First(&doc, "id = ? AND family_id = ?", id, familyID).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &doc, nil
}

func (s *gormStore) DeleteDocument(ctx context.Context, familyID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND family_id = ?", id, familyID).
		Delete(&model.Document{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
