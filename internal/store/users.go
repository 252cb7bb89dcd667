package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"familyhub-backend/internal/model"
)

// CreateFamilyWithAdmin creates a family and its first (admin) user in one
// transaction.
func (s *gormStore) CreateFamilyWithAdmin(ctx context.Context, family *model.Family, admin *model.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(family).Error; err != nil {
			return fmt.Errorf("failed to create family: %w", err)
		}
		admin.FamilyID = family.ID
		admin.Role = model.RoleAdmin
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		return nil
	})
}

// AddMemberByInviteCode looks up the family by invite code and creates the
// user inside it.
func (s *gormStore) AddMemberByInviteCode(ctx context.Context, inviteCode string, member *model.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var family model.Family
		if err := tx.First(&family, "invite_code = ?", inviteCode).Error; err != nil {
			return notFoundOr(err)
		}
		member.FamilyID = family.ID
		member.Role = model.RoleMember
		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("failed to create member: %w", err)
		}
		return nil
	})
}

func (s *gormStore) GetFamily(ctx context.Context, id uuid.UUID) (*model.Family, error) {
	var family model.Family
	if err := s.db.WithContext(ctx).Preload("Members").First(&family, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &family, nil
}

func (s *gormStore) RotateInviteCode(ctx context.Context, familyID uuid.UUID, code string) error {
	res := s.db.WithContext(ctx).Model(&model.Family{}).
		Where("id = ?", familyID).
		Update("invite_code", code)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &user, nil
}

func (s *gormStore) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &user, nil
}

func (s *gormStore) ListFamilyMembers(ctx context.Context, familyID uuid.UUID) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}
