package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"familyhub-backend/internal/model"
)

func (s *gormStore) CreateShoppingList(ctx context.Context, list *model.ShoppingList) error {
	return s.db.WithContext(ctx).Create(list).Error
}

func (s *gormStore) ListShoppingLists(ctx context.Context, familyID uuid.UUID) ([]model.ShoppingList, error) {
	var lists []model.ShoppingList
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("shopping_items.created_at ASC")
		}).
		Where("family_id = ?", familyID).
		Order("created_at DESC").
		Find(&lists).Error
	return lists, err
}

func (s *gormStore) GetShoppingList(ctx context.Context, familyID, id uuid.UUID) (*model.ShoppingList, error) {
	var list model.ShoppingList
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("shopping_items.created_at ASC")
		}).
		First(&list, "id = ? AND family_id = ?", id, familyID).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &list, nil
}

func (s *gormStore) UpdateShoppingList(ctx context.Context, list *model.ShoppingList) error {
	res := s.db.WithContext(ctx).
		Model(&model.ShoppingList{}).
		Where("id = ? AND family_id = ?", list.ID, list.FamilyID).
		Update("name", list.Name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteShoppingList removes a list and its items.
func (s *gormStore) DeleteShoppingList(ctx context.Context, familyID, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND family_id = ?", id, familyID).Delete(&model.ShoppingList{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("list_id = ?", id).Delete(&model.ShoppingItem{}).Error
	})
}

// AddShoppingItem appends an item after checking the list belongs to the family.
func (s *gormStore) AddShoppingItem(ctx context.Context, familyID uuid.UUID, item *model.ShoppingItem) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireList(tx, familyID, item.ListID); err != nil {
			return err
		}
		return tx.Create(item).Error
	})
}

func (s *gormStore) UpdateShoppingItem(ctx context.Context, familyID uuid.UUID, item *model.ShoppingItem) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireList(tx, familyID, item.ListID); err != nil {
			return err
		}
		res := tx.Model(&model.ShoppingItem{}).
			Where("id = ? AND list_id = ?", item.ID, item.ListID).
			Select("Name", "Quantity", "Category", "Checked").
			Updates(item)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *gormStore) DeleteShoppingItem(ctx context.Context, familyID, listID, itemID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireList(tx, familyID, listID); err != nil {
			return err
		}
		res := tx.Where("id = ? AND list_id = ?", itemID, listID).Delete(&model.ShoppingItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ClearCheckedItems bulk-removes every checked item on the list and returns
// how many were removed.
func (s *gormStore) ClearCheckedItems(ctx context.Context, familyID, listID uuid.UUID) (int64, error) {
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireList(tx, familyID, listID); err != nil {
			return err
		}
		res := tx.Where("list_id = ? AND checked", listID).Delete(&model.ShoppingItem{})
		removed = res.RowsAffected
		return res.Error
	})
	return removed, err
}

func requireList(tx *gorm.DB, familyID, listID uuid.UUID) error {
	var count int64
	if err := tx.Model(&model.ShoppingList{}).
		Where("id = ? AND family_id = ?", listID, familyID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
