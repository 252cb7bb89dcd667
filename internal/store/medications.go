package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"familyhub-backend/internal/model"
)

func (s *gormStore) CreateMedication(ctx context.Context, med *model.Medication) error {
	return s.db.WithContext(ctx).Create(med).Error
}

func (s *gormStore) ListMedications(ctx context.Context, familyID uuid.UUID) ([]model.Medication, error) {
	var meds []model.Medication
	err := s.db.WithContext(ctx).
		Preload("Schedules").
		Where("family_id = ?", familyID).
		Order("name ASC").
		Find(&meds).Error
	return meds, err
}

func (s *gormStore) GetMedication(ctx context.Context, familyID, id uuid.UUID) (*model.Medication, error) {
	var med model.Medication
	err := s.db.WithContext(ctx).
		Preload("Schedules").
		First(&med, "id = ? AND family_id = ?", id, familyID).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &med, nil
}

// UpdateMedication updates descriptive fields and stock settings. The
// remaining amount can be set directly here (a manual refill); intake
// decrements go through RecordIntake only.
func (s *gormStore) UpdateMedication(ctx context.Context, med *model.Medication) error {
	res := s.db.WithContext(ctx).
		Model(&model.Medication{}).
		Where("id = ? AND family_id = ?", med.ID, med.FamilyID).
		Select("Name", "Dosage", "Unit", "RemainingAmount", "RefillThreshold", "ExpirationDate").
		Updates(med)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMedication removes a medication with its schedules and intake logs.
func (s *gormStore) DeleteMedication(ctx context.Context, familyID, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND family_id = ?", id, familyID).Delete(&model.Medication{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("medication_id = ?", id).Delete(&model.Schedule{}).Error; err != nil {
			return err
		}
		return tx.Where("medication_id = ?", id).Delete(&model.IntakeLog{}).Error
	})
}

func (s *gormStore) AddSchedule(ctx context.Context, familyID uuid.UUID, sched *model.Schedule) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireMedication(tx, familyID, sched.MedicationID); err != nil {
			return err
		}
		return tx.Create(sched).Error
	})
}

func (s *gormStore) UpdateSchedule(ctx context.Context, familyID uuid.UUID, sched *model.Schedule) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireMedication(tx, familyID, sched.MedicationID); err != nil {
			return err
		}
		res := tx.Model(&model.Schedule{}).
			Where("id = ? AND medication_id = ?", sched.ID, sched.MedicationID).
			Select("Time", "DaysOfWeek", "Active").
			Updates(sched)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *gormStore) DeleteSchedule(ctx context.Context, familyID, medicationID, scheduleID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireMedication(tx, familyID, medicationID); err != nil {
			return err
		}
		res := tx.Where("id = ? AND medication_id = ?", scheduleID, medicationID).Delete(&model.Schedule{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// RecordIntake creates an intake log entry and, when the dose was taken,
// decrements the medication's stock. Both happen in one transaction, and the
// decrement is a single conditional UPDATE so concurrent intakes against the
// same medication can neither lose a decrement nor drive the count below
// zero.
func (s *gormStore) RecordIntake(ctx context.Context, familyID uuid.UUID, entry *model.IntakeLog) (*IntakeResult, error) {
	var result IntakeResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireMedication(tx, familyID, entry.MedicationID); err != nil {
			return err
		}

		entry.FamilyID = familyID
		if entry.Timestamp.IsZero() {
			entry.Timestamp = time.Now().UTC()
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to create intake log: %w", err)
		}

		if entry.Taken {
			if err := tx.Model(&model.Medication{}).
				Where("id = ? AND remaining_amount > 0", entry.MedicationID).
				UpdateColumn("remaining_amount", gorm.Expr("remaining_amount - 1")).Error; err != nil {
				return fmt.Errorf("failed to decrement stock: %w", err)
			}
		}

		if err := tx.Preload("Schedules").
			First(&result.Medication, "id = ?", entry.MedicationID).Error; err != nil {
			return err
		}
		result.Entry = *entry
		result.RefillDue = result.Medication.RefillDue()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListIntakeLogs returns the most recent entries for one medication.
func (s *gormStore) ListIntakeLogs(ctx context.Context, familyID, medicationID uuid.UUID, limit int) ([]model.IntakeLog, error) {
	if err := requireMedication(s.db.WithContext(ctx), familyID, medicationID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	var logs []model.IntakeLog
	err := s.db.WithContext(ctx).
		Where("medication_id = ?", medicationID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// ListIntakeLogsSince returns every entry for the family with a timestamp at
// or after since. The reminder resolver feeds on this.
func (s *gormStore) ListIntakeLogsSince(ctx context.Context, familyID uuid.UUID, since time.Time) ([]model.IntakeLog, error) {
	var logs []model.IntakeLog
	err := s.db.WithContext(ctx).
		Where("family_id = ? AND timestamp >= ?", familyID, since).
		Order("timestamp ASC").
		Find(&logs).Error
	return logs, err
}

// AllFamilyMedications loads every family's medications with schedules,
// grouped by family, for the background reminder dispatcher.
func (s *gormStore) AllFamilyMedications(ctx context.Context) ([]FamilyMedications, error) {
	var meds []model.Medication
	if err := s.db.WithContext(ctx).Preload("Schedules").Find(&meds).Error; err != nil {
		return nil, err
	}

	byFamily := make(map[uuid.UUID]int)
	var groups []FamilyMedications
	for _, med := range meds {
		idx, ok := byFamily[med.FamilyID]
		if !ok {
			idx = len(groups)
			byFamily[med.FamilyID] = idx
			groups = append(groups, FamilyMedications{FamilyID: med.FamilyID})
		}
		groups[idx].Medications = append(groups[idx].Medications, med)
	}
	return groups, nil
}

func requireMedication(tx *gorm.DB, familyID, medicationID uuid.UUID) error {
	var count int64
	if err := tx.Model(&model.Medication{}).
		Where("id = ? AND family_id = ?", medicationID, familyID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
