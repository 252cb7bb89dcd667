package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"familyhub-backend/internal/model"
)

// ErrNotFound is returned when a record does not exist or belongs to a
// different family. Handlers map it to 404 either way so row existence
// never leaks across families.
var ErrNotFound = errors.New("record not found")

// IntakeResult is what RecordIntake hands back: the created log entry, the
// medication after any stock adjustment, and whether the stock has dropped
// to its refill threshold.
type IntakeResult struct {
	Entry      model.IntakeLog  `json:"entry"`
	Medication model.Medication `json:"medication"`
	RefillDue  bool             `json:"refillDue"`
}

// FamilyMedications is one family's reminder snapshot, as consumed by the
// background dispatcher.
type FamilyMedications struct {
	FamilyID    uuid.UUID
	Medications []model.Medication
}

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	// Families and users
	CreateFamilyWithAdmin(ctx context.Context, family *model.Family, admin *model.User) error
	AddMemberByInviteCode(ctx context.Context, inviteCode string, member *model.User) error
	GetFamily(ctx context.Context, id uuid.UUID) (*model.Family, error)
	RotateInviteCode(ctx context.Context, familyID uuid.UUID, code string) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListFamilyMembers(ctx context.Context, familyID uuid.UUID) ([]model.User, error)

	// Calendar
	CreateEvent(ctx context.Context, event *model.CalendarEvent) error
	ListEvents(ctx context.Context, familyID uuid.UUID, from, to time.Time) ([]model.CalendarEvent, error)
	GetEvent(ctx context.Context, familyID, id uuid.UUID) (*model.CalendarEvent, error)
	UpdateEvent(ctx context.Context, event *model.CalendarEvent) error
	DeleteEvent(ctx context.Context, familyID, id uuid.UUID) error

	// Shopping
	CreateShoppingList(ctx context.Context, list *model.ShoppingList) error
	ListShoppingLists(ctx context.Context, familyID uuid.UUID) ([]model.ShoppingList, error)
	GetShoppingList(ctx context.Context, familyID, id uuid.UUID) (*model.ShoppingList, error)
	UpdateShoppingList(ctx context.Context, list *model.ShoppingList) error
	DeleteShoppingList(ctx context.Context, familyID, id uuid.UUID) error
	AddShoppingItem(ctx context.Context, familyID uuid.UUID, item *model.ShoppingItem) error
	UpdateShoppingItem(ctx context.Context, familyID uuid.UUID, item *model.ShoppingItem) error
	DeleteShoppingItem(ctx context.Context, familyID, listID, itemID uuid.UUID) error
	ClearCheckedItems(ctx context.Context, familyID, listID uuid.UUID) (int64, error)

	// Meals
	CreateRecipe(ctx context.Context, recipe *model.Recipe) error
	ListRecipes(ctx context.Context, familyID uuid.UUID) ([]model.Recipe, error)
	GetRecipe(ctx context.Context, familyID, id uuid.UUID) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, recipe *model.Recipe) error
	DeleteRecipe(ctx context.Context, familyID, id uuid.UUID) error
	UpsertMealPlan(ctx context.Context, plan *model.MealPlan) error
	ListMealPlans(ctx context.Context, familyID uuid.UUID, from, to string) ([]model.MealPlan, error)
	DeleteMealPlan(ctx context.Context, familyID, id uuid.UUID) error

	// Medications
	CreateMedication(ctx context.Context, med *model.Medication) error
	ListMedications(ctx context.Context, familyID uuid.UUID) ([]model.Medication, error)
	GetMedication(ctx context.Context, familyID, id uuid.UUID) (*model.Medication, error)
	UpdateMedication(ctx context.Context, med *model.Medication) error
	DeleteMedication(ctx context.Context, familyID, id uuid.UUID) error
	AddSchedule(ctx context.Context, familyID uuid.UUID, sched *model.Schedule) error
	UpdateSchedule(ctx context.Context, familyID uuid.UUID, sched *model.Schedule) error
	DeleteSchedule(ctx context.Context, familyID, medicationID, scheduleID uuid.UUID) error
	RecordIntake(ctx context.Context, familyID uuid.UUID, entry *model.IntakeLog) (*IntakeResult, error)
	ListIntakeLogs(ctx context.Context, familyID, medicationID uuid.UUID, limit int) ([]model.IntakeLog, error)
	ListIntakeLogsSince(ctx context.Context, familyID uuid.UUID, since time.Time) ([]model.IntakeLog, error)
	AllFamilyMedications(ctx context.Context) ([]FamilyMedications, error)

	// Documents
	CreateDocument(ctx context.Context, doc *model.Document) error
	ListDocuments(ctx context.Context, familyID uuid.UUID) ([]model.Document, error)
	GetDocument(ctx context.Context, familyID, id uuid.UUID) (*model.Document, error)
	DeleteDocument(ctx context.Context, familyID, id uuid.UUID) error

	// Push subscriptions
	UpsertSubscription(ctx context.Context, sub *model.PushSubscription) error
	GetSubscription(ctx context.Context, userID uuid.UUID, endpoint string) (*model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, userID uuid.UUID, endpoint string) error
	ListFamilySubscriptions(ctx context.Context, familyID uuid.UUID) ([]model.PushSubscription, error)
	DeleteSubscriptionByEndpoint(ctx context.Context, endpoint string) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying handle for callers that need raw access.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
