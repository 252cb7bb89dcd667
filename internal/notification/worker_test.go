package notification

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"familyhub-backend/internal/model"
	"familyhub-backend/internal/store"
)

// mockSender is a mock implementation of the Sender interface.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

// newTestStore opens an in-memory SQLite store seeded with one family, one
// user, and one push subscription.
func newTestStore(t *testing.T) (store.Store, *model.Family) {
	t.Helper()

	dsn := fmt.Sprintf("file:notif_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Family{}, &model.User{}, &model.PushSubscription{}))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	s := store.NewGormStore(db)
	family := &model.Family{Name: "smith", InviteCode: "smith-code"}
	admin := &model.User{Name: "Admin", Email: t.Name() + "@example.com", PasswordHash: "x"}
	require.NoError(t, s.CreateFamilyWithAdmin(context.Background(), family, admin))
	require.NoError(t, s.UpsertSubscription(context.Background(), &model.PushSubscription{
		Endpoint: "https://push.example.com/" + t.Name(),
		UserID:   admin.ID,
		FamilyID: family.ID,
		P256DH:   "p256dh",
		Auth:     "auth",
	}))
	return s, family
}

func TestWorkerPool_Dispatch(t *testing.T) {
	s, family := newTestStore(t)
	wp := NewWorkerPool(1, s, &webpush.Options{})

	wp.Dispatch(Job{FamilyID: family.ID, Title: "Medication reminder"})

	select {
	case job := <-wp.jobs:
		assert.Equal(t, "Medication reminder", job.Title)
		assert.Equal(t, family.ID, job.FamilyID)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_SendsToFamilySubscriptions(t *testing.T) {
	s, family := newTestStore(t)
	wp := NewWorkerPool(1, s, &webpush.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			assert.Contains(t, sub.Endpoint, "https://push.example.com/")
			assert.JSONEq(t,
				`{"title":"Medication reminder","body":"Time to take Ibuprofen (200 mg)","tag":"r-1"}`,
				string(payload))
			wg.Done()
			return &http.Response{
				StatusCode: http.StatusCreated,
				Body:       io.NopCloser(bytes.NewBufferString("")),
			}, nil
		},
	}
	wp.Start(ctx)

	wp.Dispatch(Job{
		FamilyID: family.ID,
		Title:    "Medication reminder",
		Body:     "Time to take Ibuprofen (200 mg)",
		Tag:      "r-1",
	})
	wg.Wait()
}

func TestWorkerPool_DeletesExpiredSubscription(t *testing.T) {
	s, family := newTestStore(t)
	wp := NewWorkerPool(1, s, &webpush.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			wg.Done()
			return &http.Response{
				StatusCode: http.StatusGone,
				Body:       io.NopCloser(bytes.NewBufferString("")),
			}, nil
		},
	}
	wp.Start(ctx)

	wp.Dispatch(Job{FamilyID: family.ID, Title: "Medication reminder"})
	wg.Wait()

	// The 410 endpoint must be gone from the store. The delete happens after
	// the sender returns, so poll briefly.
	assert.Eventually(t, func() bool {
		subs, err := s.ListFamilySubscriptions(context.Background(), family.ID)
		return err == nil && len(subs) == 0
	}, time.Second, 10*time.Millisecond)
}
