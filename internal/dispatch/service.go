// Package dispatch runs the background reminder loop: on every tick it
// resolves each family's medication schedules against the clock and pushes a
// notification for every reminder that has just come due.
package dispatch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"familyhub-backend/config"
	"familyhub-backend/internal/model"
	"familyhub-backend/internal/notification"
	"familyhub-backend/internal/reminder"
	"familyhub-backend/internal/store"
)

// Service orchestrates reminder resolution and notification dispatch.
type Service struct {
	cfg        *config.Config
	store      store.Store
	workerPool *notification.WorkerPool
	loc        *time.Location

	// sent remembers which reminder instances and refill alerts have
	// already been dispatched, so a reminder fires once even though the
	// loop re-resolves it on every tick until the grace window closes.
	sent *cache.Cache

	now func() time.Time
}

// NewService creates and initializes a new dispatch service.
func NewService(cfg *config.Config, s store.Store) *Service {
	loc, err := time.LoadLocation(cfg.Reminders.Timezone)
	if err != nil {
		log.Printf("Warning: invalid timezone %q: %v. Falling back to UTC.", cfg.Reminders.Timezone, err)
		loc = time.UTC
	}

	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	return &Service{
		cfg:        cfg,
		store:      s,
		workerPool: notification.NewWorkerPool(cfg.WorkerPool.Size, s, &webpushOptions),
		loc:        loc,
		sent:       cache.New(reminder.GraceWindow, 2*reminder.GraceWindow),
		now:        time.Now,
	}
}

// Run starts the dispatch loop. The worker pool is started regardless of
// whether the loop is enabled: refill alerts from the intake handler go
// through the same pool, and an unstarted pool would leave NotifyRefill
// enqueueing into a channel nothing drains.
func (s *Service) Run(ctx context.Context) {
	s.workerPool.Start(ctx)

	if !s.cfg.Reminders.Enabled {
		log.Println("Reminder dispatch is disabled. Not starting the reminder loop.")
		return
	}
	log.Println("Starting reminder dispatch service...")

	s.CycleOnce(ctx)

	timer := time.NewTimer(s.cfg.Reminders.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Reminder dispatch service shutting down.")
			return
		case <-timer.C:
			s.CycleOnce(ctx)
			timer.Reset(s.cfg.Reminders.Interval)
		}
	}
}

// CycleOnce performs a single resolution pass over every family.
func (s *Service) CycleOnce(ctx context.Context) {
	now := s.now().In(s.loc)

	groups, err := s.store.AllFamilyMedications(ctx)
	if err != nil {
		log.Printf("Error loading medications for reminder cycle: %v", err)
		return
	}

	dispatched := 0
	for _, group := range groups {
		dispatched += s.cycleFamily(ctx, now, group)
	}
	if dispatched > 0 {
		log.Printf("Reminder cycle dispatched %d notifications", dispatched)
	}
}

func (s *Service) cycleFamily(ctx context.Context, now time.Time, group store.FamilyMedications) int {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	logs, err := s.store.ListIntakeLogsSince(ctx, group.FamilyID, startOfDay)
	if err != nil {
		log.Printf("Error loading intake logs for family %s: %v", group.FamilyID, err)
		return 0
	}

	resolved := reminder.Resolve(now, group.Medications, logs)
	buckets := reminder.Classify(now, resolved)

	dispatched := 0
	for _, inst := range buckets.Due {
		if _, already := s.sent.Get(inst.ID); already {
			continue
		}
		s.sent.SetDefault(inst.ID, true)

		body := fmt.Sprintf("Time to take %s", inst.Medication)
		if inst.Dosage != "" {
			body = fmt.Sprintf("Time to take %s (%s)", inst.Medication, inst.Dosage)
		}
		s.workerPool.Dispatch(notification.Job{
			FamilyID: group.FamilyID,
			Title:    "Medication reminder",
			Body:     body,
			Tag:      inst.ID,
		})
		dispatched++
	}
	return dispatched
}

// NotifyRefill pushes a low-stock alert for a medication, at most once per
// day. The intake handler calls this when a logged dose drops the stock to
// its refill threshold.
func (s *Service) NotifyRefill(familyID uuid.UUID, med *model.Medication) {
	day := s.now().In(s.loc).Format("2006-01-02")
	key := fmt.Sprintf("refill:%s:%s", med.ID, day)
	if _, already := s.sent.Get(key); already {
		return
	}
	s.sent.Set(key, true, 24*time.Hour)

	s.workerPool.Dispatch(notification.Job{
		FamilyID: familyID,
		Title:    "Refill needed",
		Body:     fmt.Sprintf("%s is running low: %d left", med.Name, med.RemainingAmount),
		Tag:      "refill:" + med.ID.String(),
	})
}
