// Package reminder resolves weekly medication schedules into the concrete
// reminders that fall on a given day. Resolution is a pure function of its
// inputs: the caller supplies the reference time, so the same snapshot
// always yields the same instances in the same order.
package reminder

import (
	"fmt"
	"sort"
	"time"

	"familyhub-backend/internal/model"
	"familyhub-backend/internal/parse"
)

// takenToleranceHours is how far an intake log entry's hour may sit from a
// schedule's hour and still satisfy that reminder. Matching is deliberately
// loose: it goes by medication and approximate time only, not schedule ID,
// so two schedules for the same medication under ~2 hours apart can satisfy
// each other. See the classifier for the separate due/missed grace window.
const takenToleranceHours = 1

// Instance is one occurrence of a schedule firing on a specific day. It is
// derived on every resolution and never persisted; its ID is deterministic
// over (medication, schedule, date) so recomputation is idempotent.
type Instance struct {
	ID           string    `json:"id"`
	MedicationID string    `json:"medicationId"`
	Medication   string    `json:"medication"`
	Dosage       string    `json:"dosage"`
	Time         string    `json:"time"`
	Timestamp    time.Time `json:"timestamp"`
	Taken        bool      `json:"taken"`
	ScheduleID   string    `json:"scheduleId"`
}

// Resolve computes the reminders due on ref's calendar day. A schedule
// contributes one instance when it is active and ref's weekday is in its
// day set. Schedules with malformed times or out-of-range weekdays simply
// never match; validation is the creation path's job, not the resolver's.
func Resolve(ref time.Time, medications []model.Medication, logs []model.IntakeLog) []Instance {
	weekday := int(ref.Weekday())
	date := ref.Format("2006-01-02")

	var instances []Instance
	for _, med := range medications {
		for _, sched := range med.Schedules {
			if !sched.Active || !containsDay(sched.DaysOfWeek, weekday) {
				continue
			}

			hour, minute, err := parse.Clock(sched.Time)
			if err != nil {
				continue
			}

			at := time.Date(ref.Year(), ref.Month(), ref.Day(), hour, minute, 0, 0, ref.Location())

			instances = append(instances, Instance{
				ID:           fmt.Sprintf("%s-%s-%s", med.ID, sched.ID, date),
				MedicationID: med.ID.String(),
				Medication:   med.Name,
				Dosage:       med.Dosage,
				Time:         sched.Time,
				Timestamp:    at,
				Taken:        takenAround(logs, med.ID.String(), ref, hour),
				ScheduleID:   sched.ID.String(),
			})
		}
	}

	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].Timestamp.Before(instances[j].Timestamp)
	})
	return instances
}

// takenAround reports whether an intake entry for the medication was logged
// on ref's calendar date within the hour tolerance of the schedule's hour.
func takenAround(logs []model.IntakeLog, medicationID string, ref time.Time, scheduleHour int) bool {
	refYear, refMonth, refDay := ref.Date()
	for _, entry := range logs {
		if !entry.Taken || entry.MedicationID.String() != medicationID {
			continue
		}
		ts := entry.Timestamp.In(ref.Location())
		y, m, d := ts.Date()
		if y != refYear || m != refMonth || d != refDay {
			continue
		}
		diff := ts.Hour() - scheduleHour
		if diff < 0 {
			diff = -diff
		}
		if diff <= takenToleranceHours {
			return true
		}
	}
	return false
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
