package reminder

import "time"

// GraceWindow is how long after its scheduled time a reminder stays "due"
// before it counts as missed. The boundary is inclusive: exactly GraceWindow
// overdue is still due.
const GraceWindow = 6 * time.Hour

// Buckets partitions resolved reminders for presentation. Every instance
// lands in exactly one bucket.
type Buckets struct {
	Due      []Instance `json:"due"`
	Upcoming []Instance `json:"upcoming"`
	Taken    []Instance `json:"taken"`
	Missed   []Instance `json:"missed"`
}

// Classify buckets instances relative to ref. Taken wins regardless of time;
// the rest split on whether the reminder time has passed and by how much.
func Classify(ref time.Time, instances []Instance) Buckets {
	var b Buckets
	for _, inst := range instances {
		switch {
		case inst.Taken:
			b.Taken = append(b.Taken, inst)
		case inst.Timestamp.After(ref):
			b.Upcoming = append(b.Upcoming, inst)
		case ref.Sub(inst.Timestamp) <= GraceWindow:
			b.Due = append(b.Due, inst)
		default:
			b.Missed = append(b.Missed, inst)
		}
	}
	return b
}
