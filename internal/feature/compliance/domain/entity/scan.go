package entity

import "time"

// Scan states.
const (
	ScanRunning   = "running"
	ScanCompleted = "completed"
)

// Scan is a simulated compliance scan. Its progress is derived from the
// elapsed time since StartedAt; nothing runs in the background.
type Scan struct {
	ID        string
	UserID    string
	StartedAt time.Time
	Duration  time.Duration
}

// Progress returns the completion percentage at now, clamped to 0..100.
func (s Scan) Progress(now time.Time) int {
	if s.Duration <= 0 {
		return 100
	}
	elapsed := now.Sub(s.StartedAt)
	if elapsed <= 0 {
		return 0
	}
	p := int(elapsed * 100 / s.Duration)
	if p > 100 {
		return 100
	}
	return p
}

// State returns ScanCompleted once progress reaches 100.
func (s Scan) State(now time.Time) string {
	if s.Progress(now) >= 100 {
		return ScanCompleted
	}
	return ScanRunning
}

// ScanStatus is a scan observed at a point in time.
type ScanStatus struct {
	Scan     Scan
	Progress int
	State    string
}
