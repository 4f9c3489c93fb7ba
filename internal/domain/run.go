package domain

import "time"

// RemapStats counts what a conversion did with its input
type RemapStats struct {
	Dropped       int
	Input         int
	Output        int
	PassedThrough int
	Remapped      int
}

// Run is one recorded conversion
type Run struct {
	Destination string
	FinishedAt  time.Time
	ID          string
	Policy      string
	Records     []Record
	Source      string
	StartedAt   time.Time
	Stats       RemapStats
}

// Duration returns how long the run took
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
