package storage

import "time"

// RunModel is the GORM model for the runs table
type RunModel struct {
	CreatedAt          time.Time
	Destination        string    `gorm:"not null;default:''"`
	DroppedCount       int       `gorm:"not null;default:0"`
	FinishedAt         time.Time `gorm:"not null"`
	ID                 string    `gorm:"primaryKey"`
	InputCount         int       `gorm:"not null;default:0"`
	OutputCount        int       `gorm:"not null;default:0"`
	PassedThroughCount int       `gorm:"not null;default:0"`
	Policy             string    `gorm:"not null;default:'drop'"`
	RemappedCount      int       `gorm:"not null;default:0"`
	Source             string    `gorm:"not null;default:''"`
	StartedAt          time.Time `gorm:"not null;index:idx_started_at"`
}

// TableName specifies the table name for GORM
func (RunModel) TableName() string { return "runs" }

// RunRecordModel is the GORM model for the records emitted by a run
type RunRecordModel struct {
	Args     *string `gorm:"default:null"` // JSON text
	Command  string  `gorm:"not null"`
	ID       uint    `gorm:"primaryKey;autoIncrement"`
	Key      string  `gorm:"not null"`
	Position int     `gorm:"not null;index:idx_run_position,priority:2"`
	RunID    string  `gorm:"not null;index:idx_run_position,priority:1"`
	When     *string `gorm:"column:when_clause;default:null"`
}

// TableName specifies the table name for GORM
func (RunRecordModel) TableName() string { return "run_records" }
