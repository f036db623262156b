package storage

import (
	"time"

	"github.com/google/uuid"
)

// Session is one run of the client against a remote authority.
type Session struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	MoveURL     string
	Model       string
	StartedAt   time.Time
	EndedAt     *time.Time
	Submissions []Submission
}

// Submission stores one finished request to the authority.
type Submission struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID uuid.UUID `gorm:"type:uuid;index"`
	Kind      string    `gorm:"index"`
	Move      string
	Model     string
	BoardFrom string
	BoardTo   string
	Status    string
	Error     string
	ElapsedMS int64
	CreatedAt time.Time
}
