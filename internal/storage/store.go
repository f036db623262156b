package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"boardclient/internal/game"
)

// Store wraps a gorm DB instance and journals submissions for one session.
// A nil *Store is valid and records nothing.
type Store struct {
	db      *gorm.DB
	session uuid.UUID
}

// NewStore creates a store from a gorm DB.
func NewStore(db *gorm.DB) *Store {
	if db == nil {
		return nil
	}
	return &Store{db: db}
}

// DB exposes the underlying gorm DB instance.
func (s *Store) DB() *gorm.DB {
	if s == nil {
		return nil
	}
	return s.db
}

// StartSession inserts the session row every later submission links to.
func (s *Store) StartSession(ctx context.Context, moveURL, model string, at time.Time) error {
	if s == nil {
		return nil
	}
	s.session = uuid.New()
	return s.db.WithContext(ctx).Create(&Session{
		ID:        s.session,
		MoveURL:   moveURL,
		Model:     model,
		StartedAt: at,
	}).Error
}

// EndSession stamps the end time of the current session.
func (s *Store) EndSession(ctx context.Context, at time.Time) error {
	if s == nil || s.session == uuid.Nil {
		return nil
	}
	return s.db.WithContext(ctx).Model(&Session{}).Where("id = ?", s.session).Update("ended_at", at).Error
}

// Record implements game.Journal.
func (s *Store) Record(ctx context.Context, e game.Entry) error {
	if s == nil {
		return nil
	}
	row, err := SubmissionFromEntry(s.session, e)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

// SubmissionFromEntry converts a journal entry to its row.
func SubmissionFromEntry(session uuid.UUID, e game.Entry) (Submission, error) {
	id, err := uuid.Parse(e.ID)
	if err != nil {
		return Submission{}, fmt.Errorf("submission id %q: %w", e.ID, err)
	}
	row := Submission{
		ID:        id,
		SessionID: session,
		Kind:      string(e.Kind),
		Move:      e.Move,
		Model:     e.Model,
		BoardFrom: e.BoardFrom,
		BoardTo:   e.BoardTo,
		Status:    string(e.Status),
		ElapsedMS: e.Elapsed.Milliseconds(),
		CreatedAt: e.Started,
	}
	if e.Err != nil {
		row.Error = e.Err.Error()
	}
	return row, nil
}

// History returns the session's submissions, oldest first.
func (s *Store) History(ctx context.Context) ([]Submission, error) {
	if s == nil {
		return nil, nil
	}
	var rows []Submission
	err := s.db.WithContext(ctx).
		Where("session_id = ?", s.session).
		Order("created_at").
		Find(&rows).Error
	return rows, err
}
