package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Session is the summary of one completed run: when it ran, how many cycles
// it processed, the mean fps, and why it ended.
type Session struct {
	ID         string
	StartedAt  time.Time
	EndedAt    time.Time
	Cycles     int
	MeanFPS    float64
	ExitReason string
}

// SessionRepository provides access to recorded run summaries.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Create inserts a new session summary. An empty ID is assigned a fresh UUID.
func (r *SessionRepository) Create(session *Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, started_at, ended_at, cycles, mean_fps, exit_reason)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		session.ID, session.StartedAt, session.EndedAt,
		session.Cycles, session.MeanFPS, session.ExitReason,
	)
	return err
}

// Recent returns up to limit sessions, newest first.
func (r *SessionRepository) Recent(limit int) ([]Session, error) {
	rows, err := r.db.Query(
		`SELECT id, started_at, ended_at, cycles, mean_fps, exit_reason
		 FROM sessions ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.StartedAt, &s.EndedAt, &s.Cycles, &s.MeanFPS, &s.ExitReason); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}
