package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/meetscribe/backend/services/meetings/entity"
)

// summaryPreviewLen caps the summary text returned by ListMeetings.
const summaryPreviewLen = 100

type Storage interface {
	SaveMeeting(ctx context.Context, rec *entity.MeetingRecord) (int64, error)
	GetMeeting(ctx context.Context, id int64) (*entity.MeetingRecord, error)
	ListMeetings(ctx context.Context) ([]entity.MeetingSummary, error)
	SaveSession(ctx context.Context, sessionContext string) (int64, error)
	ListSessions(ctx context.Context) ([]entity.SessionRecord, error)
	Health(ctx context.Context) error
	Close() error
}

type storage struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and ensures the schema
// exists.
func Open(path string) (Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &storage{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *storage) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meetings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT,
			attendees TEXT,
			transcript TEXT,
			summary TEXT,
			people TEXT,
			action_items TEXT,
			created_at TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			context TEXT,
			created_at TIMESTAMP
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *storage) Close() error { return s.db.Close() }

func (s *storage) SaveMeeting(ctx context.Context, rec *entity.MeetingRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO meetings (filename, attendees, transcript, summary, people, action_items, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Filename, rec.Attendees, rec.Transcript, rec.Summary, rec.People, rec.ActionItems, rec.CreatedAt)
	if err != nil {
		return 0, &entity.StorageError{Err: fmt.Errorf("insert meeting: %w", err)}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, &entity.StorageError{Err: fmt.Errorf("insert meeting id: %w", err)}
	}

	return id, nil
}

func (s *storage) GetMeeting(ctx context.Context, id int64) (*entity.MeetingRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, filename, attendees, transcript, summary, people, action_items, created_at
		FROM meetings WHERE id = ?`, id)

	var rec entity.MeetingRecord
	err := row.Scan(&rec.ID, &rec.Filename, &rec.Attendees, &rec.Transcript,
		&rec.Summary, &rec.People, &rec.ActionItems, &rec.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, entity.ErrMeetingNotFound
	case err != nil:
		return nil, &entity.StorageError{Err: fmt.Errorf("scan meeting: %w", err)}
	}

	return &rec, nil
}

func (s *storage) ListMeetings(ctx context.Context) ([]entity.MeetingSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, filename, summary, created_at
		FROM meetings ORDER BY id DESC`)
	if err != nil {
		return nil, &entity.StorageError{Err: fmt.Errorf("query meetings: %w", err)}
	}
	defer rows.Close()

	var meetings []entity.MeetingSummary
	for rows.Next() {
		var m entity.MeetingSummary
		if err := rows.Scan(&m.ID, &m.Filename, &m.Summary, &m.CreatedAt); err != nil {
			return nil, &entity.StorageError{Err: fmt.Errorf("scan meeting row: %w", err)}
		}
		m.Summary = truncateSummary(m.Summary)
		meetings = append(meetings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, &entity.StorageError{Err: err}
	}

	return meetings, nil
}

func (s *storage) SaveSession(ctx context.Context, sessionContext string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO sessions (context, created_at) VALUES (?, ?)`, sessionContext, time.Now().UTC())
	if err != nil {
		return 0, &entity.StorageError{Err: fmt.Errorf("insert session: %w", err)}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, &entity.StorageError{Err: fmt.Errorf("insert session id: %w", err)}
	}

	return id, nil
}

func (s *storage) ListSessions(ctx context.Context) ([]entity.SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, context, created_at
		FROM sessions ORDER BY id DESC`)
	if err != nil {
		return nil, &entity.StorageError{Err: fmt.Errorf("query sessions: %w", err)}
	}
	defer rows.Close()

	var sessions []entity.SessionRecord
	for rows.Next() {
		var sess entity.SessionRecord
		if err := rows.Scan(&sess.ID, &sess.Context, &sess.CreatedAt); err != nil {
			return nil, &entity.StorageError{Err: fmt.Errorf("scan session row: %w", err)}
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, &entity.StorageError{Err: err}
	}

	return sessions, nil
}

// Health returns an error if the database is not reachable.
func (s *storage) Health(ctx context.Context) error {
	row := s.db.QueryRowContext(ctx, `SELECT 1`)
	var v int
	if err := row.Scan(&v); err != nil {
		return fmt.Errorf("db health: %w", err)
	}
	return nil
}

func truncateSummary(summary string) string {
	// Counted in characters, not bytes, so multi-byte text is never cut
	// mid-rune.
	r := []rune(summary)
	if len(r) > summaryPreviewLen {
		return string(r[:summaryPreviewLen]) + "..."
	}
	return summary
}
