package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/olincollege/fairytale-sound-effects/internal/journal/domain"
)

// sessionColumns is the column list shared by every SELECT, in the
// order scanSession reads them.
const sessionColumns = "id, guid, book, story_path, cues, misses, faults, started_at, ended_at, updated_at"

// journalRepository implements domain.Repository over the
// reading_sessions table.
type journalRepository struct {
	db *sql.DB
}

var _ domain.Repository = (*journalRepository)(nil)

func newJournalRepository(db *sql.DB) *journalRepository {
	return &journalRepository{db: db}
}

// Save writes a reading session. A session without an ID is inserted
// and gets its ID set; anything else updates the existing row.
func (r *journalRepository) Save(session *domain.ReadingSession) error {
	if session.ID() == 0 {
		return r.insert(session)
	}
	return r.update(session)
}

func (r *journalRepository) insert(session *domain.ReadingSession) error {
	model := toReadingSessionModel(session)
	result, err := r.db.Exec(
		`INSERT INTO reading_sessions (guid, book, story_path, cues, misses, faults, started_at, ended_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		model.GUID, model.Book, model.StoryPath,
		model.Cues, model.Misses, model.Faults,
		model.StartedAt, model.EndedAt, model.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting reading session: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading back insert id: %w", err)
	}
	session.SetID(id)
	return nil
}

func (r *journalRepository) update(session *domain.ReadingSession) error {
	model := toReadingSessionModel(session)
	_, err := r.db.Exec(
		`UPDATE reading_sessions
		 SET book = ?, story_path = ?, cues = ?, misses = ?, faults = ?, ended_at = ?, updated_at = ?
		 WHERE id = ?`,
		model.Book, model.StoryPath, model.Cues, model.Misses, model.Faults,
		model.EndedAt, model.UpdatedAt, model.ID,
	)
	if err != nil {
		return fmt.Errorf("updating reading session: %w", err)
	}
	return nil
}

// FindByGUID looks a session up by GUID. A miss surfaces as
// SessionNotFoundError.
func (r *journalRepository) FindByGUID(guid string) (*domain.ReadingSession, error) {
	row := r.db.QueryRow(`SELECT `+sessionColumns+` FROM reading_sessions WHERE guid = ?`, guid)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.SessionNotFoundError{GUID: guid}
	}
	if err != nil {
		return nil, fmt.Errorf("finding reading session %s: %w", guid, err)
	}
	return session, nil
}

// ListRecent returns sessions newest first. limit <= 0 returns all.
func (r *journalRepository) ListRecent(limit int) ([]*domain.ReadingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM reading_sessions ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing reading sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*domain.ReadingSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning reading session row: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reading session rows: %w", err)
	}
	return sessions, nil
}

// Close is a no-op; the connection belongs to DB.
func (r *journalRepository) Close() error {
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(s scanner) (*domain.ReadingSession, error) {
	var model ReadingSessionModel
	err := s.Scan(&model.ID, &model.GUID, &model.Book, &model.StoryPath,
		&model.Cues, &model.Misses, &model.Faults,
		&model.StartedAt, &model.EndedAt, &model.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return model.toDomain(), nil
}
