package models

import (
	"database/sql"
	"errors"
	"time"
)

type sqlEventRepo struct{ db *sql.DB }

func NewSQLEventRepository(db *sql.DB) EventRepository {
	return &sqlEventRepo{db}
}

// Undated events sort after dated ones; the id tiebreak keeps the
// listing deterministic.
func (r *sqlEventRepo) GetAll() ([]Event, error) {
	rows, err := r.db.Query(`
		SELECT id, title, description, address, date, created_at, owner_id, image
		FROM events
		ORDER BY date IS NULL, date ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *sqlEventRepo) GetByID(id int64) (Event, error) {
	row := r.db.QueryRow(`
		SELECT id, title, description, address, date, created_at, owner_id, image
		FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Event{}, ErrNotFound
	}
	if err != nil {
		return Event{}, err
	}
	return e, nil
}

func (r *sqlEventRepo) Create(e *Event) error {
	if e.CreatedAt == "" {
		e.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	res, err := r.db.Exec(`
		INSERT INTO events (title, description, address, date, created_at, owner_id, image)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Title, e.Description, e.Address, nullable(e.Date), e.CreatedAt, e.OwnerID, nullable(e.Image))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

// Update writes every mutable column; merging partial input into the
// stored record is the service's job. owner_id and created_at are never
// touched.
func (r *sqlEventRepo) Update(e *Event) error {
	res, err := r.db.Exec(`
		UPDATE events SET title = ?, description = ?, address = ?, date = ?, image = ?
		WHERE id = ?`,
		e.Title, e.Description, e.Address, nullable(e.Date), nullable(e.Image), e.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqlEventRepo) Delete(id int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (Event, error) {
	var e Event
	var date, image sql.NullString
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Address, &date, &e.CreatedAt, &e.OwnerID, &image)
	if err != nil {
		return Event{}, err
	}
	if date.Valid {
		e.Date = &date.String
	}
	if image.Valid {
		e.Image = &image.String
	}
	return e, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
