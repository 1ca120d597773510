package models

import (
	"database/sql"
	"errors"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type sqlRegistrationRepo struct{ db *sql.DB }

func NewSQLRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &sqlRegistrationRepo{db}
}

// Register relies on UNIQUE(event_id, user_id) to reject duplicates, so
// two racing inserts for the same pair yield exactly one success.
func (r *sqlRegistrationRepo) Register(eventID, userID int64) (Registration, error) {
	createdAt := time.Now().UTC().Format(time.RFC3339)
	res, err := r.db.Exec(
		`INSERT INTO registrations (event_id, user_id, created_at) VALUES (?, ?, ?)`,
		eventID, userID, createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Registration{}, ErrDuplicateRegistration
		}
		return Registration{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Registration{}, err
	}
	return Registration{ID: id, EventID: eventID, UserID: userID, CreatedAt: createdAt}, nil
}

func (r *sqlRegistrationRepo) Cancel(eventID, userID int64) (bool, error) {
	res, err := r.db.Exec(
		`DELETE FROM registrations WHERE event_id = ? AND user_id = ?`,
		eventID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
