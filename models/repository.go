package models

import "errors"

// Timestamps are stored and exposed as ISO 8601 UTC strings; Date and
// Image are nil when absent.
type Event struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	Date        *string `json:"date"`
	CreatedAt   string  `json:"createdAt"`
	OwnerID     int64   `json:"ownerId"` // creator; immutable after insert
	Image       *string `json:"image"`
}

type Registration struct {
	ID        int64  `json:"id"`
	EventID   int64  `json:"eventId"`
	UserID    int64  `json:"userId"`
	CreatedAt string `json:"createdAt"`
}

type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"-"`
	CreatedAt string `json:"createdAt"`
}

// Sentinel errors the repositories translate driver failures into.
var (
	ErrNotFound              = errors.New("record not found")
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrDuplicateRegistration = errors.New("already registered for event")
	ErrDuplicateEmail        = errors.New("email already in use")
)

// ===== Events =====
type EventRepository interface {
	GetAll() ([]Event, error)
	GetByID(id int64) (Event, error)
	Create(e *Event) error
	Update(e *Event) error
	Delete(id int64) (bool, error)
}

// ===== Registrations =====
type RegistrationRepository interface {
	// Register inserts a row for (eventID, userID). A second insert for
	// the same pair fails with ErrDuplicateRegistration, raised by the
	// UNIQUE constraint rather than a pre-check query.
	Register(eventID, userID int64) (Registration, error)
	// Cancel removes the matching row and reports whether one existed.
	Cancel(eventID, userID int64) (bool, error)
}

// ===== Users =====
type UserRepository interface {
	Create(u *User) error
	ValidateCredentials(email, plain string) (User, error)
	GetByID(id int64) (User, error)
}
