package services

import (
	"errors"
	"strings"
	"time"

	"eventapi/models"
)

// ImageUpload describes a stored upload handed in by the boundary layer.
// MediaType is the declared content type, StorageRef the stored file path.
type ImageUpload struct {
	MediaType  string
	StorageRef string
}

type CreateEventInput struct {
	Title       string
	Description string
	Address     string
	Date        string
	Image       *ImageUpload
	OwnerID     int64
}

// UpdateEventInput is a partial field set; nil pointers mean "keep the
// stored value".
type UpdateEventInput struct {
	Title       *string
	Description *string
	Address     *string
	Date        *string
	Image       *ImageUpload
}

// EventService owns the business rules around events and registrations:
// input validation, ownership checks, and orchestration of the event
// store and the registration ledger.
type EventService struct {
	events models.EventRepository
	regs   models.RegistrationRepository
}

func NewEventService(events models.EventRepository, regs models.RegistrationRepository) *EventService {
	return &EventService{events: events, regs: regs}
}

// Accepted date layouts, normalized to RFC 3339 UTC on the way in.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func toISODate(s string) (string, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339), true
		}
	}
	return "", false
}

func (s *EventService) Create(in CreateEventInput) (models.Event, error) {
	if in.OwnerID <= 0 {
		return models.Event{}, ErrAuthRequired
	}

	var fieldErrs []string
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	address := strings.TrimSpace(in.Address)
	dateStr := strings.TrimSpace(in.Date)

	if title == "" {
		fieldErrs = append(fieldErrs, "title is required and must not be empty")
	}
	if description == "" {
		fieldErrs = append(fieldErrs, "description is required and must not be empty")
	}
	if address == "" {
		fieldErrs = append(fieldErrs, "address is required and must not be empty")
	}

	var isoDate string
	if dateStr == "" {
		fieldErrs = append(fieldErrs, "date is required and must not be empty")
	} else {
		normalized, ok := toISODate(dateStr)
		if !ok {
			fieldErrs = append(fieldErrs, "date must be a valid date string (e.g. ISO 8601)")
		} else {
			isoDate = normalized
		}
	}

	var image *string
	if in.Image != nil {
		if !strings.HasPrefix(in.Image.MediaType, "image/") {
			fieldErrs = append(fieldErrs, "image must be an image file")
		} else {
			ref := in.Image.StorageRef
			image = &ref
		}
	}

	if len(fieldErrs) > 0 {
		return models.Event{}, &ValidationError{Fields: fieldErrs}
	}

	event := models.Event{
		Title:       title,
		Description: description,
		Address:     address,
		Date:        &isoDate,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		OwnerID:     in.OwnerID,
		Image:       image,
	}
	if err := s.events.Create(&event); err != nil {
		return models.Event{}, storeErr("create event", err)
	}
	return event, nil
}

func (s *EventService) Update(id, callerID int64, in UpdateEventInput) (models.Event, error) {
	if callerID <= 0 {
		return models.Event{}, ErrAuthRequired
	}

	event, err := s.events.GetByID(id)
	if errors.Is(err, models.ErrNotFound) {
		return models.Event{}, models.ErrNotFound
	}
	if err != nil {
		return models.Event{}, storeErr("fetch event", err)
	}
	if event.OwnerID != callerID {
		return models.Event{}, ErrForbidden
	}

	if in.Title == nil && in.Description == nil && in.Address == nil && in.Date == nil && in.Image == nil {
		return models.Event{}, &ValidationError{Fields: []string{
			"provide at least one field (title, description, address, date) or an image to update",
		}}
	}

	var fieldErrs []string
	setText := func(name string, raw *string, dst *string) {
		if raw == nil {
			return
		}
		v := strings.TrimSpace(*raw)
		if v == "" {
			fieldErrs = append(fieldErrs, name+" must not be empty")
			return
		}
		*dst = v
	}
	setText("title", in.Title, &event.Title)
	setText("description", in.Description, &event.Description)
	setText("address", in.Address, &event.Address)

	if in.Date != nil {
		ds := strings.TrimSpace(*in.Date)
		if ds == "" {
			fieldErrs = append(fieldErrs, "date must not be empty")
		} else if normalized, ok := toISODate(ds); ok {
			event.Date = &normalized
		} else {
			fieldErrs = append(fieldErrs, "date must be a valid date string (e.g. ISO 8601)")
		}
	}

	if in.Image != nil {
		if !strings.HasPrefix(in.Image.MediaType, "image/") {
			fieldErrs = append(fieldErrs, "image must be an image file")
		} else {
			ref := in.Image.StorageRef
			event.Image = &ref
		}
	}

	if len(fieldErrs) > 0 {
		return models.Event{}, &ValidationError{Fields: fieldErrs}
	}

	if err := s.events.Update(&event); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Event{}, models.ErrNotFound
		}
		return models.Event{}, storeErr("update event", err)
	}
	return event, nil
}

func (s *EventService) Delete(id, callerID int64) error {
	if callerID <= 0 {
		return ErrAuthRequired
	}

	event, err := s.events.GetByID(id)
	if errors.Is(err, models.ErrNotFound) {
		return models.ErrNotFound
	}
	if err != nil {
		return storeErr("fetch event", err)
	}
	if event.OwnerID != callerID {
		return ErrForbidden
	}

	removed, err := s.events.Delete(id)
	if err != nil {
		return storeErr("delete event", err)
	}
	if !removed {
		return models.ErrNotFound
	}
	return nil
}

func (s *EventService) Get(id int64) (models.Event, error) {
	event, err := s.events.GetByID(id)
	if errors.Is(err, models.ErrNotFound) {
		return models.Event{}, models.ErrNotFound
	}
	if err != nil {
		return models.Event{}, storeErr("fetch event", err)
	}
	return event, nil
}

func (s *EventService) List() ([]models.Event, error) {
	events, err := s.events.GetAll()
	if err != nil {
		return nil, storeErr("list events", err)
	}
	return events, nil
}

// Register needs only an authenticated caller; any identity may register
// for any existing event, including the owner for their own.
func (s *EventService) Register(eventID, userID int64) (models.Registration, error) {
	if userID <= 0 {
		return models.Registration{}, ErrAuthRequired
	}

	if _, err := s.events.GetByID(eventID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Registration{}, models.ErrNotFound
		}
		return models.Registration{}, storeErr("fetch event", err)
	}

	reg, err := s.regs.Register(eventID, userID)
	if errors.Is(err, models.ErrDuplicateRegistration) {
		return models.Registration{}, models.ErrDuplicateRegistration
	}
	if err != nil {
		return models.Registration{}, storeErr("register", err)
	}
	return reg, nil
}

func (s *EventService) Unregister(eventID, userID int64) error {
	if userID <= 0 {
		return ErrAuthRequired
	}

	if _, err := s.events.GetByID(eventID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		return storeErr("fetch event", err)
	}

	removed, err := s.regs.Cancel(eventID, userID)
	if err != nil {
		return storeErr("unregister", err)
	}
	if !removed {
		return models.ErrRegistrationNotFound
	}
	return nil
}
