package routes

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventapi/models"
	"eventapi/monitoring"
	"eventapi/services"
)

// eventPayload is the partial field set accepted on create and update.
// Pointers distinguish "absent" from "empty".
type eventPayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Date        *string `json:"date"`
}

func parseEventID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event id."})
		return 0, false
	}
	return id, true
}

// respondError is the single place service outcomes become status codes.
func respondError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"errors": ve.Fields})
	case errors.Is(err, services.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: valid Authorization token required."})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden: you are not allowed to modify this event."})
	case errors.Is(err, models.ErrRegistrationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Registration not found."})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found."})
	case errors.Is(err, models.ErrDuplicateRegistration):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Already registered for this event."})
	default:
		log.Println("internal error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong. Try again later."})
	}
}

// bindEventPayload reads the event fields from either a JSON body or a
// multipart form; multipart may carry an optional image file, which is
// stored before validation the same way a disk-backed upload middleware
// would.
func (d *deps) bindEventPayload(c *gin.Context) (eventPayload, *services.ImageUpload, error) {
	var p eventPayload

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		for name, dst := range map[string]**string{
			"title":       &p.Title,
			"description": &p.Description,
			"address":     &p.Address,
			"date":        &p.Date,
		} {
			if v, ok := c.GetPostForm(name); ok {
				val := v
				*dst = &val
			}
		}

		file, err := c.FormFile("image")
		if err != nil {
			// No file attached is fine; only a broken part is an error.
			if errors.Is(err, http.ErrMissingFile) {
				return p, nil, nil
			}
			return p, nil, err
		}
		img, err := d.storeUpload(c, file)
		if err != nil {
			return p, nil, err
		}
		return p, img, nil
	}

	if err := c.ShouldBindJSON(&p); err != nil {
		return p, nil, err
	}
	return p, nil, nil
}

func (d *deps) storeUpload(c *gin.Context, file *multipart.FileHeader) (*services.ImageUpload, error) {
	name := uuid.NewString() + filepath.Ext(file.Filename)
	dst := filepath.Join(d.uploadDir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return nil, err
	}
	return &services.ImageUpload{
		MediaType:  file.Header.Get("Content-Type"),
		StorageRef: dst,
	}, nil
}

/* -------------------- Events -------------------- */

// GET /events
func (d *deps) getEvents(c *gin.Context) {
	events, err := d.svc.List()
	if err != nil {
		respondError(c, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	c.JSON(http.StatusOK, events)
}

// GET /events/:id
func (d *deps) getEvent(c *gin.Context) {
	id, ok := parseEventID(c)
	if !ok {
		return
	}
	event, err := d.svc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// POST /events
func (d *deps) createEvent(c *gin.Context) {
	p, img, err := d.bindEventPayload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	in := services.CreateEventInput{OwnerID: c.GetInt64("userId"), Image: img}
	if p.Title != nil {
		in.Title = *p.Title
	}
	if p.Description != nil {
		in.Description = *p.Description
	}
	if p.Address != nil {
		in.Address = *p.Address
	}
	if p.Date != nil {
		in.Date = *p.Date
	}

	event, err := d.svc.Create(in)
	if err != nil {
		respondError(c, err)
		return
	}

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
		d.inv.PurgeEventItems(c)
	}
	c.JSON(http.StatusCreated, event)
}

// PUT /events/:id
func (d *deps) updateEvent(c *gin.Context) {
	id, ok := parseEventID(c)
	if !ok {
		return
	}

	p, img, err := d.bindEventPayload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	in := services.UpdateEventInput{
		Title:       p.Title,
		Description: p.Description,
		Address:     p.Address,
		Date:        p.Date,
		Image:       img,
	}
	event, err := d.svc.Update(id, c.GetInt64("userId"), in)
	if err != nil {
		respondError(c, err)
		return
	}

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
		d.inv.PurgeEventItems(c)
	}
	c.JSON(http.StatusOK, event)
}

// DELETE /events/:id
func (d *deps) deleteEvent(c *gin.Context) {
	id, ok := parseEventID(c)
	if !ok {
		return
	}

	if err := d.svc.Delete(id, c.GetInt64("userId")); err != nil {
		respondError(c, err)
		return
	}

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
		d.inv.PurgeEventItems(c)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Event deleted successfully", "id": id})
}

/* --------------- Registrations ------------------ */

// POST /events/:id/register
func (d *deps) registerForEvent(c *gin.Context) {
	id, ok := parseEventID(c)
	if !ok {
		return
	}

	reg, err := d.svc.Register(id, c.GetInt64("userId"))
	if err != nil {
		if errors.Is(err, models.ErrDuplicateRegistration) {
			monitoring.RecordRegistration("duplicate")
		} else {
			monitoring.RecordRegistration("failed")
		}
		respondError(c, err)
		return
	}
	monitoring.RecordRegistration("registered")

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Registered for event", "registration": reg})
}

// DELETE /events/:id/register
func (d *deps) cancelRegistration(c *gin.Context) {
	id, ok := parseEventID(c)
	if !ok {
		return
	}

	userID := c.GetInt64("userId")
	if err := d.svc.Unregister(id, userID); err != nil {
		respondError(c, err)
		return
	}
	monitoring.RecordRegistration("unregistered")

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Unregistered from event", "id": id, "userId": userID})
}
