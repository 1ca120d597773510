package routes

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"eventapi/models"
	"eventapi/utils"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /signup
func (d *deps) signup(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	var fieldErrs []string
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		fieldErrs = append(fieldErrs, "Email is required")
	} else if !emailPattern.MatchString(email) {
		fieldErrs = append(fieldErrs, "A valid email address is required")
	}

	password := strings.TrimSpace(req.Password)
	if password == "" {
		fieldErrs = append(fieldErrs, "Password is required")
	} else if len(password) < 6 {
		fieldErrs = append(fieldErrs, "Password must be at least 6 characters long")
	}

	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": fieldErrs})
		return
	}

	u := models.User{Email: email, Password: password}
	if err := d.users.Create(&u); err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "User with this email already exists."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not save user."})
		return
	}

	token, err := utils.GenerateToken(u.Email, u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not authenticate user."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user":    u,
		"token":   token,
	})
}

// POST /login
func (d *deps) login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	user, err := d.users.ValidateCredentials(strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Could not authenticate user."})
		return
	}

	token, err := utils.GenerateToken(user.Email, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not authenticate user."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful!", "token": token})
}
