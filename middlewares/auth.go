package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"eventapi/utils"
)

// Authenticate verifies the Authorization header (with or without a
// "Bearer " prefix) and stores the asserted identity in the context for
// downstream handlers.
func Authenticate(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access token is missing."})
		return
	}

	userID, email, err := utils.VerifyToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token."})
		return
	}

	c.Set("userId", userID)
	c.Set("email", email)
	c.Next()
}
