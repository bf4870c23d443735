package middleware

import (
	"errors"
	"net/http"
	"strings"

	"rumor-detection/auth"
	"rumor-detection/models"
	"rumor-detection/services"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "current_user"

// RequireAuth accepts only a valid access token belonging to an active user
// and stores that user in the context.
func RequireAuth(tokens *auth.TokenManager, users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			unauthorized(c, "Not authenticated")
			return
		}

		userID, err := tokens.Parse(strings.TrimSpace(token), auth.AccessToken)
		if err != nil {
			unauthorized(c, "Could not validate credentials")
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if errors.Is(err, services.ErrUserNotFound) {
			unauthorized(c, "Could not validate credentials")
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Inactive user"})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireAuth.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
