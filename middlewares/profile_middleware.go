// middlewares/profile_middleware.go
package middlewares

import (
	"net/http"
	"strconv"

	"github.com/BTL5010TEJA/iproject/config"
	"github.com/BTL5010TEJA/iproject/models"

	"github.com/gin-gonic/gin"
)

// ProfileMiddleware resolves the calling user's profile from the
// X-User-ID header (or user_id query parameter) and stores it in the
// context. There is no authentication layer in this app; the identifier
// is a plain profile reference.
func ProfileMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			raw = c.Query("user_id")
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header or user_id query parameter required"})
			return
		}

		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		var user models.UserProfile
		if err := config.DB.First(&user, uint(id)).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}

		c.Set("userID", user.ID)
		c.Set("user", &user)

		c.Next()
	}
}

// CurrentUser pulls the resolved profile back out of the context.
func CurrentUser(c *gin.Context) *models.UserProfile {
	v, ok := c.Get("user")
	if !ok {
		return nil
	}
	user, _ := v.(*models.UserProfile)
	return user
}
