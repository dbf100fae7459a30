package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dinerozz/landing-analytics-backend/internal/model/response/wrapper"
	"github.com/dinerozz/landing-analytics-backend/pkg/utils"
	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware gates the mutating admin endpoints. The token can
// arrive as a Bearer header or as the cookie set by /api/admin/auth; only
// tokens carrying the admin role pass. A mismatch is rejected before any
// handler runs, so unauthorized calls have no side effects.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			var err error
			tokenString, err = c.Cookie("token")
			if err != nil {
				c.JSON(http.StatusForbidden, wrapper.ErrorWrapper{Message: "Missing authentication token", Success: false})
				c.Abort()
				return
			}
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			fmt.Println("Error validating token", err)
			c.JSON(http.StatusForbidden, wrapper.ErrorWrapper{Message: "Invalid authentication token", Success: false})
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)
		if role != "admin" {
			c.JSON(http.StatusForbidden, wrapper.ErrorWrapper{Message: "Admin role required", Success: false})
			c.Abort()
			return
		}

		c.Set("user_id", claims["user_id"])
		c.Set("username", claims["username"])
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
