package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/inkwell-app/inkwell/pkg/helpers"
)

// Viewer resolves the acting identity on routes that are readable
// anonymously. A valid access token sets userID; anything else leaves
// the neutral zero-identity (empty string) and never aborts.
func Viewer(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err == nil && token != "" {
			if claims, err := jwt.ParseAccessToken(token); err == nil {
				c.Set(CtxUserIDKey, claims.UserID)
			}
		}
		c.Next()
	}
}
