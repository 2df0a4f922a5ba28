package middleware

import (
	"github.com/gin-gonic/gin"
)

// SessionTokenKey - gin context key chứa backend session cookie value
const SessionTokenKey = "session_token"

// Session extract backend session cookie từ request
// Cookie được forward nguyên vẹn tới backend - front end không decode,
// không verify; backend own toàn bộ session semantics.
func Session(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil {
			token = ""
		}
		c.Set(SessionTokenKey, token)
		c.Next()
	}
}

// SessionToken đọc token đã extract ("" = anonymous)
func SessionToken(c *gin.Context) string {
	return c.GetString(SessionTokenKey)
}
