package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey - gin context key chứa request id
const RequestIDKey = "request_id"

// HeaderRequestID - header forward/trả request id cho client
const HeaderRequestID = "X-Request-ID"

// RequestID gắn unique id cho mỗi request để correlate log lines
// Id gửi sẵn từ client/proxy được giữ nguyên, chỉ generate khi thiếu
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
