package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"wayfarer/pkg/utils"
)

const TraceIDHeader = "X-Trace-ID"

// TraceIDMiddleware tags each request with a trace id. A client-supplied
// uuid in X-Trace-ID is kept so browser and server logs line up; anything
// else is replaced by a fresh one.
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if _, err := uuid.Parse(traceID); err != nil || len(traceID) != 36 {
			traceID = uuid.NewString()
		}
		c.Set(utils.TraceIDKey, traceID)
		c.Writer.Header().Set(TraceIDHeader, traceID)
		c.Next()
	}
}
