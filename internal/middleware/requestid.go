package middleware

import (
	"github.com/forceboard-dev/forceboard/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, reusing the caller's if present.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIDHeader)

		if id == "" {
			id = uuid.NewString()
		}

		ctx.Set(types.ContextRequestIDKey, id)
		ctx.Writer.Header().Set(requestIDHeader, id)
		ctx.Next()
	}
}
