package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orchid-haven/orchid-backend/internal/events"
	"go.uber.org/zap"
)

// Recovery turns a handler panic into a 500. The panic value is only
// echoed back outside production.
func Recovery(log *zap.Logger, sink events.Sink, isProduction bool) gin.HandlerFunc {
	if sink == nil {
		sink = events.Discard
	}

	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		detail := fmt.Sprint(recovered)

		log.Error("Panic recovered",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("panic", detail),
			zap.Stack("stack"),
		)

		ctx := c.Request.Context()
		e := events.New(ctx, events.TypeInternalError, events.EntityRequest, "", c.Request.Method+" "+c.Request.URL.Path)
		e.Detail = detail
		sink.Record(ctx, e)

		message := "Internal server error"
		if !isProduction {
			message = detail
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": message,
		})
	})
}
