package main

import (
	"time"
	"tripbook/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// CORS lets the booking front end call the API from the browser.
func CORS(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"Traceparent",
		},
		ExposeHeaders: []string{
			"Content-Disposition",
		},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}

// TraceLoggerMiddleware logs each request with the trace and span ids set by otelgin.
func TraceLoggerMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.SpanContext().IsValid() {
			c.Next()
			return
		}

		traceID := span.SpanContext().TraceID().String()
		spanID := span.SpanContext().SpanID().String()
		c.Set("trace_id", traceID)
		c.Set("span_id", spanID)

		reqLog := log.With(
			logger.Field{Key: "trace_id", Value: traceID},
			logger.Field{Key: "span_id", Value: spanID},
			logger.Field{Key: "method", Value: c.Request.Method},
			logger.Field{Key: "path", Value: c.FullPath()},
		)
		reqLog.Debug("incoming request")

		c.Next()

		reqLog.Info("request completed",
			logger.Field{Key: "status", Value: c.Writer.Status()},
		)
	}
}
