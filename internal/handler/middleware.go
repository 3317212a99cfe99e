package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Porto7/dev-pixel/internal/dto"
	"github.com/Porto7/dev-pixel/internal/metrics"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	webhookPrefix   = "/webhook"
)

// requestID propagates X-Request-ID or generates one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestLogger logs one line per request with zap
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(requestIDKey)),
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("Request completed", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			log.Warn("Request completed", fields...)
		default:
			log.Info("Request completed", fields...)
		}
	}
}

// corsHeaders allows any origin and answers preflight requests
func corsHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET,HEAD,PUT,PATCH,POST,DELETE")

		if c.Request.Method == http.MethodOptions {
			if headers := c.GetHeader("Access-Control-Request-Headers"); headers != "" {
				c.Header("Access-Control-Allow-Headers", headers)
				c.Header("Vary", "Access-Control-Request-Headers")
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// securityHeaders sets the usual hardening headers. The Swagger UI needs
// inline scripts, so /docs is served without a content security policy.
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "SAMEORIGIN")
		c.Header("X-DNS-Prefetch-Control", "off")
		c.Header("X-Download-Options", "noopen")
		c.Header("X-Permitted-Cross-Domain-Policies", "none")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Strict-Transport-Security", "max-age=15552000; includeSubDomains")
		c.Header("Cross-Origin-Opener-Policy", "same-origin")
		c.Header("Cross-Origin-Resource-Policy", "same-origin")

		if !strings.HasPrefix(c.Request.URL.Path, "/docs/") {
			c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		}

		c.Next()
	}
}

// bodyLimit caps the request body size
func bodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

func isWebhookPath(path string) bool {
	return path == webhookPrefix || strings.HasPrefix(path, webhookPrefix+"/")
}

// rateLimit applies the per-IP fixed window to every /webhook request before
// the body is read
func (h *Handler) rateLimit() gin.HandlerFunc {
	message := fmt.Sprintf("Too many requests. Try again in %s.", describeWindow(h.config.RateLimit.Window))

	return func(c *gin.Context) {
		if !isWebhookPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		allowed, err := h.limiter.Allow(c.Request.Context(), clientIP)
		if err != nil {
			h.log.Warn("Rate limiter unavailable",
				zap.Error(err),
				zap.Bool("fail_open", h.config.RateLimit.FailOpen),
				zap.String("request_id", c.GetString(requestIDKey)))
			if !h.config.RateLimit.FailOpen {
				h.abortInternalError(c)
				return
			}
			allowed = true
		}

		if !allowed {
			metrics.RateLimitHits.Inc()
			h.log.Warn("Rate limit exceeded",
				zap.String("client_ip", clientIP),
				zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: message,
				Code:  codeRateLimited,
			})
			return
		}

		c.Next()
	}
}

// recoverPanic is the final catch-all; it answers with the generic 500 body
func (h *Handler) recoverPanic(c *gin.Context, recovered any) {
	var err error
	switch v := recovered.(type) {
	case error:
		err = v
	default:
		err = fmt.Errorf("%v", v)
	}

	if errors.Is(err, http.ErrAbortHandler) {
		panic(err)
	}

	h.log.Error("Unhandled error",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Stack("stack"))

	h.abortInternalError(c)
}

func describeWindow(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		minutes := int(d / time.Minute)
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}
	return d.String()
}
