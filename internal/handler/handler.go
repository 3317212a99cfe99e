package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/Porto7/dev-pixel/docs"
	"github.com/Porto7/dev-pixel/internal/config"
	"github.com/Porto7/dev-pixel/internal/domain"
	"github.com/Porto7/dev-pixel/internal/dto"
	"github.com/Porto7/dev-pixel/internal/metrics"
	"github.com/Porto7/dev-pixel/internal/ratelimit"
	"github.com/Porto7/dev-pixel/internal/service"
)

const (
	codeInternalError   = "INTERNAL_ERROR"
	codeInvalidJSON     = "INVALID_JSON"
	codePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	codeNotFound        = "NOT_FOUND"
	codeRateLimited     = "RATE_LIMITED"
	codeInvalidToken    = "INVALID_VERIFY_TOKEN"
	codeMissingParams   = "MISSING_VERIFICATION_PARAMS"

	subscribeMode = "subscribe"

	// timestampLayout renders UTC times with millisecond precision
	timestampLayout = "2006-01-02T15:04:05.000Z"
)

var availableEndpoints = []string{
	"POST /webhook/facebook-pixel",
	"GET /webhook/facebook-pixel",
	"GET /webhook/facebook-pixel/events",
	"GET /health",
}

type Handler struct {
	eventService service.EventServicer
	limiter      ratelimit.RateLimiter
	config       *config.Config
	router       *gin.Engine
	log          *zap.Logger
	startedAt    time.Time
}

func NewHandler(eventService service.EventServicer, limiter ratelimit.RateLimiter, cfg *config.Config, log *zap.Logger) *Handler {
	h := &Handler{
		eventService: eventService,
		limiter:      limiter,
		config:       cfg,
		router:       gin.New(),
		log:          log,
		startedAt:    time.Now(),
	}

	if err := h.router.SetTrustedProxies(cfg.Service.TrustedProxies); err != nil {
		log.Warn("Invalid trusted proxies, client IP falls back to the socket address",
			zap.Strings("trusted_proxies", cfg.Service.TrustedProxies),
			zap.Error(err))
		_ = h.router.SetTrustedProxies(nil)
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.Use(
		requestID(),
		requestLogger(h.log),
		gin.CustomRecoveryWithWriter(io.Discard, h.recoverPanic),
		corsHeaders(),
		securityHeaders(),
		h.rateLimit(),
		bodyLimit(h.config.Service.MaxBodyBytes),
	)

	h.router.POST("/webhook/facebook-pixel", h.forwardEvent)
	h.router.GET("/webhook/facebook-pixel", h.verifyWebhook)
	h.router.GET("/webhook/facebook-pixel/events", h.listEvents)
	h.router.GET("/health", h.healthCheck)
	h.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	h.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h.router.NoRoute(h.notFound)
}

// forwardEvent handles POST /webhook/facebook-pixel
// @Summary Forward a conversion event
// @Description Validate, pseudonymize and forward one event to the Conversions API
// @Tags webhook
// @Accept json
// @Produce json
// @Param event body dto.ForwardEventRequest true "Event data"
// @Success 200 {object} dto.ForwardEventResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /webhook/facebook-pixel [post]
func (h *Handler) forwardEvent(c *gin.Context) {
	var req dto.ForwardEventRequest

	// An empty body is treated as an empty object so validation reports the missing event name
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.log.Warn("Event payload too large",
				zap.Int64("limit", maxBytesErr.Limit),
				zap.String("request_id", c.GetString(requestIDKey)))
			c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
				Error: "Request body too large",
				Code:  codePayloadTooLarge,
			})
			return
		}

		h.log.Warn("Invalid event request",
			zap.Error(err),
			zap.String("request_id", c.GetString(requestIDKey)))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Request body must be a valid JSON object",
			Code:  codeInvalidJSON,
		})
		return
	}

	meta := dto.RequestMeta{
		Origin:    c.GetHeader("Origin"),
		UserAgent: c.Request.UserAgent(),
		ClientIP:  c.ClientIP(),
	}

	result, err := h.eventService.ProcessEvent(c.Request.Context(), &req, meta)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: vErr.Message,
				Code:  vErr.Code,
			})
			return
		}

		h.log.Error("Failed to forward event",
			zap.Error(err),
			zap.String("event_name", req.EventName),
			zap.String("request_id", c.GetString(requestIDKey)))
		h.abortInternalError(c)
		return
	}

	c.JSON(http.StatusOK, dto.ForwardEventResponse{
		Success:   true,
		Message:   "Event sent successfully",
		EventID:   result.EventsReceived,
		Timestamp: now(),
	})
}

// verifyWebhook handles GET /webhook/facebook-pixel
// @Summary Webhook verification handshake
// @Description Echo hub.challenge when hub.mode is subscribe and hub.verify_token matches
// @Tags webhook
// @Produce plain
// @Param hub.mode query string true "Must be subscribe"
// @Param hub.verify_token query string true "Configured verification token"
// @Param hub.challenge query string false "Challenge to echo"
// @Success 200 {string} string
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /webhook/facebook-pixel [get]
func (h *Handler) verifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "" || token == "" {
		metrics.VerificationAttempts.WithLabelValues("missing_params").Inc()
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Missing verification parameters",
			Code:  codeMissingParams,
		})
		return
	}

	verifyToken := h.config.Webhook.VerifyToken
	if mode != subscribeMode || verifyToken == "" || token != verifyToken {
		metrics.VerificationAttempts.WithLabelValues("forbidden").Inc()
		h.log.Warn("Webhook verification failed",
			zap.String("mode", mode),
			zap.String("client_ip", c.ClientIP()))
		c.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error: "Invalid verification token",
			Code:  codeInvalidToken,
		})
		return
	}

	metrics.VerificationAttempts.WithLabelValues("verified").Inc()
	h.log.Info("Webhook verified")
	c.String(http.StatusOK, challenge)
}

// listEvents handles GET /webhook/facebook-pixel/events
// @Summary List supported events
// @Description List the event names accepted by the webhook
// @Tags webhook
// @Produce json
// @Success 200 {object} dto.EventsCatalogResponse
// @Router /webhook/facebook-pixel/events [get]
func (h *Handler) listEvents(c *gin.Context) {
	catalog := domain.SupportedEvents()

	events := make([]dto.EventDescription, 0, len(catalog))
	for _, e := range catalog {
		events = append(events, dto.EventDescription{
			Name:        string(e.Name),
			Description: e.Description,
		})
	}

	c.JSON(http.StatusOK, dto.EventsCatalogResponse{Events: events})
}

// healthCheck handles health check requests
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "ok",
		Timestamp: now(),
		Version:   h.config.Service.Version,
		Uptime:    time.Since(h.startedAt).Seconds(),
	})
}

func (h *Handler) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.ErrorResponse{
		Error:              "Route not found",
		Code:               codeNotFound,
		AvailableEndpoints: availableEndpoints,
	})
}

func (h *Handler) abortInternalError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:     "Internal server error",
		Code:      codeInternalError,
		Timestamp: now(),
	})
}

func now() string {
	return time.Now().UTC().Format(timestampLayout)
}
