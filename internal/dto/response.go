package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success            bool     `json:"success" example:"false"`
	Error              string   `json:"error" example:"eventName is required"`
	Code               string   `json:"code,omitempty" example:"MISSING_EVENT_NAME"`
	Timestamp          string   `json:"timestamp,omitempty" example:"2025-01-01T12:00:00Z"`
	AvailableEndpoints []string `json:"availableEndpoints,omitempty"`
}

// ForwardEventResponse represents a successfully forwarded event
type ForwardEventResponse struct {
	Success   bool   `json:"success" example:"true"`
	Message   string `json:"message" example:"Event sent successfully"`
	EventID   int    `json:"eventId" example:"1"`
	Timestamp string `json:"timestamp" example:"2025-01-01T12:00:00Z"`
}

// ForwardEventResult is what the service reports after a successful submission
type ForwardEventResult struct {
	EventsReceived int
	FBTraceID      string
}

// EventDescription describes one supported event
type EventDescription struct {
	Name        string `json:"name" example:"Purchase"`
	Description string `json:"description" example:"Purchase completed"`
}

// EventsCatalogResponse lists the supported events
type EventsCatalogResponse struct {
	Events []EventDescription `json:"events"`
}

// HealthResponse reports process liveness
type HealthResponse struct {
	Status    string  `json:"status" example:"ok"`
	Timestamp string  `json:"timestamp" example:"2025-01-01T12:00:00Z"`
	Version   string  `json:"version" example:"1.0.0"`
	Uptime    float64 `json:"uptime" example:"123.45"`
}
