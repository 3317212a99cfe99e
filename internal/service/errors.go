package service

import (
	"fmt"
	"strings"

	"github.com/Porto7/dev-pixel/internal/domain"
)

// Stable machine-readable error codes returned to callers
const (
	CodeMissingEventName = "MISSING_EVENT_NAME"
	CodeUnsupportedEvent = "UNSUPPORTED_EVENT"
)

// ValidationError rejects an event before any upstream call is made
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ValidateEventName checks the event name against the supported set
func ValidateEventName(name string) (domain.EventName, error) {
	if name == "" {
		return "", &ValidationError{
			Code:    CodeMissingEventName,
			Message: "eventName is required",
		}
	}

	eventName, ok := domain.ParseEventName(name)
	if !ok {
		return "", &ValidationError{
			Code:    CodeUnsupportedEvent,
			Message: fmt.Sprintf("Unsupported event. Valid events: %s", strings.Join(domain.SupportedEventNames(), ", ")),
		}
	}

	return eventName, nil
}
