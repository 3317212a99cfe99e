package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Porto7/dev-pixel/internal/dto"
	"github.com/Porto7/dev-pixel/internal/metrics"
)

// EventService represents event service
type EventService struct {
	submitter EventSubmitter
	log       *zap.Logger
	now       func() time.Time
}

// NewEventService creates a new event service
func NewEventService(submitter EventSubmitter, log *zap.Logger) *EventService {
	return &EventService{
		submitter: submitter,
		log:       log,
		now:       time.Now,
	}
}

// ProcessEvent validates, normalizes and forwards a single event. Invalid
// events return a *ValidationError and never reach the submitter.
func (s *EventService) ProcessEvent(ctx context.Context, req *dto.ForwardEventRequest, meta dto.RequestMeta) (*dto.ForwardEventResult, error) {
	eventName, err := ValidateEventName(req.EventName)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			s.log.Warn("Event rejected",
				zap.String("code", vErr.Code),
				zap.String("event_name", req.EventName))
		}
		metrics.EventsTotal.WithLabelValues(metricLabel(req.EventName), metrics.OutcomeRejected).Inc()
		return nil, err
	}

	event := buildServerEvent(eventName, req, meta, s.now())

	resp, err := s.submitter.SendEvent(ctx, event)
	if err != nil {
		metrics.EventsTotal.WithLabelValues(string(eventName), metrics.OutcomeFailed).Inc()
		return nil, fmt.Errorf("failed to forward event: %w", err)
	}

	metrics.EventsTotal.WithLabelValues(string(eventName), metrics.OutcomeForwarded).Inc()

	result := &dto.ForwardEventResult{
		EventsReceived: resp.EventsReceived,
		FBTraceID:      resp.FBTraceID,
	}
	if result.EventsReceived == 0 {
		result.EventsReceived = 1
	}

	s.log.Info("Event forwarded",
		zap.String("event_name", string(eventName)),
		zap.Int64("event_time", event.EventTime),
		zap.String("client_ip", meta.ClientIP),
		zap.String("user_agent", meta.UserAgent))

	return result, nil
}

// metricLabel keeps label cardinality bounded for rejected names
func metricLabel(name string) string {
	if name == "" {
		return "missing"
	}
	return "unsupported"
}
