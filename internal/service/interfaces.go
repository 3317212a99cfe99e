package service

import (
	"context"

	"github.com/Porto7/dev-pixel/internal/capi"
	"github.com/Porto7/dev-pixel/internal/domain"
	"github.com/Porto7/dev-pixel/internal/dto"
)

// EventServicer defines the interface for event service operations
type EventServicer interface {
	ProcessEvent(ctx context.Context, req *dto.ForwardEventRequest, meta dto.RequestMeta) (*dto.ForwardEventResult, error)
}

// EventSubmitter delivers one server event upstream
type EventSubmitter interface {
	SendEvent(ctx context.Context, event *domain.ServerEvent) (*capi.Response, error)
}
