package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Porto7/dev-pixel/internal/capi"
	"github.com/Porto7/dev-pixel/internal/domain"
	"github.com/Porto7/dev-pixel/internal/dto"
	"github.com/Porto7/dev-pixel/internal/pii"
)

const testCurrentTime int64 = 1766702551

// MockEventSubmitter is a mock implementation of EventSubmitter
type MockEventSubmitter struct {
	mock.Mock
}

func (m *MockEventSubmitter) SendEvent(ctx context.Context, event *domain.ServerEvent) (*capi.Response, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*capi.Response), args.Error(1)
}

func newTestService(submitter EventSubmitter) *EventService {
	s := NewEventService(submitter, zap.NewNop())
	s.now = func() time.Time { return time.Unix(testCurrentTime, 0) }
	return s
}

// captureEvent records the event passed to SendEvent
func captureEvent(m *MockEventSubmitter, resp *capi.Response) *domain.ServerEvent {
	captured := &domain.ServerEvent{}
	m.On("SendEvent", mock.Anything, mock.AnythingOfType("*domain.ServerEvent")).
		Run(func(args mock.Arguments) {
			*captured = *args.Get(1).(*domain.ServerEvent)
		}).
		Return(resp, nil).Once()
	return captured
}

func TestEventService_ProcessEvent_PurchaseScenario(t *testing.T) {
	submitter := new(MockEventSubmitter)
	service := newTestService(submitter)
	captured := captureEvent(submitter, &capi.Response{EventsReceived: 1, FBTraceID: "trace"})

	req := &dto.ForwardEventRequest{
		EventName: "Purchase",
		UserData: dto.UserData{
			Email: "a@b.com",
			Phone: "+15555550123",
		},
		CustomData: map[string]interface{}{
			"value":    10.5,
			"currency": "usd",
		},
	}

	result, err := service.ProcessEvent(context.Background(), req, dto.RequestMeta{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.EventsReceived)
	assert.Equal(t, "trace", result.FBTraceID)

	assert.Equal(t, domain.EventPurchase, captured.EventName)
	assert.Equal(t, []string{pii.Hash("a@b.com")}, captured.UserData.Email)
	assert.Equal(t, []string{pii.Hash("15555550123")}, captured.UserData.Phone)

	require.NotNil(t, captured.CustomData)
	require.NotNil(t, captured.CustomData.Value)
	assert.Equal(t, 10.5, *captured.CustomData.Value)
	assert.Equal(t, "USD", captured.CustomData.Currency)
	assert.Nil(t, captured.CustomData.ContentName)
	assert.Nil(t, captured.CustomData.ContentIDs)
	submitter.AssertNumberOfCalls(t, "SendEvent", 1)
}

func TestEventService_ProcessEvent_EventNamePreserved(t *testing.T) {
	for _, name := range domain.SupportedEventNames() {
		t.Run(name, func(t *testing.T) {
			submitter := new(MockEventSubmitter)
			service := newTestService(submitter)
			captured := captureEvent(submitter, &capi.Response{EventsReceived: 1})

			_, err := service.ProcessEvent(context.Background(), &dto.ForwardEventRequest{EventName: name}, dto.RequestMeta{})

			require.NoError(t, err)
			assert.Equal(t, name, string(captured.EventName))
			assert.Equal(t, domain.ActionSourceWebsite, captured.ActionSource)
		})
	}
}

func TestEventService_ProcessEvent_MissingEventName(t *testing.T) {
	submitter := new(MockEventSubmitter)
	service := newTestService(submitter)

	result, err := service.ProcessEvent(context.Background(), &dto.ForwardEventRequest{}, dto.RequestMeta{})

	assert.Nil(t, result)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, CodeMissingEventName, vErr.Code)
	submitter.AssertNotCalled(t, "SendEvent", mock.Anything, mock.Anything)
}

func TestEventService_ProcessEvent_UnsupportedEvent(t *testing.T) {
	submitter := new(MockEventSubmitter)
	service := newTestService(submitter)

	result, err := service.ProcessEvent(context.Background(), &dto.ForwardEventRequest{EventName: "Foo"}, dto.RequestMeta{})

	assert.Nil(t, result)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, CodeUnsupportedEvent, vErr.Code)
	assert.Contains(t, vErr.Message, "Purchase, AddToCart, InitiateCheckout")
	assert.Contains(t, vErr.Message, "PageView")
	submitter.AssertNumberOfCalls(t, "SendEvent", 0)
}

func TestEventService_ProcessEvent_SubmitterError(t *testing.T) {
	submitter := new(MockEventSubmitter)
	service := newTestService(submitter)

	upstreamErr := &capi.APIError{StatusCode: 400, Body: map[string]interface{}{"error": "bad"}}
	submitter.On("SendEvent", mock.Anything, mock.Anything).Return(nil, upstreamErr).Once()

	result, err := service.ProcessEvent(context.Background(), &dto.ForwardEventRequest{EventName: "Lead"}, dto.RequestMeta{})

	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "failed to forward event")
	var apiErr *capi.APIError
	assert.True(t, errors.As(err, &apiErr))
	var vErr *ValidationError
	assert.False(t, errors.As(err, &vErr))
	submitter.AssertNumberOfCalls(t, "SendEvent", 1)
}

func TestEventService_ProcessEvent_DefaultsEventsReceived(t *testing.T) {
	submitter := new(MockEventSubmitter)
	service := newTestService(submitter)
	captureEvent(submitter, &capi.Response{})

	result, err := service.ProcessEvent(context.Background(), &dto.ForwardEventRequest{EventName: "PageView"}, dto.RequestMeta{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.EventsReceived)
}

func TestEventService_ProcessEvent_SilentlyDropsInvalidPII(t *testing.T) {
	submitter := new(MockEventSubmitter)
	service := newTestService(submitter)
	captured := captureEvent(submitter, &capi.Response{EventsReceived: 1})

	req := &dto.ForwardEventRequest{
		EventName: "Lead",
		UserData: dto.UserData{
			Email:     "not-an-email",
			Phone:     "123",
			FirstName: "Maria",
		},
	}

	_, err := service.ProcessEvent(context.Background(), req, dto.RequestMeta{})

	require.NoError(t, err)
	assert.Nil(t, captured.UserData.Email)
	assert.Nil(t, captured.UserData.Phone)
	assert.Equal(t, []string{pii.Hash("maria")}, captured.UserData.FirstName)
}

func TestEventService_ProcessEvent_TransportFallbacks(t *testing.T) {
	submitter := new(MockEventSubmitter)
	service := newTestService(submitter)
	captured := captureEvent(submitter, &capi.Response{EventsReceived: 1})

	meta := dto.RequestMeta{
		Origin:    "https://shop.example.com",
		UserAgent: "Mozilla/5.0",
		ClientIP:  "203.0.113.7",
	}

	_, err := service.ProcessEvent(context.Background(), &dto.ForwardEventRequest{EventName: "ViewContent"}, meta)

	require.NoError(t, err)
	assert.Equal(t, testCurrentTime, captured.EventTime)
	assert.Equal(t, "https://shop.example.com", captured.EventSourceURL)
	assert.Equal(t, "Mozilla/5.0", captured.UserData.ClientUserAgent)
	assert.Equal(t, "203.0.113.7", captured.UserData.ClientIPAddress)
	assert.Nil(t, captured.CustomData)
}
