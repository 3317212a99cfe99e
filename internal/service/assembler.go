package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Porto7/dev-pixel/internal/domain"
	"github.com/Porto7/dev-pixel/internal/dto"
	"github.com/Porto7/dev-pixel/internal/pii"
)

const unknownSourceURL = "unknown"

// buildServerEvent maps a validated inbound request onto the wire event
func buildServerEvent(name domain.EventName, req *dto.ForwardEventRequest, meta dto.RequestMeta, now time.Time) *domain.ServerEvent {
	event := &domain.ServerEvent{
		EventName:      name,
		EventTime:      req.EventTime,
		ActionSource:   domain.ActionSourceWebsite,
		EventSourceURL: firstNonEmpty(req.SourceURL, meta.Origin, unknownSourceURL),
		UserData:       pii.HashUserData(req.UserData.ToDomain()),
		CustomData:     buildCustomData(req.CustomData),
	}

	if event.EventTime == 0 {
		event.EventTime = now.Unix()
	}

	event.UserData.ClientUserAgent = firstNonEmpty(req.UserAgent, meta.UserAgent)
	event.UserData.ClientIPAddress = firstNonEmpty(req.ClientIP, meta.ClientIP)

	return event
}

// buildCustomData returns nil for an empty mapping so custom_data is omitted
func buildCustomData(in map[string]interface{}) *domain.CustomData {
	if len(in) == 0 {
		return nil
	}

	out := &domain.CustomData{Currency: domain.DefaultCurrency}

	if v, ok := numericValue(in["value"]); ok {
		out.Value = &v
	}

	if currency, ok := in["currency"].(string); ok && strings.TrimSpace(currency) != "" {
		out.Currency = strings.ToUpper(strings.TrimSpace(currency))
	}

	out.ContentName = in[domain.CustomFieldContentName]
	out.ContentCategory = in[domain.CustomFieldContentCategory]
	out.ContentIDs = in[domain.CustomFieldContentIDs]
	out.NumItems = in[domain.CustomFieldNumItems]

	return out
}

// numericValue accepts JSON numbers and numeric strings
func numericValue(v interface{}) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
