package dto

import "github.com/Porto7/dev-pixel/internal/domain"

// UserData represents the raw customer identifiers of an inbound event
type UserData struct {
	Email     string `json:"email" example:"teste@exemplo.com"`
	Phone     string `json:"phone" example:"+5511999999999"`
	FirstName string `json:"firstName" example:"João"`
	LastName  string `json:"lastName" example:"Silva"`
	City      string `json:"city" example:"São Paulo"`
	State     string `json:"state" example:"SP"`
	ZipCode   string `json:"zipCode" example:"01234567"`
	Country   string `json:"country" example:"BR"`
}

// ToDomain converts the wire shape into the normalizer input
func (u UserData) ToDomain() domain.RawUserData {
	return domain.RawUserData{
		Email:     u.Email,
		Phone:     u.Phone,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		City:      u.City,
		State:     u.State,
		ZipCode:   u.ZipCode,
		Country:   u.Country,
	}
}

// ForwardEventRequest represents an inbound conversion event
type ForwardEventRequest struct {
	EventName  string                 `json:"eventName" example:"Purchase"`
	UserData   UserData               `json:"userData"`
	CustomData map[string]interface{} `json:"customData" swaggertype:"object" example:"value:149.9,currency:BRL"`
	EventTime  int64                  `json:"eventTime" example:"1723475612"`
	SourceURL  string                 `json:"sourceUrl" example:"https://exemplo.com/checkout"`
	UserAgent  string                 `json:"userAgent"`
	ClientIP   string                 `json:"clientIp"`
}

// RequestMeta carries the transport metadata used as fallbacks by the assembler
type RequestMeta struct {
	Origin    string
	UserAgent string
	ClientIP  string
}
