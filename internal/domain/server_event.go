package domain

// RawUserData holds the caller-supplied identifiers before normalization.
// Values of this type must never leave the process.
type RawUserData struct {
	Email     string
	Phone     string
	FirstName string
	LastName  string
	City      string
	State     string
	ZipCode   string
	Country   string
}

// UserData is the customer information block of a server event.
// Hashed identifiers are single-element lists; absent keys are omitted.
type UserData struct {
	Email           []string `json:"em,omitempty"`
	Phone           []string `json:"ph,omitempty"`
	FirstName       []string `json:"fn,omitempty"`
	LastName        []string `json:"ln,omitempty"`
	City            []string `json:"ct,omitempty"`
	State           []string `json:"st,omitempty"`
	ZipCode         []string `json:"zp,omitempty"`
	Country         []string `json:"country,omitempty"`
	ClientUserAgent string   `json:"client_user_agent,omitempty"`
	ClientIPAddress string   `json:"client_ip_address,omitempty"`
}

// Pass-through custom data fields copied verbatim from the inbound payload
const (
	CustomFieldContentName     = "content_name"
	CustomFieldContentCategory = "content_category"
	CustomFieldContentIDs      = "content_ids"
	CustomFieldNumItems        = "num_items"
)

// DefaultCurrency is applied when custom data carries no currency
const DefaultCurrency = "BRL"

// CustomData is the business data block of a server event
type CustomData struct {
	Value           *float64    `json:"value,omitempty"`
	Currency        string      `json:"currency"`
	ContentName     interface{} `json:"content_name,omitempty"`
	ContentCategory interface{} `json:"content_category,omitempty"`
	ContentIDs      interface{} `json:"content_ids,omitempty"`
	NumItems        interface{} `json:"num_items,omitempty"`
}

// ServerEvent is a single event in the Conversions API wire format
type ServerEvent struct {
	EventName      EventName   `json:"event_name"`
	EventTime      int64       `json:"event_time"`
	ActionSource   string      `json:"action_source"`
	EventSourceURL string      `json:"event_source_url"`
	UserData       UserData    `json:"user_data"`
	CustomData     *CustomData `json:"custom_data,omitempty"`
}
