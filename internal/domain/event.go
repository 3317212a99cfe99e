package domain

// EventName is one of the standard events accepted by the Conversions API
type EventName string

const (
	EventPurchase             EventName = "Purchase"
	EventAddToCart            EventName = "AddToCart"
	EventInitiateCheckout     EventName = "InitiateCheckout"
	EventLead                 EventName = "Lead"
	EventCompleteRegistration EventName = "CompleteRegistration"
	EventViewContent          EventName = "ViewContent"
	EventSearch               EventName = "Search"
	EventAddToWishlist        EventName = "AddToWishlist"
	EventPageView             EventName = "PageView"
)

// ActionSourceWebsite is the only action source this service reports
const ActionSourceWebsite = "website"

// EventDescriptor pairs a supported event with a human-readable description
type EventDescriptor struct {
	Name        EventName
	Description string
}

// catalog is ordered; it drives both validation and the events endpoint.
var catalog = []EventDescriptor{
	{Name: EventPurchase, Description: "Purchase completed"},
	{Name: EventAddToCart, Description: "Product added to cart"},
	{Name: EventInitiateCheckout, Description: "Checkout started"},
	{Name: EventLead, Description: "Lead captured"},
	{Name: EventCompleteRegistration, Description: "Registration completed"},
	{Name: EventViewContent, Description: "Content viewed"},
	{Name: EventSearch, Description: "Search performed"},
	{Name: EventAddToWishlist, Description: "Added to wishlist"},
	{Name: EventPageView, Description: "Page viewed"},
}

// ParseEventName returns the EventName matching s exactly
func ParseEventName(s string) (EventName, bool) {
	for _, d := range catalog {
		if string(d.Name) == s {
			return d.Name, true
		}
	}
	return "", false
}

// SupportedEvents returns a copy of the event catalog
func SupportedEvents() []EventDescriptor {
	out := make([]EventDescriptor, len(catalog))
	copy(out, catalog)
	return out
}

// SupportedEventNames returns the event names in catalog order
func SupportedEventNames() []string {
	names := make([]string, 0, len(catalog))
	for _, d := range catalog {
		names = append(names, string(d.Name))
	}
	return names
}
