package event

type Type string

const (
	ListingCreatedEvent   Type = "ListingCreatedEvent"
	ListingCancelledEvent Type = "ListingCancelledEvent"
	SaleSettledEvent      Type = "SaleSettledEvent"
)
