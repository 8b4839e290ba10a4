package delivery

// ResolvedLocation is the shopper's last confirmed delivery location, cached
// between visits.
type ResolvedLocation struct {
	Pincode         string `json:"pincode"`
	LocationName    string `json:"location_name"`
	DeliveryTier    int    `json:"delivery_tier"`
	DeliveryMessage string `json:"delivery_message"`
}

// TierSummary names the tier an estimate resolved to.
type TierSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// EstimateDTO is the full payload behind the product-page delivery widget.
type EstimateDTO struct {
	Pincode          string      `json:"pincode,omitempty"`
	LocationName     string      `json:"location_name"`
	Tier             TierSummary `json:"tier"`
	DeliveryMessage  string      `json:"delivery_message"`
	DayRangeText     string      `json:"day_range_text"`
	MinDate          string      `json:"min_date"`
	MaxDate          string      `json:"max_date"`
	ExpressAvailable bool        `json:"express_available"`
}

// SavedLocationDTO is the read side of the shopper's cached location.
// Cached is false when the default fallback location is returned.
type SavedLocationDTO struct {
	ResolvedLocation
	Cached bool `json:"cached"`
}
