package provider

// Shapes below mirror the provider's place-details document. Optional fields
// are pointers so that "absent" is distinguishable from a false/zero value.

type LocalizedText struct {
	Text         string `json:"text,omitempty"`
	LanguageCode string `json:"languageCode,omitempty"`
}

type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type PaymentOptions struct {
	AcceptsCreditCards *bool `json:"acceptsCreditCards,omitempty"`
	AcceptsCashOnly    *bool `json:"acceptsCashOnly,omitempty"`
}

type GenerativeSummary struct {
	Overview *LocalizedText `json:"overview,omitempty"`
}

// Review is a nested review resource. Name is the full resource name,
// e.g. "places/<placeId>/reviews/<reviewId>".
type Review struct {
	Name                           string         `json:"name"`
	Rating                         int            `json:"rating"`
	Text                           *LocalizedText `json:"text,omitempty"`
	OriginalText                   *LocalizedText `json:"originalText,omitempty"`
	RelativePublishTimeDescription string         `json:"relativePublishTimeDescription,omitempty"`
}

// PlaceDetails is the provider's native detail document.
type PlaceDetails struct {
	ID                string             `json:"id"`
	DisplayName       *LocalizedText     `json:"displayName,omitempty"`
	Location          *LatLng            `json:"location,omitempty"`
	FormattedAddress  string             `json:"formattedAddress,omitempty"`
	PriceLevel        string             `json:"priceLevel,omitempty"`
	Rating            float64            `json:"rating,omitempty"`
	UserRatingCount   int                `json:"userRatingCount,omitempty"`
	Delivery          *bool              `json:"delivery,omitempty"`
	Takeout           *bool              `json:"takeout,omitempty"`
	DineIn            *bool              `json:"dineIn,omitempty"`
	OutdoorSeating    *bool              `json:"outdoorSeating,omitempty"`
	Reservable        *bool              `json:"reservable,omitempty"`
	ServesBreakfast   *bool              `json:"servesBreakfast,omitempty"`
	ServesLunch       *bool              `json:"servesLunch,omitempty"`
	ServesDinner      *bool              `json:"servesDinner,omitempty"`
	AllowsDogs        *bool              `json:"allowsDogs,omitempty"`
	GoodForChildren   *bool              `json:"goodForChildren,omitempty"`
	PaymentOptions    *PaymentOptions    `json:"paymentOptions,omitempty"`
	EditorialSummary  *LocalizedText     `json:"editorialSummary,omitempty"`
	GenerativeSummary *GenerativeSummary `json:"generativeSummary,omitempty"`
	Reviews           []Review           `json:"reviews,omitempty"`
}
