// Package transform converts between the provider's detail document and the
// persisted entity shape, in both directions. Normalization is idempotent:
// ToInternal(ToExternal(ToInternal(doc))) equals ToInternal(doc).
package transform

import (
	"errors"
	"fmt"
	"strings"

	"places-api/models"
	"places-api/provider"
)

// ErrMissingID rejects a provider document without an id.
var ErrMissingID = errors.New("provider document missing required id")

const (
	priceUnspecified   = "PRICE_LEVEL_UNSPECIFIED"
	priceFree          = "PRICE_LEVEL_FREE"
	priceInexpensive   = "PRICE_LEVEL_INEXPENSIVE"
	priceModerate      = "PRICE_LEVEL_MODERATE"
	priceExpensive     = "PRICE_LEVEL_EXPENSIVE"
	priceVeryExpensive = "PRICE_LEVEL_VERY_EXPENSIVE"
)

var priceLevels = map[string]int{
	priceFree:          1,
	priceInexpensive:   1,
	priceModerate:      2,
	priceExpensive:     3,
	priceVeryExpensive: 4,
}

// PriceLevel maps a provider price token to its 1-4 tier, nil for unspecified
// or unknown tokens. isFree is true only for the exact free-tier token.
func PriceLevel(token string) (level *int, isFree bool) {
	if v, ok := priceLevels[token]; ok {
		return &v, token == priceFree
	}
	return nil, false
}

func priceToken(level *int, isFree bool) string {
	if isFree {
		return priceFree
	}
	if level == nil {
		return priceUnspecified
	}
	switch *level {
	case 1:
		return priceInexpensive
	case 2:
		return priceModerate
	case 3:
		return priceExpensive
	case 4:
		return priceVeryExpensive
	}
	return priceUnspecified
}

func boolVal(p *bool) bool {
	return p != nil && *p
}

func textVal(t *provider.LocalizedText) string {
	if t == nil {
		return ""
	}
	return t.Text
}

// reviewID is the last path segment of the provider's review resource name
func reviewID(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// resolvedText prefers the primary text, falling back to the original-language
// text, trimmed either way.
func resolvedText(r provider.Review) string {
	if s := strings.TrimSpace(textVal(r.Text)); s != "" {
		return s
	}
	return strings.TrimSpace(textVal(r.OriginalText))
}

// ToInternal converts a provider document to a Place row plus its Review rows.
// Absent optional fields collapse to concrete defaults; reviews whose resolved
// text is empty are dropped.
func ToInternal(doc *provider.PlaceDetails) (*models.Place, []models.Review, error) {
	if doc == nil || doc.ID == "" {
		return nil, nil, ErrMissingID
	}

	place := &models.Place{
		ID:               doc.ID,
		Name:             textVal(doc.DisplayName),
		Address:          doc.FormattedAddress,
		Delivery:         boolVal(doc.Delivery),
		Takeout:          boolVal(doc.Takeout),
		DineIn:           boolVal(doc.DineIn),
		OutdoorSeating:   boolVal(doc.OutdoorSeating),
		Reservable:       boolVal(doc.Reservable),
		ServesBreakfast:  boolVal(doc.ServesBreakfast),
		ServesLunch:      boolVal(doc.ServesLunch),
		ServesDinner:     boolVal(doc.ServesDinner),
		AllowsDogs:       boolVal(doc.AllowsDogs),
		GoodForChildren:  boolVal(doc.GoodForChildren),
		Rating:           doc.Rating,
		UserRatingCount:  doc.UserRatingCount,
		EditorialSummary: textVal(doc.EditorialSummary),
	}
	place.PriceLevel, place.IsFree = PriceLevel(doc.PriceLevel)
	if doc.Location != nil {
		place.Latitude = doc.Location.Latitude
		place.Longitude = doc.Location.Longitude
	}
	if doc.PaymentOptions != nil {
		place.AcceptsCreditCards = boolVal(doc.PaymentOptions.AcceptsCreditCards)
		place.AcceptsCashOnly = boolVal(doc.PaymentOptions.AcceptsCashOnly)
	}
	if doc.GenerativeSummary != nil {
		place.GenerativeSummary = textVal(doc.GenerativeSummary.Overview)
	}

	var reviews []models.Review
	for _, r := range doc.Reviews {
		text := resolvedText(r)
		if text == "" {
			continue
		}
		reviews = append(reviews, models.Review{
			ID:           reviewID(r.Name),
			PlaceID:      doc.ID,
			Rating:       r.Rating,
			Text:         text,
			RelativeTime: r.RelativePublishTimeDescription,
			Status:       models.ReviewStatusDefault,
		})
	}
	return place, reviews, nil
}

// ToExternal is the dual of ToInternal: it rebuilds a provider-shaped detail
// view from persisted rows, with no loss versus what was stored.
func ToExternal(place *models.Place, reviews []models.Review) *provider.PlaceDetails {
	doc := &provider.PlaceDetails{
		ID:               place.ID,
		DisplayName:      &provider.LocalizedText{Text: place.Name},
		Location:         &provider.LatLng{Latitude: place.Latitude, Longitude: place.Longitude},
		FormattedAddress: place.Address,
		PriceLevel:       priceToken(place.PriceLevel, place.IsFree),
		Rating:           place.Rating,
		UserRatingCount:  place.UserRatingCount,
		Delivery:         &place.Delivery,
		Takeout:          &place.Takeout,
		DineIn:           &place.DineIn,
		OutdoorSeating:   &place.OutdoorSeating,
		Reservable:       &place.Reservable,
		ServesBreakfast:  &place.ServesBreakfast,
		ServesLunch:      &place.ServesLunch,
		ServesDinner:     &place.ServesDinner,
		AllowsDogs:       &place.AllowsDogs,
		GoodForChildren:  &place.GoodForChildren,
		PaymentOptions: &provider.PaymentOptions{
			AcceptsCreditCards: &place.AcceptsCreditCards,
			AcceptsCashOnly:    &place.AcceptsCashOnly,
		},
	}
	if place.EditorialSummary != "" {
		doc.EditorialSummary = &provider.LocalizedText{Text: place.EditorialSummary}
	}
	if place.GenerativeSummary != "" {
		doc.GenerativeSummary = &provider.GenerativeSummary{
			Overview: &provider.LocalizedText{Text: place.GenerativeSummary},
		}
	}
	for _, r := range reviews {
		doc.Reviews = append(doc.Reviews, provider.Review{
			Name:                           fmt.Sprintf("places/%s/reviews/%s", place.ID, r.ID),
			Rating:                         r.Rating,
			Text:                           &provider.LocalizedText{Text: r.Text},
			RelativePublishTimeDescription: r.RelativeTime,
		})
	}
	return doc
}
