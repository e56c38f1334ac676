package models

import "time"

// ReviewStatus controls a review's visibility on the place page
type ReviewStatus string

const (
	ReviewStatusDefault  ReviewStatus = "DEFAULT"
	ReviewStatusHidden   ReviewStatus = "HIDDEN"
	ReviewStatusFeatured ReviewStatus = "FEATURED"
)

// ValidReviewStatus reports whether s is one of the three known statuses
func ValidReviewStatus(s ReviewStatus) bool {
	switch s {
	case ReviewStatusDefault, ReviewStatusHidden, ReviewStatusFeatured:
		return true
	}
	return false
}

// Place is a point of interest keyed by the provider-assigned id. Attribute
// fields are refreshable snapshots of provider data; only MerchantID is
// mutated locally (claim/unclaim).
type Place struct {
	ID                 string    `json:"id" gorm:"primaryKey"`
	Name               string    `json:"name" gorm:"not null"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	Address            string    `json:"address"`
	Delivery           bool      `json:"delivery" gorm:"default:false"`
	Takeout            bool      `json:"takeout" gorm:"default:false"`
	DineIn             bool      `json:"dine_in" gorm:"default:false"`
	OutdoorSeating     bool      `json:"outdoor_seating" gorm:"default:false"`
	Reservable         bool      `json:"reservable" gorm:"default:false"`
	ServesBreakfast    bool      `json:"serves_breakfast" gorm:"default:false"`
	ServesLunch        bool      `json:"serves_lunch" gorm:"default:false"`
	ServesDinner       bool      `json:"serves_dinner" gorm:"default:false"`
	AllowsDogs         bool      `json:"allows_dogs" gorm:"default:false"`
	GoodForChildren    bool      `json:"good_for_children" gorm:"default:false"`
	AcceptsCreditCards bool      `json:"accepts_credit_cards" gorm:"default:false"`
	AcceptsCashOnly    bool      `json:"accepts_cash_only" gorm:"default:false"`
	PriceLevel         *int      `json:"price_level"` // 1-4, nil when unspecified
	IsFree             bool      `json:"is_free" gorm:"default:false"`
	Rating             float64   `json:"rating" gorm:"default:0"`
	UserRatingCount    int       `json:"user_rating_count" gorm:"default:0"`
	EditorialSummary   string    `json:"editorial_summary"`
	GenerativeSummary  string    `json:"generative_summary"`
	MerchantID         *uint     `json:"merchant_id"`
	Merchant           *Merchant `json:"merchant,omitempty" gorm:"foreignKey:MerchantID"`
	Reviews            []Review  `json:"reviews,omitempty" gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Claimed reports whether the place is currently owned by a merchant
func (p *Place) Claimed() bool {
	return p.MerchantID != nil
}

// Review text is guaranteed non-empty: empty-text reviews are dropped when the
// provider document is transformed.
type Review struct {
	ID           string       `json:"id" gorm:"primaryKey"`
	PlaceID      string       `json:"place_id" gorm:"not null;index"`
	Rating       int          `json:"rating" gorm:"not null"`
	Text         string       `json:"text" gorm:"not null"`
	RelativeTime string       `json:"relative_time"`
	Status       ReviewStatus `json:"status" gorm:"not null;default:'DEFAULT'"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
