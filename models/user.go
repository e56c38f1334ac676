package models

import "time"

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Merchant is the business-owner record. Each User has at most one Merchant;
// a Merchant may own many Places.
type Merchant struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Places    []Place   `json:"places,omitempty" gorm:"foreignKey:MerchantID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnerLabel is the identity shown in claim-conflict messages: username,
// falling back to email.
func (m *Merchant) OwnerLabel() string {
	if m.User.Name != "" {
		return m.User.Name
	}
	return m.User.Email
}
