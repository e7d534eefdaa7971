package store

import "time"

type Profile struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	StoreName  string    `json:"storeName"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	ImageURL   *string   `json:"imageUrl,omitempty"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Hydrated on admin listings.
	OwnerName  *string `json:"ownerName,omitempty"`
	OwnerEmail *string `json:"ownerEmail,omitempty"`
}

type UpsertProfileInput struct {
	StoreName string
	Phone     string
	Address   string
	ImageURL  *string
}

// Complete reports whether the profile carries everything needed for an
// approval decision.
func (p *Profile) Complete() bool {
	return p.StoreName != "" && p.Phone != "" && p.Address != ""
}
