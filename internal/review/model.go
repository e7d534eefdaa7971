package review

import "time"

type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ProductID string    `json:"productId"`
	OrderID   string    `json:"orderId"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	// Hydrated for product review listings.
	UserName   *string `json:"userName,omitempty"`
	UserAvatar *string `json:"userAvatar,omitempty"`
}

type CreateReviewInput struct {
	OrderID   string
	ProductID string
	Rating    int
	Comment   *string
}
