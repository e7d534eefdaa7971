package product

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       int64     `json:"price"`
	Stock       int       `json:"stock"`
	Unit        *string   `json:"unit,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	SupplierID  string    `json:"supplierId"`
	CategoryID  string    `json:"categoryId"`
	IsActive    bool      `json:"isActive"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Hydrated on detail lookups.
	Supplier *SupplierInfo `json:"supplier,omitempty"`
}

// SupplierInfo carries the seller contact surface shown on a product
// page; store fields come from the supplier's approved store profile.
type SupplierInfo struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
	StoreName  *string `json:"storeName,omitempty"`
	StoreImage *string `json:"storeImage,omitempty"`
}

type CreateProductInput struct {
	Name        string
	Description *string
	Price       int64
	Stock       int
	Unit        *string
	ImageURL    *string
	CategoryID  string
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *int64
	Stock       *int
	Unit        *string
	ImageURL    *string
	CategoryID  *string
	IsActive    *bool
	Status      *Status
}
