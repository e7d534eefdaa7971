package order

import "time"

type Status string

const (
	StatusPlaced    Status = "placed"
	StatusConfirmed Status = "confirmed"
	StatusShipping  Status = "shipping"
	StatusCompleted Status = "completed"

	// StatusPaid is set together with IsPaid by payment reconciliation.
	StatusPaid Status = "paid"
)

// updatableStatuses are the fulfillment statuses callers may set through
// UpdateStatus. StatusPaid is deliberately absent: only reconciliation
// moves an order there, together with the is_paid flag.
var updatableStatuses = map[Status]bool{
	StatusPlaced:    true,
	StatusConfirmed: true,
	StatusShipping:  true,
	StatusCompleted: true,
}

func IsValidStatus(s Status) bool {
	return updatableStatuses[s]
}

// Amounts are whole VND, no fractional unit.
type Order struct {
	ID              string    `json:"id"`
	CustomerID      string    `json:"customerId"`
	Status          Status    `json:"status"`
	IsPaid          bool      `json:"isPaid"`
	TotalAmount     int64     `json:"totalAmount"`
	ShippingAddress string    `json:"shippingAddress"`
	PaymentMethod   string    `json:"paymentMethod"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	Items           []Item    `json:"items"`

	// Hydrated for supplier and admin views.
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
}

type Item struct {
	ID         int64  `json:"id"`
	OrderID    string `json:"orderId"`
	ProductID  string `json:"productId"`
	SupplierID string `json:"supplierId"`
	Quantity   int    `json:"quantity"`
	Price      int64  `json:"price"`
	IsReviewed bool   `json:"isReviewed"`

	ProductName  *string `json:"productName,omitempty"`
	ProductImage *string `json:"productImage,omitempty"`
}

type CreateOrderInput struct {
	CustomerID      string
	ShippingAddress string
	PaymentMethod   string
	TotalAmount     int64
	Items           []CreateOrderItem
}

type CreateOrderItem struct {
	ProductID  string
	SupplierID string
	Quantity   int
	Price      int64
}

// SupplierRevenue aggregates completed orders for one supplier.
type SupplierRevenue struct {
	TotalRevenue      int64 `json:"totalRevenue"`
	TotalOrdersCount  int   `json:"totalOrdersCount"`
	TotalProductsSold int   `json:"totalProductsSold"`
}

type DailyRevenue struct {
	Day     time.Time `json:"day"`
	Revenue int64     `json:"revenue"`
	Orders  int       `json:"orders"`
}

type ProductSales struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	UnitsSold   int    `json:"unitsSold"`
}

type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}
