package domain

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusPreparing OrderStatus = "PREPARING"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusShipped,
		StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// next in the fulfillment chain; empty for terminal states.
var statusNext = map[OrderStatus]OrderStatus{
	StatusPending:   StatusConfirmed,
	StatusConfirmed: StatusPreparing,
	StatusPreparing: StatusShipped,
	StatusShipped:   StatusDelivered,
}

// CanTransition reports whether an order may move from s to next.
// Orders advance one step at a time; CANCELLED is reachable from any
// state before DELIVERED. Orders are never deleted.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if next == StatusCancelled {
		return s != StatusDelivered && s != StatusCancelled
	}
	return statusNext[s] == next
}

type OrderItem struct {
	ProductID    string  `db:"product_id" json:"productId"`
	ProductName  string  `db:"product_name" json:"productName"`
	ProductImage string  `db:"product_image" json:"productImage"`
	Quantity     int     `db:"qty" json:"quantity"`
	Price        float64 `db:"price" json:"price"`
}

func (i OrderItem) LineTotal() float64 { return i.Price * float64(i.Quantity) }

type Order struct {
	ID              string      `db:"id" json:"id"`
	UserID          string      `db:"user_id" json:"userId"`
	StoreID         string      `db:"store_id" json:"storeId"`
	StoreName       string      `db:"store_name" json:"storeName"`
	CheckoutID      string      `db:"checkout_id" json:"checkoutId"`
	Items           []OrderItem `db:"-" json:"items"`
	TotalAmount     float64     `db:"total_amount" json:"totalAmount"`
	Status          OrderStatus `db:"status" json:"status"`
	ShippingAddress string      `db:"shipping_address" json:"shippingAddress"`
	PaymentMethod   string      `db:"payment_method" json:"paymentMethod"`
	PaymentID       string      `db:"payment_id" json:"paymentId"`
	CreatedAt       int64       `db:"created_at" json:"createdAt"`
	UpdatedAt       int64       `db:"updated_at" json:"updatedAt"`
}
