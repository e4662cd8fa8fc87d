package services

import (
	"time"

	"github.com/google/uuid"

	"bazar/internal/apperr"
	"bazar/internal/domain"
	"bazar/internal/repos"
)

// OrderWriter is the slice of the order store checkout needs; tests swap in
// failing writers to exercise partial-commit behavior.
type OrderWriter interface {
	Create(o domain.Order) (string, error)
}

// CheckoutService converts the cart into one PENDING order per store.
// Orders are submitted sequentially with no cross-order transaction: a
// failure aborts the remaining submissions, already-written orders stay
// committed, and the cart is only cleared after every order succeeded.
// Retrying after a partial failure can therefore duplicate orders for
// stores that already committed; the checkout id stamped on each attempt
// makes such duplicates visible downstream.
type CheckoutService struct {
	Carts  *repos.CartRepo
	Orders OrderWriter
}

func NewCheckoutService(carts *repos.CartRepo, orders OrderWriter) *CheckoutService {
	return &CheckoutService{Carts: carts, Orders: orders}
}

// Place validates preconditions, partitions the cart by store and submits
// one order per partition. It returns the ids of the created orders.
func (s *CheckoutService) Place(sessionID, userID, shippingAddress, paymentMethod string) ([]string, error) {
	if userID == "" {
		return nil, apperr.E(apperr.Auth, "checkout.place", "you must be signed in to place an order")
	}
	if shippingAddress == "" {
		return nil, apperr.E(apperr.Validation, "checkout.place", "enter a shipping address")
	}

	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return nil, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperr.E(apperr.Validation, "checkout.place", "cart is empty")
	}

	// Partition by store, preserving first-seen store order.
	byStore := map[string][]domain.CartItem{}
	var storeOrder []string
	for _, it := range items {
		if _, ok := byStore[it.StoreID]; !ok {
			storeOrder = append(storeOrder, it.StoreID)
		}
		byStore[it.StoreID] = append(byStore[it.StoreID], it)
	}

	now := time.Now().UnixMilli()
	checkoutID := uuid.NewString()

	var orderIDs []string
	for _, storeID := range storeOrder {
		lines := byStore[storeID]

		orderItems := make([]domain.OrderItem, 0, len(lines))
		total := 0.0
		for _, line := range lines {
			orderItems = append(orderItems, domain.OrderItem{
				ProductID:    line.ProductID,
				ProductName:  line.ProductName,
				ProductImage: line.ProductImage,
				Quantity:     line.Quantity,
				Price:        line.Price,
			})
			total += line.LineTotal()
		}

		order := domain.Order{
			UserID:          userID,
			StoreID:         storeID,
			StoreName:       lines[0].StoreName,
			CheckoutID:      checkoutID,
			Items:           orderItems,
			TotalAmount:     total,
			Status:          domain.StatusPending,
			ShippingAddress: shippingAddress,
			PaymentMethod:   paymentMethod,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		id, err := s.Orders.Create(order)
		if err != nil {
			// No compensation: earlier orders stay committed and the cart
			// is left intact so the user can retry.
			return orderIDs, apperr.Wrap(apperr.Remote, "checkout.place", "could not create order", err)
		}
		orderIDs = append(orderIDs, id)
	}

	if err := s.Carts.Clear(cartID); err != nil {
		return orderIDs, err
	}
	return orderIDs, nil
}
