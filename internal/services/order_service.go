package services

import (
	"time"

	"bazar/internal/apperr"
	"bazar/internal/domain"
	"bazar/internal/repos"
)

type OrderService struct {
	Orders *repos.OrderRepo
	Stores *repos.StoreRepo
}

func NewOrderService(orders *repos.OrderRepo, stores *repos.StoreRepo) *OrderService {
	return &OrderService{Orders: orders, Stores: stores}
}

func (s *OrderService) ListByUser(userID string) ([]domain.Order, error) {
	return s.Orders.ListByUser(userID)
}

// ListForSeller returns the orders of the seller's own store.
func (s *OrderService) ListForSeller(sellerID string) ([]domain.Order, error) {
	store, err := s.Stores.ByOwner(sellerID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperr.E(apperr.NotFound, "orders.seller", "you do not have a store yet")
	}
	return s.Orders.ListByStore(store.ID)
}

// Get returns an order visible to the requesting user: the buyer or the
// owner of the store it was placed with.
func (s *OrderService) Get(orderID string, u *domain.User) (domain.Order, error) {
	o, err := s.Orders.Get(orderID)
	if err != nil {
		return domain.Order{}, apperr.Wrap(apperr.NotFound, "orders.get", "order not found", err)
	}
	if o.UserID == u.ID {
		return o, nil
	}
	store, err := s.Stores.ByOwner(u.ID)
	if err != nil {
		return domain.Order{}, err
	}
	if store != nil && store.ID == o.StoreID {
		return o, nil
	}
	return domain.Order{}, apperr.E(apperr.NotFound, "orders.get", "order not found")
}

// UpdateStatus moves an order along the fulfillment chain; only the owning
// store may do so, and only along a legal transition.
func (s *OrderService) UpdateStatus(sellerID, orderID string, next domain.OrderStatus) error {
	if !next.Valid() {
		return apperr.E(apperr.Validation, "orders.status", "unknown order status")
	}
	o, err := s.Orders.Get(orderID)
	if err != nil {
		return apperr.Wrap(apperr.NotFound, "orders.status", "order not found", err)
	}
	store, err := s.Stores.ByOwner(sellerID)
	if err != nil {
		return err
	}
	if store == nil || store.ID != o.StoreID {
		return apperr.E(apperr.Auth, "orders.status", "not your order")
	}
	if !o.Status.CanTransition(next) {
		return apperr.E(apperr.Validation, "orders.status",
			"cannot move order from "+string(o.Status)+" to "+string(next))
	}
	return s.Orders.UpdateStatus(orderID, next, time.Now().UnixMilli())
}
