package services

import (
	"bazar/internal/apperr"
	"bazar/internal/domain"
	"bazar/internal/repos"
)

// CartService holds the cart reconciliation rules: quantities are silently
// clamped to the product's stock snapshot and never drop below 1 except by
// explicit removal.
type CartService struct {
	Carts *repos.CartRepo
}

func NewCartService(carts *repos.CartRepo) *CartService {
	return &CartService{Carts: carts}
}

// Add merges a candidate line into the cart. A new line is clamped to
// min(requested, stock); an existing line becomes min(existing+requested,
// stock) and its stock snapshot is refreshed, since stock may have moved
// since the line was first added. Clamping is silent.
func (s *CartService) Add(sessionID string, item domain.CartItem) error {
	if item.Stock <= 0 {
		return apperr.E(apperr.Validation, "cart.add", "product out of stock")
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}

	existing, err := s.Carts.GetItem(cartID, item.ProductID)
	if err != nil {
		return err
	}
	if existing == nil {
		if item.Quantity > item.Stock {
			item.Quantity = item.Stock
		}
		return s.Carts.InsertItem(cartID, item)
	}

	qty := existing.Quantity + item.Quantity
	if qty > item.Stock {
		qty = item.Stock
	}
	return s.Carts.SetQty(cartID, item.ProductID, qty, item.Stock)
}

// Increment bumps a line by one; blocked once quantity reaches the stock
// snapshot.
func (s *CartService) Increment(sessionID, productID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	it, err := s.Carts.GetItem(cartID, productID)
	if err != nil {
		return err
	}
	if it == nil {
		return apperr.E(apperr.NotFound, "cart.increment", "item not in cart")
	}
	if it.Quantity >= it.Stock {
		return apperr.E(apperr.Validation, "cart.increment", "no more stock available")
	}
	return s.Carts.SetQty(cartID, productID, it.Quantity+1, it.Stock)
}

// Decrement lowers a line by one; a no-op at quantity 1 (removal is a
// separate explicit action).
func (s *CartService) Decrement(sessionID, productID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	it, err := s.Carts.GetItem(cartID, productID)
	if err != nil {
		return err
	}
	if it == nil {
		return apperr.E(apperr.NotFound, "cart.decrement", "item not in cart")
	}
	if it.Quantity <= 1 {
		return nil
	}
	return s.Carts.SetQty(cartID, productID, it.Quantity-1, it.Stock)
}

func (s *CartService) Remove(sessionID, productID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.RemoveItem(cartID, productID)
}

func (s *CartService) Clear(sessionID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.Clear(cartID)
}

type CartView struct {
	Items []domain.CartItem `json:"items"`
	Total float64           `json:"total"`
}

func (s *CartService) View(sessionID string) (CartView, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return CartView{}, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return CartView{}, err
	}
	total := 0.0
	for _, it := range items {
		total += it.LineTotal()
	}
	return CartView{Items: items, Total: total}, nil
}

func (s *CartService) Count(sessionID string) (int, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return 0, err
	}
	return s.Carts.Count(cartID)
}
