package services

import (
	"strings"
	"time"

	"bazar/internal/apperr"
	"bazar/internal/domain"
	"bazar/internal/repos"
)

type CatalogService struct {
	Prods  *repos.ProductRepo
	Stores *repos.StoreRepo
}

func NewCatalogService(prods *repos.ProductRepo, stores *repos.StoreRepo) *CatalogService {
	return &CatalogService{Prods: prods, Stores: stores}
}

func (s *CatalogService) Get(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) Recommended(limit int) ([]domain.Product, error) {
	return s.Prods.Recommended(limit)
}

func (s *CatalogService) ListByStore(storeID string) ([]domain.Product, error) {
	return s.Prods.ListByStore(storeID)
}

// Search fetches available products and filters them by case-insensitive
// substring over name, description, category and tags. A blank query
// returns everything available.
func (s *CatalogService) Search(query string) ([]domain.Product, error) {
	all, err := s.Prods.ListAvailable()
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return all, nil
	}
	var out []domain.Product
	for _, p := range all {
		if matchesProduct(p, query) {
			out = append(out, p)
		}
	}
	return out, nil
}

func matchesProduct(p domain.Product, q string) bool {
	if containsFold(p.Name, q) || containsFold(p.Description, q) || containsFold(p.Category, q) {
		return true
	}
	for _, tag := range p.Tags {
		if containsFold(tag, q) {
			return true
		}
	}
	return false
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// AddProduct lists a product under the seller's own store.
func (s *CatalogService) AddProduct(sellerID string, p domain.Product) (string, error) {
	store, err := s.ownedStore(sellerID, "catalog.add")
	if err != nil {
		return "", err
	}
	p.ID = "" // assigned on insert
	p.StoreID = store.ID
	p.StoreName = store.Name
	p.CreatedAt = time.Now().UnixMilli()
	return s.Prods.Add(p)
}

func (s *CatalogService) UpdateProduct(sellerID, productID string, p domain.Product) error {
	store, err := s.ownedStore(sellerID, "catalog.update")
	if err != nil {
		return err
	}
	current, err := s.Prods.Get(productID)
	if err != nil {
		return apperr.Wrap(apperr.NotFound, "catalog.update", "product not found", err)
	}
	if current.StoreID != store.ID {
		return apperr.E(apperr.Auth, "catalog.update", "product belongs to another store")
	}
	return s.Prods.Update(productID, p)
}

func (s *CatalogService) DeleteProduct(sellerID, productID string) error {
	store, err := s.ownedStore(sellerID, "catalog.delete")
	if err != nil {
		return err
	}
	current, err := s.Prods.Get(productID)
	if err != nil {
		return apperr.Wrap(apperr.NotFound, "catalog.delete", "product not found", err)
	}
	if current.StoreID != store.ID {
		return apperr.E(apperr.Auth, "catalog.delete", "product belongs to another store")
	}
	return s.Prods.Delete(productID)
}

func (s *CatalogService) ownedStore(sellerID, op string) (*domain.Store, error) {
	store, err := s.Stores.ByOwner(sellerID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperr.E(apperr.NotFound, op, "you do not have a store yet")
	}
	return store, nil
}
