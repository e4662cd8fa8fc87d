package services

import (
	"strings"
	"time"

	"bazar/internal/apperr"
	"bazar/internal/domain"
	"bazar/internal/repos"
)

type StoreService struct {
	Stores *repos.StoreRepo
}

func NewStoreService(stores *repos.StoreRepo) *StoreService { return &StoreService{Stores: stores} }

func (s *StoreService) Get(id string) (domain.Store, error) {
	return s.Stores.Get(id)
}

func (s *StoreService) ListActive() ([]domain.Store, error) {
	return s.Stores.ListActive()
}

func (s *StoreService) ByOwner(ownerID string) (*domain.Store, error) {
	return s.Stores.ByOwner(ownerID)
}

// Create opens the owner's store. One store per owner: an existing store is
// checked before the insert, and the role must allow selling.
func (s *StoreService) Create(owner *domain.User, store domain.Store) (string, error) {
	if !owner.Role.CanSell() {
		return "", apperr.E(apperr.Auth, "store.create", "only sellers can create a store")
	}
	existing, err := s.Stores.ByOwner(owner.ID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", apperr.E(apperr.Conflict, "store.create", "you already have a store")
	}

	store.ID = "" // assigned on insert
	store.OwnerID = owner.ID
	store.Active = true
	store.CreatedAt = time.Now().UnixMilli()
	id, err := s.Stores.Create(store)
	if err != nil {
		return "", apperr.Wrap(apperr.Remote, "store.create", "failed to create store", err)
	}
	return id, nil
}

func (s *StoreService) Update(ownerID, storeID string, store domain.Store) error {
	current, err := s.Stores.Get(storeID)
	if err != nil {
		return apperr.Wrap(apperr.NotFound, "store.update", "store not found", err)
	}
	if current.OwnerID != ownerID {
		return apperr.E(apperr.Auth, "store.update", "not your store")
	}
	return s.Stores.Update(storeID, store)
}

// Search filters active stores by case-insensitive substring over name,
// description and category.
func (s *StoreService) Search(query string) ([]domain.Store, error) {
	all, err := s.Stores.ListAll()
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	var out []domain.Store
	for _, st := range all {
		if !st.Active {
			continue
		}
		if query == "" ||
			containsFold(st.Name, query) ||
			containsFold(st.Description, query) ||
			containsFold(st.Category, query) {
			out = append(out, st)
		}
	}
	return out, nil
}
