package repos

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bazar/internal/domain"
)

type StoreRepo struct{ db *sqlx.DB }

func NewStoreRepo(db *sqlx.DB) *StoreRepo { return &StoreRepo{db: db} }

const storeCols = `id,owner_id,name,description,category,logo_url,banner_url,rating,total_ratings,active,created_at`

func (r *StoreRepo) Get(id string) (domain.Store, error) {
	var s domain.Store
	err := r.db.Get(&s, `SELECT `+storeCols+` FROM stores WHERE id=?`, id)
	return s, err
}

// ByOwner returns the owner's store, or nil when they have none.
func (r *StoreRepo) ByOwner(ownerID string) (*domain.Store, error) {
	var s domain.Store
	err := r.db.Get(&s, `SELECT `+storeCols+` FROM stores WHERE owner_id=? LIMIT 1`, ownerID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StoreRepo) ListActive() ([]domain.Store, error) {
	var out []domain.Store
	err := r.db.Select(&out, `
	  SELECT `+storeCols+` FROM stores
	  WHERE active=1
	  ORDER BY rating DESC, created_at DESC`)
	return out, err
}

// ListAll feeds the search filter; inactive stores are filtered out there.
func (r *StoreRepo) ListAll() ([]domain.Store, error) {
	var out []domain.Store
	err := r.db.Select(&out, `SELECT `+storeCols+` FROM stores ORDER BY created_at DESC`)
	return out, err
}

// Create inserts a store, assigning an id when none is set, and returns the id.
func (r *StoreRepo) Create(s domain.Store) (string, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	_, err := r.db.Exec(`
	  INSERT INTO stores(id,owner_id,name,description,category,logo_url,banner_url,rating,total_ratings,active,created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?)`,
		s.ID, s.OwnerID, s.Name, s.Description, s.Category, s.LogoURL, s.BannerURL,
		s.Rating, s.TotalRatings, s.Active, s.CreatedAt)
	if err != nil {
		return "", err
	}
	return s.ID, nil
}

func (r *StoreRepo) Update(id string, s domain.Store) error {
	_, err := r.db.Exec(`
	  UPDATE stores SET name=?, description=?, category=?, logo_url=?, banner_url=?, active=?
	  WHERE id=?`,
		s.Name, s.Description, s.Category, s.LogoURL, s.BannerURL, s.Active, id)
	return err
}
