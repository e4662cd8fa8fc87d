package repos

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bazar/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// productRow mirrors the products table; image and tag lists live in JSON
// columns the way the domain struct can't express directly.
type productRow struct {
	domain.Product
	ImagesJSON string `db:"images_json"`
	TagsJSON   string `db:"tags_json"`
}

func (row productRow) toDomain() domain.Product {
	p := row.Product
	_ = json.Unmarshal([]byte(row.ImagesJSON), &p.ImageURLs)
	_ = json.Unmarshal([]byte(row.TagsJSON), &p.Tags)
	return p
}

func marshalList(ss []string) string {
	if ss == nil {
		ss = []string{}
	}
	b, _ := json.Marshal(ss)
	return string(b)
}

const productCols = `id,store_id,store_name,name,description,price,discount_price,category,
  images_json,stock,available,rating,total_ratings,tags_json,created_at`

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var row productRow
	err := r.db.Get(&row, `SELECT `+productCols+` FROM products WHERE id=?`, id)
	if err != nil {
		return domain.Product{}, err
	}
	return row.toDomain(), nil
}

func (r *ProductRepo) ListByStore(storeID string) ([]domain.Product, error) {
	var rows []productRow
	err := r.db.Select(&rows, `
	  SELECT `+productCols+` FROM products
	  WHERE store_id=?
	  ORDER BY created_at DESC`, storeID)
	return toProducts(rows), err
}

// Recommended returns available products ordered by rating.
func (r *ProductRepo) Recommended(limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []productRow
	err := r.db.Select(&rows, `
	  SELECT `+productCols+` FROM products
	  WHERE available=1
	  ORDER BY rating DESC, created_at DESC
	  LIMIT ?`, limit)
	return toProducts(rows), err
}

// ListAvailable feeds the search filter, which matches substrings in Go
// (name, description, category and tags).
func (r *ProductRepo) ListAvailable() ([]domain.Product, error) {
	var rows []productRow
	err := r.db.Select(&rows, `
	  SELECT `+productCols+` FROM products
	  WHERE available=1
	  ORDER BY created_at DESC`)
	return toProducts(rows), err
}

// Add inserts a product, assigning an id when none is set, and returns the id.
func (r *ProductRepo) Add(p domain.Product) (string, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.db.Exec(`
	  INSERT INTO products(id,store_id,store_name,name,description,price,discount_price,category,
	    images_json,stock,available,rating,total_ratings,tags_json,created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.ID, p.StoreID, p.StoreName, p.Name, p.Description, p.Price, p.DiscountPrice, p.Category,
		marshalList(p.ImageURLs), p.Stock, p.Available, p.Rating, p.TotalRatings, marshalList(p.Tags), p.CreatedAt)
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

func (r *ProductRepo) Update(id string, p domain.Product) error {
	_, err := r.db.Exec(`
	  UPDATE products SET name=?, description=?, price=?, discount_price=?, category=?,
	    images_json=?, stock=?, available=?, tags_json=?
	  WHERE id=?`,
		p.Name, p.Description, p.Price, p.DiscountPrice, p.Category,
		marshalList(p.ImageURLs), p.Stock, p.Available, marshalList(p.Tags), id)
	return err
}

func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id=?`, id)
	return err
}

func toProducts(rows []productRow) []domain.Product {
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
