package repos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"bazar/internal/domain"
)

// CartRepo is the local cart store: one cart per session, line items keyed
// by product id. It serializes its own reads and writes but gives no
// transactional boundary spanning order submission.
type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

func (r *CartRepo) EnsureCart(sessionID string) (string, error) {
	var cartID string
	err := r.db.Get(&cartID, `SELECT id FROM carts WHERE session_id = ?`, sessionID)
	if err == nil {
		return cartID, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}
	_, err = r.db.Exec(`INSERT INTO carts(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// GetItem returns the line for a product, or nil when the cart has none.
func (r *CartRepo) GetItem(cartID, productID string) (*domain.CartItem, error) {
	var it domain.CartItem
	err := r.db.Get(&it, `
	  SELECT product_id,store_id,store_name,product_name,product_image,unit_price,qty,stock
	  FROM cart_items
	  WHERE cart_id=? AND product_id=?`, cartID, productID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *CartRepo) InsertItem(cartID string, it domain.CartItem) error {
	_, err := r.db.Exec(`
	  INSERT INTO cart_items(cart_id,product_id,store_id,store_name,product_name,product_image,
	    unit_price,qty,stock,created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)`,
		cartID, it.ProductID, it.StoreID, it.StoreName, it.ProductName, it.ProductImage,
		it.Price, it.Quantity, it.Stock)
	return err
}

// SetQty updates a line's quantity together with its stock snapshot.
func (r *CartRepo) SetQty(cartID, productID string, qty, stock int) error {
	_, err := r.db.Exec(`
	  UPDATE cart_items SET qty=?, stock=?, updated_at=CURRENT_TIMESTAMP
	  WHERE cart_id=? AND product_id=?`, qty, stock, cartID, productID)
	return err
}

func (r *CartRepo) RemoveItem(cartID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id=? AND product_id=?`, cartID, productID)
	return err
}

func (r *CartRepo) Items(cartID string) ([]domain.CartItem, error) {
	items := []domain.CartItem{}
	err := r.db.Select(&items, `
	  SELECT product_id,store_id,store_name,product_name,product_image,unit_price,qty,stock
	  FROM cart_items
	  WHERE cart_id=?
	  ORDER BY created_at, product_id`, cartID)
	return items, err
}

func (r *CartRepo) Count(cartID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COALESCE(SUM(qty),0) FROM cart_items WHERE cart_id=?`, cartID)
	return n, err
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}
