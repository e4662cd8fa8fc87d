package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bazar/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `id,user_id,store_id,store_name,checkout_id,total_amount,status,
  shipping_address,payment_method,payment_id,created_at,updated_at`

// Create persists the order header and its items in one transaction.
// The id is assigned here when the caller leaves it empty, mirroring the
// store-of-record assigning document ids on insert.
func (r *OrderRepo) Create(o domain.Order) (string, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders(id,user_id,store_id,store_name,checkout_id,total_amount,status,
	    shipping_address,payment_method,payment_id,created_at,updated_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?)`,
		o.ID, o.UserID, o.StoreID, o.StoreName, o.CheckoutID, o.TotalAmount, o.Status,
		o.ShippingAddress, o.PaymentMethod, o.PaymentID, o.CreatedAt, o.UpdatedAt); err != nil {
		return "", err
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id,product_id,product_name,product_image,qty,price)
		  VALUES(?,?,?,?,?,?)`,
			o.ID, it.ProductID, it.ProductName, it.ProductImage, it.Quantity, it.Price); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return o.ID, nil
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id=?`, id); err != nil {
		return domain.Order{}, err
	}
	items, err := r.items(id)
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepo) ListByUser(userID string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT `+orderCols+` FROM orders
	  WHERE user_id=?
	  ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return r.attachItems(out)
}

func (r *OrderRepo) ListByStore(storeID string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT `+orderCols+` FROM orders
	  WHERE store_id=?
	  ORDER BY created_at DESC`, storeID)
	if err != nil {
		return nil, err
	}
	return r.attachItems(out)
}

func (r *OrderRepo) UpdateStatus(id string, status domain.OrderStatus, updatedAt int64) error {
	_, err := r.db.Exec(`UPDATE orders SET status=?, updated_at=? WHERE id=?`, status, updatedAt, id)
	return err
}

func (r *OrderRepo) items(orderID string) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	err := r.db.Select(&items, `
	  SELECT product_id,product_name,product_image,qty,price
	  FROM order_items
	  WHERE order_id=?
	  ORDER BY product_name`, orderID)
	return items, err
}

func (r *OrderRepo) attachItems(orders []domain.Order) ([]domain.Order, error) {
	for i := range orders {
		items, err := r.items(orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}
