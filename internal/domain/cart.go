package domain

// CartItem is one cart line, keyed by product id. Stock is the snapshot of
// available stock taken when the line was added or last refreshed; quantity
// never exceeds it.
type CartItem struct {
	ProductID    string  `db:"product_id" json:"productId"`
	StoreID      string  `db:"store_id" json:"storeId"`
	StoreName    string  `db:"store_name" json:"storeName"`
	ProductName  string  `db:"product_name" json:"productName"`
	ProductImage string  `db:"product_image" json:"productImage"`
	Price        float64 `db:"unit_price" json:"price"`
	Quantity     int     `db:"qty" json:"quantity"`
	Stock        int     `db:"stock" json:"stock"`
}

func (i CartItem) LineTotal() float64 { return i.Price * float64(i.Quantity) }
