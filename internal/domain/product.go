package domain

type Product struct {
	ID            string   `db:"id" json:"id"`
	StoreID       string   `db:"store_id" json:"storeId"`
	StoreName     string   `db:"store_name" json:"storeName"`
	Name          string   `db:"name" json:"name"`
	Description   string   `db:"description" json:"description"`
	Price         float64  `db:"price" json:"price"`
	DiscountPrice *float64 `db:"discount_price" json:"discountPrice,omitempty"`
	Category      string   `db:"category" json:"category"`
	ImageURLs     []string `db:"-" json:"imageUrls"`
	Stock         int      `db:"stock" json:"stock"`
	Available     bool     `db:"available" json:"available"`
	Rating        float64  `db:"rating" json:"rating"`
	TotalRatings  int      `db:"total_ratings" json:"totalRatings"`
	Tags          []string `db:"-" json:"tags"`
	CreatedAt     int64    `db:"created_at" json:"createdAt"`
}

// FinalPrice is the discount price when one is set and actually lower than
// the list price, otherwise the list price.
func (p Product) FinalPrice() float64 {
	if p.HasDiscount() {
		return *p.DiscountPrice
	}
	return p.Price
}

func (p Product) HasDiscount() bool {
	return p.DiscountPrice != nil && *p.DiscountPrice < p.Price
}
