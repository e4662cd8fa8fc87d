package domain

type Store struct {
	ID           string  `db:"id" json:"id"`
	OwnerID      string  `db:"owner_id" json:"ownerId"`
	Name         string  `db:"name" json:"name"`
	Description  string  `db:"description" json:"description"`
	Category     string  `db:"category" json:"category"`
	LogoURL      string  `db:"logo_url" json:"logoUrl"`
	BannerURL    string  `db:"banner_url" json:"bannerUrl"`
	Rating       float64 `db:"rating" json:"rating"`
	TotalRatings int     `db:"total_ratings" json:"totalRatings"`
	Active       bool    `db:"active" json:"isActive"`
	CreatedAt    int64   `db:"created_at" json:"createdAt"`
}
