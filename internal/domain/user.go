package domain

type UserRole string

const (
	RoleBuyer  UserRole = "BUYER"
	RoleSeller UserRole = "SELLER"
	RoleBoth   UserRole = "BOTH"
)

// CanSell reports whether seller-only flows (store creation, product
// management) are reachable for this role.
func (r UserRole) CanSell() bool { return r == RoleSeller || r == RoleBoth }

func (r UserRole) Valid() bool {
	return r == RoleBuyer || r == RoleSeller || r == RoleBoth
}

type User struct {
	ID              string   `db:"id" json:"id"`
	Email           string   `db:"email" json:"email"`
	Name            string   `db:"name" json:"name"`
	PhoneNumber     string   `db:"phone_number" json:"phoneNumber"`
	Address         string   `db:"address" json:"address"`
	Role            UserRole `db:"role" json:"role"`
	ProfileImageURL string   `db:"profile_image_url" json:"profileImageUrl"`
	Hash            string   `db:"password_hash" json:"-"`
	CreatedAt       int64    `db:"created_at" json:"createdAt"`
}
