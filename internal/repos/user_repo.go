package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"bazar/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id,email,name,phone_number,address,role,profile_image_url,password_hash,created_at`

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(u *domain.User) error {
	_, err := r.DB.Exec(`
	  INSERT INTO users(id,email,name,phone_number,address,role,profile_image_url,password_hash,created_at)
	  VALUES(?,?,?,?,?,?,?,?,?)`,
		u.ID, u.Email, u.Name, u.PhoneNumber, u.Address, u.Role, u.ProfileImageURL, u.Hash, u.CreatedAt)
	return err
}

func (r *UserRepo) UpdateProfileImage(userID, imageURL string) error {
	_, err := r.DB.Exec(`UPDATE users SET profile_image_url=? WHERE id=?`, imageURL, userID)
	return err
}

func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,user_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
      SELECT u.id,u.email,u.name,u.phone_number,u.address,u.role,u.profile_image_url,u.password_hash,u.created_at
      FROM sessions s
      JOIN users u ON u.id=s.user_id
      WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}

// SaveResetToken records a password-reset token issued for an email.
func (r *UserRepo) SaveResetToken(token, email string) error {
	_, err := r.DB.Exec(`INSERT INTO password_resets(token,email,created_at) VALUES(?,?,?)`,
		token, email, time.Now().UnixMilli())
	return err
}
