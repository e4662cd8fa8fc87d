package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bazar/internal/apperr"
	"bazar/internal/domain"
	"bazar/internal/repos"
)

type AuthService struct {
	Users *repos.UserRepo
}

func NewAuthService(users *repos.UserRepo) *AuthService { return &AuthService{Users: users} }

func (s *AuthService) SignUp(sid, email, password, name, phone string, role domain.UserRole) (*domain.User, error) {
	if !role.Valid() {
		role = domain.RoleBuyer
	}
	if existing, err := s.Users.ByEmail(email); err == nil && existing != nil {
		return nil, apperr.E(apperr.Conflict, "auth.signup", "an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		ID:          uuid.NewString(),
		Email:       email,
		Name:        name,
		PhoneNumber: phone,
		Role:        role,
		Hash:        string(hash),
		CreatedAt:   time.Now().UnixMilli(),
	}
	if err := s.Users.Create(u); err != nil {
		// A concurrent signup can win the race between the email check and
		// the insert; surface that as the same duplicate error.
		if repos.IsConflict(err) {
			return nil, apperr.Wrap(apperr.Conflict, "auth.signup", "an account with this email already exists", err)
		}
		return nil, apperr.Wrap(apperr.Remote, "auth.signup", "sign up failed", err)
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) SignIn(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, apperr.E(apperr.Auth, "auth.signin", "invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, apperr.E(apperr.Auth, "auth.signin", "invalid email or password")
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) SignOut(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}

func (s *AuthService) UpdateProfileImage(userID, imageURL string) error {
	if err := s.Users.UpdateProfileImage(userID, imageURL); err != nil {
		return apperr.Wrap(apperr.Remote, "auth.profile_image", "failed to update profile image", err)
	}
	return nil
}

// SendPasswordReset issues a reset token for the account. The token is
// recorded server-side; delivery is out of scope. Unknown emails succeed
// silently so the endpoint does not leak which accounts exist.
func (s *AuthService) SendPasswordReset(email string) (string, error) {
	if _, err := s.Users.ByEmail(email); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	token := uuid.NewString()
	if err := s.Users.SaveResetToken(token, email); err != nil {
		return "", apperr.Wrap(apperr.Remote, "auth.reset", "failed to send password reset", err)
	}
	return token, nil
}
