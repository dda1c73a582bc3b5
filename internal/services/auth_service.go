package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"greenbytes/internal/domain"
	"greenbytes/internal/repos"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Users    *repos.UserRepo
	TokenTTL time.Duration
}

func NewAuthService(users *repos.UserRepo, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &AuthService{Users: users, TokenTTL: ttl}
}

// Login verifies credentials and issues a bearer token carrying the
// user's role claim.
func (s *AuthService) Login(email, password string) (string, *domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return "", nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", nil, ErrBadCreds
	}
	token := uuid.NewString()
	if err := s.Users.IssueToken(token, u.ID, s.TokenTTL); err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *AuthService) Logout(token string) error {
	return s.Users.RevokeToken(token)
}

// UserFromToken resolves a bearer token to its user, or nil.
func (s *AuthService) UserFromToken(token string) (*domain.User, error) {
	if token == "" {
		return nil, nil
	}
	return s.Users.UserByToken(token)
}
