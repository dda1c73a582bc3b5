package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"greenbytes/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT id,email,name,password_hash,role FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// IssueToken stores a bearer token for the user with the given lifetime.
func (r *UserRepo) IssueToken(token, userID string, ttl time.Duration) error {
	expires := time.Now().UTC().Add(ttl).Format(time.RFC3339)
	_, err := r.DB.Exec(`
	  INSERT INTO tokens(token, user_id, expires_at) VALUES(?, ?, ?)
	`, token, userID, expires)
	return err
}

// UserByToken resolves an unexpired bearer token to its user.
func (r *UserRepo) UserByToken(token string) (*domain.User, error) {
	var u domain.User
	now := time.Now().UTC().Format(time.RFC3339)
	err := r.DB.Get(&u, `
	  SELECT u.id, u.email, u.name, u.password_hash, u.role
	  FROM tokens t
	  JOIN users u ON u.id = t.user_id
	  WHERE t.token = ? AND t.expires_at > ?
	`, token, now)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) RevokeToken(token string) error {
	_, err := r.DB.Exec(`DELETE FROM tokens WHERE token = ?`, token)
	return err
}
