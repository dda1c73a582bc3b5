package repos

import (
	"github.com/jmoiron/sqlx"

	"greenbytes/internal/domain"
)

type QueryRepo struct{ db *sqlx.DB }

func NewQueryRepo(db *sqlx.DB) *QueryRepo { return &QueryRepo{db: db} }

// List returns queries newest first.
func (r *QueryRepo) List() ([]domain.Query, error) {
	out := []domain.Query{}
	err := r.db.Select(&out, `
	  SELECT id, name, email, message, status, reply, auto_reply, created_at
	  FROM queries
	  ORDER BY datetime(created_at) DESC, id
	`)
	return out, err
}

func (r *QueryRepo) Get(id string) (domain.Query, error) {
	var q domain.Query
	err := r.db.Get(&q, `
	  SELECT id, name, email, message, status, reply, auto_reply, created_at
	  FROM queries WHERE id = ?
	`, id)
	return q, err
}

func (r *QueryRepo) Create(q domain.Query) error {
	_, err := r.db.Exec(`
	  INSERT INTO queries(id, name, email, message, status, auto_reply, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?)
	`, q.ID, q.Name, q.Email, q.Message, q.Status, q.AutoReply, q.CreatedAt)
	return err
}

// Reply stores the staff answer and flips the status to answered.
func (r *QueryRepo) Reply(id, reply string) (int64, error) {
	res, err := r.db.Exec(`
	  UPDATE queries SET reply = ?, status = 'answered' WHERE id = ?
	`, reply, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
