package repos

import (
	"github.com/jmoiron/sqlx"

	"greenbytes/internal/domain"
)

// LedgerRepo covers non-sale income entries and business-wide expenses.
type LedgerRepo struct{ db *sqlx.DB }

func NewLedgerRepo(db *sqlx.DB) *LedgerRepo { return &LedgerRepo{db: db} }

func (r *LedgerRepo) Entries() ([]domain.LedgerEntry, error) {
	out := []domain.LedgerEntry{}
	err := r.db.Select(&out, `
	  SELECT id, date, amount, source FROM ledger ORDER BY date, id
	`)
	return out, err
}

func (r *LedgerRepo) ListExpenses() ([]domain.Expense, error) {
	out := []domain.Expense{}
	err := r.db.Select(&out, `
	  SELECT id, name, amount, date FROM expenses ORDER BY date DESC, id
	`)
	return out, err
}

func (r *LedgerRepo) CreateExpense(e domain.Expense) error {
	_, err := r.db.Exec(`
	  INSERT INTO expenses(id, name, amount, date) VALUES(?, ?, ?, ?)
	`, e.ID, e.Name, e.Amount, e.Date)
	return err
}
