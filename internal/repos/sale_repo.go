package repos

import (
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"greenbytes/internal/domain"
)

type SaleRepo struct{ db *sqlx.DB }

func NewSaleRepo(db *sqlx.DB) *SaleRepo { return &SaleRepo{db: db} }

type saleRow struct {
	ID           string  `db:"id"`
	ProductID    string  `db:"product_id"`
	Quantity     int     `db:"quantity"`
	Total        float64 `db:"total"`
	Date         string  `db:"date"`
	ExpensesJSON string  `db:"expenses_json"`
}

func (row saleRow) toDomain() domain.Sale {
	s := domain.Sale{
		ID:        row.ID,
		ProductID: row.ProductID,
		Quantity:  row.Quantity,
		Total:     row.Total,
		Date:      row.Date,
	}
	if row.ExpensesJSON != "" && row.ExpensesJSON != "[]" {
		_ = json.Unmarshal([]byte(row.ExpensesJSON), &s.Expenses)
	}
	return s
}

func marshalExpenses(exps []domain.SaleExpense) string {
	if len(exps) == 0 {
		return "[]"
	}
	b, err := json.Marshal(exps)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func (r *SaleRepo) List() ([]domain.Sale, error) {
	rows := []saleRow{}
	if err := r.db.Select(&rows, `
	  SELECT id, product_id, quantity, total, date, expenses_json
	  FROM sales
	  ORDER BY date DESC, id
	`); err != nil {
		return nil, err
	}
	out := make([]domain.Sale, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SaleRepo) Get(id string) (domain.Sale, error) {
	var row saleRow
	if err := r.db.Get(&row, `
	  SELECT id, product_id, quantity, total, date, expenses_json
	  FROM sales WHERE id = ?
	`, id); err != nil {
		return domain.Sale{}, err
	}
	return row.toDomain(), nil
}

func (r *SaleRepo) Create(s domain.Sale) error {
	_, err := r.db.Exec(`
	  INSERT INTO sales(id, product_id, quantity, total, date, expenses_json, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, s.ID, s.ProductID, s.Quantity, s.Total, s.Date, marshalExpenses(s.Expenses))
	return err
}

func (r *SaleRepo) Update(id string, s domain.Sale) (int64, error) {
	res, err := r.db.Exec(`
	  UPDATE sales
	  SET product_id = ?, quantity = ?, total = ?, date = ?, expenses_json = ?
	  WHERE id = ?
	`, s.ProductID, s.Quantity, s.Total, s.Date, marshalExpenses(s.Expenses), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SaleRepo) Delete(id string) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM sales WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
