package domain

// Product categories. Everything the shop resells falls into one of these.
const (
	CategoryRecycled    = "Recycled"
	CategoryRAM         = "RAM"
	CategoryStorage     = "Storage"
	CategoryMotherboard = "Motherboard"
)

type Product struct {
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Price       float64 `db:"price" json:"price"`
	Stock       int     `db:"stock" json:"stock"`
	Category    string  `db:"category" json:"category"`
	Description string  `db:"description" json:"description"`
	Image       string  `db:"image" json:"image,omitempty"` // data-URI, optional
	CreatedAt   string  `db:"created_at" json:"createdAt"`
	UpdatedAt   string  `db:"updated_at" json:"updatedAt,omitempty"`
}

// SaleExpense is a named cost attached to a single sale (shipping,
// refurbishing parts and so on).
type SaleExpense struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type Sale struct {
	ID        string        `db:"id" json:"id"`
	ProductID string        `db:"product_id" json:"productId"`
	Quantity  int           `db:"quantity" json:"quantity"`
	Total     float64       `db:"total" json:"total"`
	Date      string        `db:"date" json:"date"`
	Expenses  []SaleExpense `db:"-" json:"expenses,omitempty"`
}

// Query statuses.
const (
	QueryPending  = "pending"
	QueryAnswered = "answered"
)

type Query struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
	Message   string `db:"message" json:"message"`
	Status    string `db:"status" json:"status"`
	Reply     string `db:"reply" json:"reply,omitempty"`
	AutoReply string `db:"auto_reply" json:"autoReply,omitempty"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

// Ledger sources for non-sale income.
const (
	SourceDonation   = "Donation"
	SourceInvestment = "Investment"
)

// LedgerEntry is a non-sale income record (donation or investment),
// aggregated into the income statement alongside sales.
type LedgerEntry struct {
	ID     string  `db:"id" json:"id"`
	Date   string  `db:"date" json:"date"`
	Amount float64 `db:"amount" json:"amount"`
	Source string  `db:"source" json:"source"`
}

// Expense is a business-wide cost not tied to a specific sale.
type Expense struct {
	ID     string  `db:"id" json:"id"`
	Name   string  `db:"name" json:"name"`
	Amount float64 `db:"amount" json:"amount"`
	Date   string  `db:"date" json:"date"`
}
