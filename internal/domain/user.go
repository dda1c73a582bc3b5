package domain

// Staff role tiers. All of them may read admin collections; product and
// sales mutations are narrowed further per route.
const (
	RoleAdmin    = "admin"
	RoleSales    = "sales"
	RoleFinance  = "finance"
	RoleInvestor = "investor"
)

type User struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
	Hash  string `db:"password_hash"`
	Role  string `db:"role"`
}
