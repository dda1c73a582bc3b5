package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"greenbytes/internal/cache"
	"greenbytes/internal/config"
	"greenbytes/internal/repos"
	"greenbytes/internal/services"
	"greenbytes/pkg/apierror"
)

type Deps struct {
	AuthHandler    *AuthHandler
	ProductHandler *ProductHandler
	SaleHandler    *SaleHandler
	QueryHandler   *QueryHandler
	FinanceHandler *FinanceHandler
	Auth           *services.AuthService
}

func NewDeps(db *sqlx.DB, cfg config.Config, c cache.Cache) *Deps {
	prodRepo := repos.NewProductRepo(db)
	saleRepo := repos.NewSaleRepo(db)
	queryRepo := repos.NewQueryRepo(db)
	ledgerRepo := repos.NewLedgerRepo(db)
	userRepo := repos.NewUserRepo(db)

	authSvc := services.NewAuthService(userRepo, cfg.TokenTTL)
	catalogSvc := services.NewCatalogService(prodRepo, c, cfg.Cache.TTL)

	return &Deps{
		AuthHandler:    &AuthHandler{Auth: authSvc},
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		SaleHandler:    &SaleHandler{Sales: saleRepo},
		QueryHandler:   &QueryHandler{Queries: queryRepo},
		FinanceHandler: &FinanceHandler{Ledger: ledgerRepo},
		Auth:           authSvc,
	}
}

// fail writes a structured error response.
func fail(c *fiber.Ctx, err *apierror.Error) error {
	return c.Status(err.StatusCode).JSON(fiber.Map{"error": err})
}
