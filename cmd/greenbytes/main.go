package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"greenbytes/internal/cache"
	"greenbytes/internal/config"
	"greenbytes/internal/http/handlers"
	applog "greenbytes/internal/log"
	"greenbytes/internal/repos"
	"greenbytes/pkg/apierror"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Product-list cache; Redis when configured, in-process otherwise.
	var c cache.Cache
	if cfg.Cache.Backend == "redis" {
		rc, err := cache.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.RedisDB, "greenbytes:")
		if err != nil {
			log.Printf("[warn] redis unavailable (%v), falling back to memory cache", err)
			c = cache.NewMemoryCache()
		} else {
			c = rc
		}
	} else {
		c = cache.NewMemoryCache()
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			e := apierror.Internal("")
			return c.Status(e.StatusCode).JSON(fiber.Map{"error": e})
		},
	})
	// Global body size guard; product images ride in as base64
	app.Server().MaxRequestBodySize = 4 << 20 // 4 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- Routes ----------
	deps := handlers.NewDeps(db, cfg, c)
	auth := deps.Auth

	api := app.Group("/api")

	// Staff auth (login throttled)
	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			e := apierror.Unauthorized("too many attempts, please try again later")
			e.StatusCode = fiber.StatusTooManyRequests
			return c.Status(e.StatusCode).JSON(fiber.Map{"error": e})
		},
	}), deps.AuthHandler.Login)
	api.Post("/auth/logout", deps.AuthHandler.Logout)

	// Products. PUT stays public: the storefront checkout writes
	// decremented stock without a token.
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Get)
	api.Post("/products", handlers.RequireRole(auth, "admin", "sales"), deps.ProductHandler.Create)
	api.Put("/products/:id", deps.ProductHandler.Update)
	api.Delete("/products/:id", handlers.RequireRole(auth, "admin"), deps.ProductHandler.Delete)

	// Sales. POST stays public for the same reason as product PUT.
	api.Get("/sales", handlers.RequireRole(auth, "admin", "sales", "finance", "investor"), deps.SaleHandler.List)
	api.Post("/sales", deps.SaleHandler.Create)
	api.Put("/sales/:id", handlers.RequireRole(auth, "admin", "sales"), deps.SaleHandler.Update)
	api.Delete("/sales/:id", handlers.RequireRole(auth, "admin", "sales"), deps.SaleHandler.Delete)

	// Customer queries
	api.Get("/queries", deps.QueryHandler.List)
	api.Post("/queries", deps.QueryHandler.Create)
	api.Put("/queries/:id/reply", handlers.RequireRole(auth, "admin", "sales"), deps.QueryHandler.Reply)

	// Income statement inputs
	api.Get("/income", handlers.RequireRole(auth, "admin", "finance", "investor"), deps.FinanceHandler.Income)
	api.Get("/expenses", handlers.RequireRole(auth, "admin", "sales", "finance"), deps.FinanceHandler.ListExpenses)
	api.Post("/expenses", handlers.RequireRole(auth, "admin", "sales", "finance"), deps.FinanceHandler.CreateExpense)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		e := apierror.NotFound("")
		return c.Status(e.StatusCode).JSON(fiber.Map{"error": e})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
