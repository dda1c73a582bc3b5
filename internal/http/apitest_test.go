package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"greenbytes/internal/cache"
	"greenbytes/internal/config"
	"greenbytes/internal/http/handlers"
	"greenbytes/internal/repos"
)

func testConfig() config.Config {
	return config.Config{
		TokenTTL: time.Hour,
		Cache:    config.CacheConfig{Backend: "memory", TTL: time.Minute},
	}
}

// newTestApp builds the API with the same route table the server wires,
// minus the global rate limiter, over a fresh seeded in-memory database.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	deps := handlers.NewDeps(db, testConfig(), cache.NewMemoryCache())
	auth := deps.Auth

	app := fiber.New()
	api := app.Group("/api")

	api.Post("/auth/login", deps.AuthHandler.Login)
	api.Post("/auth/logout", deps.AuthHandler.Logout)

	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Get)
	api.Post("/products", handlers.RequireRole(auth, "admin", "sales"), deps.ProductHandler.Create)
	api.Put("/products/:id", deps.ProductHandler.Update)
	api.Delete("/products/:id", handlers.RequireRole(auth, "admin"), deps.ProductHandler.Delete)

	api.Get("/sales", handlers.RequireRole(auth, "admin", "sales", "finance", "investor"), deps.SaleHandler.List)
	api.Post("/sales", deps.SaleHandler.Create)
	api.Put("/sales/:id", handlers.RequireRole(auth, "admin", "sales"), deps.SaleHandler.Update)
	api.Delete("/sales/:id", handlers.RequireRole(auth, "admin", "sales"), deps.SaleHandler.Delete)

	api.Get("/queries", deps.QueryHandler.List)
	api.Post("/queries", deps.QueryHandler.Create)
	api.Put("/queries/:id/reply", handlers.RequireRole(auth, "admin", "sales"), deps.QueryHandler.Reply)

	api.Get("/income", handlers.RequireRole(auth, "admin", "finance", "investor"), deps.FinanceHandler.Income)
	api.Get("/expenses", handlers.RequireRole(auth, "admin", "sales", "finance"), deps.FinanceHandler.ListExpenses)
	api.Post("/expenses", handlers.RequireRole(auth, "admin", "sales", "finance"), deps.FinanceHandler.CreateExpense)

	return app
}

func jsonReq(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func doJSON(t *testing.T, app *fiber.App, req *http.Request, out any) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", req.Method, req.URL.Path, err)
		}
	}
	return resp
}

// loginAs authenticates one of the seeded staff accounts and returns
// the bearer token.
func loginAs(t *testing.T, app *fiber.App, role string) string {
	t.Helper()
	body := map[string]string{
		"email":    role + "@greenbytes.test",
		"password": "Passw0rd!",
	}
	var out struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	resp := doJSON(t, app, jsonReq(t, "POST", "/api/auth/login", body), &out)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login as %s: status %d", role, resp.StatusCode)
	}
	if out.Role != role {
		t.Fatalf("login as %s: got role %q", role, out.Role)
	}
	return out.Token
}

func withToken(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
