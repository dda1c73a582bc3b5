package handlers_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"golang.org/x/crypto/bcrypt"

	"greenbytes/internal/cache"
	"greenbytes/internal/http/handlers"
	"greenbytes/internal/repos"
)

// Seeded staff passwords must never land in the database as plaintext.
func TestSeededPasswordsAreHashed(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	var hashes []string
	if err := db.Select(&hashes, `SELECT password_hash FROM users`); err != nil {
		t.Fatalf("select hashes: %v", err)
	}
	if len(hashes) == 0 {
		t.Fatal("no users seeded")
	}
	for _, h := range hashes {
		if strings.Contains(h, "Passw0rd!") {
			t.Fatal("hash contains plaintext password")
		}
		if !strings.HasPrefix(h, "$2") {
			t.Fatalf("unexpected hash format: %s", h)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(h), []byte("Passw0rd!")); err != nil {
			t.Fatalf("seed hash does not validate known password: %v", err)
		}
	}
}

func TestLoginSuccessAndFailure(t *testing.T) {
	app := newTestApp(t)

	// wrong password -> 401
	resp := doJSON(t, app, jsonReq(t, "POST", "/api/auth/login", map[string]string{
		"email": "admin@greenbytes.test", "password": "wrongpass!",
	}), nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad creds, got %d", resp.StatusCode)
	}

	// malformed email -> 401, same message as bad creds
	resp = doJSON(t, app, jsonReq(t, "POST", "/api/auth/login", map[string]string{
		"email": "not-an-email", "password": "Passw0rd!",
	}), nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad email, got %d", resp.StatusCode)
	}

	// good credentials -> token + role claim
	var out struct {
		Token string `json:"token"`
		Role  string `json:"role"`
		Name  string `json:"name"`
	}
	resp = doJSON(t, app, jsonReq(t, "POST", "/api/auth/login", map[string]string{
		"email": "finance@greenbytes.test", "password": "Passw0rd!",
	}), &out)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on login, got %d", resp.StatusCode)
	}
	if out.Token == "" || out.Role != "finance" {
		t.Fatalf("unexpected login payload: %+v", out)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	app := newTestApp(t)
	token := loginAs(t, app, "admin")

	resp := doJSON(t, app, withToken(jsonReq(t, "GET", "/api/sales", nil), token), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 before logout, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, withToken(jsonReq(t, "POST", "/api/auth/logout", nil), token), nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 on logout, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, withToken(jsonReq(t, "GET", "/api/sales", nil), token), nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", resp.StatusCode)
	}
}

func TestLoginThrottled(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	deps := handlers.NewDeps(db, testConfig(), cache.NewMemoryCache())
	app := fiber.New()
	app.Post("/api/auth/login", limiter.New(limiter.Config{
		Max:        2,
		Expiration: time.Minute,
	}), deps.AuthHandler.Login)

	bad := map[string]string{"email": "admin@greenbytes.test", "password": "wrongpass!"}
	for i := 0; i < 2; i++ {
		resp := doJSON(t, app, jsonReq(t, "POST", "/api/auth/login", bad), nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, resp.StatusCode)
		}
	}
	resp := doJSON(t, app, jsonReq(t, "POST", "/api/auth/login", bad), nil)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after throttle, got %d", resp.StatusCode)
	}
}
