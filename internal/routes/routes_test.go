package routes_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gametrackr/backend/internal/config"
	"github.com/gametrackr/backend/internal/database"
	"github.com/gametrackr/backend/internal/handlers"
	"github.com/gametrackr/backend/internal/middleware"
	"github.com/gametrackr/backend/internal/models"
	"github.com/gametrackr/backend/internal/routes"
	"github.com/gametrackr/backend/internal/services"
	"github.com/gametrackr/backend/internal/session"
)

type testApp struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		SessionTTL:       time.Hour,
		AppEnv:           "test",
		RateLimitMax:     0,
		AuthRateLimitMax: 0,
	}
	store := session.NewMemoryStore()

	authHandler := handlers.NewAuthHandler(services.NewAuthService(db), store, cfg)
	gameHandler := handlers.NewGameHandler(services.NewGameService(db))
	genreHandler := handlers.NewGenreHandler(services.NewGenreService(db))
	platformHandler := handlers.NewPlatformHandler(services.NewPlatformService(db))
	healthHandler := handlers.NewHealthHandler(db)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(cfg)})
	routes.Setup(app, cfg, store, authHandler, gameHandler, genreHandler, platformHandler, healthHandler)

	return &testApp{app: app, db: db}
}

func (ta *testApp) request(t *testing.T, method, path, body, cookie string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reqBody)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", session.CookieName+"="+cookie)
	}

	resp, err := ta.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	var parsed map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			t.Fatalf("%s %s: invalid JSON %q: %v", method, path, raw, err)
		}
	}
	return resp, parsed
}

// login registers a user and returns a live session cookie value.
func (ta *testApp) login(t *testing.T) string {
	t.Helper()

	resp, _ := ta.request(t, http.MethodPost, "/api/auth/register",
		`{"username":"player1","email":"player1@example.com","password":"secret1","confirmPassword":"secret1"}`, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d", resp.StatusCode)
	}

	resp, body := ta.request(t, http.MethodPost, "/api/auth/login",
		`{"username":"player1","password":"secret1"}`, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d: %v", resp.StatusCode, body)
	}
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			return c.Value
		}
	}
	t.Fatal("login did not set a session cookie")
	return ""
}

func TestAuthLifecycle(t *testing.T) {
	ta := newTestApp(t)
	cookie := ta.login(t)

	resp, body := ta.request(t, http.MethodGet, "/api/auth/me", "", cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me status = %d: %v", resp.StatusCode, body)
	}
	user, _ := body["user"].(map[string]interface{})
	if user["username"] != "player1" {
		t.Errorf("me user = %v", body["user"])
	}

	resp, body = ta.request(t, http.MethodGet, "/api/auth/status", "", cookie)
	if resp.StatusCode != http.StatusOK || body["isAuthenticated"] != true {
		t.Errorf("status with cookie = %d %v", resp.StatusCode, body)
	}

	resp, body = ta.request(t, http.MethodPost, "/api/auth/logout", "", cookie)
	if resp.StatusCode != http.StatusOK || body["message"] != "Logout successful" {
		t.Errorf("logout = %d %v", resp.StatusCode, body)
	}

	// Cookie is dead after logout.
	resp, _ = ta.request(t, http.MethodGet, "/api/auth/me", "", cookie)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("me after logout status = %d, want 401", resp.StatusCode)
	}

	resp, body = ta.request(t, http.MethodGet, "/api/auth/status", "", cookie)
	if resp.StatusCode != http.StatusOK || body["isAuthenticated"] != false {
		t.Errorf("status after logout = %d %v", resp.StatusCode, body)
	}
}

func TestRegisterRejectedWhileLoggedIn(t *testing.T) {
	ta := newTestApp(t)
	cookie := ta.login(t)

	resp, _ := ta.request(t, http.MethodPost, "/api/auth/register",
		`{"username":"player2","email":"player2@example.com","password":"secret2","confirmPassword":"secret2"}`, cookie)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("register while logged in = %d, want 400", resp.StatusCode)
	}
}

func TestWritesRequireSession(t *testing.T) {
	ta := newTestApp(t)

	resp, body := ta.request(t, http.MethodPost, "/api/games", `{"name":"Doom"}`, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated create = %d %v", resp.StatusCode, body)
	}
	if body["message"] != "Authentication required" {
		t.Errorf("message = %v", body["message"])
	}

	var count int64
	ta.db.Model(&models.Game{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected create persisted a row")
	}

	// Reads stay public.
	resp, _ = ta.request(t, http.MethodGet, "/api/games", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("public list = %d, want 200", resp.StatusCode)
	}
}

func TestGenreLifecycleOverHTTP(t *testing.T) {
	ta := newTestApp(t)
	cookie := ta.login(t)

	resp, body := ta.request(t, http.MethodPost, "/api/genres", `{"name":"RPG"}`, cookie)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create genre = %d %v", resp.StatusCode, body)
	}
	genre, _ := body["genre"].(map[string]interface{})
	genreID := int(genre["id"].(float64))

	// Duplicate name conflicts regardless of case.
	resp, body = ta.request(t, http.MethodPost, "/api/genres", `{"name":"rpg"}`, cookie)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate genre = %d %v", resp.StatusCode, body)
	}

	resp, body = ta.request(t, http.MethodGet, "/api/genres?search=rp", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search = %d", resp.StatusCode)
	}
	genres, _ := body["genres"].([]interface{})
	if len(genres) != 1 {
		t.Fatalf("search=rp returned %d genres", len(genres))
	}

	resp, body = ta.request(t, http.MethodPost, "/api/platforms", `{"name":"PC"}`, cookie)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create platform = %d %v", resp.StatusCode, body)
	}
	platform, _ := body["platform"].(map[string]interface{})
	platformID := int(platform["id"].(float64))

	game := `{"name":"The Witcher 3","genreId":` + strconv.Itoa(genreID) + `,"platformId":` + strconv.Itoa(platformID) + `}`
	resp, body = ta.request(t, http.MethodPost, "/api/games", game, cookie)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create game = %d %v", resp.StatusCode, body)
	}

	// Genre with a dependent game cannot be deleted.
	resp, body = ta.request(t, http.MethodDelete, "/api/genres/"+strconv.Itoa(genreID), "", cookie)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("delete in-use genre = %d %v", resp.StatusCode, body)
	}
	if got, _ := body["gamesCount"].(float64); got != 1 {
		t.Errorf("gamesCount = %v, want 1", body["gamesCount"])
	}
}

func TestGameValidationOverHTTP(t *testing.T) {
	ta := newTestApp(t)
	cookie := ta.login(t)

	resp, body := ta.request(t, http.MethodPost, "/api/games",
		`{"name":"Doom","genreId":9999,"platformId":9999}`, cookie)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid genre = %d %v", resp.StatusCode, body)
	}
	if body["message"] != "Invalid genre ID" {
		t.Errorf("message = %v", body["message"])
	}

	resp, body = ta.request(t, http.MethodGet, "/api/games?genreId=abc", "", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad genreId query = %d %v", resp.StatusCode, body)
	}

	resp, _ = ta.request(t, http.MethodGet, "/api/games/notanumber", "", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad path id = %d, want 400", resp.StatusCode)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ta := newTestApp(t)

	resp, body := ta.request(t, http.MethodGet, "/api/health", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health = %d", resp.StatusCode)
	}
	if body["status"] != "ok" {
		t.Errorf("health body = %v", body)
	}
}

func TestUnknownRoute(t *testing.T) {
	ta := newTestApp(t)

	resp, body := ta.request(t, http.MethodGet, "/api/nope", "", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown route = %d", resp.StatusCode)
	}
	if body["error"] != "Endpoint not found" {
		t.Errorf("error = %v", body["error"])
	}
	endpoints, _ := body["availableEndpoints"].([]interface{})
	if len(endpoints) == 0 {
		t.Errorf("availableEndpoints missing: %v", body)
	}
}

