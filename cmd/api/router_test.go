package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"investmate/internal/handlers"
	"investmate/internal/middleware"
	"investmate/internal/models"
	"investmate/internal/services"
	"investmate/internal/session"
	"investmate/internal/testutil"
	"investmate/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// fixedQuotes prices symbols from a map; unknown symbols get 0.
type fixedQuotes map[string]float64

func (q fixedQuotes) CurrentPrice(_ context.Context, symbol string, _ models.AssetType) float64 {
	return q[symbol]
}

type stubProvider struct{ subject string }

func (p stubProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + url.QueryEscape(state)
}

func (p stubProvider) Exchange(_ context.Context, code string) (services.Identity, error) {
	if code != "ok" {
		return services.Identity{}, errors.New("invalid_grant")
	}
	return services.Identity{ProviderID: p.subject, DisplayName: "Test User", Email: p.subject + "@example.com"}, nil
}

// testApp holds the full application stack for router tests.
type testApp struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Sessions *session.RedisStore
	Redis    *miniredis.Miniredis
}

func setupApp(t *testing.T, ready func(context.Context) error) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	sessions := session.NewRedisStore(rdb, time.Hour)

	quotes := fixedQuotes{"AAPL": 200, "BTC": 50000}
	authHandler := handlers.NewAuthHandler(services.NewUserService(db), stubProvider{subject: "g-100"}, sessions, handlers.AuthConfig{
		StateSecret:  "test-secret",
		ClientOrigin: "http://localhost:5173",
		SessionTTL:   time.Hour,
	})
	investmentHandler := handlers.NewInvestmentHandler(
		services.NewInvestmentService(db),
		services.NewPriceEnricher(quotes),
		services.NewAuditService(db),
	)

	router := newRouter(routerDeps{
		clientOrigin:      "http://localhost:5173",
		sessions:          sessions,
		authHandler:       authHandler,
		investmentHandler: investmentHandler,
		ready:             ready,
	})

	return &testApp{DB: db, Router: router, Sessions: sessions, Redis: mr}
}

func (app *testApp) request(method, path, body, sessionID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: sessionID})
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// signIn creates a user and a live session for it.
func (app *testApp) signIn(t *testing.T) (*models.User, string) {
	t.Helper()
	user := testutil.CreateTestUser(t, app.DB)
	sessionID, err := app.Sessions.Create(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return user, sessionID
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func TestRouter_PublicEndpoints(t *testing.T) {
	app := setupApp(t, nil)

	rec := app.request(http.MethodGet, "/", "", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "InvestMate API running" {
		t.Errorf("GET / = %d %q", rec.Code, rec.Body.String())
	}

	rec = app.request(http.MethodGet, "/api/health", "", "")
	if rec.Code != http.StatusOK || parseJSON(t, rec)["status"] != "ok" {
		t.Errorf("GET /api/health = %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request(http.MethodGet, "/api/me", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("GET /api/me signed out = %d, want 401", rec.Code)
	}
	if v, ok := parseJSON(t, rec)["user"]; !ok || v != nil {
		t.Errorf("expected user:null, got %s", rec.Body.String())
	}

	rec = app.request(http.MethodGet, "/swagger/doc.json", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/api/portfolio") {
		t.Errorf("GET /swagger/doc.json = %d", rec.Code)
	}
}

func TestRouter_HealthReportsUnavailableDatabase(t *testing.T) {
	app := setupApp(t, func(context.Context) error { return errors.New("db down") })

	rec := app.request(http.MethodGet, "/api/health", "", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}

func TestRouter_ProtectedRoutesRequireSession(t *testing.T) {
	app := setupApp(t, nil)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/investments"},
		{http.MethodPost, "/api/investments"},
		{http.MethodPut, "/api/investments/0190a6d2-8c6b-7cc2-9d7e-3b1f7d2a5e10"},
		{http.MethodDelete, "/api/investments/0190a6d2-8c6b-7cc2-9d7e-3b1f7d2a5e10"},
		{http.MethodGet, "/api/portfolio"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			for _, sessionID := range []string{"", "expired-or-forged"} {
				rec := app.request(rt.method, rt.path, `{}`, sessionID)
				if rec.Code != http.StatusUnauthorized {
					t.Errorf("session %q: expected 401, got %d", sessionID, rec.Code)
				}
			}
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	app := setupApp(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/investments", http.NoBody)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("expected credentials to be allowed")
	}
}

func TestRouter_SignInFlow(t *testing.T) {
	app := setupApp(t, nil)

	rec := app.request(http.MethodGet, "/auth/google", "", "")
	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d", rec.Code)
	}
	loc, _ := url.Parse(rec.Header().Get("Location"))
	state := loc.Query().Get("state")
	var nonce *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.StateCookie {
			nonce = ck
		}
	}
	if nonce == nil {
		t.Fatal("expected state cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=ok&state="+url.QueryEscape(state), http.NoBody)
	req.AddCookie(nonce)
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "http://localhost:5173" {
		t.Fatalf("callback = %d %s", rec.Code, rec.Header().Get("Location"))
	}
	var sessionID string
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			sessionID = ck.Value
		}
	}
	if sessionID == "" {
		t.Fatal("expected session cookie")
	}

	me := app.request(http.MethodGet, "/api/me", "", sessionID)
	if me.Code != http.StatusOK {
		t.Fatalf("GET /api/me = %d", me.Code)
	}
	user := parseJSON(t, me)["user"].(map[string]interface{})
	if user["google_id"] != "g-100" || user["email"] != "g-100@example.com" {
		t.Errorf("unexpected user %v", user)
	}

	out := app.request(http.MethodGet, "/auth/logout", "", sessionID)
	if out.Code != http.StatusFound {
		t.Fatalf("logout = %d", out.Code)
	}
	if rec := app.request(http.MethodGet, "/api/me", "", sessionID); rec.Code != http.StatusUnauthorized {
		t.Errorf("GET /api/me after logout = %d, want 401", rec.Code)
	}
}

func TestRouter_InvestmentLifecycle(t *testing.T) {
	app := setupApp(t, nil)
	owner, ownerSession := app.signIn(t)
	_, strangerSession := app.signIn(t)

	// Create
	rec := app.request(http.MethodPost, "/api/investments",
		`{"symbol":"aapl","shares":10,"buy_price":150,"buy_date":"2024-01-15","notes":"core"}`, ownerSession)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", rec.Code, rec.Body.String())
	}
	created := parseJSON(t, rec)
	id := created["id"].(string)
	if created["symbol"] != "AAPL" || created["asset_type"] != "Stock" || created["user_id"] != owner.ID {
		t.Errorf("unexpected created record %v", created)
	}
	if created["current_price"].(float64) != 200 {
		t.Errorf("current_price = %v, want 200", created["current_price"])
	}

	rec = app.request(http.MethodPost, "/api/investments",
		`{"symbol":"BTC","asset_type":"Crypto","shares":"0.1","buy_price":40000,"buy_date":"2023-06-01"}`, ownerSession)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create crypto = %d: %s", rec.Code, rec.Body.String())
	}

	// List is ordered by buy date and scoped to the owner
	rec = app.request(http.MethodGet, "/api/investments", "", ownerSession)
	var list []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil || len(list) != 2 {
		t.Fatalf("list = %s", rec.Body.String())
	}
	if list[0]["symbol"] != "BTC" || list[1]["id"] != id {
		t.Errorf("unexpected order: %v, %v", list[0]["symbol"], list[1]["symbol"])
	}

	rec = app.request(http.MethodGet, "/api/investments", "", strangerSession)
	if rec.Code != http.StatusOK || rec.Body.String() != "[]" {
		t.Errorf("stranger list = %d %s", rec.Code, rec.Body.String())
	}

	// Cross-user update is indistinguishable from a missing row
	update := `{"symbol":"AAPL","asset_type":"Stock","shares":12,"buy_price":150,"buy_date":"2024-01-15"}`
	rec = app.request(http.MethodPut, "/api/investments/"+id, update, strangerSession)
	if rec.Code != http.StatusNotFound {
		t.Errorf("stranger update = %d, want 404", rec.Code)
	}

	rec = app.request(http.MethodPut, "/api/investments/"+id, update, ownerSession)
	if rec.Code != http.StatusOK {
		t.Fatalf("update = %d: %s", rec.Code, rec.Body.String())
	}
	if got := parseJSON(t, rec); got["shares"].(float64) != 12 || got["notes"] != nil {
		t.Errorf("unexpected updated record %v", got)
	}

	// Portfolio: AAPL 12*150 in, 12*200 now; BTC 0.1*40000 in, 0.1*50000 now
	rec = app.request(http.MethodGet, "/api/portfolio", "", ownerSession)
	if rec.Code != http.StatusOK {
		t.Fatalf("portfolio = %d", rec.Code)
	}
	summary := parseJSON(t, rec)["summary"].(map[string]interface{})
	if summary["invested"].(float64) != 5800 || summary["current"].(float64) != 7400 {
		t.Errorf("unexpected summary %v", summary)
	}
	if summary["holdings_count"].(float64) != 2 || summary["category_count"].(float64) != 2 {
		t.Errorf("unexpected counts %v", summary)
	}

	// Cross-user delete succeeds silently and removes nothing
	rec = app.request(http.MethodDelete, "/api/investments/"+id, "", strangerSession)
	if rec.Code != http.StatusOK || parseJSON(t, rec)["success"] != true {
		t.Errorf("stranger delete = %d %s", rec.Code, rec.Body.String())
	}
	var count int64
	app.DB.Model(&models.Investment{}).Where("id = ?", id).Count(&count)
	if count != 1 {
		t.Fatalf("stranger delete removed the row")
	}

	rec = app.request(http.MethodDelete, "/api/investments/"+id, "", ownerSession)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete = %d", rec.Code)
	}
	rec = app.request(http.MethodDelete, "/api/investments/"+id, "", ownerSession)
	if rec.Code != http.StatusOK || parseJSON(t, rec)["success"] != true {
		t.Errorf("repeat delete = %d %s", rec.Code, rec.Body.String())
	}

	// Audit trail
	var actions []string
	app.DB.Model(&models.AuditLog{}).Where("user_id = ?", owner.ID).Order("action ASC").Pluck("action", &actions)
	want := []string{services.AuditCreateInvestment, services.AuditCreateInvestment, services.AuditDeleteInvestment, services.AuditUpdateInvestment}
	if strings.Join(actions, ",") != strings.Join(want, ",") {
		t.Errorf("audit actions = %v, want %v", actions, want)
	}
}

func TestRouter_ValidationErrors(t *testing.T) {
	app := setupApp(t, nil)
	_, sessionID := app.signIn(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing_fields", `{"symbol":"AAPL"}`},
		{"bad_asset_type", `{"symbol":"AAPL","asset_type":"Bond","shares":1,"buy_price":1,"buy_date":"2024-01-01"}`},
		{"bad_date", `{"symbol":"AAPL","shares":1,"buy_price":1,"buy_date":"yesterday"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.request(http.MethodPost, "/api/investments", tt.body, sessionID)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}

	var count int64
	app.DB.Model(&models.Investment{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected creates persisted %d rows", count)
	}

	rec := app.request(http.MethodPut, "/api/investments/not-a-uuid",
		`{"symbol":"AAPL","shares":1,"buy_price":1,"buy_date":"2024-01-01"}`, sessionID)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed id: expected 400, got %d", rec.Code)
	}
}
