package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/ballpark/internal/auth"
	"github.com/playmatatu/ballpark/internal/config"
	"github.com/playmatatu/ballpark/internal/game"
	"github.com/playmatatu/ballpark/internal/ws"
)

func newRouter(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	gm := game.NewManager(ctx, game.TuningFromConfig(cfg), cfg.TickInterval(), 0, nil)
	hub := ws.NewHub()
	go hub.Run(ctx)
	gm.SetPublisher(hub)
	t.Cleanup(func() {
		gm.Shutdown()
		cancel()
	})

	r := gin.New()
	SetupRoutes(r, Deps{
		Config:  cfg,
		Manager: gm,
		Store:   game.NewSQLStore(nil, nil, time.Minute),
		Hub:     hub,
	})
	return r, cfg
}

func do(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthAndTeams(t *testing.T) {
	r, _ := newRouter(t)

	if w := do(r, http.MethodGet, "/api/v1/health", nil); w.Code != http.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}

	w := do(r, http.MethodGet, "/api/v1/teams", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("teams: %d", w.Code)
	}
	var resp struct {
		Teams []struct {
			Code string `json:"code"`
		} `json:"teams"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Teams) != 30 || resp.Teams[0].Code != "ARI" {
		t.Fatalf("teams: %d, first %+v", len(resp.Teams), resp.Teams[0])
	}
}

func TestCreateAndGetMatch(t *testing.T) {
	r, cfg := newRouter(t)

	w := do(r, http.MethodPost, "/api/v1/matches", map[string]string{"home": "lad", "away": "SF"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	var created struct {
		Match     game.MatchSnapshot `json:"match"`
		HomeToken string             `json:"home_token"`
		AwayToken string             `json:"away_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.Match.Home != "LAD" || created.Match.Away != "SF" || created.Match.Stadium != "Dodger Stadium" {
		t.Fatalf("match: %+v", created.Match)
	}
	if w.Header().Get("X-Match-ID") != created.Match.ID {
		t.Fatalf("X-Match-ID header: %q", w.Header().Get("X-Match-ID"))
	}

	claims, err := auth.ParseSideToken(cfg.JWTSecret, created.HomeToken)
	if err != nil || claims.MatchID != created.Match.ID || claims.Side.String() != "HOME" {
		t.Fatalf("home token: %+v %v", claims, err)
	}
	claims, err = auth.ParseSideToken(cfg.JWTSecret, created.AwayToken)
	if err != nil || claims.Side.String() != "AWAY" {
		t.Fatalf("away token: %+v %v", claims, err)
	}

	w = do(r, http.MethodGet, "/api/v1/matches/"+created.Match.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: %d", w.Code)
	}
	var got struct {
		Match game.MatchSnapshot `json:"match"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Match.ID != created.Match.ID || got.Match.Status != game.StatusWaiting {
		t.Fatalf("get: %+v", got.Match)
	}
}

func TestCreateMatchErrors(t *testing.T) {
	r, _ := newRouter(t)

	tests := []struct {
		name string
		body interface{}
		want int
	}{
		{"missing fields", map[string]string{"home": "NYY"}, http.StatusBadRequest},
		{"unknown team", map[string]string{"home": "NYY", "away": "XXX"}, http.StatusBadRequest},
		{"same team", map[string]string{"home": "NYY", "away": "nyy"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(r, http.MethodPost, "/api/v1/matches", tt.body); w.Code != tt.want {
				t.Fatalf("got %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}

	if w := do(r, http.MethodGet, "/api/v1/matches/missing", nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing match: %d", w.Code)
	}
}

func TestAdminRequiresCredentials(t *testing.T) {
	r, _ := newRouter(t)

	if w := do(r, http.MethodGet, "/api/v1/admin/matches", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("no headers: %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/config", nil)
	req.Header.Set("X-Admin-Phone", "256700000000")
	req.Header.Set("X-Admin-Token", "token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("no database: %d", w.Code)
	}
}

func TestWebSocketOriginCheck(t *testing.T) {
	r, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/matches/any/ws", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign origin: %d", w.Code)
	}
}
