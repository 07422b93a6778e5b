package lcu

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"lootsweep/internal/lockfile"
	"lootsweep/internal/loot"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type craftCall struct {
	Recipe string
	Repeat string
	Body   []string
}

// fakeLCU mimics the loot endpoints of the local client API.
type fakeLCU struct {
	mu       sync.Mutex
	password string
	loot     string
	fail     map[string]int
	calls    []craftCall
}

func (f *fakeLCU) router() http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			user, pass, ok := req.BasicAuth()
			if !ok || user != Username || pass != f.password {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Get(PlayerLootPath, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, f.loot)
	})
	r.Post("/lol-loot/v1/recipes/{recipe}/craft", func(w http.ResponseWriter, req *http.Request) {
		var body []string
		_ = json.NewDecoder(req.Body).Decode(&body)

		f.mu.Lock()
		f.calls = append(f.calls, craftCall{
			Recipe: chi.URLParam(req, "recipe"),
			Repeat: req.URL.Query().Get("repeat"),
			Body:   body,
		})
		f.mu.Unlock()

		if len(body) == 1 {
			if status, ok := f.fail[body[0]]; ok {
				w.WriteHeader(status)
				_, _ = io.WriteString(w, `{"message":"craft failed"}`)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"added":[],"removed":[]}`)
	})
	return r
}

func (f *fakeLCU) recorded() []craftCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]craftCall(nil), f.calls...)
}

func newTestClient(t *testing.T, f *fakeLCU) *Client {
	t.Helper()
	srv := httptest.NewTLSServer(f.router())
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	creds := lockfile.Credentials{
		ProcessName: "LeagueClientUx",
		PID:         1,
		Port:        port,
		Password:    f.password,
		Protocol:    "https",
	}
	c := NewClient(creds, Config{Timeout: 5 * time.Second}, nil)
	t.Cleanup(c.Close)
	return c
}

func TestPlayerLoot(t *testing.T) {
	f := &fakeLCU{
		password: "pw",
		loot: `[
			{"lootId":"CHAMPION_RENTAL_67","lootName":"CHAMPION_RENTAL","type":"CHAMPION_RENTAL","disenchantLootName":"CURRENCY_champion","itemStatus":"OWNED","itemDesc":"Vayne","count":2,"disenchantValue":960,"value":4800},
			{"lootId":"CURRENCY_champion","disenchantLootName":"","itemStatus":"NONE","itemDesc":"","count":1200,"disenchantValue":0}
		]`,
	}
	c := newTestClient(t, f)

	entries, err := c.PlayerLoot(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "CHAMPION_RENTAL_67", entries[0].Identity())
	assert.Equal(t, "Vayne", entries[0].ItemDesc)
	assert.Equal(t, 2, entries[0].Count)
	assert.Equal(t, 960, entries[0].DisenchantValue)
	assert.True(t, entries[0].Qualifies())
	assert.False(t, entries[1].Qualifies())
}

func TestPlayerLoot_BadPassword(t *testing.T) {
	f := &fakeLCU{password: "right", loot: "[]"}
	c := newTestClient(t, f)
	c.password = "wrong"

	_, err := c.PlayerLoot(context.Background())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.False(t, IsServerError(err))
}

func TestPlayerLoot_MalformedJSON(t *testing.T) {
	f := &fakeLCU{password: "pw", loot: `{"not":"an array"`}
	c := newTestClient(t, f)

	_, err := c.PlayerLoot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse player loot")
}

func TestCraft_RecipeRepeatAndBody(t *testing.T) {
	f := &fakeLCU{password: "pw"}
	c := newTestClient(t, f)
	ctx := context.Background()

	require.NoError(t, c.Craft(ctx, loot.RecipeChampion, "A", 3))
	require.NoError(t, c.Craft(ctx, loot.RecipeChampionRental, "CHAMPION_RENTAL_B", 1))

	assert.Equal(t, []craftCall{
		{Recipe: "CHAMPION_disenchant", Repeat: "3", Body: []string{"A"}},
		{Recipe: "CHAMPION_RENTAL_disenchant", Repeat: "1", Body: []string{"CHAMPION_RENTAL_B"}},
	}, f.recorded())
}

func TestCraft_ServerError(t *testing.T) {
	f := &fakeLCU{password: "pw", fail: map[string]int{"A": http.StatusInternalServerError}}
	c := newTestClient(t, f)

	err := c.Craft(context.Background(), loot.RecipeChampion, "A", 2)
	require.Error(t, err)
	assert.True(t, IsServerError(err))

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.MethodPost, se.Method)
	assert.Equal(t, "/lol-loot/v1/recipes/CHAMPION_disenchant/craft?repeat=2", se.Path)
}

func TestCraftPath(t *testing.T) {
	assert.Equal(t, "/lol-loot/v1/recipes/CHAMPION_disenchant/craft?repeat=5", CraftPath(loot.RecipeChampion, 5))
	assert.Equal(t, "/lol-loot/v1/recipes/CHAMPION_RENTAL_disenchant/craft?repeat=1", CraftPath(loot.RecipeChampionRental, 1))
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(lockfile.Credentials{Port: 2999, Password: "pw", Protocol: "https"}, Config{}, nil)
	defer c.Close()

	assert.Equal(t, "https://127.0.0.1:2999", c.BaseURL())
	assert.Equal(t, Username, c.username)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
}

func TestRequest_ContextCanceled(t *testing.T) {
	f := &fakeLCU{password: "pw", loot: "[]"}
	c := newTestClient(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.PlayerLoot(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, Username, cfg.Username)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}
