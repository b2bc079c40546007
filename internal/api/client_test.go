package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"

	"github.com/berkaynayman/qr-menu/internal/menu"
	"github.com/berkaynayman/qr-menu/internal/user"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func menuDoc() menu.Document {
	return menu.Document{
		ID:              "m1",
		MenuName:        "Test Menu",
		MenuDescription: "Lunch",
		Currency:        "USD",
		Categories: []menu.Category{
			{
				ID:   "c1",
				Name: "Starters",
				Items: []menu.Item{
					{ID: "i1", Name: "Soup", Description: "Tomato", Price: "4.50"},
				},
			},
		},
		ViewCount: 3,
	}
}

func TestClient_CreateAndGetMenu_RoundTrip(t *testing.T) {
	var stored menu.Document

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/menus/create":
			var p menu.Payload
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&p))
			stored = menu.Document{
				ID:              "srv-1",
				MenuName:        p.MenuName,
				MenuDescription: p.MenuDescription,
				Currency:        p.Currency,
				Categories:      p.Categories,
			}
			json.NewEncoder(w).Encode(stored)
		case r.Method == http.MethodGet && r.URL.Path == "/menus/srv-1":
			json.NewEncoder(w).Encode(stored)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL, Tokens: staticTokens("tok-1")})

	draft := menu.Menu{
		Name:     "Test Menu",
		Currency: menu.USD,
		Categories: []menu.Category{
			{ID: "c1", Name: "Starters", Items: []menu.Item{
				{ID: "i1", Name: "Soup", Description: "Tomato", Price: "4.50"},
			}},
		},
	}

	created, err := client.CreateMenu(context.Background(), menu.ToPayload(draft))
	assert.NoError(t, err)
	assert.Equal(t, "srv-1", created.ID)

	// Fetching the saved menu returns an equivalent tree, order and
	// field values preserved.
	fetched, err := client.Menu(context.Background(), "srv-1")
	assert.NoError(t, err)
	assert.Equal(t, draft.Categories, fetched.Categories)
	assert.Equal(t, draft.Name, fetched.Name)
	assert.Equal(t, draft.Currency, fetched.Currency)
}

func TestClient_AuthPrecondition(t *testing.T) {
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL, Tokens: staticTokens("")})
	ctx := context.Background()

	_, err := client.Menus(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = client.CreateMenu(ctx, menu.Payload{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = client.Profile(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = client.DashboardStats(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	err = client.DeleteMenu(ctx, "m1")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	// The precondition must fail locally, before any network I/O.
	assert.Equal(t, 0, requests)
}

func TestClient_ServerErrorMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "Email already in use"})
	}))
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL})
	_, err := client.Register(context.Background(), user.RegisterParams{Email: "a@b.c"})

	var apiErr *Error
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Email already in use", apiErr.Message)
}

func TestClient_ServerErrorFallbackMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL})
	_, _, err := client.Login(context.Background(), "a@b.c", "pw")

	var apiErr *Error
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Login failed", apiErr.Message)
}

func TestClient_Login(t *testing.T) {
	t.Run("Server returns the user", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/login", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]any{
				"token": "tok-1",
				"user":  user.User{ID: "u1", RestaurantName: "Cafe Uno", Email: "a@b.c"},
			})
		}))
		defer ts.Close()

		client := NewClient(Config{BaseURL: ts.URL})
		token, u, err := client.Login(context.Background(), "a@b.c", "pw")
		assert.NoError(t, err)
		assert.Equal(t, "tok-1", token)
		assert.Equal(t, "Cafe Uno", u.RestaurantName)
	})

	t.Run("Server omits the user", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-2"})
		}))
		defer ts.Close()

		client := NewClient(Config{BaseURL: ts.URL})
		token, u, err := client.Login(context.Background(), "a@b.c", "pw")
		assert.NoError(t, err)
		assert.Equal(t, "tok-2", token)
		// Placeholder user synthesized from the submitted email
		assert.Equal(t, "a@b.c", u.Email)
		assert.Equal(t, "a@b.c", u.ID)
		assert.NotEmpty(t, u.RestaurantName)
	})
}

func TestClient_PublicMenuNeedsNoToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(menuDoc())
	}))
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL})
	m, err := client.PublicMenu(context.Background(), "m1")
	assert.NoError(t, err)
	assert.Equal(t, "Test Menu", m.Name)
	assert.Equal(t, 3, m.ViewCount)
}

func TestClient_BrotliResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "br", r.Header.Get("Accept-Encoding"))
		w.Header().Set("Content-Encoding", "br")

		bw := brotli.NewWriter(w)
		json.NewEncoder(bw).Encode([]menu.Document{menuDoc()})
		bw.Close()
	}))
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL, Tokens: staticTokens("tok-1")})
	menus, err := client.Menus(context.Background())
	assert.NoError(t, err)
	assert.Len(t, menus, 1)
	assert.Equal(t, "Test Menu", menus[0].Name)
}
