package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
	"golang.org/x/time/rate"

	"github.com/berkaynayman/qr-menu/internal/menu"
	"github.com/berkaynayman/qr-menu/internal/stats"
	"github.com/berkaynayman/qr-menu/internal/user"
)

// TokenSource supplies the bearer token for authenticated calls. An
// empty token means nobody is logged in.
type TokenSource interface {
	Token() string
}

type Config struct {
	BaseURL string
	Tokens  TokenSource
}

// Client wraps the QR-Menu backend REST API. Every method performs
// exactly one HTTP call; nothing is retried.
type Client struct {
	client  *http.Client
	config  Config
	limiter *rate.Limiter
}

func NewClient(cfg Config) *Client {
	return &Client{
		client: &http.Client{
			Transport: &headerTransport{Base: http.DefaultTransport},
			Timeout:   10 * time.Second,
		},
		config: cfg,
		// Polite client-side ceiling so an edit burst cannot hammer the
		// backend.
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}

// headerTransport sets the headers common to every request.
type headerTransport struct {
	Base http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br")
	if req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return t.Base.RoundTrip(req)
}

// --- Auth ---

func (c *Client) Register(ctx context.Context, params user.RegisterParams) (string, error) {
	var out messageResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", params, &out, "Registration failed"); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Login exchanges credentials for a bearer token. The backend sometimes
// omits the user object; in that case a minimal placeholder user is
// synthesized from the submitted email so callers always get one.
func (c *Client) Login(ctx context.Context, email, password string) (string, user.User, error) {
	body := map[string]string{"email": email, "password": password}

	var out loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &out, "Login failed"); err != nil {
		return "", user.User{}, err
	}

	u := user.User{ID: email, RestaurantName: "My Restaurant", Email: email}
	if out.User != nil {
		u = *out.User
	}
	return out.Token, u, nil
}

func (c *Client) Profile(ctx context.Context) (*user.Profile, error) {
	token, err := c.requireToken()
	if err != nil {
		return nil, err
	}

	var out user.Profile
	if err := c.do(ctx, http.MethodGet, "/auth/profile", token, nil, &out, "Failed to fetch profile"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, params user.UpdateProfileParams) (*user.Profile, error) {
	token, err := c.requireToken()
	if err != nil {
		return nil, err
	}

	var out user.Profile
	if err := c.do(ctx, http.MethodPut, "/auth/profile", token, params, &out, "Failed to update profile"); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Menus ---

func (c *Client) CreateMenu(ctx context.Context, p menu.Payload) (*menu.Menu, error) {
	token, err := c.requireToken()
	if err != nil {
		return nil, err
	}

	var doc menu.Document
	if err := c.do(ctx, http.MethodPost, "/menus/create", token, p, &doc, "Failed to create menu"); err != nil {
		return nil, err
	}
	m := menu.FromDocument(doc)
	return &m, nil
}

func (c *Client) UpdateMenu(ctx context.Context, id string, p menu.Payload) (*menu.Menu, error) {
	token, err := c.requireToken()
	if err != nil {
		return nil, err
	}

	var doc menu.Document
	if err := c.do(ctx, http.MethodPut, "/menus/"+id, token, p, &doc, "Failed to update menu"); err != nil {
		return nil, err
	}
	m := menu.FromDocument(doc)
	return &m, nil
}

func (c *Client) Menus(ctx context.Context) ([]menu.Menu, error) {
	token, err := c.requireToken()
	if err != nil {
		return nil, err
	}

	var docs []menu.Document
	if err := c.do(ctx, http.MethodGet, "/menus", token, nil, &docs, "Failed to fetch menus"); err != nil {
		return nil, err
	}
	return menu.FromDocuments(docs), nil
}

func (c *Client) Menu(ctx context.Context, id string) (*menu.Menu, error) {
	token, err := c.requireToken()
	if err != nil {
		return nil, err
	}

	var doc menu.Document
	if err := c.do(ctx, http.MethodGet, "/menus/"+id, token, nil, &doc, "Failed to fetch menu"); err != nil {
		return nil, err
	}
	m := menu.FromDocument(doc)
	return &m, nil
}

// PublicMenu fetches the unauthenticated public view. The backend
// increments the menu's view counter on every call.
func (c *Client) PublicMenu(ctx context.Context, id string) (*menu.Menu, error) {
	var doc menu.Document
	if err := c.do(ctx, http.MethodGet, "/menus/"+id, "", nil, &doc, "Failed to fetch menu"); err != nil {
		return nil, err
	}
	m := menu.FromDocument(doc)
	return &m, nil
}

func (c *Client) DeleteMenu(ctx context.Context, id string) error {
	token, err := c.requireToken()
	if err != nil {
		return err
	}

	var out messageResponse
	return c.do(ctx, http.MethodDelete, "/menus/"+id, token, nil, &out, "Failed to delete menu")
}

// --- Stats ---

func (c *Client) DashboardStats(ctx context.Context) (*stats.Stats, error) {
	token, err := c.requireToken()
	if err != nil {
		return nil, err
	}

	var out stats.Stats
	if err := c.do(ctx, http.MethodGet, "/stats/dashboard", token, nil, &out, "Failed to fetch dashboard statistics"); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Plumbing ---

func (c *Client) requireToken() (string, error) {
	if c.config.Tokens == nil {
		return "", ErrNotAuthenticated
	}
	token := c.config.Tokens.Token()
	if token == "" {
		return "", ErrNotAuthenticated
	}
	return token, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any, fallback string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	if resp.Header.Get("Content-Encoding") == "br" {
		resp.Body = &readCloserWrapper{Reader: brotli.NewReader(resp.Body), Closer: resp.Body}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorBody
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return &Error{Status: resp.StatusCode, Message: apiErr.Message}
		}
		return &Error{Status: resp.StatusCode, Message: fallback}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response for %s %s: %w", method, path, err)
	}
	return nil
}

type readCloserWrapper struct {
	io.Reader
	io.Closer
}

func (r *readCloserWrapper) Read(p []byte) (n int, err error) {
	return r.Reader.Read(p)
}

func (r *readCloserWrapper) Close() error {
	return r.Closer.Close()
}
