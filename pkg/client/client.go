// Package client is a thin HTTP client for the adoption REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://127.0.0.1:8080/api/v1"

// HTTPError is returned for every non-2xx response.
type HTTPError struct {
	StatusCode int
	Body       string
	// Code and Message are filled from the server's error envelope when present.
	Code    string
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// IsStatus reports whether err is an HTTPError with the given status code.
func IsStatus(err error, status int) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == status
}

// Client talks to the adoption API. It is safe for concurrent use.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
	validate *validator.Validate

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.logger = log }
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a Client. An empty baseURL falls back to DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 30 * time.Second},
		logger:   zap.NewNop(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

// SetToken replaces the bearer token. An empty token sends no Authorization header.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// --- Operations ---

// Health checks that the API is up.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPets returns pets available for adoption.
func (c *Client) ListPets(ctx context.Context, f PetFilters) (*Page[Pet], error) {
	return listPage[Pet](ctx, c, "/pets", f.values())
}

// GetPet fetches a single pet.
func (c *Client) GetPet(ctx context.Context, id string) (*Pet, error) {
	var out Pet
	if err := c.do(ctx, http.MethodGet, "/pets/"+url.PathEscape(id), nil, nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePet lists a new pet for adoption.
func (c *Client) CreatePet(ctx context.Context, in PetInput) (*Pet, error) {
	if err := c.check(in); err != nil {
		return nil, err
	}
	var out Pet
	if err := c.do(ctx, http.MethodPost, "/pets", nil, in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMissingPets returns pets reported missing.
func (c *Client) ListMissingPets(ctx context.Context, f PetFilters) (*Page[Pet], error) {
	return listPage[Pet](ctx, c, "/pets/missing", f.values())
}

// ReportMissingPet files a missing-pet report.
func (c *Client) ReportMissingPet(ctx context.Context, in MissingPetInput) (*Pet, error) {
	if err := c.check(in); err != nil {
		return nil, err
	}
	var out Pet
	if err := c.do(ctx, http.MethodPost, "/pets/missing", nil, in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendContactMessage submits the contact form.
func (c *Client) SendContactMessage(ctx context.Context, in ContactMessageInput) (*ContactMessageResult, error) {
	if err := c.check(in); err != nil {
		return nil, err
	}
	var out ContactMessageResult
	if err := c.do(ctx, http.MethodPost, "/contact/message", nil, in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetContactInfo returns the organisation's contact details.
func (c *Client) GetContactInfo(ctx context.Context) (*ContactInfo, error) {
	var out ContactInfo
	if err := c.do(ctx, http.MethodGet, "/contact/info", nil, nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListShelters returns shelters matching params.
func (c *Client) ListShelters(ctx context.Context, p ShelterParams) (*Page[Shelter], error) {
	return listPage[Shelter](ctx, c, "/shelters", p.values())
}

// GetShelter fetches a single shelter.
func (c *Client) GetShelter(ctx context.Context, id string) (*Shelter, error) {
	var out Shelter
	if err := c.do(ctx, http.MethodGet, "/shelters/"+url.PathEscape(id), nil, nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*Auth, error) {
	if err := c.check(in); err != nil {
		return nil, err
	}
	var out Auth
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for tokens.
func (c *Client) Login(ctx context.Context, email, password string) (*Auth, error) {
	in := struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}{Email: email, Password: password}
	if err := c.check(in); err != nil {
		return nil, err
	}
	var out Auth
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Auth, error) {
	in := struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}{RefreshToken: refreshToken}
	if err := c.check(in); err != nil {
		return nil, err
	}
	var out Auth
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the account the current token belongs to.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleFavorite flips the server-side favourite flag for a pet.
func (c *Client) ToggleFavorite(ctx context.Context, petID string) (*FavoriteToggle, error) {
	var out FavoriteToggle
	path := "/pets/" + url.PathEscape(petID) + "/favorite"
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Transport ---

type envelope struct {
	Success    *bool           `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination"`
	Error      *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func listPage[T any](ctx context.Context, c *Client, path string, q url.Values) (*Page[T], error) {
	page := &Page[T]{}
	if err := c.do(ctx, http.MethodGet, path, q, nil, &page.Items, &page.Pagination); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page, nil
}

func (c *Client) check(in interface{}) error {
	if err := c.validate.Struct(in); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

// do performs one request. out receives the envelope's data (or the whole
// body when the response is not enveloped); pag receives pagination if any.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body, out interface{}, pag *Pagination) error {
	endpoint := c.baseURL + path
	if encoded := q.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("api request failed",
			zap.String("method", method),
			zap.String("url", endpoint),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
		var env envelope
		if json.Unmarshal(raw, &env) == nil && env.Error != nil {
			httpErr.Code = env.Error.Code
			httpErr.Message = env.Error.Message
		}
		return httpErr
	}

	if out == nil || len(raw) == 0 || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		if s, ok := out.(*string); ok {
			*s = string(raw)
			return nil
		}
		return fmt.Errorf("%s %s: unexpected content type %q", method, path, resp.Header.Get("Content-Type"))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if env.Success == nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	if pag != nil && env.Pagination != nil {
		*pag = *env.Pagination
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

func (f PetFilters) values() url.Values {
	q := url.Values{}
	setString(q, "pet_type", f.PetType)
	setString(q, "size", f.Size)
	setString(q, "gender", f.Gender)
	setString(q, "province", f.Province)
	setString(q, "district", f.District)
	setString(q, "city", f.City)
	if f.IsVaccinated != nil {
		q.Set("is_vaccinated", strconv.FormatBool(*f.IsVaccinated))
	}
	if f.IsNeutered != nil {
		q.Set("is_neutered", strconv.FormatBool(*f.IsNeutered))
	}
	setString(q, "search", f.Search)
	setString(q, "ordering", f.Ordering)
	setInt(q, "page", f.Page)
	setInt(q, "limit", f.Limit)
	return q
}

func (p ShelterParams) values() url.Values {
	q := url.Values{}
	setString(q, "search", p.Search)
	setString(q, "city", p.City)
	if p.Verified {
		q.Set("verified", "true")
	}
	setInt(q, "page", p.Page)
	setInt(q, "limit", p.Limit)
	return q
}

func setString(q url.Values, key, value string) {
	if v := strings.TrimSpace(value); v != "" {
		q.Set(key, v)
	}
}

func setInt(q url.Values, key string, value int) {
	if value > 0 {
		q.Set(key, strconv.Itoa(value))
	}
}
