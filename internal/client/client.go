// Package client talks to the inventory REST API. A Client is an
// inventory.DataSource, so a Store can run against a remote server.
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

	"github.com/rogerio-castellano/warehouse-inventory/internal/inventory"
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

const defaultTimeout = 10 * time.Second

// ErrUnauthorized is returned for 401 answers.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx answer of the server.
type APIError struct {
	Status  int
	Message string
	Errors  []inventory.FieldError
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

type meta struct {
	TotalCount int `json:"total_count"`
}

type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Login authenticates and keeps the token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	var result struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if _, err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &result); err != nil {
		return models.User{}, err
	}

	c.mu.Lock()
	c.token = result.Token
	c.mu.Unlock()
	return result.User, nil
}

func (c *Client) Search(ctx context.Context, filter repo.ProductFilter) ([]models.Product, error) {
	q := url.Values{}
	if filter.Query != "" {
		q.Set("query", filter.Query)
	}
	if filter.Category != "" {
		q.Set("category", string(filter.Category))
	}
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}
	if filter.MinStock != nil {
		q.Set("minStock", strconv.Itoa(*filter.MinStock))
	}
	if filter.MaxStock != nil {
		q.Set("maxStock", strconv.Itoa(*filter.MaxStock))
	}

	path := "/api/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	products := []models.Product{}
	if _, err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetByID(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	_, err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &p)
	return p, productError(err)
}

func (c *Client) GetBySKU(ctx context.Context, sku string) (models.Product, error) {
	var p models.Product
	_, err := c.do(ctx, http.MethodGet, "/api/products/sku/"+url.PathEscape(sku), nil, &p)
	return p, productError(err)
}

// CommitAdjustment needs a token, see Login and WithToken.
func (c *Client) CommitAdjustment(ctx context.Context, productID string, form models.AdjustmentForm) (models.AdjustmentResult, error) {
	var result models.AdjustmentResult
	_, err := c.do(ctx, http.MethodPost, "/api/products/"+url.PathEscape(productID)+"/adjustments", form, &result)
	return result, productError(err)
}

// History returns one page of a product's adjustments and the total count.
func (c *Client) History(ctx context.Context, productID string, offset, limit int) ([]models.StockAdjustment, int, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))

	adjustments := []models.StockAdjustment{}
	m, err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(productID)+"/adjustments?"+q.Encode(), nil, &adjustments)
	if err != nil {
		return nil, 0, productError(err)
	}
	return adjustments, m.TotalCount, nil
}

func (c *Client) Dashboard(ctx context.Context) (repo.Metrics, error) {
	var m repo.Metrics
	_, err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, &m)
	return m, err
}

func productError(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", repo.ErrProductNotFound, apiErr.Message)
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (meta, error) {
	var m meta

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return m, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return m, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return m, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 8<<20))
	if err != nil {
		return m, err
	}

	var env struct {
		Data    json.RawMessage        `json:"data"`
		Meta    *meta                  `json:"meta"`
		Message string                 `json:"message"`
		Errors  []inventory.FieldError `json:"errors"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return m, fmt.Errorf("%s %s: unexpected response status=%d body=%s", method, path, res.StatusCode, strings.TrimSpace(string(raw)))
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{Status: res.StatusCode, Message: env.Message, Errors: env.Errors}
		if res.StatusCode == http.StatusUnauthorized {
			return m, fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
		}
		return m, apiErr
	}

	if env.Meta != nil {
		m = *env.Meta
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return m, fmt.Errorf("failed to decode %s %s: %w", method, path, err)
		}
	}
	return m, nil
}

var _ inventory.DataSource = (*Client)(nil)
