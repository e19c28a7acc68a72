package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/usecase"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// APIError is a non-2xx answer from the shop API.
type APIError struct {
	Status   int    `json:"-"`
	Message  string `json:"message"`
	Expected string `json:"expected,omitempty"`
	Received string `json:"received,omitempty"`
}

func (e *APIError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("%d: %s (expected %s, received %s)", e.Status, e.Message, e.Expected, e.Received)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

type OrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderRequest is the body of POST /orders.
type OrderRequest struct {
	Items           []OrderItem            `json:"items"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	TotalPrice      decimal.Decimal        `json:"totalPrice"`
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }
func WithToken(tok string) Option           { return func(c *Client) { c.token = tok } }

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token used for later calls.
func (c *Client) SetToken(tok string) { c.token = tok }

func (c *Client) Register(ctx context.Context, name, email, password, adminCode string) (usecase.AuthResult, error) {
	var out usecase.AuthResult
	body := map[string]string{"name": name, "email": email, "password": password}
	if adminCode != "" {
		body["adminCode"] = adminCode
	}
	err := c.do(ctx, http.MethodPost, "/accounts/register", body, nil, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, email, password string) (usecase.AuthResult, error) {
	var out usecase.AuthResult
	err := c.do(ctx, http.MethodPost, "/accounts/login", map[string]string{"email": email, "password": password}, nil, &out)
	return out, err
}

func (c *Client) Me(ctx context.Context) (domain.Account, error) {
	var out domain.Account
	err := c.do(ctx, http.MethodGet, "/accounts/me", nil, nil, &out)
	return out, err
}

func (c *Client) Products(ctx context.Context, category string, page, limit int) (usecase.ProductPage, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/catalog"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out usecase.ProductPage
	err := c.do(ctx, http.MethodGet, path, nil, nil, &out)
	return out, err
}

func (c *Client) Product(ctx context.Context, id string) (domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, http.MethodGet, "/catalog/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	err := c.do(ctx, http.MethodGet, "/catalog/categories", nil, nil, &out)
	return out, err
}

// PlaceOrder submits req. An empty idemKey gets a fresh one.
func (c *Client) PlaceOrder(ctx context.Context, req OrderRequest, idemKey string) (domain.Order, error) {
	if idemKey == "" {
		idemKey = uuid.NewString()
	}
	var out domain.Order
	err := c.do(ctx, http.MethodPost, "/orders", req, map[string]string{"X-Idempotency-Key": idemKey}, &out)
	return out, err
}

func (c *Client) MyOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	err := c.do(ctx, http.MethodGet, "/orders/my-orders", nil, nil, &out)
	return out, err
}

func (c *Client) Order(ctx context.Context, id string) (domain.Order, error) {
	var out domain.Order
	err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status domain.Status) (domain.Order, error) {
	var out domain.Order
	err := c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/status", map[string]string{"status": string(status)}, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in any, headers map[string]string, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
