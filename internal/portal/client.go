package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// API defines the portal operations the client exposes. Implemented by
// *Client; useful for testing UI flows without a live server.
type API interface {
	Login(ctx context.Context, email, password string) (*User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*User, error)
	ListProducts(ctx context.Context) ([]Product, error)
	ListFavourites(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	CreateProduct(ctx context.Context, draft Draft) (*Product, error)
	UpdateProduct(ctx context.Context, id string, draft Draft) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ToggleFavourite(ctx context.Context, id string) error
	ImageURL(rel string) string
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Sentinel errors callers branch on. Everything else is a transport error.
var (
	// ErrNotFound reports that the requested product does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized reports a missing or expired session.
	ErrUnauthorized = errors.New("unauthorized")
)

// Client talks to the vendor portal HTTP API. The session cookie issued at
// login is held in the client's jar and sent implicitly on every call.
type Client struct {
	baseURL   *url.URL
	assetBase *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "shopkeep/0.1"
	requestTimeout   = 30 * time.Second
)

// NewClient builds a Client for the given API base URL. assetBase prefixes
// relative image paths for display; when empty the API base is used.
func NewClient(apiBase, assetBase string) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	assets := base
	if strings.TrimSpace(assetBase) != "" {
		assets, err = parseBaseURL(assetBase)
		if err != nil {
			return nil, err
		}
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("init cookie jar: %w", err)
	}
	return &Client{
		baseURL:   base,
		assetBase: assets,
		http: &http.Client{
			Timeout: requestTimeout,
			Jar:     jar,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Login authenticates and establishes the session cookie.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body := map[string]string{"email": email, "password": password}
	var user User
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout ends the session server-side. The jar keeps whatever expired
// cookie the server hands back.
func (c *Client) Logout(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// CurrentUser fetches the session user, or ErrUnauthorized without one.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var user User
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListProducts retrieves the full product catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload productListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/products", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Products, nil
}

// ListFavourites retrieves the products the user has favourited.
func (c *Client) ListFavourites(ctx context.Context) ([]Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload favouriteListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/products/favourites", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Favourites, nil
}

// GetProduct fetches one product. Returns ErrNotFound when the id is unknown.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload productResponse
	path := "/api/products/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Product, nil
}

// CreateProduct submits a new product as multipart form data.
func (c *Client) CreateProduct(ctx context.Context, draft Draft) (*Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	return c.sendDraft(ctx, http.MethodPost, "/api/products", draft, false)
}

// UpdateProduct submits changes to an existing product, including the ids of
// persisted images to delete.
func (c *Client) UpdateProduct(ctx context.Context, id string, draft Draft) (*Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	path := "/api/products/" + url.PathEscape(id)
	return c.sendDraft(ctx, http.MethodPut, path, draft, true)
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.doJSON(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, nil)
}

// ToggleFavourite flips the favourite flag for a product.
func (c *Client) ToggleFavourite(ctx context.Context, id string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	path := "/api/products/favourites/toggle/" + url.PathEscape(id)
	return c.doJSON(ctx, http.MethodPost, path, nil, nil)
}

// ImageURL resolves a relative image path against the asset base.
func (c *Client) ImageURL(rel string) string {
	if c == nil || strings.TrimSpace(rel) == "" {
		return rel
	}
	u, err := url.Parse(rel)
	if err != nil {
		return rel
	}
	return c.assetBase.ResolveReference(u).String()
}

func (c *Client) sendDraft(ctx context.Context, method, path string, draft Draft, includeDeletions bool) (*Product, error) {
	body, contentType, err := encodeDraft(draft, includeDeletions)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var payload productResponse
	if err := c.execute(req, path, &payload); err != nil {
		return nil, err
	}
	return &payload.Product, nil
}

// encodeDraft writes the multipart body for a create or update call: scalar
// fields, primaryImageIndex, repeated images parts, and (updates only) the
// JSON-encoded imagesToDelete list.
func encodeDraft(draft Draft, includeDeletions bool) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	fields := map[string]string{
		"name":        draft.Name,
		"sku":         draft.SKU,
		"quantity":    draft.Quantity,
		"description": draft.Description,
		"price":       draft.Price,
	}
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", key, err)
		}
	}
	if err := mw.WriteField("primaryImageIndex", strconv.Itoa(draft.PrimaryImageIndex)); err != nil {
		return nil, "", fmt.Errorf("write primary index: %w", err)
	}
	if includeDeletions {
		ids := draft.ImagesToDelete
		if ids == nil {
			ids = []string{}
		}
		encoded, err := json.Marshal(ids)
		if err != nil {
			return nil, "", fmt.Errorf("encode imagesToDelete: %w", err)
		}
		if err := mw.WriteField("imagesToDelete", string(encoded)); err != nil {
			return nil, "", fmt.Errorf("write imagesToDelete: %w", err)
		}
	}
	for _, part := range draft.Images {
		fw, err := mw.CreateFormFile("images", part.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := fw.Write(part.Data); err != nil {
			return nil, "", fmt.Errorf("write image part: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart body: %w", err)
	}
	return buf, mw.FormDataContentType(), nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := c.newRequest(ctx, method, path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.execute(req, path, dest)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	return req, nil
}

func (c *Client) execute(req *http.Request, path string, dest any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("api %s: %w", path, ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("api %s: %w", path, ErrNotFound)
	case resp.StatusCode >= 400:
		return fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("base url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
