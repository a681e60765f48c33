package portal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("portal.example.com:9000")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != "portal.example.com:9000" {
		t.Fatalf("host = %q", u.Host)
	}

	u, err = parseBaseURL("https://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("   "); err == nil {
		t.Fatal("empty base url should error")
	}
}

func TestClient_LoginEstablishesSession(t *testing.T) {
	t.Parallel()

	var gotLogin map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			if err := json.NewDecoder(r.Body).Decode(&gotLogin); err != nil {
				t.Errorf("decode login body: %v", err)
			}
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123"})
			_ = json.NewEncoder(w).Encode(User{ID: "u1", Email: "vendor@example.com"})
		case "/api/user/me":
			cookie, err := r.Cookie("session")
			if err != nil || cookie.Value != "abc123" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(User{ID: "u1", Email: "vendor@example.com"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	// Before login the session endpoint refuses us.
	if _, err := c.CurrentUser(ctx); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("CurrentUser before login = %v, want ErrUnauthorized", err)
	}

	user, err := c.Login(ctx, "vendor@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("user = %#v, want id u1", user)
	}
	if gotLogin["email"] != "vendor@example.com" || gotLogin["password"] != "hunter2" {
		t.Fatalf("login body = %#v", gotLogin)
	}

	// The jar must replay the cookie implicitly.
	user, err = c.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("CurrentUser after login = %v", err)
	}
	if user.Email != "vendor@example.com" {
		t.Fatalf("user = %#v", user)
	}
}

func TestClient_ListAndGet(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/products":
			_ = json.NewEncoder(w).Encode(productListResponse{Products: []Product{{ID: "p1", Name: "Lamp"}}})
		case "/api/products/favourites":
			_ = json.NewEncoder(w).Encode(favouriteListResponse{Favourites: []Product{{ID: "p2"}}})
		case "/api/products/p1":
			_ = json.NewEncoder(w).Encode(productResponse{Product: Product{
				ID:   "p1",
				Name: "Lamp",
				Images: []ProductImage{
					{ID: "i1", ImageURL: "/uploads/i1.png"},
					{ID: "i2", ImageURL: "/uploads/i2.png", IsPrimary: true},
				},
			}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	products, err := c.ListProducts(ctx)
	if err != nil || len(products) != 1 || products[0].ID != "p1" {
		t.Fatalf("ListProducts = %#v, %v", products, err)
	}

	favourites, err := c.ListFavourites(ctx)
	if err != nil || len(favourites) != 1 || favourites[0].ID != "p2" {
		t.Fatalf("ListFavourites = %#v, %v", favourites, err)
	}

	product, err := c.GetProduct(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProduct returned error: %v", err)
	}
	primary, ok := product.PrimaryImage()
	if !ok || primary.ID != "i2" {
		t.Fatalf("PrimaryImage = %#v, %v", primary, ok)
	}

	if _, err := c.GetProduct(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetProduct(missing) = %v, want ErrNotFound", err)
	}
}

func TestClient_UpdateSendsMultipart(t *testing.T) {
	t.Parallel()

	type received struct {
		fields map[string]string
		files  []string
	}
	var got received

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/products/p1" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(64 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		got.fields = map[string]string{}
		for key, values := range r.MultipartForm.Value {
			got.fields[key] = values[0]
		}
		for _, fh := range r.MultipartForm.File["images"] {
			got.files = append(got.files, fh.Filename)
			f, err := fh.Open()
			if err != nil {
				t.Errorf("open part: %v", err)
				continue
			}
			data, _ := io.ReadAll(f)
			_ = f.Close()
			if len(data) == 0 {
				t.Errorf("image part %s is empty", fh.Filename)
			}
		}
		_ = json.NewEncoder(w).Encode(productResponse{Product: Product{ID: "p1"}})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	draft := Draft{
		Name:              "Lamp",
		SKU:               "LAMP-01",
		Quantity:          "4",
		Description:       "brass",
		Price:             "19.99",
		PrimaryImageIndex: 1,
		Images:            []FilePart{{Filename: "new.png", Data: []byte("png-bytes")}},
		ImagesToDelete:    []string{"i1", "i9"},
	}
	if _, err := c.UpdateProduct(context.Background(), "p1", draft); err != nil {
		t.Fatalf("UpdateProduct returned error: %v", err)
	}

	if got.fields["name"] != "Lamp" || got.fields["sku"] != "LAMP-01" || got.fields["price"] != "19.99" {
		t.Fatalf("scalar fields = %#v", got.fields)
	}
	if got.fields["primaryImageIndex"] != "1" {
		t.Fatalf("primaryImageIndex = %q, want 1", got.fields["primaryImageIndex"])
	}
	var ids []string
	if err := json.Unmarshal([]byte(got.fields["imagesToDelete"]), &ids); err != nil {
		t.Fatalf("imagesToDelete not JSON: %q", got.fields["imagesToDelete"])
	}
	if len(ids) != 2 || ids[0] != "i1" {
		t.Fatalf("imagesToDelete = %#v", ids)
	}
	if len(got.files) != 1 || got.files[0] != "new.png" {
		t.Fatalf("files = %#v", got.files)
	}
}

func TestClient_CreateOmitsDeletions(t *testing.T) {
	t.Parallel()

	var fields map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/products" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(64 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		fields = r.MultipartForm.Value
		_ = json.NewEncoder(w).Encode(productResponse{Product: Product{ID: "p9"}})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	draft := Draft{Name: "Lamp", Images: []FilePart{{Filename: "a.png", Data: []byte("x")}}}
	product, err := c.CreateProduct(context.Background(), draft)
	if err != nil {
		t.Fatalf("CreateProduct returned error: %v", err)
	}
	if product.ID != "p9" {
		t.Fatalf("product = %#v", product)
	}
	if _, ok := fields["imagesToDelete"]; ok {
		t.Fatal("create payload should not carry imagesToDelete")
	}
}

func TestClient_ImageURL(t *testing.T) {
	c, err := NewClient("portal.example.com", "https://cdn.example.com")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if got := c.ImageURL("/uploads/i1.png"); got != "https://cdn.example.com/uploads/i1.png" {
		t.Fatalf("ImageURL = %q", got)
	}
	if got := c.ImageURL(""); got != "" {
		t.Fatalf("ImageURL(empty) = %q", got)
	}

	// Without an asset base the API host serves images.
	c, err = NewClient("portal.example.com", "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if got := c.ImageURL("/uploads/i1.png"); got != "http://portal.example.com/uploads/i1.png" {
		t.Fatalf("ImageURL = %q", got)
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/products":
			w.WriteHeader(http.StatusInternalServerError)
		case "/api/user/me":
			w.WriteHeader(http.StatusUnauthorized)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	if _, err := c.ListProducts(ctx); err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnauthorized) {
		t.Fatalf("500 should be a plain transport error, got %v", err)
	}
	if _, err := c.CurrentUser(ctx); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("401 = %v, want ErrUnauthorized", err)
	}
	if err := c.DeleteProduct(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("404 = %v, want ErrNotFound", err)
	}
}
