// Package portal provides an HTTP client for the vendor product portal API.
//
// # Overview
//
// This package defines the API client for communicating with the remote
// product-management service. It handles HTTP communication, cookie-based
// sessions, JSON and multipart serialization, and type-safe representation
// of products, images, and users.
//
// # Architecture
//
// The package is split into two files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: Data structures mirroring the portal API schema
//
// # Client Usage
//
// Create a client using the API base URL from configuration:
//
//	client, err := portal.NewClient("portal.example.com", "")
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	user, err := client.Login(ctx, email, password)
//	if err != nil {
//		// wrong credentials or transport failure
//	}
//
//	products, err := client.ListProducts(ctx)
//
// # API Endpoints
//
// The client covers the full portal surface:
//
//   - POST /api/auth/login, /api/auth/logout: Session management
//   - GET  /api/user/me: Session user
//   - GET  /api/products, /api/products/{id}: Catalog reads
//   - POST /api/products: Create (multipart)
//   - PUT  /api/products/{id}: Update (multipart, with imagesToDelete)
//   - DELETE /api/products/{id}: Delete
//   - GET  /api/products/favourites: Favourites list
//   - POST /api/products/favourites/toggle/{id}: Favourite toggle
//
// # Sessions
//
// The server issues a session cookie at login. The client holds it in a
// cookie jar and sends it implicitly on every later request; callers never
// see or manage credentials after Login. A 401 from any endpoint surfaces
// as ErrUnauthorized so the UI can route back to the login screen.
//
// # Multipart Payloads
//
// Create and update calls send multipart form data: one field per product
// scalar, primaryImageIndex, a repeated "images" file part per new upload,
// and (updates only) imagesToDelete as a JSON-encoded array of ids.
// Persisted images are never re-uploaded.
//
// # Error Handling
//
// The client distinguishes between several error types:
//
//   - ErrUnauthorized: missing or expired session (HTTP 401)
//   - ErrNotFound: unknown product id (HTTP 404)
//   - Network errors: connection refused, timeout, DNS failure
//   - Other HTTP errors: remaining 4xx/5xx status codes
//   - Deserialization errors: malformed JSON responses
//
// All errors are wrapped with descriptive context using fmt.Errorf. "Call
// failed" and "no data" are never conflated: a nil result always comes with
// a non-nil error.
//
// # Image URLs
//
// The API returns image paths relative to an asset host. ImageURL resolves
// them against the configured asset base for display.
//
// # Thread Safety
//
// The Client struct is safe for concurrent use. The underlying http.Client
// handles connection pooling and concurrent requests internally.
//
// # Testing Considerations
//
// When testing code that uses this package:
//   - Use httptest.Server to mock the portal API
//   - Test both success and error paths
//   - Verify the session cookie round-trips through the jar
//   - Check multipart encoding of create/update payloads
package portal
