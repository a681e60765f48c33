package portal

// User is the authenticated portal account.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProductImage describes a persisted product image as returned by the API.
// ImageURL is relative; prefix it with the configured asset base for display.
type ProductImage struct {
	ID        string `json:"id"`
	ImageURL  string `json:"imageUrl"`
	IsPrimary bool   `json:"isPrimary"`
}

// Product mirrors the portal's product payload.
type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	SKU         string         `json:"sku"`
	Quantity    int            `json:"quantity"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	IsFavourite bool           `json:"isFavourite"`
	Images      []ProductImage `json:"images"`
}

// PrimaryImage returns the image flagged primary server-side, if any.
func (p Product) PrimaryImage() (ProductImage, bool) {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img, true
		}
	}
	return ProductImage{}, false
}

// productListResponse mirrors GET /api/products.
type productListResponse struct {
	Products []Product `json:"products"`
}

// favouriteListResponse mirrors GET /api/products/favourites.
type favouriteListResponse struct {
	Favourites []Product `json:"favourites"`
}

// productResponse mirrors GET /api/products/{id}.
type productResponse struct {
	Product Product `json:"product"`
}

// FilePart is one binary image to upload with a create or update call.
type FilePart struct {
	Filename string
	Data     []byte
}

// Draft is the transport-ready payload for a create or update call.
// Scalar fields are carried verbatim as entered; the server owns parsing.
type Draft struct {
	Name        string
	SKU         string
	Quantity    string
	Description string
	Price       string

	// PrimaryImageIndex addresses the concatenation of the product's kept
	// existing images followed by the new uploads.
	PrimaryImageIndex int

	// Images holds new uploads only; persisted images are never re-sent.
	Images []FilePart

	// ImagesToDelete lists persisted image ids to remove. Update calls only.
	ImagesToDelete []string
}
