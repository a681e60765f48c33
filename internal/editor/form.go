package editor

import (
	"strconv"
	"strings"

	"github.com/nvarley/shopkeep/internal/portal"
)

// Field names a scalar product field.
type Field string

const (
	FieldName        Field = "name"
	FieldSKU         Field = "sku"
	FieldQuantity    Field = "quantity"
	FieldDescription Field = "description"
	FieldPrice       Field = "price"
)

// FieldError reports the first validation rule a form failed.
type FieldError struct {
	Field   Field
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Form holds the scalar product fields as entered. Values are kept raw;
// nothing is validated until Validate.
type Form struct {
	Name        string
	SKU         string
	Quantity    string
	Description string
	Price       string
}

// FormFromProduct pre-fills a form from a fetched product for the edit flow.
func FormFromProduct(p portal.Product) *Form {
	return &Form{
		Name:        p.Name,
		SKU:         p.SKU,
		Quantity:    strconv.Itoa(p.Quantity),
		Description: p.Description,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
	}
}

// Set overwrites one field with the raw value.
func (f *Form) Set(field Field, value string) {
	switch field {
	case FieldName:
		f.Name = value
	case FieldSKU:
		f.SKU = value
	case FieldQuantity:
		f.Quantity = value
	case FieldDescription:
		f.Description = value
	case FieldPrice:
		f.Price = value
	}
}

// Validate checks the form and returns the first failing rule, in the order
// name, sku, quantity. Description is free text and price is accepted as-is,
// empty included; the server owns price validation.
func (f *Form) Validate() *FieldError {
	if strings.TrimSpace(f.Name) == "" {
		return &FieldError{Field: FieldName, Message: "Product name is required"}
	}
	if strings.TrimSpace(f.SKU) == "" {
		return &FieldError{Field: FieldSKU, Message: "SKU is required"}
	}
	qty := strings.TrimSpace(f.Quantity)
	if qty == "" {
		return &FieldError{Field: FieldQuantity, Message: "Valid quantity is required"}
	}
	n, err := strconv.ParseFloat(qty, 64)
	if err != nil || n < 0 {
		return &FieldError{Field: FieldQuantity, Message: "Valid quantity is required"}
	}
	return nil
}
