package editor

import (
	"fmt"

	"github.com/nvarley/shopkeep/internal/portal"
)

// Mode distinguishes the create and edit submission flows.
type Mode int

const (
	// ModeCreate builds a payload for POST /api/products.
	ModeCreate Mode = iota
	// ModeEdit builds a payload for PUT /api/products/{id}, including the
	// deletion list.
	ModeEdit
)

// Assemble composes the two stores into a transport-ready draft. It performs
// no I/O and reads the primary index fresh on every call, so unchanged
// inputs always produce the same draft.
//
// Callers run form validation and the primary/image-count checks before
// calling; a missing primary selection here is still refused rather than
// sent as a bogus index.
func Assemble(form *Form, staging *Staging, mode Mode) (portal.Draft, error) {
	primary, ok := staging.Primary()
	if !ok {
		return portal.Draft{}, fmt.Errorf("no primary image selected")
	}

	draft := portal.Draft{
		Name:              form.Name,
		SKU:               form.SKU,
		Quantity:          form.Quantity,
		Description:       form.Description,
		Price:             form.Price,
		PrimaryImageIndex: primary,
	}
	for _, img := range staging.Staged() {
		draft.Images = append(draft.Images, portal.FilePart{
			Filename: img.Name,
			Data:     img.Data,
		})
	}
	if mode == ModeEdit {
		draft.ImagesToDelete = append([]string{}, staging.Deletions()...)
	}
	return draft, nil
}
