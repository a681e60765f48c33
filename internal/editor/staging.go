package editor

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/nvarley/shopkeep/internal/portal"
)

// Source names which collection an image index refers to.
type Source int

const (
	// SourceExisting addresses the persisted images.
	SourceExisting Source = iota
	// SourceStaged addresses the new local images pending upload.
	SourceStaged
)

// StagedImage is a locally selected image pending upload, with its preview
// handle. The handle is released when the image leaves the store.
type StagedImage struct {
	ID      string
	Name    string
	Data    []byte
	Preview *Preview
}

// AdmitResult summarizes one Admit call for the notification layer.
type AdmitResult struct {
	// Accepted is how many files were staged.
	Accepted int
	// Batch is set when the whole batch was refused on capacity.
	Batch *Rejection
	// Rejected lists files dropped individually by per-file checks.
	Rejected []Rejection
}

// Staging tracks the image state of one product edit session: persisted
// images, new local images, ids marked for deletion, and the primary
// selection. See the package comment for the logical index scheme.
type Staging struct {
	existing   []portal.ProductImage
	staged     []StagedImage
	toDelete   []string
	primary    *int
	previewDir string
	disposed   bool
}

// NewStaging returns an empty store. previewDir receives the preview files;
// empty means the system temp directory.
func NewStaging(previewDir string) *Staging {
	return &Staging{previewDir: previewDir}
}

// Hydrate loads a fetched product's persisted images and pre-selects the one
// flagged primary server-side. Used by the edit flow before any mutation.
func (s *Staging) Hydrate(images []portal.ProductImage) {
	s.existing = make([]portal.ProductImage, len(images))
	copy(s.existing, images)
	s.primary = nil
	for i, img := range images {
		if img.IsPrimary {
			idx := i
			s.primary = &idx
			break
		}
	}
}

// Existing returns the persisted images still attached to the product.
func (s *Staging) Existing() []portal.ProductImage {
	return s.existing
}

// Staged returns the local images pending upload.
func (s *Staging) Staged() []StagedImage {
	return s.staged
}

// Deletions returns the persisted image ids marked for removal on submit.
func (s *Staging) Deletions() []string {
	return s.toDelete
}

// Total is the combined image count across both collections.
func (s *Staging) Total() int {
	return len(s.existing) + len(s.staged)
}

// Primary returns the current primary logical index, if one is selected.
func (s *Staging) Primary() (int, bool) {
	if s.primary == nil {
		return 0, false
	}
	return *s.primary, true
}

// IsPrimary reports whether the image at (source, i) is the primary one.
func (s *Staging) IsPrimary(source Source, i int) bool {
	if s.primary == nil {
		return false
	}
	return *s.primary == s.resolveLogicalIndex(source, i)
}

// resolveLogicalIndex maps a position within one collection to the logical
// index space [0, Total()). Every cross-collection comparison in this file
// must go through here.
func (s *Staging) resolveLogicalIndex(source Source, i int) int {
	if source == SourceStaged {
		return len(s.existing) + i
	}
	return i
}

// Admit runs the batch through the gate and stages every accepted file with
// a freshly acquired preview. Capacity refuses the whole batch; type and
// size checks drop files individually. When the store was empty beforehand,
// the first accepted file becomes primary.
//
// A preview allocation failure leaves the store unchanged; previews already
// acquired for the batch are released before returning.
func (s *Staging) Admit(files []LocalFile) (AdmitResult, error) {
	var result AdmitResult
	if len(files) == 0 {
		return result, nil
	}
	if rej := CheckCapacity(s.Total(), len(files)); rej != nil {
		result.Batch = rej
		return result, nil
	}

	wasEmpty := s.Total() == 0
	var admitted []StagedImage
	for _, file := range files {
		if rej := CheckFile(file); rej != nil {
			result.Rejected = append(result.Rejected, *rej)
			continue
		}
		preview, err := newPreview(s.previewDir, file.Name, file.Data)
		if err != nil {
			for _, img := range admitted {
				_ = img.Preview.Release()
			}
			return AdmitResult{}, fmt.Errorf("stage %s: %w", file.Name, err)
		}
		admitted = append(admitted, StagedImage{
			ID:      uuid.NewString(),
			Name:    file.Name,
			Data:    file.Data,
			Preview: preview,
		})
	}

	s.staged = append(s.staged, admitted...)
	result.Accepted = len(admitted)
	if wasEmpty && result.Accepted > 0 && s.primary == nil {
		idx := 0
		s.primary = &idx
	}
	return result, nil
}

// Remove deletes the image at position i of the given collection. Existing
// images move their id into the deletion set; staged images release their
// preview. The primary selection is then recomputed:
//
//   - removing the primary image selects the preceding image, clamped to the
//     remaining bounds, or clears the selection when nothing remains;
//   - removing an image before the primary shifts the selection down by one
//     so it keeps pointing at the same image;
//   - otherwise the selection is untouched.
func (s *Staging) Remove(source Source, i int) error {
	switch source {
	case SourceExisting:
		if i < 0 || i >= len(s.existing) {
			return fmt.Errorf("existing image index %d out of range", i)
		}
	case SourceStaged:
		if i < 0 || i >= len(s.staged) {
			return fmt.Errorf("staged image index %d out of range", i)
		}
	default:
		return fmt.Errorf("unknown image source %d", source)
	}

	logical := s.resolveLogicalIndex(source, i)

	if source == SourceExisting {
		s.toDelete = append(s.toDelete, s.existing[i].ID)
		s.existing = append(s.existing[:i], s.existing[i+1:]...)
	} else {
		_ = s.staged[i].Preview.Release()
		s.staged = append(s.staged[:i], s.staged[i+1:]...)
	}

	if s.primary == nil {
		return nil
	}
	switch {
	case *s.primary == logical:
		if s.Total() == 0 {
			s.primary = nil
			break
		}
		next := logical - 1
		if next < 0 {
			next = 0
		}
		if next >= s.Total() {
			next = s.Total() - 1
		}
		s.primary = &next
	case *s.primary > logical:
		next := *s.primary - 1
		s.primary = &next
	}
	return nil
}

// SelectPrimary points the primary selection at the given logical index.
// Out-of-range indices are ignored; callers pass indices derived from the
// rendered collections.
func (s *Staging) SelectPrimary(logical int) bool {
	if logical < 0 || logical >= s.Total() {
		return false
	}
	s.primary = &logical
	return true
}

// Dispose releases every outstanding preview. Called once when the owning
// session ends; safe to call again.
func (s *Staging) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for i := range s.staged {
		_ = s.staged[i].Preview.Release()
	}
}
