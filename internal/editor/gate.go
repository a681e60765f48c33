package editor

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Admission limits. These are part of the portal contract, not local policy.
const (
	// MaxImages caps persisted plus staged images per product.
	MaxImages = 3
	// MaxFileSize is the per-file upload ceiling (50 MiB).
	MaxFileSize = 50 << 20
)

// LocalFile is a locally selected file offered for staging.
type LocalFile struct {
	Name string
	Data []byte
}

// RejectReason classifies why the gate refused a file or batch.
type RejectReason string

const (
	// RejectLimit means the batch would push the store past MaxImages.
	RejectLimit RejectReason = "limit"
	// RejectType means the file is not an image.
	RejectType RejectReason = "type"
	// RejectSize means the file exceeds MaxFileSize.
	RejectSize RejectReason = "size"
)

// Rejection describes a refused file or batch.
type Rejection struct {
	Reason RejectReason
	Name   string // file name for per-file rejections
	// AllowedMore is how many files the store can still take.
	// Set for RejectLimit only.
	AllowedMore int
}

// CheckCapacity admits or refuses an incoming batch as a whole. A batch that
// would exceed MaxImages is rejected entirely; there is no partial admission
// on capacity.
func CheckCapacity(currentTotal, incomingCount int) *Rejection {
	if currentTotal+incomingCount <= MaxImages {
		return nil
	}
	allowed := MaxImages - currentTotal
	if allowed < 0 {
		allowed = 0
	}
	return &Rejection{Reason: RejectLimit, AllowedMore: allowed}
}

// CheckFile admits or refuses a single file. The content type is sniffed
// from the bytes rather than trusted from the file name.
func CheckFile(file LocalFile) *Rejection {
	mtype := mimetype.Detect(file.Data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return &Rejection{Reason: RejectType, Name: file.Name}
	}
	if len(file.Data) > MaxFileSize {
		return &Rejection{Reason: RejectSize, Name: file.Name}
	}
	return nil
}
