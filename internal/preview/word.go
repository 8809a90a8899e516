package preview

import (
	"fmt"

	"docpane/internal/api"
)

// GalleryLabel names a Word inline image for the gallery list. The
// wire index is zero-based; labels show it one-based.
func GalleryLabel(img api.WordImage) string {
	if img.OriginalName != "" {
		return img.OriginalName
	}
	return fmt.Sprintf("image %d", img.Index+1)
}
