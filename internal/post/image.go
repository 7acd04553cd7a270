package post

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
)

// MaxImages is the most images a single post can carry.
const MaxImages = 4

// ImageRef is a reference to a local photo. URI is opaque to petpost; ID is
// a per-item token that stays stable while the list around it changes.
type ImageRef struct {
	ID  string `json:"id"`
	URI string `json:"uri"`
}

// NewImageRef returns a reference to uri with a fresh ID.
func NewImageRef(uri string) ImageRef {
	return ImageRef{ID: uuid.New().String(), URI: uri}
}

// Name returns the file name used for display and upload: the last path
// segment of the URI, or image_<index>.jpg if the URI has none.
func (r ImageRef) Name(index int) string {
	p := r.URI
	if u, err := url.Parse(r.URI); err == nil && u.Scheme != "" {
		p = u.Path
		if p == "" {
			p = u.Opaque
		}
	}
	p = strings.TrimRight(p, "/")
	if p != "" {
		if name := path.Base(p); name != "." && name != "/" && name != "" {
			return name
		}
	}
	return fmt.Sprintf("image_%d.jpg", index)
}

// Append returns images followed by one new ref per uri, truncated to
// MaxImages. images is not modified.
func Append(images []ImageRef, uris []string) []ImageRef {
	out := make([]ImageRef, 0, min(len(images)+len(uris), MaxImages))
	out = append(out, images...)
	for _, uri := range uris {
		out = append(out, NewImageRef(uri))
	}
	if len(out) > MaxImages {
		out = out[:MaxImages]
	}
	return out
}

// RemoveAt returns a copy of images without position i. Later items shift
// down by one. An out of range i yields an unchanged copy.
func RemoveAt(images []ImageRef, i int) []ImageRef {
	out := make([]ImageRef, 0, len(images))
	for j, img := range images {
		if j != i {
			out = append(out, img)
		}
	}
	return out
}

// RemoveByID returns a copy of images without the item whose ID is id.
func RemoveByID(images []ImageRef, id string) []ImageRef {
	out := make([]ImageRef, 0, len(images))
	for _, img := range images {
		if img.ID != id {
			out = append(out, img)
		}
	}
	return out
}

// Remaining returns how many more images fit next to images.
func Remaining(images []ImageRef) int {
	return max(MaxImages-len(images), 0)
}
