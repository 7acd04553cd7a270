package clipboard

import "fmt"

// MaxImageSize is the largest pasted image petpost will attach (10MB)
const MaxImageSize = 10 * 1024 * 1024

// MaxImageDimension is the maximum allowed width or height
const MaxImageDimension = 8000

// ImageData represents clipboard image data
type ImageData struct {
	Data      []byte // PNG encoded image data
	MediaType string // always "image/png" since we encode to PNG
	Width     int
	Height    int
}

// Validate checks the image is small enough to upload.
func (img *ImageData) Validate() error {
	if len(img.Data) == 0 {
		return fmt.Errorf("image is empty")
	}
	if len(img.Data) > MaxImageSize {
		return fmt.Errorf("image too large: %d bytes (max %dMB)", len(img.Data), MaxImageSize/(1024*1024))
	}
	if img.Width > MaxImageDimension || img.Height > MaxImageDimension {
		return fmt.Errorf("image dimensions too large: %dx%d (max %dx%d)",
			img.Width, img.Height, MaxImageDimension, MaxImageDimension)
	}
	return nil
}

// SizeKB returns the image size in kilobytes
func (img *ImageData) SizeKB() int {
	return len(img.Data) / 1024
}
