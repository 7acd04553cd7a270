// Package clipboard pastes images from the system clipboard into petpost's
// cache so they can be attached like any picked photo.
package clipboard

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.design/x/clipboard"

	"github.com/petpost/petpost/internal/logger"
)

// filePrefix names every image petpost writes to the cache
const filePrefix = "clipboard-"

// CachePattern matches pasted images inside the cache directory.
const CachePattern = filePrefix + "*.png"

var (
	initMu      sync.Mutex
	initialized bool

	// readImageBytes returns raw clipboard image bytes. Replaced in tests.
	readImageBytes = func() []byte { return clipboard.Read(clipboard.FmtImage) }
	// initFn initializes the system clipboard. Replaced in tests.
	initFn = clipboard.Init
)

// Init initializes the clipboard. Safe to call multiple times.
func Init() error {
	initMu.Lock()
	defer initMu.Unlock()

	if initialized {
		return nil
	}
	if err := initFn(); err != nil {
		logger.ComponentLogger("Clipboard").Warn("failed to initialize", "error", err)
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}
	initialized = true
	return nil
}

// ReadImage reads an image from the clipboard, re-encoded as PNG.
// Returns nil if the clipboard doesn't hold an image.
func ReadImage() (*ImageData, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	log := logger.ComponentLogger("Clipboard")

	raw := readImageBytes()
	if len(raw) == 0 {
		log.Debug("no image data found")
		return nil, nil
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode clipboard image: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image as PNG: %w", err)
	}

	bounds := img.Bounds()
	log.Debug("image read", "format", format, "width", bounds.Dx(), "height", bounds.Dy(), "bytes", buf.Len())
	return &ImageData{
		Data:      buf.Bytes(),
		MediaType: "image/png",
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
	}, nil
}

// Save writes img into dir and returns its file:// URI.
func Save(img *ImageData, dir string) (string, error) {
	if err := img.Validate(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create cache dir: %w", err)
	}

	name := fmt.Sprintf("%s%s-%s.png", filePrefix, time.Now().Format("20060102-150405"), uuid.New().String()[:8])
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, img.Data, 0600); err != nil {
		return "", fmt.Errorf("failed to save clipboard image: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return (&url.URL{Scheme: "file", Path: abs}).String(), nil
}

// Paste reads the clipboard image and saves it into dir. It returns an empty
// URI and no error if the clipboard holds no image.
func Paste(dir string) (string, error) {
	img, err := ReadImage()
	if err != nil || img == nil {
		return "", err
	}
	return Save(img, dir)
}

// ClearCache removes every pasted image from dir and reports how many.
func ClearCache(dir string) (int, error) {
	files, err := filepath.Glob(filepath.Join(dir, CachePattern))
	if err != nil {
		return 0, err
	}
	count := 0
	for _, f := range files {
		if err := os.Remove(f); err == nil {
			count++
		} else if !os.IsNotExist(err) {
			return count, err
		}
	}
	return count, nil
}
