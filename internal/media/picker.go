package media

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// imageExtensions are the file types the directory picker offers
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".heic"}

// Candidate is an image file offered by the directory picker.
type Candidate struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// URI returns the candidate's file:// URI.
func (c Candidate) URI() string {
	return FileURI(c.Path)
}

// FileURI returns the file:// URI for path.
func FileURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

// IsImageFile reports whether name has an image extension.
func IsImageFile(name string) bool {
	return slices.Contains(imageExtensions, strings.ToLower(filepath.Ext(name)))
}

// ListImages returns the image files directly inside dir, newest first.
// A missing directory yields no candidates.
func ListImages(dir string) ([]Candidate, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []Candidate
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !IsImageFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Candidate{
			Path:    filepath.Join(dir, e.Name()),
			Name:    e.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	slices.SortStableFunc(out, func(a, b Candidate) int {
		if c := b.ModTime.Compare(a.ModTime); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

// ChooseFunc lets the user choose at most limit candidates. It returns the
// chosen paths, or canceled=true.
type ChooseFunc func(ctx context.Context, candidates []Candidate, limit int) (paths []string, canceled bool, err error)

// DirPicker offers the images in a directory.
type DirPicker struct {
	dir    func() string
	choose ChooseFunc
}

// NewDirPicker creates a picker over the directory returned by dir.
func NewDirPicker(dir func() string, choose ChooseFunc) *DirPicker {
	return &DirPicker{dir: dir, choose: choose}
}

// Dir returns the directory being offered.
func (p *DirPicker) Dir() string {
	return p.dir()
}

// List returns the candidates in the picker's directory.
func (p *DirPicker) List() ([]Candidate, error) {
	return ListImages(p.dir())
}

// Launch implements Picker. Choices beyond SelectionLimit are dropped.
func (p *DirPicker) Launch(ctx context.Context, opts PickerOptions) (PickResult, error) {
	candidates, err := p.List()
	if err != nil {
		return PickResult{}, err
	}
	if opts.SelectionLimit <= 0 {
		return PickResult{Canceled: true}, nil
	}
	limit := opts.SelectionLimit
	if !opts.MultiSelect {
		limit = 1
	}

	paths, canceled, err := p.choose(ctx, candidates, limit)
	if err != nil {
		return PickResult{}, err
	}
	if canceled || len(paths) == 0 {
		return PickResult{Canceled: true}, nil
	}
	if len(paths) > limit {
		paths = paths[:limit]
	}

	uris := make([]string, len(paths))
	for i, path := range paths {
		uris[i] = FileURI(path)
	}
	return PickResult{URIs: uris}, nil
}

// StaticPicker returns a fixed selection, for non-interactive use.
type StaticPicker struct {
	URIs []string
}

// Launch implements Picker. An empty selection counts as canceled.
func (p StaticPicker) Launch(_ context.Context, opts PickerOptions) (PickResult, error) {
	if len(p.URIs) == 0 {
		return PickResult{Canceled: true}, nil
	}
	uris := p.URIs
	if opts.SelectionLimit >= 0 && len(uris) > opts.SelectionLimit {
		uris = uris[:opts.SelectionLimit]
	}
	return PickResult{URIs: slices.Clone(uris)}, nil
}

// GrantAll is a Permissions that always grants access.
type GrantAll struct{}

// RequestPermission implements Permissions.
func (GrantAll) RequestPermission(context.Context) (bool, error) { return true, nil }
