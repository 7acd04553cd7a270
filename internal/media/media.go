// Package media mediates photo selection: the four-image cap, the media
// access permission, the picker and reading picked images back.
package media

import (
	"context"

	perrors "github.com/petpost/petpost/internal/errors"
	"github.com/petpost/petpost/internal/logger"
	"github.com/petpost/petpost/internal/post"
)

// PickerOptions configures one picker launch.
type PickerOptions struct {
	ImagesOnly     bool
	MultiSelect    bool
	SelectionLimit int     // most items the user may choose
	Quality        float64 // 0..1, 1 is original quality
}

// PickResult is what the picker returns. URIs is empty when Canceled.
type PickResult struct {
	Canceled bool
	URIs     []string
}

// Permissions grants or denies access to the user's media.
type Permissions interface {
	RequestPermission(ctx context.Context) (granted bool, err error)
}

// Picker lets the user choose images.
type Picker interface {
	Launch(ctx context.Context, opts PickerOptions) (PickResult, error)
}

// Loader reads the bytes behind an image URI.
type Loader interface {
	Load(ctx context.Context, uri string) ([]byte, error)
}

// CheckQuota returns a KindQuota error if no more images fit.
func CheckQuota(current []post.ImageRef) error {
	if post.Remaining(current) == 0 {
		return perrors.MediaQuotaExceeded(post.MaxImages)
	}
	return nil
}

// OptionsFor returns picker options capped to the free slots next to current.
func OptionsFor(current []post.ImageRef) PickerOptions {
	return PickerOptions{
		ImagesOnly:     true,
		MultiSelect:    true,
		SelectionLimit: post.Remaining(current),
		Quality:        1,
	}
}

// Manager runs the add-images flow against its capabilities.
type Manager struct {
	perms  Permissions
	picker Picker
}

// NewManager creates a Manager.
func NewManager(perms Permissions, picker Picker) *Manager {
	return &Manager{perms: perms, picker: picker}
}

// Pick asks for permission and launches the picker, returning the chosen
// URIs. It returns nothing on cancel. The picker is not launched when
// current is already full, and is limited to the slots current leaves free.
func (m *Manager) Pick(ctx context.Context, current []post.ImageRef) ([]string, error) {
	log := logger.ComponentLogger("Media")

	if err := CheckQuota(current); err != nil {
		log.Debug("add skipped, selection full", "count", len(current))
		return nil, err
	}

	granted, err := m.perms.RequestPermission(ctx)
	if err != nil {
		return nil, perrors.E(perrors.Op("media.RequestPermission"), perrors.KindPermission, err)
	}
	if !granted {
		log.Info("media access denied")
		return nil, perrors.MediaPermissionDenied()
	}

	result, err := m.picker.Launch(ctx, OptionsFor(current))
	if err != nil {
		return nil, perrors.E(perrors.Op("media.Launch"), perrors.KindIO, err)
	}
	if result.Canceled {
		log.Debug("picker canceled")
		return nil, nil
	}
	log.Debug("images picked", "picked", len(result.URIs))
	return result.URIs, nil
}

// Add runs Pick and returns current with the picked images appended, capped
// at post.MaxImages. On any error or cancel it returns current unchanged.
func (m *Manager) Add(ctx context.Context, current []post.ImageRef) ([]post.ImageRef, error) {
	uris, err := m.Pick(ctx, current)
	if err != nil || len(uris) == 0 {
		return current, err
	}
	return post.Append(current, uris), nil
}
