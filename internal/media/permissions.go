package media

import (
	"context"
	"os"

	"github.com/petpost/petpost/internal/config"
	"github.com/petpost/petpost/internal/logger"
)

// PromptFunc asks the user whether petpost may read their pictures.
type PromptFunc func(ctx context.Context) (bool, error)

// ConsentPermissions is the terminal stand-in for a runtime media permission.
// The user's answer is persisted as config media_access; after a grant the
// pictures directory must also be readable by this process.
type ConsentPermissions struct {
	cfg    *config.Config
	prompt PromptFunc
}

// NewConsentPermissions creates permissions backed by cfg. prompt may be nil,
// in which case an unanswered grant counts as denied.
func NewConsentPermissions(cfg *config.Config, prompt PromptFunc) *ConsentPermissions {
	return &ConsentPermissions{cfg: cfg, prompt: prompt}
}

// Decided reports the persisted answer, if any.
func (p *ConsentPermissions) Decided() (granted, decided bool) {
	switch p.cfg.GetMediaAccess() {
	case config.MediaAccessGranted:
		return true, true
	case config.MediaAccessDenied:
		return false, true
	default:
		return false, false
	}
}

// Record persists the user's answer.
func (p *ConsentPermissions) Record(granted bool) error {
	access := config.MediaAccessDenied
	if granted {
		access = config.MediaAccessGranted
	}
	p.cfg.SetMediaAccess(access)
	return p.cfg.Save()
}

// RequestPermission implements Permissions.
func (p *ConsentPermissions) RequestPermission(ctx context.Context) (bool, error) {
	granted, decided := p.Decided()
	if !decided {
		if p.prompt == nil {
			return false, nil
		}
		answer, err := p.prompt(ctx)
		if err != nil {
			return false, err
		}
		if err := p.Record(answer); err != nil {
			logger.ComponentLogger("Media").Warn("failed to persist media access", "error", err)
		}
		granted = answer
	}
	if !granted {
		return false, nil
	}
	return Readable(p.cfg.GetPicturesDir()), nil
}

// Readable reports whether dir can be listed. A missing directory counts as
// readable; the picker then simply shows nothing.
func Readable(dir string) bool {
	f, err := os.Open(dir)
	if err != nil {
		return !os.IsPermission(err)
	}
	defer f.Close()
	_, err = f.Readdirnames(1)
	return err == nil || !os.IsPermission(err)
}
