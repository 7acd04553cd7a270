// Package compose owns the draft behind one compose screen.
//
// A Composer lives as long as the screen is mounted. Every change replaces
// the draft wholesale; a successful submission resets it to post.NewDraft()
// and a failed one leaves it exactly as it was.
package compose

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/petpost/petpost/internal/logger"
	"github.com/petpost/petpost/internal/media"
	"github.com/petpost/petpost/internal/post"
	"github.com/petpost/petpost/internal/publish"
)

// Adder picks images to add to a selection. media.Manager implements it.
type Adder interface {
	Pick(ctx context.Context, current []post.ImageRef) ([]string, error)
}

// Composer owns a draft.
type Composer struct {
	mu      sync.RWMutex
	draft   post.Draft
	mountID string
}

// New returns a composer holding an empty draft.
func New() *Composer {
	return &Composer{
		draft:   post.NewDraft(),
		mountID: uuid.New().String(),
	}
}

// MountID identifies this composer. Async results tagged with another ID
// belong to a screen that is gone and must be dropped.
func (c *Composer) MountID() string {
	return c.mountID
}

// Owns reports whether a result tagged with mountID belongs to c.
func (c *Composer) Owns(mountID string) bool {
	return mountID == c.mountID
}

// Draft returns a copy of the current draft.
func (c *Composer) Draft() post.Draft {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.draft.Clone()
}

func (c *Composer) replace(fn func(post.Draft) post.Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = fn(c.draft)
}

// SetDetails replaces the description.
func (c *Composer) SetDetails(details string) {
	c.replace(func(d post.Draft) post.Draft { return d.WithDetails(details) })
}

// SetInfo replaces the contact information.
func (c *Composer) SetInfo(info string) {
	c.replace(func(d post.Draft) post.Draft { return d.WithInfo(info) })
}

// SetStatus replaces the status label.
func (c *Composer) SetStatus(status string) {
	c.replace(func(d post.Draft) post.Draft { return d.WithStatus(status) })
}

// SetLocation replaces the location.
func (c *Composer) SetLocation(location string) {
	c.replace(func(d post.Draft) post.Draft { return d.WithLocation(location) })
}

// AddImages runs the add flow and appends what was picked to the selection
// as it is when the flow ends, so edits made while the picker was open are
// kept. The returned notice is zero on success or cancel.
func (c *Composer) AddImages(ctx context.Context, adder Adder) Notice {
	picked, err := adder.Pick(ctx, c.Draft().Images)
	if err != nil {
		return NoticeFor(err)
	}
	if len(picked) == 0 {
		return Notice{}
	}
	c.replace(func(d post.Draft) post.Draft { return d.WithImages(post.Append(d.Images, picked)) })
	return Notice{}
}

// AppendURIs adds images picked outside AddImages, such as a pasted
// clipboard image or a TUI picker result. It refuses when the selection is
// already full and otherwise truncates to post.MaxImages.
func (c *Composer) AppendURIs(uris []string) Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := media.CheckQuota(c.draft.Images); err != nil {
		return NoticeFor(err)
	}
	c.draft = c.draft.WithImages(post.Append(c.draft.Images, uris))
	return Notice{}
}

// RemoveImage removes the image at position i.
func (c *Composer) RemoveImage(i int) {
	c.replace(func(d post.Draft) post.Draft { return d.WithImages(post.RemoveAt(d.Images, i)) })
}

// RemoveImageByID removes the image with the given ID.
func (c *Composer) RemoveImageByID(id string) {
	c.replace(func(d post.Draft) post.Draft { return d.WithImages(post.RemoveByID(d.Images, id)) })
}

// Reset restores the empty draft.
func (c *Composer) Reset() {
	c.replace(func(post.Draft) post.Draft { return post.NewDraft() })
}

// Submit sends the current draft through s and applies the outcome.
func (c *Composer) Submit(ctx context.Context, s publish.Submitter) Notice {
	_, err := s.Submit(ctx, c.Draft())
	return c.Finish(err)
}

// Finish applies a submission outcome: nil resets the draft, anything else
// leaves it untouched. It returns the notice to show.
func (c *Composer) Finish(err error) Notice {
	log := logger.ComponentLogger("Compose")
	if err != nil {
		log.Info("submission failed, draft kept", "mountID", c.mountID, "error", err)
		return NoticeFor(err)
	}
	c.Reset()
	log.Info("submission succeeded, draft reset", "mountID", c.mountID)
	return NoticePublished
}
