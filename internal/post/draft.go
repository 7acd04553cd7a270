// Package post holds the draft of a lost/found-pet publication and the
// rules for its photo list.
package post

import (
	"slices"

	perrors "github.com/petpost/petpost/internal/errors"
)

// DefaultStatus is the status a new draft starts with.
const DefaultStatus = "published"

// Draft is a publication the user has not sent yet. Values are replaced
// wholesale by the With* methods; a Draft is never mutated in place.
type Draft struct {
	Info     string     `json:"info"`     // contact information
	Details  string     `json:"details"`  // free-text description
	Status   string     `json:"status"`   // classification label
	Images   []ImageRef `json:"images"`   // upload order
	Location string     `json:"location"` // not user-editable
	User     string     `json:"user"`     // replaced by the session identity on submit
}

// NewDraft returns the empty draft a compose screen starts with.
func NewDraft() Draft {
	return Draft{
		Status: DefaultStatus,
		Images: []ImageRef{},
	}
}

// Clone returns a copy that shares no memory with d.
func (d Draft) Clone() Draft {
	c := d
	c.Images = slices.Clone(d.Images)
	if c.Images == nil {
		c.Images = []ImageRef{}
	}
	return c
}

// Equal reports whether two drafts hold the same values. A nil and an empty
// image list compare equal.
func (d Draft) Equal(o Draft) bool {
	return d.Info == o.Info &&
		d.Details == o.Details &&
		d.Status == o.Status &&
		d.Location == o.Location &&
		d.User == o.User &&
		slices.Equal(d.Images, o.Images)
}

// WithDetails returns a copy of d with Details replaced.
func (d Draft) WithDetails(details string) Draft {
	c := d.Clone()
	c.Details = details
	return c
}

// WithInfo returns a copy of d with Info replaced.
func (d Draft) WithInfo(info string) Draft {
	c := d.Clone()
	c.Info = info
	return c
}

// WithStatus returns a copy of d with Status replaced.
func (d Draft) WithStatus(status string) Draft {
	c := d.Clone()
	c.Status = status
	return c
}

// WithLocation returns a copy of d with Location replaced.
func (d Draft) WithLocation(location string) Draft {
	c := d.Clone()
	c.Location = location
	return c
}

// WithImages returns a copy of d holding images, truncated to MaxImages.
func (d Draft) WithImages(images []ImageRef) Draft {
	c := d
	c.Images = Append(images, nil)
	return c
}

// MissingFields lists the required fields that are empty, in display order.
func (d Draft) MissingFields() []string {
	var missing []string
	if d.Details == "" {
		missing = append(missing, "details")
	}
	if d.Info == "" {
		missing = append(missing, "info")
	}
	if len(d.Images) == 0 {
		missing = append(missing, "images")
	}
	return missing
}

// Validate returns a KindInvalid error naming every missing required field,
// or nil if the draft can be submitted.
func (d Draft) Validate() error {
	if missing := d.MissingFields(); len(missing) > 0 {
		return perrors.MissingRequiredFields(missing)
	}
	return nil
}
