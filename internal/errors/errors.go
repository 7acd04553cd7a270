// Package errors provides structured error types for petpost.
// These errors provide context about what operation failed and where.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindPermission
	KindQuota
	KindIO
	KindNetwork
	KindHTTP
	KindAuth
	KindConfig
	KindBusy
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindPermission:
		return "permission denied"
	case KindQuota:
		return "quota exceeded"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindHTTP:
		return "unexpected HTTP status"
	case KindAuth:
		return "authentication error"
	case KindConfig:
		return "configuration error"
	case KindBusy:
		return "operation in progress"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for petpost.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Draft errors
func MissingRequiredFields(fields []string) error {
	return E(Op("post.Validate"), KindInvalid, fmt.Sprintf("missing required fields: %v", fields))
}

// Media errors
func MediaQuotaExceeded(limit int) error {
	return E(Op("media.Add"), KindQuota, fmt.Sprintf("at most %d images can be attached", limit))
}

func MediaPermissionDenied() error {
	return E(Op("media.RequestPermission"), KindPermission, "media library access was denied")
}

func MediaLoadFailed(uri string, err error) error {
	return E(Op("media.Load"), KindIO, fmt.Sprintf("failed to read %s", uri), err)
}

// Submission errors
func SubmitInProgress() error {
	return E(Op("publish.Submit"), KindBusy, "a submission is already in flight")
}

func SubmitRejected(status int) error {
	return E(Op("publish.Submit"), KindHTTP, fmt.Sprintf("server responded with status %d", status))
}

func SubmitFailed(err error) error {
	return E(Op("publish.Submit"), KindNetwork, "request could not be completed", err)
}

// Auth errors
func LoginRejected(status int) error {
	return E(Op("auth.Login"), KindAuth, fmt.Sprintf("login rejected with status %d", status))
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}
