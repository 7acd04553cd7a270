package app

import (
	"github.com/petpost/petpost/internal/auth"
	"github.com/petpost/petpost/internal/compose"
	"github.com/petpost/petpost/internal/media"
	"github.com/petpost/petpost/internal/publish"
)

// SessionChangedMsg carries a new session snapshot from the provider.
type SessionChangedMsg struct {
	State auth.State
}

// LoginResultMsg is sent when a login attempt finishes.
type LoginResultMsg struct {
	Err error
}

// LogoutResultMsg is sent when logout finishes.
type LogoutResultMsg struct {
	Err error
}

// SubmitResultMsg is sent when a submission finishes. MountID names the
// composer that started it.
type SubmitResultMsg struct {
	MountID string
	Result  publish.Result
	Err     error
}

// ImagesAddedMsg is sent when the add-images flow ends.
type ImagesAddedMsg struct {
	MountID string
	Notice  compose.Notice
}

// PasteResultMsg is sent when a clipboard image was saved (or not).
type PasteResultMsg struct {
	MountID string
	URI     string
	Err     error
}

// ConsentRequestMsg asks the UI whether the pictures folder may be read.
type ConsentRequestMsg struct {
	reply chan<- consentReply
}

// PickRequestMsg asks the UI to choose up to Limit of Candidates.
type PickRequestMsg struct {
	Dir        string
	Candidates []media.Candidate
	Limit      int
	reply      chan<- pickReply
}

type consentReply struct {
	granted   bool
	dismissed bool
}

type pickReply struct {
	paths    []string
	canceled bool
}

// NotificationSentMsg reports a desktop notification failure, if any.
type NotificationSentMsg struct {
	Err error
}
