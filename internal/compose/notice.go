package compose

import (
	"fmt"

	perrors "github.com/petpost/petpost/internal/errors"
	"github.com/petpost/petpost/internal/post"
)

// Level is a notice's severity.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// String returns a human-readable name for the level
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Notice is a user-facing message about the outcome of an action.
type Notice struct {
	Level   Level
	Title   string
	Message string
}

// IsZero reports whether n carries nothing to show.
func (n Notice) IsZero() bool {
	return n == Notice{}
}

// String renders the notice on one line.
func (n Notice) String() string {
	if n.Title == "" {
		return n.Message
	}
	return n.Title + ": " + n.Message
}

// Fixed notices. Transport and server failures are not told apart beyond
// these two texts.
var (
	NoticePublished = Notice{
		Level:   LevelSuccess,
		Title:   "Publication created",
		Message: "Your publication was created successfully!",
	}
	NoticeMissingFields = Notice{
		Level:   LevelError,
		Title:   "Error",
		Message: "Fill in all required fields.",
	}
	NoticeQuota = Notice{
		Level:   LevelWarning,
		Title:   "Image limit",
		Message: fmt.Sprintf("You can only add up to %d images.", post.MaxImages),
	}
	NoticePermissionDenied = Notice{
		Level:   LevelWarning,
		Title:   "Permission denied",
		Message: "You need to allow access to your pictures to choose an image.",
	}
	NoticeBusy = Notice{
		Level:   LevelInfo,
		Title:   "Please wait",
		Message: "Your publication is still being sent.",
	}
	NoticeRejected = Notice{
		Level:   LevelError,
		Title:   "Error",
		Message: "An error occurred while creating the publication.",
	}
	NoticeSendFailed = Notice{
		Level:   LevelError,
		Title:   "Error",
		Message: "Error sending the publication. Please try again.",
	}
)

// NoticeFor maps an error from the media or publish flows to the notice
// shown to the user. A nil error maps to the zero Notice.
func NoticeFor(err error) Notice {
	if err == nil {
		return Notice{}
	}
	switch perrors.GetKind(err) {
	case perrors.KindInvalid:
		return NoticeMissingFields
	case perrors.KindQuota:
		return NoticeQuota
	case perrors.KindPermission:
		return NoticePermissionDenied
	case perrors.KindBusy:
		return NoticeBusy
	case perrors.KindHTTP:
		return NoticeRejected
	default:
		return NoticeSendFailed
	}
}
