package app

import (
	"errors"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/petpost/petpost/internal/compose"
	"github.com/petpost/petpost/internal/config"
	perrors "github.com/petpost/petpost/internal/errors"
	"github.com/petpost/petpost/internal/media"
	"github.com/petpost/petpost/internal/notification"
	"github.com/petpost/petpost/internal/post"
	"github.com/petpost/petpost/internal/ui"
	"github.com/petpost/petpost/internal/ui/modals"
)

func TestTyping_SyncsDraft(t *testing.T) {
	env := authedEnv(t)
	m := env.model
	typeText(m, "Brown dog")
	sendKey(m, "tab")
	typeText(m, "555-1234")

	d := m.Composer().Draft()
	if d.Details != "Brown dog" || d.Info != "555-1234" {
		t.Errorf("draft = %+v", d)
	}
	if d.Status != post.DefaultStatus {
		t.Errorf("status = %q, want default", d.Status)
	}
}

func TestSubmit_MissingFieldsNeverSends(t *testing.T) {
	env := authedEnv(t)
	m := env.model
	typeText(m, "Brown dog")

	sendKey(m, "ctrl+s")

	if len(env.submitter.drafts) != 0 {
		t.Error("submitter called with missing fields")
	}
	if m.State() != StateIdle {
		t.Errorf("state = %v, want Idle", m.State())
	}
	if !m.footer.HasFlash() {
		t.Error("expected a flash about missing fields")
	}
}

func TestSubmit_SuccessResetsDraft(t *testing.T) {
	env := authedEnv(t)
	m := env.model
	fillRequired(m)

	cmd := sendKey(m, "ctrl+s")
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	if m.State() != StateSubmitting {
		t.Errorf("state = %v, want Submitting", m.State())
	}

	// Editing is blocked while in flight
	typeText(m, "zzz")
	if m.Composer().Draft().Info != "555-1234" {
		t.Error("draft edited during submission")
	}

	m.Update(cmd())

	if len(env.submitter.drafts) != 1 {
		t.Fatalf("submitted %d drafts, want 1", len(env.submitter.drafts))
	}
	sent := env.submitter.drafts[0]
	if sent.Details != "Brown dog" || len(sent.Images) != 1 {
		t.Errorf("sent = %+v", sent)
	}
	if !m.Composer().Draft().Equal(post.NewDraft()) {
		t.Errorf("draft not reset: %+v", m.Composer().Draft())
	}
	if v := m.form.Values(); v.Details != "" || v.Info != "" {
		t.Errorf("form not reset: %+v", v)
	}
	if m.State() != StateIdle {
		t.Errorf("state = %v, want Idle", m.State())
	}
}

func TestSubmit_FailureKeepsDraft(t *testing.T) {
	env := authedEnv(t)
	m := env.model
	env.submitter.err = perrors.SubmitRejected(500)
	fillRequired(m)
	before := m.Composer().Draft()

	cmd := sendKey(m, "ctrl+s")
	m.Update(cmd())

	if !m.Composer().Draft().Equal(before) {
		t.Errorf("draft changed after failure: %+v", m.Composer().Draft())
	}
	if m.State() != StateIdle {
		t.Errorf("state = %v, want Idle", m.State())
	}
}

func TestSubmit_StaleResultDropped(t *testing.T) {
	env := authedEnv(t)
	m := env.model
	fillRequired(m)
	old := m.Composer().MountID()

	m.Replace(m.Route()) // remount
	typeText(m, "New draft")
	before := m.Composer().Draft()

	m.Update(SubmitResultMsg{MountID: old})

	if !m.Composer().Draft().Equal(before) {
		t.Error("stale success reset the new draft")
	}
}

func TestSubmit_NotifiesWhenEnabled(t *testing.T) {
	env := authedEnv(t)
	m := env.model
	m.config.SetNotificationsEnabled(true)

	var gotTitle string
	notification.SetNotifier(func(title, _ string, _ any) error {
		gotTitle = title
		return nil
	})
	t.Cleanup(notification.ResetNotifier)

	cmd := m.notify(compose.NoticePublished)
	if cmd == nil {
		t.Fatal("expected notification command")
	}
	if msg := cmd().(NotificationSentMsg); msg.Err != nil {
		t.Errorf("notify error: %v", msg.Err)
	}
	if gotTitle != notification.AppName+": "+compose.NoticePublished.Title {
		t.Errorf("notification title = %q", gotTitle)
	}
}

func TestNotify_DisabledByDefault(t *testing.T) {
	env := authedEnv(t)
	if cmd := env.model.notify(compose.NoticePublished); cmd != nil {
		t.Error("notifications are off by default")
	}
}

func TestAddImages_QuotaFull(t *testing.T) {
	env := authedEnv(t)
	m := env.model
	m.Composer().AppendURIs([]string{"a", "b", "c", "d"})

	if cmd := m.startAddImages(); cmd == nil {
		t.Fatal("expected a flash command")
	}
	if m.State() != StateIdle || m.flow != nil {
		t.Error("flow started with a full selection")
	}
}

func TestAddImages_ConsentAndPick(t *testing.T) {
	env := authedEnv(t)
	m := env.model
	dir := m.config.GetPicturesDir()
	writeImages(t, dir, "a.png", "b.jpg", "notes.txt")

	cmds := batchCmds(t, sendKey(m, "ctrl+a"))
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want flow and listener", len(cmds))
	}
	if m.State() != StateAddingImages {
		t.Errorf("state = %v, want AddingImages", m.State())
	}

	result := make(chan tea.Msg, 1)
	go func() { result <- cmds[0]() }()

	// Access has not been decided yet, so the flow asks first.
	consent, ok := cmds[1]().(ConsentRequestMsg)
	if !ok {
		t.Fatal("expected a consent request")
	}
	m.Update(consent)
	if _, ok := m.modal.State.(*modals.ConfirmState); !ok {
		t.Fatalf("modal = %T, want consent", m.modal.State)
	}
	listen := sendKey(m, "enter") // defaults to Allow

	pick, ok := listen().(PickRequestMsg)
	if !ok {
		t.Fatal("expected a pick request")
	}
	if len(pick.Candidates) != 2 || pick.Limit != post.MaxImages {
		t.Errorf("pick request = %d candidates limit %d", len(pick.Candidates), pick.Limit)
	}
	m.Update(pick)
	if _, ok := m.modal.State.(*modals.ImagePickerState); !ok {
		t.Fatalf("modal = %T, want picker", m.modal.State)
	}
	m.answerPick(pickReply{paths: []string{filepath.Join(dir, "a.png")}})

	m.Update(<-result)

	images := m.Composer().Draft().Images
	if len(images) != 1 || images[0].URI != media.FileURI(filepath.Join(dir, "a.png")) {
		t.Errorf("images = %+v", images)
	}
	if m.State() != StateIdle || m.flow != nil {
		t.Errorf("state = %v flow = %v after flow", m.State(), m.flow)
	}
	if m.config.GetMediaAccess() != config.MediaAccessGranted {
		t.Error("consent not remembered")
	}
}

func TestAddImages_PickerCanceled(t *testing.T) {
	env := authedEnv(t)
	m := env.model
	m.config.SetMediaAccess(config.MediaAccessGranted)
	writeImages(t, m.config.GetPicturesDir(), "a.png")

	cmds := batchCmds(t, m.startAddImages())
	result := make(chan tea.Msg, 1)
	go func() { result <- cmds[0]() }()

	pick := cmds[1]().(PickRequestMsg)
	m.Update(pick)
	sendKey(m, "esc")
	m.Update(<-result)

	if n := len(m.Composer().Draft().Images); n != 0 {
		t.Errorf("images = %d after cancel, want 0", n)
	}
	if m.footer.HasFlash() {
		t.Error("cancel should be silent")
	}
}

func TestAddImages_ConsentDismissed(t *testing.T) {
	env := authedEnv(t)
	m := env.model

	cmds := batchCmds(t, m.startAddImages())
	result := make(chan tea.Msg, 1)
	go func() { result <- cmds[0]() }()

	m.Update(cmds[1]())
	sendKey(m, "esc")
	m.Update(<-result)

	if m.config.GetMediaAccess() != config.MediaAccessUnset {
		t.Error("dismissing the prompt should not be remembered")
	}
	if !m.footer.HasFlash() {
		t.Error("expected a permission notice")
	}
}

func TestAddImages_UnmountUnblocksFlow(t *testing.T) {
	env := authedEnv(t)
	m := env.model
	m.config.SetMediaAccess(config.MediaAccessGranted)
	writeImages(t, m.config.GetPicturesDir(), "a.png")

	cmds := batchCmds(t, m.startAddImages())
	result := make(chan tea.Msg, 1)
	go func() { result <- cmds[0]() }()
	m.Update(cmds[1]())

	m.Replace(m.Route())
	msg := (<-result).(ImagesAddedMsg)
	m.Update(msg)

	if len(m.Composer().Draft().Images) != 0 {
		t.Error("stale flow changed the new draft")
	}
}

func TestPaste(t *testing.T) {
	env := authedEnv(t)
	m := env.model

	var gotDir string
	m.paste = func(dir string) (string, error) {
		gotDir = dir
		return "file:///cache/clip.png", nil
	}
	m.pasteDir = "/cache"

	cmd := sendKey(m, "ctrl+v")
	if cmd == nil {
		t.Fatal("expected paste command")
	}
	m.Update(cmd())

	if gotDir != "/cache" {
		t.Errorf("paste dir = %q", gotDir)
	}
	images := m.Composer().Draft().Images
	if len(images) != 1 || images[0].URI != "file:///cache/clip.png" {
		t.Errorf("images = %+v", images)
	}
}

func TestPaste_Error(t *testing.T) {
	env := authedEnv(t)
	m := env.model
	m.paste = func(string) (string, error) { return "", errors.New("no image") }

	m.Update(sendKey(m, "ctrl+v")())

	if len(m.Composer().Draft().Images) != 0 {
		t.Error("image added on paste error")
	}
	if !m.footer.HasFlash() {
		t.Error("expected a warning")
	}
}

func TestPaste_DisabledWithoutClipboard(t *testing.T) {
	env := authedEnv(t)
	m := env.model
	if m.form.Focused() != ui.FieldDetails {
		t.Fatalf("focused = %v, want description", m.form.Focused())
	}

	if cmd := sendKey(m, "ctrl+v"); cmd != nil {
		t.Error("ctrl+v should do nothing without a clipboard")
	}
	if d := m.Composer().Draft(); d.Details != "" || len(d.Images) != 0 {
		t.Errorf("draft changed: %+v", d)
	}

	// Bracketed paste still types into the focused field.
	m.Update(tea.PasteMsg{Content: "brown dog"})
	if got := m.Composer().Draft().Details; got != "brown dog" {
		t.Errorf("details = %q, want %q", got, "brown dog")
	}
}

func TestRemoveImage(t *testing.T) {
	env := authedEnv(t)
	m := env.model
	m.Composer().AppendURIs([]string{"file:///a.png", "file:///b.png", "file:///c.png"})
	m.form.SetImageCount(3)

	// "x" types into the description while it has focus
	sendKey(m, "x")
	if len(m.Composer().Draft().Images) != 3 {
		t.Fatal("x removed an image from a text field")
	}

	m.form.Focus(ui.FieldImages)
	sendKey(m, "right")
	sendKey(m, "x")

	images := m.Composer().Draft().Images
	if len(images) != 2 || images[0].URI != "file:///a.png" || images[1].URI != "file:///c.png" {
		t.Errorf("images = %+v", images)
	}

	sendKey(m, "delete")
	sendKey(m, "delete")
	if n := len(m.Composer().Draft().Images); n != 0 {
		t.Errorf("images = %d, want 0", n)
	}
}
