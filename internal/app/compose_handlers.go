package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/petpost/petpost/internal/compose"
	"github.com/petpost/petpost/internal/logger"
	"github.com/petpost/petpost/internal/media"
	"github.com/petpost/petpost/internal/notification"
	"github.com/petpost/petpost/internal/post"
	"github.com/petpost/petpost/internal/ui"
	"github.com/petpost/petpost/internal/ui/modals"
)

// syncDraft copies changed form fields into the composer.
func (m *Model) syncDraft() {
	if m.composer == nil {
		return
	}
	v := m.form.Values()
	d := m.composer.Draft()
	if v.Details != d.Details {
		m.composer.SetDetails(v.Details)
	}
	if v.Info != d.Info {
		m.composer.SetInfo(v.Info)
	}
	if v.Status != d.Status {
		m.composer.SetStatus(v.Status)
	}
	if v.Location != d.Location {
		m.composer.SetLocation(v.Location)
	}
}

// startSubmit validates the draft locally and sends it.
func (m *Model) startSubmit() tea.Cmd {
	if m.composer == nil {
		return nil
	}
	if m.state == StateSubmitting {
		return m.showNotice(compose.NoticeBusy)
	}
	m.syncDraft()

	draft := m.composer.Draft()
	if missing := draft.MissingFields(); len(missing) > 0 {
		m.form.MarkMissing(missing)
		return m.showNotice(compose.NoticeFor(draft.Validate()))
	}
	m.form.MarkMissing(nil)

	m.setState(StateSubmitting)
	mountID := m.composer.MountID()
	submitter, ctx := m.submitter, m.ctx
	logger.ComponentLogger("App").Info("submitting publication", "mountID", mountID, "images", len(draft.Images))
	return func() tea.Msg {
		res, err := submitter.Submit(ctx, draft)
		return SubmitResultMsg{MountID: mountID, Result: res, Err: err}
	}
}

// handleSubmitResult applies a submission outcome to the composer that
// started it. Results for an unmounted composer are dropped.
func (m *Model) handleSubmitResult(msg SubmitResultMsg) (tea.Model, tea.Cmd) {
	log := logger.ComponentLogger("App")
	if m.composer == nil || !m.composer.Owns(msg.MountID) {
		log.Debug("dropping stale submit result", "mountID", msg.MountID)
		return m, nil
	}
	if m.state == StateSubmitting {
		m.setState(StateIdle)
	}

	notice := m.composer.Finish(msg.Err)
	if msg.Err == nil {
		log.Info("publication created", "requestID", msg.Result.RequestID, "status", msg.Result.StatusCode)
		m.form.Load(m.composer.Draft())
		m.form.MarkMissing(nil)
		return m, tea.Batch(m.showNotice(notice), m.form.Focus(ui.FieldDetails), m.notify(notice))
	}
	return m, tea.Batch(m.showNotice(notice), m.notify(notice))
}

// notify sends a desktop notification when enabled.
func (m *Model) notify(n compose.Notice) tea.Cmd {
	if n.IsZero() || !m.config.GetNotificationsEnabled() {
		return nil
	}
	return func() tea.Msg {
		return NotificationSentMsg{Err: notification.PublicationResult(n.Title, n.Message)}
	}
}

// startAddImages runs the add-images flow in the background. Its questions
// come back as ConsentRequestMsg and PickRequestMsg.
func (m *Model) startAddImages() tea.Cmd {
	if m.composer == nil || m.flow != nil {
		return nil
	}
	if err := media.CheckQuota(m.composer.Draft().Images); err != nil {
		return m.showNotice(compose.NoticeFor(err))
	}

	flow := newMediaFlow(m.composer.MountID(), m.config.GetPicturesDir())
	m.flow = flow
	m.setState(StateAddingImages)

	perms := media.NewConsentPermissions(m.config, flow.prompt)
	picker := media.NewDirPicker(m.config.GetPicturesDir, flow.choose)
	manager := media.NewManager(perms, picker)
	composer, ctx := m.composer, m.ctx

	return tea.Batch(
		func() tea.Msg {
			notice := composer.AddImages(ctx, manager)
			close(flow.done)
			return ImagesAddedMsg{MountID: flow.mountID, Notice: notice}
		},
		flow.listen(),
	)
}

func (m *Model) handleImagesAdded(msg ImagesAddedMsg) (tea.Model, tea.Cmd) {
	if m.flow != nil && m.flow.mountID == msg.MountID {
		m.flow = nil
		m.modal.Hide()
	}
	if m.composer == nil || !m.composer.Owns(msg.MountID) {
		logger.ComponentLogger("App").Debug("dropping stale image result", "mountID", msg.MountID)
		return m, nil
	}
	if m.state == StateAddingImages {
		m.setState(StateIdle)
	}
	m.form.SetImageCount(len(m.composer.Draft().Images))
	return m, m.showNotice(msg.Notice)
}

func (m *Model) handleConsentRequest(msg ConsentRequestMsg) (tea.Model, tea.Cmd) {
	if m.flow == nil {
		msg.reply <- consentReply{dismissed: true}
		return m, nil
	}
	m.flow.consent = msg.reply
	m.modal.Show(modals.NewMediaConsentState(m.flow.dir))
	return m, nil
}

func (m *Model) handlePickRequest(msg PickRequestMsg) (tea.Model, tea.Cmd) {
	if m.flow == nil {
		msg.reply <- pickReply{canceled: true}
		return m, nil
	}
	items := make([]modals.PickerItem, len(msg.Candidates))
	for i, c := range msg.Candidates {
		items[i] = modals.PickerItem{Path: c.Path, Name: c.Name, Size: c.Size}
	}
	m.flow.pick = msg.reply
	m.modal.Show(modals.NewImagePickerState(msg.Dir, items, msg.Limit))
	return m, nil
}

// answerConsent replies to the pending permission question and waits for
// the flow's next question.
func (m *Model) answerConsent(r consentReply) tea.Cmd {
	m.modal.Hide()
	if m.flow == nil || m.flow.consent == nil {
		return nil
	}
	m.flow.consent <- r
	m.flow.consent = nil
	return m.flow.listen()
}

// answerPick replies to the pending picker request.
func (m *Model) answerPick(r pickReply) tea.Cmd {
	m.modal.Hide()
	if m.flow == nil || m.flow.pick == nil {
		return nil
	}
	m.flow.pick <- r
	m.flow.pick = nil
	return m.flow.listen()
}

// startPaste saves the clipboard image and appends it.
func (m *Model) startPaste() tea.Cmd {
	if m.composer == nil || m.paste == nil {
		return nil
	}
	if err := media.CheckQuota(m.composer.Draft().Images); err != nil {
		return m.showNotice(compose.NoticeFor(err))
	}
	mountID := m.composer.MountID()
	paste, dir := m.paste, m.pasteDir
	return func() tea.Msg {
		uri, err := paste(dir)
		return PasteResultMsg{MountID: mountID, URI: uri, Err: err}
	}
}

func (m *Model) handlePasteResult(msg PasteResultMsg) (tea.Model, tea.Cmd) {
	if m.composer == nil || !m.composer.Owns(msg.MountID) {
		return m, nil
	}
	if msg.Err != nil {
		logger.ComponentLogger("App").Warn("clipboard paste failed", "error", msg.Err)
		return m, m.ShowFlashWarning("No image in the clipboard")
	}
	notice := m.composer.AppendURIs([]string{msg.URI})
	n := len(m.composer.Draft().Images)
	m.form.SetImageCount(n)
	if !notice.IsZero() {
		return m, m.showNotice(notice)
	}
	return m, m.ShowFlashInfo(fmt.Sprintf("Image pasted (%d/%d)", n, post.MaxImages))
}

// removeImageAtCursor removes the highlighted image.
func (m *Model) removeImageAtCursor() tea.Cmd {
	if m.composer == nil {
		return nil
	}
	images := m.composer.Draft().Images
	if len(images) == 0 {
		return nil
	}
	i := m.form.ImageCursor()
	name := images[min(i, len(images)-1)].Name(i)
	m.composer.RemoveImage(i)
	m.form.SetImageCount(len(m.composer.Draft().Images))
	return m.ShowFlashInfo("Removed " + name)
}

// abandonFlow unblocks a flow whose screen is going away.
func (m *Model) abandonFlow() {
	if m.flow == nil {
		return
	}
	if m.flow.consent != nil {
		m.flow.consent <- consentReply{dismissed: true}
	}
	if m.flow.pick != nil {
		m.flow.pick <- pickReply{canceled: true}
	}
	m.flow = nil
}
