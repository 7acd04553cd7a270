package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/petpost/petpost/internal/config"
	"github.com/petpost/petpost/internal/keys"
	"github.com/petpost/petpost/internal/logger"
	"github.com/petpost/petpost/internal/ui"
	"github.com/petpost/petpost/internal/ui/modals"
)

// handleModalKey handles key presses while a modal is visible.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch s := m.modal.State.(type) {
	case *modals.ConfirmState:
		return m.handleConfirmModal(msg, s)
	case *modals.ImagePickerState:
		return m.handlePickerModal(msg, s)
	case *modals.SettingsState:
		return m.handleSettingsModal(msg, s)
	case *modals.HelpState:
		return m.handleHelpModal(msg, s)
	}

	if msg.String() == keys.Escape {
		m.modal.Hide()
		return m, nil
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

func (m *Model) handleConfirmModal(msg tea.KeyPressMsg, s *modals.ConfirmState) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keys.Escape:
		return m, m.finishConfirm(s, false, true)
	case keys.Enter:
		return m, m.finishConfirm(s, s.Answer(), false)
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	// huh's y/n accelerators complete the form without Enter
	if m.modal.Done() {
		return m, tea.Batch(cmd, m.finishConfirm(s, s.Answer(), false))
	}
	return m, cmd
}

// finishConfirm acts on a confirm answer. dismissed means Esc.
func (m *Model) finishConfirm(s *modals.ConfirmState, answer, dismissed bool) tea.Cmd {
	switch s.Purpose {
	case modals.ConfirmMediaAccess:
		return m.answerConsent(consentReply{granted: answer, dismissed: dismissed})
	case modals.ConfirmLogout:
		m.modal.Hide()
		if answer && !dismissed {
			return m.startLogout()
		}
	}
	m.modal.Hide()
	return nil
}

func (m *Model) handlePickerModal(msg tea.KeyPressMsg, s *modals.ImagePickerState) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keys.Escape:
		return m, m.answerPick(pickReply{canceled: true})
	case keys.Enter:
		paths := s.Selected()
		return m, m.answerPick(pickReply{paths: paths, canceled: len(paths) == 0})
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

func (m *Model) handleSettingsModal(msg tea.KeyPressMsg, s *modals.SettingsState) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keys.Escape:
		if s.ThemeChanged() {
			ui.SetThemeByName(s.Original.Theme)
		}
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		return m, m.saveSettings(s)
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	// Preview the theme while the modal is open
	if s.ThemeChanged() {
		ui.SetThemeByName(s.Values().Theme)
	}
	return m, cmd
}

// currentSettings reads the editable settings from the config.
func (m *Model) currentSettings() modals.SettingsValues {
	return modals.SettingsValues{
		Theme:                string(ui.CurrentThemeName()),
		APIURL:               m.config.GetAPIURL(),
		PicturesDir:          m.config.GetPicturesDir(),
		DefaultLocation:      m.config.GetServerDefaults().Location,
		NotificationsEnabled: m.config.GetNotificationsEnabled(),
		MediaAccessGranted:   m.config.GetMediaAccess() == config.MediaAccessGranted,
	}
}

// saveSettings applies and persists the settings modal. Errors keep the
// modal open.
func (m *Model) saveSettings(s *modals.SettingsState) tea.Cmd {
	v := s.Values()
	log := logger.ComponentLogger("Settings")

	apiChanged := v.APIURL != s.Original.APIURL
	if apiChanged {
		if err := m.config.SetAPIURL(v.APIURL); err != nil {
			m.modal.SetError(err.Error())
			return nil
		}
	}

	ui.SetThemeByName(v.Theme)
	m.config.SetTheme(v.Theme)
	if v.PicturesDir != "" {
		m.config.SetPicturesDir(v.PicturesDir)
	}
	defaults := m.config.GetServerDefaults()
	defaults.Location = v.DefaultLocation
	m.config.SetServerDefaults(defaults)
	m.config.SetNotificationsEnabled(v.NotificationsEnabled)

	switch {
	case v.MediaAccessGranted:
		m.config.SetMediaAccess(config.MediaAccessGranted)
	case s.Original.MediaAccessGranted:
		m.config.SetMediaAccess(config.MediaAccessDenied)
	}

	if err := m.config.Save(); err != nil {
		log.Error("failed to save settings", "error", err)
		m.modal.SetError("Could not save settings: " + err.Error())
		return nil
	}
	log.Info("settings saved", "theme", v.Theme, "apiChanged", apiChanged)
	m.modal.Hide()
	if apiChanged {
		return m.ShowFlashInfo("Settings saved. The new server is used after a restart.")
	}
	return m.ShowFlashSuccess("Settings saved")
}

func (m *Model) handleHelpModal(msg tea.KeyPressMsg, s *modals.HelpState) (tea.Model, tea.Cmd) {
	if !s.IsFiltering() {
		switch msg.String() {
		case keys.Escape:
			m.modal.Hide()
			return m, nil
		case keys.Enter:
			shortcut := s.SelectedShortcut()
			m.modal.Hide()
			if shortcut == nil {
				return m, nil
			}
			return m.executeHelpShortcut(shortcut.Key)
		}
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// executeHelpShortcut runs a shortcut chosen in the help modal. Display
// keys that differ from the binding are mapped back.
func (m *Model) executeHelpShortcut(displayKey string) (tea.Model, tea.Cmd) {
	key := displayKey
	for _, s := range ShortcutRegistry {
		if s.DisplayKey == displayKey {
			key = s.Key
			break
		}
	}
	if key == "ctrl+c" {
		m.Close()
		return m, tea.Quit
	}
	if model, cmd, ok := m.ExecuteShortcut(key); ok {
		return model, cmd
	}
	return m, nil
}
