package modals

import (
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// SettingsValues is what the settings modal edits.
type SettingsValues struct {
	Theme                string
	APIURL               string
	PicturesDir          string
	DefaultLocation      string
	NotificationsEnabled bool
	MediaAccessGranted   bool
}

// =============================================================================
// SettingsState - State for the Settings modal
// =============================================================================

type SettingsState struct {
	Original SettingsValues

	// Bound form values
	selectedTheme   string
	apiURL          string
	picturesDir     string
	defaultLocation string
	generalOptions  []string

	form *huh.Form

	availableWidth int
}

const (
	optionNotifications = "notifications"
	optionMediaAccess   = "media-access"
)

func (*SettingsState) modalState() {}

func (s *SettingsState) PreferredWidth() int { return ModalWidthWide }

// SetSize updates the available width for rendering content.
func (s *SettingsState) SetSize(width, height int) {
	s.availableWidth = width
	s.form.WithWidth(s.contentWidth())
}

func (s *SettingsState) contentWidth() int {
	if s.availableWidth > 0 {
		return s.availableWidth - 10
	}
	return ModalWidthWide - 10
}

func (s *SettingsState) Title() string { return "Settings" }

func (s *SettingsState) Help() string {
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *SettingsState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Values returns the edited settings with text fields trimmed.
func (s *SettingsState) Values() SettingsValues {
	return SettingsValues{
		Theme:                s.selectedTheme,
		APIURL:               strings.TrimSpace(s.apiURL),
		PicturesDir:          strings.TrimSpace(s.picturesDir),
		DefaultLocation:      strings.TrimSpace(s.defaultLocation),
		NotificationsEnabled: slices.Contains(s.generalOptions, optionNotifications),
		MediaAccessGranted:   slices.Contains(s.generalOptions, optionMediaAccess),
	}
}

// ThemeChanged returns true if the selected theme differs from the original.
func (s *SettingsState) ThemeChanged() bool {
	return s.selectedTheme != s.Original.Theme
}

// NewSettingsState creates a new SettingsState with the current settings values.
func NewSettingsState(themes []ThemeOption, current SettingsValues) *SettingsState {
	s := &SettingsState{
		Original:        current,
		selectedTheme:   current.Theme,
		apiURL:          current.APIURL,
		picturesDir:     current.PicturesDir,
		defaultLocation: current.DefaultLocation,
		availableWidth:  ModalWidthWide,
	}

	themeOptions := make([]huh.Option[string], len(themes))
	for i, t := range themes {
		themeOptions[i] = huh.NewOption(t.Name, t.Key)
	}

	generalOpts := []huh.Option[string]{
		huh.NewOption("Desktop notifications", optionNotifications).
			Selected(current.NotificationsEnabled),
		huh.NewOption("Allow access to pictures", optionMediaAccess).
			Selected(current.MediaAccessGranted),
	}
	if current.NotificationsEnabled {
		s.generalOptions = append(s.generalOptions, optionNotifications)
	}
	if current.MediaAccessGranted {
		s.generalOptions = append(s.generalOptions, optionMediaAccess)
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOptions...).
				Value(&s.selectedTheme),
			huh.NewInput().
				Title("Server").
				Description("Base URL of the publications API").
				Placeholder("https://api.example.com").
				CharLimit(ModalInputCharLimit).
				Value(&s.apiURL),
			huh.NewInput().
				Title("Pictures folder").
				Description("Where the image picker looks").
				CharLimit(ModalInputCharLimit).
				Value(&s.picturesDir),
			huh.NewInput().
				Title("Default location").
				Description("Sent when a publication has no location").
				CharLimit(ModalInputCharLimit).
				Value(&s.defaultLocation),
			huh.NewMultiSelect[string]().
				Title("Options").
				Options(generalOpts...).
				Height(len(generalOpts)).
				Value(&s.generalOptions),
		),
	).WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(s.contentWidth()).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
	return s
}
