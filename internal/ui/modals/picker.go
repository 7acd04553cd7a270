package modals

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// PickerItem is one selectable image file.
type PickerItem struct {
	Path string
	Name string
	Size int64
}

// =============================================================================
// ImagePickerState - multi-select over the pictures directory
// =============================================================================

type ImagePickerState struct {
	Dir   string
	Items []PickerItem
	Limit int

	selected []string
	form     *huh.Form
}

func (*ImagePickerState) modalState() {}

func (s *ImagePickerState) PreferredWidth() int { return ModalWidthWide }

func (s *ImagePickerState) Title() string { return "Choose images" }

func (s *ImagePickerState) Help() string {
	if len(s.Items) == 0 {
		return "Esc: close"
	}
	return "space: toggle  /: filter  Enter: add  Esc: cancel"
}

func (s *ImagePickerState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	dir := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render(TruncatePath(s.Dir, ModalWidthWide-10))

	if len(s.Items) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			MarginTop(1).
			Render("No images found. Change the pictures folder in settings.")
		return lipgloss.JoinVertical(lipgloss.Left, title, dir, empty, ModalHelpStyle.Render(s.Help()))
	}

	count := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Render(fmt.Sprintf("%d of %d selected", len(s.selected), s.Limit))

	return lipgloss.JoinVertical(lipgloss.Left, title, dir, s.form.View(), count, ModalHelpStyle.Render(s.Help()))
}

func (s *ImagePickerState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if len(s.Items) == 0 {
		return s, nil
	}
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Selected returns the chosen paths in list order, at most Limit of them.
func (s *ImagePickerState) Selected() []string {
	chosen := make(map[string]bool, len(s.selected))
	for _, p := range s.selected {
		chosen[p] = true
	}
	var out []string
	for _, it := range s.Items {
		if chosen[it.Path] && len(out) < s.Limit {
			out = append(out, it.Path)
		}
	}
	return out
}

// NewImagePickerState creates a picker allowing up to limit selections.
func NewImagePickerState(dir string, items []PickerItem, limit int) *ImagePickerState {
	s := &ImagePickerState{
		Dir:   dir,
		Items: items,
		Limit: limit,
	}

	options := make([]huh.Option[string], len(items))
	for i, it := range items {
		label := fmt.Sprintf("%s  %s", TruncateString(it.Name, ModalWidthWide-24), FormatSize(it.Size))
		options[i] = huh.NewOption(label, it.Path)
	}

	height := min(len(items), PickerMaxVisible)
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title(fmt.Sprintf("Select up to %d", limit)).
				Options(options...).
				Limit(limit).
				Filterable(true).
				Height(height + 2).
				Value(&s.selected),
		),
	).WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidthWide - 10).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
	return s
}
