package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/petpost/petpost/internal/post"
)

// Field is a focusable part of the compose form.
type Field int

const (
	FieldDetails Field = iota
	FieldInfo
	FieldStatus
	FieldLocation
	FieldImages
	fieldCount
)

// String returns a human-readable name for the field
func (f Field) String() string {
	switch f {
	case FieldDetails:
		return "details"
	case FieldInfo:
		return "info"
	case FieldStatus:
		return "status"
	case FieldLocation:
		return "location"
	case FieldImages:
		return "images"
	default:
		return "unknown"
	}
}

const imageChipWidth = 18

// ComposeValues are the text fields of the form.
type ComposeValues struct {
	Details  string
	Info     string
	Status   string
	Location string
}

// ComposeForm is the publication editor.
type ComposeForm struct {
	details  textarea.Model
	info     textinput.Model
	status   textinput.Model
	location textinput.Model

	focus       Field
	imageCursor int
	imageCount  int
	missing     map[string]bool

	width  int
	height int
}

// NewComposeForm creates an empty form focused on the description.
func NewComposeForm() *ComposeForm {
	ta := textarea.New()
	ta.Placeholder = "Describe the pet: breed, color, where it was last seen..."
	ta.CharLimit = DetailsCharLimit
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetHeight(DetailsHeight)
	applyTextareaStyles(&ta)

	f := &ComposeForm{
		details:  ta,
		info:     newFormInput("Phone or e-mail", InfoCharLimit),
		status:   newFormInput(post.DefaultStatus, StatusCharLimit),
		location: newFormInput("Neighborhood or city", LocationCharLimit),
		missing:  map[string]bool{},
	}
	f.details.Focus()
	f.SetSize(DefaultWrapWidth, 0)
	return f
}

func newFormInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	return ti
}

// applyTextareaStyles drops the textarea's background so the terminal's
// own background shows through.
func applyTextareaStyles(ta *textarea.Model) {
	styles := ta.Styles()
	text := lipgloss.NewStyle().Foreground(ColorText)
	placeholder := lipgloss.NewStyle().Foreground(ColorTextMuted)

	styles.Focused.Base = lipgloss.NewStyle()
	styles.Focused.Text = text
	styles.Focused.Placeholder = placeholder
	styles.Focused.CursorLine = text
	styles.Focused.Prompt = text
	styles.Blurred = styles.Focused

	ta.SetStyles(styles)
}

// SetSize sets the form dimensions.
func (f *ComposeForm) SetSize(width, height int) {
	f.width = width
	f.height = height
	inner := max(width-4, 10)
	f.details.SetWidth(inner)
	f.info.SetWidth(inner)
	f.status.SetWidth(inner)
	f.location.SetWidth(inner)
}

// Focused returns the focused field.
func (f *ComposeForm) Focused() Field {
	return f.focus
}

// Focus moves focus to field.
func (f *ComposeForm) Focus(field Field) tea.Cmd {
	f.details.Blur()
	f.info.Blur()
	f.status.Blur()
	f.location.Blur()
	f.focus = field

	switch field {
	case FieldDetails:
		return f.details.Focus()
	case FieldInfo:
		return f.info.Focus()
	case FieldStatus:
		return f.status.Focus()
	case FieldLocation:
		return f.location.Focus()
	}
	return nil
}

// Next focuses the following field, wrapping around.
func (f *ComposeForm) Next() tea.Cmd {
	return f.Focus((f.focus + 1) % fieldCount)
}

// Prev focuses the preceding field, wrapping around.
func (f *ComposeForm) Prev() tea.Cmd {
	return f.Focus((f.focus + fieldCount - 1) % fieldCount)
}

// Values returns the text fields as typed.
func (f *ComposeForm) Values() ComposeValues {
	return ComposeValues{
		Details:  f.details.Value(),
		Info:     f.info.Value(),
		Status:   f.status.Value(),
		Location: f.location.Value(),
	}
}

// Load shows d, replacing whatever was typed. Used after a reset.
func (f *ComposeForm) Load(d post.Draft) {
	if f.details.Value() != d.Details {
		f.details.SetValue(d.Details)
	}
	if f.info.Value() != d.Info {
		f.info.SetValue(d.Info)
	}
	if f.status.Value() != d.Status {
		f.status.SetValue(d.Status)
	}
	if f.location.Value() != d.Location {
		f.location.SetValue(d.Location)
	}
	f.SetImageCount(len(d.Images))
}

// SetImageCount keeps the image cursor inside the selection.
func (f *ComposeForm) SetImageCount(n int) {
	f.imageCount = n
	if f.imageCursor >= n {
		f.imageCursor = max(n-1, 0)
	}
}

// ImageCursor returns the highlighted image position.
func (f *ComposeForm) ImageCursor() int {
	return f.imageCursor
}

// MoveImageCursor moves the highlight by delta, clamped.
func (f *ComposeForm) MoveImageCursor(delta int) {
	if f.imageCount == 0 {
		f.imageCursor = 0
		return
	}
	f.imageCursor = min(max(f.imageCursor+delta, 0), f.imageCount-1)
}

// MarkMissing highlights the named fields as required. Nil clears.
func (f *ComposeForm) MarkMissing(fields []string) {
	f.missing = map[string]bool{}
	for _, name := range fields {
		f.missing[name] = true
	}
}

// Update routes msg to the focused text field.
func (f *ComposeForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case FieldDetails:
		f.details, cmd = f.details.Update(msg)
	case FieldInfo:
		f.info, cmd = f.info.Update(msg)
	case FieldStatus:
		f.status, cmd = f.status.Update(msg)
	case FieldLocation:
		f.location, cmd = f.location.Update(msg)
	}
	return cmd
}

func (f *ComposeForm) label(field Field, text string, required bool) string {
	style := FieldLabelStyle
	if f.focus == field {
		style = FieldLabelFocusedStyle
	}
	out := style.Render(text)
	if required && f.missing[field.String()] {
		out += FieldRequiredStyle.Render(" required")
	}
	return out
}

// View renders the form for d. The form's text fields are the source of
// truth while typing; d supplies the images.
func (f *ComposeForm) View(d post.Draft, submitting bool) string {
	var b strings.Builder

	b.WriteString(f.label(FieldDetails, "Description", true) + characterCount(f.details.Value()) + "\n")
	b.WriteString(f.details.View() + "\n\n")
	b.WriteString(f.label(FieldInfo, "Contact info", true) + "\n")
	b.WriteString(f.info.View() + "\n\n")
	b.WriteString(f.label(FieldStatus, "Status", false) + "\n")
	b.WriteString(f.status.View() + "\n\n")
	b.WriteString(f.label(FieldLocation, "Location", false) + "\n")
	b.WriteString(f.location.View() + "\n\n")

	count := fmt.Sprintf("Images %d/%d", len(d.Images), post.MaxImages)
	b.WriteString(f.label(FieldImages, count, true) + "\n")
	b.WriteString(f.renderImages(d.Images))

	if submitting {
		b.WriteString("\n" + StatusLoadingStyle.Render("Sending publication..."))
	}

	style := PanelStyle
	if f.focus != FieldImages {
		style = PanelFocusedStyle
	}
	return style.Width(f.width).Padding(0, 1).Render(b.String())
}

// characterCount shows how many user-visible characters s holds. Emoji and
// accented letters count once.
func characterCount(s string) string {
	n := uniseg.GraphemeClusterCount(s)
	if n == 0 {
		return ""
	}
	return ModalHelpStyle.Render(fmt.Sprintf("  %d chars", n))
}

func (f *ComposeForm) renderImages(images []post.ImageRef) string {
	chips := make([]string, 0, post.MaxImages)
	for i, img := range images {
		name := runewidth.Truncate(img.Name(i), imageChipWidth-4, "…")
		style := ImageChipStyle
		if f.focus == FieldImages && i == f.imageCursor {
			style = ImageChipSelectedStyle
		}
		chips = append(chips, style.Render(fmt.Sprintf("%d %s", i+1, name)))
	}
	for range post.Remaining(images) {
		chips = append(chips, ImageSlotStyle.Render("+ empty"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}
