package app

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/petpost/petpost/internal/auth"
	"github.com/petpost/petpost/internal/clipboard"
	"github.com/petpost/petpost/internal/compose"
	"github.com/petpost/petpost/internal/config"
	"github.com/petpost/petpost/internal/logger"
	"github.com/petpost/petpost/internal/nav"
	"github.com/petpost/petpost/internal/publish"
	"github.com/petpost/petpost/internal/ui"
	"github.com/petpost/petpost/internal/ui/modals"
)

// AppState represents what the application is busy with.
// Using an explicit state machine prevents invalid state combinations
// and makes state transitions clear and traceable.
type AppState int

const (
	StateIdle         AppState = iota // Ready for user input
	StateLoggingIn                    // Waiting for the login endpoint
	StateLoggingOut                   // Clearing credentials
	StateAddingImages                 // Permission prompt or picker in progress
	StateSubmitting                   // Publication in flight
)

// String returns a human-readable name for the state
func (s AppState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoggingIn:
		return "LoggingIn"
	case StateLoggingOut:
		return "LoggingOut"
	case StateAddingImages:
		return "AddingImages"
	case StateSubmitting:
		return "Submitting"
	default:
		return "Unknown"
	}
}

// Tab is a screen of the authenticated root.
type Tab int

const (
	TabCompose Tab = iota
	TabAccount
)

var tabNames = []string{"Publish", "Account"}

// PasteFunc saves the clipboard image under dir and returns its URI.
type PasteFunc func(dir string) (string, error)

// Deps are the services the TUI drives.
type Deps struct {
	Config    *config.Config
	Session   *auth.Provider
	Submitter publish.Submitter
	Paste     PasteFunc // nil disables ctrl+v
	PasteDir  string
	Version   string
}

// Model is the main Bubble Tea model
type Model struct {
	config    *config.Config
	session   *auth.Provider
	submitter publish.Submitter
	paste     PasteFunc
	pasteDir  string
	version   string

	header *ui.Header
	footer *ui.Footer
	modal  *ui.Modal
	splash *ui.Splash
	form   *ui.ComposeForm
	login  *modals.LoginState

	gate     *nav.Gate
	route    nav.Route
	tab      Tab
	composer *compose.Composer // nil while the tabs are unmounted

	sessionState auth.State
	sessionCh    <-chan auth.State
	unsubscribe  func()

	flow      *mediaFlow
	loginErr  string
	width     int
	height    int
	sized     bool
	state     AppState
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce bool
}

// New creates a model. Nothing is resolved until Init runs.
func New(deps Deps) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		config:    deps.Config,
		session:   deps.Session,
		submitter: deps.Submitter,
		paste:     deps.Paste,
		pasteDir:  deps.PasteDir,
		version:   deps.Version,
		header:    ui.NewHeader(),
		footer:    ui.NewFooter(),
		modal:     ui.NewModal(),
		splash:    ui.NewSplash(),
		form:      ui.NewComposeForm(),
		gate:      nav.NewGate(),
		route:     nav.RouteTabs,
		ctx:       ctx,
		cancel:    cancel,
	}
	m.sessionState = deps.Session.State()
	m.sessionCh, m.unsubscribe = deps.Session.Subscribe()
	if m.paste == nil {
		m.footer.SetBindings(composeBindingsWithoutPaste())
	}
	return m
}

// DefaultPaste reads images through the system clipboard.
func DefaultPaste(dir string) (string, error) {
	uri, err := clipboard.Paste(dir)
	if err != nil {
		return "", err
	}
	if uri == "" {
		return "", errNoClipboardImage
	}
	return uri, nil
}

var errNoClipboardImage = errors.New("clipboard holds no image")

func (m *Model) setState(newState AppState) {
	if m.state != newState {
		logger.ComponentLogger("App").Debug("state transition", "from", m.state, "to", newState)
		m.state = newState
	}
}

// State returns the current application state.
func (m *Model) State() AppState {
	return m.state
}

// Route returns the current route.
func (m *Model) Route() nav.Route {
	return m.route
}

// Composer returns the mounted composer, or nil.
func (m *Model) Composer() *compose.Composer {
	return m.composer
}

// Init resolves the session and starts listening for changes.
func (m *Model) Init() tea.Cmd {
	session := m.session
	ctx := m.ctx
	return tea.Batch(
		m.listenForSession(),
		func() tea.Msg {
			session.Resolve(ctx)
			return nil
		},
		m.splash.Tick(),
	)
}

// Close stops background work. Safe to call more than once.
func (m *Model) Close() {
	if m.closeOnce {
		return
	}
	m.closeOnce = true
	m.cancel()
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// resourcesReady is true once the config is loaded and the terminal size is known.
func (m *Model) resourcesReady() bool {
	return m.config != nil && m.sized
}

// evaluateGate feeds the gate and performs its effects.
func (m *Model) evaluateGate() {
	nav.Apply(m, m.gate.Evaluate(m.resourcesReady(), m.sessionState))
	if m.route == nav.RouteTabs && m.gate.AllowsTabs() && m.composer == nil {
		m.mountTabs()
	}
}

// Replace implements nav.Navigator.
func (m *Model) Replace(route nav.Route) {
	logger.ComponentLogger("App").Info("navigating", "from", m.route, "to", route)
	m.route = route
	m.modal.Hide()
	switch route {
	case nav.RouteLogin:
		m.unmountTabs()
		m.login = modals.NewLoginState(m.config.GetAPIURL(), "")
		m.loginErr = ""
	case nav.RouteTabs:
		m.login = nil
		m.unmountTabs()
		m.mountTabs()
	}
}

// HideSplash implements nav.Navigator.
func (m *Model) HideSplash() {
	m.splash.Hide()
}

func (m *Model) mountTabs() {
	m.composer = compose.New()
	m.form = ui.NewComposeForm()
	m.form.Load(m.composer.Draft())
	m.tab = TabCompose
	m.updateSizes()
	logger.ComponentLogger("App").Debug("compose mounted", "mountID", m.composer.MountID())
}

// unmountTabs drops the composer. Results still in flight for it are
// discarded by mount ID when they arrive.
func (m *Model) unmountTabs() {
	if m.composer == nil {
		return
	}
	logger.ComponentLogger("App").Debug("compose unmounted", "mountID", m.composer.MountID())
	m.composer = nil
	m.abandonFlow()
	if m.state == StateAddingImages || m.state == StateSubmitting {
		m.setState(StateIdle)
	}
}

// updateSizes recalculates and applies dimensions to all UI components
func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.form.SetSize(ctx.FormWidth, ctx.ContentHeight)
}

func composeBindingsWithoutPaste() []ui.KeyBinding {
	return []ui.KeyBinding{
		{Key: "tab", Desc: "next field"},
		{Key: "ctrl+a", Desc: "add images"},
		{Key: "ctrl+s", Desc: "publish"},
		{Key: "ctrl+t", Desc: "account"},
		{Key: "?", Desc: "help"},
	}
}
