// Package nav decides where the user may go on start: the main tab stack
// or the login screen.
package nav

import (
	"github.com/petpost/petpost/internal/auth"
	"github.com/petpost/petpost/internal/logger"
)

// Route is an addressable screen.
type Route string

const (
	RouteTabs  Route = "tabs"  // authenticated root
	RouteLogin Route = "login" // sign-in screen
)

// GateState is the state of the navigation gate.
type GateState int

const (
	StateBooting         GateState = iota // startup resources or session not ready; nothing rendered
	StateGating                           // deciding
	StateAuthenticated                    // tab stack allowed
	StateUnauthenticated                  // forced to login
)

// String returns a human-readable name for the state
func (s GateState) String() string {
	switch s {
	case StateBooting:
		return "Booting"
	case StateGating:
		return "Gating"
	case StateAuthenticated:
		return "Authenticated"
	case StateUnauthenticated:
		return "Unauthenticated"
	default:
		return "Unknown"
	}
}

// EffectKind identifies a navigation side effect.
type EffectKind int

const (
	EffectReplace EffectKind = iota
	EffectHideSplash
)

// Effect is a side effect the gate asks the navigator to perform.
type Effect struct {
	Kind  EffectKind
	Route Route // for EffectReplace
}

// Replace returns an effect that swaps the active route without history.
func Replace(r Route) Effect { return Effect{Kind: EffectReplace, Route: r} }

// HideSplash returns an effect that dismisses the startup splash.
func HideSplash() Effect { return Effect{Kind: EffectHideSplash} }

// Navigator performs gate effects.
type Navigator interface {
	Replace(Route)
	HideSplash()
}

// Apply performs effects in order.
func Apply(n Navigator, effects []Effect) {
	for _, e := range effects {
		switch e.Kind {
		case EffectReplace:
			n.Replace(e.Route)
		case EffectHideSplash:
			n.HideSplash()
		}
	}
}

// Gate is the top-level navigation state machine. It reads session state
// but never writes it.
type Gate struct {
	state    GateState
	revision uint64 // session revision the terminal state was decided for
	decided  bool   // reached a terminal state at least once
}

// NewGate returns a gate in the Booting state.
func NewGate() *Gate {
	return &Gate{state: StateBooting}
}

// State returns the current gate state.
func (g *Gate) State() GateState {
	return g.state
}

// AllowsTabs reports whether the authenticated root may render.
func (g *Gate) AllowsTabs() bool {
	return g.state == StateAuthenticated
}

func (g *Gate) setState(next GateState) {
	if g.state != next {
		logger.ComponentLogger("Gate").Debug("state transition", "from", g.state, "to", next)
		g.state = next
	}
}

// Evaluate runs the gate against the current inputs and returns the effects
// to perform, in order. Terminal states are kept until the session revision
// changes. A login redirect is always ordered before HideSplash.
func (g *Gate) Evaluate(resourcesReady bool, s auth.State) []Effect {
	if !resourcesReady || s.Loading {
		g.setState(StateBooting)
		return nil
	}

	terminal := g.state == StateAuthenticated || g.state == StateUnauthenticated
	if terminal && s.Revision == g.revision {
		return nil
	}

	regate := g.decided
	g.setState(StateGating)
	g.revision = s.Revision
	g.decided = true

	if !s.IsAuthenticated {
		g.setState(StateUnauthenticated)
		return []Effect{Replace(RouteLogin), HideSplash()}
	}

	g.setState(StateAuthenticated)
	if regate {
		return []Effect{Replace(RouteTabs), HideSplash()}
	}
	return []Effect{HideSplash()}
}
