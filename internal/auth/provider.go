// Package auth owns the session state: whether a user is signed in, and who.
//
// A Provider is the only writer. It starts out loading, resolves once from
// persisted storage, and afterwards changes only through Login and Logout.
// Everything else reads snapshots via State or Subscribe.
package auth

import (
	"context"
	"strings"
	"sync"

	perrors "github.com/petpost/petpost/internal/errors"
	"github.com/petpost/petpost/internal/logger"
	"github.com/petpost/petpost/internal/storage"
)

// State is a snapshot of the session. Revision increases with every change,
// so two snapshots with the same Revision describe the same session.
type State struct {
	IsAuthenticated bool
	Loading         bool
	UserID          string
	Revision        uint64
}

// Provider is the single owner of session state.
type Provider struct {
	mu       sync.RWMutex
	state    State
	resolved bool
	subs     []chan State

	store storage.Store
	auth  Authenticator
}

// NewProvider creates a provider in the loading state.
func NewProvider(store storage.Store, auth Authenticator) *Provider {
	return &Provider{
		state: State{Loading: true},
		store: store,
		auth:  auth,
	}
}

// State returns the current snapshot.
func (p *Provider) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Subscribe returns a channel that receives each new state. Slow readers only
// see the latest state. The returned func stops delivery and closes the channel.
func (p *Provider) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)
	p.mu.Lock()
	p.subs = append(p.subs, ch)
	p.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			for i, s := range p.subs {
				if s == ch {
					p.subs = append(p.subs[:i], p.subs[i+1:]...)
					break
				}
			}
			close(ch)
		})
	}
}

// setLocked replaces the state and notifies subscribers. Must hold p.mu.
func (p *Provider) setLocked(next State) {
	next.Revision = p.state.Revision + 1
	logger.ComponentLogger("Auth").Debug("session state changed",
		"authenticated", next.IsAuthenticated,
		"loading", next.Loading,
		"revision", next.Revision)
	p.state = next
	for _, ch := range p.subs {
		select {
		case <-ch:
		default:
		}
		ch <- next
	}
}

// Resolve reads persisted credentials and leaves the loading state. It runs
// once; later calls return the current state. A storage error resolves to
// unauthenticated so the gate can still route to login.
func (p *Provider) Resolve(ctx context.Context) State {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.resolved {
		return p.state
	}
	p.resolved = true

	log := logger.ComponentLogger("Auth")
	next := State{}

	token, hasToken, err := p.store.GetItem(ctx, storage.KeyToken)
	if err != nil {
		log.Warn("failed to read stored token", "error", err)
		p.setLocked(next)
		return p.state
	}
	userID, _, err := p.store.GetItem(ctx, storage.KeyUserID)
	if err != nil {
		log.Warn("failed to read stored user id", "error", err)
		p.setLocked(next)
		return p.state
	}

	next.IsAuthenticated = hasToken && strings.TrimSpace(token) != ""
	if next.IsAuthenticated {
		next.UserID = userID
	}
	p.setLocked(next)
	return p.state
}

// Login authenticates and persists the resulting credentials.
func (p *Provider) Login(ctx context.Context, email, password string) (State, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return p.State(), perrors.E(perrors.Op("auth.Login"), perrors.KindInvalid, "email and password are required")
	}
	if p.auth == nil {
		return p.State(), perrors.E(perrors.Op("auth.Login"), perrors.KindConfig, "no authenticator configured")
	}

	creds, err := p.auth.Authenticate(ctx, email, password)
	if err != nil {
		return p.State(), err
	}

	if err := p.store.SetItem(ctx, storage.KeyToken, creds.Token); err != nil {
		return p.State(), err
	}
	if err := p.store.SetItem(ctx, storage.KeyUserID, creds.UserID); err != nil {
		return p.State(), err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.resolved = true
	p.setLocked(State{IsAuthenticated: true, UserID: creds.UserID})
	logger.ComponentLogger("Auth").Info("logged in", "userID", creds.UserID)
	return p.state, nil
}

// Logout forgets the persisted credentials.
func (p *Provider) Logout(ctx context.Context) (State, error) {
	if err := p.store.RemoveItem(ctx, storage.KeyToken); err != nil {
		return p.State(), err
	}
	if err := p.store.RemoveItem(ctx, storage.KeyUserID); err != nil {
		return p.State(), err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.resolved = true
	p.setLocked(State{})
	logger.ComponentLogger("Auth").Info("logged out")
	return p.state, nil
}
