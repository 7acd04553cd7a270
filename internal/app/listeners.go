package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	perrors "github.com/petpost/petpost/internal/errors"
	"github.com/petpost/petpost/internal/media"
)

// listenForSession waits for the next session snapshot. It is re-issued
// after every SessionChangedMsg; a closed channel ends the loop.
func (m *Model) listenForSession() tea.Cmd {
	ch := m.sessionCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return nil
		}
		return SessionChangedMsg{State: state}
	}
}

// mediaFlow bridges the add-images flow, which runs in a command goroutine,
// to the modals that answer its questions. Each question is delivered as a
// message and answered on its reply channel.
type mediaFlow struct {
	mountID  string
	dir      string
	requests chan tea.Msg
	done     chan struct{}

	consent chan<- consentReply
	pick    chan<- pickReply
}

func newMediaFlow(mountID, dir string) *mediaFlow {
	return &mediaFlow{
		mountID:  mountID,
		dir:      dir,
		requests: make(chan tea.Msg),
		done:     make(chan struct{}),
	}
}

// listen waits for the next question from the flow, or its end.
func (f *mediaFlow) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-f.requests:
			return msg
		case <-f.done:
			return nil
		}
	}
}

// prompt implements media.PromptFunc.
func (f *mediaFlow) prompt(ctx context.Context) (bool, error) {
	reply := make(chan consentReply, 1)
	select {
	case f.requests <- ConsentRequestMsg{reply: reply}:
	case <-ctx.Done():
		return false, ctx.Err()
	}
	select {
	case r := <-reply:
		if r.dismissed {
			return false, perrors.E(perrors.Op("app.prompt"), perrors.KindPermission, "media access prompt dismissed")
		}
		return r.granted, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// choose implements media.ChooseFunc.
func (f *mediaFlow) choose(ctx context.Context, candidates []media.Candidate, limit int) ([]string, bool, error) {
	reply := make(chan pickReply, 1)
	req := PickRequestMsg{Dir: f.dir, Candidates: candidates, Limit: limit, reply: reply}
	select {
	case f.requests <- req:
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
	select {
	case r := <-reply:
		return r.paths, r.canceled, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}
