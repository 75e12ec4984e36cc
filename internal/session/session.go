// internal/session/session.go
//
// A Session owns one App State and is the single dispatch point for it.
//
// Responsibilities:
//   - Serialize actions from every source (HTTP, WebSocket, timers) behind
//     one mutex so each resolves against the latest state.
//   - Keep a bounded history of previous states for Undo.
//   - Dismiss errors automatically after a TTL by dispatching REMOVE_ERROR.
//   - Push snapshots to watchers after every change.
//
// Notes:
//   • Watchers get a buffered channel of size 1. A slow watcher only ever
//     sees the newest snapshot; dispatch never blocks on it.
//   • Error dismissal and Undo do not create history entries.

package session

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle-core/internal/app"
)

// Options tune a Session.
type Options struct {
	// ErrorTTL is how long an error stays visible. Zero disables auto-dismiss.
	ErrorTTL time.Duration
	// HistoryLimit caps Undo depth. Zero disables Undo.
	HistoryLimit int
}

// DefaultOptions mirrors the interactive defaults: errors fade after 3s.
func DefaultOptions() Options {
	return Options{ErrorTTL: 3 * time.Second, HistoryLimit: 32}
}

// dismissTimer identifies one scheduled dismissal. A callback only acts
// while its own token is still the one registered for the error id.
type dismissTimer struct {
	t *time.Timer
}

// Session guards one app.State.
type Session struct {
	id   string
	opts Options
	log  zerolog.Logger

	mu         sync.Mutex
	state      app.State
	history    []app.State
	timers     map[int]*dismissTimer
	watchers   map[int]chan app.Snapshot
	nextWatch  int
	lastActive time.Time
	closed     bool
}

// New wraps initial in a Session.
func New(id string, initial app.State, opts Options, logger zerolog.Logger) *Session {
	s := &Session{
		id:         id,
		opts:       opts,
		log:        logger.With().Str("component", "session").Str("session", id).Logger(),
		state:      initial,
		timers:     make(map[int]*dismissTimer),
		watchers:   make(map[int]chan app.Snapshot),
		lastActive: time.Now(),
	}
	s.scheduleErrors()
	return s
}

func (s *Session) ID() string { return s.id }

// State returns the current state value.
func (s *Session) State() app.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns the current state in serializable form.
func (s *Session) Snapshot() app.Snapshot {
	return s.State().Snapshot()
}

// LastActive reports when the session last handled an action.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Dispatch applies a and returns the resulting snapshot. Rejected actions
// surface as errors in the snapshot; unknown action types are logged and
// ignored.
func (s *Session) Dispatch(a app.Action) app.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if s.closed {
		return s.state.Snapshot()
	}
	if !a.Type.Known() {
		s.log.Warn().Str("action", string(a.Type)).Msg("ignoring unknown action")
		return s.state.Snapshot()
	}

	prev := s.state
	next, err := app.Apply(prev, a)
	switch {
	case err != nil:
		s.log.Debug().Err(err).Str("action", string(a.Type)).Msg("action rejected")
		next = prev.WithError(err.Error())
	case a.Type != app.ActionRemoveError:
		s.remember(prev)
	}

	s.state = next
	s.scheduleErrors()
	return s.publish()
}

// Undo restores the state before the last successful action.
// Returns false when there is nothing to undo.
func (s *Session) Undo() (app.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if s.closed || len(s.history) == 0 {
		return s.state.Snapshot(), false
	}
	last := len(s.history) - 1
	s.state = s.history[last]
	s.history = s.history[:last]

	// restored errors get a fresh TTL
	s.stopTimers()
	s.scheduleErrors()
	return s.publish(), true
}

// CanUndo reports whether Undo would change the state.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history) > 0
}

// Watch subscribes to snapshots pushed after every change. The current
// snapshot is delivered first. Call the returned func to unsubscribe.
func (s *Session) Watch() (<-chan app.Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan app.Snapshot, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextWatch
	s.nextWatch++
	s.watchers[id] = ch
	ch <- s.state.Snapshot()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if w, ok := s.watchers[id]; ok {
				delete(s.watchers, id)
				close(w)
			}
		})
	}
}

// Close stops timers and closes every watcher channel. Further dispatches
// are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.stopTimers()
	for id, ch := range s.watchers {
		delete(s.watchers, id)
		close(ch)
	}
	s.log.Debug().Msg("session closed")
}

// remember pushes prev onto the bounded history. Caller holds mu.
func (s *Session) remember(prev app.State) {
	if s.opts.HistoryLimit <= 0 {
		return
	}
	s.history = append(s.history, prev)
	if over := len(s.history) - s.opts.HistoryLimit; over > 0 {
		s.history = append([]app.State(nil), s.history[over:]...)
	}
}

// scheduleErrors starts a dismiss timer for every error without one.
// Caller holds mu.
func (s *Session) scheduleErrors() {
	if s.opts.ErrorTTL <= 0 {
		return
	}
	for _, e := range s.state.Errors() {
		if _, ok := s.timers[e.ID]; ok {
			continue
		}
		id, tok := e.ID, &dismissTimer{}
		tok.t = time.AfterFunc(s.opts.ErrorTTL, func() { s.dismiss(id, tok) })
		s.timers[id] = tok
	}
}

// dismiss removes error id unless tok was replaced or stopped while the
// callback waited for mu.
func (s *Session) dismiss(id int, tok *dismissTimer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timers[id] != tok {
		return
	}
	delete(s.timers, id)
	if s.closed {
		return
	}
	s.state = s.state.RemoveError(id)
	s.publish()
}

// stopTimers cancels all pending dismissals. Caller holds mu.
func (s *Session) stopTimers() {
	for id, tok := range s.timers {
		tok.t.Stop()
		delete(s.timers, id)
	}
}

// publish fans the current snapshot out to watchers, replacing any
// snapshot a watcher has not read yet. Caller holds mu.
func (s *Session) publish() app.Snapshot {
	snap := s.state.Snapshot()
	for _, ch := range s.watchers {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
	return snap
}
