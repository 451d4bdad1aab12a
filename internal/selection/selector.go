package selection

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mouse-blink/targetpath/internal/logging"
	m "github.com/mouse-blink/targetpath/internal/model"
)

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithLogger sets the logger used for rejected transitions and stale lookups.
func WithLogger(logger *slog.Logger) SelectorOption {
	return func(s *Selector) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOnChange registers a callback receiving the selection after every applied
// transition; nil while the selection is incomplete.
func WithOnChange(fn func(*m.TargetSelection)) SelectorOption {
	return func(s *Selector) {
		s.onChange = fn
	}
}

// Selector owns one selection session. It is not safe for concurrent use; drive
// independent sessions with independent Selectors.
type Selector struct {
	state     State
	selection *m.TargetSelection
	err       error
	logger    *slog.Logger
	onChange  func(*m.TargetSelection)
}

// NewSelector starts a session at the root of info.
func NewSelector(info *m.CodeInfo, opts ...SelectorOption) *Selector {
	s := &Selector{
		state:  NewState(info),
		logger: logging.NewDiscardLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// State returns the current snapshot.
func (s *Selector) State() State {
	return s.state
}

// Selection returns the last derived selection, nil while incomplete.
func (s *Selector) Selection() *m.TargetSelection {
	return s.selection
}

// Err reports why the last dispatched action was rejected or only partly
// applied; nil when it applied cleanly.
func (s *Selector) Err() error {
	return s.err
}

// Seed replaces the session with one re-seeded from a saved selection. Stale
// parts are logged and returned; the session is usable regardless.
func (s *Selector) Seed(sel *m.TargetSelection) error {
	state, err := Seed(s.state.Info, sel)
	if err != nil {
		s.logger.Warn("saved target does not match the analyzed code", "error", err)
	}

	s.set(state)

	return err
}

// Dispatch applies one action and returns the resulting selection. Rejected
// actions leave the session unchanged.
func (s *Selector) Dispatch(action Action) *m.TargetSelection {
	next, err := Apply(s.state, action)
	s.err = err

	switch {
	case errors.Is(err, ErrInvalidTransition):
		s.logger.Debug("transition rejected", "action", fmt.Sprintf("%T", action), "error", err)
		return s.selection
	case errors.Is(err, ErrScopeNotFound):
		s.logger.Warn("scope lookup failed", "action", fmt.Sprintf("%T", action), "error", err)
	case err != nil:
		s.logger.Error("transition failed", "action", fmt.Sprintf("%T", action), "error", err)
	}

	s.set(next)

	return s.selection
}

func (s *Selector) set(state State) {
	s.state = state
	s.selection = Derive(state)

	if s.onChange != nil {
		s.onChange(s.selection)
	}
}
