package events

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"
)

// Priorities used by the bootstrap helpers.
const (
	// PriorityBeforeAll is the priority InsertBeforeAll registers at.
	PriorityBeforeAll = -5
	// PriorityAfterAll is the priority InsertAfterAll registers at.
	PriorityAfterAll = 5
)

// Listener is invoked with its own copy of the payload when its event kind is
// emitted. It has no access to the emitter.
type Listener func(EventConfig)

type entry struct {
	listener Listener
	priority int
}

// Emitter maps event kinds to prioritized listeners.
//
// Registration is expected to happen during program setup, before any Emit.
// Listeners run synchronously on the goroutine calling Emit.
type Emitter struct {
	mu        sync.RWMutex
	listeners map[Event][]entry
	logger    *zerolog.Logger
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithLogger sets the logger used for registration and dispatch traces.
func WithLogger(logger *zerolog.Logger) Option {
	return func(e *Emitter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEmitter creates an empty emitter.
func NewEmitter(opts ...Option) *Emitter {
	nop := zerolog.Nop()
	e := &Emitter{
		listeners: make(map[Event][]entry),
		logger:    &nop,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// On registers listener for event at priority. Lower priorities run first.
// Registering the same listener twice yields two invocations.
func (e *Emitter) On(event Event, listener Listener, priority int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.on(event, listener, priority)
}

func (e *Emitter) on(event Event, listener Listener, priority int) {
	e.listeners[event] = append(e.listeners[event], entry{listener: listener, priority: priority})
	e.logger.Trace().
		Stringer("event", event).
		Int("priority", priority).
		Int("listeners", len(e.listeners[event])).
		Msg("listener registered")
}

// OnAll registers listener for OutputHelp, OutputVersion and the four error
// kinds. OutputCommandHelp and UnresolvedArgument are not included.
func (e *Emitter) OnAll(listener Listener, priority int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onEach(Common(), listener, priority)
}

// OnAllErrors registers listener for MissingRequiredArgument,
// OptionMissingArgument, UnknownCommand and UnknownOption.
func (e *Emitter) OnAllErrors(listener Listener, priority int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onEach(Errors(), listener, priority)
}

func (e *Emitter) onEach(kinds []Event, listener Listener, priority int) {
	for _, ev := range kinds {
		e.on(ev, listener, priority)
	}
}

// InsertBeforeAll registers listener at PriorityBeforeAll for every kind that
// currently has listeners. On an empty emitter it behaves like OnAll.
func (e *Emitter) InsertBeforeAll(listener Listener) {
	e.insertAcrossPresent(listener, PriorityBeforeAll)
}

// InsertAfterAll registers listener at PriorityAfterAll for every kind that
// currently has listeners. On an empty emitter it behaves like OnAll.
func (e *Emitter) InsertAfterAll(listener Listener) {
	e.insertAcrossPresent(listener, PriorityAfterAll)
}

func (e *Emitter) insertAcrossPresent(listener Listener, priority int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.listeners) == 0 {
		e.onEach(Common(), listener, priority)
		return
	}
	e.onEach(e.kinds(), listener, priority)
}

// Remove deletes the first listener registered for event at priority and
// reports whether one was found. Other entries at the same priority stay.
// The kind stays registered with an empty list once its last listener is
// removed: Emit still terminates for it and the bootstrap helpers cover it.
func (e *Emitter) Remove(event Event, priority int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	list := e.listeners[event]
	idx := slices.IndexFunc(list, func(en entry) bool { return en.priority == priority })
	if idx < 0 {
		return false
	}
	e.listeners[event] = slices.Delete(list, idx, idx+1)
	e.logger.Trace().Stringer("event", event).Int("priority", priority).Msg("listener removed")
	return true
}

// Emit runs the listeners registered for cfg's event kind.
//
// For a kind that was never registered it does nothing and returns Continue;
// the caller is then responsible for the default behavior. Otherwise every
// listener runs in ascending priority order, ties in registration order, each
// with its own copy of cfg, and Emit returns Terminate with cfg's exit code,
// also when the list was emptied by Remove. A panicking listener
// stops the dispatch and the panic propagates.
func (e *Emitter) Emit(cfg EventConfig) Directive {
	event := cfg.Event()

	e.mu.RLock()
	registered, ok := e.listeners[event]
	ordered := slices.Clone(registered)
	e.mu.RUnlock()

	if !ok {
		e.logger.Debug().Stringer("event", event).Msg("event not registered, continuing with default behavior")
		return Continue()
	}

	slices.SortStableFunc(ordered, func(a, b entry) int {
		return cmp.Compare(a.priority, b.priority)
	})

	e.logger.Debug().
		Stringer("event", event).
		Int("listeners", len(ordered)).
		Int("exit_code", cfg.ExitCode()).
		Msg("dispatching event")

	for _, en := range ordered {
		en.listener(cfg.clone())
	}

	return Terminate(cfg.ExitCode())
}

// Has reports whether event is registered, including a list emptied by Remove.
func (e *Emitter) Has(event Event) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.listeners[event]
	return ok
}

// Count returns the number of listeners registered for event.
func (e *Emitter) Count(event Event) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners[event])
}

// Priorities returns the priorities registered for event in registration order.
func (e *Emitter) Priorities(event Event) []int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]int, 0, len(e.listeners[event]))
	for _, en := range e.listeners[event] {
		out = append(out, en.priority)
	}
	return out
}

// Events returns the registered kinds in declaration order.
func (e *Emitter) Events() []Event {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.kinds()
}

func (e *Emitter) kinds() []Event {
	out := make([]Event, 0, len(e.listeners))
	for ev := range e.listeners {
		out = append(out, ev)
	}
	slices.Sort(out)
	return out
}

// String lists the registered kinds.
func (e *Emitter) String() string {
	return fmt.Sprintf("Emitter%v", e.Events())
}
