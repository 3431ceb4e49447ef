package cmdevents

import (
	"github.com/agentstation/cmdevents/pkg/events"
)

// Registration surface of the program. Listeners are registered during setup;
// they receive payload copies and never the program or its emitter.

// On registers a listener for one event kind. Lower priorities run first.
func (p *Program) On(event events.Event, listener events.Listener, priority int) {
	p.emitter.On(event, listener, priority)
}

// OnAll registers a listener for OutputHelp, OutputVersion and the four
// error kinds.
func (p *Program) OnAll(listener events.Listener, priority int) {
	p.emitter.OnAll(listener, priority)
}

// OnAllErrors registers a listener for the four error kinds.
func (p *Program) OnAllErrors(listener events.Listener, priority int) {
	p.emitter.OnAllErrors(listener, priority)
}

// InsertBeforeAll registers a bootstrap listener ahead of the kinds
// registered so far.
func (p *Program) InsertBeforeAll(listener events.Listener) {
	p.emitter.InsertBeforeAll(listener)
}

// InsertAfterAll registers a bootstrap listener behind the kinds registered
// so far.
func (p *Program) InsertAfterAll(listener events.Listener) {
	p.emitter.InsertAfterAll(listener)
}

// Remove drops the first listener registered for event at priority.
func (p *Program) Remove(event events.Event, priority int) bool {
	return p.emitter.Remove(event, priority)
}

// Overridden reports whether event is registered, so raising it skips the
// default behavior. A kind stays overridden after Remove empties its list.
func (p *Program) Overridden(event events.Event) bool {
	return p.emitter.Has(event)
}

// RegisteredEvents returns the registered kinds.
func (p *Program) RegisteredEvents() []events.Event {
	return p.emitter.Events()
}
