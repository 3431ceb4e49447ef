// Package events lets programs override how the framework reacts to
// notable parsing conditions.
//
// When the parser detects an unknown command, a missing value or a request for
// help or version output, it builds an EventConfig and passes it to
// Emitter.Emit. Applications register listeners per Event kind with a priority:
//
//	em := events.NewEmitter()
//	em.On(events.UnknownCommand, func(cfg events.EventConfig) {
//		fmt.Fprintf(os.Stderr, "no such command: %s\n", cfg.ErrorString())
//	}, 0)
//
//	cfg := events.NewConfig().
//		WithPayload(events.UnknownCommandPayload{Name: "pusj"}).
//		WithExitCode(2)
//	if d := em.Emit(cfg); d.ShouldTerminate() {
//		os.Exit(d.ExitCode())
//	}
//
// # Ordering
//
// Listeners run in ascending priority. Listeners with equal priority run in
// the order they were registered. InsertBeforeAll and InsertAfterAll register
// at PriorityBeforeAll and PriorityAfterAll across the kinds registered so far,
// so the set of kinds they cover depends on when they are called.
//
// # Override policy
//
// For OutputHelp listeners run in addition to the built-in help. For every
// other kind listeners replace the built-in behavior. Event.Policy reports
// which applies.
//
// # Termination
//
// Emit returns Continue when no listener is registered and Terminate with the
// config's exit code after listeners ran, even when that code is 0. The caller
// decides how to exit.
package events
