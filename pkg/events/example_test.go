package events_test

import (
	"fmt"

	"github.com/agentstation/cmdevents/pkg/events"
)

func ExampleEmitter_Emit() {
	em := events.NewEmitter()
	em.On(events.UnknownCommand, func(cfg events.EventConfig) {
		fmt.Println("late:", cfg.ErrorString())
	}, 5)
	em.On(events.UnknownCommand, func(cfg events.EventConfig) {
		fmt.Println("early:", cfg.ErrorString())
	}, -5)

	d := em.Emit(events.NewConfig().
		WithPayload(events.UnknownCommandPayload{Name: "foo"}).
		WithExitCode(2))
	fmt.Println(d)

	// Output:
	// early: foo
	// late: foo
	// terminate(2)
}

func ExampleEventConfig_Payload() {
	cfg := events.NewConfig().
		WithEvent(events.MissingRequiredArgument).
		WithErrorString("clone,url")

	switch p := cfg.Payload().(type) {
	case events.MissingRequiredArgumentPayload:
		fmt.Printf("%s needs <%s>\n", p.Command, p.Argument)
	}

	// Output: clone needs <url>
}
