package events

import "fmt"

// Directive tells the caller of Emit what to do next.
type Directive struct {
	terminate bool
	code      int
}

// Continue is returned when no listener was registered for the event. The
// caller performs its default behavior.
func Continue() Directive {
	return Directive{}
}

// Terminate is returned after listeners ran. The caller should end the
// program with code, including when code is 0.
func Terminate(code int) Directive {
	return Directive{terminate: true, code: code}
}

// ShouldTerminate reports whether the program should exit.
func (d Directive) ShouldTerminate() bool {
	return d.terminate
}

// ExitCode returns the exit code to terminate with. It is 0 for Continue.
func (d Directive) ExitCode() int {
	return d.code
}

// String implements fmt.Stringer.
func (d Directive) String() string {
	if !d.terminate {
		return "continue"
	}
	return fmt.Sprintf("terminate(%d)", d.code)
}
