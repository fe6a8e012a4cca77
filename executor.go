package scripthub

import "io"

// Executor runs a command built from args, copying its output streams into
// stdout and stderr as they are produced. A non-nil error is returned when
// the command could not be started or did not exit cleanly.
type Executor interface {
	Execute(stdout, stderr io.Writer, args ...string) error
}
