// Package persist wraps gitlab.com/NebulousLabs/log the way the teacher
// wraps it: a small Logger type that every long-lived component holds in a
// log field, plus a couple of constructors for the handful of destinations
// the optimizer logs to (a writer such as stderr, a discard logger for
// tests and library callers who never asked for logging).
package persist

import (
	"io"
	"os"

	"gitlab.com/NebulousLabs/log"
)

// Logger is the logging handle threaded through the optimizer's components.
// It is intentionally thin: components call Debugln/Println/Critical on it
// exactly as modules/renter/workerpool.go calls methods on renter.log.
type Logger struct {
	*log.Logger
}

// NewLogger wraps w in a Logger tagged with name, the same convention the
// teacher uses to prefix each module's log lines with the module name.
// gitlab.com/NebulousLabs/log.NewLogger can itself fail (e.g. rejecting a
// malformed name), the same way the teacher's own persist.NewLogger reports
// an error to its caller (skymodules/renter/registry_test.go: "log, err :=
// persist.NewLogger(buf)") rather than panicking inside the wrapper.
func NewLogger(w io.Writer, name string) (*Logger, error) {
	l, err := log.NewLogger(w, name)
	if err != nil {
		return nil, err
	}
	return &Logger{Logger: l}, nil
}

// NewDiscardLogger returns a Logger that drops every line. Components that
// are constructed without an explicit logger (e.g. direct library use of
// optimizer.Optimize) fall back to this so nil checks don't have to be
// sprinkled through the hot loops. Discarding to io.Discard cannot fail, so
// the constructor error is not worth propagating here.
func NewDiscardLogger() *Logger {
	l, err := NewLogger(io.Discard, "cutstock")
	if err != nil {
		panic(err)
	}
	return l
}

// NewStderrLogger returns a Logger writing to os.Stderr. The reference cmd/
// binaries do not call it; they pass os.Stderr to optimizer.NewLogger.
func NewStderrLogger(name string) (*Logger, error) {
	return NewLogger(os.Stderr, name)
}
