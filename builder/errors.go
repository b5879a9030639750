package builder

import (
	"errors"
	"fmt"
)

// ErrStageFailed wraps a failed stage's underlying error (or, for an
// ExecStage, its exit code) so Pipeline.Run can report which stage aborted
// the build.
var ErrStageFailed = errors.New("builder: stage failed")

// ErrEmptyInput indicates nodes.csv.gz had zero lines.
var ErrEmptyInput = errors.New("builder: empty node input")

// ErrDanglingEdge indicates edges.csv.gz referenced a PID absent from
// nodes.csv.gz.
var ErrDanglingEdge = errors.New("builder: dangling edge endpoint")

// ErrMalformedEdgeLine indicates an edges.csv.gz line was not exactly two
// space-separated PIDs.
var ErrMalformedEdgeLine = errors.New("builder: malformed edge line")

// ExitCodeError carries an ExecStage child process's exit code so a caller
// driving the pipeline (the swhgraph-compress CLI) can propagate it
// verbatim instead of collapsing every failure to a generic exit status.
type ExitCodeError struct {
	Stage string
	Code  int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Stage, e.Code)
}
