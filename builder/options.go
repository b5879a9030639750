package builder

import "github.com/sirupsen/logrus"

// defaultTransposeBatchSize bounds how many forward nodes the transpose
// stage accumulates reverse arcs for before flushing them into the
// in-progress reverse-adjacency table, standing in for the external-memory
// transpose's configurable batch size (spec.md §6) in this in-process
// implementation.
const defaultTransposeBatchSize = 1 << 16

// buildOptions configures one Build invocation.
type buildOptions struct {
	transposeBatchSize int
	log                *logrus.Entry
}

func defaultBuildOptions() buildOptions {
	return buildOptions{transposeBatchSize: defaultTransposeBatchSize}
}

// BuildOption configures Build.
type BuildOption func(*buildOptions)

// WithTransposeBatchSize overrides the transpose stage's batch size. Values
// <= 0 are ignored.
func WithTransposeBatchSize(n int) BuildOption {
	return func(o *buildOptions) {
		if n > 0 {
			o.transposeBatchSize = n
		}
	}
}

// WithLogger installs the logrus entry the Pipeline logs stage
// start/finish/duration through. A nil entry is ignored (Build falls back
// to a silent logger).
func WithLogger(log *logrus.Entry) BuildOption {
	return func(o *buildOptions) {
		if log != nil {
			o.log = log
		}
	}
}
