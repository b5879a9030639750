package builder

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"
)

// Stage is one phase of the build: loading inputs, hashing, permuting,
// writing an artifact. Stages run strictly in the order they are added to a
// Pipeline; the first failure aborts the remaining stages.
type Stage interface {
	Name() string
	Run(ctx context.Context) error
}

// funcStage adapts a plain function to Stage, for the in-process phases
// (MPH construction, BFS permutation, side-file assembly) that have no
// external binary to shell out to in this environment.
type funcStage struct {
	name string
	fn   func(ctx context.Context) error
}

// NewFuncStage wraps fn as an in-process Stage named name.
func NewFuncStage(name string, fn func(ctx context.Context) error) Stage {
	return &funcStage{name: name, fn: fn}
}

func (s *funcStage) Name() string { return s.name }

func (s *funcStage) Run(ctx context.Context) error { return s.fn(ctx) }

// ExecStage runs an external command as one build stage, propagating its
// exit code verbatim on failure (per the builder exit-code contract: stage
// failures surface the child's exit code). A deployment that has the
// original scattered-arcs/transpose toolchain installed substitutes an
// ExecStage for the corresponding in-process phase without touching the
// Pipeline that drives it.
type ExecStage struct {
	name string
	path string
	args []string
}

// NewExecStage builds an ExecStage that runs path with args when the
// Pipeline reaches it.
func NewExecStage(name, path string, args ...string) *ExecStage {
	return &ExecStage{name: name, path: path, args: args}
}

func (s *ExecStage) Name() string { return s.name }

// Run executes the child process, returning an error that wraps its exit
// code when it terminates unsuccessfully.
func (s *ExecStage) Run(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, s.path, s.args...)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if ok := asExitError(err, &exitErr); ok {
			return fmt.Errorf("%w: %w", ErrStageFailed, &ExitCodeError{Stage: s.name, Code: exitErr.ExitCode()})
		}

		return fmt.Errorf("%w: %s: %v", ErrStageFailed, s.name, err)
	}

	return nil
}

func asExitError(err error, target **exec.ExitError) bool {
	ee, ok := err.(*exec.ExitError)
	if ok {
		*target = ee
	}

	return ok
}

// Pipeline runs an ordered sequence of Stages, logging each stage's start,
// finish, duration, and outcome, matching spec.md's "the builder pipeline
// logs stage start/finish/duration/exit code."
type Pipeline struct {
	stages []Stage
	log    *logrus.Entry
}

// NewPipeline builds a Pipeline over stages, logging through log (a nil log
// falls back to a silent no-op entry so callers need not always supply one).
func NewPipeline(log *logrus.Entry, stages ...Stage) *Pipeline {
	if log == nil {
		silent := logrus.New()
		silent.SetOutput(nowhere{})
		log = logrus.NewEntry(silent)
	}

	return &Pipeline{stages: stages, log: log}
}

// nowhere discards everything written to it, backing the Pipeline's default
// logger when the caller supplies none.
type nowhere struct{}

func (nowhere) Write(p []byte) (int, error) { return len(p), nil }

// Run executes every stage in order. On the first failure it stops and
// returns the wrapped stage error; stages already run are not rolled back.
func (p *Pipeline) Run(ctx context.Context) error {
	for _, s := range p.stages {
		log := p.log.WithField("stage", s.Name())
		log.Info("stage starting")

		start := time.Now()
		err := s.Run(ctx)
		elapsed := time.Since(start)

		if err != nil {
			log.WithError(err).WithField("elapsed", elapsed).Error("stage failed")
			return fmt.Errorf("builder: stage %q: %w", s.Name(), err)
		}

		log.WithField("elapsed", elapsed).Info("stage finished")
	}

	return nil
}
