package invoke

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/charmbracelet/log"
)

// Runner executes a render job. The context is the unit of timeout and
// cancellation; the job itself carries no deadline of its own.
type Runner interface {
	Run(ctx context.Context, job Job) error
}

// ExecRunner runs jobs through the openscad binary.
type ExecRunner struct {
	binary string
	logger *log.Logger
}

var _ Runner = (*ExecRunner)(nil)

// ExecOption configures an ExecRunner.
type ExecOption func(*ExecRunner)

// WithBinary overrides the openscad binary path.
func WithBinary(path string) ExecOption {
	return func(r *ExecRunner) {
		if path != "" {
			r.binary = path
		}
	}
}

// WithLogger injects a logger. The default logs nothing below warn.
func WithLogger(logger *log.Logger) ExecOption {
	return func(r *ExecRunner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewExecRunner constructs an ExecRunner with the given options.
func NewExecRunner(options ...ExecOption) *ExecRunner {
	r := &ExecRunner{
		binary: "openscad",
		logger: log.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Run spawns the external process and waits for it to finish. Output is
// captured only on failure so the error is actionable.
func (r *ExecRunner) Run(ctx context.Context, job Job) error {
	args, err := job.Args()
	if err != nil {
		return err
	}

	r.logger.Debug("running openscad", "binary", r.binary, "args", args)

	cmd := exec.CommandContext(ctx, r.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("invoke: openscad canceled: %w", ctx.Err())
		}
		r.logger.Error("openscad failed", "err", err, "output", string(output))
		return fmt.Errorf("invoke: openscad: %w", err)
	}
	return nil
}
