package cli

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/vietdv277/cirrus/pkg/provider"
)

// DefaultBinary is the name of the cluster tool looked up on PATH
const DefaultBinary = "photon"

// Executor runs the external tool and returns its standard output.
// A failed run returns a *provider.CommandError.
type Executor interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// Recorder observes command executions
type Recorder interface {
	ObserveCommand(command string, kind string, elapsed time.Duration)
}

// ExecRunner runs the tool binary with a structured argument list
type ExecRunner struct {
	binary     string
	globalArgs []string
	classifier provider.Classifier
	logger     *zap.Logger
	recorder   Recorder
}

// RunnerOption is a functional option for configuring an ExecRunner
type RunnerOption func(*ExecRunner)

// WithBinary sets the tool binary path
func WithBinary(path string) RunnerOption {
	return func(r *ExecRunner) {
		if path != "" {
			r.binary = path
		}
	}
}

// WithGlobalArgs sets arguments placed before every command,
// e.g. "--non-interactive"
func WithGlobalArgs(args ...string) RunnerOption {
	return func(r *ExecRunner) { r.globalArgs = args }
}

// WithNotFoundMarkers overrides the substrings that classify a failure as
// not-found. See provider.NewClassifier for the "resource=marker" form.
func WithNotFoundMarkers(markers ...string) RunnerOption {
	return func(r *ExecRunner) { r.classifier = provider.NewClassifier(markers...) }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) RunnerOption {
	return func(r *ExecRunner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder
func WithRecorder(rec Recorder) RunnerOption {
	return func(r *ExecRunner) { r.recorder = rec }
}

// NewExecRunner creates an ExecRunner
func NewExecRunner(opts ...RunnerOption) *ExecRunner {
	r := &ExecRunner{
		binary:     DefaultBinary,
		classifier: provider.NewClassifier(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the tool. Stdout is returned untouched on success. On a
// non-zero exit the error message is the tool's stderr, or its stdout when
// stderr is empty.
func (r *ExecRunner) Run(ctx context.Context, args ...string) (string, error) {
	argv := append(append([]string(nil), r.globalArgs...), args...)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary, argv...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if runErr == nil {
		r.observe(args, "ok", elapsed)
		r.logger.Debug("command succeeded",
			zap.String("binary", r.binary),
			zap.Strings("args", argv),
			zap.Duration("elapsed", elapsed))
		return stdout.String(), nil
	}

	cmdErr := &provider.CommandError{Args: args, ExitCode: -1}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
		cmdErr.Message = stderr.String()
		if cmdErr.Message == "" {
			cmdErr.Message = stdout.String()
		}
	}
	if cmdErr.Message == "" {
		cmdErr.Message = runErr.Error()
	}
	cmdErr.Kind = r.classifier.Classify(resourceOf(args), cmdErr.Message)

	r.observe(args, cmdErr.Kind.String(), elapsed)
	r.logger.Debug("command failed",
		zap.String("binary", r.binary),
		zap.Strings("args", argv),
		zap.Int("exit_code", cmdErr.ExitCode),
		zap.Stringer("kind", cmdErr.Kind),
		zap.Duration("elapsed", elapsed))
	return "", cmdErr
}

func (r *ExecRunner) observe(args []string, outcome string, elapsed time.Duration) {
	if r.recorder == nil {
		return
	}
	r.recorder.ObserveCommand(commandName(args), outcome, elapsed)
}

// resourceOf is the resource word of an invocation, e.g. "image"
func resourceOf(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// commandName is the resource and verb of an invocation, e.g. "cluster show"
func commandName(args []string) string {
	switch len(args) {
	case 0:
		return ""
	case 1:
		return args[0]
	default:
		return args[0] + " " + args[1]
	}
}
