package paccli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/powerdesk/powerdesk/internal/messages"
)

// DefaultExecutable is the pac CLI binary name resolved through PATH when no
// explicit path is configured.
const DefaultExecutable = "pac"

// timeoutStderr is the fixed diagnostic carried by timed-out results. Callers
// and the original tool's consumers match on this exact string.
const timeoutStderr = "Command timed out"

// ErrToolNotFound reports that the pac executable could not be started at
// all. It is a configuration problem, not a per-command failure, and is the
// only error the runner ever returns for a spawned command.
var ErrToolNotFound = errors.New("pac CLI not available")

// Result is the uniform outcome of one pac invocation.
type Result struct {
	Success  bool
	Stdout   string
	Stderr   string
	ExitCode int
	Command  string
}

// Runner executes pac with the given arguments under a hard wall-clock
// timeout. Exceeding the timeout terminates the process and yields a normal
// Result with ExitCode -1; it never yields an error.
type Runner interface {
	Run(ctx context.Context, args []string, timeout time.Duration) (Result, error)
}

// InteractiveRunner is implemented by runners that can hand the child process
// the caller's terminal, for flows like device-code authentication.
type InteractiveRunner interface {
	RunInteractive(ctx context.Context, args []string) (Result, error)
}

// ExecRunner runs the pac executable as a child process.
type ExecRunner struct {
	// Executable overrides the pac binary path. Empty means DefaultExecutable.
	Executable string
}

func (r ExecRunner) executable() string {
	if r.Executable != "" {
		return r.Executable
	}
	return DefaultExecutable
}

// Run invokes pac with args and captures both output streams.
func (r ExecRunner) Run(ctx context.Context, args []string, timeout time.Duration) (Result, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	name := r.executable()
	commandLine := strings.Join(append([]string{name}, args...), " ")

	cmd := exec.CommandContext(runCtx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return Result{
			Success:  false,
			Stdout:   "",
			Stderr:   timeoutStderr,
			ExitCode: -1,
			Command:  commandLine,
		}, nil
	}

	result := Result{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Command: commandLine,
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return Result{}, startError(name, err)
	}

	result.Success = true
	result.ExitCode = 0
	return result, nil
}

// RunInteractive invokes pac attached to the caller's stdin, stdout, and
// stderr so the child can drive interactive prompts. No timeout is applied
// beyond ctx; output is not captured.
func (r ExecRunner) RunInteractive(ctx context.Context, args []string) (Result, error) {
	name := r.executable()
	commandLine := strings.Join(append([]string{name}, args...), " ")

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	result := Result{Command: commandLine}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return Result{}, startError(name, err)
	}

	result.Success = true
	return result, nil
}

// startError classifies a process start failure. A missing executable wraps
// ErrToolNotFound so construction-time callers can distinguish it.
func startError(name string, err error) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf(messages.PacNotFoundFmt, name, ErrToolNotFound)
	}
	return fmt.Errorf(messages.PacStartFailedFmt, name, err)
}
