package run

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Result is the outcome of a single external command invocation. Output
// holds combined stdout and stderr so a failure can always be reported
// together with what the command actually printed.
type Result struct {
	Cmd      string
	Output   string
	ExitCode int
}

// Ok reports whether the command exited zero.
func (r Result) Ok() bool {
	return r.ExitCode == 0
}

// Err converts a non-zero result into an error carrying the attempted
// command line and its captured output.
func (r Result) Err() error {
	if r.Ok() {
		return nil
	}
	out := strings.TrimSpace(r.Output)
	if out == "" {
		return fmt.Errorf("command %q exited %d", r.Cmd, r.ExitCode)
	}
	return fmt.Errorf("command %q exited %d: %s", r.Cmd, r.ExitCode, out)
}

// Runner executes external commands. The single implementation shells out;
// tests substitute a scripted fake.
type Runner interface {
	// Run executes the command and captures combined output.
	Run(ctx context.Context, name string, args ...string) Result
	// Stream executes the command attached to the caller's stdout/stderr,
	// for long-lived output such as log following.
	Stream(ctx context.Context, name string, args ...string) Result
}

type execRunner struct {
	stdout io.Writer
	stderr io.Writer
}

// New returns a Runner backed by os/exec.
func New() Runner {
	return &execRunner{stdout: os.Stdout, stderr: os.Stderr}
}

func (e *execRunner) Run(ctx context.Context, name string, args ...string) Result {
	cmdline := commandLine(name, args)
	log.Debugf("+ %s", cmdline)
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	return Result{Cmd: cmdline, Output: string(out), ExitCode: exitCode(ctx, err)}
}

func (e *execRunner) Stream(ctx context.Context, name string, args ...string) Result {
	cmdline := commandLine(name, args)
	log.Debugf("+ %s", cmdline)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr
	err := cmd.Run()
	return Result{Cmd: cmdline, ExitCode: exitCode(ctx, err)}
}

func commandLine(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

func exitCode(ctx context.Context, err error) int {
	if err == nil {
		return 0
	}
	if ee, ok := err.(*exec.ExitError); ok {
		return ee.ExitCode()
	}
	if ctx.Err() == context.DeadlineExceeded {
		return 124
	}
	return 1
}
