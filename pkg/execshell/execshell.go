// Package execshell wraps external subprocess invocation for the rest
// of lfsd. Recipe build steps are literal shell-command templates and
// run through Shell; every other subprocess lfsd invokes (curl, git,
// tar, zstd, patch, file, strip, rsync) is composed as an argv vector
// and run through Argv, with no shell in between.
package execshell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/fcanata061/lfsd/pkg/logging"
	"github.com/rs/zerolog"
)

// Result carries a finished subprocess's captured output.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes subprocesses. Production code uses the package-level
// Shell/Argv functions, which delegate to Default; because Default is a
// variable, it can be replaced with a fake Runner that does not spawn
// real processes.
type Runner interface {
	Shell(ctx context.Context, dir, command string, env []string) (Result, error)
	Argv(ctx context.Context, dir string, argv []string, env []string) (Result, error)
}

// Default is the production Runner, used directly by package-level
// Shell and Argv for callers that don't need to fake subprocess calls.
var Default Runner = osRunner{}

type osRunner struct{}

func (osRunner) Shell(ctx context.Context, dir, command string, env []string) (Result, error) {
	return run(ctx, dir, exec.CommandContext(ctx, "sh", "-c", command), env, "sh", []string{"-c", command})
}

func (osRunner) Argv(ctx context.Context, dir string, argv []string, env []string) (Result, error) {
	if len(argv) == 0 {
		return Result{}, errEmptyArgv
	}
	return run(ctx, dir, exec.CommandContext(ctx, argv[0], argv[1:]...), env, argv[0], argv[1:])
}

var errEmptyArgv = errors.New("execshell: empty argv")

func run(ctx context.Context, dir string, cmd *exec.Cmd, env []string, name string, args []string) (Result, error) {
	logger := logging.GetLogger("execshell")
	logging.LogCommand(logger, name, args)

	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(cmd.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if exitErr, ok := err.(*exec.ExitError); ok {
		res.ExitCode = exitErr.ExitCode()
	}

	logEvent(logger, name, res, err)
	return res, err
}

func logEvent(logger zerolog.Logger, name string, res Result, err error) {
	ev := logger.Debug().Str("command", name).Int("exit_code", res.ExitCode)
	if err != nil {
		ev = logger.Warn().Str("command", name).Int("exit_code", res.ExitCode).Err(err)
	}
	ev.Msg("subprocess finished")
}

// Shell runs command through "sh -c" in dir, with env appended to the
// current process environment.
func Shell(ctx context.Context, dir, command string, env []string) (Result, error) {
	return Default.Shell(ctx, dir, command, env)
}

// Argv runs argv directly, with no shell involved.
func Argv(ctx context.Context, dir string, argv []string, env []string) (Result, error) {
	return Default.Argv(ctx, dir, argv, env)
}
