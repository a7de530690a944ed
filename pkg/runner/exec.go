package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/google/shlex"
)

// Executor runs a single command line to completion.
type Executor interface {
	// Run returns the exit code of the command. An error means the command
	// could not be run at all.
	Run(ctx context.Context, cmdline string, stdout, stderr io.Writer) (int, error)
}

// ProcessExecutor runs command lines as local processes.
type ProcessExecutor struct {
	Shell string
}

func (e *ProcessExecutor) Run(ctx context.Context, cmdline string, stdout, stderr io.Writer) (int, error) {
	var cmd *exec.Cmd
	if e.Shell != "" {
		cmd = exec.CommandContext(ctx, e.Shell, "-c", cmdline)
	} else {
		words, err := shlex.Split(cmdline)
		if err != nil {
			return -1, fmt.Errorf("failed to split command: %w", err)
		}
		if len(words) == 0 {
			return -1, fmt.Errorf("empty command")
		}
		cmd = exec.CommandContext(ctx, words[0], words[1:]...)
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}
