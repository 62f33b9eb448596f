package awscli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrAWSCLINotFound indica que o binário da AWS CLI não está no PATH.
var ErrAWSCLINotFound = errors.New("aws CLI not found in PATH")

// CommandResult carries the outcome of one external command.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandRunner is the effectful boundary for external CLI execution. Fixers
// build arguments and inspect the result; only this interface touches the
// real process table, which keeps dispatch logic unit-testable.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (CommandResult, error)
}

// ExecRunner executa comandos reais via os/exec.
type ExecRunner struct{}

// NewExecRunner cria um novo ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command and captures stdout/stderr. A non-zero exit
// status is reported through CommandResult, not as an error; the error
// return is reserved for failures to launch the process at all.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (CommandResult, error) {
	if _, err := exec.LookPath(name); err != nil {
		if name == "aws" {
			return CommandResult{}, ErrAWSCLINotFound
		}
		return CommandResult{}, fmt.Errorf("command %s not found in PATH: %w", name, err)
	}

	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("error running %s: %w", name, err)
	}

	return result, nil
}
