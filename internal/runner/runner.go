// Package runner executes the external Node tooling (package managers, npx
// migration tools) that a migration delegates to.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/YakDriver/lintmigrate/internal"
)

// Command is an external program invocation.
type Command struct {
	Name string
	Args []string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Output is what a command printed.
type Output struct {
	Stdout string
	Stderr string
}

// Combined returns stdout followed by stderr.
func (o Output) Combined() string {
	if o.Stderr == "" {
		return o.Stdout
	}
	if o.Stdout == "" {
		return o.Stderr
	}
	return o.Stdout + "\n" + o.Stderr
}

// Runner runs commands in the project directory. A failed command still
// returns whatever output it produced.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Output, error)
}

// ExecRunner runs commands with os/exec, capturing their output while
// echoing it to the console.
type ExecRunner struct {
	dir    string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

type Option func(*ExecRunner)

// WithOutput echoes command output to the given writers.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *ExecRunner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithStdin connects the command's stdin, for tools that prompt.
func WithStdin(in io.Reader) Option {
	return func(r *ExecRunner) {
		r.stdin = in
	}
}

func NewExecRunner(dir string, opts ...Option) *ExecRunner {
	r := &ExecRunner{
		dir:    dir,
		stdin:  os.Stdin,
		stdout: io.Discard,
		stderr: io.Discard,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ExecRunner) Run(ctx context.Context, c Command) (Output, error) {
	internal.GetGlobalLogger().Debug("running %s in %s", c, r.dir)

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = r.dir
	cmd.Stdin = r.stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = io.MultiWriter(&stdout, r.stdout)
	cmd.Stderr = io.MultiWriter(&stderr, r.stderr)

	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}

	if ctx.Err() != nil {
		return out, ctx.Err()
	}
	if err != nil {
		return out, internal.NewError(internal.KindTool, c.String(), err)
	}
	return out, nil
}

// RecordingRunner runs nothing. It records every command and answers with
// canned output, for dry runs and tests.
type RecordingRunner struct {
	mu       sync.Mutex
	commands []Command
	// Respond, when set, supplies the result for a command.
	Respond func(Command) (Output, error)
}

func (r *RecordingRunner) Run(ctx context.Context, c Command) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	r.mu.Lock()
	r.commands = append(r.commands, c)
	r.mu.Unlock()
	if r.Respond != nil {
		return r.Respond(c)
	}
	return Output{}, nil
}

// Commands returns the commands seen so far.
func (r *RecordingRunner) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Command(nil), r.commands...)
}

// Strings returns the commands as shell-like strings.
func (r *RecordingRunner) Strings() []string {
	var out []string
	for _, c := range r.Commands() {
		out = append(out, c.String())
	}
	return out
}

// Fail is a Respond helper that makes every command whose string contains
// substr fail with output.
func Fail(substr string, output Output) func(Command) (Output, error) {
	return func(c Command) (Output, error) {
		if strings.Contains(c.String(), substr) {
			return output, internal.NewError(internal.KindTool, c.String(), fmt.Errorf("exit status 1"))
		}
		return Output{}, nil
	}
}
