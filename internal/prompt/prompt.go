// Package prompt asks the user yes/no and multiple-choice questions.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// ErrAborted is returned when the user cancels a prompt or input ends.
var ErrAborted = errors.New("prompt aborted")

// Prompter is the question-asking surface every migration step uses.
type Prompter interface {
	Confirm(ctx context.Context, question string, def bool) (bool, error)
	Select(ctx context.Context, question string, options []string, def int) (int, error)
}

// New returns a huh-backed prompter on a terminal, a line reader otherwise,
// and a prompter that takes every default when assumeYes is set.
func New(in *os.File, out io.Writer, assumeYes bool) Prompter {
	if assumeYes {
		return Auto{}
	}
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return &Form{In: in, Out: out}
	}
	return NewLine(in, out)
}

// Auto takes the default answer to every question.
type Auto struct{}

func (Auto) Confirm(ctx context.Context, _ string, def bool) (bool, error) {
	return def, ctx.Err()
}

func (Auto) Select(ctx context.Context, _ string, _ []string, def int) (int, error) {
	return def, ctx.Err()
}

// Form renders interactive huh fields.
type Form struct {
	In  io.Reader
	Out io.Writer
}

func (f *Form) run(ctx context.Context, field huh.Field) error {
	err := huh.NewForm(huh.NewGroup(field)).
		WithInput(f.In).
		WithOutput(f.Out).
		WithShowHelp(false).
		RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

func (f *Form) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	answer := def
	field := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&answer)
	if err := f.run(ctx, field); err != nil {
		return false, err
	}
	return answer, nil
}

func (f *Form) Select(ctx context.Context, question string, options []string, def int) (int, error) {
	choice := def
	opts := make([]huh.Option[int], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, i)
	}
	field := huh.NewSelect[int]().
		Title(question).
		Options(opts...).
		Value(&choice)
	if err := f.run(ctx, field); err != nil {
		return 0, err
	}
	return choice, nil
}

// Line reads answers one line at a time, for pipes and CI.
type Line struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{in: bufio.NewReader(in), out: out}
}

func (l *Line) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s, err := l.in.ReadString('\n')
	if err != nil && (s == "" || !errors.Is(err, io.EOF)) {
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", err
	}
	return strings.TrimSpace(s), nil
}

func (l *Line) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(l.out, "%s (%s) ", question, hint)
		s, err := l.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(s) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(l.out, "Please answer y or n.")
	}
}

func (l *Line) Select(ctx context.Context, question string, options []string, def int) (int, error) {
	fmt.Fprintln(l.out, question)
	for i, o := range options {
		fmt.Fprintf(l.out, "  %d) %s\n", i+1, o)
	}
	for {
		fmt.Fprintf(l.out, "Choose [%d]: ", def+1)
		s, err := l.readLine(ctx)
		if err != nil {
			return 0, err
		}
		if s == "" {
			return def, nil
		}
		n, err := strconv.Atoi(s)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintf(l.out, "Enter a number between 1 and %d.\n", len(options))
	}
}

// Scripted replays fixed answers, for tests. Confirmations and selections
// are consumed in order from their own queues; an exhausted queue answers
// with the default.
type Scripted struct {
	Confirms []bool
	Selects  []int
	Asked    []string
}

func (s *Scripted) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	s.Asked = append(s.Asked, question)
	if len(s.Confirms) == 0 {
		return def, ctx.Err()
	}
	answer := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return answer, ctx.Err()
}

func (s *Scripted) Select(ctx context.Context, question string, _ []string, def int) (int, error) {
	s.Asked = append(s.Asked, question)
	if len(s.Selects) == 0 {
		return def, ctx.Err()
	}
	answer := s.Selects[0]
	s.Selects = s.Selects[1:]
	return answer, ctx.Err()
}
