// Package migrate runs the interactive setup and migration workflows.
package migrate

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/YakDriver/lintmigrate/internal"
	"github.com/YakDriver/lintmigrate/internal/prompt"
)

// Step represents a single unit of a workflow
type Step struct {
	Name  string
	Order int // Execution order

	// When gates the step; nil runs it unconditionally.
	When func(s *Session) bool
	Run  func(ctx context.Context, s *Session) error
}

// Workflow represents a named, ordered set of steps
type Workflow struct {
	Name        string
	Title       string
	Description string
	Steps       []Step
}

// MigratorOptions configures the migration behavior
type MigratorOptions struct {
	DryRun  bool
	Verbose bool
}

// Halt ends a workflow before its remaining steps run. Complete reports
// whether what ran so far still counts as a finished setup.
type Halt struct {
	Reason   string
	Complete bool
}

func (h *Halt) Error() string {
	return "workflow halted: " + h.Reason
}

// stop ends the workflow cleanly, e.g. when the user declines to continue.
func stop(reason string) error {
	return &Halt{Reason: reason, Complete: true}
}

// abandon ends the workflow and marks the setup as unfinished.
func abandon(reason string) error {
	return &Halt{Reason: reason}
}

// Migrator handles the overall migration process
type Migrator struct {
	workflow Workflow
}

// NewMigrator creates a migrator for w with its steps sorted by Order
func NewMigrator(w Workflow) *Migrator {
	steps := slices.Clone(w.Steps)
	slices.SortStableFunc(steps, func(a, b Step) int {
		return cmp.Compare(a.Order, b.Order)
	})
	w.Steps = steps
	return &Migrator{workflow: w}
}

// Workflow returns the workflow with its steps in execution order.
func (m *Migrator) Workflow() Workflow {
	return m.workflow
}

// Run applies every step to the session in order. Cancellation, aborted
// prompts and fatal errors end the run and are returned. Any other step
// failure becomes a summary warning and the next step runs.
func (m *Migrator) Run(ctx context.Context, s *Session) error {
	if m.workflow.Title != "" {
		s.Out.Title(m.workflow.Title)
	}
	for _, step := range m.workflow.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if step.When != nil && !step.When(s) {
			s.Log.Debug("workflow %s: skipping step %s", m.workflow.Name, step.Name)
			continue
		}
		s.Log.Debug("workflow %s: running step %s", m.workflow.Name, step.Name)

		err := step.Run(ctx, s)
		if err == nil {
			continue
		}

		var halt *Halt
		switch {
		case errors.As(err, &halt):
			if halt.Reason != "" {
				s.Out.Warn("%s", halt.Reason)
			}
			s.Summary.Incomplete = !halt.Complete
			s.Summary.Halted = true
			if s.Summary.Incomplete {
				s.Summary.Print(s.Out)
			}
			return nil
		case errors.Is(err, prompt.ErrAborted),
			errors.Is(err, context.Canceled),
			errors.Is(err, context.DeadlineExceeded),
			internal.IsFatal(err):
			return err
		default:
			s.Log.Warn("workflow %s: step %s failed: %v", m.workflow.Name, step.Name, err)
			s.Out.Warn("%s: %v", step.Name, err)
			if hint := hintOf(err); hint != "" {
				s.Out.Plain("%s", hint)
			}
			s.Summary.Warn("%s: %v", step.Name, err)
		}
	}
	return nil
}

func hintOf(err error) string {
	var e *internal.Error
	if errors.As(err, &e) {
		return e.Hint
	}
	return ""
}
