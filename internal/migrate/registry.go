package migrate

import (
	"context"
	"fmt"
	"strings"
)

// Workflows lists every workflow in the order the wizard offers them.
func Workflows() []Workflow {
	return []Workflow{
		OxlintWorkflow(),
		OxfmtWorkflow(),
		ESLintWorkflow(),
		FlatConfigWorkflow(),
		PluginOxlintWorkflow(),
	}
}

// Lookup returns the workflow with the given name.
func Lookup(name string) (Workflow, error) {
	var names []string
	for _, w := range Workflows() {
		if w.Name == name {
			return w, nil
		}
		names = append(names, w.Name)
	}
	return Workflow{}, fmt.Errorf("unknown workflow %q (want one of %s)", name, strings.Join(names, ", "))
}

// Wizard asks which workflow to run and runs it.
func Wizard(ctx context.Context, s *Session) error {
	workflows := Workflows()
	options := make([]string, len(workflows))
	for i, w := range workflows {
		options[i] = w.Description
	}

	s.Out.Title("Lint config setup")
	i, err := s.Prompt.Select(ctx, "What do you want to set up?", options, 0)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(workflows) {
		return fmt.Errorf("selection %d out of range", i)
	}
	s.Log.Debug("wizard: selected %s", workflows[i].Name)
	return NewMigrator(workflows[i]).Run(ctx, s)
}
