// cmd/tools/registry-updater/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"creator-pricing-workers/internal/common/validation"
	"creator-pricing-workers/pkg/registry"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		help(out)
		return fmt.Errorf("command is required")
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(out)
	path := fs.String("path", registry.DefaultPath, "Path to registry file")
	taskType := fs.String("taskType", "", "Task type of the activity")
	status := fs.String("status", "", "Implementation status (planned, in-progress, completed, verified)")
	timeout := fs.String("timeout", "", "Job timeout, e.g. 10s")

	switch args[0] {
	case "list", "validate", "schema", "set":
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
	default:
		help(out)
		return nil
	}

	reg, err := load(*path)
	if err != nil {
		return err
	}

	switch args[0] {
	case "list":
		for _, a := range reg.Activities {
			fmt.Fprintf(out, "%-28s %-12s %s\n", a.TaskType, a.ImplementationStatus, a.Timeout)
		}
		return nil
	case "validate":
		fmt.Fprintf(out, "Registry validation passed: %d activities, %d with input schemas.\n",
			len(reg.Activities), len(reg.InputSchemas()))
		return nil
	case "schema":
		activity, err := find(reg, *taskType)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(activity.InputSchema, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if err := set(reg, *taskType, *status, *timeout); err != nil {
		return err
	}
	if err := save(reg, *path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Updated %s\n", *taskType)
	return nil
}

// load reads a registry and refuses one the workers could not start from.
func load(path string) (*registry.ActivityRegistry, error) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}
	if err := check(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func check(reg *registry.ActivityRegistry) error {
	if err := reg.Check(); err != nil {
		return err
	}
	if _, err := validation.NewValidator(reg.InputSchemas()); err != nil {
		return err
	}
	return nil
}

func find(reg *registry.ActivityRegistry, taskType string) (*registry.Activity, error) {
	if taskType == "" {
		return nil, fmt.Errorf("taskType is required")
	}
	for i := range reg.Activities {
		if reg.Activities[i].TaskType == taskType {
			return &reg.Activities[i], nil
		}
	}
	return nil, fmt.Errorf("no activity with task type %s", taskType)
}

// set changes the status or timeout of one activity. The registry is checked
// again before the caller saves it.
func set(reg *registry.ActivityRegistry, taskType, status, timeout string) error {
	if status == "" && timeout == "" {
		return fmt.Errorf("status or timeout is required")
	}
	activity, err := find(reg, taskType)
	if err != nil {
		return err
	}
	if status != "" {
		activity.ImplementationStatus = status
	}
	if timeout != "" {
		activity.Timeout = timeout
	}
	if err := check(reg); err != nil {
		return err
	}
	reg.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	return nil
}

func save(reg *registry.ActivityRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

func help(out io.Writer) {
	fmt.Fprintln(out, `
Usage: registry-updater <command> [flags]

Commands:
  list      Show every task type with its status and timeout
  validate  Check the registry and compile its input schemas
  schema    Print the input schema of one task type
  set       Change the status or timeout of one task type

Examples:
  registry-updater list
  registry-updater validate -path pkg/registry/activities.json
  registry-updater schema -taskType calculate-price
  registry-updater set -taskType evaluate-gift -status verified
  registry-updater set -taskType vet-brand -timeout 20s

The workers compile the registry in, so rebuild them after set.`)
}
