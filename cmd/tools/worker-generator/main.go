// cmd/tools/worker-generator/main.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"creator-pricing-workers/pkg/registry"
)

const modulePath = "creator-pricing-workers"

// WorkerData is what the scaffold templates render from.
type WorkerData struct {
	Module       string
	PackageName  string
	TaskType     string
	Category     string
	DisplayName  string
	Description  string
	Timeout      string
	InputFields  []Field
	OutputFields []Field
}

// Field is one struct field derived from a schema property.
type Field struct {
	Name     string
	Type     string
	JSONName string
	Optional bool
}

func (f Field) Tag() string {
	if f.Optional {
		return fmt.Sprintf("`json:\"%s,omitempty\"`", f.JSONName)
	}
	return fmt.Sprintf("`json:\"%s\"`", f.JSONName)
}

// schemaFields turns the properties of a JSON schema into sorted struct fields.
func schemaFields(schema map[string]interface{}) []Field {
	props, _ := schema["properties"].(map[string]interface{})
	required := map[string]bool{}
	if list, ok := schema["required"].([]interface{}); ok {
		for _, r := range list {
			if s, ok := r.(string); ok {
				required[s] = true
			}
		}
	}

	fields := make([]Field, 0, len(props))
	for name, raw := range props {
		details, _ := raw.(map[string]interface{})
		fields = append(fields, Field{
			Name:     exportName(name),
			Type:     goType(details["type"]),
			JSONName: name,
			Optional: !required[name],
		})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].JSONName < fields[j].JSONName })
	return fields
}

func goType(jsonType interface{}) string {
	switch jsonType {
	case "string":
		return "string"
	case "integer":
		return "int"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	case "array":
		return "[]interface{}"
	case "object":
		return "map[string]interface{}"
	default:
		return "interface{}"
	}
}

// exportName converts camelCase or kebab-case names to an exported identifier.
func exportName(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' })
	var b strings.Builder
	for _, p := range parts {
		if strings.EqualFold(p, "id") || strings.EqualFold(p, "url") {
			b.WriteString(strings.ToUpper(p))
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	return b.String()
}

// packageName drops separators from an activity ID.
func packageName(id string) string {
	return strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(id))
}

const modelsTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/models.go
package {{ .PackageName }}

type Input struct {
{{- range .InputFields }}
	{{ .Name }} {{ .Type }} {{ .Tag }}
{{- end }}
}

type Output struct {
{{- range .OutputFields }}
	{{ .Name }} {{ .Type }} {{ .Tag }}
{{- end }}
}
`

const configTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/config.go
package {{ .PackageName }}

import "time"

type Config struct {
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: {{ .Timeout }},
	}
}
`

const handlerTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/handler.go
package {{ .PackageName }}

import (
	"context"
	"time"

	"{{ .Module }}/internal/common/camunda"
	"{{ .Module }}/internal/common/logger"
	"{{ .Module }}/internal/common/observability"
	"{{ .Module }}/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "{{ .TaskType }}"
)

type Handler struct {
	config   *Config
	reporter *camunda.JobReporter
	logger   logger.Logger
}

func NewHandler(config *Config, validator *validation.Validator, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		reporter: camunda.NewJobReporter(TaskType, validator, obs, log),
		logger:   log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := h.reporter.Decode(job, &input); err != nil {
		h.reporter.Fail(client, job, err, start)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.reporter.Fail(client, job, err, start)
		return
	}
	h.reporter.Complete(client, job, output, start)
}

// Execute {{ .Description }}.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return &Output{}, nil
}
`

const testTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/handler_test.go
package {{ .PackageName }}

import (
	"context"
	"testing"

	"{{ .Module }}/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(DefaultConfig(), nil, nil, logger.NewNoOpLogger())

	out, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.NotNil(t, out)
}
`

// Scaffold renders the worker files for one activity into dir.
func Scaffold(activity registry.Activity, dir string) ([]string, error) {
	data := WorkerData{
		Module:       modulePath,
		PackageName:  packageName(activity.ID),
		TaskType:     activity.TaskType,
		Category:     activity.Category,
		DisplayName:  activity.DisplayName,
		Description:  strings.TrimSuffix(lowerFirst(activity.Description), "."),
		Timeout:      timeoutLiteral(activity.Timeout),
		InputFields:  schemaFields(activity.InputSchema),
		OutputFields: schemaFields(activity.OutputSchema),
	}

	files := []struct {
		name string
		tmpl string
	}{
		{"models.go", modelsTemplate},
		{"config.go", configTemplate},
		{"handler.go", handlerTemplate},
		{"handler_test.go", testTemplate},
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	var written []string
	for _, f := range files {
		src, err := render(f.name, f.tmpl, data)
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err == nil {
			return written, fmt.Errorf("%s already exists", path)
		}
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func render(name, tmpl string, data WorkerData) ([]byte, error) {
	t, err := template.New(name).Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("parse %s template: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", name, err)
	}
	return src, nil
}

// timeoutLiteral turns a registry timeout such as "10s" into a Go expression.
func timeoutLiteral(timeout string) string {
	unit := map[byte]string{'s': "time.Second", 'm': "time.Minute"}
	if n := len(timeout); n > 1 {
		if u, ok := unit[timeout[n-1]]; ok {
			return timeout[:n-1] + " * " + u
		}
	}
	return "30 * time.Second"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func main() {
	activityID := flag.String("activity", "", "Activity ID from the registry (e.g. evaluate-gift)")
	outputDir := flag.String("output", "./internal/workers/", "Root directory for generated workers")
	registryPath := flag.String("registry", "", "Registry JSON file (defaults to the compiled-in registry)")
	flag.Parse()

	if *activityID == "" {
		fmt.Println("Usage: worker-generator --activity <id> [--output <dir>] [--registry <path>]")
		os.Exit(1)
	}

	var (
		reg *registry.ActivityRegistry
		err error
	)
	if *registryPath == "" {
		reg, err = registry.Default()
	} else {
		reg, err = registry.LoadRegistry(*registryPath)
	}
	if err != nil {
		fmt.Printf("Error loading registry: %v\n", err)
		os.Exit(1)
	}

	var found *registry.Activity
	for i := range reg.Activities {
		if reg.Activities[i].ID == *activityID {
			found = &reg.Activities[i]
			break
		}
	}
	if found == nil {
		fmt.Printf("Activity %q not found in registry\n", *activityID)
		os.Exit(1)
	}

	dir := filepath.Join(*outputDir, found.Category, found.ID)
	written, err := Scaffold(*found, dir)
	for _, path := range written {
		fmt.Printf("generated %s\n", path)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  1. Implement Execute in handler.go")
	fmt.Println("  2. Register the handler in cmd/worker-manager/wiring.go")
	fmt.Println("  3. Add a workers entry to configs/config.yaml")
}
