package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/depbatch/errors"
)

const projectsYAML = `
version: "1.0"
sources:
  - name: github
    type: git
    path_pattern: "https://github.com/acme/${PROJECT}.git"
project_policies:
  - name: stable
    source: github
projects:
  - name: core
    project_policy: stable
    description: Core library
  - name: api
    project_policy: stable
    dependencies: [core]
  - name: web
    project_policy: stable
    dependencies: [api]
  - name: lab
    project_policy: stable
    is_enabled: false
  - name: sandbox
    project_policy: stable
    dependencies: [lab]
default_projects: [web]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// fixture writes a project document and a config file pointing at it.
func fixture(t *testing.T, extraConfig string) (dir, projects, cfg string) {
	t.Helper()
	dir = t.TempDir()
	projects = writeFile(t, dir, "projects.yml", projectsYAML)
	cfg = writeFile(t, dir, "depbatch.yml", "log:\n  level: disabled\nplan:\n  project_file: "+projects+"\n"+extraConfig)
	return dir, projects, cfg
}

func execute(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), code
}

// --- plan ---

func TestPlan_Mrconfig(t *testing.T) {
	_, projects, cfg := fixture(t, "")
	out, stderr, code := execute(t, "--config", cfg, "plan", projects, "--project", "api")
	require.Equal(t, errors.ExitOK, code, stderr)

	want := "[core]\n# Core library\ncheckout = git clone 'https://github.com/acme/core.git' 'core'\n\n" +
		"[api]\ncheckout = git clone 'https://github.com/acme/api.git' 'api'\n\n"
	assert.Equal(t, want, out)
}

func TestPlan_ConfigDefaults(t *testing.T) {
	_, _, cfg := fixture(t, "  format: json\n  projects: [web]\n  exclude_roots: true\n")
	out, stderr, code := execute(t, "--config", cfg, "plan")
	require.Equal(t, errors.ExitOK, code, stderr)

	var plan struct {
		Roots   []string `json:"roots"`
		Batches [][]struct {
			Name string `json:"name"`
		} `json:"batches"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, []string{"web"}, plan.Roots)
	require.Len(t, plan.Batches, 2)
	assert.Equal(t, "core", plan.Batches[0][0].Name)
	assert.Equal(t, "api", plan.Batches[1][0].Name)
}

func TestPlan_FlagsOverrideConfig(t *testing.T) {
	_, projects, cfg := fixture(t, "  format: json\n  exclude_roots: true\n")
	out, stderr, code := execute(t, "--config", cfg, "plan", projects, "-p", "core", "--format", "yaml", "--exclude-roots=false")
	require.Equal(t, errors.ExitOK, code, stderr)
	assert.Contains(t, out, "name: core")
	assert.Contains(t, out, "roots:")
}

func TestPlan_OutputFile(t *testing.T) {
	dir, projects, cfg := fixture(t, "")
	target := filepath.Join(dir, "mrconfig")
	out, stderr, code := execute(t, "--config", cfg, "plan", projects, "-p", "core", "-o", target)
	require.Equal(t, errors.ExitOK, code, stderr)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[core]\n"))
}

func TestPlan_Errors(t *testing.T) {
	dir, projects, cfg := fixture(t, "")
	cyclic := writeFile(t, dir, "cyclic.yml", strings.Replace(projectsYAML,
		"    description: Core library\n", "    description: Core library\n    dependencies: [web]\n", 1))

	tests := []struct {
		name string
		args []string
		code int
		msg  string
	}{
		{"missing file", []string{"plan", filepath.Join(dir, "nope.yml")}, errors.ExitInput, "NOT_FOUND"},
		{"unknown project", []string{"plan", projects, "-p", "ghost"}, errors.ExitInput, "NOT_FOUND"},
		{"unknown format", []string{"plan", projects, "--format", "toml"}, errors.ExitInput, "INVALID_INPUT"},
		{"cycle", []string{"plan", cyclic}, errors.ExitGraph, "CYCLIC_GRAPH"},
		{"disabled dependency", []string{"plan", projects, "-p", "sandbox"}, errors.ExitGraph, "DEPENDENCY_RESOLUTION"},
		{"too many args", []string{"plan", projects, projects}, errors.ExitFailure, "accepts at most 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := execute(t, append([]string{"--config", cfg}, tt.args...)...)
			assert.Equal(t, tt.code, code)
			assert.Contains(t, stderr, tt.msg)
		})
	}
}

// --- check ---

func TestCheck(t *testing.T) {
	_, projects, cfg := fixture(t, "")

	out, stderr, code := execute(t, "--config", cfg, "check", projects)
	require.Equal(t, errors.ExitOK, code, stderr)
	assert.Equal(t, "web  ready\n", out)

	out, stderr, code = execute(t, "--config", cfg, "check", projects, "-p", "web", "-p", "sandbox", "-p", "lab")
	assert.Equal(t, errors.ExitGraph, code)
	assert.Contains(t, out, "sandbox  blocked by lab")
	assert.Contains(t, out, "lab      disabled")
	assert.Contains(t, stderr, "not ready: sandbox, lab")
}

// --- global flags ---

func TestInvalidLogLevel(t *testing.T) {
	_, projects, cfg := fixture(t, "")
	_, stderr, code := execute(t, "--config", cfg, "--log-level", "loud", "plan", projects)
	assert.Equal(t, errors.ExitInput, code)
	assert.Contains(t, stderr, "log.level")
}

func TestMissingConfigFile(t *testing.T) {
	_, _, code := execute(t, "--config", filepath.Join(t.TempDir(), "none.yml"), "plan")
	assert.Equal(t, errors.ExitInput, code)
}

func TestVersion(t *testing.T) {
	out, _, code := execute(t, "--config", "/does/not/matter.yml", "version")
	require.Equal(t, errors.ExitOK, code)
	assert.True(t, strings.HasPrefix(out, "depbatch "))

	out, _, code = execute(t, "version", "--json")
	require.Equal(t, errors.ExitOK, code)
	var info map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "depbatch", info["program"])
}

// --- serve ---

// syncBuffer is a bytes.Buffer safe for the concurrent writes of a server.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServe_StopsOnCancel(t *testing.T) {
	_, _, cfg := fixture(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stdout bytes.Buffer
	stderr := &syncBuffer{}
	done := make(chan int, 1)
	go func() {
		done <- run(ctx, []string{"--config", cfg, "--log-level", "info", "--log-format", "json", "serve", "--port", "0"}, &stdout, stderr)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(stderr.String(), "HTTP server started")
	}, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case code := <-done:
		assert.Equal(t, errors.ExitOK, code, stderr.String())
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}

// --- tracing ---

func TestPlan_RecordsLoadSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})

	_, projects, cfg := fixture(t, "")
	_, stderr, code := execute(t, "--config", cfg, "plan", projects)
	require.Equal(t, errors.ExitOK, code, stderr)

	var names []string
	for _, span := range exporter.GetSpans() {
		names = append(names, span.Name)
	}
	assert.Contains(t, names, "project.load")
	assert.Contains(t, names, "plan")
}
