package project

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
version: "1.0"
sources:
  - name: github
    type: git
    path_pattern: "https://github.com/acme/${PROJECT}.git"
  - name: legacy
    type: svn
    path_pattern: "svn://svn.acme.org/${PROJECT}"
project_policies:
  - name: stable
    source: github
  - name: release
    source: github
    branch: release-2
  - name: old
    source: legacy
projects:
  - name: core
    project_policy: stable
    description: Core library
  - name: util
    project_policy: old
    directory: lib/util
  - name: app
    project_policy: release
    dependencies: [core, util]
  - name: tool
    project_policy: stable
    branch: develop
    dependencies: [app]
    is_enabled: false
default_projects: [app]
`

func mustResolve(t *testing.T, src string) *Catalog {
	t.Helper()
	doc, err := Parse([]byte(src), FormatYAML, "projects.yml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	c, err := Resolve(doc)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	return c
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
