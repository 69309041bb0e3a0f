package project

import (
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/kbukum/depbatch/checkout"
	"github.com/kbukum/depbatch/errors"
)

// environ is swapped in tests.
var environ = os.Environ

type hclDocument struct {
	Version         string        `hcl:"version"`
	Includes        []string      `hcl:"includes,optional"`
	Sources         []*hclSource  `hcl:"source,block"`
	Policies        []*hclPolicy  `hcl:"policy,block"`
	Projects        []*hclProject `hcl:"project,block"`
	DefaultProjects []string      `hcl:"default_projects,optional"`
}

type hclSource struct {
	Name        string `hcl:"name,label"`
	Type        string `hcl:"type"`
	PathPattern string `hcl:"path_pattern"`
	Description string `hcl:"description,optional"`
}

type hclPolicy struct {
	Name        string  `hcl:"name,label"`
	Source      string  `hcl:"source"`
	Description string  `hcl:"description,optional"`
	Branch      *string `hcl:"branch,optional"`
}

type hclProject struct {
	Name         string   `hcl:"name,label"`
	Policy       string   `hcl:"policy"`
	Directory    *string  `hcl:"directory,optional"`
	Branch       *string  `hcl:"branch,optional"`
	Description  string   `hcl:"description,optional"`
	Dependencies []string `hcl:"dependencies,optional"`
	Enabled      *bool    `hcl:"enabled,optional"`
}

// decodeHCL decodes an HCL document such as
//
//	version = "1.0"
//	source "github" {
//	  type         = "git"
//	  path_pattern = "${env.GIT_BASE}/${PROJECT}.git"
//	}
//	policy "stable" { source = "github" }
//	project "core" { policy = "stable" }
//
// Expressions see the process environment as env. ${PROJECT} evaluates to
// itself so path patterns keep their placeholder.
func decodeHCL(data []byte, filename string) (*Document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, hclParseError(filename, diags)
	}

	var raw hclDocument
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &raw); diags.HasErrors() {
		return nil, hclParseError(filename, diags)
	}

	doc := &Document{
		Version:         raw.Version,
		Includes:        raw.Includes,
		DefaultProjects: refs(raw.DefaultProjects),
	}
	for _, s := range raw.Sources {
		doc.Sources = append(doc.Sources, Source{
			Name: s.Name, Type: s.Type, PathPattern: s.PathPattern, Description: s.Description,
		})
	}
	for _, p := range raw.Policies {
		doc.Policies = append(doc.Policies, Policy{
			Name: p.Name, Source: Ref(p.Source), Description: p.Description, Branch: p.Branch,
		})
	}
	for _, p := range raw.Projects {
		doc.Projects = append(doc.Projects, Project{
			Name:         p.Name,
			Directory:    p.Directory,
			Policy:       Ref(p.Policy),
			Branch:       p.Branch,
			Description:  p.Description,
			Dependencies: refs(p.Dependencies),
			Enabled:      p.Enabled,
		})
	}
	return doc, nil
}

func evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, kv := range environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = cty.StringVal(v)
	}
	envVal := cty.EmptyObjectVal
	if len(env) > 0 {
		envVal = cty.ObjectVal(env)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env":     envVal,
			"PROJECT": cty.StringVal(checkout.Placeholder),
		},
	}
}

func hclParseError(filename string, diags hcl.Diagnostics) *errors.AppError {
	var line, col int
	for _, d := range diags {
		if d.Severity == hcl.DiagError && d.Subject != nil {
			line, col = d.Subject.Start.Line, d.Subject.Start.Column
			break
		}
	}
	return errors.ParseError(filename, line, col, diags)
}
