package project

import (
	"fmt"
	"sync"

	"github.com/kbukum/depbatch/dag"
	"github.com/kbukum/depbatch/errors"
	"github.com/kbukum/depbatch/validation"
)

// ID addresses a project inside its Catalog.
type ID int

type entry struct {
	project   Project
	policy    int
	directory string
	branch    string
	deps      []ID
}

// Catalog is a validated, resolved set of projects. It is safe for
// concurrent use; only the enabled state of projects changes after Resolve.
type Catalog struct {
	sources      []Source
	policies     []Policy
	policySource []int
	entries      []entry
	byName       map[string]ID
	defaults     []ID
	files        []string

	mu      sync.RWMutex
	enabled []bool
}

// Resolve validates doc and builds its Catalog. Documents with pending
// includes are rejected; Load merges includes before resolution.
func Resolve(doc *Document) (*Catalog, error) {
	if doc == nil {
		return nil, errors.InvalidInput("document", "document is nil")
	}
	if err := checkVersion(doc, ""); err != nil {
		return nil, err
	}
	if len(doc.Includes) > 0 {
		return nil, errors.InvalidInput("includes", "includes are not resolved")
	}

	v := validation.New()
	v.Merge("", validation.Struct(doc))

	c := &Catalog{
		sources:  doc.Sources,
		policies: doc.Policies,
		byName:   make(map[string]ID, len(doc.Projects)),
		files:    doc.Files,
	}

	sourceIdx := make(map[string]int, len(doc.Sources))
	seen := make(map[string]bool)
	for i, s := range doc.Sources {
		v.Unique(fmt.Sprintf("sources[%d].name", i), s.Name, seen)
		if _, ok := sourceIdx[s.Name]; !ok {
			sourceIdx[s.Name] = i
		}
	}

	policyIdx := make(map[string]int, len(doc.Policies))
	c.policySource = make([]int, len(doc.Policies))
	seen = make(map[string]bool)
	for i, p := range doc.Policies {
		field := fmt.Sprintf("project_policies[%d]", i)
		v.Unique(field+".name", p.Name, seen)
		validation.Known(v, field+".source", string(p.Source), "source", sourceIdx)
		c.policySource[i] = sourceIdx[string(p.Source)]
		if _, ok := policyIdx[p.Name]; !ok {
			policyIdx[p.Name] = i
		}
	}

	seen = make(map[string]bool)
	for i, p := range doc.Projects {
		v.Unique(fmt.Sprintf("projects[%d].name", i), p.Name, seen)
		if _, ok := c.byName[p.Name]; !ok {
			c.byName[p.Name] = ID(i)
		}
	}

	dirs := make(map[string]bool, len(doc.Projects))
	c.entries = make([]entry, len(doc.Projects))
	c.enabled = make([]bool, len(doc.Projects))
	for i, p := range doc.Projects {
		field := fmt.Sprintf("projects[%d]", i)
		validation.Known(v, field+".project_policy", string(p.Policy), "policy", policyIdx)
		e := entry{project: p, policy: policyIdx[string(p.Policy)], directory: p.Name}
		if p.Directory != nil {
			v.Required(field+".directory", *p.Directory)
			e.directory = *p.Directory
		}
		if e.directory != "" && dirs[e.directory] {
			v.AddError(field+".directory", fmt.Sprintf("directory %q is used by another project", e.directory))
		}
		dirs[e.directory] = true

		for j, d := range p.Dependencies {
			validation.Known(v, fmt.Sprintf("%s.dependencies[%d]", field, j), string(d), "project", c.byName)
			if id, ok := c.byName[string(d)]; ok {
				e.deps = append(e.deps, id)
			}
		}
		c.entries[i] = e
		c.enabled[i] = p.Enabled == nil || *p.Enabled
	}

	for i, d := range doc.DefaultProjects {
		validation.Known(v, fmt.Sprintf("default_projects[%d]", i), string(d), "project", c.byName)
		if id, ok := c.byName[string(d)]; ok {
			c.defaults = append(c.defaults, id)
		}
	}

	if err := v.Validate(); err != nil {
		return nil, err
	}

	for i := range c.entries {
		c.entries[i].branch = c.effectiveBranch(i)
	}
	return c, nil
}

func (c *Catalog) effectiveBranch(i int) string {
	e := c.entries[i]
	if e.project.Branch != nil {
		return *e.project.Branch
	}
	if b := c.policies[e.policy].Branch; b != nil {
		return *b
	}
	return c.sources[c.policySource[e.policy]].DefaultBranch()
}

// Len returns the number of projects.
func (c *Catalog) Len() int { return len(c.entries) }

// Files lists the files the catalog was loaded from, if any.
func (c *Catalog) Files() []string { return c.files }

// Lookup returns the ID of the named project.
func (c *Catalog) Lookup(name string) (ID, bool) {
	id, ok := c.byName[name]
	return id, ok
}

func (c *Catalog) valid(id ID) bool { return id >= 0 && int(id) < len(c.entries) }

// Project returns the project record for id.
func (c *Catalog) Project(id ID) Project { return c.entries[id].project }

// Policy returns the checkout policy of project id.
func (c *Catalog) Policy(id ID) Policy { return c.policies[c.entries[id].policy] }

// Source returns the source project id is checked out from.
func (c *Catalog) Source(id ID) Source {
	return c.sources[c.policySource[c.entries[id].policy]]
}

// Directory returns the checkout directory of project id.
func (c *Catalog) Directory(id ID) string { return c.entries[id].directory }

// Branch returns the effective branch of project id: its own, else its
// policy's, else the source default.
func (c *Catalog) Branch(id ID) string { return c.entries[id].branch }

// Dependencies returns the direct dependencies of project id.
func (c *Catalog) Dependencies(id ID) []ID {
	return append([]ID(nil), c.entries[id].deps...)
}

// Node returns the graph node of project id.
func (c *Catalog) Node(id ID) Node { return Node{c: c, id: id} }

// NodeByName returns the graph node of the named project.
func (c *Catalog) NodeByName(name string) (Node, error) {
	id, ok := c.byName[name]
	if !ok {
		return Node{}, errors.NotFound("project", name)
	}
	return c.Node(id), nil
}

// Nodes returns the graph nodes of the named projects in order. Every name
// is checked; the error lists all unknown names.
func (c *Catalog) Nodes(names ...string) ([]dag.Node, error) {
	out := make([]dag.Node, 0, len(names))
	var missing []string
	for _, n := range names {
		id, ok := c.byName[n]
		if !ok {
			missing = append(missing, n)
			continue
		}
		out = append(out, c.Node(id))
	}
	if len(missing) > 0 {
		return nil, errors.NotFound("project", missing[0]).WithDetail("projects", missing)
	}
	return out, nil
}

// Defaults returns the names of the default projects.
func (c *Catalog) Defaults() []string {
	out := make([]string, len(c.defaults))
	for i, id := range c.defaults {
		out[i] = c.entries[id].project.Name
	}
	return out
}

// Names returns every project name in document order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.project.Name
	}
	return out
}

// Name renders a node for messages. Nodes of this catalog render as their
// project name; anything else falls back to fmt.
func (c *Catalog) Name(n dag.Node) string {
	if pn, ok := n.(Node); ok && pn.c == c && c.valid(pn.id) {
		return c.entries[pn.id].project.Name
	}
	return fmt.Sprint(n)
}

// IsEnabled reports whether project id is enabled.
func (c *Catalog) IsEnabled(id ID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.enabled[id]
}

// Enable marks project id as enabled.
func (c *Catalog) Enable(id ID) { c.setEnabled(id, true) }

// Disable marks project id as disabled. Planning fails while a disabled
// project is part of the closure.
func (c *Catalog) Disable(id ID) { c.setEnabled(id, false) }

func (c *Catalog) setEnabled(id ID, on bool) {
	c.mu.Lock()
	c.enabled[id] = on
	c.mu.Unlock()
}

// EnableAll enables project id and everything it transitively depends on.
// It returns the number of projects that were enabled by the call.
func (c *Catalog) EnableAll(id ID) (int, error) {
	root := c.Node(id)
	flip := func(n dag.Node) int {
		pn := n.(Node)
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.enabled[pn.id] {
			return 0
		}
		c.enabled[pn.id] = true
		return 1
	}
	count, err := dag.FoldDistinct(root, flip, func(acc, v int) dag.Step[int] {
		return dag.Continue(acc + v)
	}, 0)
	if err != nil {
		return 0, errors.FromGraph(err, c.Name)
	}
	return count + flip(root), nil
}
