// Package checkout renders the shell command that checks a project out of
// its version control system. Commands are text; nothing is executed.
package checkout

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/kbukum/depbatch/errors"
)

// Placeholder is replaced by the project name in a path pattern.
const Placeholder = "${PROJECT}"

// Params are the values substituted into a checkout command.
type Params struct {
	Project   string
	Branch    string
	Directory string
}

// Builder renders the checkout command for url into params.Directory.
type Builder func(url string, params Params) string

var (
	mu       sync.RWMutex
	builders = map[string]Builder{
		"git": gitCommand,
		"svn": svnCommand,
	}
)

// Register adds or replaces the builder for a VCS type.
func Register(vcsType string, b Builder) {
	mu.Lock()
	defer mu.Unlock()
	builders[vcsType] = b
}

// Types returns the registered VCS types, sorted.
func Types() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(builders))
	for t := range builders {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Command substitutes the project name into pattern and renders the
// checkout command for vcsType.
func Command(vcsType, pattern string, params Params) (string, error) {
	mu.RLock()
	b, ok := builders[vcsType]
	mu.RUnlock()
	if !ok {
		return "", errors.InvalidInput("type", fmt.Sprintf("unknown VCS type %q", vcsType)).
			WithDetail("supported", Types())
	}
	url := strings.ReplaceAll(pattern, Placeholder, params.Project)
	return b(url, params), nil
}

func gitCommand(url string, p Params) string {
	cmd := fmt.Sprintf("git clone '%s' '%s'", url, p.Directory)
	if p.Branch != "master" {
		cmd += fmt.Sprintf("; git checkout '%s'", p.Branch)
	}
	return cmd
}

func svnCommand(url string, p Params) string {
	switch p.Branch {
	case "trunk":
		url += "/trunk"
	case "":
	default:
		url += "/branches/" + p.Branch
	}
	return fmt.Sprintf("svn checkout '%s' '%s'", url, p.Directory)
}
