package project

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kbukum/depbatch/errors"
)

// Format selects the decoder for a project document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// ParseFormat converts a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "hcl":
		return FormatHCL, nil
	default:
		return "", errors.InvalidInput("format", fmt.Sprintf("unsupported document format %q", s))
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.InvalidInput("path", fmt.Sprintf("cannot tell the format of %q", path))
	}
	return ParseFormat(ext)
}

// Parse decodes a single document. Includes are left untouched.
func Parse(data []byte, format Format, filename string) (*Document, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(data, filename)
	case FormatHCL:
		return decodeHCL(data, filename)
	default:
		return nil, errors.InvalidInput("format", fmt.Sprintf("unsupported document format %q", format))
	}
}

// Load reads the document at path and merges its includes. Include paths
// are relative to the including file. Definitions in the including file win
// over included ones; among includes the first definition of a name wins.
// A file reached twice is read once, a file including itself through a chain
// of includes is an error.
func Load(path string) (*Document, error) {
	l := &includeLoader{
		stack:    make(map[string]bool),
		resolved: make(map[string]bool),
	}
	doc, err := l.load(path)
	if err != nil {
		return nil, err
	}
	doc.Files = l.files
	return doc, nil
}

type includeLoader struct {
	stack    map[string]bool // current include chain
	resolved map[string]bool // already merged
	files    []string
}

func (l *includeLoader) load(path string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if l.stack[abs] {
		return nil, errors.InvalidInput("includes", fmt.Sprintf("circular include of %s", path)).
			WithDetail("file", path)
	}
	if l.resolved[abs] {
		return nil, nil
	}
	l.stack[abs] = true
	defer delete(l.stack, abs)

	doc, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := checkVersion(doc, path); err != nil {
		return nil, err
	}
	l.resolved[abs] = true
	l.files = append(l.files, abs)

	dir := filepath.Dir(path)
	for _, inc := range doc.Includes {
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(dir, inc)
		}
		sub, err := l.load(inc)
		if err != nil {
			return nil, err
		}
		if sub != nil {
			merge(doc, sub)
		}
	}
	doc.Includes = nil
	return doc, nil
}

func readFile(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotFound("project file", path).WithCause(err)
		}
		return nil, errors.Internal(err)
	}
	return Parse(data, format, path)
}

func checkVersion(doc *Document, file string) error {
	if slices.Contains(SupportedVersions, doc.Version) {
		return nil
	}
	err := errors.UnsupportedVersion(doc.Version, SupportedVersions...)
	if file != "" {
		err = err.WithDetail("file", file)
	}
	return err
}

// merge adds the definitions of src whose names dst does not define yet.
func merge(dst, src *Document) {
	dst.Sources = appendMissing(dst.Sources, src.Sources, func(s Source) string { return s.Name })
	dst.Policies = appendMissing(dst.Policies, src.Policies, func(p Policy) string { return p.Name })
	dst.Projects = appendMissing(dst.Projects, src.Projects, func(p Project) string { return p.Name })
	if len(dst.DefaultProjects) == 0 {
		dst.DefaultProjects = src.DefaultProjects
	}
}

func appendMissing[T any](dst, src []T, name func(T) string) []T {
	seen := make(map[string]bool, len(dst))
	for _, v := range dst {
		seen[name(v)] = true
	}
	for _, v := range src {
		if seen[name(v)] {
			continue
		}
		seen[name(v)] = true
		dst = append(dst, v)
	}
	return dst
}
