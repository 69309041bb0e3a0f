// Package render writes plans in the supported output formats.
package render

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/depbatch/errors"
	"github.com/kbukum/depbatch/planner"
)

// Format names an output format.
type Format string

const (
	// FormatMrconfig is the configuration file of the mr tool: one section
	// per project in plan order.
	FormatMrconfig Format = "mrconfig"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

var contentTypes = map[Format]string{
	FormatMrconfig: "text/plain; charset=utf-8",
	FormatJSON:     "application/json; charset=utf-8",
	FormatYAML:     "application/yaml; charset=utf-8",
}

// Formats lists the supported formats.
func Formats() []string {
	return []string{string(FormatMrconfig), string(FormatJSON), string(FormatYAML)}
}

// ParseFormat converts a user supplied format name. The empty string
// selects mrconfig.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatMrconfig, nil
	case FormatMrconfig, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", errors.InvalidInput("format", fmt.Sprintf("unsupported output format %q", s)).
			WithDetail("supported", Formats())
	}
}

// ContentType returns the MIME type of f.
func ContentType(f Format) string {
	if ct, ok := contentTypes[f]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Write renders plan to w.
func Write(w io.Writer, plan *planner.Plan, format Format) error {
	if plan == nil {
		return errors.InvalidInput("plan", "plan is nil")
	}
	switch format {
	case FormatMrconfig:
		return writeMrconfig(w, plan)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(plan); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.InvalidInput("format", fmt.Sprintf("unsupported output format %q", format)).
			WithDetail("supported", Formats())
	}
}

// String renders plan into a string.
func String(plan *planner.Plan, format Format) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, plan, format); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeMrconfig(w io.Writer, plan *planner.Plan) error {
	bw := bufio.NewWriter(w)
	for _, e := range plan.Entries() {
		fmt.Fprintf(bw, "[%s]\n", e.Directory)
		if e.Description != "" {
			fmt.Fprintf(bw, "# %s\n", e.Description)
		}
		fmt.Fprintf(bw, "checkout = %s\n\n", e.Command)
	}
	return bw.Flush()
}
