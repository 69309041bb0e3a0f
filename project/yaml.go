package project

import (
	"bytes"
	stderrors "errors"
	"io"
	"regexp"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/depbatch/errors"
)

var yamlPosition = regexp.MustCompile(`line (\d+)(?:[:,] column (\d+))?`)

// decodeYAML decodes a YAML document. Unknown keys are rejected. Legacy
// documents tag their entries (!Source, !ProjectPolicy, !Project) and link
// them with anchors; tags on mappings carry no meaning here and are ignored.
func decodeYAML(data []byte, filename string) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.ParseError(filename, 0, 0, err).WithDetail("reason", "empty document")
		}
		line, col := yamlErrorPosition(err)
		return nil, errors.ParseError(filename, line, col, err)
	}
	return &doc, nil
}

// yamlErrorPosition extracts the first line and column reported by the
// decoder. Zero means unknown.
func yamlErrorPosition(err error) (line, col int) {
	m := yamlPosition.FindStringSubmatch(err.Error())
	if m == nil {
		return 0, 0
	}
	line, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		col, _ = strconv.Atoi(m[2])
	}
	return line, col
}
