// Package validation provides input validation for project documents and
// configuration.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection for cross-references that
// tags cannot express.
//
// # Struct Tag Validation
//
//	type Source struct {
//	    Name string `yaml:"name" validate:"required,name"`
//	    Type string `yaml:"type" validate:"required,oneof=git svn"`
//	}
//	err := validation.Struct(src)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Unique("projects[0].name", p.Name, seen)
//	validation.Known(v, "projects[0].policy", p.Policy, "policy", policies)
//	err := v.Validate()
package validation
