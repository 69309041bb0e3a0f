package project

// Supported VCS types.
const (
	VCSGit = "git"
	VCSSvn = "svn"
)

// SupportedVersions lists the document versions this package reads.
var SupportedVersions = []string{"1.0"}

// Source describes where projects are checked out from.
type Source struct {
	Name        string `yaml:"name" json:"name" validate:"required,name"`
	Type        string `yaml:"type" json:"type" validate:"required,oneof=git svn"`
	PathPattern string `yaml:"path_pattern" json:"path_pattern" validate:"required"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// DefaultBranch returns master for git and trunk for svn.
func (s *Source) DefaultBranch() string {
	switch s.Type {
	case VCSSvn:
		return "trunk"
	default:
		return "master"
	}
}

// Policy binds a source to an optional default branch.
type Policy struct {
	Name        string  `yaml:"name" json:"name" validate:"required,name"`
	Source      Ref     `yaml:"source" json:"source" validate:"required"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Branch      *string `yaml:"branch,omitempty" json:"branch,omitempty"`
}

// Project is a single checkout unit.
type Project struct {
	Name         string  `yaml:"name" json:"name" validate:"required,name"`
	Directory    *string `yaml:"directory,omitempty" json:"directory,omitempty"`
	Policy       Ref     `yaml:"project_policy" json:"project_policy" validate:"required"`
	Branch       *string `yaml:"branch,omitempty" json:"branch,omitempty"`
	Description  string  `yaml:"description,omitempty" json:"description,omitempty"`
	Dependencies []Ref   `yaml:"dependencies,omitempty" json:"dependencies,omitempty" validate:"dive,required"`
	Enabled      *bool   `yaml:"is_enabled,omitempty" json:"is_enabled,omitempty"`
}

// Document is a decoded project file before references are resolved.
type Document struct {
	Version         string    `yaml:"version" json:"version" validate:"required"`
	Includes        []string  `yaml:"includes,omitempty" json:"includes,omitempty"`
	Sources         []Source  `yaml:"sources" json:"sources" validate:"dive"`
	Policies        []Policy  `yaml:"project_policies" json:"project_policies" validate:"dive"`
	Projects        []Project `yaml:"projects" json:"projects" validate:"dive"`
	DefaultProjects []Ref     `yaml:"default_projects,omitempty" json:"default_projects,omitempty" validate:"dive,required"`

	// Files lists every file read to produce the document, the root first.
	Files []string `yaml:"-" json:"-"`
}
