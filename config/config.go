package config

import (
	"fmt"
	"slices"

	"github.com/kbukum/depbatch/logger"
	"github.com/kbukum/depbatch/observability"
	"github.com/kbukum/depbatch/server"
	"github.com/kbukum/depbatch/validation"
)

// Config is the complete depbatch configuration.
type Config struct {
	Name          string               `yaml:"name" mapstructure:"name"`
	Environment   string               `yaml:"environment" mapstructure:"environment"`
	Log           logger.Config        `yaml:"log" mapstructure:"log"`
	Plan          PlanConfig           `yaml:"plan" mapstructure:"plan"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// PlanConfig holds defaults for the plan and check commands.
type PlanConfig struct {
	// ProjectFile is the project document read when no file argument is given.
	ProjectFile string `yaml:"project_file" mapstructure:"project_file"`
	// Format is the output format: mrconfig, json or yaml.
	Format string `yaml:"format" mapstructure:"format" validate:"omitempty,oneof=mrconfig json yaml"`
	// Projects are the roots planned when none are named on the command line.
	Projects []string `yaml:"projects" mapstructure:"projects" validate:"dive,name"`
	// ExcludeRoots leaves the requested projects out of the plan.
	ExcludeRoots bool `yaml:"exclude_roots" mapstructure:"exclude_roots"`
	// Watch re-plans whenever the project document changes.
	Watch bool `yaml:"watch" mapstructure:"watch"`
}

// ApplyDefaults applies default values to every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "depbatch"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	c.Log.ApplyDefaults()
	c.Plan.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate validates every section.
func (c *Config) Validate() error {
	validEnvs := []string{"development", "staging", "production", "test"}
	if !slices.Contains(validEnvs, c.Environment) {
		return fmt.Errorf("config.environment must be one of %v (got: %s)", validEnvs, c.Environment)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("config.log: %w", err)
	}
	if err := c.Plan.Validate(); err != nil {
		return fmt.Errorf("config.plan: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("config.observability: %w", err)
	}
	return nil
}

// ApplyDefaults applies default values to plan configuration.
func (c *PlanConfig) ApplyDefaults() {
	if c.ProjectFile == "" {
		c.ProjectFile = "projects.yml"
	}
	if c.Format == "" {
		c.Format = "mrconfig"
	}
}

// Validate validates plan configuration.
func (c *PlanConfig) Validate() error {
	return validation.Struct(c)
}
