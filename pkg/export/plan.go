package export

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Plan describes a batch export run, loaded from a YAML file.
type Plan struct {
	// Customers to export. Empty means every customer in the store.
	Customers []string `yaml:"customers"`

	// OutputDir overrides the exporter's output directory when set.
	OutputDir string `yaml:"output_dir"`

	// Schedule is a cron expression for recurring runs. Empty means a
	// single immediate run.
	Schedule string `yaml:"schedule"`

	// Upload controls whether archives are pushed to the artifact store.
	Upload bool `yaml:"upload"`

	// KeyPrefix overrides the artifact key prefix when set.
	KeyPrefix string `yaml:"key_prefix"`

	// Concurrency overrides the exporter's parallelism when positive.
	Concurrency int `yaml:"concurrency"`
}

// LoadPlan reads and validates an export plan from a YAML file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan file %s: %w", path, err)
	}

	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan %s: %w", path, err)
	}
	return &plan, nil
}

// Validate checks plan fields for obvious mistakes.
func (p *Plan) Validate() error {
	if p.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", p.Concurrency)
	}
	for i, c := range p.Customers {
		if c == "" {
			return fmt.Errorf("customers[%d] is empty", i)
		}
	}
	return nil
}

// Apply overlays the plan's overrides onto an exporter config.
func (p *Plan) Apply(cfg Config) Config {
	if p.OutputDir != "" {
		cfg.OutputDir = p.OutputDir
	}
	if p.KeyPrefix != "" {
		cfg.KeyPrefix = p.KeyPrefix
	}
	if p.Concurrency > 0 {
		cfg.Concurrency = p.Concurrency
	}
	return cfg
}
