package config

import (
	"gopkg.in/yaml.v3"
)

// displayConfig mirrors Config with the key names used in config files and
// durations rendered as strings.
type displayConfig struct {
	Model          string   `yaml:"model"`
	APIKeyEnv      string   `yaml:"api-key-env"`
	Region         string   `yaml:"region,omitempty"`
	DefaultRegion  string   `yaml:"default-region"`
	Request        string   `yaml:"request"`
	PromptFile     string   `yaml:"prompt-file,omitempty"`
	Output         string   `yaml:"output"`
	Force          bool     `yaml:"force"`
	MaxRetries     int      `yaml:"max-retries"`
	RetryBaseDelay string   `yaml:"retry-base-delay"`
	RetryMaxDelay  string   `yaml:"retry-max-delay"`
	Timeout        string   `yaml:"timeout"`
	Temperature    float32  `yaml:"temperature,omitempty"`
	BaseURL        string   `yaml:"base-url,omitempty"`
	APIVersion     string   `yaml:"api-version,omitempty"`
	Formatter      []string `yaml:"formatter,flow"`
	BuiltinFmt     bool     `yaml:"builtin-fmt"`
	Validate       bool     `yaml:"validate"`
	StripFences    bool     `yaml:"strip-fences"`
	EnvFile        string   `yaml:"env-file"`
	Debug          bool     `yaml:"debug"`
}

// MarshalYAML implements yaml.Marshaler so the resolved config can be
// printed in the same shape a .tfgen.yml file is written in.
func (c Config) MarshalYAML() (any, error) {
	return displayConfig{
		Model:          c.Model,
		APIKeyEnv:      c.APIKeyEnv,
		Region:         c.Region,
		DefaultRegion:  c.DefaultRegion,
		Request:        c.Request,
		PromptFile:     c.PromptFile,
		Output:         c.Output,
		Force:          c.Force,
		MaxRetries:     c.MaxRetries,
		RetryBaseDelay: c.RetryBaseDelay.String(),
		RetryMaxDelay:  c.RetryMaxDelay.String(),
		Timeout:        c.Timeout.String(),
		Temperature:    c.Temperature,
		BaseURL:        c.BaseURL,
		APIVersion:     c.APIVersion,
		Formatter:      c.Formatter,
		BuiltinFmt:     c.BuiltinFmt,
		Validate:       c.ValidateHCL,
		StripFences:    c.StripFences,
		EnvFile:        c.EnvFile,
		Debug:          c.Debug,
	}, nil
}

// YAML renders c as a config file document.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
