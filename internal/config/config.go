package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Defaults for the generation run.
const (
	DefaultModel         = "gemini-2.0-flash"
	DefaultRegion        = "us-east-1"
	DefaultRequest       = "an S3 bucket and a Lambda function"
	DefaultOutput        = "generated_infrastructure.tf"
	DefaultMaxRetries    = 3
	DefaultRetryBase     = time.Second
	DefaultRetryMaxDelay = 30 * time.Second
	DefaultEnvFile       = ".env"

	configName = ".tfgen"
	envPrefix  = "TFGEN"
)

// DefaultFormatter is the command run against the written file. The file
// path is appended as the last argument.
var DefaultFormatter = []string{"terraform", "fmt"}

// Config is the resolved configuration for one run.
type Config struct {
	Model          string
	APIKeyEnv      string
	Region         string
	DefaultRegion  string
	Request        string
	PromptFile     string
	Output         string
	Force          bool
	MaxRetries     int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration
	Timeout        time.Duration
	Temperature    float32
	BaseURL        string
	APIVersion     string
	Formatter      []string
	BuiltinFmt     bool
	ValidateHCL    bool
	StripFences    bool
	EnvFile        string
	Debug          bool
}

// SetDefaults registers the defaults on v so a config file or environment
// variable only needs to name the keys it changes.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("model", DefaultModel)
	v.SetDefault("api-key-env", DefaultAPIKeyEnv)
	v.SetDefault("default-region", DefaultRegion)
	v.SetDefault("request", DefaultRequest)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("max-retries", DefaultMaxRetries)
	v.SetDefault("retry-base-delay", DefaultRetryBase)
	v.SetDefault("retry-max-delay", DefaultRetryMaxDelay)
	v.SetDefault("formatter", DefaultFormatter)
	v.SetDefault("validate", true)
	v.SetDefault("env-file", DefaultEnvFile)
}

// Load reads the current state of v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Model:          v.GetString("model"),
		APIKeyEnv:      v.GetString("api-key-env"),
		Region:         strings.TrimSpace(v.GetString("region")),
		DefaultRegion:  v.GetString("default-region"),
		Request:        v.GetString("request"),
		PromptFile:     v.GetString("prompt-file"),
		Output:         v.GetString("output"),
		Force:          v.GetBool("force"),
		MaxRetries:     v.GetInt("max-retries"),
		RetryBaseDelay: v.GetDuration("retry-base-delay"),
		RetryMaxDelay:  v.GetDuration("retry-max-delay"),
		Timeout:        v.GetDuration("timeout"),
		Temperature:    float32(v.GetFloat64("temperature")),
		BaseURL:        v.GetString("base-url"),
		APIVersion:     v.GetString("api-version"),
		Formatter:      v.GetStringSlice("formatter"),
		BuiltinFmt:     v.GetBool("builtin-fmt"),
		ValidateHCL:    v.GetBool("validate"),
		StripFences:    v.GetBool("strip-fences"),
		EnvFile:        v.GetString("env-file"),
		Debug:          v.GetBool("debug"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Model == "" {
		errs = append(errs, errors.New("model must not be empty"))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output must not be empty"))
	}
	if c.MaxRetries < 1 {
		errs = append(errs, fmt.Errorf("max-retries must be at least 1, got %d", c.MaxRetries))
	}
	if c.RetryBaseDelay < 0 || c.RetryMaxDelay < 0 || c.Timeout < 0 {
		errs = append(errs, errors.New("durations must not be negative"))
	}
	if c.RetryBaseDelay > 0 && c.RetryMaxDelay <= 0 {
		errs = append(errs, errors.New("retry-max-delay must be positive when retry-base-delay is set"))
	}
	if len(c.Formatter) == 0 {
		errs = append(errs, errors.New("formatter must name a command"))
	}
	if c.DefaultRegion == "" {
		errs = append(errs, errors.New("default-region must not be empty"))
	}
	return errors.Join(errs...)
}

// BindEnv makes TFGEN_-prefixed environment variables override keys in v,
// with dashes in key names written as underscores.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// InitConfig loads the config file into v. An explicit path must exist;
// otherwise .tfgen.{yml,yaml,json} is searched for in the working directory
// and then $HOME, and a missing file is not an error. ${env://VAR}
// references in the file are expanded before parsing. Environment variables
// prefixed with TFGEN_ override file values.
func InitConfig(v *viper.Viper, path string, lookup func(string) string) error {
	BindEnv(v)

	if path == "" {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				return nil
			}
			return fmt.Errorf("error reading config file: %w", err)
		}
		path = v.ConfigFileUsed()
	}

	return loadWithEnvSubstitution(v, path, lookup)
}

func loadWithEnvSubstitution(v *viper.Viper, path string, lookup func(string) string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	content := string(raw)
	if HasEnvRefs(content) {
		content, err = ExpandEnv(content, lookup)
		if err != nil {
			return fmt.Errorf("error reading config file '%s': %w", path, err)
		}
	}

	configType := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".json") {
		configType = "json"
	}
	v.SetConfigType(configType)
	if err := v.ReadConfig(strings.NewReader(content)); err != nil {
		return fmt.Errorf("error parsing config file '%s': %w", path, err)
	}
	return nil
}
