package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", cfg.Model, DefaultModel)
	}
	if cfg.APIKeyEnv != DefaultAPIKeyEnv {
		t.Errorf("APIKeyEnv = %q, want %q", cfg.APIKeyEnv, DefaultAPIKeyEnv)
	}
	if cfg.DefaultRegion != "us-east-1" {
		t.Errorf("DefaultRegion = %q, want us-east-1", cfg.DefaultRegion)
	}
	if cfg.Output != "generated_infrastructure.tf" {
		t.Errorf("Output = %q", cfg.Output)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryBaseDelay != time.Second || cfg.RetryMaxDelay != 30*time.Second {
		t.Errorf("retry delays = %v/%v", cfg.RetryBaseDelay, cfg.RetryMaxDelay)
	}
	if cfg.Timeout != 0 {
		t.Errorf("Timeout = %v, want 0", cfg.Timeout)
	}
	if strings.Join(cfg.Formatter, " ") != "terraform fmt" {
		t.Errorf("Formatter = %v", cfg.Formatter)
	}
	if !cfg.ValidateHCL {
		t.Error("ValidateHCL should default to true")
	}
	if cfg.Force || cfg.StripFences || cfg.BuiltinFmt {
		t.Error("boolean switches should default to false")
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	v := newViper()
	v.Set("max-retries", 0)
	v.Set("output", "")

	_, err := Load(v)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "max-retries") || !strings.Contains(err.Error(), "output") {
		t.Errorf("error should report every problem, got %v", err)
	}
}

func TestLoad_RejectsUncappedBackoff(t *testing.T) {
	tests := []struct {
		name    string
		base    time.Duration
		max     time.Duration
		wantErr bool
	}{
		{"zero max with base", time.Second, 0, true},
		{"zero max without base", 0, 0, false},
		{"both set", time.Second, time.Minute, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set("retry-base-delay", tt.base)
			v.Set("retry-max-delay", tt.max)

			_, err := Load(v)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), "retry-max-delay") {
				t.Errorf("error should name retry-max-delay, got %v", err)
			}
		})
	}
}

func TestInitConfig_ExplicitFileWithSubstitution(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tfgen.yml")
	content := `model: gemini-2.5-pro
output: ${env://OUT_DIR}/main.tf
default-region: ${env://TF_REGION:-eu-central-1}
max-retries: 5
retry-base-delay: 250ms
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	v := newViper()
	lookup := mapLookup(map[string]string{"OUT_DIR": "/tmp/infra"})
	if err := InitConfig(v, path, lookup); err != nil {
		t.Fatalf("InitConfig() error: %v", err)
	}

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Model != "gemini-2.5-pro" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Output != "/tmp/infra/main.tf" {
		t.Errorf("Output = %q", cfg.Output)
	}
	if cfg.DefaultRegion != "eu-central-1" {
		t.Errorf("DefaultRegion = %q", cfg.DefaultRegion)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d", cfg.MaxRetries)
	}
	if cfg.RetryBaseDelay != 250*time.Millisecond {
		t.Errorf("RetryBaseDelay = %v", cfg.RetryBaseDelay)
	}
}

func TestInitConfig_MissingRequiredVariable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tfgen.yml")
	if err := os.WriteFile(path, []byte("base-url: ${env://PROXY_URL}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := InitConfig(newViper(), path, mapLookup(nil))
	if err == nil || !strings.Contains(err.Error(), "PROXY_URL") {
		t.Fatalf("expected substitution error naming PROXY_URL, got %v", err)
	}
}

func TestInitConfig_SearchWithoutFileIsNotAnError(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	if err := InitConfig(newViper(), "", mapLookup(nil)); err != nil {
		t.Fatalf("InitConfig() with no config file should succeed, got %v", err)
	}
}

func TestInitConfig_EnvironmentOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TFGEN_MAX_RETRIES", "7")

	v := newViper()
	if err := InitConfig(v, "", mapLookup(nil)); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxRetries != 7 {
		t.Errorf("MaxRetries = %d, want 7 from TFGEN_MAX_RETRIES", cfg.MaxRetries)
	}
}

func TestConfigYAML(t *testing.T) {
	cfg, err := Load(newViper())
	if err != nil {
		t.Fatal(err)
	}

	out, err := cfg.YAML()
	if err != nil {
		t.Fatalf("YAML() error: %v", err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, out)
	}
	if decoded["retry-max-delay"] != "30s" {
		t.Errorf("retry-max-delay = %v, want 30s", decoded["retry-max-delay"])
	}
	if decoded["output"] != DefaultOutput {
		t.Errorf("output = %v", decoded["output"])
	}
	if _, ok := decoded["region"]; ok {
		t.Error("unset region should be omitted")
	}
}
