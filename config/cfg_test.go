package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rupor-github/gencfg"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
document:
  format: wxr
  fix_zip: false
  theme:
    name: "Acme Pages"
    version: "2.1.0"
  reconcile:
    enable: true
    small_set_limit: 5
    overlap_percent: 40
  assets:
    localize: false
    jpeq_quality_level: 85
inference:
  model: test-model
  timeout: 90s
logging:
  console:
    level: normal
  file:
    level: debug
    destination: /tmp/test.log
    mode: append
reporting:
  destination: /tmp/test-report.zip
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}

	if cfg.Document.Format != OutputFmtWxr {
		t.Errorf("Format = %v, want %v", cfg.Document.Format, OutputFmtWxr)
	}

	if cfg.Document.FixZip {
		t.Error("Expected FixZip to be false")
	}

	if cfg.Document.Theme.Name != "Acme Pages" {
		t.Errorf("Theme.Name = %q, want %q", cfg.Document.Theme.Name, "Acme Pages")
	}

	if cfg.Document.Reconcile.SmallSetLimit != 5 {
		t.Errorf("Reconcile.SmallSetLimit = %d, want 5", cfg.Document.Reconcile.SmallSetLimit)
	}

	if cfg.Document.Reconcile.OverlapPercent != 40 {
		t.Errorf("Reconcile.OverlapPercent = %d, want 40", cfg.Document.Reconcile.OverlapPercent)
	}

	if cfg.Document.Assets.JPEGQuality != 85 {
		t.Errorf("Assets.JPEGQuality = %d, want 85", cfg.Document.Assets.JPEGQuality)
	}

	if cfg.Inference.Model != "test-model" {
		t.Errorf("Inference.Model = %q, want %q", cfg.Inference.Model, "test-model")
	}

	if cfg.Inference.Timeout != 90*time.Second {
		t.Errorf("Inference.Timeout = %v, want 90s", cfg.Inference.Timeout)
	}
}

func TestLoadConfiguration_MergeWithDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "partial.yaml")

	// Partial config that only overrides some values
	partialConfig := `version: 1
document:
  fix_zip: false
`

	if err := os.WriteFile(configPath, []byte(partialConfig), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Document.FixZip {
		t.Error("Expected FixZip to be false from config file")
	}

	// Check that default values are still present for unspecified fields
	if cfg.Inference.Endpoint == "" {
		t.Error("Inference.Endpoint should have default value")
	}

	if cfg.Document.Theme.Version == "" {
		t.Error("Theme.Version should have default value")
	}

	if cfg.Document.Reconcile.SmallSetLimit != 3 {
		t.Errorf("Reconcile.SmallSetLimit = %d, want default 3", cfg.Document.Reconcile.SmallSetLimit)
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `version: 1
document:
  fix_zip: true
  invalid indent
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "unknown.yaml")

	configWithUnknown := `version: 1
unknown_field: value
document:
  fix_zip: true
`

	if err := os.WriteFile(configPath, []byte(configWithUnknown), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected error for unknown fields")
	}
}

func TestLoadConfiguration_ValidationError(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_values.yaml")

	// Invalid version number
	configWithInvalidVersion := `version: 2
document:
  fix_zip: true
`

	if err := os.WriteFile(configPath, []byte(configWithInvalidVersion), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected validation error for invalid version")
	}
}

func TestLoadConfiguration_BadReconcileThreshold(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "threshold.yaml")

	badThreshold := `version: 1
document:
  reconcile:
    overlap_percent: 250
`

	if err := os.WriteFile(configPath, []byte(badThreshold), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected validation error for overlap_percent out of range")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	if len(data) == 0 {
		t.Error("Prepare() returned empty data")
	}

	// Verify it's valid YAML by trying to unmarshal
	cfg := &Config{}
	_, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestPrepare_KeepsNameTemplate(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	// output_name_template is excluded from expansion so the program can
	// expand it per page later
	if !strings.Contains(string(data), "{{ .Slug }}") {
		t.Errorf("Prepared config lost the name template:\n%s", data)
	}
}

func TestDump(t *testing.T) {
	cfg := &Config{
		Version: 1,
		Document: DocumentConfig{
			Format: OutputFmtTheme,
			FixZip: true,
			Theme: ThemeConfig{
				Name:    "Acme",
				Version: "1.0.0",
			},
		},
		Inference: InferenceConfig{
			Model:  "test-model",
			APIKey: "sk-something-secret",
		},
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	if len(data) == 0 {
		t.Error("Dump() returned empty data")
	}

	// Verify we can load it back
	cfg2 := &Config{}
	_, err = unmarshalConfig(data, cfg2, false)
	if err != nil {
		t.Errorf("Dumped config cannot be loaded: %v", err)
	}

	if cfg2.Version != cfg.Version {
		t.Errorf("Version mismatch after dump/load: got %d, want %d", cfg2.Version, cfg.Version)
	}
}

func TestDump_MasksSecrets(t *testing.T) {
	cfg := &Config{
		Version: 1,
		Inference: InferenceConfig{
			APIKey: "sk-very-secret-key",
		},
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	if strings.Contains(string(data), "sk-very-secret-key") {
		t.Error("Dump() leaked the api key")
	}
	if !strings.Contains(string(data), SecretStringValue) {
		t.Errorf("Dump() did not mask the api key:\n%s", data)
	}
}

func TestUnmarshalConfig(t *testing.T) {
	t.Run("valid config without processing", func(t *testing.T) {
		data := []byte(`version: 1`)
		cfg := &Config{}

		result, err := unmarshalConfig(data, cfg, false)
		if err != nil {
			t.Errorf("unmarshalConfig() error = %v", err)
		}

		if result == nil {
			t.Fatal("unmarshalConfig() returned nil")
		}

		if result.Version != 1 {
			t.Errorf("Version = %d, want 1", result.Version)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		data := []byte(`invalid: [yaml`)
		cfg := &Config{}

		_, err := unmarshalConfig(data, cfg, false)
		if err == nil {
			t.Error("Expected error for invalid YAML")
		}
	})
}

func TestUnmarshalConfig_WrapsValidationError(t *testing.T) {
	// version: 99 fails validation (validate:"eq=1"), the error should be
	// wrapped so the underlying validation error stays reachable
	data := []byte("version: 99\n")
	cfg := &Config{}

	_, err := unmarshalConfig(data, cfg, true)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}

	if !strings.Contains(err.Error(), "validat") {
		t.Errorf("expected error to mention validation, got: %v", err)
	}

	if errors.Unwrap(err) == nil {
		t.Errorf("expected wrapped error (errors.Unwrap non-nil), got bare error: %v", err)
	}
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Document.Format != OutputFmtTheme {
		t.Errorf("default Format = %v, want %v", cfg.Document.Format, OutputFmtTheme)
	}

	if cfg.Document.Assets.JPEGQuality < 40 || cfg.Document.Assets.JPEGQuality > 100 {
		t.Errorf("JPEGQuality = %d, should be between 40 and 100", cfg.Document.Assets.JPEGQuality)
	}

	if cfg.Document.Reconcile.OverlapPercent < 1 || cfg.Document.Reconcile.OverlapPercent > 100 {
		t.Errorf("OverlapPercent = %d, should be between 1 and 100", cfg.Document.Reconcile.OverlapPercent)
	}

	if cfg.Document.Screenshot.Width < 600 {
		t.Errorf("Screenshot.Width = %d, should be at least 600", cfg.Document.Screenshot.Width)
	}

	if cfg.Inference.Attempts < 1 {
		t.Errorf("Inference.Attempts = %d, should be at least 1", cfg.Inference.Attempts)
	}

	if cfg.Inference.Timeout <= 0 {
		t.Errorf("Inference.Timeout = %v, should be positive", cfg.Inference.Timeout)
	}
}

func TestOutputFmt_String(t *testing.T) {
	tests := []struct {
		fmt      OutputFmt
		expected string
	}{
		{OutputFmtTheme, "theme"},
		{OutputFmtWxr, "wxr"},
		{OutputFmt(99), "OutputFmt(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := tt.fmt.String()
			if got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestOutputFmt_IsValid(t *testing.T) {
	tests := []struct {
		fmt   OutputFmt
		valid bool
	}{
		{OutputFmtTheme, true},
		{OutputFmtWxr, true},
		{OutputFmt(99), false},
		{OutputFmt(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.fmt.String(), func(t *testing.T) {
			got := tt.fmt.IsValid()
			if got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestParseOutputFmt(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  OutputFmt
		shouldErr bool
	}{
		{"theme", "theme", OutputFmtTheme, false},
		{"wxr", "wxr", OutputFmtWxr, false},
		{"invalid", "invalid", OutputFmt(0), true},
		{"empty", "", OutputFmt(0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOutputFmt(tt.input)
			if tt.shouldErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				if got != tt.expected {
					t.Errorf("ParseOutputFmt(%q) = %v, want %v", tt.input, got, tt.expected)
				}
			}
		})
	}
}

func TestMustParseOutputFmt(t *testing.T) {
	t.Run("valid value", func(t *testing.T) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("MustParseOutputFmt panicked unexpectedly: %v", r)
			}
		}()
		got := MustParseOutputFmt("theme")
		if got != OutputFmtTheme {
			t.Errorf("MustParseOutputFmt(\"theme\") = %v, want %v", got, OutputFmtTheme)
		}
	})

	t.Run("invalid value panics", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("MustParseOutputFmt should have panicked")
			}
		}()
		MustParseOutputFmt("invalid")
	})
}

func TestOutputFmt_MarshalText(t *testing.T) {
	tests := []struct {
		fmt      OutputFmt
		expected string
	}{
		{OutputFmtTheme, "theme"},
		{OutputFmtWxr, "wxr"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got, err := tt.fmt.MarshalText()
			if err != nil {
				t.Errorf("MarshalText() error = %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("MarshalText() = %q, want %q", string(got), tt.expected)
			}
		})
	}
}

func TestOutputFmt_UnmarshalText(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  OutputFmt
		shouldErr bool
	}{
		{"theme", "theme", OutputFmtTheme, false},
		{"wxr", "wxr", OutputFmtWxr, false},
		{"invalid", "invalid", OutputFmt(0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fmt OutputFmt
			err := fmt.UnmarshalText([]byte(tt.input))
			if tt.shouldErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
			} else {
				if err != nil {
					t.Errorf("UnmarshalText() error = %v", err)
				}
				if fmt != tt.expected {
					t.Errorf("UnmarshalText(%q) = %v, want %v", tt.input, fmt, tt.expected)
				}
			}
		})
	}
}

func TestOutputFmtNames(t *testing.T) {
	names := OutputFmtNames()
	expected := []string{"theme", "wxr"}

	if len(names) != len(expected) {
		t.Errorf("OutputFmtNames() length = %d, want %d", len(names), len(expected))
	}

	for i, name := range expected {
		if names[i] != name {
			t.Errorf("OutputFmtNames()[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestOutputFmt_Ext(t *testing.T) {
	tests := []struct {
		fmt      OutputFmt
		expected string
	}{
		{OutputFmtTheme, ".zip"},
		{OutputFmtWxr, ".xml"},
	}

	for _, tt := range tests {
		t.Run(tt.fmt.String(), func(t *testing.T) {
			got := tt.fmt.Ext()
			if got != tt.expected {
				t.Errorf("Ext() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestOutputFmt_Ext_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Ext() should panic for invalid format")
		}
	}()
	invalidFmt := OutputFmt(99)
	invalidFmt.Ext()
}
