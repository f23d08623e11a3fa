package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	ThemeConfig struct {
		Name        string `yaml:"name" validate:"required"`
		Description string `yaml:"description"`
		Author      string `yaml:"author"`
		Version     string `yaml:"version" validate:"required"`
		ContentSize string `yaml:"content_size" validate:"required"`
		WideSize    string `yaml:"wide_size" validate:"required"`
	}

	CleanupConfig struct {
		ForceCharset string `yaml:"force_charset"`
	}

	ReconcileConfig struct {
		Enable         bool `yaml:"enable"`
		SmallSetLimit  int  `yaml:"small_set_limit" validate:"min=1,max=16"`
		OverlapPercent int  `yaml:"overlap_percent" validate:"min=1,max=100"`
	}

	AssetsConfig struct {
		Localize    bool `yaml:"localize"`
		MaxWidth    int  `yaml:"max_width" validate:"min=320,max=3840"`
		JPEGQuality int  `yaml:"jpeq_quality_level" validate:"min=40,max=100"`
	}

	ScreenshotConfig struct {
		Generate     bool   `yaml:"generate"`
		TemplatePath string `yaml:"template_path" sanitize:"assure_file_access"`
		Width        int    `yaml:"width" validate:"min=600"`
		Height       int    `yaml:"height" validate:"min=450"`
	}

	DocumentConfig struct {
		Format                OutputFmt        `yaml:"format" validate:"gte=0"`
		FixZip                bool             `yaml:"fix_zip"`
		OutputNameTemplate    string           `yaml:"output_name_template"`
		FileNameTransliterate bool             `yaml:"file_name_transliterate"`
		StylesheetPath        string           `yaml:"stylesheet_path" sanitize:"assure_file_access"`
		Theme                 ThemeConfig      `yaml:"theme"`
		Cleanup               CleanupConfig    `yaml:"cleanup"`
		Reconcile             ReconcileConfig  `yaml:"reconcile"`
		Assets                AssetsConfig     `yaml:"assets"`
		Screenshot            ScreenshotConfig `yaml:"screenshot"`
	}

	InferenceConfig struct {
		Model     string        `yaml:"model" validate:"required"`
		Endpoint  string        `yaml:"endpoint" validate:"required,url"`
		APIKey    SecretString  `yaml:"api_key"`
		MaxTokens int           `yaml:"max_tokens" validate:"min=256,max=64000"`
		Attempts  int           `yaml:"attempts" validate:"min=1,max=10"`
		Timeout   time.Duration `yaml:"timeout" validate:"min=1s,max=30m"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig  `yaml:"document"`
		Inference InferenceConfig `yaml:"inference"`
		Logging   LoggingConfig   `yaml:"logging"`
		Reporting ReporterConfig  `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
