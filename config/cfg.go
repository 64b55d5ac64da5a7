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
	ConversionConfig struct {
		Quote               QuoteStyle `yaml:"quote" validate:"oneof=single double"`
		Autoprefixer        bool       `yaml:"autoprefixer"`
		IndentVueStyleBlock int        `yaml:"indent_vue_style_block" validate:"gte=0,lte=16"`
		SignComments        bool       `yaml:"sign_comments"`
		NibAbsolute         bool       `yaml:"nib_absolute"`
		SourceEncoding      string     `yaml:"source_encoding,omitempty"`
		Workers             int        `yaml:"workers" validate:"min=1,max=256"`
		GlobalVariables     []string   `yaml:"global_variables" validate:"dive,required"`
		GlobalMixins        []string   `yaml:"global_mixins" validate:"dive,required"`
	}

	ParserConfig struct {
		Kind    ParserKind    `yaml:"kind" validate:"oneof=command json"`
		Path    string        `yaml:"path" validate:"required_if=Kind command"`
		Args    []string      `yaml:"args,omitempty"`
		Dir     string        `yaml:"dir,omitempty" validate:"omitempty,dir"`
		Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
	}

	// LibraryConfig names a shared source file, relative to the conversion root
	// unless absolute, and the module it is referenced as after conversion.
	LibraryConfig struct {
		Path   string `yaml:"path" validate:"required"`
		Module string `yaml:"module" validate:"required"`
		Alias  string `yaml:"alias" validate:"required,alphanum"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Conversion ConversionConfig `yaml:"conversion"`
		Parser     ParserConfig     `yaml:"parser"`
		Libraries  []LibraryConfig  `yaml:"libraries" validate:"dive"`
		Logging    LoggingConfig    `yaml:"logging"`
		Reporting  ReporterConfig   `yaml:"reporting"`
	}
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
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
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
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
