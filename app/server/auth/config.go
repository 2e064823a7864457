package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Config represents the auth configuration file (thaimap-auth.yml or .toml/.ini/.hcl).
type Config struct {
	Username string `yaml:"username" json:"username" toml:"username" ini:"username" hcl:"username" jsonschema:"minLength=1,description=login name"`
	Password string `yaml:"password" json:"password" toml:"password" ini:"password" hcl:"password" jsonschema:"minLength=1,description=plain text password compared as is"`
}

// ConfigValidator validates the auth config document as written in the file, typically against the JSON schema.
// The document is the file decoded into generic values, before it is mapped to Config.
type ConfigValidator func(doc map[string]any) error

// LoadConfig reads and parses the auth config file. The format is picked by extension:
// .yml/.yaml (default), .toml, .ini and .hcl.
// If validator is provided, the raw document is validated with it before mapping to Config,
// so unknown and missing keys are caught.
func LoadConfig(path string, validator ConfigValidator) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is from CLI flag, controlled by admin
	if err != nil {
		return nil, fmt.Errorf("failed to read auth config file: %w", err)
	}

	if validator != nil {
		doc, err := decodeDocument(path, data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse auth config file: %w", err)
		}
		if err := validator(doc); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := decodeConfig(path, data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse auth config file: %w", err)
	}

	return &cfg, nil
}

// decodeDocument unmarshals data into generic values using the format matching the file extension.
func decodeDocument(path string, data []byte) (map[string]any, error) {
	doc := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case ".ini":
		f, err := ini.Load(data)
		if err != nil {
			return nil, err
		}
		for k, v := range f.Section(ini.DefaultSection).KeysHash() {
			doc[k] = v
		}
	case ".hcl":
		return decodeHCLDocument(filepath.Base(path), data)
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// decodeHCLDocument reads top-level HCL attributes. Only literal strings, numbers and bools are supported.
func decodeHCLDocument(filename string, data []byte) (map[string]any, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	doc := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		switch {
		case val.IsNull():
			doc[name] = nil
		case val.Type() == cty.String:
			doc[name] = val.AsString()
		case val.Type() == cty.Number:
			f, _ := val.AsBigFloat().Float64()
			doc[name] = f
		case val.Type() == cty.Bool:
			doc[name] = val.True()
		default:
			return nil, fmt.Errorf("unsupported value type %s for %q", val.Type().FriendlyName(), name)
		}
	}
	return doc, nil
}

// decodeConfig unmarshals data into cfg using the format matching the file extension.
func decodeConfig(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	case ".ini":
		return ini.MapTo(cfg, data)
	case ".hcl":
		return hclsimple.Decode(filepath.Base(path), data, nil, cfg)
	default:
		return yaml.Unmarshal(data, cfg)
	}
}
