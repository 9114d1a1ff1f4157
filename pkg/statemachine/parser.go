package statemachine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrParsingCancelled  = errors.New("definition parsing cancelled")
	ErrFailedToParseYAML = errors.New("failed to parse YAML definition")
	ErrFailedToParseJSON = errors.New("failed to parse JSON definition")
	ErrFailedToReadFile  = errors.New("failed to read definition file")
	ErrUnsupportedFormat = errors.New("unsupported definition format")
	ErrEmptyDefinition   = errors.New("definition is empty")
)

// Parser decodes a machine configuration from a textual definition.
// Unknown keys are rejected so a misspelled field cannot silently drop transitions.
type Parser interface {
	// Parse decodes content into a configuration. The result is not validated.
	Parse(ctx context.Context, content string) (*Config, error)

	// SupportsFileExtension checks if the parser handles a given file extension.
	// The extension may or may not include a leading dot.
	SupportsFileExtension(ext string) bool
}

// YAMLParser implements Parser for YAML definitions.
type YAMLParser struct{}

// NewYAMLParser creates a parser for .yaml and .yml definitions.
func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

func (p *YAMLParser) Parse(ctx context.Context, content string) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyDefinition
	}

	var cfg Config
	dec := yaml.NewDecoder(strings.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	return &cfg, nil
}

func (p *YAMLParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}

// JSONParser implements Parser for JSON definitions.
type JSONParser struct{}

// NewJSONParser creates a parser for .json definitions.
func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) Parse(ctx context.Context, content string) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyDefinition
	}

	var cfg Config
	dec := json.NewDecoder(strings.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	return &cfg, nil
}

func (p *JSONParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "json")
}

// NewParserForFile returns a parser based on the file extension, or nil if none matches.
func NewParserForFile(filename string) Parser {
	ext := getFileExtension(filename)
	for _, p := range []Parser{NewYAMLParser(), NewJSONParser()} {
		if p.SupportsFileExtension(ext) {
			return p
		}
	}
	return nil
}

// LoadFile reads, parses and structurally validates a definition file.
// Transition targets are checked by New, so a definition loaded here can still
// be built with WithLazyTargets.
func LoadFile(ctx context.Context, path string) (*Config, error) {
	parser := NewParserForFile(path)
	if parser == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}

	cfg, err := parser.Parse(ctx, string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.validate(false); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Encode writes the configuration in the given format ("yaml" or "json").
func Encode(cfg *Config, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "yaml", "yml":
		return yaml.Marshal(cfg)
	case "json":
		return json.MarshalIndent(cfg, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func getFileExtension(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx != -1 {
		return filename[idx+1:]
	}
	return ""
}
