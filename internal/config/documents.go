package config

import (
	"embed"
	"fmt"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/motionkit/internal/domain/tokens"
	apperrors "github.com/alexisbeaulieu97/motionkit/pkg/errors"
)

//go:embed defaults/reference.yaml defaults/definitions.yaml
var defaultDocuments embed.FS

// Paths of the embedded documents, used in error messages.
const (
	DefaultReferencePath   = "defaults/reference.yaml"
	DefaultDefinitionsPath = "defaults/definitions.yaml"
)

// ReferenceDocument is the on-disk shape of the base tables.
type ReferenceDocument struct {
	Duration map[string]string              `yaml:"duration" validate:"required,min=1,dive,keys,scale_key,endkeys,required"`
	Motion   map[string]string              `yaml:"motion" validate:"required,min=1,dive,keys,scale_key,endkeys,required"`
	Spring   map[string]tokens.SpringPreset `yaml:"spring" validate:"required,min=1,dive,keys,scale_key,endkeys"`
}

// Reference converts the document into the domain table.
func (d ReferenceDocument) Reference() tokens.Reference {
	return tokens.Reference{Duration: d.Duration, Motion: d.Motion, Spring: d.Spring}
}

// definitionEntry is one validated row of the definitions document.
type definitionEntry struct {
	Name  string      `yaml:"name" validate:"required,token_name"`
	Value interface{} `yaml:"value"`
	Line  int         `yaml:"-"`
}

// DefaultReference returns the embedded base tables.
func DefaultReference() (tokens.Reference, error) {
	data, err := defaultDocuments.ReadFile(DefaultReferencePath)
	if err != nil {
		return tokens.Reference{}, err
	}
	return ParseReference(DefaultReferencePath, data)
}

// DefaultDefinitions returns the embedded component tokens.
func DefaultDefinitions() (tokens.Definitions, error) {
	data, err := defaultDocuments.ReadFile(DefaultDefinitionsPath)
	if err != nil {
		return nil, err
	}
	return ParseDefinitions(DefaultDefinitionsPath, data)
}

// ParseReference decodes and validates a reference document.
func ParseReference(path string, data []byte) (tokens.Reference, error) {
	var doc ReferenceDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return tokens.Reference{}, apperrors.NewParseError(path, extractLine(err), err)
	}
	if err := validatorInstance().Struct(doc); err != nil {
		return tokens.Reference{}, convertValidationError(err)
	}
	return doc.Reference(), nil
}

// ParseDefinitions decodes the definitions document, keeping document order.
// Every invalid entry is reported, not just the first.
func ParseDefinitions(path string, data []byte) (tokens.Definitions, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, apperrors.NewParseError(path, extractLine(err), err)
	}

	mapping, err := tokensMapping(path, &root)
	if err != nil {
		return nil, err
	}

	entries := make([]definitionEntry, 0, len(mapping.Content)/2)
	var combined error
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], mapping.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			combined = multierr.Append(combined, apperrors.NewParseError(path, value.Line,
				fmt.Errorf("token %s must have a scalar value", key.Value)))
			continue
		}
		var decoded interface{}
		if err := value.Decode(&decoded); err != nil {
			combined = multierr.Append(combined, apperrors.NewParseError(path, value.Line, err))
			continue
		}
		entries = append(entries, definitionEntry{Name: key.Value, Value: decoded, Line: key.Line})
	}

	defs := make(tokens.Definitions, 0, len(entries))
	seen := make(map[string]int, len(entries))
	for _, entry := range entries {
		if err := validatorInstance().Struct(entry); err != nil {
			combined = multierr.Append(combined, apperrors.NewValidationError(
				fmt.Sprintf("tokens.%s", entry.Name),
				fmt.Sprintf("line %d: token name must be upper snake case", entry.Line),
				err,
			))
			continue
		}
		if first, dup := seen[entry.Name]; dup {
			combined = multierr.Append(combined, apperrors.NewValidationError(
				fmt.Sprintf("tokens.%s", entry.Name),
				fmt.Sprintf("line %d: duplicate token, first defined on line %d", entry.Line, first),
				nil,
			))
			continue
		}
		seen[entry.Name] = entry.Line
		defs = append(defs, tokens.Definition{
			Name:  tokens.Name(entry.Name),
			Value: tokens.ParseValue(entry.Value),
		})
	}

	if combined != nil {
		return nil, combined
	}
	return defs, nil
}

func tokensMapping(path string, root *yaml.Node) (*yaml.Node, error) {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, apperrors.NewValidationError("tokens", "document is empty", nil)
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, apperrors.NewParseError(path, doc.Line, fmt.Errorf("expected a mapping at the top level"))
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value != "tokens" {
			continue
		}
		mapping := doc.Content[i+1]
		if mapping.Kind != yaml.MappingNode {
			return nil, apperrors.NewParseError(path, mapping.Line, fmt.Errorf("tokens must be a mapping"))
		}
		return mapping, nil
	}
	return nil, apperrors.NewValidationError("tokens", "tokens section is required", nil)
}
