package mapping

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/validation"
)

//go:embed defaults.yaml fieldmap.schema.json
var assets embed.FS

var schemaValidator = validation.NewSchemaValidator(assets)

// FieldMap lists, per logical field, the candidate destination property names
type FieldMap map[Field][]string

type fieldMapFile struct {
	Fields map[Field][]string `yaml:"fields"`
}

// DefaultFieldMap returns the embedded defaults
func DefaultFieldMap() FieldMap {
	data, err := assets.ReadFile(defaultsFile)
	if err != nil {
		panic(fmt.Sprintf("embedded field map missing: %v", err))
	}
	fm, err := ParseFieldMap(data)
	if err != nil {
		panic(fmt.Sprintf("embedded field map invalid: %v", err))
	}
	return fm
}

// ParseFieldMap decodes and validates a YAML field map document
func ParseFieldMap(data []byte) (FieldMap, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: field map is not valid YAML: %v", domain.ErrConfig, err)
	}
	if err := schemaValidator.ValidateValue(raw, fieldMapSchema); err != nil {
		return nil, fmt.Errorf("%w: field map: %v", domain.ErrConfig, err)
	}

	var file fieldMapFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: field map: %v", domain.ErrConfig, err)
	}
	return FieldMap(file.Fields), nil
}

// LoadFieldMap returns the defaults overlaid with the fields named in the file
// at path. An empty path yields the defaults.
func LoadFieldMap(path string) (FieldMap, error) {
	fm := DefaultFieldMap()
	if path == "" {
		return fm, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read field map %s: %v", domain.ErrConfig, path, err)
	}
	override, err := ParseFieldMap(data)
	if err != nil {
		return nil, err
	}
	return fm.Merge(override), nil
}

// Merge returns a copy of fm with the candidates of every field in override replaced
func (fm FieldMap) Merge(override FieldMap) FieldMap {
	out := make(FieldMap, len(fm))
	for f, c := range fm {
		out[f] = append([]string(nil), c...)
	}
	for f, c := range override {
		out[f] = append([]string(nil), c...)
	}
	return out
}

// Candidates returns the ordered property names for a field
func (fm FieldMap) Candidates(f Field) []string {
	return fm[f]
}
