package prefabs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSpec is wrapped by every schema or constraint failure.
var ErrInvalidSpec = errors.New("prefabs: invalid spec")

var (
	schemaMu    sync.Mutex
	schemaCache = map[string]*jsonschema.Schema{}
)

func compileSchema(name string) (*jsonschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	if sch, ok := schemaCache[name]; ok {
		return sch, nil
	}
	file := "schemas/" + name + ".schema.json"
	data, err := SchemasFS.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("prefabs: read schema %s: %w", file, err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(file, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("prefabs: add schema %s: %w", file, err)
	}
	sch, err := c.Compile(file)
	if err != nil {
		return nil, fmt.Errorf("prefabs: compile schema %s: %w", file, err)
	}
	schemaCache[name] = sch
	return sch, nil
}

// Validate checks YAML document data against the named embedded schema.
func Validate(schema string, data []byte) error {
	sch, err := compileSchema(schema)
	if err != nil {
		return err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	// the validator wants JSON-shaped values, so round-trip through JSON
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	return nil
}
