package content

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/mchmarny/sidenav/pkg/catalog"
	"github.com/mchmarny/sidenav/pkg/level"
)

const schemaBaseURL = "https://sidenav.local/schema/"

//go:embed schema/*.json
var schemas embed.FS

type validator struct {
	spec     *jsonschema.Schema
	sections *jsonschema.Schema
	guides   *jsonschema.Schema
}

func newValidator() (*validator, error) {
	compiler := jsonschema.NewCompiler()

	entries, err := fs.ReadDir(schemas, "schema")
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		raw, err := schemas.ReadFile("schema/" + e.Name())
		if err != nil {
			return nil, err
		}

		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("schema %s: %w", e.Name(), err)
		}

		if err := compiler.AddResource(schemaBaseURL+e.Name(), doc); err != nil {
			return nil, fmt.Errorf("schema %s: %w", e.Name(), err)
		}
	}

	v := &validator{}
	for name, dst := range map[string]**jsonschema.Schema{
		"spec.json":     &v.spec,
		"sections.json": &v.sections,
		"guides.json":   &v.guides,
	} {
		sch, err := compiler.Compile(schemaBaseURL + name)
		if err != nil {
			return nil, fmt.Errorf("schema %s: %w", name, err)
		}
		*dst = sch
	}

	return v, nil
}

// check validates a JSON document against sch.
func check(sch *jsonschema.Schema, name string, data []byte) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidContent, name, err)
	}

	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidContent, name, err)
	}

	return nil
}

func (v *validator) parseSpec(fsys fs.FS, name string) (*catalog.Spec, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	// YAML is validated through its JSON form
	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidContent, name, err)
	}

	asJSON, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidContent, name, err)
	}

	if err := check(v.spec, name, asJSON); err != nil {
		return nil, err
	}

	var spec catalog.Spec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidContent, name, err)
	}

	return &spec, nil
}

func (v *validator) parseCatalog(fsys fs.FS, name string) (catalog.Catalog, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := check(v.sections, name, raw); err != nil {
		return nil, err
	}

	var cat catalog.Catalog
	if err := json.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidContent, name, err)
	}

	return cat, nil
}

func (v *validator) parseGuides(fsys fs.FS, name string) (map[level.Level]catalog.Catalog, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := check(v.guides, name, raw); err != nil {
		return nil, err
	}

	var guides map[level.Level]catalog.Catalog
	if err := json.Unmarshal(raw, &guides); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidContent, name, err)
	}

	return guides, nil
}
