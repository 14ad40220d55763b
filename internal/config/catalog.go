package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nxtei/quality-draw/internal/common"
	"github.com/nxtei/quality-draw/internal/model"
)

// Catalog is the YAML file format for a department list:
//
//	departments:
//	  - id: nd
//	    name: 宁东分院
//	    type: 综合类
type Catalog struct {
	Departments []CatalogEntry `yaml:"departments"`
}

// CatalogEntry is one department. Type accepts the wire name or the Chinese label.
type CatalogEntry struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// ParseCatalog decodes and validates a catalog.
func ParseCatalog(r io.Reader) ([]model.Department, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: catalog is empty", common.ErrInvalidConfig)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}

	seen := make(map[string]bool, len(c.Departments))
	departments := make([]model.Department, 0, len(c.Departments))
	for i, e := range c.Departments {
		id := strings.TrimSpace(e.ID)
		name := strings.TrimSpace(e.Name)
		if id == "" || name == "" {
			return nil, fmt.Errorf("%w: department %d needs an id and a name", common.ErrInvalidConfig, i+1)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate department id %q", common.ErrInvalidConfig, id)
		}
		t, ok := model.ParseDepartmentType(e.Type)
		if !ok {
			return nil, fmt.Errorf("%w: department %q has unknown type %q", common.ErrInvalidConfig, id, e.Type)
		}
		seen[id] = true
		departments = append(departments, model.NewDepartment(id, name, t))
	}
	if len(departments) == 0 {
		return nil, fmt.Errorf("%w: catalog lists no departments", common.ErrInvalidConfig)
	}
	return departments, nil
}

// LoadCatalog reads a catalog file.
func LoadCatalog(path string) ([]model.Department, error) {
	b, err := os.ReadFile(ExpandPath(path)) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	departments, err := ParseCatalog(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return departments, nil
}

// MarshalCatalog renders departments in catalog form, using wire type names.
func MarshalCatalog(departments []model.Department) ([]byte, error) {
	c := Catalog{Departments: make([]CatalogEntry, len(departments))}
	for i, d := range departments {
		c.Departments[i] = CatalogEntry{ID: d.ID, Name: d.Name, Type: string(d.DepartmentType)}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
