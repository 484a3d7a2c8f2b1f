package metric

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// definition is one metric entry of a YAML definition file.
type definition struct {
	Description string       `yaml:"description"`
	Unit        string       `yaml:"unit"`
	Tags        []string     `yaml:"tags"`
	Reference   referenceDoc `yaml:"reference"`
}

// LoadFile reads one metric definition file. The file is a YAML mapping of
// bare metric names to definitions; the package component of every name is
// the file's base name without extension. Metrics are returned in document
// order.
func LoadFile(path string) ([]*Metric, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	pkg := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse %s: top level is not a mapping", path)
	}

	// Mapping content alternates key, value.
	metrics := make([]*Metric, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value

		var def definition
		if err := mapping.Content[i+1].Decode(&def); err != nil {
			return nil, fmt.Errorf("parse %s: metric %q: %w", path, key, err)
		}

		m, err := fromDoc(metricDoc{
			Name:        pkg + "." + key,
			Description: def.Description,
			Unit:        def.Unit,
			Tags:        def.Tags,
			Reference:   &def.Reference,
		})
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		metrics = append(metrics, m)
	}

	return metrics, nil
}

// LoadDir loads every *.yaml definition file in a directory into one Set.
// Each file contributes one package of metrics.
func LoadDir(dir string) (*Set, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var all []*Metric
	for _, path := range paths {
		metrics, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, metrics...)
	}

	return NewSet(all...)
}
