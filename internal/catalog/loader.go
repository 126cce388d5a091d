package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/islands.yaml
var defaultIslandsYAML []byte

// Default returns the embedded reference catalog.
func Default() Catalog {
	c, err := Parse(defaultIslandsYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default is invalid: %v", err))
	}
	return c
}

// Parse decodes a YAML catalog and validates it.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("catalog: parse: %w", err)
	}
	for i := range c.Islands {
		applyWaveDefaults(&c.Islands[i])
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Load loads the island catalog.
// Search order: customPath -> ~/.echoisles/configs/islands.yaml -> ./configs/islands.yaml -> embedded default
//
// An explicit path that cannot be read or parsed is an error; the implicit
// locations are skipped when absent but still fail loudly when present and invalid.
func Load(customPath string) (Catalog, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Catalog{}, fmt.Errorf("catalog: read %s: %w", customPath, err)
		}
		return Parse(data)
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		c, err := Parse(data)
		if err != nil {
			return Catalog{}, fmt.Errorf("%s: %w", path, err)
		}
		return c, nil
	}

	return Parse(defaultIslandsYAML)
}

func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".echoisles", "configs", "islands.yaml"))
	}
	return append(paths, filepath.Join("configs", "islands.yaml"))
}

func applyWaveDefaults(isl *Island) {
	if isl.Osc == "" {
		isl.Osc = WaveSine
	}
	if isl.Accent == "" {
		isl.Accent = WaveTriangle
	}
}
