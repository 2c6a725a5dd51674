// SPDX-License-Identifier: MPL-2.0

package classscan

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Mappings translates intermediary class names to the runtime names stored
// in shipped class files. The file is TOML with a single classes table:
//
//	[classes]
//	"net.minecraft.class_1703" = "net.minecraft.screen.ScreenHandler"
type Mappings struct {
	Classes map[string]string `toml:"classes"`
}

// LoadMappings reads and parses a mappings file.
func LoadMappings(path string) (*Mappings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mappings file: %w", err)
	}

	var m Mappings
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse mappings file %s: %w", path, err)
	}
	return &m, nil
}

// Resolve maps an intermediary class name to its runtime name. A nil
// receiver is the identity mapping; a loaded mappings file must declare
// every name asked of it.
func (m *Mappings) Resolve(intermediary string) (string, error) {
	if m == nil {
		return intermediary, nil
	}
	runtime, ok := m.Classes[intermediary]
	if !ok {
		return "", fmt.Errorf("mappings declare no runtime name for %s", intermediary)
	}
	return runtime, nil
}
