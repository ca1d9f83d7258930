package shaders

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"scenerender/internal/logging"
)

// ErrNoSections is returned for shader files without any section marker.
var ErrNoSections = errors.New("shaders: no [VertexShader] or [FragmentShader] section")

const (
	vertexMarker   = "[VertexShader]"
	fragmentMarker = "[FragmentShader]"
)

// ParseSource splits a shader file into its vertex and fragment sections.
// Sections may appear in either order; a missing section yields "".
func ParseSource(code string) (vertex, fragment string, err error) {
	vi := strings.Index(code, vertexMarker)
	fi := strings.Index(code, fragmentMarker)
	if vi < 0 && fi < 0 {
		return "", "", ErrNoSections
	}

	section := func(start, other int, marker string) string {
		begin := start + len(marker)
		if other > start {
			return code[begin:other]
		}
		return code[begin:]
	}
	if vi >= 0 {
		vertex = section(vi, fi, vertexMarker)
	}
	if fi >= 0 {
		fragment = section(fi, vi, fragmentMarker)
	}
	return vertex, fragment, nil
}

// LoadSourceFile reads and parses a shader file.
func LoadSourceFile(path string) (vertex, fragment string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("could not read shader file: %w", err)
	}
	vertex, fragment, err = ParseSource(string(data))
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", path, err)
	}
	return vertex, fragment, nil
}

// LoadModels overrides lighting-model sources with <Model>.shader files
// found in dir. Missing files and sections keep the current source.
func (c *Cache) LoadModels(dir string) error {
	for m := Model(0); m < TotalModels; m++ {
		path := filepath.Join(dir, m.String()+".shader")
		vertex, fragment, err := LoadSourceFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
		cur := c.models[m]
		if vertex == "" {
			vertex = cur.vertex
		}
		if fragment == "" {
			fragment = cur.fragment
		}
		c.SetModelSource(m, vertex, fragment)
		logging.Logger().Info("loaded model shader", "model", m.String(), "path", path)
	}
	return nil
}
