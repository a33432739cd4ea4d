package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var ErrConfigNotFound = errors.New("config file not found")

// LoadAndExpandYaml reads <baseDir>/<filename>.yml (or .yaml) and expands
// environment references in it.
func LoadAndExpandYaml(baseDir, filename string) ([]byte, error) {
	for _, ext := range []string{".yml", ".yaml"} {
		raw, err := os.ReadFile(filepath.Join(baseDir, filename+ext))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s%s: %w", filename, ext, err)
		}

		expanded, err := ExpandEnvStrict(string(raw))
		if err != nil {
			return nil, fmt.Errorf("%s%s: %w", filename, ext, err)
		}
		return []byte(expanded), nil
	}

	return nil, fmt.Errorf("%w: %s.yml in %s", ErrConfigNotFound, filename, baseDir)
}
