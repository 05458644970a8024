package replay

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileName returns the conventional file name for a replay.
func FileName(policy string, seed int64, id string) string {
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("%s-%d-%s.yaml", policy, seed, short)
}

// Save writes rep to path, creating parent directories as needed.
func Save(path string, rep *Replay) error {
	data, err := Marshal(rep)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create replay dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write replay %s: %w", path, err)
	}
	return nil
}

// Load reads and parses the replay at path.
func Load(path string) (*Replay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replay %s: %w", path, err)
	}
	rep, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse replay %s: %w", path, err)
	}
	return rep, nil
}

// List returns the replay files under dir, sorted by path.
func List(dir string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}
