package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// defaultDir is where Discover looks when no --config is given.
const defaultDir = "~/.config/modelswitch"

var defaultNames = []string{"config.yaml", "config.yml", "config.toml", "config.json"}

// ExpandHome expands a leading '~' to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

// Discover returns the first existing default config file, or "" if none exists.
func Discover() (string, error) {
	dir, err := ExpandHome(defaultDir)
	if err != nil {
		return "", err
	}
	return firstExisting(dir, defaultNames)
}

func firstExisting(dir string, names []string) (string, error) {
	for _, n := range names {
		p := filepath.Join(dir, n)
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", p, err)
		}
	}
	return "", nil
}
