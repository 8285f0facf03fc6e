package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath names an explicit config file
	EnvConfigPath = "NOCTOPO_CONFIG"
	// ConfigFileName is looked up in the working directory
	ConfigFileName = "noctopo.yaml"
	// ConfigDirName is the directory under the user and system config roots
	ConfigDirName = "noctopo"
)

// SearchPaths lists the config file candidates in lookup order
func SearchPaths() []string {
	var paths []string
	if p := os.Getenv(EnvConfigPath); p != "" {
		paths = append(paths, p)
	}
	paths = append(paths, ConfigFileName)
	for _, root := range userConfigRoots() {
		paths = append(paths, filepath.Join(root, ConfigDirName, "config.yaml"))
	}
	return append(paths, filepath.Join("/etc", ConfigDirName, "config.yaml"))
}

// FindConfigPath returns the first existing candidate from SearchPaths,
// or "" when there is none. A working directory match is made absolute.
func FindConfigPath() string {
	for _, p := range SearchPaths() {
		if !fileExists(p) {
			continue
		}
		if p == ConfigFileName {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
		}
		return p
	}
	return ""
}

// DefaultConfigPath is where `noctopo init` writes a new config: the user
// config root when one is known, the working directory otherwise
func DefaultConfigPath() string {
	if roots := userConfigRoots(); len(roots) > 0 {
		return filepath.Join(roots[0], ConfigDirName, "config.yaml")
	}
	return ConfigFileName
}

// EnsureConfigDir creates the directory holding configPath
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

// userConfigRoots returns $XDG_CONFIG_HOME then ~/.config, skipping unset
// or repeated entries
func userConfigRoots() []string {
	var roots []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		roots = append(roots, xdg)
	}
	if home := os.Getenv("HOME"); home != "" {
		dotConfig := filepath.Join(home, ".config")
		if len(roots) == 0 || roots[0] != dotConfig {
			roots = append(roots, dotConfig)
		}
	}
	return roots
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
