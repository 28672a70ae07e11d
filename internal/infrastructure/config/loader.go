package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/appfeat/gitgo/internal/domain"
	"github.com/appfeat/gitgo/internal/ports"
)

// FileLoader loads YAML settings from ~/.gitgo/config.yaml (overridable via GITGO_CONFIG).
//
// These are ambient tool preferences only. Repository-scoped state (saved
// model, timeout, identity) lives in repo-local git config and is never
// read or written here.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.SettingsProvider.
func (l *FileLoader) Load(context.Context) (domain.Settings, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Settings{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultSettings()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Settings{}, err
			}
			return cfg, nil
		}
		return domain.Settings{}, err
	}

	var cfg domain.Settings
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Settings{}, err
	}

	return hydrateDefaults(cfg), nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("GITGO_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".gitgo", "config.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func writeDefault(path string, cfg domain.Settings) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

func defaultSettings() domain.Settings {
	return domain.Settings{
		ConfigFormatVersion: "1",
		AI: domain.AISettings{
			Binary:                "llm",
			DefaultTimeoutSeconds: domain.DefaultAITimeoutSeconds,
			MaxDiffBytes:          15000,
		},
		Release: domain.RelSettings{
			DefaultBump: string(domain.BumpPatch),
			Remote:      "origin",
		},
		History: domain.HistSet{
			Enabled: true,
		},
		Color: true,
	}
}

func hydrateDefaults(cfg domain.Settings) domain.Settings {
	if cfg.AI.Binary == "" {
		cfg.AI.Binary = "llm"
	}
	if cfg.AI.DefaultTimeoutSeconds == 0 {
		cfg.AI.DefaultTimeoutSeconds = domain.DefaultAITimeoutSeconds
	}
	if cfg.AI.MaxDiffBytes == 0 {
		cfg.AI.MaxDiffBytes = 15000
	}
	if cfg.Release.DefaultBump == "" {
		cfg.Release.DefaultBump = string(domain.BumpPatch)
	}
	if cfg.Release.Remote == "" {
		cfg.Release.Remote = "origin"
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.SettingsProvider = (*FileLoader)(nil)
