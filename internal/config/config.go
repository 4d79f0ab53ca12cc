package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields stanza needs to reach the poems service and
// identify the viewing user.
type Config struct {
	Server   string
	Token    string
	UserID   string
	UserName string
	Admin    bool
	PageSize int
	Theme    string
	LogFile  string
}

const (
	defaultConfigPath = "~/.config/stanza/config.toml"
	defaultLogFile    = "~/.local/share/stanza/stanza.log"
	defaultServer     = "127.0.0.1:8787"
	defaultPageSize   = 10
)

// Load locates and parses the stanza config, falling back to defaults when
// missing. A missing file is not an error; stanza should run against a local
// server with no configuration at all.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Server:   defaultServer,
		PageSize: defaultPageSize,
		LogFile:  mustExpand(defaultLogFile),
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Server   string `toml:"server"`
		Token    string `toml:"token"`
		UserID   string `toml:"user_id"`
		UserName string `toml:"user_name"`
		Admin    bool   `toml:"admin"`
		PageSize int    `toml:"page_size"`
		Theme    string `toml:"theme"`
		LogFile  string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Server = strings.TrimSpace(raw.Server)
	if cfg.Server == "" {
		cfg.Server = defaultServer
	}

	cfg.Token = strings.TrimSpace(raw.Token)
	cfg.UserID = strings.TrimSpace(raw.UserID)
	cfg.UserName = strings.TrimSpace(raw.UserName)
	cfg.Admin = raw.Admin
	cfg.Theme = strings.TrimSpace(raw.Theme)

	cfg.PageSize = raw.PageSize
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}

	cfg.LogFile = strings.TrimSpace(raw.LogFile)
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile
	}
	cfg.LogFile = mustExpand(cfg.LogFile)

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
