// Package prefs persists the slice of session state worth restoring on the
// next launch: the color theme, the genre feed's filter, and the view that
// was active when the user quit. Stored as TOML at
// ~/.config/stanza/prefs.toml.
//
// Preferences are a convenience, never a dependency: a missing, corrupt or
// hand-edited file degrades to defaults field by field and must not block
// startup.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/stanza-tui/stanza/internal/api"
	"github.com/stanza-tui/stanza/internal/cache"
)

// Prefs holds restorable session state. Genre is the genre feed's filter
// (empty means all genres); View names the list view to open on.
type Prefs struct {
	Theme string `toml:"theme"`
	Genre string `toml:"genre"`
	View  string `toml:"view"`
}

const (
	defaultPrefsPath = "~/.config/stanza/prefs.toml"
	defaultTheme     = "Dracula"
)

var defaultView = cache.ViewGlobal.String()

// Default returns the preferences used when nothing has been saved yet.
func Default() Prefs {
	return Prefs{Theme: defaultTheme, View: defaultView}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path, or the default path when it
// is empty. Any failure yields Default rather than an error.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Default(), nil
	}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		return Default(), nil
	}

	p := Default()
	if err := toml.Unmarshal(raw, &p); err != nil {
		return Default(), nil
	}
	return p.normalized(), nil
}

// Save writes preferences to the given path, creating directories as
// needed. Values are normalized first so a bad in-memory value can not be
// persisted.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	raw, err := toml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, raw, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// normalized replaces values that no longer name a real genre or view with
// their defaults. Theme names are not checked here; the theme table has its
// own fallback.
func (p Prefs) normalized() Prefs {
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = defaultTheme
	}
	if p.Genre != "" && !api.ValidGenre(p.Genre) {
		p.Genre = ""
	}
	if !validView(p.View) {
		p.View = defaultView
	}
	return p
}

// validView reports whether name identifies a restorable list view. The
// detail view holds a transient single record and is never restored.
func validView(name string) bool {
	for _, v := range cache.AllViews() {
		if v == cache.ViewDetail {
			continue
		}
		if name == v.String() {
			return true
		}
	}
	return false
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
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
