package prefabs

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultDir is the on-disk prefab directory checked before the embedded copy.
const DefaultDir = "prefabs"

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// Load reads a prefab, preferring DefaultDir on disk over the embedded copy.
func Load(name string) ([]byte, error) {
	return LoadFrom(DefaultDir, name)
}

// LoadFrom reads a prefab from dir, falling back to the embedded copy. An
// empty dir reads the embedded copy only.
func LoadFrom(dir, name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if dir != "" {
		if data, err := os.ReadFile(diskPath(dir, clean)); err == nil {
			return data, nil
		}
	}
	return PrefabsFS.ReadFile(clean)
}

// LoadScript reads a scenario script, preferring dir on disk.
func LoadScript(dir, name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if dir != "" {
		if data, err := os.ReadFile(diskPath(dir, clean)); err == nil {
			return data, nil
		}
	}
	return ScriptsFS.ReadFile(clean)
}

// ScriptNames lists the embedded scenario scripts.
func ScriptNames() []string {
	entries, err := ScriptsFS.ReadDir("scripts")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	return names
}

func ModTime(dir, name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(dir, cleanPrefabPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "prefabs/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	if filepath.Ext(s) == "" {
		s += ".tengo"
	}

	return fmt.Sprintf("scripts/%s", s)
}

func diskPath(dir, clean string) string {
	return filepath.Join(dir, filepath.FromSlash(clean))
}
