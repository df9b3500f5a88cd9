package recipe

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

//go:embed recipes/*.yaml
var RecipesFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

var diskDir string

// SetDir makes files under dir override the embedded ones. Recipes live in
// dir itself, scripts in dir/scripts. An empty dir disables the override.
func SetDir(dir string) {
	diskDir = dir
}

func Dir() string {
	return diskDir
}

// Load reads a recipe file, preferring the disk override.
func Load(name string) ([]byte, error) {
	clean := cleanRecipePath(name)
	if diskDir != "" {
		if data, err := os.ReadFile(filepath.Join(diskDir, filepath.FromSlash(clean))); err == nil {
			return data, nil
		}
	}
	return RecipesFS.ReadFile("recipes/" + clean)
}

// LoadScript reads a tengo script, preferring the disk override.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if diskDir != "" {
		if data, err := os.ReadFile(filepath.Join(diskDir, filepath.FromSlash(clean))); err == nil {
			return data, nil
		}
	}
	return ScriptsFS.ReadFile(clean)
}

// ModTime reports the modification time of a recipe on disk.
func ModTime(name string) (time.Time, bool) {
	if diskDir == "" {
		return time.Time{}, false
	}
	info, err := os.Stat(filepath.Join(diskDir, filepath.FromSlash(cleanRecipePath(name))))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Names lists every available recipe, embedded and on disk, without
// extensions.
func Names() []string {
	seen := map[string]bool{}
	if entries, err := fs.ReadDir(RecipesFS, "recipes"); err == nil {
		for _, e := range entries {
			if isRecipeFile(e.Name()) {
				seen[trimExt(e.Name())] = true
			}
		}
	}
	if diskDir != "" {
		if entries, err := os.ReadDir(diskDir); err == nil {
			for _, e := range entries {
				if !e.IsDir() && isRecipeFile(e.Name()) {
					seen[trimExt(e.Name())] = true
				}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func recipeFile(name string) string {
	if isRecipeFile(name) {
		return name
	}
	return name + ".yaml"
}

func trimExt(name string) string {
	return strings.TrimSuffix(path.Base(filepath.ToSlash(name)), path.Ext(name))
}

func cleanRecipePath(p string) string {
	s := filepath.ToSlash(p)
	if after, ok := strings.CutPrefix(s, "recipe/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "recipes/"); ok {
		s = after
	}
	return recipeFile(s)
}

func cleanScriptPath(p string) string {
	s := filepath.ToSlash(p)
	if after, ok := strings.CutPrefix(s, "recipe/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	if !strings.HasSuffix(s, ".tengo") {
		s += ".tengo"
	}
	return "scripts/" + s
}
