package cli

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/shipgen-labs/shipgen/internal/config"
	"github.com/shipgen-labs/shipgen/internal/project"
)

// ResolveProjectDir decides which project a command operates on. Resolution
// order: an explicit argument wins; then the current directory if it holds a
// shipgen.yaml; then the first child (by name) of the configured
// projects_dir that holds one. Anything else is a ConfigMissingError.
func ResolveProjectDir(arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if project.Exists(cwd) {
		return cwd, nil
	}

	if root := config.Get(config.KeyProjectsDir); root != "" {
		entries, err := os.ReadDir(root)
		if err == nil {
			names := make([]string, 0, len(entries))
			for _, e := range entries {
				if e.IsDir() {
					names = append(names, e.Name())
				}
			}
			sort.Strings(names)
			for _, name := range names {
				dir := filepath.Join(root, name)
				if project.Exists(dir) {
					return dir, nil
				}
			}
		}
	}

	return "", &project.ConfigMissingError{Dir: cwd}
}
