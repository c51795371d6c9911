package compiler

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoverModels lists model names under dir as slash-separated paths without
// extension ("user", "admin/audit_log"), sorted. Dependency folders, hidden
// folders, declaration files and tests are skipped.
func DiscoverModels(dir string) ([]string, error) {
	var models []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != dir && (name == "node_modules" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isModelFile(name) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		models = append(models, strings.TrimSuffix(filepath.ToSlash(rel), ".ts"))
		return nil
	})
	if err != nil {
		return nil, WrapContractError(StageSource, ErrCodeSourceDiscover, "discover "+dir, fmt.Errorf("walk: %w", err))
	}
	sort.Strings(models)
	return models, nil
}

func isModelFile(name string) bool {
	if !strings.HasSuffix(name, ".ts") || strings.HasPrefix(name, ".") {
		return false
	}
	for _, suffix := range []string{".d.ts", ".spec.ts", ".test.ts"} {
		if strings.HasSuffix(name, suffix) {
			return false
		}
	}
	return true
}
