package input

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListOptions controls which directory entries become inputs.
type ListOptions struct {
	// Recursive descends into subdirectories.
	Recursive bool

	// SkipHidden excludes files and directories starting with a dot.
	SkipHidden bool

	// MaxSize is copied into every File input (0 = no limit).
	MaxSize int64
}

// List returns one File input per regular file found in dir, sorted by
// path. A symlink is listed when its target is a regular file; symlinked
// directories are not descended into. Nested files are named by their
// path relative to dir.
func List(ctx context.Context, dir string, opts ListOptions) ([]Input, error) {
	var inputs []Input

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if path == dir {
			return nil
		}

		if d.IsDir() {
			if !opts.Recursive || (opts.SkipHidden && isHidden(d.Name())) {
				return filepath.SkipDir
			}
			return nil
		}

		if opts.SkipHidden && isHidden(d.Name()) {
			return nil
		}
		if !isRegularFile(path, d) {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		inputs = append(inputs, &File{
			Path:        path,
			DisplayName: filepath.ToSlash(rel),
			MaxSize:     opts.MaxSize,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(inputs, func(i, j int) bool {
		return inputs[i].Name() < inputs[j].Name()
	})
	return inputs, nil
}

func isRegularFile(path string, d os.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&os.ModeSymlink == 0 {
		return false
	}

	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
