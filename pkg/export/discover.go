package export

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// allowedExts restricts discovery to extensions the pipeline recognizes
var allowedExts = map[string]bool{
	".dcm":   true,
	".dicom": true,
	".gz":    true,
	".nii":   true,
}

// Discover returns the lexicographically sorted absolute paths of the
// regular files under dir whose extension matches ext. A missing
// directory or an extension outside the allowed set yields an empty
// list, not an error.
func Discover(ctx context.Context, dir, ext string, recursive bool) []string {
	var paths []string
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() && allowedExts[strings.ToLower(ext)] {
		if recursive {
			paths = discoverWalk(dir, ext)
		} else {
			paths = discoverFlat(dir, ext)
		}
	}
	sort.Strings(paths)
	slog.InfoContext(ctx, "found matching files",
		"count", len(paths), "ext", ext, "recursive", recursive)
	return paths
}

func discoverFlat(dir, ext string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || filepath.Ext(entry.Name()) != ext {
			continue
		}
		if abs, err := filepath.Abs(filepath.Join(dir, entry.Name())); err == nil {
			paths = append(paths, abs)
		}
	}
	return paths
}

func discoverWalk(dir, ext string) []string {
	var paths []string
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree, keep walking
		}
		if !d.Type().IsRegular() || filepath.Ext(path) != ext {
			return nil
		}
		if abs, err := filepath.Abs(path); err == nil {
			paths = append(paths, abs)
		}
		return nil
	})
	return paths
}
