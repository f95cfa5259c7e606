package export

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jpfielding/dcmtags.go/pkg/dicom"
)

// DumpAll purges prior .txt dumps from dir and writes the full
// human-readable tag listing of each input file to <stem>.txt.
// Per-file failures are logged and skipped; the batch continues.
func DumpAll(ctx context.Context, paths []string, dir string) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.ErrorContext(ctx, "creating dump dir", "path", dir, "error", err)
		return
	}

	purged := purgeDumps(ctx, dir)
	slog.InfoContext(ctx, "purged prior dumps", "count", purged, "path", limitPath(dir))

	dumped := 0
	for _, path := range paths {
		if dumpFile(ctx, path, dir) {
			dumped++
		}
	}
	slog.InfoContext(ctx, "dumped tag listings", "count", dumped, "path", limitPath(dir))
}

// purgeDumps removes every .txt file in dir and returns the count removed
func purgeDumps(ctx context.Context, dir string) int {
	matches, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return 0
	}
	sort.Strings(matches)
	purged := 0
	for _, match := range matches {
		if err := os.Remove(match); err != nil && !os.IsNotExist(err) {
			slog.ErrorContext(ctx, "removing prior dump", "path", limitPath(match), "error", err)
			continue
		}
		purged++
	}
	return purged
}

// dumpFile re-opens one file's header and writes its tag listing.
// Returns true when the dump file exists afterward with nonzero size.
func dumpFile(ctx context.Context, path, dir string) bool {
	ds, err := dicom.ReadHeaderFile(path)
	if err != nil {
		slog.ErrorContext(ctx, "skipping dump", "path", limitPath(path), "error", err)
		return false
	}

	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	dumpPath := filepath.Join(dir, stem+".txt")
	if err := os.WriteFile(dumpPath, []byte(ds.String()), 0o644); err != nil {
		slog.ErrorContext(ctx, "writing dump", "path", limitPath(dumpPath), "error", err)
		return false
	}
	info, err := os.Stat(dumpPath)
	return err == nil && info.Size() > 0
}
