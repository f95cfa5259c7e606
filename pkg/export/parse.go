package export

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/jpfielding/dcmtags.go/pkg/dicom"
	"github.com/jpfielding/dcmtags.go/pkg/dicom/transfer"
)

// ParseFile extracts the attribute map from a single file's header.
// The bulk payload is never read. When sanitize is set, every
// extracted value passes through Sanitize.
func ParseFile(path string, sanitize bool) (Record, error) {
	rec := NewRecord(filepath.Base(path))

	if !dicom.SniffFile(path) {
		return nil, dicom.ErrNotDICOM
	}
	ds, err := dicom.ReadHeaderFile(path)
	if err != nil {
		return nil, err
	}

	for _, attr := range Attributes {
		var elem *dicom.Element
		var ok bool
		if attr.Meta {
			elem, ok = ds.FindMeta(attr.Tag)
		} else {
			elem, ok = ds.Find(attr.Tag)
		}
		if !ok {
			continue
		}
		val := elem.StringValue()
		if attr.Name == "transferSyntaxUid" {
			rec[ColTransferSyntaxName] = transfer.FromUID(val).Keyword()
		}
		if sanitize {
			val = Sanitize(val)
		}
		rec[attr.Name] = val
	}
	return rec, nil
}

// ParseAll extracts records from each path in order. Per-file failures
// (bad signature, malformed header, I/O error) are logged and skipped;
// they never abort the batch. Returns the records plus the count of
// files that failed.
func ParseAll(ctx context.Context, paths []string, sanitize bool) ([]Record, int) {
	var records []Record
	failed := 0
	for _, path := range paths {
		rec, err := ParseFile(path, sanitize)
		if err != nil {
			failed++
			slog.ErrorContext(ctx, "skipping file", "path", limitPath(path), "error", err)
			continue
		}
		slog.InfoContext(ctx, "extracted tags", "path", limitPath(path))
		records = append(records, rec)
	}
	return records, failed
}

// limitPath trims a path to its last two parts for log readability
func limitPath(path string) string {
	dir, base := filepath.Split(filepath.Clean(path))
	parent := filepath.Base(dir)
	if parent == "." || parent == string(filepath.Separator) || parent == "" {
		return base
	}
	return filepath.Join(parent, base)
}
