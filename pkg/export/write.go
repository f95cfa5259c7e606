package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// WriteOutputs replaces any prior artifacts in dir and writes the table
// as newline-delimited JSON and fully quoted CSV. Returns true only if
// both files exist afterward with nonzero size. Write failures are
// logged and surface as a false return, never a panic or a raised
// error crossing the batch boundary.
func WriteOutputs(ctx context.Context, t *Table, dir string) bool {
	jsonOK := writeArtifact(ctx, filepath.Join(dir, ArtifactBase+".json"), func() ([]byte, error) {
		return renderJSONLines(t)
	})
	csvOK := writeArtifact(ctx, filepath.Join(dir, ArtifactBase+".csv"), func() ([]byte, error) {
		return renderCSV(t), nil
	})
	return csvOK && jsonOK
}

// writeArtifact deletes any prior file at path (missing is fine),
// writes the rendered bytes, and verifies a nonzero-size result.
func writeArtifact(ctx context.Context, path string, render func() ([]byte, error)) bool {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.ErrorContext(ctx, "removing prior artifact", "path", limitPath(path), "error", err)
		return false
	}
	data, err := render()
	if err != nil {
		slog.ErrorContext(ctx, "rendering artifact", "path", limitPath(path), "error", err)
		return false
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		slog.ErrorContext(ctx, "writing artifact", "path", limitPath(path), "error", err)
		return false
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		slog.ErrorContext(ctx, "artifact missing or empty", "path", limitPath(path))
		return false
	}
	slog.InfoContext(ctx, "wrote artifact", "path", limitPath(path), "bytes", info.Size())
	return true
}

// renderJSONLines emits one JSON object per row with fields in table
// column order. encoding/json maps do not keep order, so objects are
// assembled by hand with per-value marshaling for escaping.
func renderJSONLines(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	for _, row := range t.Rows {
		buf.WriteByte('{')
		for i, col := range t.Columns {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(col)
			if err != nil {
				return nil, fmt.Errorf("marshaling column %q: %w", col, err)
			}
			val, err := json.Marshal(row[col])
			if err != nil {
				return nil, fmt.Errorf("marshaling value for %q: %w", col, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteString("}\n")
	}
	return buf.Bytes(), nil
}

// renderCSV emits a fully quoted comma-separated file with a header
// row. encoding/csv quotes only when required, so fields are quoted
// explicitly (embedded quotes doubled per RFC 4180).
func renderCSV(t *Table) []byte {
	var buf bytes.Buffer
	writeCSVLine(&buf, t.Columns)
	fields := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			fields[i] = row[col]
		}
		writeCSVLine(&buf, fields)
	}
	return buf.Bytes()
}

func writeCSVLine(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}
