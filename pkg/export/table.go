package export

import (
	"strconv"
	"strings"
	"time"
)

// Timestamp formats written to the output artifacts
const (
	extractDateLayout = "2006-01-02 15:04:05"
	studyDateLayout   = "2006-01-02"
	studyTimeLayout   = "15:04:05 PM"
)

// dateLayouts are the raw study_date shapes accepted for coercion
var dateLayouts = []string{
	"20060102",
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
}

// Table is an ordered collection of records sharing identical columns
type Table struct {
	Columns []string
	Rows    []Record
}

// Tabulate assembles records into a table with the canonical column
// order, stamps extract_date on every row, and coerces study_date and
// study_time to their canonical string formats. Returns nil when there
// is nothing to tabulate.
func Tabulate(records []Record, now time.Time) *Table {
	if len(records) == 0 {
		return nil
	}
	extractDate := now.Format(extractDateLayout)
	for _, rec := range records {
		rec[ColExtractDate] = extractDate
		rec["study_date"] = coerceStudyDate(rec["study_date"])
		rec["study_time"] = coerceStudyTime(rec["study_time"])
	}
	return &Table{Columns: Columns(), Rows: records}
}

// coerceStudyDate reparses a raw date value to YYYY-MM-DD.
// Unparseable values become blank, not an error.
func coerceStudyDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(studyDateLayout)
		}
	}
	return ""
}

// coerceStudyTime interprets a raw value as seconds since epoch and
// reformats to HH:MM:SS with an AM/PM marker (UTC). The hour field
// stays 24-hour alongside the marker. Unparseable values become blank.
func coerceStudyTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return ""
	}
	whole := int64(secs)
	nanos := int64((secs - float64(whole)) * float64(time.Second))
	return time.Unix(whole, nanos).UTC().Format(studyTimeLayout)
}
