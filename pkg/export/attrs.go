// Package export extracts a fixed set of DICOM attributes from a
// directory of files and materializes them as CSV and
// newline-delimited JSON, plus optional per-file tag dumps.
package export

import (
	"github.com/jpfielding/dcmtags.go/pkg/dicom/tag"
)

// ArtifactBase is the basename shared by the CSV and JSON artifacts
const ArtifactBase = "export_dicom_tags"

// Derived column names
const (
	ColFilename           = "filename"
	ColTransferSyntaxName = "transferSyntaxName"
	ColExtractDate        = "extract_date"
)

// Attribute maps a logical attribute name to its DICOM tag. Meta marks
// attributes read from File Meta Information (group 0002) instead of
// the main dataset.
type Attribute struct {
	Name string
	Tag  tag.Tag
	Meta bool
}

// Attributes is the fixed, ordered attribute map. The order defines the
// output column order.
var Attributes = []Attribute{
	{Name: "modality", Tag: tag.Modality},
	{Name: "sopInstanceUid", Tag: tag.MediaStorageSOPInstanceUID, Meta: true},
	{Name: "institution_name", Tag: tag.InstitutionName},
	{Name: "manufacturer", Tag: tag.Manufacturer},
	{Name: "manufacturer_model", Tag: tag.ManufacturerModelName},
	{Name: "sourceAET", Tag: tag.SourceApplicationEntityTitle, Meta: true},
	{Name: "station_name", Tag: tag.StationName},
	{Name: "study_description", Tag: tag.StudyDescription},
	{Name: "study_date", Tag: tag.StudyDate},
	{Name: "study_time", Tag: tag.StudyTime},
	{Name: "transferSyntaxUid", Tag: tag.TransferSyntaxUID, Meta: true},
}

// Columns returns the full output column order:
// filename, the attribute names, transferSyntaxName, extract_date.
func Columns() []string {
	cols := make([]string, 0, len(Attributes)+3)
	cols = append(cols, ColFilename)
	for _, attr := range Attributes {
		cols = append(cols, attr.Name)
	}
	cols = append(cols, ColTransferSyntaxName, ColExtractDate)
	return cols
}

// Record holds one row of extracted values keyed by column name.
// Missing attributes stay at the empty string; keys are never absent.
type Record map[string]string

// NewRecord creates a record with every extraction column present and
// empty, except filename.
func NewRecord(filename string) Record {
	rec := Record{ColFilename: filename, ColTransferSyntaxName: ""}
	for _, attr := range Attributes {
		rec[attr.Name] = ""
	}
	return rec
}
