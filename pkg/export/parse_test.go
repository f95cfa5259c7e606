package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpfielding/dcmtags.go/pkg/dicom"
	"github.com/jpfielding/dcmtags.go/pkg/dicom/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFixture synthesizes a valid DICOM file carrying the exporter's
// attribute set and returns its path.
func writeFixture(t *testing.T, dir, name string, override map[tag.Tag]string) string {
	t.Helper()
	values := map[tag.Tag]string{
		tag.MediaStorageSOPClassUID:      "1.2.840.10008.5.1.4.1.1.2",
		tag.MediaStorageSOPInstanceUID:   "1.2.276.0.50.1.9.1685.1",
		tag.TransferSyntaxUID:            "1.2.840.10008.1.2.1",
		tag.SourceApplicationEntityTitle: "STORESCU",
		tag.Modality:                     "CT",
		tag.InstitutionName:              "General Hospital",
		tag.Manufacturer:                 "GE MEDICAL SYSTEMS",
		tag.ManufacturerModelName:        "LightSpeed VCT",
		tag.StationName:                  "CT01",
		tag.StudyDescription:             "CT HEAD W/O CONTRAST",
		tag.StudyDate:                    "20230115",
		tag.StudyTime:                    "093000",
	}
	for k, v := range override {
		values[k] = v
	}

	vrs := map[tag.Tag]string{
		tag.MediaStorageSOPClassUID:      "UI",
		tag.MediaStorageSOPInstanceUID:   "UI",
		tag.TransferSyntaxUID:            "UI",
		tag.SourceApplicationEntityTitle: "AE",
		tag.Modality:                     "CS",
		tag.InstitutionName:              "LO",
		tag.Manufacturer:                 "LO",
		tag.ManufacturerModelName:        "LO",
		tag.StationName:                  "SH",
		tag.StudyDescription:             "LO",
		tag.StudyDate:                    "DA",
		tag.StudyTime:                    "TM",
	}

	ds := dicom.NewDataset()
	for tg, val := range values {
		if val == "" {
			continue
		}
		ds.Put(&dicom.Element{Tag: tg, VR: vrs[tg], Value: val})
	}

	path := filepath.Join(dir, name)
	_, err := dicom.WriteFile(path, ds)
	require.NoError(t, err)
	return path
}

func TestParseFile_ExtractsAttributeMap(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "scan.dcm", nil)

	rec, err := ParseFile(path, false)
	require.NoError(t, err)

	assert.Equal(t, "scan.dcm", rec[ColFilename])
	assert.Equal(t, "CT", rec["modality"])
	assert.Equal(t, "1.2.276.0.50.1.9.1685.1", rec["sopInstanceUid"])
	assert.Equal(t, "General Hospital", rec["institution_name"])
	assert.Equal(t, "GE MEDICAL SYSTEMS", rec["manufacturer"])
	assert.Equal(t, "LightSpeed VCT", rec["manufacturer_model"])
	assert.Equal(t, "STORESCU", rec["sourceAET"])
	assert.Equal(t, "CT01", rec["station_name"])
	assert.Equal(t, "CT HEAD W/O CONTRAST", rec["study_description"])
	assert.Equal(t, "20230115", rec["study_date"])
	assert.Equal(t, "093000", rec["study_time"])
	assert.Equal(t, "1.2.840.10008.1.2.1", rec["transferSyntaxUid"])
	assert.Equal(t, "ExplicitVRLittleEndian", rec[ColTransferSyntaxName])
}

func TestParseFile_UnknownTransferSyntaxNameIsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "scan.dcm", map[tag.Tag]string{
		tag.TransferSyntaxUID: "1.2.840.10008.1.2.1", // file stays readable
	})
	rec, err := ParseFile(path, false)
	require.NoError(t, err)
	assert.Equal(t, "ExplicitVRLittleEndian", rec[ColTransferSyntaxName])

	// An unknown UID resolves to an empty keyword
	rec2 := NewRecord("x.dcm")
	assert.Equal(t, "", rec2[ColTransferSyntaxName])
}

func TestParseFile_MissingTagsStayEmpty(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "sparse.dcm", map[tag.Tag]string{
		tag.InstitutionName:       "",
		tag.Manufacturer:          "",
		tag.ManufacturerModelName: "",
		tag.StationName:           "",
	})

	rec, err := ParseFile(path, false)
	require.NoError(t, err)
	assert.Equal(t, "", rec["institution_name"])
	assert.Equal(t, "", rec["manufacturer"])
	assert.Equal(t, "", rec["manufacturer_model"])
	assert.Equal(t, "", rec["station_name"])
	// keys are present even when the tag is absent
	for _, attr := range Attributes {
		_, ok := rec[attr.Name]
		assert.True(t, ok, "attribute %q absent", attr.Name)
	}
}

func TestParseFile_SanitizeApplied(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "dirty.dcm", map[tag.Tag]string{
		tag.StudyDescription: "CT HEAD (W/O  CONTRAST)!",
	})

	rec, err := ParseFile(path, true)
	require.NoError(t, err)
	assert.Equal(t, "CT HEAD WO CONTRAST", rec["study_description"])

	rec, err = ParseFile(path, false)
	require.NoError(t, err)
	assert.Equal(t, "CT HEAD (W/O  CONTRAST)!", rec["study_description"])
}

func TestParseFile_RejectsNonDICOM(t *testing.T) {
	dir := t.TempDir()
	bogus := filepath.Join(dir, "bogus.dcm")
	require.NoError(t, os.WriteFile(bogus, []byte("definitely not dicom"), 0o644))

	_, err := ParseFile(bogus, false)
	assert.ErrorIs(t, err, dicom.ErrNotDICOM)
}

func TestParseAll_InvalidFilesExcludedNotFatal(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "good1.dcm", nil)
	writeFixture(t, dir, "good2.dcm", nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.dcm"), []byte("junk"), 0o644))

	paths := Discover(context.Background(), dir, ".dcm", false)
	require.Len(t, paths, 3)

	records, failed := ParseAll(context.Background(), paths, false)
	assert.Len(t, records, 2)
	assert.Equal(t, 1, failed)
}

func TestParseAll_EmptyInput(t *testing.T) {
	records, failed := ParseAll(context.Background(), nil, false)
	assert.Empty(t, records)
	assert.Zero(t, failed)
}
