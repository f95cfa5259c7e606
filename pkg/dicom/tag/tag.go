// Package tag defines the DICOM tags read by the exporter
package tag

import (
	"encoding/json"
	"fmt"
)

// Tag represents a DICOM tag with Group and Element
type Tag struct {
	Group   uint16
	Element uint16
}

// String returns a string representation of the Tag (GGGG,EEEE)
func (t Tag) String() string {
	return fmt.Sprintf("(%04X,%04X)", t.Group, t.Element)
}

// MarshalJSON returns a JSON representation of the Tag
func (t Tag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// New creates a new Tag
func New(group, element uint16) Tag {
	return Tag{Group: group, Element: element}
}

// Equals compares two tags
func (t Tag) Equals(other Tag) bool {
	return t.Group == other.Group && t.Element == other.Element
}

// Less orders tags by group, then element
func (t Tag) Less(other Tag) bool {
	if t.Group != other.Group {
		return t.Group < other.Group
	}
	return t.Element < other.Element
}

// IsFileMeta returns true if this tag is in the File Meta Information group
func (t Tag) IsFileMeta() bool {
	return t.Group == 0x0002
}

// IsPrivate returns true if this is a private tag (odd group number)
func (t Tag) IsPrivate() bool {
	return t.Group%2 == 1
}

// File Meta Information (Group 0002)
var (
	FileMetaInformationGroupLength = Tag{0x0002, 0x0000}
	FileMetaInformationVersion     = Tag{0x0002, 0x0001}
	MediaStorageSOPClassUID        = Tag{0x0002, 0x0002}
	MediaStorageSOPInstanceUID     = Tag{0x0002, 0x0003}
	TransferSyntaxUID              = Tag{0x0002, 0x0010}
	ImplementationClassUID         = Tag{0x0002, 0x0012}
	ImplementationVersionName      = Tag{0x0002, 0x0013}
	SourceApplicationEntityTitle   = Tag{0x0002, 0x0016}
)

// General Study Module
var (
	StudyDate        = Tag{0x0008, 0x0020}
	StudyTime        = Tag{0x0008, 0x0030}
	AccessionNumber  = Tag{0x0008, 0x0050}
	StudyDescription = Tag{0x0008, 0x1030}
	StudyInstanceUID = Tag{0x0020, 0x000D}
)

// General Series / Equipment Modules
var (
	Modality              = Tag{0x0008, 0x0060}
	Manufacturer          = Tag{0x0008, 0x0070}
	InstitutionName       = Tag{0x0008, 0x0080}
	StationName           = Tag{0x0008, 0x1010}
	ManufacturerModelName = Tag{0x0008, 0x1090}
)

// SOP Common Module
var (
	SOPClassUID    = Tag{0x0008, 0x0016}
	SOPInstanceUID = Tag{0x0008, 0x0018}
)

// Patient Module
var (
	PatientName = Tag{0x0010, 0x0010}
	PatientID   = Tag{0x0010, 0x0020}
)

// Bulk payload and delimiters
var (
	PixelData                = Tag{0x7FE0, 0x0010}
	Item                     = Tag{0xFFFE, 0xE000}
	ItemDelimitationItem     = Tag{0xFFFE, 0xE00D}
	SequenceDelimitationItem = Tag{0xFFFE, 0xE0DD}
)

// LookupName returns a human-readable name for common tags
func (t Tag) LookupName() string {
	switch t {
	case MediaStorageSOPClassUID:
		return "MediaStorageSOPClassUID"
	case MediaStorageSOPInstanceUID:
		return "MediaStorageSOPInstanceUID"
	case TransferSyntaxUID:
		return "TransferSyntaxUID"
	case SourceApplicationEntityTitle:
		return "SourceApplicationEntityTitle"
	case StudyDate:
		return "StudyDate"
	case StudyTime:
		return "StudyTime"
	case StudyDescription:
		return "StudyDescription"
	case Modality:
		return "Modality"
	case Manufacturer:
		return "Manufacturer"
	case InstitutionName:
		return "InstitutionName"
	case StationName:
		return "StationName"
	case ManufacturerModelName:
		return "ManufacturerModelName"
	case SOPClassUID:
		return "SOPClassUID"
	case SOPInstanceUID:
		return "SOPInstanceUID"
	case PatientName:
		return "PatientName"
	case PatientID:
		return "PatientID"
	case PixelData:
		return "PixelData"
	default:
		return ""
	}
}
