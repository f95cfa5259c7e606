// Package transfer defines DICOM Transfer Syntaxes
package transfer

// Syntax represents a DICOM Transfer Syntax
type Syntax string

// Standard Transfer Syntaxes
const (
	// Uncompressed
	ImplicitVRLittleEndian Syntax = "1.2.840.10008.1.2"
	ExplicitVRLittleEndian Syntax = "1.2.840.10008.1.2.1"
	ExplicitVRBigEndian    Syntax = "1.2.840.10008.1.2.2" // Retired

	// JPEG
	JPEGBaseline8Bit       Syntax = "1.2.840.10008.1.2.4.50"
	JPEGBaseline12Bit      Syntax = "1.2.840.10008.1.2.4.51"
	JPEGLosslessFirstOrder Syntax = "1.2.840.10008.1.2.4.70"
	JPEGLSLossless         Syntax = "1.2.840.10008.1.2.4.80"
	JPEG2000Lossless       Syntax = "1.2.840.10008.1.2.4.90"
	JPEG2000               Syntax = "1.2.840.10008.1.2.4.91"

	// Other
	RLELossless Syntax = "1.2.840.10008.1.2.5"
)

// keywords maps the known transfer syntaxes to their compact names.
// Unknown syntaxes resolve to the empty string.
var keywords = map[Syntax]string{
	ImplicitVRLittleEndian: "ImplicitVRLittleEndian",
	ExplicitVRLittleEndian: "ExplicitVRLittleEndian",
	ExplicitVRBigEndian:    "ExplicitVRBigEndian",
	JPEGBaseline8Bit:       "JPEGBaseLineLossy8bit",
	JPEGBaseline12Bit:      "JPEGBaseLineLossy12bit",
	JPEGLosslessFirstOrder: "JPEGLossless",
	JPEGLSLossless:         "JPEGLSLossless",
	JPEG2000Lossless:       "JPEG2000Lossless",
	JPEG2000:               "JPEG2000Lossy",
	RLELossless:            "RLELossless",
}

// Keyword returns the compact name for a known transfer syntax,
// or the empty string when the syntax is not recognized.
func (s Syntax) Keyword() string {
	return keywords[s]
}

// Known returns true if the syntax is in the keyword table
func (s Syntax) Known() bool {
	_, ok := keywords[s]
	return ok
}

// IsExplicitVR returns true if this transfer syntax uses explicit VR
func (s Syntax) IsExplicitVR() bool {
	return s != ImplicitVRLittleEndian
}

// IsLittleEndian returns true if this transfer syntax uses little endian byte order
func (s Syntax) IsLittleEndian() bool {
	return s != ExplicitVRBigEndian
}

// IsEncapsulated returns true if pixel data is encapsulated (compressed)
func (s Syntax) IsEncapsulated() bool {
	switch s {
	case ImplicitVRLittleEndian, ExplicitVRLittleEndian, ExplicitVRBigEndian:
		return false
	default:
		return true
	}
}

// FromUID converts a UID string to a Syntax
func FromUID(uid string) Syntax {
	return Syntax(uid)
}
