package dicom

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jpfielding/dcmtags.go/pkg/dicom/tag"
	"github.com/jpfielding/dcmtags.go/pkg/dicom/transfer"
)

// ErrNotDICOM is returned when a file fails the preamble/magic check
var ErrNotDICOM = errors.New("not a DICOM file: missing DICM magic")

// Reader reads DICOM file headers
type Reader struct {
	r          io.Reader
	syntax     transfer.Syntax
	explicitVR bool
	order      binary.ByteOrder
}

// NewReader creates a new DICOM header reader
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r:          r,
		explicitVR: true,
		order:      binary.LittleEndian,
	}
}

// Sniff checks the 132-byte signature (128-byte preamble + "DICM")
// without consuming more of the reader than the signature itself.
func Sniff(r io.Reader) bool {
	sig := make([]byte, 132)
	if _, err := io.ReadFull(r, sig); err != nil {
		return false
	}
	return bytes.Equal(sig[128:], []byte("DICM"))
}

// SniffFile reports whether the file at path carries a DICOM signature
func SniffFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	return Sniff(f)
}

// ReadHeaderFile reads the header of a DICOM file from disk,
// stopping before any pixel data.
func ReadHeaderFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()
	return ReadHeader(f)
}

// ReadHeader reads File Meta Information and the main dataset up to,
// but not including, Pixel Data (7FE0,0010). Bulk payload is never
// materialized; a truncated or malformed payload section cannot fail
// a header read.
func ReadHeader(r io.Reader) (*Dataset, error) {
	return NewReader(r).ReadDataset()
}

// ReadDataset reads the header elements of a DICOM stream
func (r *Reader) ReadDataset() (*Dataset, error) {
	ds := NewDataset()

	preamble := make([]byte, 128)
	if _, err := io.ReadFull(r.r, preamble); err != nil {
		return nil, ErrNotDICOM
	}
	magic := make([]byte, 4)
	if _, err := io.ReadFull(r.r, magic); err != nil {
		return nil, ErrNotDICOM
	}
	if string(magic) != "DICM" {
		return nil, ErrNotDICOM
	}

	// Group 0002 (File Meta Information) is ALWAYS Explicit VR Little Endian
	r.explicitVR = true
	r.order = binary.LittleEndian

	metaDone := false
	for {
		t, err := r.readTag()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading tag: %w", err)
		}

		// Transition from File Meta to the main dataset: the negotiated
		// transfer syntax takes effect here. Without a TransferSyntaxUID
		// fall back to Implicit VR Little Endian.
		if !metaDone && !t.IsFileMeta() {
			metaDone = true
			if r.syntax == "" {
				r.syntax = transfer.ImplicitVRLittleEndian
			}
			r.applySyntax()
			if r.order == binary.BigEndian {
				// The tag was already consumed little endian; swap it.
				t = Tag{Group: swap16(t.Group), Element: swap16(t.Element)}
			}
		}

		// Header read stops at the bulk payload boundary.
		if t == tag.PixelData {
			break
		}

		elem, err := r.readElementWithTag(t)
		if err != nil {
			return nil, fmt.Errorf("reading element %v: %w", t, err)
		}
		ds.Put(elem)

		// TransferSyntaxUID governs the rest of the file past File Meta.
		if t == tag.TransferSyntaxUID {
			if uid, ok := elem.GetString(); ok {
				r.syntax = transfer.FromUID(uid)
			}
		}
	}

	return ds, nil
}

// readElementWithTag reads a DICOM element after the tag has been read.
// File Meta elements are always Explicit VR Little Endian, whatever the
// negotiated transfer syntax says about the main dataset.
func (r *Reader) readElementWithTag(t Tag) (*Element, error) {
	var vr string
	var vl uint32

	explicit, order := r.explicitVR, r.order
	if t.IsFileMeta() {
		explicit, order = true, binary.ByteOrder(binary.LittleEndian)
	}

	if explicit {
		vrBytes := make([]byte, 2)
		if _, err := io.ReadFull(r.r, vrBytes); err != nil {
			return nil, err
		}
		vr = string(vrBytes)

		if isLongVR(vr) {
			reserved := make([]byte, 2)
			if _, err := io.ReadFull(r.r, reserved); err != nil {
				return nil, err
			}
			if err := binary.Read(r.r, order, &vl); err != nil {
				return nil, err
			}
		} else {
			var vl16 uint16
			if err := binary.Read(r.r, order, &vl16); err != nil {
				return nil, err
			}
			vl = uint32(vl16)
		}
	} else {
		// Implicit VR: VL is always 4 bytes, VR is determined by tag
		if err := binary.Read(r.r, order, &vl); err != nil {
			return nil, err
		}
		vr = implicitVR(t)
	}

	value, err := r.readValue(vr, vl, order)
	if err != nil {
		return nil, err
	}

	return &Element{Tag: t, VR: vr, Value: value}, nil
}

// readTag reads a DICOM tag
func (r *Reader) readTag() (Tag, error) {
	var group, element uint16
	if err := binary.Read(r.r, r.order, &group); err != nil {
		return Tag{}, err
	}
	if err := binary.Read(r.r, r.order, &element); err != nil {
		return Tag{}, err
	}
	return Tag{Group: group, Element: element}, nil
}

// readValue reads the value based on VR and VL
func (r *Reader) readValue(vr string, vl uint32, order binary.ByteOrder) (interface{}, error) {
	if vl == 0xFFFFFFFF {
		// Undefined length in the header region can only be a
		// sequence; skip it element by element.
		return r.skipUndefinedLengthSequence()
	}

	data := make([]byte, vl)
	if _, err := io.ReadFull(r.r, data); err != nil {
		return nil, err
	}
	return parseValue(vr, data, order)
}

// skipUndefinedLengthSequence skips over a sequence with undefined length,
// reading until Sequence Delimitation Item (FFFE,E0DD)
func (r *Reader) skipUndefinedLengthSequence() (interface{}, error) {
	for {
		itemTag, err := r.readTag()
		if err != nil {
			if err == io.EOF {
				return nil, nil
			}
			return nil, fmt.Errorf("reading sequence item tag: %w", err)
		}

		// Delimiters carry a 4-byte length and no VR.
		if itemTag.Group == 0xFFFE {
			var delimLen uint32
			if err := binary.Read(r.r, r.order, &delimLen); err != nil {
				return nil, fmt.Errorf("reading delimiter length: %w", err)
			}
			switch itemTag.Element {
			case 0xE0DD: // Sequence Delimitation
				return nil, nil
			case 0xE00D: // Item Delimitation
				continue
			case 0xE000: // Item Start
				if delimLen != 0xFFFFFFFF && delimLen > 0 {
					if _, err := io.CopyN(io.Discard, r.r, int64(delimLen)); err != nil {
						return nil, fmt.Errorf("skipping item data: %w", err)
					}
				}
				continue
			}
		}

		// Regular element inside the sequence: parse length and skip.
		var vl uint32
		if r.explicitVR {
			var vrBytes [2]byte
			if _, err := io.ReadFull(r.r, vrBytes[:]); err != nil {
				return nil, fmt.Errorf("reading VR: %w", err)
			}
			if isLongVR(string(vrBytes[:])) {
				var reserved uint16
				binary.Read(r.r, r.order, &reserved)
				binary.Read(r.r, r.order, &vl)
			} else {
				var vl16 uint16
				binary.Read(r.r, r.order, &vl16)
				vl = uint32(vl16)
			}
		} else {
			binary.Read(r.r, r.order, &vl)
		}

		if vl != 0xFFFFFFFF && vl > 0 {
			if _, err := io.CopyN(io.Discard, r.r, int64(vl)); err != nil {
				return nil, fmt.Errorf("skipping element value: %w", err)
			}
		} else if vl == 0xFFFFFFFF {
			if _, err := r.skipUndefinedLengthSequence(); err != nil {
				return nil, err
			}
		}
	}
}

// applySyntax updates reader settings from the negotiated transfer syntax
func (r *Reader) applySyntax() {
	r.explicitVR = r.syntax.IsExplicitVR()
	if r.syntax.IsLittleEndian() {
		r.order = binary.LittleEndian
	} else {
		r.order = binary.BigEndian
	}
}

func swap16(v uint16) uint16 {
	return v<<8 | v>>8
}

// isLongVR returns true if VR uses 4-byte VL (OB, OD, OF, OL, OW, SQ, UC, UR, UT, UN)
func isLongVR(vr string) bool {
	switch vr {
	case "OB", "OD", "OF", "OL", "OW", "SQ", "UC", "UR", "UT", "UN":
		return true
	}
	return false
}

// implicitVR returns VR for a tag when using Implicit VR transfer syntax.
// Covers the exporter's dictionary; anything else reads as unknown bytes.
func implicitVR(t Tag) string {
	switch t {
	case tag.StudyDate:
		return "DA"
	case tag.StudyTime:
		return "TM"
	case tag.Modality:
		return "CS"
	case tag.Manufacturer, tag.InstitutionName, tag.ManufacturerModelName, tag.StudyDescription:
		return "LO"
	case tag.StationName, tag.AccessionNumber:
		return "SH"
	case tag.SOPClassUID, tag.SOPInstanceUID, tag.StudyInstanceUID:
		return "UI"
	case tag.PatientName:
		return "PN"
	case tag.PatientID:
		return "LO"
	}
	if t.IsFileMeta() {
		return "UL"
	}
	return "UN"
}

// parseValue converts raw bytes to a typed value based on VR
func parseValue(vr string, data []byte, order binary.ByteOrder) (interface{}, error) {
	switch vr {
	case "UI", "SH", "LO", "ST", "LT", "UT", "PN", "CS", "DA", "TM", "DT", "AS", "IS", "DS", "AE":
		// String types - trim null padding
		s := string(data)
		for len(s) > 0 && (s[len(s)-1] == 0 || s[len(s)-1] == ' ') {
			s = s[:len(s)-1]
		}
		return s, nil
	case "US":
		if len(data) == 2 {
			return order.Uint16(data), nil
		}
		values := make([]uint16, len(data)/2)
		for i := range values {
			values[i] = order.Uint16(data[i*2:])
		}
		return values, nil
	case "UL":
		if len(data) == 4 {
			return order.Uint32(data), nil
		}
		values := make([]uint32, len(data)/4)
		for i := range values {
			values[i] = order.Uint32(data[i*4:])
		}
		return values, nil
	case "SS":
		if len(data) == 2 {
			return int16(order.Uint16(data)), nil
		}
	case "SL":
		if len(data) == 4 {
			return int32(order.Uint32(data)), nil
		}
	case "FL":
		if len(data) == 4 {
			var f float32
			binary.Read(bytes.NewReader(data), order, &f)
			return f, nil
		}
	case "FD":
		if len(data) == 8 {
			var f float64
			binary.Read(bytes.NewReader(data), order, &f)
			return f, nil
		}
	}
	// OB, OW, UN and anything unhandled stays raw
	return data, nil
}
