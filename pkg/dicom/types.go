package dicom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jpfielding/dcmtags.go/pkg/dicom/tag"
)

// Dataset represents the parsed header of a DICOM file. File Meta
// Information (group 0002) is kept apart from the main dataset, the
// same split the wire format itself makes.
type Dataset struct {
	Meta     map[Tag]*Element
	Elements map[Tag]*Element
}

// Element represents a single DICOM element
type Element struct {
	Tag   Tag
	VR    string      // Value Representation
	Value interface{} // Parsed value
}

// Tag alias to avoid duplication
type Tag = tag.Tag

// NewDataset creates an empty dataset
func NewDataset() *Dataset {
	return &Dataset{
		Meta:     make(map[Tag]*Element),
		Elements: make(map[Tag]*Element),
	}
}

// FindMeta returns a File Meta Information element by tag
func (ds *Dataset) FindMeta(t Tag) (*Element, bool) {
	elem, ok := ds.Meta[t]
	return elem, ok
}

// Find returns a main dataset element by tag
func (ds *Dataset) Find(t Tag) (*Element, bool) {
	elem, ok := ds.Elements[t]
	return elem, ok
}

// Put stores an element into the meta or main section based on its group
func (ds *Dataset) Put(elem *Element) {
	if elem.Tag.IsFileMeta() {
		ds.Meta[elem.Tag] = elem
		return
	}
	ds.Elements[elem.Tag] = elem
}

// GetString returns a string value from an element
func (elem *Element) GetString() (string, bool) {
	if s, ok := elem.Value.(string); ok {
		return s, true
	}
	return "", false
}

// GetInt returns an int value from an element
func (elem *Element) GetInt() (int, bool) {
	switch v := elem.Value.(type) {
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case int:
		return v, true
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i, true
		}
	}
	return 0, false
}

// StringValue renders the element value as a trimmed string suitable
// for tabular output. Binary payloads render as an empty string.
func (elem *Element) StringValue() string {
	switch v := elem.Value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case uint16, uint32, int16, int32, float32, float64:
		return fmt.Sprintf("%v", v)
	case []byte:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
