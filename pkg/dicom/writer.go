package dicom

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"
	"sync/atomic"
)

// WriteFile writes a dataset to a DICOM file
func WriteFile(path string, ds *Dataset) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return Write(f, ds)
}

// Write writes a dataset to a writer using Explicit VR Little Endian.
// File Meta Information precedes the main dataset, as on disk.
func Write(w io.Writer, ds *Dataset) (int64, error) {
	cw := &CountingWriter{Writer: w}

	// Preamble (128 bytes 0x00) + DICM magic
	preamble := make([]byte, 128)
	if _, err := cw.Write(preamble); err != nil {
		return cw.Count.Load(), err
	}
	if _, err := cw.Write([]byte("DICM")); err != nil {
		return cw.Count.Load(), err
	}

	if _, err := writeSection(cw, ds.Meta); err != nil {
		return cw.Count.Load(), err
	}
	if _, err := writeSection(cw, ds.Elements); err != nil {
		return cw.Count.Load(), err
	}
	return cw.Count.Load(), nil
}

func writeSection(w io.Writer, elements map[Tag]*Element) (int64, error) {
	var elems []*Element
	for _, elem := range elements {
		elems = append(elems, elem)
	}
	sort.Slice(elems, func(i, j int) bool {
		return elems[i].Tag.Less(elems[j].Tag)
	})

	cw := &CountingWriter{Writer: w}
	for _, elem := range elems {
		if err := writeElement(cw, elem); err != nil {
			return cw.Count.Load(), fmt.Errorf("writing element %v: %w", elem.Tag, err)
		}
	}
	return cw.Count.Load(), nil
}

func writeElement(w io.Writer, elem *Element) error {
	if err := binary.Write(w, binary.LittleEndian, elem.Tag.Group); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, elem.Tag.Element); err != nil {
		return err
	}

	vr := elem.VR
	if len(vr) != 2 {
		vr = "UN"
	}
	if _, err := w.Write([]byte(vr)); err != nil {
		return err
	}

	valBytes, err := encodeValue(elem.Value, vr)
	if err != nil {
		return err
	}

	if isLongVR(vr) {
		// Reserved 2 bytes, then 4-byte length
		if _, err := w.Write([]byte{0, 0}); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(len(valBytes))); err != nil {
			return err
		}
	} else {
		if err := binary.Write(w, binary.LittleEndian, uint16(len(valBytes))); err != nil {
			return err
		}
	}

	_, err = w.Write(valBytes)
	return err
}

// encodeValue renders a value as even-length bytes for the given VR
func encodeValue(v interface{}, vr string) ([]byte, error) {
	if v == nil {
		return []byte{}, nil
	}
	switch val := v.(type) {
	case string:
		b := []byte(val)
		if len(b)%2 != 0 {
			b = append(b, ' ')
		}
		return b, nil
	case []string:
		// Multi-valued string (backslash separated)
		joined := ""
		for i, s := range val {
			if i > 0 {
				joined += "\\"
			}
			joined += s
		}
		b := []byte(joined)
		if len(b)%2 != 0 {
			b = append(b, ' ')
		}
		return b, nil
	case uint16:
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, val)
		return b, nil
	case uint32:
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, val)
		return b, nil
	case []uint16:
		b := make([]byte, len(val)*2)
		for i, u := range val {
			binary.LittleEndian.PutUint16(b[i*2:], u)
		}
		return b, nil
	case []byte:
		b := val
		if len(b)%2 != 0 {
			b = append(append([]byte{}, b...), 0)
		}
		return b, nil
	}
	return nil, fmt.Errorf("unsupported value type %T for VR %s", v, vr)
}

type CountingWriter struct {
	Count  atomic.Int64
	Writer io.Writer
}

func (c *CountingWriter) Write(p []byte) (int, error) {
	n, err := c.Writer.Write(p)
	if err == nil {
		c.Count.Add(int64(n))
	}
	return n, err
}
