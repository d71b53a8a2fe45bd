package perc

import (
	"encoding/binary"
	"fmt"
)

// byte offsets and sizes of the original header block fields.
const (
	ohbMarkerPayloadTypeOffset = 0
	ohbSequenceNumberOffset    = 1
	ohbTimestampOffset         = 3
	ohbSSRCOffset              = 7

	ohbShortSize = 7
	ohbLongSize  = 11
)

// OHBLayout is the layout of the original header block (OHB),
// the header fields that are protected together with the payload.
type OHBLayout struct {
	// name of the layout.
	Name string

	// whether the SSRC is part of the block.
	HasSSRC bool
}

// layouts.
var (
	// LayoutShort contains marker, payload type, sequence number and timestamp.
	LayoutShort = OHBLayout{Name: "short", HasSSRC: false}

	// LayoutLong contains marker, payload type, sequence number, timestamp and SSRC.
	LayoutLong = OHBLayout{Name: "long", HasSSRC: true}
)

// ParseOHBLayout parses a layout from its name.
func ParseOHBLayout(name string) (OHBLayout, error) {
	switch name {
	case LayoutShort.Name:
		return LayoutShort, nil
	case LayoutLong.Name:
		return LayoutLong, nil
	}
	return OHBLayout{}, fmt.Errorf("invalid OHB layout '%s'", name)
}

// Size returns the size of the block.
func (l OHBLayout) Size() int {
	if l.HasSSRC {
		return ohbLongSize
	}
	return ohbShortSize
}

// String implements fmt.Stringer.
func (l OHBLayout) String() string {
	return l.Name
}

// OriginalHeader contains the header fields carried by the original header block.
type OriginalHeader struct {
	Marker         bool
	PayloadType    uint8
	SequenceNumber uint16
	Timestamp      uint32

	// filled only when the layout contains the SSRC.
	SSRC uint32
}

func (l OHBLayout) marshalTo(buf []byte, h OriginalHeader) {
	buf[ohbMarkerPayloadTypeOffset] = h.PayloadType & 0x7F
	if h.Marker {
		buf[ohbMarkerPayloadTypeOffset] |= 0x80
	}
	binary.BigEndian.PutUint16(buf[ohbSequenceNumberOffset:], h.SequenceNumber)
	binary.BigEndian.PutUint32(buf[ohbTimestampOffset:], h.Timestamp)

	if l.HasSSRC {
		binary.BigEndian.PutUint32(buf[ohbSSRCOffset:], h.SSRC)
	}
}

func (l OHBLayout) unmarshal(buf []byte) OriginalHeader {
	h := OriginalHeader{
		Marker:         (buf[ohbMarkerPayloadTypeOffset] & 0x80) != 0,
		PayloadType:    buf[ohbMarkerPayloadTypeOffset] & 0x7F,
		SequenceNumber: binary.BigEndian.Uint16(buf[ohbSequenceNumberOffset:]),
		Timestamp:      binary.BigEndian.Uint32(buf[ohbTimestampOffset:]),
	}

	if l.HasSSRC {
		h.SSRC = binary.BigEndian.Uint32(buf[ohbSSRCOffset:])
	}

	return h
}
