package rtpext

const (
	transmissionOffsetSize = 3

	transmissionOffsetMin = -(1 << 23)
	transmissionOffsetMax = (1 << 23) - 1
)

// TransmissionOffset is the transmission time offset header extension (RFC5450).
// When added to the RTP timestamp of the packet, it represents the
// effective RTP transmission time of the packet.
type TransmissionOffset struct {
	Offset int32
}

// Kind implements Value.
func (TransmissionOffset) Kind() Kind {
	return KindTransmissionOffset
}

// Unmarshal implements Value.
func (e *TransmissionOffset) Unmarshal(buf []byte) error {
	err := checkFixedSize(KindTransmissionOffset, buf, transmissionOffsetSize)
	if err != nil {
		return err
	}

	v := uint32(buf[0])<<16 | uint32(buf[1])<<8 | uint32(buf[2])

	// sign extension
	e.Offset = int32(v<<8) >> 8
	return nil
}

// MarshalSize implements Value.
func (TransmissionOffset) MarshalSize() int {
	return transmissionOffsetSize
}

// MarshalTo implements Value.
func (e TransmissionOffset) MarshalTo(buf []byte) (int, error) {
	if e.Offset < transmissionOffsetMin || e.Offset > transmissionOffsetMax {
		return 0, valueError(KindTransmissionOffset, "offset %d does not fit into 24 bits", e.Offset)
	}

	err := checkBuffer(KindTransmissionOffset, buf, transmissionOffsetSize)
	if err != nil {
		return 0, err
	}

	buf[0] = byte(e.Offset >> 16)
	buf[1] = byte(e.Offset >> 8)
	buf[2] = byte(e.Offset)
	return transmissionOffsetSize, nil
}
