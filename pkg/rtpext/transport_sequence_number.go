package rtpext

const transportSequenceNumberSize = 2

// TransportSequenceNumber is the transport-wide sequence number header extension.
type TransportSequenceNumber struct {
	SequenceNumber uint16
}

// Kind implements Value.
func (TransportSequenceNumber) Kind() Kind {
	return KindTransportSequenceNumber
}

// Unmarshal implements Value.
func (e *TransportSequenceNumber) Unmarshal(buf []byte) error {
	err := checkFixedSize(KindTransportSequenceNumber, buf, transportSequenceNumberSize)
	if err != nil {
		return err
	}

	e.SequenceNumber = uint16(buf[0])<<8 | uint16(buf[1])
	return nil
}

// MarshalSize implements Value.
func (TransportSequenceNumber) MarshalSize() int {
	return transportSequenceNumberSize
}

// MarshalTo implements Value.
func (e TransportSequenceNumber) MarshalTo(buf []byte) (int, error) {
	err := checkBuffer(KindTransportSequenceNumber, buf, transportSequenceNumberSize)
	if err != nil {
		return 0, err
	}

	buf[0] = byte(e.SequenceNumber >> 8)
	buf[1] = byte(e.SequenceNumber)
	return transportSequenceNumberSize, nil
}
