package rtpext

const absoluteSendTimeSize = 3

// AbsoluteSendTimeFromMs converts a time expressed in milliseconds
// into a 24-bit 6.18 fixed point value.
func AbsoluteSendTimeFromMs(ms int64) uint32 {
	return uint32(((ms<<18)+500)/1000) & 0x00FFFFFF
}

// AbsoluteSendTime is the absolute send time header extension.
//
// The value is a 24-bit unsigned integer containing the sender's
// current time in seconds as a fixed point number with 18 bits fractional part.
//
//	 0                   1                   2
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|              absolute send time               |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
type AbsoluteSendTime struct {
	Timestamp uint32
}

// Kind implements Value.
func (AbsoluteSendTime) Kind() Kind {
	return KindAbsoluteSendTime
}

// Unmarshal implements Value.
func (e *AbsoluteSendTime) Unmarshal(buf []byte) error {
	err := checkFixedSize(KindAbsoluteSendTime, buf, absoluteSendTimeSize)
	if err != nil {
		return err
	}

	e.Timestamp = uint32(buf[0])<<16 | uint32(buf[1])<<8 | uint32(buf[2])
	return nil
}

// MarshalSize implements Value.
func (AbsoluteSendTime) MarshalSize() int {
	return absoluteSendTimeSize
}

// MarshalTo implements Value.
func (e AbsoluteSendTime) MarshalTo(buf []byte) (int, error) {
	if e.Timestamp > 0x00FFFFFF {
		return 0, valueError(KindAbsoluteSendTime, "timestamp %d does not fit into 24 bits", e.Timestamp)
	}

	err := checkBuffer(KindAbsoluteSendTime, buf, absoluteSendTimeSize)
	if err != nil {
		return 0, err
	}

	buf[0] = byte(e.Timestamp >> 16)
	buf[1] = byte(e.Timestamp >> 8)
	buf[2] = byte(e.Timestamp)
	return absoluteSendTimeSize, nil
}
