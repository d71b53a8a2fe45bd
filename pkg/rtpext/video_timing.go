package rtpext

const videoTimingSize = 12

// VideoSendTiming is the video timing header extension.
// All values are deltas in milliseconds from the capture time.
//
//	 0                   1                   2                   3
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|  encode start ms delta        |  encode finish ms delta       |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|  packetization complete delta |  last pacer exit delta        |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|  network timestamp delta      |  network2 timestamp delta     |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
type VideoSendTiming struct {
	EncodeStartDeltaMs         uint16
	EncodeFinishDeltaMs        uint16
	PacketizationFinishDeltaMs uint16
	PacerExitDeltaMs           uint16
	NetworkTimestampDeltaMs    uint16
	Network2TimestampDeltaMs   uint16

	// true when the value has been received in a packet.
	IsTimingFrame bool
}

// Kind implements Value.
func (VideoSendTiming) Kind() Kind {
	return KindVideoTiming
}

// Unmarshal implements Value.
func (e *VideoSendTiming) Unmarshal(buf []byte) error {
	err := checkFixedSize(KindVideoTiming, buf, videoTimingSize)
	if err != nil {
		return err
	}

	e.EncodeStartDeltaMs = uint16(buf[0])<<8 | uint16(buf[1])
	e.EncodeFinishDeltaMs = uint16(buf[2])<<8 | uint16(buf[3])
	e.PacketizationFinishDeltaMs = uint16(buf[4])<<8 | uint16(buf[5])
	e.PacerExitDeltaMs = uint16(buf[6])<<8 | uint16(buf[7])
	e.NetworkTimestampDeltaMs = uint16(buf[8])<<8 | uint16(buf[9])
	e.Network2TimestampDeltaMs = uint16(buf[10])<<8 | uint16(buf[11])
	e.IsTimingFrame = true
	return nil
}

// MarshalSize implements Value.
func (VideoSendTiming) MarshalSize() int {
	return videoTimingSize
}

// MarshalTo implements Value.
// Network timestamps are reserved to network elements and are always written as zero.
func (e VideoSendTiming) MarshalTo(buf []byte) (int, error) {
	err := checkBuffer(KindVideoTiming, buf, videoTimingSize)
	if err != nil {
		return 0, err
	}

	buf[0] = byte(e.EncodeStartDeltaMs >> 8)
	buf[1] = byte(e.EncodeStartDeltaMs)
	buf[2] = byte(e.EncodeFinishDeltaMs >> 8)
	buf[3] = byte(e.EncodeFinishDeltaMs)
	buf[4] = byte(e.PacketizationFinishDeltaMs >> 8)
	buf[5] = byte(e.PacketizationFinishDeltaMs)
	buf[6] = byte(e.PacerExitDeltaMs >> 8)
	buf[7] = byte(e.PacerExitDeltaMs)
	buf[8] = 0
	buf[9] = 0
	buf[10] = 0
	buf[11] = 0
	return videoTimingSize, nil
}
