package rtpext

const (
	frameMarksNonScalableSize = 1
	frameMarksScalableSize    = 3
)

// values meaning that a field is not set.
const (
	NoTemporalLayerID uint8 = 0xFF
	NoLayerID         uint8 = 0xFF
	NoTL0PicIdx       uint8 = 0xFF
)

// MaxTemporalLayerID is the maximum temporal layer ID.
const MaxTemporalLayerID = 7

// FrameMarks is the frame marking header extension.
// It provides meta-information about the RTP stream outside the
// encrypted media payload, allowing a switch to perform codec-agnostic
// selective forwarding without decrypting the payload.
//
// Non-scalable streams:
//
//	 0 1 2 3 4 5 6 7
//	+-+-+-+-+-+-+-+-+
//	|S|E|I|D|0 0 0 0|
//	+-+-+-+-+-+-+-+-+
//
// Scalable streams:
//
//	 0                   1                   2
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|S|E|I|D|B| TID |   LID         |    TL0PICIDX  |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
type FrameMarks struct {
	StartOfFrame    bool
	EndOfFrame      bool
	Independent     bool
	Discardable     bool
	BaseLayerSync   bool
	TemporalLayerID uint8
	LayerID         uint8
	TL0PicIdx       uint8
}

// Scalable checks whether the scalable form is needed to carry the value.
func (e FrameMarks) Scalable() bool {
	return e.BaseLayerSync ||
		(e.TemporalLayerID != 0 && e.TemporalLayerID != NoTemporalLayerID) ||
		(e.LayerID != 0 && e.LayerID != NoLayerID) ||
		(e.TL0PicIdx != 0 && e.TL0PicIdx != NoTL0PicIdx)
}

// Kind implements Value.
func (FrameMarks) Kind() Kind {
	return KindFrameMarking
}

// Unmarshal implements Value.
func (e *FrameMarks) Unmarshal(buf []byte) error {
	if len(buf) != frameMarksNonScalableSize && len(buf) != frameMarksScalableSize {
		return formatError(KindFrameMarking, "invalid length %d, expected %d or %d",
			len(buf), frameMarksNonScalableSize, frameMarksScalableSize)
	}

	e.StartOfFrame = (buf[0] & 0x80) != 0
	e.EndOfFrame = (buf[0] & 0x40) != 0
	e.Independent = (buf[0] & 0x20) != 0
	e.Discardable = (buf[0] & 0x10) != 0

	if len(buf) == frameMarksNonScalableSize {
		e.BaseLayerSync = false
		e.TemporalLayerID = 0
		e.LayerID = 0
		e.TL0PicIdx = 0
		return nil
	}

	e.BaseLayerSync = (buf[0] & 0x08) != 0
	e.TemporalLayerID = buf[0] & 0x07
	e.LayerID = buf[1]
	e.TL0PicIdx = buf[2]
	return nil
}

// MarshalSize implements Value.
func (e FrameMarks) MarshalSize() int {
	if e.Scalable() {
		return frameMarksScalableSize
	}
	return frameMarksNonScalableSize
}

// MarshalTo implements Value.
func (e FrameMarks) MarshalTo(buf []byte) (int, error) {
	if e.TemporalLayerID > MaxTemporalLayerID && e.TemporalLayerID != NoTemporalLayerID {
		return 0, valueError(KindFrameMarking, "invalid temporal layer ID %d", e.TemporalLayerID)
	}

	size := e.MarshalSize()

	err := checkBuffer(KindFrameMarking, buf, size)
	if err != nil {
		return 0, err
	}

	buf[0] = 0
	if e.StartOfFrame {
		buf[0] |= 0x80
	}
	if e.EndOfFrame {
		buf[0] |= 0x40
	}
	if e.Independent {
		buf[0] |= 0x20
	}
	if e.Discardable {
		buf[0] |= 0x10
	}

	if size == frameMarksNonScalableSize {
		return size, nil
	}

	if e.BaseLayerSync {
		buf[0] |= 0x08
	}
	if e.TemporalLayerID != NoTemporalLayerID {
		buf[0] |= e.TemporalLayerID
	}

	buf[1] = 0
	if e.LayerID != NoLayerID {
		buf[1] = e.LayerID
	}

	buf[2] = 0
	if e.TL0PicIdx != NoTL0PicIdx {
		buf[2] = e.TL0PicIdx
	}

	return size, nil
}
