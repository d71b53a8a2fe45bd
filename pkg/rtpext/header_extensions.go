package rtpext

import (
	"github.com/pion/rtp"
)

// HeaderExtensions contains the values of all header extensions of a packet.
// A nil field means that the extension is not present.
type HeaderExtensions struct {
	TransmissionOffset      *TransmissionOffset
	AudioLevel              *AudioLevel
	AbsoluteSendTime        *AbsoluteSendTime
	VideoOrientation        *VideoOrientation
	TransportSequenceNumber *TransportSequenceNumber
	PlayoutDelay            *PlayoutDelay
	VideoContentType        *VideoContentType
	VideoTiming             *VideoSendTiming
	FrameMarks              *FrameMarks
	RTPStreamID             *RTPStreamID
	RepairedRTPStreamID     *RepairedRTPStreamID
	MID                     *MID
}

func (h *HeaderExtensions) set(v Value) {
	switch tv := v.(type) {
	case *TransmissionOffset:
		h.TransmissionOffset = tv
	case *AudioLevel:
		h.AudioLevel = tv
	case *AbsoluteSendTime:
		h.AbsoluteSendTime = tv
	case *VideoOrientation:
		h.VideoOrientation = tv
	case *TransportSequenceNumber:
		h.TransportSequenceNumber = tv
	case *PlayoutDelay:
		h.PlayoutDelay = tv
	case *VideoContentType:
		h.VideoContentType = tv
	case *VideoSendTiming:
		h.VideoTiming = tv
	case *FrameMarks:
		h.FrameMarks = tv
	case *RTPStreamID:
		h.RTPStreamID = tv
	case *RepairedRTPStreamID:
		h.RepairedRTPStreamID = tv
	case *MID:
		h.MID = tv
	}
}

// Values returns the values that are present.
func (h HeaderExtensions) Values() []Value {
	var ret []Value

	if h.TransmissionOffset != nil {
		ret = append(ret, h.TransmissionOffset)
	}
	if h.AudioLevel != nil {
		ret = append(ret, h.AudioLevel)
	}
	if h.AbsoluteSendTime != nil {
		ret = append(ret, h.AbsoluteSendTime)
	}
	if h.VideoOrientation != nil {
		ret = append(ret, h.VideoOrientation)
	}
	if h.TransportSequenceNumber != nil {
		ret = append(ret, h.TransportSequenceNumber)
	}
	if h.PlayoutDelay != nil {
		ret = append(ret, h.PlayoutDelay)
	}
	if h.VideoContentType != nil {
		ret = append(ret, h.VideoContentType)
	}
	if h.VideoTiming != nil {
		ret = append(ret, h.VideoTiming)
	}
	if h.FrameMarks != nil {
		ret = append(ret, h.FrameMarks)
	}
	if h.RTPStreamID != nil && !h.RTPStreamID.Empty() {
		ret = append(ret, h.RTPStreamID)
	}
	if h.RepairedRTPStreamID != nil && !h.RepairedRTPStreamID.Empty() {
		ret = append(ret, h.RepairedRTPStreamID)
	}
	if h.MID != nil && !h.MID.Empty() {
		ret = append(ret, h.MID)
	}

	return ret
}

// Unmarshal fills the values with the header extensions of a RTP header.
// Extensions that are unrecognized or malformed are skipped and reported
// to onSkip, if not nil.
func (h *HeaderExtensions) Unmarshal(header *rtp.Header, r *Registry, onSkip func(error)) {
	*h = HeaderExtensions{}

	if !header.Extension {
		return
	}

	for _, id := range header.GetExtensionIDs() {
		v, err := r.Parse(id, header.GetExtension(id))
		if err != nil {
			if onSkip != nil {
				onSkip(err)
			}
			continue
		}

		h.set(v)
	}
}

// MarshalTo writes the values into the header extensions of a RTP header.
func (h HeaderExtensions) MarshalTo(header *rtp.Header, r *Registry) error {
	for _, v := range h.Values() {
		buf := make([]byte, r.ValueSize(v))

		id, n, err := r.Write(buf, v)
		if err != nil {
			return err
		}

		err = header.SetExtension(id, buf[:n])
		if err != nil {
			return err
		}
	}

	return nil
}
