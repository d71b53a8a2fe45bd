// Package rtpext contains codecs of RTP header extensions.
package rtpext

import (
	"fmt"

	"github.com/bluenviron/rtpperc/pkg/liberrors"
)

// MaxValueSize is the maximum size of a value that can be carried
// by an one-byte header extension.
const MaxValueSize = 16

// Kind is the kind of a header extension.
type Kind int

// header extension kinds.
const (
	KindTransmissionOffset Kind = iota + 1
	KindAudioLevel
	KindAbsoluteSendTime
	KindVideoOrientation
	KindTransportSequenceNumber
	KindPlayoutDelay
	KindVideoContentType
	KindVideoTiming
	KindFrameMarking
	KindRTPStreamID
	KindRepairedRTPStreamID
	KindMID
)

// header extension URIs.
const (
	URITransmissionOffset      = "urn:ietf:params:rtp-hdrext:toffset"
	URIAudioLevel              = "urn:ietf:params:rtp-hdrext:ssrc-audio-level"
	URIAbsoluteSendTime        = "http://www.webrtc.org/experiments/rtp-hdrext/abs-send-time"
	URIVideoOrientation        = "urn:3gpp:video-orientation"
	URITransportSequenceNumber = "http://www.ietf.org/id/draft-holmer-rmcat-transport-wide-cc-extensions-01"
	URIPlayoutDelay            = "http://www.webrtc.org/experiments/rtp-hdrext/playout-delay"
	URIVideoContentType        = "http://www.webrtc.org/experiments/rtp-hdrext/video-content-type"
	URIVideoTiming             = "http://www.webrtc.org/experiments/rtp-hdrext/video-timing"
	URIFrameMarking            = "http://tools.ietf.org/html/draft-ietf-avtext-framemarking-07"
	URIRTPStreamID             = "urn:ietf:params:rtp-hdrext:sdes:rtp-stream-id"
	URIRepairedRTPStreamID     = "urn:ietf:params:rtp-hdrext:sdes:repaired-rtp-stream-id"
	URIMID                     = "urn:ietf:params:rtp-hdrext:sdes:mid"
)

// Descriptor contains static metadata of a header extension kind.
type Descriptor struct {
	Kind Kind

	// default wire ID.
	ID uint8

	// URI advertised in SDP.
	URI string

	// value size. When Variable is true, this is the maximum size.
	Size     int
	Variable bool
}

var descriptors = []Descriptor{
	{KindTransmissionOffset, 1, URITransmissionOffset, transmissionOffsetSize, false},
	{KindAudioLevel, 2, URIAudioLevel, audioLevelSize, false},
	{KindAbsoluteSendTime, 3, URIAbsoluteSendTime, absoluteSendTimeSize, false},
	{KindVideoOrientation, 4, URIVideoOrientation, videoOrientationSize, false},
	{KindTransportSequenceNumber, 5, URITransportSequenceNumber, transportSequenceNumberSize, false},
	{KindPlayoutDelay, 6, URIPlayoutDelay, playoutDelaySize, false},
	{KindVideoContentType, 7, URIVideoContentType, videoContentTypeSize, false},
	{KindVideoTiming, 8, URIVideoTiming, videoTimingSize, false},
	{KindFrameMarking, 9, URIFrameMarking, frameMarksScalableSize, true},
	{KindRTPStreamID, 10, URIRTPStreamID, MaxValueSize, true},
	{KindRepairedRTPStreamID, 11, URIRepairedRTPStreamID, MaxValueSize, true},
	{KindMID, 12, URIMID, MaxValueSize, true},
}

// Descriptors returns the descriptors of all supported kinds.
func Descriptors() []Descriptor {
	return append([]Descriptor(nil), descriptors...)
}

// Descriptor returns the descriptor of the kind.
func (k Kind) Descriptor() (Descriptor, bool) {
	if k < KindTransmissionOffset || k > KindMID {
		return Descriptor{}, false
	}
	return descriptors[k-1], true
}

// URI returns the URI of the kind.
func (k Kind) URI() string {
	d, ok := k.Descriptor()
	if !ok {
		return ""
	}
	return d.URI
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindTransmissionOffset:
		return "TransmissionOffset"
	case KindAudioLevel:
		return "AudioLevel"
	case KindAbsoluteSendTime:
		return "AbsoluteSendTime"
	case KindVideoOrientation:
		return "VideoOrientation"
	case KindTransportSequenceNumber:
		return "TransportSequenceNumber"
	case KindPlayoutDelay:
		return "PlayoutDelay"
	case KindVideoContentType:
		return "VideoContentType"
	case KindVideoTiming:
		return "VideoTiming"
	case KindFrameMarking:
		return "FrameMarking"
	case KindRTPStreamID:
		return "RTPStreamID"
	case KindRepairedRTPStreamID:
		return "RepairedRTPStreamID"
	case KindMID:
		return "MID"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindByURI returns the kind associated with an URI.
func KindByURI(uri string) (Kind, bool) {
	for _, d := range descriptors {
		if d.URI == uri {
			return d.Kind, true
		}
	}
	return 0, false
}

// Value is the value of a header extension.
type Value interface {
	// Kind returns the kind of the extension.
	Kind() Kind

	// Unmarshal decodes the value.
	Unmarshal(buf []byte) error

	// MarshalSize returns the number of bytes written by MarshalTo.
	MarshalSize() int

	// MarshalTo encodes the value into buf, that must be at least MarshalSize() bytes long.
	MarshalTo(buf []byte) (int, error)
}

func newValue(k Kind) Value {
	switch k {
	case KindTransmissionOffset:
		return &TransmissionOffset{}
	case KindAudioLevel:
		return &AudioLevel{}
	case KindAbsoluteSendTime:
		return &AbsoluteSendTime{}
	case KindVideoOrientation:
		return &VideoOrientation{}
	case KindTransportSequenceNumber:
		return &TransportSequenceNumber{}
	case KindPlayoutDelay:
		return &PlayoutDelay{}
	case KindVideoContentType:
		return new(VideoContentType)
	case KindVideoTiming:
		return &VideoSendTiming{}
	case KindFrameMarking:
		return &FrameMarks{}
	case KindRTPStreamID:
		return &RTPStreamID{}
	case KindRepairedRTPStreamID:
		return &RepairedRTPStreamID{}
	case KindMID:
		return &MID{}
	}
	return nil
}

func formatError(k Kind, format string, args ...interface{}) error {
	return liberrors.ErrExtensionFormat{
		URI:    k.URI(),
		Reason: fmt.Sprintf(format, args...),
	}
}

func valueError(k Kind, format string, args ...interface{}) error {
	return liberrors.ErrExtensionInvalidValue{
		URI:    k.URI(),
		Reason: fmt.Sprintf(format, args...),
	}
}

func checkFixedSize(k Kind, buf []byte, size int) error {
	if len(buf) != size {
		return formatError(k, "invalid length %d, expected %d", len(buf), size)
	}
	return nil
}

func checkBuffer(k Kind, buf []byte, size int) error {
	if len(buf) < size {
		return valueError(k, "buffer too small (%d < %d)", len(buf), size)
	}
	return nil
}
