package rtpext

import (
	"fmt"
)

const videoOrientationSize = 1

// VideoRotation is a video rotation, in degrees.
type VideoRotation int

// video rotations.
const (
	VideoRotation0   VideoRotation = 0
	VideoRotation90  VideoRotation = 90
	VideoRotation180 VideoRotation = 180
	VideoRotation270 VideoRotation = 270
)

// String implements fmt.Stringer.
func (r VideoRotation) String() string {
	return fmt.Sprintf("%d°", int(r))
}

// rotation of the low 4 bits (C, F, R1, R0) of a CVO byte.
// camera (C) and flip (F) bits do not affect the rotation.
var cvoRotations = [16]VideoRotation{
	VideoRotation0, VideoRotation90, VideoRotation180, VideoRotation270,
	VideoRotation0, VideoRotation90, VideoRotation180, VideoRotation270,
	VideoRotation0, VideoRotation90, VideoRotation180, VideoRotation270,
	VideoRotation0, VideoRotation90, VideoRotation180, VideoRotation270,
}

// VideoOrientation is the coordination of video orientation (CVO) header extension.
//
//	 0 1 2 3 4 5 6 7
//	+-+-+-+-+-+-+-+-+
//	|0 0 0 0 C F R R|
//	+-+-+-+-+-+-+-+-+
type VideoOrientation struct {
	// raw CVO byte.
	Raw uint8
}

// NewVideoOrientation allocates a VideoOrientation from a rotation.
func NewVideoOrientation(r VideoRotation) (*VideoOrientation, error) {
	switch r {
	case VideoRotation0:
		return &VideoOrientation{Raw: 0}, nil
	case VideoRotation90:
		return &VideoOrientation{Raw: 1}, nil
	case VideoRotation180:
		return &VideoOrientation{Raw: 2}, nil
	case VideoRotation270:
		return &VideoOrientation{Raw: 3}, nil
	}
	return nil, valueError(KindVideoOrientation, "unsupported rotation %v", r)
}

// Rotation returns the rotation.
func (e VideoOrientation) Rotation() VideoRotation {
	return cvoRotations[e.Raw&0x0F]
}

// Kind implements Value.
func (VideoOrientation) Kind() Kind {
	return KindVideoOrientation
}

// Unmarshal implements Value.
func (e *VideoOrientation) Unmarshal(buf []byte) error {
	err := checkFixedSize(KindVideoOrientation, buf, videoOrientationSize)
	if err != nil {
		return err
	}

	e.Raw = buf[0]
	return nil
}

// MarshalSize implements Value.
func (VideoOrientation) MarshalSize() int {
	return videoOrientationSize
}

// MarshalTo implements Value.
func (e VideoOrientation) MarshalTo(buf []byte) (int, error) {
	err := checkBuffer(KindVideoOrientation, buf, videoOrientationSize)
	if err != nil {
		return 0, err
	}

	buf[0] = e.Raw
	return videoOrientationSize, nil
}
