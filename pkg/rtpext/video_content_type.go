package rtpext

const videoContentTypeSize = 1

// VideoContentType is the video content type header extension.
type VideoContentType uint8

// video content types.
const (
	VideoContentTypeUnspecified VideoContentType = iota
	VideoContentTypeScreenshare

	videoContentTypeCount
)

// String implements fmt.Stringer.
func (e VideoContentType) String() string {
	switch e {
	case VideoContentTypeUnspecified:
		return "unspecified"
	case VideoContentTypeScreenshare:
		return "screenshare"
	}
	return "unknown"
}

// Kind implements Value.
func (VideoContentType) Kind() Kind {
	return KindVideoContentType
}

// Unmarshal implements Value.
func (e *VideoContentType) Unmarshal(buf []byte) error {
	err := checkFixedSize(KindVideoContentType, buf, videoContentTypeSize)
	if err != nil {
		return err
	}

	if VideoContentType(buf[0]) >= videoContentTypeCount {
		return formatError(KindVideoContentType, "invalid content type %d", buf[0])
	}

	*e = VideoContentType(buf[0])
	return nil
}

// MarshalSize implements Value.
func (VideoContentType) MarshalSize() int {
	return videoContentTypeSize
}

// MarshalTo implements Value.
func (e VideoContentType) MarshalTo(buf []byte) (int, error) {
	if e >= videoContentTypeCount {
		return 0, valueError(KindVideoContentType, "invalid content type %d", uint8(e))
	}

	err := checkBuffer(KindVideoContentType, buf, videoContentTypeSize)
	if err != nil {
		return 0, err
	}

	buf[0] = uint8(e)
	return videoContentTypeSize, nil
}
