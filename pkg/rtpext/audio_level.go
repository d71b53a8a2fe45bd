package rtpext

const (
	audioLevelSize = 1

	// MaxAudioLevel is the maximum audio level, expressed in -dBov.
	MaxAudioLevel = 127
)

// AudioLevel is the client-to-mixer audio level header extension.
//
//	 0 1 2 3 4 5 6 7
//	+-+-+-+-+-+-+-+-+
//	|V|   level     |
//	+-+-+-+-+-+-+-+-+
type AudioLevel struct {
	VoiceActivity bool
	Level         uint8
}

// Kind implements Value.
func (AudioLevel) Kind() Kind {
	return KindAudioLevel
}

// Unmarshal implements Value.
func (e *AudioLevel) Unmarshal(buf []byte) error {
	err := checkFixedSize(KindAudioLevel, buf, audioLevelSize)
	if err != nil {
		return err
	}

	e.VoiceActivity = (buf[0] & 0x80) != 0
	e.Level = buf[0] & 0x7F
	return nil
}

// MarshalSize implements Value.
func (AudioLevel) MarshalSize() int {
	return audioLevelSize
}

// MarshalTo implements Value.
func (e AudioLevel) MarshalTo(buf []byte) (int, error) {
	if e.Level > MaxAudioLevel {
		return 0, valueError(KindAudioLevel, "level %d is greater than %d", e.Level, MaxAudioLevel)
	}

	err := checkBuffer(KindAudioLevel, buf, audioLevelSize)
	if err != nil {
		return 0, err
	}

	buf[0] = e.Level
	if e.VoiceActivity {
		buf[0] |= 0x80
	}
	return audioLevelSize, nil
}
