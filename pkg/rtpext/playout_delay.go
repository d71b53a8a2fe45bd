package rtpext

const (
	playoutDelaySize = 3

	// PlayoutDelayGranularityMs is the granularity of playout delay values.
	PlayoutDelayGranularityMs = 10

	// PlayoutDelayMaxMs is the maximum playout delay that can be written.
	PlayoutDelayMaxMs = 16380
)

// PlayoutDelay is the playout delay limits header extension.
//
//	 0                   1                   2
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|       MIN delay       |       MAX delay       |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
type PlayoutDelay struct {
	MinMs int
	MaxMs int
}

// Kind implements Value.
func (PlayoutDelay) Kind() Kind {
	return KindPlayoutDelay
}

// Unmarshal implements Value.
func (e *PlayoutDelay) Unmarshal(buf []byte) error {
	err := checkFixedSize(KindPlayoutDelay, buf, playoutDelaySize)
	if err != nil {
		return err
	}

	raw := uint32(buf[0])<<16 | uint32(buf[1])<<8 | uint32(buf[2])
	minRaw := int(raw >> 12)
	maxRaw := int(raw & 0xFFF)

	if minRaw > maxRaw {
		return formatError(KindPlayoutDelay, "minimum delay (%d) is greater than maximum delay (%d)", minRaw, maxRaw)
	}

	e.MinMs = minRaw * PlayoutDelayGranularityMs
	e.MaxMs = maxRaw * PlayoutDelayGranularityMs
	return nil
}

// MarshalSize implements Value.
func (PlayoutDelay) MarshalSize() int {
	return playoutDelaySize
}

// MarshalTo implements Value.
func (e PlayoutDelay) MarshalTo(buf []byte) (int, error) {
	if e.MinMs < 0 || e.MinMs > e.MaxMs || e.MaxMs > PlayoutDelayMaxMs {
		return 0, valueError(KindPlayoutDelay, "invalid limits (%d, %d)", e.MinMs, e.MaxMs)
	}

	err := checkBuffer(KindPlayoutDelay, buf, playoutDelaySize)
	if err != nil {
		return 0, err
	}

	minRaw := uint32(e.MinMs / PlayoutDelayGranularityMs)
	maxRaw := uint32(e.MaxMs / PlayoutDelayGranularityMs)
	raw := minRaw<<12 | maxRaw

	buf[0] = byte(raw >> 16)
	buf[1] = byte(raw >> 8)
	buf[2] = byte(raw)
	return playoutDelaySize, nil
}
