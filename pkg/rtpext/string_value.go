package rtpext

// StringValue is the value of header extensions that are variable-length strings
// (RTP stream ID, repaired RTP stream ID, MID).
// It is stored in a fixed-size array, padded with zeros.
// An empty value represents an unset extension.
type StringValue [MaxValueSize]byte

// IsLegalName checks whether a name can be carried by a string header extension.
// It must be non-empty, no longer than 16 bytes and made of RFC4566 token characters.
func IsLegalName(name string) bool {
	if len(name) == 0 || len(name) > MaxValueSize {
		return false
	}

	for i := 0; i < len(name); i++ {
		if !isTokenChar(name[i]) {
			return false
		}
	}
	return true
}

func isTokenChar(c byte) bool {
	return c == 0x21 ||
		(c >= 0x23 && c <= 0x27) ||
		(c >= 0x2A && c <= 0x2B) ||
		(c >= 0x2D && c <= 0x2E) ||
		(c >= 0x30 && c <= 0x39) ||
		(c >= 0x41 && c <= 0x5A) ||
		(c >= 0x5E && c <= 0x7E)
}

// Set sets the value. Strings longer than 16 bytes are truncated.
func (v *StringValue) Set(s string) {
	*v = StringValue{}
	copy(v[:], s)
}

// Empty checks whether the value is empty.
func (v StringValue) Empty() bool {
	return v[0] == 0
}

// Size returns the length of the value, up to the first zero byte.
func (v StringValue) Size() int {
	for i, c := range v {
		if c == 0 {
			return i
		}
	}
	return MaxValueSize
}

// String implements fmt.Stringer.
func (v StringValue) String() string {
	return string(v[:v.Size()])
}

// Equal checks whether two values are equal.
// Bytes after the first zero byte are not compared.
func (v StringValue) Equal(o StringValue) bool {
	n := v.Size()
	if o.Size() != n {
		return false
	}
	return string(v[:n]) == string(o[:n])
}

func (v *StringValue) unmarshal(k Kind, buf []byte) error {
	if len(buf) == 0 || len(buf) > MaxValueSize {
		return formatError(k, "invalid length %d", len(buf))
	}

	if buf[0] == 0 {
		return formatError(k, "value is empty")
	}

	*v = StringValue{}
	copy(v[:], buf)
	return nil
}

func (v StringValue) marshalTo(k Kind, buf []byte) (int, error) {
	if v.Empty() {
		return 0, valueError(k, "value is empty")
	}

	n := v.Size()

	err := checkBuffer(k, buf, n)
	if err != nil {
		return 0, err
	}

	copy(buf, v[:n])
	return n, nil
}

// RTPStreamID is the RTP stream ID (RID) header extension.
type RTPStreamID struct {
	StringValue
}

// Kind implements Value.
func (RTPStreamID) Kind() Kind {
	return KindRTPStreamID
}

// Unmarshal implements Value.
func (e *RTPStreamID) Unmarshal(buf []byte) error {
	return e.unmarshal(KindRTPStreamID, buf)
}

// MarshalSize implements Value.
func (e RTPStreamID) MarshalSize() int {
	return e.Size()
}

// MarshalTo implements Value.
func (e RTPStreamID) MarshalTo(buf []byte) (int, error) {
	return e.marshalTo(KindRTPStreamID, buf)
}

// RepairedRTPStreamID is the repaired RTP stream ID header extension.
type RepairedRTPStreamID struct {
	StringValue
}

// Kind implements Value.
func (RepairedRTPStreamID) Kind() Kind {
	return KindRepairedRTPStreamID
}

// Unmarshal implements Value.
func (e *RepairedRTPStreamID) Unmarshal(buf []byte) error {
	return e.unmarshal(KindRepairedRTPStreamID, buf)
}

// MarshalSize implements Value.
func (e RepairedRTPStreamID) MarshalSize() int {
	return e.Size()
}

// MarshalTo implements Value.
func (e RepairedRTPStreamID) MarshalTo(buf []byte) (int, error) {
	return e.marshalTo(KindRepairedRTPStreamID, buf)
}

// MID is the media identification header extension.
type MID struct {
	StringValue
}

// Kind implements Value.
func (MID) Kind() Kind {
	return KindMID
}

// Unmarshal implements Value.
func (e *MID) Unmarshal(buf []byte) error {
	return e.unmarshal(KindMID, buf)
}

// MarshalSize implements Value.
func (e MID) MarshalSize() int {
	return e.Size()
}

// MarshalTo implements Value.
func (e MID) MarshalTo(buf []byte) (int, error) {
	return e.marshalTo(KindMID, buf)
}
