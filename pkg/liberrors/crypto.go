package liberrors

import (
	"errors"
	"fmt"
)

// ErrSessionNotKeyed is returned when a crypto session is used before a key is set.
type ErrSessionNotKeyed struct{}

// Error implements the error interface.
func (e ErrSessionNotKeyed) Error() string {
	return "no SRTP session"
}

// ErrKeyAlreadySet is returned when a key is set on a session that already has one.
type ErrKeyAlreadySet struct{}

// Error implements the error interface.
func (e ErrKeyAlreadySet) Error() string {
	return "SRTP session already created"
}

// ErrSessionClosed is returned when a crypto session is used after being closed.
type ErrSessionClosed struct{}

// Error implements the error interface.
func (e ErrSessionClosed) Error() string {
	return "SRTP session closed"
}

// ErrInvalidCipherSuite is returned when a cipher suite is not supported.
type ErrInvalidCipherSuite struct {
	Suite fmt.Stringer
}

// Error implements the error interface.
func (e ErrInvalidCipherSuite) Error() string {
	return fmt.Sprintf("unsupported cipher suite %v", e.Suite)
}

// ErrInvalidKeyMaterial is returned when the key material has the wrong length.
type ErrInvalidKeyMaterial struct {
	Expected int
	Got      int
}

// Error implements the error interface.
func (e ErrInvalidKeyMaterial) Error() string {
	return fmt.Sprintf("invalid key material: expected %d bytes, got %d", e.Expected, e.Got)
}

// ErrBufferTooSmall is returned when a buffer can't hold the protected packet.
type ErrBufferTooSmall struct {
	Len  int
	Need int
}

// Error implements the error interface.
func (e ErrBufferTooSmall) Error() string {
	return fmt.Sprintf("buffer length %d is less than the needed %d", e.Len, e.Need)
}

// ErrPayloadTooSmall is returned when an encrypted payload is smaller than the minimum possible.
type ErrPayloadTooSmall struct {
	Len int
	Min int
}

// Error implements the error interface.
func (e ErrPayloadTooSmall) Error() string {
	return fmt.Sprintf("encrypted payload size (%d) is smaller than the minimum possible (%d)", e.Len, e.Min)
}

// ErrPayloadTooLarge is returned when an encrypted payload would exceed the maximum payload size.
type ErrPayloadTooLarge struct {
	Size int
	Max  int
}

// Error implements the error interface.
func (e ErrPayloadTooLarge) Error() string {
	return fmt.Sprintf("encrypted payload size (%d) would exceed max payload size (%d)", e.Size, e.Max)
}

// ErrProtectionFailed is returned when the SRTP engine rejects a packet.
type ErrProtectionFailed struct {
	Err error
}

// Error implements the error interface.
func (e ErrProtectionFailed) Error() string {
	return fmt.Sprintf("protection failed: %v", e.Err)
}

// Unwrap returns the underlying engine error.
func (e ErrProtectionFailed) Unwrap() error {
	return e.Err
}

// ErrReplayDetected is returned when an already received packet is received again.
// It is not fatal: the packet must be dropped, the session remains valid.
type ErrReplayDetected struct {
	SSRC           uint32
	SequenceNumber uint16
}

// Error implements the error interface.
func (e ErrReplayDetected) Error() string {
	return fmt.Sprintf("replayed packet (SSRC %d, sequence number %d)", e.SSRC, e.SequenceNumber)
}

// IsReplay checks whether an error is caused by a replayed packet.
func IsReplay(err error) bool {
	var e ErrReplayDetected
	return errors.As(err, &e)
}
