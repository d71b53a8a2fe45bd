// Package cryptosession contains a SRTP session that protects and unprotects RTP packets.
package cryptosession

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/pion/srtp/v3"
	"github.com/pion/transport/v4/replaydetector"
	"github.com/sirupsen/logrus"

	"github.com/bluenviron/rtpperc/pkg/liberrors"
	"github.com/bluenviron/rtpperc/pkg/scratch"
)

const (
	// ReplayWindowSize is the size of the anti-replay window.
	ReplayWindowSize = 1024

	// RTPHeaderSize is the size of the minimal RTP header the session expects.
	RTPHeaderSize = 12

	maxSequenceNumber = 0xFFFF
)

const (
	stateUnkeyed = "unkeyed"
	stateKeyed   = "keyed"
	stateClosed  = "closed"

	eventKey   = "key"
	eventClose = "close"
)

// Direction is the direction of a session.
type Direction int

// directions.
const (
	DirectionOutbound Direction = iota
	DirectionInbound
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case DirectionOutbound:
		return "outbound"
	case DirectionInbound:
		return "inbound"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Session is a SRTP session.
// It starts unkeyed, becomes keyed after a successful SetKey
// and can't be keyed twice.
// It is not safe for concurrent use.
type Session struct {
	// logger.
	// It defaults to logrus.StandardLogger().
	Log logrus.FieldLogger

	// share a single replay window between all packets, regardless of their SSRC.
	// It must be set when the SSRC field of protected packets doesn't carry a SSRC.
	IgnoreSSRC bool

	state          *fsm.FSM
	direction      Direction
	suite          Suite
	rtpAuthTagLen  int
	rtcpAuthTagLen int
	ctx            *srtp.Context
	replay         map[uint32]replaydetector.ReplayDetector
}

// Initialize initializes a Session.
func (s *Session) Initialize() error {
	if s.Log == nil {
		s.Log = logrus.StandardLogger()
	}

	s.state = fsm.NewFSM(
		stateUnkeyed,
		fsm.Events{
			{Name: eventKey, Src: []string{stateUnkeyed}, Dst: stateKeyed},
			{Name: eventClose, Src: []string{stateUnkeyed, stateKeyed}, Dst: stateClosed},
		},
		fsm.Callbacks{},
	)

	return nil
}

// SetKey sets the key of the session.
// key contains the master key followed by the master salt.
func (s *Session) SetKey(direction Direction, suite Suite, key []byte) error {
	switch s.state.Current() {
	case stateKeyed:
		return liberrors.ErrKeyAlreadySet{}
	case stateClosed:
		return liberrors.ErrSessionClosed{}
	}

	params, ok := suite.params()
	if !ok {
		return liberrors.ErrInvalidCipherSuite{Suite: suite}
	}

	if len(key) != params.keyLen+params.saltLen {
		return liberrors.ErrInvalidKeyMaterial{
			Expected: params.keyLen + params.saltLen,
			Got:      len(key),
		}
	}

	// replay protection is performed by Unprotect.
	ctx, err := srtp.CreateContext(
		key[:params.keyLen],
		key[params.keyLen:],
		params.profile,
		srtp.SRTPNoReplayProtection(),
	)
	if err != nil {
		return liberrors.ErrProtectionFailed{Err: err}
	}

	err = s.state.Event(context.Background(), eventKey)
	if err != nil {
		return err
	}

	s.direction = direction
	s.suite = suite
	s.rtpAuthTagLen = params.rtpAuthTagLen
	s.rtcpAuthTagLen = params.rtcpAuthTagLen
	s.ctx = ctx
	s.replay = make(map[uint32]replaydetector.ReplayDetector)

	s.Log.WithFields(logrus.Fields{
		"direction": direction,
		"suite":     suite,
	}).Info("SRTP session created")

	return nil
}

// Close closes the session.
// Key material is released and any further use fails.
func (s *Session) Close() {
	if s.state == nil || !s.state.Can(eventClose) {
		return
	}

	s.state.Event(context.Background(), eventClose) //nolint:errcheck
	s.ctx = nil
	s.replay = nil
}

// Keyed returns whether the session has a key.
func (s *Session) Keyed() bool {
	return s.state != nil && s.state.Current() == stateKeyed
}

// Direction returns the direction passed to SetKey.
func (s *Session) Direction() Direction {
	return s.direction
}

// Suite returns the suite passed to SetKey.
func (s *Session) Suite() Suite {
	return s.suite
}

// RTPAuthTagLen returns the length of the authentication tag appended to RTP packets.
func (s *Session) RTPAuthTagLen() int {
	return s.rtpAuthTagLen
}

// RTCPAuthTagLen returns the length of the authentication tag appended to RTCP packets.
func (s *Session) RTCPAuthTagLen() int {
	return s.rtcpAuthTagLen
}

func (s *Session) checkKeyed() error {
	switch s.state.Current() {
	case stateUnkeyed:
		return liberrors.ErrSessionNotKeyed{}
	case stateClosed:
		return liberrors.ErrSessionClosed{}
	}
	return nil
}

// Protect protects the RTP packet contained in buf[:n].
// The protected packet is written into buf, whose length is the capacity
// available to the protected packet, and its length is returned.
// On error, buf is left untouched.
func (s *Session) Protect(buf []byte, n int) (int, error) {
	err := s.checkKeyed()
	if err != nil {
		return 0, err
	}

	if n < 0 || n > len(buf) {
		return 0, fmt.Errorf("invalid input length %d", n)
	}

	if len(buf) < n+s.rtpAuthTagLen {
		return 0, liberrors.ErrBufferTooSmall{
			Len:  len(buf),
			Need: n + s.rtpAuthTagLen,
		}
	}

	out := scratch.Get(n + s.rtpAuthTagLen)
	defer out.Release()

	res, err := s.ctx.EncryptRTP(out.Bytes()[:0], buf[:n], nil)
	if err != nil {
		return 0, liberrors.ErrProtectionFailed{Err: err}
	}

	if len(res) > len(buf) {
		return 0, liberrors.ErrBufferTooSmall{
			Len:  len(buf),
			Need: len(res),
		}
	}

	return copy(buf, res), nil
}

// Unprotect unprotects the SRTP packet contained in buf[:n].
// The unprotected packet is written into buf and its length is returned.
// A packet that has already been received is reported with liberrors.ErrReplayDetected.
// On error, buf is left untouched.
func (s *Session) Unprotect(buf []byte, n int) (int, error) {
	err := s.checkKeyed()
	if err != nil {
		return 0, err
	}

	if n < 0 || n > len(buf) {
		return 0, fmt.Errorf("invalid input length %d", n)
	}

	if n < RTPHeaderSize {
		return 0, liberrors.ErrProtectionFailed{
			Err: fmt.Errorf("packet size (%d) is smaller than a RTP header", n),
		}
	}

	seqNum := binary.BigEndian.Uint16(buf[2:])

	var ssrc uint32
	if !s.IgnoreSSRC {
		ssrc = binary.BigEndian.Uint32(buf[8:])
	}

	// detectors are stored only after a packet authenticates.
	det, known := s.replay[ssrc]
	if !known {
		det = replaydetector.WithWrap(ReplayWindowSize, maxSequenceNumber)
	}

	accept, ok := det.Check(uint64(seqNum))
	if !ok {
		s.Log.WithFields(logrus.Fields{
			"ssrc": ssrc,
			"seq":  seqNum,
		}).Warn("replayed packet")
		return 0, liberrors.ErrReplayDetected{SSRC: ssrc, SequenceNumber: seqNum}
	}

	out := scratch.Get(n)
	defer out.Release()

	res, err := s.ctx.DecryptRTP(out.Bytes()[:0], buf[:n], nil)
	if err != nil {
		return 0, liberrors.ErrProtectionFailed{Err: err}
	}

	// the window is moved forward only by authenticated packets.
	accept()
	if !known {
		s.replay[ssrc] = det
	}

	return copy(buf, res), nil
}
