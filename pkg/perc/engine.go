// Package perc contains a payload protection engine that implements
// double encryption of RTP payloads, in order to allow a media relay
// to forward packets without accessing their content.
package perc

import (
	"github.com/sirupsen/logrus"

	"github.com/bluenviron/rtpperc/pkg/cryptosession"
	"github.com/bluenviron/rtpperc/pkg/liberrors"
	"github.com/bluenviron/rtpperc/pkg/scratch"
)

const (
	// first byte of the synthetic RTP header: version 2, no padding,
	// no extension, no CSRCs.
	syntheticHeaderByte = 0x80

	syntheticHeaderByteSize = 1
)

// Packet is a RTP packet whose payload can be encrypted.
type Packet interface {
	Marker() bool
	PayloadType() uint8
	SequenceNumber() uint16
	Timestamp() uint32
	SSRC() uint32
	Payload() []byte
	MaxPayloadSize() int

	// AllocatePayload replaces the payload with one of size n and returns it.
	// It fails without modifying the packet if n exceeds the maximum payload size.
	AllocatePayload(n int) ([]byte, error)
}

// Engine encrypts and decrypts RTP payloads.
// Header fields are copied into an original header block (OHB) that is
// placed before the payload and authenticated together with it.
// Encrypt and Decrypt leave their target untouched in case of errors.
// An Engine is not safe for concurrent use.
type Engine struct {
	// layout of the original header block.
	// It defaults to LayoutLong.
	Layout OHBLayout

	// logger.
	// It defaults to logrus.StandardLogger().
	Log logrus.FieldLogger

	// metrics.
	// They are optional.
	Metrics *Metrics

	session *cryptosession.Session
	log     logrus.FieldLogger
}

// Initialize initializes an Engine.
func (e *Engine) Initialize() error {
	if e.Layout == (OHBLayout{}) {
		e.Layout = LayoutLong
	}
	if e.Log == nil {
		e.Log = logrus.StandardLogger()
	}

	e.log = e.Log.WithField("layout", e.Layout)

	e.session = &cryptosession.Session{
		Log:        e.log,
		IgnoreSSRC: !e.Layout.HasSSRC,
	}
	return e.session.Initialize()
}

// Close closes the engine and releases the crypto session.
func (e *Engine) Close() {
	if e.session == nil {
		return
	}
	e.session.Close()
}

// SetKey sets the key of the engine.
// key contains the master key followed by the master salt.
// It can be called only once.
func (e *Engine) SetKey(direction cryptosession.Direction, suite cryptosession.Suite, key []byte) error {
	err := e.session.SetKey(direction, suite, key)
	if err != nil {
		e.log.WithFields(logrus.Fields{
			"direction": direction,
			"suite":     suite,
		}).Warnf("unable to set key: %v", err)
		return err
	}
	return nil
}

// SetOutboundKey sets the key used to protect outgoing payloads.
func (e *Engine) SetOutboundKey(suite cryptosession.Suite, key []byte) error {
	return e.SetKey(cryptosession.DirectionOutbound, suite, key)
}

// SetInboundKey sets the key used to unprotect incoming payloads.
func (e *Engine) SetInboundKey(suite cryptosession.Suite, key []byte) error {
	return e.SetKey(cryptosession.DirectionInbound, suite, key)
}

// Keyed returns whether a key has been set.
func (e *Engine) Keyed() bool {
	return e.session != nil && e.session.Keyed()
}

// Overhead returns the difference in size between an encrypted payload and a plain one.
// It is zero when no key has been set.
func (e *Engine) Overhead() int {
	if !e.session.Keyed() {
		return 0
	}
	return e.Layout.Size() + e.session.RTPAuthTagLen()
}

// Encrypt encrypts the payload of a packet.
// The payload is replaced with the encrypted original header block and payload.
// With LayoutShort, the first 4 bytes of the payload fill the SSRC field of the
// protected packet, therefore payloads shorter than 4 bytes can't be encrypted
// and fail with liberrors.ErrProtectionFailed.
func (e *Engine) Encrypt(pkt Packet) error {
	err := e.encrypt(pkt)
	e.Metrics.onEncrypt(err)

	if err != nil {
		e.log.WithFields(logrus.Fields{
			"ssrc": pkt.SSRC(),
			"seq":  pkt.SequenceNumber(),
		}).Warnf("unable to encrypt payload: %v", err)
	}

	return err
}

func (e *Engine) encrypt(pkt Packet) error {
	if !e.session.Keyed() {
		return liberrors.ErrSessionNotKeyed{}
	}

	ohbSize := e.Layout.Size()
	payload := pkt.Payload()

	encryptedSize := ohbSize + len(payload) + e.session.RTPAuthTagLen()
	if encryptedSize > pkt.MaxPayloadSize() {
		return liberrors.ErrPayloadTooLarge{
			Size: encryptedSize,
			Max:  pkt.MaxPayloadSize(),
		}
	}

	// synthetic RTP packet: header byte, OHB, payload, room for the tag.
	buf := scratch.Get(syntheticHeaderByteSize + encryptedSize)
	defer buf.Release()
	b := buf.Bytes()

	b[0] = syntheticHeaderByte
	e.Layout.marshalTo(b[syntheticHeaderByteSize:], OriginalHeader{
		Marker:         pkt.Marker(),
		PayloadType:    pkt.PayloadType(),
		SequenceNumber: pkt.SequenceNumber(),
		Timestamp:      pkt.Timestamp(),
		SSRC:           pkt.SSRC(),
	})
	copy(b[syntheticHeaderByteSize+ohbSize:], payload)

	n, err := e.session.Protect(b, syntheticHeaderByteSize+ohbSize+len(payload))
	if err != nil {
		return err
	}

	out, err := pkt.AllocatePayload(n - syntheticHeaderByteSize)
	if err != nil {
		return err
	}

	copy(out, b[syntheticHeaderByteSize:n])
	return nil
}

// Decrypt decrypts an encrypted payload in place.
// It returns the plain payload, that shares the underlying array of the given one,
// and the original header fields.
// In case of errors, the given payload is left untouched.
// A payload that has already been received is reported with liberrors.ErrReplayDetected.
func (e *Engine) Decrypt(payload []byte) ([]byte, OriginalHeader, error) {
	plain, h, err := e.decrypt(payload)
	e.Metrics.onDecrypt(err)

	if err != nil {
		if liberrors.IsReplay(err) {
			e.log.Warnf("dropping replayed payload: %v", err)
		} else {
			e.log.Warnf("unable to decrypt payload: %v", err)
		}
	}

	return plain, h, err
}

func (e *Engine) decrypt(payload []byte) ([]byte, OriginalHeader, error) {
	if !e.session.Keyed() {
		return nil, OriginalHeader{}, liberrors.ErrSessionNotKeyed{}
	}

	ohbSize := e.Layout.Size()

	minSize := ohbSize + e.session.RTPAuthTagLen()
	if len(payload) < minSize {
		return nil, OriginalHeader{}, liberrors.ErrPayloadTooSmall{
			Len: len(payload),
			Min: minSize,
		}
	}

	buf := scratch.Get(syntheticHeaderByteSize + len(payload))
	defer buf.Release()
	b := buf.Bytes()

	b[0] = syntheticHeaderByte
	copy(b[syntheticHeaderByteSize:], payload)

	n, err := e.session.Unprotect(b, syntheticHeaderByteSize+len(payload))
	if err != nil {
		return nil, OriginalHeader{}, err
	}

	// plaintext starts after the header byte and the OHB.
	plainStart := syntheticHeaderByteSize + ohbSize
	if n < plainStart {
		return nil, OriginalHeader{}, liberrors.ErrPayloadTooSmall{
			Len: n - syntheticHeaderByteSize,
			Min: ohbSize,
		}
	}

	h := e.Layout.unmarshal(b[syntheticHeaderByteSize:])
	plainLen := copy(payload, b[plainStart:n])

	return payload[:plainLen], h, nil
}
