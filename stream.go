/*
Package rtpperc is a library that handles RTP header extensions and
end-to-end encryption of RTP payloads (PERC double encryption),
for the Go programming language.
*/
package rtpperc

import (
	"fmt"

	"github.com/pion/rtp"
	"github.com/sirupsen/logrus"

	"github.com/bluenviron/rtpperc/pkg/perc"
	"github.com/bluenviron/rtpperc/pkg/rtpext"
	"github.com/bluenviron/rtpperc/pkg/rtppacket"
)

// Stream writes and reads RTP packets of a stream,
// with header extensions and optionally encrypted payloads.
// It is not safe for concurrent use.
type Stream struct {
	//
	// configuration (all optional)
	//
	// header extension registry.
	// It defaults to rtpext.DefaultRegistry().
	Registry *rtpext.Registry
	// payload protection engine, already initialized.
	// When nil, payloads are not encrypted.
	Engine *perc.Engine
	// maximum size of packets.
	// It defaults to rtppacket.DefaultMaxPacketSize.
	MaxPacketSize int
	// logger.
	// It defaults to logrus.StandardLogger().
	Log logrus.FieldLogger

	//
	// callbacks (all optional)
	//
	// called when there's a non-fatal decoding error of RTP packets or header extensions.
	OnDecodeError func(error)
}

// Initialize initializes a Stream.
func (s *Stream) Initialize() error {
	if s.Registry == nil {
		s.Registry = rtpext.DefaultRegistry()
	}
	if s.MaxPacketSize == 0 {
		s.MaxPacketSize = rtppacket.DefaultMaxPacketSize
	}
	if s.Log == nil {
		s.Log = logrus.StandardLogger()
	}
	if s.OnDecodeError == nil {
		s.OnDecodeError = func(error) {
		}
	}

	if s.Engine != nil && s.MaxPacketSize <= s.Engine.Layout.Size() {
		return fmt.Errorf("maximum packet size (%d) is too small", s.MaxPacketSize)
	}

	return nil
}

// MarshalPacket writes header extensions into a packet, encrypts its payload
// and encodes it.
// The packet is modified.
func (s *Stream) MarshalPacket(pkt *rtp.Packet, exts rtpext.HeaderExtensions) ([]byte, error) {
	err := exts.MarshalTo(&pkt.Header, s.Registry)
	if err != nil {
		return nil, err
	}

	p := &rtppacket.Packet{
		RTP:           pkt,
		MaxPacketSize: s.MaxPacketSize,
	}
	err = p.Initialize()
	if err != nil {
		return nil, err
	}

	if s.Engine != nil {
		err = s.Engine.Encrypt(p)
		if err != nil {
			return nil, err
		}
	}

	return p.Marshal()
}

// UnmarshalPacket decodes a packet, reads its header extensions and decrypts its payload.
// When the payload is decrypted, header fields are restored from the original header block.
// Malformed or unrecognized header extensions are skipped and reported to OnDecodeError.
// The payload is decrypted in place, inside buf.
func (s *Stream) UnmarshalPacket(buf []byte) (*rtp.Packet, rtpext.HeaderExtensions, error) {
	p := &rtppacket.Packet{
		MaxPacketSize: s.MaxPacketSize,
	}
	err := p.Unmarshal(buf)
	if err != nil {
		s.OnDecodeError(err)
		return nil, rtpext.HeaderExtensions{}, err
	}

	var exts rtpext.HeaderExtensions
	exts.Unmarshal(&p.RTP.Header, s.Registry, func(err error) {
		s.Log.WithFields(logrus.Fields{
			"ssrc": p.RTP.SSRC,
			"seq":  p.RTP.SequenceNumber,
		}).Debugf("skipping header extension: %v", err)
		s.OnDecodeError(err)
	})

	if s.Engine != nil {
		plain, h, err := s.Engine.Decrypt(p.RTP.Payload)
		if err != nil {
			s.OnDecodeError(err)
			return nil, rtpext.HeaderExtensions{}, err
		}

		p.RTP.Payload = plain
		p.RTP.Marker = h.Marker
		p.RTP.PayloadType = h.PayloadType
		p.RTP.SequenceNumber = h.SequenceNumber
		p.RTP.Timestamp = h.Timestamp
		if s.Engine.Layout.HasSSRC {
			p.RTP.SSRC = h.SSRC
		}
	}

	return p.RTP, exts, nil
}
