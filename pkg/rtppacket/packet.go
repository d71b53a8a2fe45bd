// Package rtppacket contains a size-bounded RTP packet.
package rtppacket

import (
	"fmt"

	"github.com/pion/rtp"
)

const (
	// DefaultMaxPacketSize is the default maximum size of a packet.
	// It is the maximum payload of a UDP datagram sent over Ethernet.
	DefaultMaxPacketSize = 1472
)

// Packet is a RTP packet whose size can't exceed a maximum.
type Packet struct {
	// wrapped packet.
	RTP *rtp.Packet

	// maximum size of the marshaled packet.
	// It defaults to DefaultMaxPacketSize.
	MaxPacketSize int
}

// Initialize initializes a Packet.
func (p *Packet) Initialize() error {
	if p.RTP == nil {
		p.RTP = &rtp.Packet{
			Header: rtp.Header{
				Version: 2,
			},
		}
	}

	if p.MaxPacketSize == 0 {
		p.MaxPacketSize = DefaultMaxPacketSize
	}

	if p.RTP.Header.MarshalSize() > p.MaxPacketSize {
		return fmt.Errorf("header size (%d) is greater than maximum packet size (%d)",
			p.RTP.Header.MarshalSize(), p.MaxPacketSize)
	}

	return nil
}

// Marker returns the marker bit.
func (p *Packet) Marker() bool {
	return p.RTP.Marker
}

// PayloadType returns the payload type.
func (p *Packet) PayloadType() uint8 {
	return p.RTP.PayloadType
}

// SequenceNumber returns the sequence number.
func (p *Packet) SequenceNumber() uint16 {
	return p.RTP.SequenceNumber
}

// Timestamp returns the timestamp.
func (p *Packet) Timestamp() uint32 {
	return p.RTP.Timestamp
}

// SSRC returns the SSRC.
func (p *Packet) SSRC() uint32 {
	return p.RTP.SSRC
}

// Payload returns the payload.
func (p *Packet) Payload() []byte {
	return p.RTP.Payload
}

// MaxPayloadSize returns the maximum size of the payload,
// given the current header.
func (p *Packet) MaxPayloadSize() int {
	n := p.MaxPacketSize - p.RTP.Header.MarshalSize()
	if n < 0 {
		return 0
	}
	return n
}

// AllocatePayload replaces the payload with a zeroed one of size n,
// that is returned.
func (p *Packet) AllocatePayload(n int) ([]byte, error) {
	if n < 0 || n > p.MaxPayloadSize() {
		return nil, fmt.Errorf("payload size (%d) is greater than maximum allowed (%d)",
			n, p.MaxPayloadSize())
	}

	p.RTP.Payload = make([]byte, n)
	p.RTP.PaddingSize = 0
	p.RTP.Padding = false

	return p.RTP.Payload, nil
}

// Marshal encodes the packet.
func (p *Packet) Marshal() ([]byte, error) {
	if p.RTP.MarshalSize() > p.MaxPacketSize {
		return nil, fmt.Errorf("packet size (%d) is greater than maximum allowed (%d)",
			p.RTP.MarshalSize(), p.MaxPacketSize)
	}

	return p.RTP.Marshal()
}

// Unmarshal decodes a packet.
func (p *Packet) Unmarshal(buf []byte) error {
	if p.MaxPacketSize == 0 {
		p.MaxPacketSize = DefaultMaxPacketSize
	}

	if len(buf) > p.MaxPacketSize {
		return fmt.Errorf("packet size (%d) is greater than maximum allowed (%d)",
			len(buf), p.MaxPacketSize)
	}

	var pkt rtp.Packet
	err := pkt.Unmarshal(buf)
	if err != nil {
		return err
	}

	p.RTP = &pkt
	return nil
}
