package rtppacket

import (
	"testing"

	"github.com/pion/rtp"
	"github.com/stretchr/testify/require"
)

func TestAccessors(t *testing.T) {
	p := &Packet{
		RTP: &rtp.Packet{
			Header: rtp.Header{
				Version:        2,
				Marker:         true,
				PayloadType:    111,
				SequenceNumber: 1234,
				Timestamp:      567890,
				SSRC:           0x01020304,
			},
			Payload: []byte{1, 2, 3},
		},
	}
	err := p.Initialize()
	require.NoError(t, err)

	require.Equal(t, true, p.Marker())
	require.Equal(t, uint8(111), p.PayloadType())
	require.Equal(t, uint16(1234), p.SequenceNumber())
	require.Equal(t, uint32(567890), p.Timestamp())
	require.Equal(t, uint32(0x01020304), p.SSRC())
	require.Equal(t, []byte{1, 2, 3}, p.Payload())
	require.Equal(t, DefaultMaxPacketSize-12, p.MaxPayloadSize())
}

func TestAllocatePayload(t *testing.T) {
	p := &Packet{MaxPacketSize: 100}
	err := p.Initialize()
	require.NoError(t, err)

	pl, err := p.AllocatePayload(88)
	require.NoError(t, err)
	require.Len(t, pl, 88)
	pl[0] = 5
	require.Equal(t, byte(5), p.Payload()[0])

	byts, err := p.Marshal()
	require.NoError(t, err)
	require.Len(t, byts, 100)

	_, err = p.AllocatePayload(89)
	require.EqualError(t, err, "payload size (89) is greater than maximum allowed (88)")
	require.Len(t, p.Payload(), 88)
}

func TestMaxPayloadSizeExtensions(t *testing.T) {
	p := &Packet{MaxPacketSize: 100}
	err := p.Initialize()
	require.NoError(t, err)

	err = p.RTP.Header.SetExtension(1, []byte{1, 2, 3})
	require.NoError(t, err)

	require.Equal(t, 100-12-8, p.MaxPayloadSize())
}

func TestUnmarshal(t *testing.T) {
	src := rtp.Packet{
		Header: rtp.Header{
			Version:        2,
			PayloadType:    96,
			SequenceNumber: 10,
			SSRC:           20,
		},
		Payload: make([]byte, 50),
	}
	byts, err := src.Marshal()
	require.NoError(t, err)

	var p Packet
	err = p.Unmarshal(byts)
	require.NoError(t, err)
	require.Equal(t, uint16(10), p.SequenceNumber())
	require.Equal(t, DefaultMaxPacketSize, p.MaxPacketSize)

	p2 := Packet{MaxPacketSize: 40}
	err = p2.Unmarshal(byts)
	require.EqualError(t, err, "packet size (62) is greater than maximum allowed (40)")
}

func TestInitializeError(t *testing.T) {
	p := &Packet{MaxPacketSize: 11}
	err := p.Initialize()
	require.EqualError(t, err, "header size (12) is greater than maximum packet size (11)")
}
