package cryptosession

import (
	"bytes"
	"testing"

	"github.com/pion/rtp"
	"github.com/stretchr/testify/require"

	"github.com/bluenviron/rtpperc/pkg/liberrors"
)

var casesSuites = []struct {
	name           string
	suite          Suite
	keyLen         int
	rtpAuthTagLen  int
	rtcpAuthTagLen int
}{
	{
		"aes cm 128 hmac sha1 80",
		SuiteAESCM128HMACSHA180,
		30,
		10,
		10,
	},
	{
		"aes cm 128 hmac sha1 32",
		SuiteAESCM128HMACSHA132,
		30,
		4,
		10,
	},
	{
		"aead aes 128 gcm",
		SuiteAEADAES128GCM,
		28,
		16,
		16,
	},
	{
		"aead aes 256 gcm",
		SuiteAEADAES256GCM,
		44,
		16,
		16,
	},
}

func testKey(n int) []byte {
	key := make([]byte, n)
	for i := range key {
		key[i] = byte(i + 1)
	}
	return key
}

func newKeyedSession(t *testing.T, dir Direction, suite Suite, key []byte) *Session {
	s := &Session{}
	err := s.Initialize()
	require.NoError(t, err)

	err = s.SetKey(dir, suite, key)
	require.NoError(t, err)

	return s
}

func marshalPacket(t *testing.T, seqNum uint16, ssrc uint32, payload []byte) []byte {
	pkt := rtp.Packet{
		Header: rtp.Header{
			Version:        2,
			PayloadType:    96,
			SequenceNumber: seqNum,
			Timestamp:      48000,
			SSRC:           ssrc,
		},
		Payload: payload,
	}
	buf, err := pkt.Marshal()
	require.NoError(t, err)
	return buf
}

func TestSuiteParams(t *testing.T) {
	for _, ca := range casesSuites {
		t.Run(ca.name, func(t *testing.T) {
			s := newKeyedSession(t, DirectionOutbound, ca.suite, testKey(ca.keyLen))
			defer s.Close()

			require.Equal(t, ca.rtpAuthTagLen, s.RTPAuthTagLen())
			require.Equal(t, ca.rtcpAuthTagLen, s.RTCPAuthTagLen())
			require.Equal(t, ca.suite, s.Suite())
			require.Equal(t, DirectionOutbound, s.Direction())
			require.True(t, s.Keyed())

			k, salt, err := ca.suite.KeyLen()
			require.NoError(t, err)
			require.Equal(t, ca.keyLen, k+salt)

			p, err := ParseSuite(ca.suite.String())
			require.NoError(t, err)
			require.Equal(t, ca.suite, p)
		})
	}
}

func TestProtectUnprotect(t *testing.T) {
	for _, ca := range casesSuites {
		t.Run(ca.name, func(t *testing.T) {
			key := testKey(ca.keyLen)
			out := newKeyedSession(t, DirectionOutbound, ca.suite, key)
			defer out.Close()
			in := newKeyedSession(t, DirectionInbound, ca.suite, key)
			defer in.Close()

			payload := bytes.Repeat([]byte{1, 2, 3, 4}, 40)
			plain := marshalPacket(t, 1000, 0x11223344, payload)

			buf := make([]byte, 1500)
			copy(buf, plain)

			n, err := out.Protect(buf, len(plain))
			require.NoError(t, err)
			require.Equal(t, len(plain)+ca.rtpAuthTagLen, n)
			require.Equal(t, plain[:12], buf[:12])
			require.NotEqual(t, plain[12:], buf[12:len(plain)])

			n, err = in.Unprotect(buf, n)
			require.NoError(t, err)
			require.Equal(t, plain, buf[:n])
		})
	}
}

func TestProtectErrors(t *testing.T) {
	t.Run("not keyed", func(t *testing.T) {
		s := &Session{}
		err := s.Initialize()
		require.NoError(t, err)

		buf := make([]byte, 100)
		_, err = s.Protect(buf, 20)
		require.Equal(t, liberrors.ErrSessionNotKeyed{}, err)

		_, err = s.Unprotect(buf, 20)
		require.Equal(t, liberrors.ErrSessionNotKeyed{}, err)
	})

	t.Run("buffer too small", func(t *testing.T) {
		s := newKeyedSession(t, DirectionOutbound, SuiteAESCM128HMACSHA180, testKey(30))
		defer s.Close()

		plain := marshalPacket(t, 1, 1, make([]byte, 20))
		buf := make([]byte, len(plain)+9)
		copy(buf, plain)

		_, err := s.Protect(buf, len(plain))
		require.Equal(t, liberrors.ErrBufferTooSmall{Len: len(plain) + 9, Need: len(plain) + 10}, err)
		require.Equal(t, plain, buf[:len(plain)])
	})

	t.Run("closed", func(t *testing.T) {
		s := newKeyedSession(t, DirectionOutbound, SuiteAESCM128HMACSHA180, testKey(30))
		s.Close()
		s.Close()

		require.False(t, s.Keyed())

		buf := make([]byte, 100)
		_, err := s.Protect(buf, 20)
		require.Equal(t, liberrors.ErrSessionClosed{}, err)

		err = s.SetKey(DirectionOutbound, SuiteAESCM128HMACSHA180, testKey(30))
		require.Equal(t, liberrors.ErrSessionClosed{}, err)
	})
}

func TestSetKeyErrors(t *testing.T) {
	for _, ca := range []struct {
		name  string
		suite Suite
		key   []byte
		err   error
	}{
		{
			"invalid suite",
			Suite(15),
			testKey(30),
			liberrors.ErrInvalidCipherSuite{Suite: Suite(15)},
		},
		{
			"key too short",
			SuiteAESCM128HMACSHA180,
			testKey(29),
			liberrors.ErrInvalidKeyMaterial{Expected: 30, Got: 29},
		},
		{
			"key too long",
			SuiteAEADAES256GCM,
			testKey(45),
			liberrors.ErrInvalidKeyMaterial{Expected: 44, Got: 45},
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			s := &Session{}
			err := s.Initialize()
			require.NoError(t, err)

			err = s.SetKey(DirectionOutbound, ca.suite, ca.key)
			require.Equal(t, ca.err, err)
			require.False(t, s.Keyed())
		})
	}
}

func TestSetKeyTwice(t *testing.T) {
	key := testKey(30)
	out := newKeyedSession(t, DirectionOutbound, SuiteAESCM128HMACSHA180, key)
	defer out.Close()

	err := out.SetKey(DirectionOutbound, SuiteAEADAES128GCM, testKey(28))
	require.Equal(t, liberrors.ErrKeyAlreadySet{}, err)
	require.Equal(t, SuiteAESCM128HMACSHA180, out.Suite())
	require.Equal(t, 10, out.RTPAuthTagLen())

	in := newKeyedSession(t, DirectionInbound, SuiteAESCM128HMACSHA180, key)
	defer in.Close()

	plain := marshalPacket(t, 5, 5, []byte{1, 2, 3, 4, 5})
	buf := make([]byte, 100)
	copy(buf, plain)

	n, err := out.Protect(buf, len(plain))
	require.NoError(t, err)

	n, err = in.Unprotect(buf, n)
	require.NoError(t, err)
	require.Equal(t, plain, buf[:n])
}

func TestUnprotectReplay(t *testing.T) {
	key := testKey(30)
	out := newKeyedSession(t, DirectionOutbound, SuiteAESCM128HMACSHA180, key)
	defer out.Close()
	in := newKeyedSession(t, DirectionInbound, SuiteAESCM128HMACSHA180, key)
	defer in.Close()

	plain := marshalPacket(t, 100, 0xAABBCCDD, []byte{1, 2, 3, 4})
	buf := make([]byte, 100)
	copy(buf, plain)

	n, err := out.Protect(buf, len(plain))
	require.NoError(t, err)
	protected := append([]byte(nil), buf[:n]...)

	_, err = in.Unprotect(buf, n)
	require.NoError(t, err)

	copy(buf, protected)
	_, err = in.Unprotect(buf, n)
	require.Equal(t, liberrors.ErrReplayDetected{SSRC: 0xAABBCCDD, SequenceNumber: 100}, err)
	require.True(t, liberrors.IsReplay(err))
	require.Equal(t, protected, buf[:n])
}

func TestUnprotectCorrupted(t *testing.T) {
	key := testKey(30)
	out := newKeyedSession(t, DirectionOutbound, SuiteAESCM128HMACSHA180, key)
	defer out.Close()
	in := newKeyedSession(t, DirectionInbound, SuiteAESCM128HMACSHA180, key)
	defer in.Close()

	plain := marshalPacket(t, 200, 1, []byte{1, 2, 3, 4})
	buf := make([]byte, 100)
	copy(buf, plain)

	n, err := out.Protect(buf, len(plain))
	require.NoError(t, err)

	buf[13] ^= 0xFF
	corrupted := append([]byte(nil), buf[:n]...)

	_, err = in.Unprotect(buf, n)
	require.Error(t, err)
	require.False(t, liberrors.IsReplay(err))
	var perr liberrors.ErrProtectionFailed
	require.ErrorAs(t, err, &perr)
	require.Equal(t, corrupted, buf[:n])

	// a corrupted packet does not move the replay window.
	buf[13] ^= 0xFF
	n, err = in.Unprotect(buf, n)
	require.NoError(t, err)
	require.Equal(t, plain, buf[:n])
}

func TestUnprotectTooShort(t *testing.T) {
	s := newKeyedSession(t, DirectionInbound, SuiteAESCM128HMACSHA180, testKey(30))
	defer s.Close()

	buf := make([]byte, 11)
	_, err := s.Unprotect(buf, 11)
	var perr liberrors.ErrProtectionFailed
	require.ErrorAs(t, err, &perr)
}

func TestParseSuiteError(t *testing.T) {
	_, err := ParseSuite("NULL_HMAC_SHA1_80")
	require.EqualError(t, err, "unsupported cipher suite 'NULL_HMAC_SHA1_80'")
}

func TestUnprotectForgedPacketsAreNotTracked(t *testing.T) {
	key := testKey(30)
	out := newKeyedSession(t, DirectionOutbound, SuiteAESCM128HMACSHA180, key)
	defer out.Close()
	in := newKeyedSession(t, DirectionInbound, SuiteAESCM128HMACSHA180, key)
	defer in.Close()

	for i := 0; i < 1000; i++ {
		forged := marshalPacket(t, uint16(i), uint32(i), make([]byte, 28))
		_, err := in.Unprotect(forged, len(forged))
		var perr liberrors.ErrProtectionFailed
		require.ErrorAs(t, err, &perr)
	}

	require.Empty(t, in.replay)

	for i := 0; i < 3; i++ {
		plain := marshalPacket(t, 10, uint32(100+i), []byte{1, 2, 3, 4})
		buf := make([]byte, 100)
		copy(buf, plain)

		n, err := out.Protect(buf, len(plain))
		require.NoError(t, err)

		_, err = in.Unprotect(buf, n)
		require.NoError(t, err)
	}

	require.Len(t, in.replay, 3)
}

func TestUnprotectIgnoreSSRC(t *testing.T) {
	key := testKey(30)
	out := newKeyedSession(t, DirectionOutbound, SuiteAESCM128HMACSHA180, key)
	defer out.Close()

	in := &Session{IgnoreSSRC: true}
	err := in.Initialize()
	require.NoError(t, err)
	err = in.SetKey(DirectionInbound, SuiteAESCM128HMACSHA180, key)
	require.NoError(t, err)
	defer in.Close()

	var replayed []byte

	for i := 0; i < 500; i++ {
		plain := marshalPacket(t, uint16(i), uint32(0x1000+i), []byte{1, 2, 3, 4})
		buf := make([]byte, 100)
		copy(buf, plain)

		n, err2 := out.Protect(buf, len(plain))
		require.NoError(t, err2)

		if i == 7 {
			replayed = append([]byte(nil), buf[:n]...)
		}

		_, err2 = in.Unprotect(buf, n)
		require.NoError(t, err2)
	}

	require.Len(t, in.replay, 1)

	_, err = in.Unprotect(replayed, len(replayed))
	require.Equal(t, liberrors.ErrReplayDetected{SSRC: 0, SequenceNumber: 7}, err)
}

func TestCloseBeforeInitialize(t *testing.T) {
	s := &Session{}
	s.Close()
	require.False(t, s.Keyed())
}
