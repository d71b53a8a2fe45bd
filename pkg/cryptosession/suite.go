package cryptosession

import (
	"fmt"

	"github.com/pion/srtp/v3"
)

// Suite is a SRTP cipher suite.
type Suite int

// supported suites.
const (
	SuiteAESCM128HMACSHA180 Suite = iota + 1
	SuiteAESCM128HMACSHA132
	SuiteAEADAES128GCM
	SuiteAEADAES256GCM
)

type suiteParams struct {
	profile        srtp.ProtectionProfile
	keyLen         int
	saltLen        int
	rtpAuthTagLen  int
	rtcpAuthTagLen int
}

func (s Suite) params() (suiteParams, bool) {
	switch s {
	case SuiteAESCM128HMACSHA180:
		return suiteParams{
			profile:        srtp.ProtectionProfileAes128CmHmacSha1_80,
			keyLen:         16,
			saltLen:        14,
			rtpAuthTagLen:  10,
			rtcpAuthTagLen: 10,
		}, true

	case SuiteAESCM128HMACSHA132:
		// RTP HMAC is shortened to 32 bits, RTCP HMAC remains 80 bits.
		return suiteParams{
			profile:        srtp.ProtectionProfileAes128CmHmacSha1_32,
			keyLen:         16,
			saltLen:        14,
			rtpAuthTagLen:  4,
			rtcpAuthTagLen: 10,
		}, true

	case SuiteAEADAES128GCM:
		return suiteParams{
			profile:        srtp.ProtectionProfileAeadAes128Gcm,
			keyLen:         16,
			saltLen:        12,
			rtpAuthTagLen:  16,
			rtcpAuthTagLen: 16,
		}, true

	case SuiteAEADAES256GCM:
		return suiteParams{
			profile:        srtp.ProtectionProfileAeadAes256Gcm,
			keyLen:         32,
			saltLen:        12,
			rtpAuthTagLen:  16,
			rtcpAuthTagLen: 16,
		}, true
	}

	return suiteParams{}, false
}

// KeyLen returns the length of the key and of the salt required by the suite.
func (s Suite) KeyLen() (int, int, error) {
	p, ok := s.params()
	if !ok {
		return 0, 0, fmt.Errorf("unsupported cipher suite %v", s)
	}
	return p.keyLen, p.saltLen, nil
}

// String implements fmt.Stringer.
func (s Suite) String() string {
	switch s {
	case SuiteAESCM128HMACSHA180:
		return "AES_CM_128_HMAC_SHA1_80"
	case SuiteAESCM128HMACSHA132:
		return "AES_CM_128_HMAC_SHA1_32"
	case SuiteAEADAES128GCM:
		return "AEAD_AES_128_GCM"
	case SuiteAEADAES256GCM:
		return "AEAD_AES_256_GCM"
	}
	return fmt.Sprintf("Suite(%d)", int(s))
}

// ParseSuite parses a suite from its SDES name.
func ParseSuite(name string) (Suite, error) {
	for _, s := range []Suite{
		SuiteAESCM128HMACSHA180,
		SuiteAESCM128HMACSHA132,
		SuiteAEADAES128GCM,
		SuiteAEADAES256GCM,
	} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unsupported cipher suite '%s'", name)
}
