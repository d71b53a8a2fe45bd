package rtpext

import (
	"testing"

	"github.com/pion/sdp/v3"
	"github.com/stretchr/testify/require"

	"github.com/bluenviron/rtpperc/pkg/liberrors"
)

func TestDescriptors(t *testing.T) {
	ids := make(map[uint8]struct{})
	uris := make(map[string]struct{})

	for _, d := range Descriptors() {
		require.GreaterOrEqual(t, d.ID, uint8(MinID))
		require.LessOrEqual(t, d.ID, uint8(MaxID))
		require.LessOrEqual(t, d.Size, MaxValueSize)

		ids[d.ID] = struct{}{}
		uris[d.URI] = struct{}{}

		d2, ok := d.Kind.Descriptor()
		require.True(t, ok)
		require.Equal(t, d, d2)

		k, ok := KindByURI(d.URI)
		require.True(t, ok)
		require.Equal(t, d.Kind, k)

		require.Equal(t, d.Kind, newValue(d.Kind).Kind())
	}

	require.Len(t, ids, len(descriptors))
	require.Len(t, uris, len(descriptors))

	_, ok := Kind(100).Descriptor()
	require.False(t, ok)
	require.Equal(t, "Kind(100)", Kind(100).String())
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	err := r.Register(0, KindAudioLevel)
	require.EqualError(t, err, "invalid ID 0, must be between 1 and 14")

	err = r.Register(15, KindAudioLevel)
	require.Error(t, err)

	err = r.Register(1, Kind(50))
	require.Error(t, err)

	err = r.Register(1, KindAudioLevel)
	require.NoError(t, err)

	err = r.Register(1, KindAudioLevel)
	require.NoError(t, err)

	err = r.Register(1, KindMID)
	require.EqualError(t, err, "ID 1 is already bound to AudioLevel")

	err = r.Register(2, KindAudioLevel)
	require.EqualError(t, err, "AudioLevel is already bound to ID 1")

	err = r.RegisterURI(2, URIMID)
	require.NoError(t, err)

	err = r.RegisterURI(3, "urn:unknown")
	require.Error(t, err)

	k, ok := r.Kind(2)
	require.True(t, ok)
	require.Equal(t, KindMID, k)

	id, ok := r.ID(KindAudioLevel)
	require.True(t, ok)
	require.Equal(t, uint8(1), id)

	r.Unregister(KindAudioLevel)
	_, ok = r.Kind(1)
	require.False(t, ok)
	_, ok = r.ID(KindAudioLevel)
	require.False(t, ok)

	err = r.Register(1, KindFrameMarking)
	require.NoError(t, err)
}

func TestRegistryParse(t *testing.T) {
	r := DefaultRegistry()

	v, err := r.Parse(2, []byte{0x85})
	require.NoError(t, err)
	require.Equal(t, &AudioLevel{VoiceActivity: true, Level: 5}, v)

	_, err = r.Parse(13, []byte{0x01})
	require.Equal(t, liberrors.ErrExtensionUnrecognized{ID: 13}, err)

	_, err = r.Parse(0, []byte{0x01})
	require.Equal(t, liberrors.ErrExtensionUnrecognized{ID: 0}, err)

	_, err = r.Parse(15, []byte{0x01})
	require.Equal(t, liberrors.ErrExtensionUnrecognized{ID: 15}, err)

	_, err = r.Parse(2, []byte{0x85, 0x00})
	var fe liberrors.ErrExtensionFormat
	require.ErrorAs(t, err, &fe)
}

func TestRegistryWrite(t *testing.T) {
	r := DefaultRegistry()

	v := &FrameMarks{StartOfFrame: true, TemporalLayerID: 1}
	require.Equal(t, 3, r.ValueSize(v))

	buf := make([]byte, r.ValueSize(v))
	id, n, err := r.Write(buf, v)
	require.NoError(t, err)
	require.Equal(t, uint8(9), id)
	require.Equal(t, 3, n)
	require.Equal(t, []byte{0x81, 0x00, 0x00}, buf)

	r = NewRegistry()
	_, _, err = r.Write(buf, v)
	require.EqualError(t, err, "FrameMarking is not bound to any ID")
}

func TestRegistryBindMediaDescription(t *testing.T) {
	md := &sdp.MediaDescription{
		Attributes: []sdp.Attribute{
			{Key: "rtpmap", Value: "96 VP8/90000"},
			{Key: "extmap", Value: "3 " + URIMID},
			{Key: "extmap", Value: "5/sendrecv " + URIPlayoutDelay},
			{Key: "extmap", Value: "7 urn:ietf:params:rtp-hdrext:unknown"},
			{Key: "extmap", Value: "20 " + URIAudioLevel},
		},
	}

	r := NewRegistry()
	err := r.BindMediaDescription(md)
	require.NoError(t, err)

	k, ok := r.Kind(3)
	require.True(t, ok)
	require.Equal(t, KindMID, k)

	k, ok = r.Kind(5)
	require.True(t, ok)
	require.Equal(t, KindPlayoutDelay, k)

	_, ok = r.Kind(7)
	require.False(t, ok)

	_, ok = r.ID(KindAudioLevel)
	require.False(t, ok)

	require.Equal(t, []sdp.Attribute{
		{Key: "extmap", Value: "3 " + URIMID},
		{Key: "extmap", Value: "5 " + URIPlayoutDelay},
	}, r.ExtMaps())
}

func TestRegistryBindMediaDescriptionErrors(t *testing.T) {
	r := NewRegistry()
	err := r.BindMediaDescription(&sdp.MediaDescription{
		Attributes: []sdp.Attribute{
			{Key: "extmap", Value: "invalid"},
		},
	})
	require.Error(t, err)

	r = NewRegistry()
	err = r.BindMediaDescription(&sdp.MediaDescription{
		Attributes: []sdp.Attribute{
			{Key: "extmap", Value: "3 " + URIMID},
			{Key: "extmap", Value: "3 " + URIAudioLevel},
		},
	})
	require.EqualError(t, err, "ID 3 is already bound to MID")
}
