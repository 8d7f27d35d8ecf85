package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/animpack/errs"
	"github.com/arloliu/animpack/format"
)

func TestNewClipHeader(t *testing.T) {
	header := NewClipHeader()

	require.NotNil(t, header)
	require.True(t, header.Flag.IsLittleEndian())
	require.NoError(t, header.Flag.Validate())
	require.Equal(t, uint8(format.CompressionNone), header.Flag.CompressionType)
}

func TestClipHeader_ParseRoundTrip(t *testing.T) {
	t.Run("valid header", func(t *testing.T) {
		original := NewClipHeader()
		original.Flag.RotationFormat = uint8(format.RotationQuatDropW48)
		original.Flag.CompressionType = uint8(format.CompressionS2)
		original.Flag.SetHasScale(true)
		original.Flag.SetAdditive(true)
		original.NumTransforms = 63
		original.NumSegments = 4
		original.NumSamplesPerTrack = 57
		original.SampleRate = 30
		original.TranslationFormat = uint8(format.VectorVariable)
		original.ScaleFormat = uint8(format.Vector48)
		original.PayloadSize = 1234
		original.RawPayloadSize = 4321
		original.PayloadChecksum = 0xDEADBEEFCAFEF00D

		data := original.Bytes()
		require.Len(t, data, HeaderSize)

		parsed := &ClipHeader{}
		require.NoError(t, parsed.Parse(data))
		require.Equal(t, original, parsed)
	})

	t.Run("invalid size", func(t *testing.T) {
		header := &ClipHeader{}
		require.ErrorIs(t, header.Parse([]byte{1, 2, 3}), errs.ErrInvalidHeaderSize)
	})

	t.Run("invalid magic", func(t *testing.T) {
		data := NewClipHeader().Bytes()
		data[1] = 0x00

		header := &ClipHeader{}
		require.ErrorIs(t, header.Parse(data), errs.ErrInvalidMagic)
	})

	t.Run("invalid compression", func(t *testing.T) {
		original := NewClipHeader()
		original.Flag.CompressionType = 0x7F
		data := original.Bytes()

		header := &ClipHeader{}
		require.ErrorIs(t, header.Parse(data), errs.ErrInvalidCompressionType)
	})
}

func TestClipFlag_Bits(t *testing.T) {
	flag := NewClipFlag()

	require.False(t, flag.HasScale())
	flag.SetHasScale(true)
	require.True(t, flag.HasScale())
	flag.SetHasScale(false)
	require.False(t, flag.HasScale())

	require.False(t, flag.IsAdditive())
	flag.SetAdditive(true)
	require.True(t, flag.IsAdditive())

	require.NoError(t, flag.Validate())
}
