package quant

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/animpack/format"
	"github.com/arloliu/animpack/vec"
)

func TestPackUnpackRotation_Dispatch(t *testing.T) {
	v := vec.New(0.25, 0.5, 0.75, 0.125)

	cases := []struct {
		f       format.RotationFormat
		bitRate uint8
		bits    uint32
	}{
		{format.RotationQuat128, format.InvalidBitRate, 128},
		{format.RotationQuatDropW96, format.InvalidBitRate, 96},
		{format.RotationQuatDropW48, format.InvalidBitRate, 48},
		{format.RotationQuatDropW32, format.InvalidBitRate, 32},
		{format.RotationQuatDropWVariable, 6, 24},
		{format.RotationQuatDropWVariable, format.HighestBitRate, 96},
	}

	for _, tc := range cases {
		buf := make([]byte, 32)

		written := PackRotation(v, tc.f, tc.bitRate, true, buf, 0)
		require.Equal(t, tc.bits, written, "%v rate %d", tc.f, tc.bitRate)
		require.Equal(t, tc.bits, RotationSampleBits(tc.f, tc.bitRate))

		got := UnpackRotation(buf, tc.f, tc.bitRate, true, 0)

		// Unpack inverts pack through the shared fixed-point intermediates; the
		// variable constant path stores Vec48.
		switch tc.f {
		case format.RotationQuat128:
			require.Equal(t, v, got)
		case format.RotationQuatDropW96:
			require.Equal(t, vec.New3(v.X, v.Y, v.Z), got)
		default:
			d := got.Sub(v)
			require.LessOrEqual(t, float64(d.AbsMax3()), 1.0/6.0) // coarsest is 3 bits
		}
	}

	// Constant bit rate stores its Vec48 sample in the range data, so packing emits
	// 48 bits but the per-sample stream carries none.
	buf := make([]byte, 32)
	require.Equal(t, uint32(48), PackRotation(v, format.RotationQuatDropWVariable, 0, true, buf, 0))
	require.Equal(t, uint32(0), RotationSampleBits(format.RotationQuatDropWVariable, 0))
}

func TestPackUnpackVector_Dispatch(t *testing.T) {
	v := vec.New3(0.1, 0.9, 0.5)

	for _, tc := range []struct {
		f       format.VectorFormat
		bitRate uint8
		bits    uint32
	}{
		{format.Vector96, format.InvalidBitRate, 96},
		{format.Vector48, format.InvalidBitRate, 48},
		{format.Vector32, format.InvalidBitRate, 32},
		{format.VectorVariable, 10, 36},
	} {
		buf := make([]byte, 32)

		written := PackVector(v, tc.f, tc.bitRate, buf, 0)
		require.Equal(t, tc.bits, written)
		require.Equal(t, tc.bits, VectorSampleBits(tc.f, tc.bitRate))

		got := UnpackVector(buf, tc.f, tc.bitRate, 0)
		d := got.Sub(v)
		require.LessOrEqual(t, float64(d.AbsMax3()), 1.0/1023.0)
	}
}

func TestDispatch_PanicsOnUnknownTag(t *testing.T) {
	buf := make([]byte, 16)

	require.Panics(t, func() { UnpackRotation(buf, format.RotationFormat(0x7F), 0, true, 0) })
	require.Panics(t, func() { UnpackVector(buf, format.VectorFormat(0x7F), 0, 0) })
	require.Panics(t, func() { PackRotation(vec.Zero(), format.RotationFormat(0x7F), 0, true, buf, 0) })
	require.Panics(t, func() { PackVector(vec.Zero(), format.VectorFormat(0x7F), 0, buf, 0) })
	require.Panics(t, func() { RotationSampleBits(format.RotationFormat(0x7F), 0) })
	require.Panics(t, func() { VectorSampleBits(format.VectorFormat(0x7F), 0) })
}
