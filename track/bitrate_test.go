package track

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/animpack/format"
	"github.com/arloliu/animpack/vec"
)

func TestChannelStateOf(t *testing.T) {
	defaultRange := &ChannelRange{IsConstant: true, IsDefault: true}
	constantRange := &ChannelRange{IsConstant: true}
	animatedRange := &ChannelRange{IsNormalized: true}

	require.Equal(t, StateDefault, ChannelStateOf(defaultRange, format.InvalidBitRate))
	require.Equal(t, StateConstant, ChannelStateOf(constantRange, format.InvalidBitRate))
	require.Equal(t, StateConstant, ChannelStateOf(animatedRange, 0))
	require.Equal(t, StateRaw, ChannelStateOf(animatedRange, format.InvalidBitRate))
	require.Equal(t, StateRaw, ChannelStateOf(animatedRange, format.HighestBitRate))
	require.Equal(t, StateFixed, ChannelStateOf(animatedRange, 6))
}

func TestBitRateSet_CommitOnce(t *testing.T) {
	s := NewBitRateSet(2)

	require.False(t, s.IsCommitted(0))
	require.Equal(t, InvalidBitRates(), s.Rates(0))

	triple := BitRates{Rotation: 6, Translation: format.HighestBitRate, Scale: format.InvalidBitRate}
	s.Commit(0, triple)

	require.True(t, s.IsCommitted(0))
	require.Equal(t, triple, s.Rates(0))
	require.False(t, s.IsCommitted(1))

	require.Panics(t, func() { s.Commit(0, triple) })
	require.Panics(t, func() { s.Commit(1, BitRates{Rotation: format.HighestBitRate + 1}) })
}

func TestTransformSampleBits(t *testing.T) {
	settings := defaultSettings(t)

	p := &testProvider{
		numTransforms: 1, numSamples: 8, sampleRate: 30,
		sample: func(_, s int) (vec.Quat, vec.Vector4, vec.Vector4) {
			return rotationAbout(float64(s) * 0.2), vec.New3(float32(s), 0, 0), vec.New3(1, 1, 1)
		},
	}

	_, _, _, mutable := buildCompressed(t, p, settings)

	// Rotation and translation animated under the variable formats, no scale channel.
	bits := TransformSampleBits(mutable, 0, BitRates{Rotation: 6, Translation: 1, Scale: format.InvalidBitRate})
	require.Equal(t, uint32(8*3+3*3), bits)

	// Constant-in-segment tracks contribute nothing; raw contributes 96 bits.
	bits = TransformSampleBits(mutable, 0, BitRates{Rotation: 0, Translation: format.HighestBitRate, Scale: format.InvalidBitRate})
	require.Equal(t, uint32(96), bits)
}

func TestDecayedTransform_StatesResolve(t *testing.T) {
	settings := defaultSettings(t)

	constant := vec.New3(1.5, 0, -2)
	p := &testProvider{
		numTransforms: 1, numSamples: 8, sampleRate: 30,
		sample: func(_, s int) (vec.Quat, vec.Vector4, vec.Vector4) {
			return rotationAbout(float64(s) * 0.3), constant, vec.New3(1, 1, 1)
		},
	}

	_, segments, raw, mutable := buildCompressed(t, p, settings)
	segment := &segments[0]

	out := DecayedTransform(raw, mutable, segment, 0, 2, BitRates{
		Rotation:    format.HighestBitRate,
		Translation: format.InvalidBitRate,
		Scale:       format.InvalidBitRate,
	})

	// Constant translation resolves to its stored constant, default scale to the
	// clip default, animated rotation through the decay path.
	require.Equal(t, constant, out.Translation)
	require.Equal(t, vec.New3(1, 1, 1), out.Scale)
	require.LessOrEqual(t, quatNormDiff(out.Rotation, rotationAbout(0.6)), 1.0/(1<<19))
}
