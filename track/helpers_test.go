package track

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/animpack/alloc"
	"github.com/arloliu/animpack/format"
	"github.com/arloliu/animpack/vec"
)

// testProvider is an in-memory KeyframeProvider with a closure per sample.
type testProvider struct {
	numTransforms int
	numSamples    int
	sampleRate    float32
	additive      format.AdditiveMode
	parents       []uint16
	sample        func(transformIndex, sampleIndex int) (vec.Quat, vec.Vector4, vec.Vector4)
}

func (p *testProvider) NumTransforms() int                { return p.numTransforms }
func (p *testProvider) NumSamplesPerTrack() int           { return p.numSamples }
func (p *testProvider) SampleRate() float32               { return p.sampleRate }
func (p *testProvider) AdditiveMode() format.AdditiveMode { return p.additive }

func (p *testProvider) ParentIndex(transformIndex int) uint16 {
	if p.parents == nil {
		return NoParent
	}

	return p.parents[transformIndex]
}

func (p *testProvider) Sample(transformIndex, sampleIndex int) (vec.Quat, vec.Vector4, vec.Vector4) {
	return p.sample(transformIndex, sampleIndex)
}

// identitySample is the all-defaults sample function.
func identitySample(int, int) (vec.Quat, vec.Vector4, vec.Vector4) {
	return vec.QuatIdentity(), vec.Zero(), vec.New3(1, 1, 1)
}

// rotationAbout returns a unit quaternion of the given angle about a fixed axis.
func rotationAbout(angle float64) vec.Quat {
	s, c := math.Sincos(angle * 0.5)

	return vec.Quat{X: float32(s), Y: 0, Z: 0, W: float32(c)}
}

// randomUnitQuat draws a random unit quaternion. The W component is kept away from
// zero so drop-W reconstruction stays well conditioned; near the w=0 plane the
// sqrt amplifies float32 rounding past any useful test tolerance.
func randomUnitQuat(rng *rand.Rand) vec.Quat {
	q := vec.Quat{
		X: float32(rng.NormFloat64()),
		Y: float32(rng.NormFloat64()),
		Z: float32(rng.NormFloat64()),
		W: float32(rng.NormFloat64() + 4),
	}

	return q.Normalize()
}

// buildRaw ingests the provider into clip, segments, and a raw database.
func buildRaw(t *testing.T, provider *testProvider, settings *Settings) (*Clip, []Segment, *Database) {
	t.Helper()

	clip, err := NewClip(provider, settings)
	require.NoError(t, err)

	segments := SplitSegments(clip, settings)

	raw, err := NewRawDatabase(alloc.Heap{}, provider, clip, segments)
	require.NoError(t, err)
	t.Cleanup(raw.Destroy)

	return clip, segments, raw
}

// buildCompressed runs the full working-state pipeline: raw database, mutable clone,
// rotation conversion, and both normalization passes.
func buildCompressed(t *testing.T, provider *testProvider, settings *Settings) (*Clip, []Segment, *Database, *Database) {
	t.Helper()

	clip, segments, raw := buildRaw(t, provider, settings)

	mutable, err := raw.Clone()
	require.NoError(t, err)
	t.Cleanup(mutable.Destroy)

	mutable.ConvertRotations(settings.RotationFormat, segments)
	mutable.SetTranslationFormat(settings.TranslationFormat)
	mutable.SetScaleFormat(settings.ScaleFormat)

	NormalizeClipRanges(mutable, segments, settings)
	NormalizeSegmentRanges(mutable, segments)

	return clip, segments, raw, mutable
}

func defaultSettings(t *testing.T, opts ...SettingsOption) *Settings {
	t.Helper()

	settings, err := NewSettings(opts...)
	require.NoError(t, err)

	return settings
}

func quatNormDiff(a, b vec.Quat) float64 {
	// Quaternions double-cover rotations; compare against the closer hemisphere.
	d1 := vec.Vector4{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z, W: a.W - b.W}
	d2 := vec.Vector4{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z, W: a.W + b.W}

	return math.Min(float64(d1.Length4()), float64(d2.Length4()))
}
