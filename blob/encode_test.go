package blob

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/animpack/alloc"
	"github.com/arloliu/animpack/format"
	"github.com/arloliu/animpack/quant"
	"github.com/arloliu/animpack/track"
	"github.com/arloliu/animpack/vec"
)

type clipProvider struct {
	numTransforms int
	numSamples    int
	sample        func(transformIndex, sampleIndex int) (vec.Quat, vec.Vector4, vec.Vector4)
}

func (p *clipProvider) NumTransforms() int                { return p.numTransforms }
func (p *clipProvider) NumSamplesPerTrack() int           { return p.numSamples }
func (p *clipProvider) SampleRate() float32               { return 30 }
func (p *clipProvider) AdditiveMode() format.AdditiveMode { return format.AdditiveNone }
func (p *clipProvider) ParentIndex(int) uint16            { return track.NoParent }

func (p *clipProvider) Sample(transformIndex, sampleIndex int) (vec.Quat, vec.Vector4, vec.Vector4) {
	return p.sample(transformIndex, sampleIndex)
}

func varyingRotation(angle float64) vec.Quat {
	s, c := math.Sincos(angle * 0.5)
	return vec.Quat{X: float32(s), W: float32(c)}
}

// buildPipeline runs the working-state pipeline over the provider and commits the
// given bit rate to every animated channel.
func buildPipeline(t *testing.T, p *clipProvider, bitRate uint8) (*track.Database, *track.Database, []track.Segment, *track.BitRateSet) {
	t.Helper()

	settings, err := track.NewSettings()
	require.NoError(t, err)

	clip, err := track.NewClip(p, settings)
	require.NoError(t, err)

	segments := track.SplitSegments(clip, settings)

	raw, err := track.NewRawDatabase(alloc.Heap{}, p, clip, segments)
	require.NoError(t, err)
	t.Cleanup(raw.Destroy)

	mutable, err := raw.Clone()
	require.NoError(t, err)
	t.Cleanup(mutable.Destroy)

	mutable.ConvertRotations(settings.RotationFormat, segments)
	mutable.SetTranslationFormat(settings.TranslationFormat)
	mutable.SetScaleFormat(settings.ScaleFormat)

	track.NormalizeClipRanges(mutable, segments, settings)
	track.NormalizeSegmentRanges(mutable, segments)

	rates := track.NewBitRateSet(clip.NumTransforms)
	for tr := range clip.NumTransforms {
		r := mutable.Range(tr)

		triple := track.InvalidBitRates()
		if !r.Rotation.IsConstant {
			triple.Rotation = bitRate
		}
		if !r.Translation.IsConstant {
			triple.Translation = bitRate
		}
		rates.Commit(tr, triple)
	}

	return raw, mutable, segments, rates
}

func TestEncodeClip_RequiresCommittedRates(t *testing.T) {
	p := &clipProvider{
		numTransforms: 1, numSamples: 4,
		sample: func(_, s int) (vec.Quat, vec.Vector4, vec.Vector4) {
			return varyingRotation(float64(s) * 0.2), vec.New3(float32(s), 0, 0), vec.New3(1, 1, 1)
		},
	}

	raw, mutable, segments, _ := buildPipeline(t, p, 6)

	w, err := NewWriter(newTestHeader())
	require.NoError(t, err)

	uncommitted := track.NewBitRateSet(1)
	require.Error(t, EncodeClip(raw, mutable, segments, uncommitted, w))
}

func TestEncodeClip_ProducesVerifiableBlob(t *testing.T) {
	p := &clipProvider{
		numTransforms: 3, numSamples: 40,
		sample: func(tr, s int) (vec.Quat, vec.Vector4, vec.Vector4) {
			return varyingRotation(float64(tr) + float64(s)*0.1),
				vec.New3(float32(s)*0.25, float32(tr), -1),
				vec.New3(1, 1, 1)
		},
	}

	for _, bitRate := range []uint8{0, 6, 12, format.HighestBitRate} {
		raw, mutable, segments, rates := buildPipeline(t, p, bitRate)

		header := newTestHeader()
		header.NumTransforms = 3
		header.NumSegments = uint16(len(segments))
		header.NumSamplesPerTrack = 40

		w, err := NewWriter(header, WithCompression(format.CompressionS2))
		require.NoError(t, err)

		require.NoError(t, EncodeClip(raw, mutable, segments, rates, w))

		blobBytes, err := w.Finish()
		require.NoError(t, err)

		parsed, payload, err := VerifyPayload(blobBytes)
		require.NoError(t, err)
		require.Equal(t, uint16(len(segments)), parsed.NumSegments)
		require.NotEmpty(t, payload)
	}
}

func TestEncodeClip_HigherBitRatesProduceBiggerPayloads(t *testing.T) {
	p := &clipProvider{
		numTransforms: 4, numSamples: 60,
		sample: func(tr, s int) (vec.Quat, vec.Vector4, vec.Vector4) {
			return varyingRotation(float64(tr)*0.7 + float64(s)*0.05),
				vec.New3(float32(s), float32(tr*s), float32(s%7)),
				vec.New3(1, 1, 1)
		},
	}

	sizes := make([]int, 0, 3)
	for _, bitRate := range []uint8{1, 8, format.HighestBitRate} {
		raw, mutable, segments, rates := buildPipeline(t, p, bitRate)

		w, err := NewWriter(newTestHeader())
		require.NoError(t, err)
		require.NoError(t, EncodeClip(raw, mutable, segments, rates, w))

		blobBytes, err := w.Finish()
		require.NoError(t, err)
		sizes = append(sizes, len(blobBytes))
	}

	require.Less(t, sizes[0], sizes[1])
	require.Less(t, sizes[1], sizes[2])
}

func TestEncodeAnimatedData_VariableBitsDecode(t *testing.T) {
	// One transform, rotation and translation animated at a fixed rate: the packed stream
	// starts with the rotation field then the translation field per sample; decode
	// the first sample's fields and compare against the database.
	p := &clipProvider{
		numTransforms: 1, numSamples: 8,
		sample: func(_, s int) (vec.Quat, vec.Vector4, vec.Vector4) {
			return varyingRotation(float64(s) * 0.2), vec.New3(float32(s), 0, 0), vec.New3(1, 1, 1)
		},
	}

	const bitRate = 6 // 8 bits per component
	raw, mutable, segments, rates := buildPipeline(t, p, bitRate)
	segment := &segments[0]

	data := encodeAnimatedData(raw, mutable, segment, rates)
	require.NotEmpty(t, data)

	numBits := format.NumBitsAtBitRate(bitRate)

	gotRotation := quant.UnpackVector3UVar(numBits, data, 0)
	wantRotation := quant.DecayVector3UVar(mutable.Rotation(segment, 0, 0), numBits)
	require.Equal(t, wantRotation, gotRotation)

	gotTranslation := quant.UnpackVector3UVar(numBits, data, numBits*3)
	wantTranslation := quant.DecayVector3UVar(mutable.Translation(segment, 0, 0), numBits)
	require.Equal(t, wantTranslation, gotTranslation)
}

func TestEncodeClip_ConstantBitRateStoresNoSamples(t *testing.T) {
	p := &clipProvider{
		numTransforms: 1, numSamples: 8,
		sample: func(_, s int) (vec.Quat, vec.Vector4, vec.Vector4) {
			return varyingRotation(float64(s) * 0.2), vec.New3(float32(s), 0, 0), vec.New3(1, 1, 1)
		},
	}

	raw, mutable, segments, rates := buildPipeline(t, p, 0)

	data := encodeAnimatedData(raw, mutable, &segments[0], rates)
	require.Empty(t, data)
}
