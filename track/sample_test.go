package track

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/animpack/vec"
)

func TestUniformSampleKey_Snapping(t *testing.T) {
	// 30 Hz clip, 16 samples, one segment: times snap to the nearest sample index.
	require.Equal(t, uint32(0), UniformSampleKey(16, 30, 16, 0, 0))
	require.Equal(t, uint32(1), UniformSampleKey(16, 30, 16, 0, 1.0/30))
	require.Equal(t, uint32(1), UniformSampleKey(16, 30, 16, 0, 1.4/30))
	require.Equal(t, uint32(2), UniformSampleKey(16, 30, 16, 0, 1.6/30))
	require.Equal(t, uint32(15), UniformSampleKey(16, 30, 16, 0, 15.0/30))
}

func TestUniformSampleKey_SegmentOffset(t *testing.T) {
	// Clip sample 17 lands on sample 1 of the second 16-sample segment.
	require.Equal(t, uint32(1), UniformSampleKey(37, 30, 16, 16, 17.0/30))
	// Times before the segment clamp into it.
	require.Equal(t, uint32(0), UniformSampleKey(37, 30, 16, 16, 0))
}

func TestSamplePose_IdentityClip(t *testing.T) {
	settings := defaultSettings(t)

	p := &testProvider{numTransforms: 3, numSamples: 5, sampleRate: 30, sample: identitySample}
	clip, segments, _, mutable := buildCompressed(t, p, settings)

	pose := make([]Transform, clip.NumTransforms)
	SamplePose(mutable, &segments[0], 2.0/30, pose)

	for transformIndex := range clip.NumTransforms {
		require.Equal(t, vec.QuatIdentity(), pose[transformIndex].Rotation)
		require.Equal(t, vec.Zero(), pose[transformIndex].Translation)
		require.Equal(t, vec.New3(1, 1, 1), pose[transformIndex].Scale)
	}
}

func TestSamplePose_ReconstructsRawClip(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	settings := defaultSettings(t)

	translations := make(map[[2]int]vec.Vector4)
	p := &testProvider{
		numTransforms: 2, numSamples: 16, sampleRate: 30,
		sample: func(tr, s int) (vec.Quat, vec.Vector4, vec.Vector4) {
			key := [2]int{tr, s}
			if _, ok := translations[key]; !ok {
				translations[key] = vec.New3(rng.Float32()*4-2, rng.Float32()*4-2, rng.Float32()*4-2)
			}

			return rotationAbout(float64(tr) + float64(s)*0.1), translations[key], vec.New3(1, 1, 1)
		},
	}

	clip, segments, _, mutable := buildCompressed(t, p, settings)
	segment := &segments[0]

	pose := make([]Transform, clip.NumTransforms)
	for s := range clip.NumSamplesPerTrack {
		SamplePose(mutable, segment, float32(s)/30, pose)

		for tr := range clip.NumTransforms {
			wantRot, wantTrans, _ := p.sample(tr, s)

			// Two normalization round trips plus the w resynthesis cost a few more
			// ulps than the raw decay path.
			require.LessOrEqual(t, quatNormDiff(pose[tr].Rotation, wantRot), 1.0/(1<<17))

			d := pose[tr].Translation.Sub(wantTrans)
			require.LessOrEqual(t, float64(d.AbsMax3()), 4*normalizeTolerance)
		}
	}
}

func TestSamplePoseHierarchical_WalksParentChain(t *testing.T) {
	// Skeleton 0 <- 1 <- 2: sampling transform 2 writes 2, 1, 0 and nothing else.
	settings := defaultSettings(t)

	p := &testProvider{
		numTransforms: 4, numSamples: 5, sampleRate: 30,
		parents: []uint16{NoParent, 0, 1, NoParent},
		sample: func(tr, s int) (vec.Quat, vec.Vector4, vec.Vector4) {
			return rotationAbout(float64(s) * 0.2), vec.New3(float32(tr), 0, 0), vec.New3(1, 1, 1)
		},
	}

	clip, segments, _, mutable := buildCompressed(t, p, settings)

	sentinel := Transform{Translation: vec.New3(-99, -99, -99)}
	pose := make([]Transform, clip.NumTransforms)
	for i := range pose {
		pose[i] = sentinel
	}

	SamplePoseHierarchical(mutable, &segments[0], 0, 2, pose)

	require.NotEqual(t, sentinel, pose[0])
	require.NotEqual(t, sentinel, pose[1])
	require.NotEqual(t, sentinel, pose[2])
	require.Equal(t, sentinel, pose[3])
}

func TestSampleTransform_WritesOnlyTarget(t *testing.T) {
	settings := defaultSettings(t)

	p := &testProvider{numTransforms: 3, numSamples: 5, sampleRate: 30, sample: identitySample}
	clip, segments, _, mutable := buildCompressed(t, p, settings)

	sentinel := Transform{Translation: vec.New3(-99, -99, -99)}
	pose := make([]Transform, clip.NumTransforms)
	for i := range pose {
		pose[i] = sentinel
	}

	SampleTransform(mutable, &segments[0], 0, 1, pose)

	require.Equal(t, sentinel, pose[0])
	require.NotEqual(t, sentinel, pose[1])
	require.Equal(t, sentinel, pose[2])
}

func TestFindInterpolationKeys(t *testing.T) {
	key0, key1, alpha := findInterpolationKeys(16, 30, 1.5/30, roundingNone)
	require.Equal(t, uint32(1), key0)
	require.Equal(t, uint32(2), key1)
	require.InDelta(t, 0.5, float64(alpha), 1e-6)

	// Clamped at the end of the track.
	key0, key1, _ = findInterpolationKeys(16, 30, 20.0/30, roundingNone)
	require.Equal(t, uint32(15), key0)
	require.Equal(t, uint32(15), key1)
}
