package track

import (
	"math"

	"github.com/arloliu/animpack/format"
	"github.com/arloliu/animpack/vec"
)

// Transform is one reconstructed rigid-body sample.
type Transform struct {
	Rotation    vec.Quat
	Translation vec.Vector4
	Scale       vec.Vector4
}

// Uniform and Variable are the sample-distribution markers. Sampling functions are
// generic over them so each distribution gets its own monomorphized body, keeping the
// interpolation branch out of the per-transform hot loop.
type (
	Uniform  struct{}
	Variable struct{}
)

func (Uniform) isVariable() bool  { return false }
func (Variable) isVariable() bool { return true }

// Distribution constrains the sampling functions to the two marker types.
type Distribution interface {
	Uniform | Variable

	isVariable() bool
}

// roundingPolicy selects how an interpolation alpha is treated when locating keys.
type roundingPolicy uint8

const (
	roundingNone roundingPolicy = iota
	roundingNearest
)

// findInterpolationKeys locates the two keys bracketing sampleTime and the
// interpolation alpha between them: (k0, k1) = (floor(t*rate), floor(t*rate)+1)
// clamped to the track bounds, alpha the fractional part. Under the Nearest policy
// the alpha snaps to 0 or 1.
func findInterpolationKeys(numSamples uint32, sampleRate, sampleTime float32, policy roundingPolicy) (key0, key1 uint32, alpha float32) {
	position := sampleTime * sampleRate

	key0 = uint32(math.Floor(float64(position)))
	if key0 >= numSamples-1 {
		key0 = numSamples - 1
	}

	key1 = min(key0+1, numSamples-1)
	alpha = position - float32(key0)
	if alpha > 1 {
		alpha = 1
	}

	if policy == roundingNearest {
		alpha = float32(math.Floor(float64(alpha) + 0.5))
	}

	return key0, key1, alpha
}

// UniformSampleKey maps a sample time onto one segment-relative sample index under
// the Uniform distribution, where sampling always snaps to the nearest sample and no
// interpolation is needed.
func UniformSampleKey(numSamplesInClip uint32, sampleRate float32, numSamplesInSegment, segmentStartOffset uint32, sampleTime float32) uint32 {
	key0, key1, alpha := findInterpolationKeys(numSamplesInClip, sampleRate, sampleTime, roundingNearest)

	// Offset into the segment and clamp.
	key0 -= segmentStartOffset
	if key0 >= numSamplesInSegment {
		key0 = 0
		alpha = 1
	}

	key1 -= segmentStartOffset
	if key1 >= numSamplesInSegment {
		key1 = numSamplesInSegment - 1
		alpha = 0
	}

	if alpha == 0 {
		return key0
	}

	return key1
}

// rotationToQuat finalizes a reconstructed rotation: drop-W formats resynthesize the
// W component from the positive hemisphere, full formats pass through.
func rotationToQuat(rotation vec.Vector4, f format.RotationFormat) vec.Quat {
	switch f.Variant() {
	case format.VariantQuat:
		return rotation.Quat()
	default:
		return vec.QuatFromPositiveW(rotation)
	}
}

// NormalizedRotation reconstructs the quantization-free rotation at a sample index by
// un-applying the segment range, then the clip range, per the ranges' normalization
// state. The database always stores full-precision floats; only the format's variant
// matters here, deciding whether W is read or resynthesized.
func NormalizedRotation(d *Database, segment *Segment, transformIndex int, sampleIndex uint32) vec.Quat {
	clipRange := &d.ranges[transformIndex].Rotation
	segRange := &segment.Ranges[transformIndex].Rotation

	rotation := d.Rotation(segment, transformIndex, sampleIndex)

	if segRange.IsNormalized {
		rotation = rotation.MulAdd(segRange.Extent, segRange.Min)
	}
	if clipRange.IsNormalized {
		rotation = rotation.MulAdd(clipRange.Extent, clipRange.Min)
	}

	return rotationToQuat(rotation, d.rotationFormat)
}

// NormalizedTranslation reconstructs the quantization-free translation at a sample
// index under the current normalization state.
func NormalizedTranslation(d *Database, segment *Segment, transformIndex int, sampleIndex uint32) vec.Vector4 {
	clipRange := &d.ranges[transformIndex].Translation
	segRange := &segment.Ranges[transformIndex].Translation

	translation := d.Translation(segment, transformIndex, sampleIndex)

	if segRange.IsNormalized {
		translation = translation.MulAdd(segRange.Extent, segRange.Min)
	}
	if clipRange.IsNormalized {
		translation = translation.MulAdd(clipRange.Extent, clipRange.Min)
	}

	return translation
}

// NormalizedScale reconstructs the quantization-free scale at a sample index under
// the current normalization state.
func NormalizedScale(d *Database, segment *Segment, transformIndex int, sampleIndex uint32) vec.Vector4 {
	clipRange := &d.ranges[transformIndex].Scale
	segRange := &segment.Ranges[transformIndex].Scale

	scale := d.Scale(segment, transformIndex, sampleIndex)

	if segRange.IsNormalized {
		scale = scale.MulAdd(segRange.Extent, segRange.Min)
	}
	if clipRange.IsNormalized {
		scale = scale.MulAdd(clipRange.Extent, clipRange.Min)
	}

	return scale
}

// sampleContext carries the per-call state of pose sampling.
type sampleContext struct {
	transformIndex int
	sampleKey      uint32
	sampleTime     float32
}

func sampleRotation[D Distribution](ctx *sampleContext, d *Database, segment *Segment) vec.Quat {
	var dist D

	transformRange := d.Range(ctx.transformIndex)

	if transformRange.Rotation.IsDefault {
		return vec.QuatIdentity()
	}
	if transformRange.Rotation.IsConstant {
		return NormalizedRotation(d, segment, ctx.transformIndex, 0).Normalize()
	}

	if dist.isVariable() {
		key0, key1, alpha := findInterpolationKeys(segment.NumSamples, d.clip.SampleRate, ctx.sampleTime, roundingNone)
		sample0 := NormalizedRotation(d, segment, ctx.transformIndex, key0)
		sample1 := NormalizedRotation(d, segment, ctx.transformIndex, key1)

		return vec.QuatLerp(sample0, sample1, alpha)
	}

	return NormalizedRotation(d, segment, ctx.transformIndex, ctx.sampleKey).Normalize()
}

func sampleTranslation[D Distribution](ctx *sampleContext, d *Database, segment *Segment) vec.Vector4 {
	var dist D

	transformRange := d.Range(ctx.transformIndex)

	if transformRange.Translation.IsDefault {
		return vec.Zero()
	}
	if transformRange.Translation.IsConstant {
		return NormalizedTranslation(d, segment, ctx.transformIndex, 0)
	}

	if dist.isVariable() {
		key0, key1, alpha := findInterpolationKeys(segment.NumSamples, d.clip.SampleRate, ctx.sampleTime, roundingNone)
		sample0 := NormalizedTranslation(d, segment, ctx.transformIndex, key0)
		sample1 := NormalizedTranslation(d, segment, ctx.transformIndex, key1)

		return sample0.Lerp(sample1, alpha)
	}

	return NormalizedTranslation(d, segment, ctx.transformIndex, ctx.sampleKey)
}

func sampleScale[D Distribution](ctx *sampleContext, d *Database, segment *Segment) vec.Vector4 {
	var dist D

	transformRange := d.Range(ctx.transformIndex)

	if transformRange.Scale.IsDefault {
		return d.defaultScale
	}
	if transformRange.Scale.IsConstant {
		return NormalizedScale(d, segment, ctx.transformIndex, 0)
	}

	if dist.isVariable() {
		key0, key1, alpha := findInterpolationKeys(segment.NumSamples, d.clip.SampleRate, ctx.sampleTime, roundingNone)
		sample0 := NormalizedScale(d, segment, ctx.transformIndex, key0)
		sample1 := NormalizedScale(d, segment, ctx.transformIndex, key1)

		return sample0.Lerp(sample1, alpha)
	}

	return NormalizedScale(d, segment, ctx.transformIndex, ctx.sampleKey)
}

// samplePoseTransform evaluates one transform at the context's time.
func samplePoseTransform[D Distribution](ctx *sampleContext, d *Database, segment *Segment) Transform {
	return Transform{
		Rotation:    sampleRotation[D](ctx, d, segment),
		Translation: sampleTranslation[D](ctx, d, segment),
		Scale:       sampleScale[D](ctx, d, segment),
	}
}

func makeSampleContext(d *Database, segment *Segment, sampleTime float32) sampleContext {
	ctx := sampleContext{sampleTime: sampleTime}

	if segment.Distribution == format.DistributionUniform {
		ctx.sampleKey = UniformSampleKey(
			uint32(d.clip.NumSamplesPerTrack), d.clip.SampleRate,
			segment.NumSamples, segment.StartOffset, sampleTime)
	}

	return ctx
}

// SamplePose evaluates every transform at sampleTime into outPose, iterating
// transforms in index order. outPose must have at least NumTransforms entries.
func SamplePose(d *Database, segment *Segment, sampleTime float32, outPose []Transform) {
	ctx := makeSampleContext(d, segment, sampleTime)

	if segment.Distribution == format.DistributionUniform {
		for t := range d.clip.NumTransforms {
			ctx.transformIndex = t
			outPose[t] = samplePoseTransform[Uniform](&ctx, d, segment)
		}
	} else {
		for t := range d.clip.NumTransforms {
			ctx.transformIndex = t
			outPose[t] = samplePoseTransform[Variable](&ctx, d, segment)
		}
	}
}

// SampleTransform evaluates a single transform at sampleTime into outPose.
func SampleTransform(d *Database, segment *Segment, sampleTime float32, transformIndex int, outPose []Transform) {
	ctx := makeSampleContext(d, segment, sampleTime)
	ctx.transformIndex = transformIndex

	if segment.Distribution == format.DistributionUniform {
		outPose[transformIndex] = samplePoseTransform[Uniform](&ctx, d, segment)
	} else {
		outPose[transformIndex] = samplePoseTransform[Variable](&ctx, d, segment)
	}
}

// SamplePoseHierarchical evaluates the target transform and every ancestor up to the
// root, walking parent indices until the sentinel. Only the visited entries of
// outPose are written.
func SamplePoseHierarchical(d *Database, segment *Segment, sampleTime float32, targetTransformIndex int, outPose []Transform) {
	ctx := makeSampleContext(d, segment, sampleTime)

	if segment.Distribution == format.DistributionUniform {
		current := uint16(targetTransformIndex)
		for current != NoParent {
			ctx.transformIndex = int(current)
			outPose[current] = samplePoseTransform[Uniform](&ctx, d, segment)
			current = d.clip.ParentIndex(int(current))
		}
	} else {
		current := uint16(targetTransformIndex)
		for current != NoParent {
			ctx.transformIndex = int(current)
			outPose[current] = samplePoseTransform[Variable](&ctx, d, segment)
			current = d.clip.ParentIndex(int(current))
		}
	}
}
