package track

import (
	"github.com/arloliu/animpack/format"
	"github.com/arloliu/animpack/quant"
	"github.com/arloliu/animpack/vec"
)

// Decayed sampling is the hot path of the bit-rate search: it reconstructs the value
// a decoder would produce if one track of one segment were committed to a given bit
// rate, without emitting bytes and without mutating either database.
//
// The three bit-rate classes resolve differently:
//   - constant: raw sample 0, re-normalized against the clip range, decayed through
//     Vec48. The segment range is never applied; a constant track stores this Vec48
//     value in the segment range data.
//   - raw: the raw sample converted to the mutable database's format, no range math.
//   - fixed N: the mutable (normalized) sample decayed at N bits, then the segment and
//     clip ranges un-applied per their normalization state.

// DecayedRotation returns the rotation a decoder would reconstruct for the desired
// bit rate.
func DecayedRotation(raw, mutable *Database, segment *Segment, transformIndex int, sampleIndex uint32, desiredBitRate uint8) vec.Quat {
	clipRange := &mutable.ranges[transformIndex].Rotation
	segRange := &segment.Ranges[transformIndex].Rotation

	// A channel constant at clip scope stores its value losslessly in the clip range
	// minimum; the bit rate cannot degrade it.
	if clipRange.IsConstant {
		return NormalizedRotation(mutable, segment, transformIndex, 0)
	}

	var packed vec.Vector4
	var isClipNormalized, isSegmentNormalized bool

	switch {
	case format.IsConstantBitRate(desiredBitRate):
		rotation := raw.Rotation(segment, transformIndex, 0)
		rotation = ConvertRotationSample(rotation, raw.rotationFormat, mutable.rotationFormat)

		packed = quant.DecayVector3U48(NormalizeSample(rotation, clipRange))

		isClipNormalized = clipRange.IsNormalized
		isSegmentNormalized = false
	case format.IsRawBitRate(desiredBitRate):
		rotation := raw.Rotation(segment, transformIndex, sampleIndex)
		packed = ConvertRotationSample(rotation, raw.rotationFormat, mutable.rotationFormat)

		isClipNormalized = false
		isSegmentNormalized = false
	default:
		numBits := format.NumBitsAtBitRate(desiredBitRate)
		rotation := mutable.Rotation(segment, transformIndex, sampleIndex)

		if clipRange.IsNormalized {
			packed = quant.DecayVector3UVar(rotation, numBits)
		} else {
			packed = quant.DecayVector3SVar(rotation, numBits)
		}

		isClipNormalized = clipRange.IsNormalized
		isSegmentNormalized = segRange.IsNormalized
	}

	if isSegmentNormalized {
		packed = packed.MulAdd(segRange.Extent, segRange.Min)
	}
	if isClipNormalized {
		packed = packed.MulAdd(clipRange.Extent, clipRange.Min)
	}

	return rotationToQuat(packed, mutable.rotationFormat)
}

// DecayedTranslation returns the translation a decoder would reconstruct for the
// desired bit rate.
func DecayedTranslation(raw, mutable *Database, segment *Segment, transformIndex int, sampleIndex uint32, desiredBitRate uint8) vec.Vector4 {
	clipRange := &mutable.ranges[transformIndex].Translation
	segRange := &segment.Ranges[transformIndex].Translation

	if clipRange.IsConstant {
		return NormalizedTranslation(mutable, segment, transformIndex, 0)
	}

	var packed vec.Vector4
	var isClipNormalized, isSegmentNormalized bool

	switch {
	case format.IsConstantBitRate(desiredBitRate):
		translation := raw.Translation(segment, transformIndex, 0)
		packed = quant.DecayVector3U48(NormalizeSample(translation, clipRange))

		isClipNormalized = clipRange.IsNormalized
		isSegmentNormalized = false
	case format.IsRawBitRate(desiredBitRate):
		packed = raw.Translation(segment, transformIndex, sampleIndex)

		isClipNormalized = false
		isSegmentNormalized = false
	default:
		numBits := format.NumBitsAtBitRate(desiredBitRate)
		packed = quant.DecayVector3UVar(mutable.Translation(segment, transformIndex, sampleIndex), numBits)

		isClipNormalized = clipRange.IsNormalized
		isSegmentNormalized = segRange.IsNormalized
	}

	if isSegmentNormalized {
		packed = packed.MulAdd(segRange.Extent, segRange.Min)
	}
	if isClipNormalized {
		packed = packed.MulAdd(clipRange.Extent, clipRange.Min)
	}

	return packed
}

// DecayedScale returns the scale a decoder would reconstruct for the desired bit
// rate. For clips without scale this is the default scale regardless of bit rate.
func DecayedScale(raw, mutable *Database, segment *Segment, transformIndex int, sampleIndex uint32, desiredBitRate uint8) vec.Vector4 {
	if !mutable.clip.HasScale {
		return mutable.defaultScale
	}

	clipRange := &mutable.ranges[transformIndex].Scale
	segRange := &segment.Ranges[transformIndex].Scale

	if clipRange.IsConstant {
		return NormalizedScale(mutable, segment, transformIndex, 0)
	}

	var packed vec.Vector4
	var isClipNormalized, isSegmentNormalized bool

	switch {
	case format.IsConstantBitRate(desiredBitRate):
		scale := raw.Scale(segment, transformIndex, 0)
		packed = quant.DecayVector3U48(NormalizeSample(scale, clipRange))

		isClipNormalized = clipRange.IsNormalized
		isSegmentNormalized = false
	case format.IsRawBitRate(desiredBitRate):
		packed = raw.Scale(segment, transformIndex, sampleIndex)

		isClipNormalized = false
		isSegmentNormalized = false
	default:
		numBits := format.NumBitsAtBitRate(desiredBitRate)
		packed = quant.DecayVector3UVar(mutable.Scale(segment, transformIndex, sampleIndex), numBits)

		isClipNormalized = clipRange.IsNormalized
		isSegmentNormalized = segRange.IsNormalized
	}

	if isSegmentNormalized {
		packed = packed.MulAdd(segRange.Extent, segRange.Min)
	}
	if isClipNormalized {
		packed = packed.MulAdd(clipRange.Extent, clipRange.Min)
	}

	return packed
}

// DecayedRotationFixed returns the rotation a decoder would reconstruct if the track
// were stored in the given fixed rotation format under the current normalization
// state.
func DecayedRotationFixed(mutable *Database, segment *Segment, transformIndex int, sampleIndex uint32, desired format.RotationFormat) vec.Quat {
	clipRange := &mutable.ranges[transformIndex].Rotation
	segRange := &segment.Ranges[transformIndex].Rotation

	rotation := mutable.Rotation(segment, transformIndex, sampleIndex)

	var packed vec.Vector4
	switch desired {
	case format.RotationQuat128, format.RotationQuatDropW96:
		packed = rotation
	case format.RotationQuatDropW48:
		if clipRange.IsNormalized {
			packed = quant.DecayVector3U48(rotation)
		} else {
			packed = quant.DecayVector3S48(rotation)
		}
	case format.RotationQuatDropW32:
		packed = quant.DecayVector332(rotation, clipRange.IsNormalized)
	default:
		panic("unexpected rotation format: " + desired.String())
	}

	if segRange.IsNormalized {
		packed = packed.MulAdd(segRange.Extent, segRange.Min)
	}
	if clipRange.IsNormalized {
		packed = packed.MulAdd(clipRange.Extent, clipRange.Min)
	}

	return rotationToQuat(packed, desired)
}

// DecayedTranslationFixed returns the translation a decoder would reconstruct if the
// track were stored in the given fixed vector format.
func DecayedTranslationFixed(mutable *Database, segment *Segment, transformIndex int, sampleIndex uint32, desired format.VectorFormat) vec.Vector4 {
	clipRange := &mutable.ranges[transformIndex].Translation
	segRange := &segment.Ranges[transformIndex].Translation

	return decayedVectorFixed(mutable.Translation(segment, transformIndex, sampleIndex), desired, clipRange, segRange)
}

// DecayedScaleFixed returns the scale a decoder would reconstruct if the track were
// stored in the given fixed vector format.
func DecayedScaleFixed(mutable *Database, segment *Segment, transformIndex int, sampleIndex uint32, desired format.VectorFormat) vec.Vector4 {
	if !mutable.clip.HasScale {
		return mutable.defaultScale
	}

	clipRange := &mutable.ranges[transformIndex].Scale
	segRange := &segment.Ranges[transformIndex].Scale

	return decayedVectorFixed(mutable.Scale(segment, transformIndex, sampleIndex), desired, clipRange, segRange)
}

func decayedVectorFixed(v vec.Vector4, desired format.VectorFormat, clipRange, segRange *ChannelRange) vec.Vector4 {
	var packed vec.Vector4
	switch desired {
	case format.Vector96:
		packed = v
	case format.Vector48:
		packed = quant.DecayVector3U48(v)
	case format.Vector32:
		packed = quant.DecayVector332(v, true)
	default:
		panic("unexpected vector format: " + desired.String())
	}

	if segRange.IsNormalized {
		packed = packed.MulAdd(segRange.Extent, segRange.Min)
	}
	if clipRange.IsNormalized {
		packed = packed.MulAdd(clipRange.Extent, clipRange.Min)
	}

	return packed
}
