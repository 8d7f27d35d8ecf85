package track

import "github.com/arloliu/animpack/vec"

// ChannelRange is the per-channel range descriptor: component-wise minimum and extent
// over a sample window, plus the channel's storage classification.
//
// Invariants: IsDefault implies IsConstant; IsConstant implies the extent is within
// the channel's constant threshold of zero. When IsNormalized is set, the samples in
// the database are stored in [0, 1] space and the original value is
// stored*Extent + Min.
type ChannelRange struct {
	Min    vec.Vector4
	Max    vec.Vector4
	Extent vec.Vector4

	IsConstant   bool
	IsDefault    bool
	IsNormalized bool
}

// TransformRanges groups the three channel descriptors of one transform. One instance
// exists per transform at clip scope and one per transform in every segment.
type TransformRanges struct {
	Rotation    ChannelRange
	Translation ChannelRange
	Scale       ChannelRange
}

// computeRange folds min/max over the valid samples of a channel and derives the
// extent. components is 3 or 4; lanes beyond it stay zero.
func computeRange(samples func(i uint32) vec.Vector4, numSamples uint32, components int) ChannelRange {
	mn := samples(0)
	mx := mn
	for i := uint32(1); i < numSamples; i++ {
		s := samples(i)
		mn = mn.Min(s)
		mx = mx.Max(s)
	}

	if components < 4 {
		mn.W = 0
		mx.W = 0
	}

	return ChannelRange{Min: mn, Max: mx, Extent: mx.Sub(mn)}
}

// classify marks the range constant when its extent is within threshold, and default
// when additionally the minimum matches the channel's identity value to the same
// threshold.
func (r *ChannelRange) classify(identity vec.Vector4, threshold float32) {
	if r.Extent.AbsMax4() > threshold {
		return
	}

	r.IsConstant = true
	r.IsDefault = r.Min.Sub(identity).AbsMax4() <= threshold
}

// NormalizeSample rescales one sample into [0, 1] space: (v-min)/extent where the
// extent is positive, 0 elsewhere.
func NormalizeSample(v vec.Vector4, r *ChannelRange) vec.Vector4 {
	return vec.Vector4{
		X: normalizeComponent(v.X, r.Min.X, r.Extent.X),
		Y: normalizeComponent(v.Y, r.Min.Y, r.Extent.Y),
		Z: normalizeComponent(v.Z, r.Min.Z, r.Extent.Z),
		W: normalizeComponent(v.W, r.Min.W, r.Extent.W),
	}
}

func normalizeComponent(v, mn, extent float32) float32 {
	if extent > 0 {
		return (v - mn) / extent
	}

	return 0
}
