package track

import (
	"github.com/arloliu/animpack/format"
)

// SIMD layout constants of the SOA database.
const (
	// SIMDWidth is the lane count of one SIMD load on the sweep path.
	SIMDWidth = 4

	// SIMDPaddingWidth is the sample padding granularity: twice the SIMD width so two
	// iterations can be interleaved without a partial tail loop.
	SIMDPaddingWidth = 8
)

// componentsPerTransform returns the channel count of one transform: rotation(4) +
// translation(3) + optional scale(3).
func componentsPerTransform(hasScale bool) uint32 {
	if hasScale {
		return 10
	}

	return 7
}

// Segment is a contiguous time window of one clip with independent normalization
// ranges. Segments tile [0, clip.NumSamplesPerTrack) without gaps or overlap.
type Segment struct {
	// Index is the segment's position in the clip.
	Index uint32

	// StartOffset is the clip sample index of the segment's first sample.
	StartOffset uint32

	// NumSamples is the number of valid samples per track in this segment.
	NumSamples uint32

	// NumSIMDSamples is NumSamples rounded up to the SIMD padding width. Slots beyond
	// NumSamples replicate the last valid sample so SIMD loads never read garbage.
	NumSIMDSamples uint32

	// SOASize is the byte size of this segment's region of the database buffer.
	SOASize uint32

	// SOAStartOffset is the byte offset of this segment's region within the clip's
	// contiguous database buffer.
	SOAStartOffset uint32

	// Distribution selects the interpolation policy when sampling at a time.
	Distribution format.SampleDistribution

	// Per-channel-type normalization state of this segment's samples.
	AreRotationsNormalized    bool
	AreTranslationsNormalized bool
	AreScalesNormalized       bool

	// Ranges holds one range descriptor per transform, valid after the segment-range
	// normalization pass.
	Ranges []TransformRanges
}

// SplitSegments partitions the clip timeline into contiguous windows of at most
// settings.SegmentMaxSamples samples and computes each segment's SOA layout. The last
// segment may be shorter.
func SplitSegments(clip *Clip, settings *Settings) []Segment {
	numSamples := uint32(clip.NumSamplesPerTrack)
	maxSamples := settings.SegmentMaxSamples
	numComponents := componentsPerTransform(clip.HasScale)

	numSegments := (numSamples + maxSamples - 1) / maxSamples
	segments := make([]Segment, 0, numSegments)

	var soaOffset uint32
	for start := uint32(0); start < numSamples; start += maxSamples {
		count := min(maxSamples, numSamples-start)
		simdCount := alignSamples(count)
		soaSize := simdCount * 4 * numComponents * uint32(clip.NumTransforms)

		segments = append(segments, Segment{
			Index:          uint32(len(segments)),
			StartOffset:    start,
			NumSamples:     count,
			NumSIMDSamples: simdCount,
			SOASize:        soaSize,
			SOAStartOffset: soaOffset,
			Distribution:   format.DistributionUniform,
			Ranges:         make([]TransformRanges, clip.NumTransforms),
		})

		soaOffset += soaSize
	}

	return segments
}

// alignSamples rounds a sample count up to the SIMD padding width.
func alignSamples(numSamples uint32) uint32 {
	return (numSamples + SIMDPaddingWidth - 1) &^ uint32(SIMDPaddingWidth-1)
}
