package blob

import (
	"fmt"

	"github.com/arloliu/animpack/format"
	"github.com/arloliu/animpack/quant"
	"github.com/arloliu/animpack/track"
	"github.com/arloliu/animpack/vec"
)

// EncodeClip walks the finished databases and pushes the serialized clip to the sink:
// clip-level range data first, then per segment the range data (bit-rate triples,
// constant samples, segment min/extent pairs) and the packed animated sample stream.
//
// Both normalization passes must have run and every transform's bit rates must be
// committed before encoding.
func EncodeClip(raw, mutable *track.Database, segments []track.Segment, rates *track.BitRateSet, sink Sink) error {
	numTransforms := mutable.NumTransforms()
	for t := range numTransforms {
		if !rates.IsCommitted(t) {
			return fmt.Errorf("transform %d has no committed bit rates", t)
		}
	}

	if err := sink.WriteClipRangeData(encodeClipRanges(mutable)); err != nil {
		return fmt.Errorf("clip range data: %w", err)
	}

	for segIndex := range segments {
		segment := &segments[segIndex]

		if err := sink.BeginSegment(segIndex); err != nil {
			return err
		}
		if err := sink.WriteSegmentRangeData(encodeSegmentRanges(raw, mutable, segment, rates)); err != nil {
			return fmt.Errorf("segment %d range data: %w", segIndex, err)
		}
		if err := sink.WriteAnimatedData(encodeAnimatedData(raw, mutable, segment, rates)); err != nil {
			return fmt.Errorf("segment %d animated data: %w", segIndex, err)
		}
		if err := sink.EndSegment(); err != nil {
			return err
		}
	}

	return nil
}

// encodeClipRanges serializes, per transform: the constant sample of each constant
// non-default channel, and the min/extent pair of each animated channel. Rotation
// values occupy four float32 lanes, vectors three. Default channels store nothing.
func encodeClipRanges(mutable *track.Database) []byte {
	var out []byte

	appendRotation := func(v vec.Vector4) {
		var buf [quant.SizeVector4128]byte
		quant.PackVector4128(v, buf[:])
		out = append(out, buf[:]...)
	}
	appendVector := func(v vec.Vector4) {
		var buf [quant.SizeVector396]byte
		quant.PackVector396(v, buf[:])
		out = append(out, buf[:]...)
	}

	for t := range mutable.NumTransforms() {
		r := mutable.Range(t)

		if !r.Rotation.IsDefault {
			if r.Rotation.IsConstant {
				appendRotation(r.Rotation.Min)
			} else {
				appendRotation(r.Rotation.Min)
				appendRotation(r.Rotation.Extent)
			}
		}

		if !r.Translation.IsDefault {
			if r.Translation.IsConstant {
				appendVector(r.Translation.Min)
			} else {
				appendVector(r.Translation.Min)
				appendVector(r.Translation.Extent)
			}
		}

		if mutable.HasScale() && !r.Scale.IsDefault {
			if r.Scale.IsConstant {
				appendVector(r.Scale.Min)
			} else {
				appendVector(r.Scale.Min)
				appendVector(r.Scale.Extent)
			}
		}
	}

	return out
}

// encodeSegmentRanges serializes one segment's range section: the per-transform
// bit-rate triples when any track format is variable, then per animated channel
// either the packed Vec48 constant (for tracks constant within this segment) or the
// segment min/extent pair.
func encodeSegmentRanges(raw, mutable *track.Database, segment *track.Segment, rates *track.BitRateSet) []byte {
	var out []byte

	anyVariable := mutable.RotationFormat().IsVariable() ||
		mutable.TranslationFormat().IsVariable() ||
		mutable.ScaleFormat().IsVariable()
	if anyVariable {
		for t := range mutable.NumTransforms() {
			r := rates.Rates(t)
			out = append(out, r.Rotation, r.Translation, r.Scale)
		}
	}

	appendRotationPair := func(r *track.ChannelRange) {
		var buf [quant.SizeVector4128]byte
		quant.PackVector4128(r.Min, buf[:])
		out = append(out, buf[:]...)
		quant.PackVector4128(r.Extent, buf[:])
		out = append(out, buf[:]...)
	}
	appendVectorPair := func(r *track.ChannelRange) {
		var buf [quant.SizeVector396]byte
		quant.PackVector396(r.Min, buf[:])
		out = append(out, buf[:]...)
		quant.PackVector396(r.Extent, buf[:])
		out = append(out, buf[:]...)
	}
	appendConstant := func(v vec.Vector4, clipRange *track.ChannelRange) {
		var buf [quant.SizeVector348]byte
		quant.PackVector3U48(track.NormalizeSample(v, clipRange), buf[:])
		out = append(out, buf[:]...)
	}

	for t := range mutable.NumTransforms() {
		clip := mutable.Range(t)
		seg := &segment.Ranges[t]
		r := rates.Rates(t)

		if !clip.Rotation.IsConstant {
			if mutable.RotationFormat().IsVariable() && format.IsConstantBitRate(r.Rotation) {
				rotation := track.ConvertRotationSample(raw.Rotation(segment, t, 0), raw.RotationFormat(), mutable.RotationFormat())
				appendConstant(rotation, &clip.Rotation)
			} else {
				appendRotationPair(&seg.Rotation)
			}
		}

		if !clip.Translation.IsConstant {
			if mutable.TranslationFormat().IsVariable() && format.IsConstantBitRate(r.Translation) {
				appendConstant(raw.Translation(segment, t, 0), &clip.Translation)
			} else {
				appendVectorPair(&seg.Translation)
			}
		}

		if mutable.HasScale() && !clip.Scale.IsConstant {
			if mutable.ScaleFormat().IsVariable() && format.IsConstantBitRate(r.Scale) {
				appendConstant(raw.Scale(segment, t, 0), &clip.Scale)
			} else {
				appendVectorPair(&seg.Scale)
			}
		}
	}

	return out
}

// encodeAnimatedData packs the segment's sample stream: for every sample index in
// order, every transform's animated channels back to back. Variable-rate fields pack
// bit-tight; any fixed-size field after variable bits is aligned up to the mixed
// packing boundary. The stream is padded to a whole byte count at the end.
func encodeAnimatedData(raw, mutable *track.Database, segment *track.Segment, rates *track.BitRateSet) []byte {
	bw := newBitBuffer(estimateAnimatedBytes(mutable, segment, rates))

	for sampleIndex := uint32(0); sampleIndex < segment.NumSamples; sampleIndex++ {
		for t := range mutable.NumTransforms() {
			clip := mutable.Range(t)
			r := rates.Rates(t)

			if !clip.Rotation.IsConstant {
				packRotationSample(bw, raw, mutable, segment, t, sampleIndex, r.Rotation)
			}
			if !clip.Translation.IsConstant {
				packVectorSample(bw, raw, mutable, segment, t, sampleIndex, r.Translation, channelTranslation)
			}
			if mutable.HasScale() && !clip.Scale.IsConstant {
				packVectorSample(bw, raw, mutable, segment, t, sampleIndex, r.Scale, channelScale)
			}
		}
	}

	return bw.bytes()
}

type vectorChannel uint8

const (
	channelTranslation vectorChannel = iota
	channelScale
)

func packRotationSample(bw *bitBuffer, raw, mutable *track.Database, segment *track.Segment, t int, sampleIndex uint32, bitRate uint8) {
	f := mutable.RotationFormat()

	if f.IsVariable() {
		switch {
		case format.IsConstantBitRate(bitRate):
			// Stored once in the segment range data, nothing per sample.
			return
		case format.IsRawBitRate(bitRate):
			rotation := track.ConvertRotationSample(raw.Rotation(segment, t, sampleIndex), raw.RotationFormat(), f)
			bw.alignTo(format.MixedPackingAlignmentBits)
			bw.packBytes(quant.SizeVector396, func(buf []byte) { quant.PackVector396(rotation, buf) })

			return
		default:
			numBits := format.NumBitsAtBitRate(bitRate)
			rotation := mutable.Rotation(segment, t, sampleIndex)
			bw.packBits(numBits*3, func(buf []byte, bitOffset uint32) {
				quant.PackVector3UVar(rotation, numBits, buf, bitOffset)
			})

			return
		}
	}

	rotation := mutable.Rotation(segment, t, sampleIndex)
	isNormalized := mutable.Range(t).Rotation.IsNormalized

	bw.alignTo(format.MixedPackingAlignmentBits)

	switch f {
	case format.RotationQuat128:
		bw.packBytes(quant.SizeVector4128, func(buf []byte) { quant.PackVector4128(rotation, buf) })
	case format.RotationQuatDropW96:
		bw.packBytes(quant.SizeVector396, func(buf []byte) { quant.PackVector396(rotation, buf) })
	case format.RotationQuatDropW48:
		if isNormalized {
			bw.packBytes(quant.SizeVector348, func(buf []byte) { quant.PackVector3U48(rotation, buf) })
		} else {
			bw.packBytes(quant.SizeVector348, func(buf []byte) { quant.PackVector3S48(rotation, buf) })
		}
	case format.RotationQuatDropW32:
		bw.packBytes(quant.SizeVector332, func(buf []byte) { quant.PackVector332(rotation, isNormalized, buf) })
	default:
		panic("invalid rotation format: " + f.String())
	}
}

func packVectorSample(bw *bitBuffer, raw, mutable *track.Database, segment *track.Segment, t int, sampleIndex uint32, bitRate uint8, channel vectorChannel) {
	var f format.VectorFormat
	var value, rawValue vec.Vector4
	if channel == channelTranslation {
		f = mutable.TranslationFormat()
		value = mutable.Translation(segment, t, sampleIndex)
		rawValue = raw.Translation(segment, t, sampleIndex)
	} else {
		f = mutable.ScaleFormat()
		value = mutable.Scale(segment, t, sampleIndex)
		rawValue = raw.Scale(segment, t, sampleIndex)
	}

	if f.IsVariable() {
		switch {
		case format.IsConstantBitRate(bitRate):
			return
		case format.IsRawBitRate(bitRate):
			bw.alignTo(format.MixedPackingAlignmentBits)
			bw.packBytes(quant.SizeVector396, func(buf []byte) { quant.PackVector396(rawValue, buf) })

			return
		default:
			numBits := format.NumBitsAtBitRate(bitRate)
			bw.packBits(numBits*3, func(buf []byte, bitOffset uint32) {
				quant.PackVector3UVar(value, numBits, buf, bitOffset)
			})

			return
		}
	}

	bw.alignTo(format.MixedPackingAlignmentBits)

	switch f {
	case format.Vector96:
		bw.packBytes(quant.SizeVector396, func(buf []byte) { quant.PackVector396(value, buf) })
	case format.Vector48:
		bw.packBytes(quant.SizeVector348, func(buf []byte) { quant.PackVector3U48(value, buf) })
	case format.Vector32:
		bw.packBytes(quant.SizeVector332, func(buf []byte) { quant.PackVector332(value, true, buf) })
	default:
		panic("invalid vector format: " + f.String())
	}
}

// estimateAnimatedBytes upper-bounds the animated stream size: the per-sample bit
// counts plus one alignment padding per channel per sample.
func estimateAnimatedBytes(mutable *track.Database, segment *track.Segment, rates *track.BitRateSet) int {
	var bits uint32
	for t := range mutable.NumTransforms() {
		bits += track.TransformSampleBits(mutable, t, rates.Rates(t))
		bits += 3 * format.MixedPackingAlignmentBits
	}

	return int(bits) / 8 * int(segment.NumSamples)
}
