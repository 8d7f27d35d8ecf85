// Package animpack compresses streams of rigid-body animation transforms for
// skeletal characters into a compact, decompression-friendly binary blob.
//
// A clip of per-frame keyframes over a bone hierarchy is ingested into a SIMD-friendly
// SOA track database, split into segments, range-normalized at clip and segment scope,
// quantized per track at fixed or variable bit rates, and serialized into a checksummed,
// optionally compressed payload.
//
// # Basic Usage
//
//	settings, _ := track.NewSettings()
//	blobBytes, err := animpack.Compress(provider, settings, nil)
//
// The provider implements track.KeyframeProvider over your source animation data.
// Passing a nil selector keeps every animated track at full precision; supply a
// BitRateSelector to trade precision for size under an error bound, scoring candidate
// bit rates with the decayed evaluation primitives in the track package:
//
//	value := track.DecayedTranslation(raw, mutable, segment, transformIndex, sampleIndex, bitRate)
//
// # Package Structure
//
//   - track: SOA database, segmentation, range normalization, raw/normalized/decayed sampling
//   - quant: fixed-point pack/unpack/decay codecs
//   - blob, section: blob serialization, headers, payload compression and checksum
//   - format: persisted format tags and the bit-rate table
//
// This package provides the top-level pipeline wrapper; the sub-packages are usable
// directly for fine-grained control.
package animpack

import (
	"fmt"

	"github.com/arloliu/animpack/alloc"
	"github.com/arloliu/animpack/blob"
	"github.com/arloliu/animpack/format"
	"github.com/arloliu/animpack/section"
	"github.com/arloliu/animpack/track"
)

// BitRateSelector assigns a bit rate to each animated track of each transform,
// subject to whatever error policy the implementation carries. The search strategy
// lives outside the compression core; implementations score candidates with the
// decayed sampling primitives of the track package and commit every transform
// exactly once.
type BitRateSelector interface {
	SelectBitRates(raw, mutable *track.Database, segments []track.Segment, settings *track.Settings, rates *track.BitRateSet) error
}

// rawSelector keeps every animated track at full precision. It is the default when
// no selector is supplied: lossless within float32, largest output.
type rawSelector struct{}

func (rawSelector) SelectBitRates(_, mutable *track.Database, _ []track.Segment, _ *track.Settings, rates *track.BitRateSet) error {
	for t := range mutable.NumTransforms() {
		r := mutable.Range(t)

		triple := track.InvalidBitRates()
		if !r.Rotation.IsConstant {
			triple.Rotation = format.HighestBitRate
		}
		if !r.Translation.IsConstant {
			triple.Translation = format.HighestBitRate
		}
		if mutable.HasScale() && !r.Scale.IsConstant {
			triple.Scale = format.HighestBitRate
		}

		rates.Commit(t, triple)
	}

	return nil
}

// Compress runs the whole pipeline over one clip and returns the serialized blob.
//
// The pipeline: validate and ingest the clip into a raw database, clone the mutable
// working copy, convert rotations to the configured format, normalize clip then
// segment ranges, assign bit rates through the selector (nil keeps animated tracks
// raw), and emit the packed blob.
//
// Compress is synchronous CPU work with no suspension points. Process multiple clips
// concurrently by calling Compress from separate goroutines; every call builds its
// own databases.
func Compress(provider track.KeyframeProvider, settings *track.Settings, selector BitRateSelector, opts ...blob.WriterOption) ([]byte, error) {
	return CompressWithAllocator(alloc.Heap{}, provider, settings, selector, opts...)
}

// CompressWithAllocator is Compress with an explicit buffer allocator.
func CompressWithAllocator(allocator alloc.Allocator, provider track.KeyframeProvider, settings *track.Settings, selector BitRateSelector, opts ...blob.WriterOption) ([]byte, error) {
	clip, err := track.NewClip(provider, settings)
	if err != nil {
		return nil, fmt.Errorf("clip validation: %w", err)
	}

	segments := track.SplitSegments(clip, settings)

	raw, err := track.NewRawDatabase(allocator, provider, clip, segments)
	if err != nil {
		return nil, fmt.Errorf("raw database: %w", err)
	}
	defer raw.Destroy()

	mutable, err := raw.Clone()
	if err != nil {
		return nil, fmt.Errorf("mutable database: %w", err)
	}
	defer mutable.Destroy()

	mutable.ConvertRotations(settings.RotationFormat, segments)
	mutable.SetTranslationFormat(settings.TranslationFormat)
	mutable.SetScaleFormat(settings.ScaleFormat)

	track.NormalizeClipRanges(mutable, segments, settings)
	track.NormalizeSegmentRanges(mutable, segments)

	if selector == nil {
		selector = rawSelector{}
	}

	rates := track.NewBitRateSet(clip.NumTransforms)
	if err := selector.SelectBitRates(raw, mutable, segments, settings, rates); err != nil {
		return nil, fmt.Errorf("bit rate selection: %w", err)
	}

	header := section.NewClipHeader()
	header.Flag.RotationFormat = uint8(settings.RotationFormat)
	header.Flag.SetHasScale(clip.HasScale)
	header.Flag.SetAdditive(clip.Additive == format.AdditiveRelative)
	header.NumTransforms = uint16(clip.NumTransforms)
	header.NumSegments = uint16(len(segments))
	header.NumSamplesPerTrack = uint32(clip.NumSamplesPerTrack)
	header.SampleRate = clip.SampleRate
	header.TranslationFormat = uint8(settings.TranslationFormat)
	header.ScaleFormat = uint8(settings.ScaleFormat)

	writer, err := blob.NewWriter(header, opts...)
	if err != nil {
		return nil, fmt.Errorf("blob writer: %w", err)
	}

	if err := blob.EncodeClip(raw, mutable, segments, rates, writer); err != nil {
		return nil, fmt.Errorf("blob encoding: %w", err)
	}

	return writer.Finish()
}
