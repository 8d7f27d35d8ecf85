package track

import "github.com/arloliu/animpack/vec"

// The two normalization passes rewrite the mutable database in place and must run in
// order: clip ranges first, then segment ranges over the already clip-normalized
// samples. After both passes, range descriptors are read-only for the remainder of
// compression, and decoding a non-constant non-raw sample v is
// (v*seg.Extent + seg.Min) * clip.Extent + clip.Min.

// NormalizeClipRanges computes the clip-wide range of every channel of every
// transform from the database, classifies constant and default channels, and rewrites
// every non-constant channel's samples into [0, 1] space.
func NormalizeClipRanges(d *Database, segments []Segment, settings *Settings) {
	identityScale := d.defaultScale

	for t := range d.clip.NumTransforms {
		r := &d.ranges[t]

		r.Rotation = computeClipChannelRange(d, segments, t, channelRotation)
		r.Rotation.classify(vec.New(0, 0, 0, 1), constantRotationThreshold)

		r.Translation = computeClipChannelRange(d, segments, t, channelTranslation)
		r.Translation.classify(vec.Zero(), constantTranslationThreshold)

		if d.clip.HasScale {
			r.Scale = computeClipChannelRange(d, segments, t, channelScale)
			r.Scale.classify(identityScale, settings.ConstantScaleThreshold)
		} else {
			r.Scale = ChannelRange{Min: identityScale, Max: identityScale, IsConstant: true, IsDefault: true}
		}

		if !r.Rotation.IsConstant {
			normalizeChannelInPlace(d, segments, t, channelRotation, &r.Rotation)
			r.Rotation.IsNormalized = true
		}
		if !r.Translation.IsConstant {
			normalizeChannelInPlace(d, segments, t, channelTranslation, &r.Translation)
			r.Translation.IsNormalized = true
		}
		if d.clip.HasScale && !r.Scale.IsConstant {
			normalizeChannelInPlace(d, segments, t, channelScale, &r.Scale)
			r.Scale.IsNormalized = true
		}
	}

	d.AreRotationsNormalized = true
	d.AreTranslationsNormalized = true
	d.AreScalesNormalized = d.clip.HasScale
}

// NormalizeSegmentRanges computes per-segment ranges of the clip-normalized samples
// and rewrites them into segment-normalized space. Channels that are constant at clip
// scope carry no segment samples and keep an empty constant descriptor.
func NormalizeSegmentRanges(d *Database, segments []Segment) {
	for segIndex := range segments {
		segment := &segments[segIndex]

		for t := range d.clip.NumTransforms {
			clipRange := &d.ranges[t]
			segRange := &segment.Ranges[t]

			segRange.Rotation = normalizeSegmentChannel(d, segment, t, channelRotation, &clipRange.Rotation)
			segRange.Translation = normalizeSegmentChannel(d, segment, t, channelTranslation, &clipRange.Translation)

			if d.clip.HasScale {
				segRange.Scale = normalizeSegmentChannel(d, segment, t, channelScale, &clipRange.Scale)
			} else {
				segRange.Scale = ChannelRange{Min: clipRange.Scale.Min, Max: clipRange.Scale.Max, IsConstant: true, IsDefault: clipRange.Scale.IsDefault}
			}
		}

		segment.AreRotationsNormalized = true
		segment.AreTranslationsNormalized = true
		segment.AreScalesNormalized = d.clip.HasScale
	}
}

// channelKind selects which channel triple (quad for rotation) an operation targets.
type channelKind uint8

const (
	channelRotation channelKind = iota
	channelTranslation
	channelScale
)

func channelSample(d *Database, segment *Segment, transformIndex int, kind channelKind, sampleIndex uint32) vec.Vector4 {
	switch kind {
	case channelRotation:
		return d.Rotation(segment, transformIndex, sampleIndex)
	case channelTranslation:
		return d.Translation(segment, transformIndex, sampleIndex)
	default:
		return d.Scale(segment, transformIndex, sampleIndex)
	}
}

func channelComponents(kind channelKind) int {
	if kind == channelRotation {
		return 4
	}

	return 3
}

// computeClipChannelRange folds one channel's range over the valid samples of every
// segment. Padding slots replicate valid samples and cannot move the range, but they
// are skipped anyway so the result is independent of the padding width.
func computeClipChannelRange(d *Database, segments []Segment, transformIndex int, kind channelKind) ChannelRange {
	seg0 := &segments[0]
	r := computeRange(func(i uint32) vec.Vector4 {
		return channelSample(d, seg0, transformIndex, kind, i)
	}, seg0.NumSamples, channelComponents(kind))

	for segIndex := 1; segIndex < len(segments); segIndex++ {
		segment := &segments[segIndex]
		sr := computeRange(func(i uint32) vec.Vector4 {
			return channelSample(d, segment, transformIndex, kind, i)
		}, segment.NumSamples, channelComponents(kind))

		r.Min = r.Min.Min(sr.Min)
		r.Max = r.Max.Max(sr.Max)
	}

	r.Extent = r.Max.Sub(r.Min)

	return r
}

// normalizeChannelInPlace rewrites every sample of one channel, padding included, to
// (v-min)/extent.
func normalizeChannelInPlace(d *Database, segments []Segment, transformIndex int, kind channelKind, r *ChannelRange) {
	for segIndex := range segments {
		segment := &segments[segIndex]

		for i := uint32(0); i < segment.NumSIMDSamples; i++ {
			v := NormalizeSample(channelSample(d, segment, transformIndex, kind, i), r)

			switch kind {
			case channelRotation:
				d.SetRotation(v, segment, transformIndex, i)
			case channelTranslation:
				d.SetTranslation(v, segment, transformIndex, i)
			default:
				d.SetScale(v, segment, transformIndex, i)
			}
		}
	}
}

// normalizeSegmentChannel computes one channel's segment range over clip-normalized
// samples and rewrites the segment window into segment-normalized space. Clip-constant
// channels are passed through untouched.
func normalizeSegmentChannel(d *Database, segment *Segment, transformIndex int, kind channelKind, clipRange *ChannelRange) ChannelRange {
	if clipRange.IsConstant {
		return ChannelRange{IsConstant: true, IsDefault: clipRange.IsDefault}
	}

	r := computeRange(func(i uint32) vec.Vector4 {
		return channelSample(d, segment, transformIndex, kind, i)
	}, segment.NumSamples, channelComponents(kind))

	for i := uint32(0); i < segment.NumSIMDSamples; i++ {
		v := NormalizeSample(channelSample(d, segment, transformIndex, kind, i), &r)

		switch kind {
		case channelRotation:
			d.SetRotation(v, segment, transformIndex, i)
		case channelTranslation:
			d.SetTranslation(v, segment, transformIndex, i)
		default:
			d.SetScale(v, segment, transformIndex, i)
		}
	}

	r.IsNormalized = true

	return r
}
