package track

import (
	"fmt"
	"unsafe"

	"github.com/arloliu/animpack/alloc"
	"github.com/arloliu/animpack/format"
	"github.com/arloliu/animpack/vec"
)

// Database owns the contiguous mutable SOA buffer holding all tracks of all segments
// for one clip. Within a segment the layout is, per transform: four rotation channels,
// three translation channels, then three scale channels when the clip has scale, each
// channel a run of NumSIMDSamples float32 values:
//
//	rot.x[0..S-1] rot.y[0..S-1] rot.z[0..S-1] rot.w[0..S-1] trans.x[...] ... scale.z[...]
//
// A raw database stores the true float samples produced at ingest and is immutable.
// A mutable database is cloned from the raw one and is rewritten in place by rotation
// format conversion and the two range-normalization passes.
//
// A Database is not safe for concurrent use.
type Database struct {
	allocator alloc.Allocator
	clip      *Clip

	rotationFormat    format.RotationFormat
	translationFormat format.VectorFormat
	scaleFormat       format.VectorFormat

	defaultScale vec.Vector4

	// defaultScaleChannel backs the synthesized scale views of scale-less clips. Both
	// default scales are uniform across x/y/z, so one padded channel serves all three.
	defaultScaleChannel []float32

	// ranges holds the clip-wide range descriptor of every transform, filled by the
	// clip-range normalization pass.
	ranges []TransformRanges

	// Clip-level normalization state, set by the clip-range pass.
	AreRotationsNormalized    bool
	AreTranslationsNormalized bool
	AreScalesNormalized       bool

	data []byte
}

// NewRawDatabase ingests the clip into a freshly allocated SOA buffer. Rotations are
// re-normalized to unit length during the copy, and every channel's padding slots
// replicate the segment's last valid sample.
//
// The returned database stores full-precision formats (Quat128, Vector96); format
// conversion happens on the mutable clone, never on the raw database.
func NewRawDatabase(allocator alloc.Allocator, provider KeyframeProvider, clip *Clip, segments []Segment) (*Database, error) {
	var dataSize uint32
	for i := range segments {
		dataSize += segments[i].SOASize
	}

	data, err := allocator.Allocate(int(dataSize), alloc.DatabaseAlignment)
	if err != nil {
		return nil, fmt.Errorf("database buffer of %d bytes: %w", dataSize, err)
	}

	maxSIMDSamples := uint32(0)
	for i := range segments {
		maxSIMDSamples = max(maxSIMDSamples, segments[i].NumSIMDSamples)
	}

	d := &Database{
		allocator:         allocator,
		clip:              clip,
		rotationFormat:    format.RotationQuat128,
		translationFormat: format.Vector96,
		scaleFormat:       format.Vector96,
		defaultScale:      DefaultScale(clip.Additive),
		ranges:            make([]TransformRanges, clip.NumTransforms),
		data:              data,
	}

	d.defaultScaleChannel = make([]float32, maxSIMDSamples)
	for i := range d.defaultScaleChannel {
		d.defaultScaleChannel[i] = d.defaultScale.X
	}

	for segIndex := range segments {
		segment := &segments[segIndex]

		for t := range clip.NumTransforms {
			rx, ry, rz, rw := d.Rotations(segment, t)
			tx, ty, tz := d.Translations(segment, t)

			var sx, sy, sz []float32
			if clip.HasScale {
				sx, sy, sz = d.Scales(segment, t)
			}

			for i := uint32(0); i < segment.NumSamples; i++ {
				rotation, translation, scale := provider.Sample(t, int(segment.StartOffset+i))
				rotation = rotation.Normalize()

				rx[i], ry[i], rz[i], rw[i] = rotation.X, rotation.Y, rotation.Z, rotation.W
				tx[i], ty[i], tz[i] = translation.X, translation.Y, translation.Z

				if clip.HasScale {
					sx[i], sy[i], sz[i] = scale.X, scale.Y, scale.Z
				}
			}

			// Pad by replicating the last valid sample so SIMD loads stay in bounds.
			last := segment.NumSamples - 1
			for i := segment.NumSamples; i < segment.NumSIMDSamples; i++ {
				rx[i], ry[i], rz[i], rw[i] = rx[last], ry[last], rz[last], rw[last]
				tx[i], ty[i], tz[i] = tx[last], ty[last], tz[last]

				if clip.HasScale {
					sx[i], sy[i], sz[i] = sx[last], sy[last], sz[last]
				}
			}
		}
	}

	return d, nil
}

// Clone returns a mutable working copy of the database: same clip constants and
// formats, an independent buffer and independent range descriptors.
func (d *Database) Clone() (*Database, error) {
	data, err := d.allocator.Allocate(len(d.data), alloc.DatabaseAlignment)
	if err != nil {
		return nil, fmt.Errorf("mutable database buffer: %w", err)
	}
	copy(data, d.data)

	clone := *d
	clone.data = data
	clone.ranges = make([]TransformRanges, len(d.ranges))
	copy(clone.ranges, d.ranges)

	return &clone, nil
}

// Destroy releases the database buffer. The database must not be used afterwards.
func (d *Database) Destroy() {
	d.allocator.Deallocate(d.data)
	d.data = nil
}

// Clip returns the clip constants the database was built from.
func (d *Database) Clip() *Clip { return d.clip }

// NumTransforms returns the transform count.
func (d *Database) NumTransforms() int { return d.clip.NumTransforms }

// NumSamplesPerTrack returns the clip-wide sample count per track.
func (d *Database) NumSamplesPerTrack() int { return d.clip.NumSamplesPerTrack }

// SampleRate returns the clip sample rate in Hz.
func (d *Database) SampleRate() float32 { return d.clip.SampleRate }

// Duration returns the clip duration in seconds.
func (d *Database) Duration() float32 { return d.clip.Duration }

// HasScale reports whether the clip carries animated scale.
func (d *Database) HasScale() bool { return d.clip.HasScale }

// DefaultScale returns the clip's default scale.
func (d *Database) DefaultScale() vec.Vector4 { return d.defaultScale }

// ParentIndex returns the parent of a transform, or NoParent.
func (d *Database) ParentIndex(transformIndex int) uint16 {
	return d.clip.ParentIndex(transformIndex)
}

// RotationFormat returns the database's active rotation format.
func (d *Database) RotationFormat() format.RotationFormat { return d.rotationFormat }

// SetTranslationFormat sets the database's translation format tag.
func (d *Database) SetTranslationFormat(f format.VectorFormat) { d.translationFormat = f }

// TranslationFormat returns the database's active translation format.
func (d *Database) TranslationFormat() format.VectorFormat { return d.translationFormat }

// SetScaleFormat sets the database's scale format tag.
func (d *Database) SetScaleFormat(f format.VectorFormat) { d.scaleFormat = f }

// ScaleFormat returns the database's active scale format.
func (d *Database) ScaleFormat() format.VectorFormat { return d.scaleFormat }

// Range returns the clip-wide range descriptor of a transform.
func (d *Database) Range(transformIndex int) *TransformRanges { return &d.ranges[transformIndex] }

// Addressing identity. Each channel is NumSIMDSamples*4 bytes; a transform is
// componentSize*C bytes with C = 7 or 10; rotation sits first, translation after the
// four rotation channels, scale after the three translation channels.

func (d *Database) componentSize(segment *Segment) uint32 {
	return 4 * segment.NumSIMDSamples
}

func (d *Database) transformOffset(segment *Segment, transformIndex int) uint32 {
	transformSize := d.componentSize(segment) * componentsPerTransform(d.clip.HasScale)
	return segment.SOAStartOffset + uint32(transformIndex)*transformSize
}

// channel returns the float32 view of one component channel, sized NumSIMDSamples.
func (d *Database) channel(byteOffset, numSIMDSamples uint32) []float32 {
	return unsafe.Slice((*float32)(unsafe.Pointer(&d.data[byteOffset])), numSIMDSamples)
}

// Rotations returns the four rotation channels of a transform in a segment. The W
// channel stays a live slot even under drop-W rotation formats until format
// conversion overwrites it.
func (d *Database) Rotations(segment *Segment, transformIndex int) (x, y, z, w []float32) {
	componentSize := d.componentSize(segment)
	base := d.transformOffset(segment, transformIndex)

	return d.channel(base, segment.NumSIMDSamples),
		d.channel(base+componentSize, segment.NumSIMDSamples),
		d.channel(base+componentSize*2, segment.NumSIMDSamples),
		d.channel(base+componentSize*3, segment.NumSIMDSamples)
}

// Translations returns the three translation channels of a transform in a segment.
func (d *Database) Translations(segment *Segment, transformIndex int) (x, y, z []float32) {
	componentSize := d.componentSize(segment)
	base := d.transformOffset(segment, transformIndex) + componentSize*4

	return d.channel(base, segment.NumSIMDSamples),
		d.channel(base+componentSize, segment.NumSIMDSamples),
		d.channel(base+componentSize*2, segment.NumSIMDSamples)
}

// Scales returns the three scale channels of a transform in a segment. For clips
// without scale it returns the synthesized default-scale channel for all three
// components without allocating; writing through those views is not allowed.
func (d *Database) Scales(segment *Segment, transformIndex int) (x, y, z []float32) {
	if !d.clip.HasScale {
		v := d.defaultScaleChannel[:segment.NumSIMDSamples]
		return v, v, v
	}

	componentSize := d.componentSize(segment)
	base := d.transformOffset(segment, transformIndex) + componentSize*7

	return d.channel(base, segment.NumSIMDSamples),
		d.channel(base+componentSize, segment.NumSIMDSamples),
		d.channel(base+componentSize*2, segment.NumSIMDSamples)
}

// Rotation reads one rotation sample.
func (d *Database) Rotation(segment *Segment, transformIndex int, sampleIndex uint32) vec.Vector4 {
	x, y, z, w := d.Rotations(segment, transformIndex)
	return vec.Vector4{X: x[sampleIndex], Y: y[sampleIndex], Z: z[sampleIndex], W: w[sampleIndex]}
}

// Translation reads one translation sample.
func (d *Database) Translation(segment *Segment, transformIndex int, sampleIndex uint32) vec.Vector4 {
	x, y, z := d.Translations(segment, transformIndex)
	return vec.Vector4{X: x[sampleIndex], Y: y[sampleIndex], Z: z[sampleIndex]}
}

// Scale reads one scale sample, or the default scale for clips without scale.
func (d *Database) Scale(segment *Segment, transformIndex int, sampleIndex uint32) vec.Vector4 {
	if !d.clip.HasScale {
		return d.defaultScale
	}

	x, y, z := d.Scales(segment, transformIndex)

	return vec.Vector4{X: x[sampleIndex], Y: y[sampleIndex], Z: z[sampleIndex]}
}

// SetRotation writes one rotation sample.
func (d *Database) SetRotation(rotation vec.Vector4, segment *Segment, transformIndex int, sampleIndex uint32) {
	x, y, z, w := d.Rotations(segment, transformIndex)
	x[sampleIndex], y[sampleIndex], z[sampleIndex], w[sampleIndex] = rotation.X, rotation.Y, rotation.Z, rotation.W
}

// SetTranslation writes one translation sample.
func (d *Database) SetTranslation(translation vec.Vector4, segment *Segment, transformIndex int, sampleIndex uint32) {
	x, y, z := d.Translations(segment, transformIndex)
	x[sampleIndex], y[sampleIndex], z[sampleIndex] = translation.X, translation.Y, translation.Z
}

// SetScale writes one scale sample. It is a no-op for clips without scale.
func (d *Database) SetScale(scale vec.Vector4, segment *Segment, transformIndex int, sampleIndex uint32) {
	if !d.clip.HasScale {
		return
	}

	x, y, z := d.Scales(segment, transformIndex)
	x[sampleIndex], y[sampleIndex], z[sampleIndex] = scale.X, scale.Y, scale.Z
}
