package track

import (
	"fmt"

	"github.com/arloliu/animpack/errs"
	"github.com/arloliu/animpack/format"
	"github.com/arloliu/animpack/vec"
)

// NoParent is the parent index sentinel for root transforms.
const NoParent uint16 = 0xFFFF

// MaxTransforms is the largest transform count a clip may carry; parent indices are
// stored as 16-bit values with NoParent reserved.
const MaxTransforms = int(NoParent)

// unitRotationTolerance is the ingest tolerance on rotation sample length.
const unitRotationTolerance = 1e-4

// KeyframeProvider supplies the per-bone sample sequences of one clip at a fixed
// rate. Samples are delivered in array-of-structs form; the database performs the
// AoS to SoA transposition and SIMD padding at ingest.
//
// Rotations must be unit quaternions to within 1e-4; ingest validates and rejects the
// clip otherwise.
type KeyframeProvider interface {
	// NumTransforms returns the number of bones in the hierarchy.
	NumTransforms() int

	// NumSamplesPerTrack returns the number of samples every track carries.
	NumSamplesPerTrack() int

	// SampleRate returns the sample rate in Hz.
	SampleRate() float32

	// AdditiveMode reports whether the clip is additive, which decides the default
	// scale: identity for normal clips, zero for additive clips.
	AdditiveMode() format.AdditiveMode

	// ParentIndex returns the parent of a transform, or NoParent for roots.
	// A parent index is always lower than the transform's own index.
	ParentIndex(transformIndex int) uint16

	// Sample returns the transform sample at the given indices.
	Sample(transformIndex, sampleIndex int) (rotation vec.Quat, translation, scale vec.Vector4)
}

// DefaultScale returns the default scale of a clip in the given additive mode.
func DefaultScale(mode format.AdditiveMode) vec.Vector4 {
	if mode == format.AdditiveRelative {
		return vec.Zero()
	}

	return vec.New3(1, 1, 1)
}

// Clip holds the validated per-clip constants shared by every database and segment.
type Clip struct {
	NumTransforms      int
	NumSamplesPerTrack int
	SampleRate         float32
	Duration           float32
	Additive           format.AdditiveMode
	HasScale           bool

	parents []uint16
}

// ParentIndex returns the parent of a transform, or NoParent for roots.
func (c *Clip) ParentIndex(transformIndex int) uint16 {
	return c.parents[transformIndex]
}

// NewClip validates the provider and captures the clip constants.
//
// The scale presence check scans every scale sample: scale is dropped clip-wide when
// every sample is within settings.ConstantScaleThreshold of the default scale.
// Validation failures return a sentinel error from the errs package before any state
// is built.
func NewClip(provider KeyframeProvider, settings *Settings) (*Clip, error) {
	numTransforms := provider.NumTransforms()
	numSamples := provider.NumSamplesPerTrack()
	if numTransforms == 0 || numSamples == 0 {
		return nil, fmt.Errorf("%d transforms, %d samples: %w", numTransforms, numSamples, errs.ErrEmptyClip)
	}
	if numTransforms > MaxTransforms {
		return nil, fmt.Errorf("%d transforms: %w", numTransforms, errs.ErrTooManyTransforms)
	}

	sampleRate := provider.SampleRate()
	if sampleRate <= 0 {
		return nil, fmt.Errorf("rate %v: %w", sampleRate, errs.ErrZeroSampleRate)
	}

	parents := make([]uint16, numTransforms)
	for i := range numTransforms {
		parent := provider.ParentIndex(i)
		if parent != NoParent && int(parent) >= i {
			return nil, fmt.Errorf("transform %d parent %d: %w", i, parent, errs.ErrInvalidParentIndex)
		}
		parents[i] = parent
	}

	mode := provider.AdditiveMode()
	defaultScale := DefaultScale(mode)
	scaleThreshold := settings.ConstantScaleThreshold

	hasScale := false
	for t := range numTransforms {
		for s := range numSamples {
			rotation, _, scale := provider.Sample(t, s)

			length := rotation.Length()
			if length < 1.0-unitRotationTolerance || length > 1.0+unitRotationTolerance {
				return nil, fmt.Errorf("transform %d sample %d length %v: %w", t, s, length, errs.ErrNonUnitRotation)
			}

			if scale.Sub(defaultScale).AbsMax3() > scaleThreshold {
				hasScale = true
			}
		}
	}

	return &Clip{
		NumTransforms:      numTransforms,
		NumSamplesPerTrack: numSamples,
		SampleRate:         sampleRate,
		Duration:           float32(numSamples-1) / sampleRate,
		Additive:           mode,
		HasScale:           hasScale,
		parents:            parents,
	}, nil
}
