package track

import (
	"fmt"

	"github.com/arloliu/animpack/format"
	"github.com/arloliu/animpack/quant"
	"github.com/arloliu/animpack/vec"
)

// ChannelState is the storage state of one channel of one transform.
//
// The state machine: every animated channel starts Raw. Range computation moves a
// channel to Default or Constant exactly once; the external bit-rate search moves
// animated channels between Raw and FixedN until commit freezes the decision.
type ChannelState uint8

const (
	StateDefault ChannelState = iota
	StateConstant
	StateRaw
	StateFixed
)

func (s ChannelState) String() string {
	switch s {
	case StateDefault:
		return "Default"
	case StateConstant:
		return "Constant"
	case StateRaw:
		return "Raw"
	case StateFixed:
		return "Fixed"
	default:
		return "Unknown"
	}
}

// ChannelStateOf derives the state of a channel from its clip range and bit rate.
func ChannelStateOf(r *ChannelRange, bitRate uint8) ChannelState {
	switch {
	case r.IsDefault:
		return StateDefault
	case r.IsConstant || format.IsConstantBitRate(bitRate):
		return StateConstant
	case bitRate == format.InvalidBitRate || format.IsRawBitRate(bitRate):
		return StateRaw
	default:
		return StateFixed
	}
}

// BitRates is the per-transform bit-rate triple of the variable formats.
type BitRates struct {
	Rotation    uint8
	Translation uint8
	Scale       uint8
}

// InvalidBitRates returns a triple with every channel unassigned.
func InvalidBitRates() BitRates {
	return BitRates{
		Rotation:    format.InvalidBitRate,
		Translation: format.InvalidBitRate,
		Scale:       format.InvalidBitRate,
	}
}

// BitRateSet holds the per-transform bit-rate decisions of one clip. Decisions start
// unassigned; Commit fixes a transform's triple exactly once without mutating any
// database. After commit the triple is read-only.
type BitRateSet struct {
	rates     []BitRates
	committed []bool
}

// NewBitRateSet returns an unassigned set for numTransforms transforms.
func NewBitRateSet(numTransforms int) *BitRateSet {
	rates := make([]BitRates, numTransforms)
	for i := range rates {
		rates[i] = InvalidBitRates()
	}

	return &BitRateSet{
		rates:     rates,
		committed: make([]bool, numTransforms),
	}
}

// Commit fixes the bit-rate triple of one transform. Committing twice, or committing
// a bit rate above the highest, is a programming error and panics.
func (s *BitRateSet) Commit(transformIndex int, rates BitRates) {
	if s.committed[transformIndex] {
		panic(fmt.Sprintf("transform %d already committed", transformIndex))
	}

	validate := func(bitRate uint8) {
		if bitRate != format.InvalidBitRate && bitRate > format.HighestBitRate {
			panic(fmt.Sprintf("invalid bit rate: %d", bitRate))
		}
	}
	validate(rates.Rotation)
	validate(rates.Translation)
	validate(rates.Scale)

	s.rates[transformIndex] = rates
	s.committed[transformIndex] = true
}

// IsCommitted reports whether a transform's triple has been fixed.
func (s *BitRateSet) IsCommitted(transformIndex int) bool { return s.committed[transformIndex] }

// Rates returns the bit-rate triple of one transform.
func (s *BitRateSet) Rates(transformIndex int) BitRates { return s.rates[transformIndex] }

// TransformSampleBits returns the packed size in bits of one animated pose sample of
// one transform under the given bit rates: the sum over the transform's channels that
// store per-sample data. Default and constant channels contribute nothing.
func TransformSampleBits(d *Database, transformIndex int, rates BitRates) uint32 {
	r := d.Range(transformIndex)

	var bits uint32
	if !r.Rotation.IsConstant {
		bits += quant.RotationSampleBits(d.rotationFormat, rates.Rotation)
	}
	if !r.Translation.IsConstant {
		bits += quant.VectorSampleBits(d.translationFormat, rates.Translation)
	}
	if d.clip.HasScale && !r.Scale.IsConstant {
		bits += quant.VectorSampleBits(d.scaleFormat, rates.Scale)
	}

	return bits
}

// DecayedTransform evaluates one transform at a sample index the way a decoder would
// reconstruct it under the given bit rates. Default channels return their identity,
// constant channels their stored constant; animated channels go through the decay
// path. This is the evaluation primitive the external bit-rate search scores error
// against.
func DecayedTransform(raw, mutable *Database, segment *Segment, transformIndex int, sampleIndex uint32, rates BitRates) Transform {
	r := mutable.Range(transformIndex)

	var out Transform

	switch {
	case r.Rotation.IsDefault:
		out.Rotation = vec.QuatIdentity()
	case r.Rotation.IsConstant:
		out.Rotation = NormalizedRotation(mutable, segment, transformIndex, 0).Normalize()
	default:
		out.Rotation = DecayedRotation(raw, mutable, segment, transformIndex, sampleIndex, rates.Rotation)
	}

	switch {
	case r.Translation.IsDefault:
		out.Translation = vec.Zero()
	case r.Translation.IsConstant:
		out.Translation = NormalizedTranslation(mutable, segment, transformIndex, 0)
	default:
		out.Translation = DecayedTranslation(raw, mutable, segment, transformIndex, sampleIndex, rates.Translation)
	}

	switch {
	case r.Scale.IsDefault:
		out.Scale = mutable.defaultScale
	case r.Scale.IsConstant:
		out.Scale = NormalizedScale(mutable, segment, transformIndex, 0)
	default:
		out.Scale = DecayedScale(raw, mutable, segment, transformIndex, sampleIndex, rates.Scale)
	}

	return out
}
