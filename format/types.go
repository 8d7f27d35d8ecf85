package format

type (
	RotationFormat  uint8
	VectorFormat    uint8
	CompressionType uint8
)

// BE CAREFUL WHEN CHANGING THESE VALUES.
// The rotation and vector formats are serialized in the compressed data; reassigning
// a value invalidates every compressed clip. Bump the format version if you do.
const (
	RotationQuat128           RotationFormat = 0 // Full precision quaternion, [x,y,z,w] stored with float32.
	RotationQuatDropW96       RotationFormat = 1 // Full precision quaternion, [x,y,z] stored with float32 (w is dropped).
	RotationQuatDropW48       RotationFormat = 2 // Quantized quaternion, [x,y,z] stored with [16,16,16] bits (w is dropped).
	RotationQuatDropW32       RotationFormat = 3 // Quantized quaternion, [x,y,z] stored with [11,11,10] bits (w is dropped).
	RotationQuatDropWVariable RotationFormat = 4 // Quantized quaternion, [x,y,z] stored with [N,N,N] bits (w is dropped).

	Vector96       VectorFormat = 0 // Full precision vector3, [x,y,z] stored with float32.
	Vector48       VectorFormat = 1 // Quantized vector3, [x,y,z] stored with [16,16,16] bits.
	Vector32       VectorFormat = 2 // Quantized vector3, [x,y,z] stored with [11,11,10] bits.
	VectorVariable VectorFormat = 3 // Quantized vector3, [x,y,z] stored with [N,N,N] bits.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (f RotationFormat) String() string {
	switch f {
	case RotationQuat128:
		return "Quat128"
	case RotationQuatDropW96:
		return "QuatDropW96"
	case RotationQuatDropW48:
		return "QuatDropW48"
	case RotationQuatDropW32:
		return "QuatDropW32"
	case RotationQuatDropWVariable:
		return "QuatDropWVariable"
	default:
		return "Unknown"
	}
}

func (f VectorFormat) String() string {
	switch f {
	case Vector96:
		return "Vector96"
	case Vector48:
		return "Vector48"
	case Vector32:
		return "Vector32"
	case VectorVariable:
		return "VectorVariable"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// IsVariable reports whether the rotation format uses per-track variable bit rates.
func (f RotationFormat) IsVariable() bool { return f == RotationQuatDropWVariable }

// IsVariable reports whether the vector format uses per-track variable bit rates.
func (f VectorFormat) IsVariable() bool { return f == VectorVariable }

// RotationVariant identifies the reconstruction family of a rotation format.
type RotationVariant uint8

const (
	VariantQuat RotationVariant = iota
	VariantQuatDropW
)

// Variant returns the reconstruction family of the rotation format.
func (f RotationFormat) Variant() RotationVariant {
	switch f {
	case RotationQuat128:
		return VariantQuat
	case RotationQuatDropW96, RotationQuatDropW48, RotationQuatDropW32, RotationQuatDropWVariable:
		return VariantQuatDropW
	default:
		panic("invalid rotation format: " + f.String())
	}
}

// HighestVariantPrecision returns the full-precision format of a variant. It is the
// destination format of raw bit-rate decay.
func HighestVariantPrecision(v RotationVariant) RotationFormat {
	switch v {
	case VariantQuat:
		return RotationQuat128
	case VariantQuatDropW:
		return RotationQuatDropW96
	default:
		panic("invalid rotation variant")
	}
}

// SampleDistribution indicates whether all tracks of a segment share a common sample
// grid (Uniform) or each track carries its own rate (Variable).
type SampleDistribution uint8

const (
	DistributionUniform SampleDistribution = iota
	DistributionVariable
)

func (d SampleDistribution) String() string {
	switch d {
	case DistributionUniform:
		return "Uniform"
	case DistributionVariable:
		return "Variable"
	default:
		return "Unknown"
	}
}

// AdditiveMode selects the default scale of a clip: identity for normal clips, zero
// for additive clips.
type AdditiveMode uint8

const (
	AdditiveNone AdditiveMode = iota
	AdditiveRelative
)

// MixedPackingAlignmentBits is the bit alignment of every full-size field (fixed
// formats and the raw bit rate) in the packed stream. Variable-rate fields at an
// N-bit rate pack bit-tight with no padding between them.
const MixedPackingAlignmentBits = 16
