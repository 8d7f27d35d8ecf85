package quant

import (
	"github.com/arloliu/animpack/format"
	"github.com/arloliu/animpack/vec"
)

// UnpackRotation decodes one rotation sample stored in the given format. For the
// variable format, bitRate selects between the constant (Vec48), raw (Vec96), and
// N-bit paths. isNormalized selects unsigned vs signed fixed-point semantics.
//
// An unknown format tag is a programming error and panics.
func UnpackRotation(buf []byte, f format.RotationFormat, bitRate uint8, isNormalized bool, bitOffset uint32) vec.Vector4 {
	switch f {
	case format.RotationQuat128:
		return UnpackVector4128(buf)
	case format.RotationQuatDropW96:
		return UnpackVector396(buf)
	case format.RotationQuatDropW48:
		if isNormalized {
			return UnpackVector3U48(buf)
		}

		return UnpackVector3S48(buf)
	case format.RotationQuatDropW32:
		return UnpackVector332(isNormalized, buf)
	case format.RotationQuatDropWVariable:
		switch {
		case format.IsConstantBitRate(bitRate):
			return UnpackVector3U48(buf)
		case format.IsRawBitRate(bitRate):
			return UnpackVector396(buf)
		case isNormalized:
			return UnpackVector3UVar(format.NumBitsAtBitRate(bitRate), buf, bitOffset)
		default:
			return UnpackVector3SVar(format.NumBitsAtBitRate(bitRate), buf, bitOffset)
		}
	default:
		panic("invalid rotation format: " + f.String())
	}
}

// UnpackVector decodes one vector sample stored in the given format. Quantized vector
// formats always use unsigned fixed-point: vectors are only quantized after range
// normalization.
func UnpackVector(buf []byte, f format.VectorFormat, bitRate uint8, bitOffset uint32) vec.Vector4 {
	switch f {
	case format.Vector96:
		return UnpackVector396(buf)
	case format.Vector48:
		return UnpackVector3U48(buf)
	case format.Vector32:
		return UnpackVector332(true, buf)
	case format.VectorVariable:
		switch {
		case format.IsConstantBitRate(bitRate):
			return UnpackVector3U48(buf)
		case format.IsRawBitRate(bitRate):
			return UnpackVector396(buf)
		default:
			return UnpackVector3UVar(format.NumBitsAtBitRate(bitRate), buf, bitOffset)
		}
	default:
		panic("invalid vector format: " + f.String())
	}
}

// PackRotation encodes one rotation sample in the given format at bitOffset, and
// returns the number of bits written.
func PackRotation(v vec.Vector4, f format.RotationFormat, bitRate uint8, isNormalized bool, buf []byte, bitOffset uint32) uint32 {
	switch f {
	case format.RotationQuat128:
		PackVector4128(v, buf[bitOffset>>3:])
		return SizeVector4128 * 8
	case format.RotationQuatDropW96:
		PackVector396(v, buf[bitOffset>>3:])
		return SizeVector396 * 8
	case format.RotationQuatDropW48:
		if isNormalized {
			PackVector3U48(v, buf[bitOffset>>3:])
		} else {
			PackVector3S48(v, buf[bitOffset>>3:])
		}

		return SizeVector348 * 8
	case format.RotationQuatDropW32:
		PackVector332(v, isNormalized, buf[bitOffset>>3:])
		return SizeVector332 * 8
	case format.RotationQuatDropWVariable:
		switch {
		case format.IsConstantBitRate(bitRate):
			PackVector3U48(v, buf[bitOffset>>3:])
			return SizeVector348 * 8
		case format.IsRawBitRate(bitRate):
			PackVector396(v, buf[bitOffset>>3:])
			return SizeVector396 * 8
		default:
			numBits := format.NumBitsAtBitRate(bitRate)
			if isNormalized {
				PackVector3UVar(v, numBits, buf, bitOffset)
			} else {
				PackVector3SVar(v, numBits, buf, bitOffset)
			}

			return numBits * 3
		}
	default:
		panic("invalid rotation format: " + f.String())
	}
}

// PackVector encodes one vector sample in the given format at bitOffset, and returns
// the number of bits written.
func PackVector(v vec.Vector4, f format.VectorFormat, bitRate uint8, buf []byte, bitOffset uint32) uint32 {
	switch f {
	case format.Vector96:
		PackVector396(v, buf[bitOffset>>3:])
		return SizeVector396 * 8
	case format.Vector48:
		PackVector3U48(v, buf[bitOffset>>3:])
		return SizeVector348 * 8
	case format.Vector32:
		PackVector332(v, true, buf[bitOffset>>3:])
		return SizeVector332 * 8
	case format.VectorVariable:
		switch {
		case format.IsConstantBitRate(bitRate):
			PackVector3U48(v, buf[bitOffset>>3:])
			return SizeVector348 * 8
		case format.IsRawBitRate(bitRate):
			PackVector396(v, buf[bitOffset>>3:])
			return SizeVector396 * 8
		default:
			numBits := format.NumBitsAtBitRate(bitRate)
			PackVector3UVar(v, numBits, buf, bitOffset)

			return numBits * 3
		}
	default:
		panic("invalid vector format: " + f.String())
	}
}

// RotationSampleBits returns the packed size in bits of one rotation sample.
func RotationSampleBits(f format.RotationFormat, bitRate uint8) uint32 {
	switch f {
	case format.RotationQuat128:
		return SizeVector4128 * 8
	case format.RotationQuatDropW96:
		return SizeVector396 * 8
	case format.RotationQuatDropW48:
		return SizeVector348 * 8
	case format.RotationQuatDropW32:
		return SizeVector332 * 8
	case format.RotationQuatDropWVariable:
		switch {
		case format.IsConstantBitRate(bitRate):
			return 0
		case format.IsRawBitRate(bitRate):
			return SizeVector396 * 8
		default:
			return format.NumBitsAtBitRate(bitRate) * 3
		}
	default:
		panic("invalid rotation format: " + f.String())
	}
}

// VectorSampleBits returns the packed size in bits of one vector sample.
func VectorSampleBits(f format.VectorFormat, bitRate uint8) uint32 {
	switch f {
	case format.Vector96:
		return SizeVector396 * 8
	case format.Vector48:
		return SizeVector348 * 8
	case format.Vector32:
		return SizeVector332 * 8
	case format.VectorVariable:
		switch {
		case format.IsConstantBitRate(bitRate):
			return 0
		case format.IsRawBitRate(bitRate):
			return SizeVector396 * 8
		default:
			return format.NumBitsAtBitRate(bitRate) * 3
		}
	default:
		panic("invalid vector format: " + f.String())
	}
}
