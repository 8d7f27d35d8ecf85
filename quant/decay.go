package quant

import "github.com/arloliu/animpack/vec"

// Decay routines simulate the pack-then-unpack round trip of a sample without
// touching a byte buffer. They share the fixed-point intermediates with the pack and
// unpack routines, so a decayed value is bit-identical to what a decoder would
// reconstruct from the emitted stream.

// DecayVector3U48 decays three normalized components through 16-bit quantization.
func DecayVector3U48(v vec.Vector4) vec.Vector4 {
	return vec.Vector4{
		X: dequantizeUnsigned(quantizeUnsigned(v.X, 16), 16),
		Y: dequantizeUnsigned(quantizeUnsigned(v.Y, 16), 16),
		Z: dequantizeUnsigned(quantizeUnsigned(v.Z, 16), 16),
	}
}

// DecayVector3S48 decays three signed components through 16-bit quantization.
func DecayVector3S48(v vec.Vector4) vec.Vector4 {
	return vec.Vector4{
		X: dequantizeSigned(quantizeSigned(v.X, 16), 16),
		Y: dequantizeSigned(quantizeSigned(v.Y, 16), 16),
		Z: dequantizeSigned(quantizeSigned(v.Z, 16), 16),
	}
}

// DecayVector332 decays three components through 11/11/10 bit quantization.
func DecayVector332(v vec.Vector4, isUnsigned bool) vec.Vector4 {
	if isUnsigned {
		return vec.Vector4{
			X: dequantizeUnsigned(quantizeUnsigned(v.X, 11), 11),
			Y: dequantizeUnsigned(quantizeUnsigned(v.Y, 11), 11),
			Z: dequantizeUnsigned(quantizeUnsigned(v.Z, 10), 10),
		}
	}

	return vec.Vector4{
		X: dequantizeSigned(quantizeSigned(v.X, 11), 11),
		Y: dequantizeSigned(quantizeSigned(v.Y, 11), 11),
		Z: dequantizeSigned(quantizeSigned(v.Z, 10), 10),
	}
}

// DecayVector3UVar decays three normalized components through numBits quantization.
func DecayVector3UVar(v vec.Vector4, numBits uint32) vec.Vector4 {
	return vec.Vector4{
		X: dequantizeUnsigned(quantizeUnsigned(v.X, numBits), numBits),
		Y: dequantizeUnsigned(quantizeUnsigned(v.Y, numBits), numBits),
		Z: dequantizeUnsigned(quantizeUnsigned(v.Z, numBits), numBits),
	}
}

// DecayVector3SVar decays three signed components through numBits quantization.
func DecayVector3SVar(v vec.Vector4, numBits uint32) vec.Vector4 {
	return vec.Vector4{
		X: dequantizeSigned(quantizeSigned(v.X, numBits), numBits),
		Y: dequantizeSigned(quantizeSigned(v.Y, numBits), numBits),
		Z: dequantizeSigned(quantizeSigned(v.Z, numBits), numBits),
	}
}
