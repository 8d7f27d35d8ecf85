package quant

import (
	"encoding/binary"
	"math"

	"github.com/arloliu/animpack/vec"
)

// Storage sizes in bytes of the fixed sample formats.
const (
	SizeVector4128 = 16
	SizeVector396  = 12
	SizeVector348  = 6
	SizeVector332  = 4
)

// PackVector4128 stores four float32 components verbatim, little-endian.
func PackVector4128(v vec.Vector4, buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.Z))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.W))
}

// UnpackVector4128 is the inverse of PackVector4128.
func UnpackVector4128(buf []byte) vec.Vector4 {
	return vec.Vector4{
		X: math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])),
		Y: math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8])),
		Z: math.Float32frombits(binary.LittleEndian.Uint32(buf[8:12])),
		W: math.Float32frombits(binary.LittleEndian.Uint32(buf[12:16])),
	}
}

// PackVector396 stores three float32 components verbatim, little-endian.
func PackVector396(v vec.Vector4, buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.Z))
}

// UnpackVector396 is the inverse of PackVector396. W is zero.
func UnpackVector396(buf []byte) vec.Vector4 {
	return vec.Vector4{
		X: math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])),
		Y: math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8])),
		Z: math.Float32frombits(binary.LittleEndian.Uint32(buf[8:12])),
	}
}

// PackVector3U48 quantizes three normalized [0, 1] components to 16 bits each.
func PackVector3U48(v vec.Vector4, buf []byte) {
	binary.LittleEndian.PutUint16(buf[0:2], uint16(quantizeUnsigned(v.X, 16)))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(quantizeUnsigned(v.Y, 16)))
	binary.LittleEndian.PutUint16(buf[4:6], uint16(quantizeUnsigned(v.Z, 16)))
}

// UnpackVector3U48 is the inverse of PackVector3U48.
func UnpackVector3U48(buf []byte) vec.Vector4 {
	return vec.Vector4{
		X: dequantizeUnsigned(uint32(binary.LittleEndian.Uint16(buf[0:2])), 16),
		Y: dequantizeUnsigned(uint32(binary.LittleEndian.Uint16(buf[2:4])), 16),
		Z: dequantizeUnsigned(uint32(binary.LittleEndian.Uint16(buf[4:6])), 16),
	}
}

// PackVector3S48 quantizes three signed [-1, 1] components to 16 bits each.
func PackVector3S48(v vec.Vector4, buf []byte) {
	binary.LittleEndian.PutUint16(buf[0:2], uint16(quantizeSigned(v.X, 16)))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(quantizeSigned(v.Y, 16)))
	binary.LittleEndian.PutUint16(buf[4:6], uint16(quantizeSigned(v.Z, 16)))
}

// UnpackVector3S48 is the inverse of PackVector3S48.
func UnpackVector3S48(buf []byte) vec.Vector4 {
	return vec.Vector4{
		X: dequantizeSigned(uint32(binary.LittleEndian.Uint16(buf[0:2])), 16),
		Y: dequantizeSigned(uint32(binary.LittleEndian.Uint16(buf[2:4])), 16),
		Z: dequantizeSigned(uint32(binary.LittleEndian.Uint16(buf[4:6])), 16),
	}
}

// PackVector332 quantizes three components with 11/11/10 bits into one 32-bit
// little-endian word: x occupies the high 11 bits, y the next 11, z the low 10.
func PackVector332(v vec.Vector4, isUnsigned bool, buf []byte) {
	var x, y, z uint32
	if isUnsigned {
		x = quantizeUnsigned(v.X, 11)
		y = quantizeUnsigned(v.Y, 11)
		z = quantizeUnsigned(v.Z, 10)
	} else {
		x = quantizeSigned(v.X, 11)
		y = quantizeSigned(v.Y, 11)
		z = quantizeSigned(v.Z, 10)
	}

	binary.LittleEndian.PutUint32(buf[0:4], x<<21|y<<10|z)
}

// UnpackVector332 is the inverse of PackVector332.
func UnpackVector332(isUnsigned bool, buf []byte) vec.Vector4 {
	word := binary.LittleEndian.Uint32(buf[0:4])
	x := word >> 21
	y := word >> 10 & 0x7FF
	z := word & 0x3FF

	if isUnsigned {
		return vec.Vector4{
			X: dequantizeUnsigned(x, 11),
			Y: dequantizeUnsigned(y, 11),
			Z: dequantizeUnsigned(z, 10),
		}
	}

	return vec.Vector4{
		X: dequantizeSigned(x, 11),
		Y: dequantizeSigned(y, 11),
		Z: dequantizeSigned(z, 10),
	}
}

// PackVector3UVar quantizes three normalized components with numBits each and
// concatenates them LSB-first starting at bitOffset.
func PackVector3UVar(v vec.Vector4, numBits uint32, buf []byte, bitOffset uint32) {
	WriteBits(buf, bitOffset, numBits, quantizeUnsigned(v.X, numBits))
	WriteBits(buf, bitOffset+numBits, numBits, quantizeUnsigned(v.Y, numBits))
	WriteBits(buf, bitOffset+numBits*2, numBits, quantizeUnsigned(v.Z, numBits))
}

// UnpackVector3UVar is the inverse of PackVector3UVar.
func UnpackVector3UVar(numBits uint32, buf []byte, bitOffset uint32) vec.Vector4 {
	return vec.Vector4{
		X: dequantizeUnsigned(ReadBits(buf, bitOffset, numBits), numBits),
		Y: dequantizeUnsigned(ReadBits(buf, bitOffset+numBits, numBits), numBits),
		Z: dequantizeUnsigned(ReadBits(buf, bitOffset+numBits*2, numBits), numBits),
	}
}

// PackVector3SVar is the signed variant of PackVector3UVar.
func PackVector3SVar(v vec.Vector4, numBits uint32, buf []byte, bitOffset uint32) {
	WriteBits(buf, bitOffset, numBits, quantizeSigned(v.X, numBits))
	WriteBits(buf, bitOffset+numBits, numBits, quantizeSigned(v.Y, numBits))
	WriteBits(buf, bitOffset+numBits*2, numBits, quantizeSigned(v.Z, numBits))
}

// UnpackVector3SVar is the inverse of PackVector3SVar.
func UnpackVector3SVar(numBits uint32, buf []byte, bitOffset uint32) vec.Vector4 {
	return vec.Vector4{
		X: dequantizeSigned(ReadBits(buf, bitOffset, numBits), numBits),
		Y: dequantizeSigned(ReadBits(buf, bitOffset+numBits, numBits), numBits),
		Z: dequantizeSigned(ReadBits(buf, bitOffset+numBits*2, numBits), numBits),
	}
}
