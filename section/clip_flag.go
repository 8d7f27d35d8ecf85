package section

import (
	"github.com/arloliu/animpack/endian"
	"github.com/arloliu/animpack/errs"
	"github.com/arloliu/animpack/format"
)

// ClipFlag is the packed flag word at the start of the clip header.
type ClipFlag struct {
	// Options is a packed field:
	// Bit 0 is the endianness flag, 0 little-endian, 1 big-endian.
	// Bit 1 is the scale presence flag, 1 when the clip stores scale tracks.
	// Bit 2 is the additive flag, 1 when the clip's default scale is zero.
	// Bit 3 is reserved and must be 0.
	// Bits 4-15 are the magic number identifying the blob format:
	//   - 0xAC10: compressed clip format v1
	Options uint16

	// RotationFormat is the serialized rotation format tag.
	RotationFormat uint8

	// CompressionType is the payload compression tag.
	CompressionType uint8
}

var validCompressions = map[uint8]struct{}{
	uint8(format.CompressionNone): {},
	uint8(format.CompressionZstd): {},
	uint8(format.CompressionS2):   {},
	uint8(format.CompressionLZ4):  {},
}

// NewClipFlag creates a flag word with the v1 magic, little-endian byte order, and no
// compression.
func NewClipFlag() ClipFlag {
	return ClipFlag{
		Options:         MagicClipV1Opt,
		RotationFormat:  uint8(format.RotationQuatDropWVariable),
		CompressionType: uint8(format.CompressionNone),
	}
}

// HasScale reports whether the clip stores scale tracks.
func (f ClipFlag) HasScale() bool { return f.Options&HasScaleMask != 0 }

// SetHasScale sets the scale presence bit.
func (f *ClipFlag) SetHasScale(hasScale bool) {
	if hasScale {
		f.Options |= HasScaleMask
	} else {
		f.Options &^= HasScaleMask
	}
}

// IsAdditive reports whether the clip is additive.
func (f ClipFlag) IsAdditive() bool { return f.Options&AdditiveMask != 0 }

// SetAdditive sets the additive bit.
func (f *ClipFlag) SetAdditive(additive bool) {
	if additive {
		f.Options |= AdditiveMask
	} else {
		f.Options &^= AdditiveMask
	}
}

// IsLittleEndian reports whether the blob payload is little-endian.
func (f ClipFlag) IsLittleEndian() bool { return f.Options&EndiannessMask == 0 }

// GetEndianEngine returns the engine matching the endianness bit.
func (f ClipFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}

// Validate checks the magic number, reserved bits, and enum tags.
func (f ClipFlag) Validate() error {
	if f.Options&MagicNumberMask != MagicClipV1Opt {
		return errs.ErrInvalidMagic
	}
	if f.Options&ReservedBitsMask != 0 {
		return errs.ErrUnsupportedVersion
	}
	if f.RotationFormat > uint8(format.RotationQuatDropWVariable) {
		return errs.ErrUnsupportedVersion
	}
	if _, ok := validCompressions[f.CompressionType]; !ok {
		return errs.ErrInvalidCompressionType
	}

	return nil
}
