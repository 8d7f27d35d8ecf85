package section

const (
	// Bit masks of the flag word options field.
	EndiannessMask   = 0x0001 // Mask for endianness bit (bit 0).
	HasScaleMask     = 0x0002 // Mask for clip scale presence bit (bit 1).
	AdditiveMask     = 0x0004 // Mask for additive clip bit (bit 2).
	ReservedBitsMask = 0x0008 // Mask for reserved bit (bit 3), must be zero.
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15).

	// MagicClipV1Opt is the version 1 magic number of the compressed-clip format.
	MagicClipV1Opt = 0xAC10

	// HeaderSize is the serialized size in bytes of ClipHeader.
	HeaderSize = 36
)
