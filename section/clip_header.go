package section

import (
	"math"

	"github.com/arloliu/animpack/errs"
)

// ClipHeader is the fixed-size header at the start of a compressed-clip blob.
//
// Serialized layout (HeaderSize bytes):
//
//	0-1   flag options (always little-endian)
//	2     rotation format tag
//	3     compression type tag
//	4-5   transform count
//	6-7   segment count
//	8-11  samples per track
//	12-15 sample rate (IEEE 754 float32)
//	16    translation format tag
//	17    scale format tag
//	18-19 reserved, zero
//	20-23 payload size after compression
//	24-27 payload size before compression
//	28-35 xxHash64 checksum of the uncompressed payload
type ClipHeader struct {
	NumTransforms      uint16
	NumSegments        uint16
	NumSamplesPerTrack uint32
	SampleRate         float32
	TranslationFormat  uint8
	ScaleFormat        uint8
	PayloadSize        uint32
	RawPayloadSize     uint32
	PayloadChecksum    uint64

	// Flag is the packed flag word carrying the magic number, endianness, scale and
	// additive bits, rotation format, and compression tag.
	Flag ClipFlag
}

// NewClipHeader creates a header with default flags. Counts and format tags are set
// by the caller; sizes and the checksum are filled in when the writer finishes.
func NewClipHeader() *ClipHeader {
	return &ClipHeader{
		Flag: NewClipFlag(),
	}
}

// Parse parses and validates a serialized header.
//
// Returns errs.ErrInvalidHeaderSize if data is not exactly HeaderSize bytes, or a
// flag validation error.
func (h *ClipHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// The options field itself is always little-endian; it carries the endianness of
	// everything after it.
	h.Flag.Options = uint16(data[0]) | uint16(data[1])<<8
	h.Flag.RotationFormat = data[2]
	h.Flag.CompressionType = data[3]

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()

	h.NumTransforms = engine.Uint16(data[4:6])
	h.NumSegments = engine.Uint16(data[6:8])
	h.NumSamplesPerTrack = engine.Uint32(data[8:12])
	h.SampleRate = math.Float32frombits(engine.Uint32(data[12:16]))
	h.TranslationFormat = data[16]
	h.ScaleFormat = data[17]
	h.PayloadSize = engine.Uint32(data[20:24])
	h.RawPayloadSize = engine.Uint32(data[24:28])
	h.PayloadChecksum = engine.Uint64(data[28:36])

	return nil
}

// Bytes serializes the header.
func (h *ClipHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.RotationFormat
	b[3] = h.Flag.CompressionType

	engine.PutUint16(b[4:6], h.NumTransforms)
	engine.PutUint16(b[6:8], h.NumSegments)
	engine.PutUint32(b[8:12], h.NumSamplesPerTrack)
	engine.PutUint32(b[12:16], math.Float32bits(h.SampleRate))
	b[16] = h.TranslationFormat
	b[17] = h.ScaleFormat
	engine.PutUint32(b[20:24], h.PayloadSize)
	engine.PutUint32(b[24:28], h.RawPayloadSize)
	engine.PutUint64(b[28:36], h.PayloadChecksum)

	return b
}
