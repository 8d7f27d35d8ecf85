package format

import "fmt"

// BitRateNumBits maps a bit-rate index to the number of bits per component used to
// quantize one track within one segment.
//
// Bit rate 0 is reserved for tracks that are constant in a segment: the constant
// sample lives in the segment range data and the packed sample stream carries no data
// for the track. The highest bit rate stores raw float32 components with no quantization loss.
//
// BE CAREFUL WHEN CHANGING THESE VALUES. Bit-rate indices are serialized in the
// compressed data; reassigning an index invalidates every compressed clip.
var BitRateNumBits = [19]uint8{0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 32}

const (
	InvalidBitRate uint8 = 0xFF
	LowestBitRate  uint8 = 1
	HighestBitRate uint8 = uint8(len(BitRateNumBits) - 1)
	NumBitRates    uint8 = uint8(len(BitRateNumBits))
)

// NumBitsAtBitRate returns the bits per component for the given bit rate.
// An out-of-range bit rate is a programming error and panics.
func NumBitsAtBitRate(bitRate uint8) uint32 {
	if bitRate > HighestBitRate {
		panic(fmt.Sprintf("invalid bit rate: %d", bitRate))
	}

	return uint32(BitRateNumBits[bitRate])
}

// IsConstantBitRate reports whether the bit rate marks a track as constant within its
// segment. The constant sample is stored in the segment range data.
func IsConstantBitRate(bitRate uint8) bool { return bitRate == 0 }

// IsRawBitRate reports whether the bit rate stores full-precision floats.
func IsRawBitRate(bitRate uint8) bool { return bitRate == HighestBitRate }

// TrackEncodingKind discriminates the desired encoding of one track.
type TrackEncodingKind uint8

const (
	// EncodingConstantInSegment stores no per-sample data; the segment range data holds
	// one Vec48 sample, normalized against the clip range.
	EncodingConstantInSegment TrackEncodingKind = iota
	// EncodingRaw stores full-precision floats.
	EncodingRaw
	// EncodingFixed48 stores 16 bits per component.
	EncodingFixed48
	// EncodingFixed32 stores 11/11/10 bits.
	EncodingFixed32
	// EncodingFixedRate stores Rate bits per component.
	EncodingFixedRate
)

// TrackEncoding is the tagged encoding decision for one track of one segment. It
// replaces dispatch on format tags and bit rates with a single sum type.
type TrackEncoding struct {
	Kind TrackEncodingKind
	Rate uint8 // bit rate index, meaningful only for EncodingFixedRate
}

// EncodingFromBitRate maps a variable bit-rate index to its track encoding.
func EncodingFromBitRate(bitRate uint8) TrackEncoding {
	switch {
	case IsConstantBitRate(bitRate):
		return TrackEncoding{Kind: EncodingConstantInSegment}
	case IsRawBitRate(bitRate):
		return TrackEncoding{Kind: EncodingRaw}
	default:
		return TrackEncoding{Kind: EncodingFixedRate, Rate: bitRate}
	}
}
