// Package quant implements the pack, unpack, and decay routines for the fixed-point
// sample formats: full-precision float vectors, 16/16/16 and 11/11/10 bit fixed
// formats, and N/N/N variable bit-rate packing.
//
// Pack and unpack are exact inverses over the fixed-point intermediates, and decay
// (pack-then-unpack without emitting bytes) is factored through the same intermediates
// so it is bit-identical to the end-to-end encode/decode pair. The bit-rate search
// relies on that identity: the error it scores against a decayed sample is exactly the
// error the decoder will reproduce.
//
// All byte emission is little-endian. Variable bit-rate packing concatenates three
// N-bit fields LSB-first starting at a caller-supplied bit offset.
package quant
