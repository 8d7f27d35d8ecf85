// Package endian provides byte order utilities for the binary blob format.
//
// It combines the ByteOrder and AppendByteOrder interfaces of encoding/binary into a
// single EndianEngine so the section and blob packages can both read in place and
// append without temporary buffers. Every persisted animpack structure is
// little-endian; the engine exists so that choice lives in one place.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary. It is
// satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the standard for every
// animpack payload.
func GetLittleEndianEngine() EndianEngine { return binary.LittleEndian }

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine { return binary.BigEndian }

// CheckEndianness determines the host byte order from a fixed integer value.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool { return CheckEndianness() == binary.LittleEndian }
