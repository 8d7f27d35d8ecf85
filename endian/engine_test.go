package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEngines(t *testing.T) {
	require.Equal(t, EndianEngine(binary.LittleEndian), GetLittleEndianEngine())
	require.Equal(t, EndianEngine(binary.BigEndian), GetBigEndianEngine())
}

func TestCheckEndianness(t *testing.T) {
	result := CheckEndianness()
	require.Contains(t, []binary.ByteOrder{binary.LittleEndian, binary.BigEndian}, result)
	require.Equal(t, result == binary.LittleEndian, IsNativeLittleEndian())
}

func TestEngine_AppendRoundTrip(t *testing.T) {
	engine := GetLittleEndianEngine()

	buf := engine.AppendUint32(nil, 0xDEADBEEF)
	require.Equal(t, uint32(0xDEADBEEF), engine.Uint32(buf))

	buf = engine.AppendUint16(buf[:0], 0xAC10)
	require.Equal(t, uint16(0xAC10), engine.Uint16(buf))
}
