package quant

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/animpack/vec"
)

const roundTripTolerance = 1.0 / (1 << 20)

func TestPackVector4128_RoundTrip(t *testing.T) {
	v := vec.New(0.25, -1.5, 3.75, -0.125)

	var buf [SizeVector4128]byte
	PackVector4128(v, buf[:])

	require.Equal(t, v, UnpackVector4128(buf[:]))
}

func TestPackVector396_RoundTrip(t *testing.T) {
	v := vec.New3(1.5, 0, -2)

	var buf [SizeVector396]byte
	PackVector396(v, buf[:])

	require.Equal(t, v, UnpackVector396(buf[:]))
}

func TestPackVector3U48_RepresentableValues(t *testing.T) {
	// Every 16-bit fixed-point value must survive the round trip exactly.
	for _, q := range []uint32{0, 1, 127, 32768, 65534, 65535} {
		v := vec.Splat(dequantizeUnsigned(q, 16))
		v.W = 0

		var buf [SizeVector348]byte
		PackVector3U48(v, buf[:])

		require.Equal(t, v, UnpackVector3U48(buf[:]), "fixed-point value %d", q)
	}
}

func TestPackVector3U48_QuantizationError(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	lsb := 1.0 / 65535.0
	for range 1000 {
		v := vec.New3(rng.Float32(), rng.Float32(), rng.Float32())

		var buf [SizeVector348]byte
		PackVector3U48(v, buf[:])
		u := UnpackVector3U48(buf[:])

		d := u.Sub(v)
		require.LessOrEqual(t, float64(d.AbsMax3()), lsb/2+roundTripTolerance)
	}
}

func TestPackVector3S48_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	lsb := 2.0 / 65535.0
	for range 1000 {
		v := vec.New3(rng.Float32()*2-1, rng.Float32()*2-1, rng.Float32()*2-1)

		var buf [SizeVector348]byte
		PackVector3S48(v, buf[:])
		u := UnpackVector3S48(buf[:])

		d := u.Sub(v)
		require.LessOrEqual(t, float64(d.AbsMax3()), lsb/2+roundTripTolerance)
	}
}

func TestPackVector332_Layout(t *testing.T) {
	// x occupies the high 11 bits, y the next 11, z the low 10.
	v := vec.New3(1, 0, 0)

	var buf [SizeVector332]byte
	PackVector332(v, true, buf[:])

	word := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
	require.Equal(t, uint32(0x7FF)<<21, word)

	v = vec.New3(0, 0, 1)
	PackVector332(v, true, buf[:])
	word = uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
	require.Equal(t, uint32(0x3FF), word)
}

func TestPackVector332_BitPatternRoundTrip(t *testing.T) {
	// pack(unpack(b)) must reproduce every valid bit pattern b.
	rng := rand.New(rand.NewSource(3))

	for range 1000 {
		word := rng.Uint32()

		var buf [SizeVector332]byte
		buf[0] = byte(word)
		buf[1] = byte(word >> 8)
		buf[2] = byte(word >> 16)
		buf[3] = byte(word >> 24)

		v := UnpackVector332(true, buf[:])

		var buf2 [SizeVector332]byte
		PackVector332(v, true, buf2[:])

		require.Equal(t, buf, buf2, "bit pattern %#x", word)
	}
}

func TestPackVector3U48_BitPatternRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	for range 1000 {
		var buf [SizeVector348]byte
		rng.Read(buf[:])

		v := UnpackVector3U48(buf[:])

		var buf2 [SizeVector348]byte
		PackVector3U48(v, buf2[:])

		require.Equal(t, buf, buf2)
	}
}

func TestPackVector3UVar_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for _, numBits := range []uint32{3, 5, 8, 11, 16, 19} {
		for _, bitOffset := range []uint32{0, 1, 7, 13, 16} {
			buf := make([]byte, 16)
			v := vec.New3(rng.Float32(), rng.Float32(), rng.Float32())

			PackVector3UVar(v, numBits, buf, bitOffset)
			u := UnpackVector3UVar(numBits, buf, bitOffset)

			want := DecayVector3UVar(v, numBits)
			require.Equal(t, want, u, "numBits=%d bitOffset=%d", numBits, bitOffset)
		}
	}
}

func TestDecay_MatchesPackUnpack(t *testing.T) {
	// Decay must be bit-identical to the end-to-end pack/unpack pair.
	rng := rand.New(rand.NewSource(99))

	for range 500 {
		v := vec.New3(rng.Float32(), rng.Float32(), rng.Float32())

		var buf48 [SizeVector348]byte
		PackVector3U48(v, buf48[:])
		require.Equal(t, UnpackVector3U48(buf48[:]), DecayVector3U48(v))

		var buf32 [SizeVector332]byte
		PackVector332(v, true, buf32[:])
		require.Equal(t, UnpackVector332(true, buf32[:]), DecayVector332(v, true))

		for _, numBits := range []uint32{3, 8, 19} {
			buf := make([]byte, 8)
			PackVector3UVar(v, numBits, buf, 0)
			require.Equal(t, UnpackVector3UVar(numBits, buf, 0), DecayVector3UVar(v, numBits))
		}
	}
}

func TestDecayVector3UVar_ExactFixedPoint(t *testing.T) {
	// A stored normalized value of 0.5 at 8 bits decays to round(0.5*255)/255 exactly.
	v := vec.New3(0.5, 0.5, 0.5)
	d := DecayVector3UVar(v, 8)

	want := float32(math.Round(0.5*255) / 255)
	require.Equal(t, vec.New3(want, want, want), d)
}

func TestWriteReadBits(t *testing.T) {
	buf := make([]byte, 16)

	WriteBits(buf, 5, 11, 0x5A5)
	WriteBits(buf, 16, 3, 0x5)
	WriteBits(buf, 19, 19, 0x7FFFF)

	require.Equal(t, uint32(0x5A5), ReadBits(buf, 5, 11))
	require.Equal(t, uint32(0x5), ReadBits(buf, 16, 3))
	require.Equal(t, uint32(0x7FFFF), ReadBits(buf, 19, 19))

	// Neighboring bits stay untouched.
	require.Equal(t, uint32(0), ReadBits(buf, 0, 5))
}

func TestQuantizeUnsigned_Clamps(t *testing.T) {
	require.Equal(t, uint32(0), quantizeUnsigned(-0.5, 8))
	require.Equal(t, uint32(255), quantizeUnsigned(1.5, 8))
	require.Equal(t, uint32(255), quantizeUnsigned(1.0, 8))
	require.Equal(t, uint32(0), quantizeUnsigned(0.0, 8))
}
