package morton

import (
	"math/rand"
	"testing"
)

// P1: round-trip for every component in [0, 2^21).
func TestPackUnpackRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		x := uint32(r.Intn(MaxComponent))
		y := uint32(r.Intn(MaxComponent))
		z := uint32(r.Intn(MaxComponent))

		code := Pack(x, y, z)
		gx, gy, gz := Unpack(code)
		if gx != x || gy != y || gz != z {
			t.Fatalf("round trip mismatch: in=(%d,%d,%d) out=(%d,%d,%d)", x, y, z, gx, gy, gz)
		}
	}
}

func TestPackUnpackCorners(t *testing.T) {
	cases := [][3]uint32{
		{0, 0, 0},
		{MaxComponent - 1, 0, 0},
		{0, MaxComponent - 1, 0},
		{0, 0, MaxComponent - 1},
		{MaxComponent - 1, MaxComponent - 1, MaxComponent - 1},
	}
	for _, c := range cases {
		code := Pack(c[0], c[1], c[2])
		x, y, z := Unpack(code)
		if x != c[0] || y != c[1] || z != c[2] {
			t.Errorf("Pack/Unpack(%v) = (%d,%d,%d)", c, x, y, z)
		}
	}
}

// P2: Pack is exactly the OR of the three independently interleaved axes.
func TestPackIsIndependentInterleave(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 500; i++ {
		x := uint32(r.Intn(MaxComponent))
		y := uint32(r.Intn(MaxComponent))
		z := uint32(r.Intn(MaxComponent))

		want := Interleave(x, 0) | Interleave(y, 1) | Interleave(z, 2)
		got := Pack(x, y, z)
		if got != want {
			t.Fatalf("Pack(%d,%d,%d) = %#x, want %#x", x, y, z, got, want)
		}
	}
}

func TestInterleaveBitPlacement(t *testing.T) {
	// bit k of v should land at bit 3k+c.
	for k := 0; k < 21; k++ {
		v := uint32(1) << uint(k)
		for c := uint(0); c < 3; c++ {
			got := Interleave(v, c)
			want := uint64(1) << (3*uint(k) + c)
			if got != want {
				t.Errorf("Interleave(1<<%d, %d) = %#x, want %#x", k, c, got, want)
			}
		}
	}
}

func TestInterleaveTruncatesHighBits(t *testing.T) {
	if Interleave(MaxComponent, 0) != 0 {
		t.Errorf("Interleave should ignore bits at or above MaxComponent")
	}
}
