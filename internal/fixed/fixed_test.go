package fixed

import "testing"

func TestMix8Endpoints(t *testing.T) {
	cases := []struct{ a, b uint8 }{
		{0, 255},
		{255, 0},
		{60, 42},
		{108, 124},
		{132, 134},
	}
	for _, tc := range cases {
		if got := Mix8(tc.a, tc.b, 0); got != tc.a {
			t.Errorf("Mix8(%d,%d,0) = %d, want %d", tc.a, tc.b, got, tc.a)
		}
	}
	// Midpoint blend stays between the endpoints.
	if got := Mix8(0, 200, 128); got < 90 || got > 110 {
		t.Errorf("Mix8(0,200,128) = %d, want near 100", got)
	}
}

func TestMix8NeverOvershoots(t *testing.T) {
	for w := 0; w < 256; w++ {
		got := Mix8(20, 220, uint8(w))
		if got < 20 || got > 220 {
			t.Fatalf("Mix8(20,220,%d) = %d out of range", w, got)
		}
		got = Mix8(220, 20, uint8(w))
		if got < 20 || got > 220 {
			t.Fatalf("Mix8(220,20,%d) = %d out of range", w, got)
		}
	}
}

func TestAddWrap16(t *testing.T) {
	if _, wrapped := AddWrap16(0x1000, 0x2000); wrapped {
		t.Fatal("0x1000+0x2000 should not wrap")
	}
	sum, wrapped := AddWrap16(0xffff, 1)
	if !wrapped || sum != 0 {
		t.Fatalf("0xffff+1: sum=%#x wrapped=%v, want 0 true", sum, wrapped)
	}
	// Landing exactly on zero is a wrap, per the sum < inc rule.
	if _, wrapped := AddWrap16(0x8000, 0x8000); !wrapped {
		t.Fatal("0x8000+0x8000 should wrap")
	}
	// A zero increment never wraps and never advances.
	sum, wrapped = AddWrap16(0xffff, 0)
	if wrapped || sum != 0xffff {
		t.Fatalf("0xffff+0: sum=%#x wrapped=%v, want 0xffff false", sum, wrapped)
	}
}

func TestMulShiftBounds(t *testing.T) {
	if got := MulU8U8Shift8(255, 255); got != 254 {
		t.Errorf("MulU8U8Shift8(255,255) = %d, want 254", got)
	}
	if got := MulU8U8Shift8(255, 0); got != 0 {
		t.Errorf("MulU8U8Shift8(255,0) = %d, want 0", got)
	}
	if got := MulS8U8Shift8(-128, 255); got != -128 {
		t.Errorf("MulS8U8Shift8(-128,255) = %d, want -128", got)
	}
	if got := MulS8U8Shift8(127, 255); got != 126 {
		t.Errorf("MulS8U8Shift8(127,255) = %d, want 126", got)
	}
}

func TestInterpS8Midpoint(t *testing.T) {
	// Adjacent entries must differ by a value fitting an int8; the sine
	// table guarantees that, so the test table does too.
	var table [257]int8
	table[0] = -50
	table[1] = 50
	if got := InterpS8(&table, 0x0000); got != -50 {
		t.Errorf("InterpS8 at 0 = %d, want -50", got)
	}
	got := InterpS8(&table, 0x0080)
	if got < -2 || got > 2 {
		t.Errorf("InterpS8 at half = %d, want near 0", got)
	}
}

func TestInterpU16Monotone(t *testing.T) {
	var table [257]uint16
	for i := range table {
		table[i] = uint16(i * 200)
	}
	prev := InterpU16(&table, 0)
	for idx := 1; idx < 65536; idx += 37 {
		cur := InterpU16(&table, uint16(idx))
		if cur < prev {
			t.Fatalf("InterpU16 not monotone at %d: %d < %d", idx, cur, prev)
		}
		prev = cur
	}
}
