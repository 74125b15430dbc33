package league

import "testing"

func TestNewPlayerPairCommutative(t *testing.T) {
	for a := uint8(0); a < 8; a++ {
		for b := uint8(0); b < 8; b++ {
			p := NewPlayerPair(a, b)
			q := NewPlayerPair(b, a)
			if p != q {
				t.Fatalf("pair (%d,%d) != pair (%d,%d)", a, b, b, a)
			}
			if p.First > p.Second {
				t.Fatalf("pair (%d,%d) not canonical: %+v", a, b, p)
			}
		}
	}
}

func TestPlayerPairIsSwapped(t *testing.T) {
	p := NewPlayerPair(4, 1)
	if p.First != 1 || p.Second != 4 {
		t.Fatalf("unexpected canonical order: %+v", p)
	}
	if !p.IsSwapped(4) {
		t.Fatalf("expected swapped for original first 4")
	}
	if p.IsSwapped(1) {
		t.Fatalf("expected not swapped for original first 1")
	}
}

func TestPairKeyRoundTrip(t *testing.T) {
	p := NewPlayerPair(2, 7)
	got, err := ParsePairKey(p.Key())
	if err != nil {
		t.Fatalf("ParsePairKey: %v", err)
	}
	if got != p {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, p)
	}
	if _, err := ParsePairKey("garbage"); err == nil {
		t.Fatalf("expected error for malformed key")
	}
}
