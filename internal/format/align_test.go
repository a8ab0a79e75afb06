package format

import "testing"

func TestAlignDW(t *testing.T) {
	cases := map[int]int{0: 0, 1: 16, 15: 16, 16: 16, 17: 32, 100: 112, 116: 128}
	for in, want := range cases {
		if got := AlignDW(in); got != want {
			t.Fatalf("AlignDW(%d) = %d, want %d", in, got, want)
		}
	}
	if !IsAlignedDW(160) || IsAlignedDW(152) {
		t.Fatalf("IsAlignedDW mismatch")
	}
}
