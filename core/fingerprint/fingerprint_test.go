package fingerprint

import "testing"

func TestSumDeterministic(t *testing.T) {
	a := Sum([]byte("same bytes"))
	b := Sum([]byte("same bytes"))
	if a != b {
		t.Errorf("identical input produced %s and %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("digest length = %d, want 64", len(a))
	}
}

func TestSumDistinct(t *testing.T) {
	if Sum([]byte("a")) == Sum([]byte("b")) {
		t.Error("different bytes produced the same digest")
	}
}

func TestSuffix(t *testing.T) {
	d := Sum([]byte("x"))
	if got := Suffix(d, 8); got != d[:8] {
		t.Errorf("Suffix = %q, want %q", got, d[:8])
	}
	if got := Suffix("abc", 8); got != "abc" {
		t.Errorf("Suffix over length = %q, want %q", got, "abc")
	}
}
