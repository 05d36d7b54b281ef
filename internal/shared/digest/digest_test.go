package digest

import "testing"

func TestSum_Deterministic(t *testing.T) {
	t.Parallel()

	a := Sum([]byte("image-bytes"))
	b := Sum([]byte("image-bytes"))
	if a != b {
		t.Errorf("expected identical digests, got %q and %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}

func TestStrings_PartBoundaries(t *testing.T) {
	t.Parallel()

	if Strings("ab", "c") == Strings("a", "bc") {
		t.Error("expected different digests for different part boundaries")
	}
	if Strings("x") == Strings("y") {
		t.Error("expected different digests for different inputs")
	}
}
