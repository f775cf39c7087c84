package integrity

import (
	"crypto/sha256"
	"strings"
	"testing"
)

func TestDigest_Deterministic(t *testing.T) {
	c := Default()

	first := c.Digest("ACME", "k1", "tmpl-abc", "SN1", "42")
	second := c.Digest("ACME", "k1", "tmpl-abc", "SN1", "42")
	if first != second {
		t.Errorf("digest not deterministic: %q vs %q", first, second)
	}
}

func TestDigest_OrderSensitive(t *testing.T) {
	c := Default()

	if c.Digest("a", "b") == c.Digest("b", "a") {
		t.Error("expected digest to depend on argument order")
	}
}

func TestDigest_MatchesConcatenation(t *testing.T) {
	c := Default()

	// Splitting the material differently must not change the digest.
	if got, want := c.Digest("ACME", "k1"), c.Digest("ACMEk1"); got != want {
		t.Errorf("digest over split parts = %q, over joined = %q", got, want)
	}
}

func TestDigest_KnownValue(t *testing.T) {
	c := Default()

	// md5("ACMEk1tmpl-abcSN142")
	got := c.Digest("ACME", "k1", "tmpl-abc", "SN1", "42")
	if len(got) != 32 {
		t.Fatalf("expected 32 hex chars, got %d: %q", len(got), got)
	}
	if got != strings.ToLower(got) {
		t.Errorf("expected lowercase hex, got %q", got)
	}
}

func TestEqual_CaseInsensitive(t *testing.T) {
	c := Default()

	stamp := c.Digest("ACME", "k1", "tmpl-abc", "SN1", "42")
	if !c.Equal(strings.ToUpper(stamp), strings.ToLower(stamp)) {
		t.Error("expected upper and lower case stamps to compare equal")
	}
	if c.Equal(stamp, stamp+"0") {
		t.Error("expected different stamps to compare unequal")
	}
}

func TestNew_SwappablePrimitive(t *testing.T) {
	md5Codec := Default()
	shaCodec := New(sha256.New)

	if md5Codec.Digest("x") == shaCodec.Digest("x") {
		t.Error("expected different primitives to produce different digests")
	}
	if len(shaCodec.Digest("x")) != 64 {
		t.Errorf("expected 64 hex chars from sha256, got %d", len(shaCodec.Digest("x")))
	}
}
