package scancode

import "testing"

func TestBasicLetter(t *testing.T) {
	var d Decoder
	c, ok := d.Feed(0x1E) // 'a' make code
	if !ok || c != 'a' {
		t.Fatalf("got %q, %v", c, ok)
	}
}

func TestShiftUppercases(t *testing.T) {
	var d Decoder
	d.Feed(leftShift)
	c, ok := d.Feed(0x1E)
	if !ok || c != 'A' {
		t.Fatalf("shifted 'a' should be 'A', got %q", c)
	}
}

func TestShiftReleaseRestoresLowercase(t *testing.T) {
	var d Decoder
	d.Feed(leftShift)
	d.Feed(leftShift | releaseBit)
	c, _ := d.Feed(0x1E)
	if c != 'a' {
		t.Fatalf("expected lowercase after shift release, got %q", c)
	}
}

func TestCapsLockTogglesOnPressOnly(t *testing.T) {
	var d Decoder
	d.Feed(capsLock)
	c, _ := d.Feed(0x1E)
	if c != 'A' {
		t.Fatalf("caps lock should uppercase letters, got %q", c)
	}
	// release of caps lock must not toggle again
	d.Feed(capsLock | releaseBit)
	c2, _ := d.Feed(0x1E)
	if c2 != 'A' {
		t.Fatalf("caps lock release must not retoggle, got %q", c2)
	}
}

func TestNonShiftReleaseIgnoredByModifierState(t *testing.T) {
	var d Decoder
	d.Feed(0x1E | releaseBit) // release of 'a', not a modifier
	c, ok := d.Feed(0x1F)     // 's'
	if !ok || c != 's' {
		t.Fatalf("modifier state must be unaffected by non-shift release, got %q %v", c, ok)
	}
}

func TestUnmappedScancodeProducesNoChar(t *testing.T) {
	var d Decoder
	_, ok := d.Feed(0x01) // Escape, unmapped
	if ok {
		t.Fatal("expected no character for unmapped scancode")
	}
}
