package regio

import "testing"

func TestBytesReadWrite(t *testing.T) {
	b := make(Bytes, 8)

	b.Write8(3, 0x5a)
	if got := b.Read8(3); got != 0x5a {
		t.Fatalf("Read8(3)=%#02x, want 0x5a", got)
	}
	if got := b.Read8(0); got != 0 {
		t.Fatalf("Read8(0)=%#02x, want 0", got)
	}

	b.Write8(3, 0x00)
	if got := b.Read8(3); got != 0 {
		t.Fatalf("Read8(3)=%#02x after overwrite, want 0", got)
	}
}
