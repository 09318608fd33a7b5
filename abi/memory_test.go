package abi

import "testing"

func TestIOVecsRoundTrip(t *testing.T) {
	mem := newTestMemory(t)

	const iovsPtr = 0
	const bufA, lenA = 100, 3
	const bufB, lenB = 200, 5

	mem.WriteUint32Le(iovsPtr, bufA)
	mem.WriteUint32Le(iovsPtr+4, lenA)
	mem.WriteUint32Le(iovsPtr+8, bufB)
	mem.WriteUint32Le(iovsPtr+12, lenB)
	mem.Write(bufA, []byte("abc"))
	mem.Write(bufB, []byte("defgh"))

	iovs, ok := IOVecs(mem, iovsPtr, 2)
	if !ok {
		t.Fatal("IOVecs returned false for valid input")
	}
	if len(iovs) != 2 || string(iovs[0]) != "abc" || string(iovs[1]) != "defgh" {
		t.Fatalf("unexpected iovecs: %v", iovs)
	}
}

func TestIOVecsOutOfBounds(t *testing.T) {
	mem := newTestMemory(t)
	if _, ok := IOVecs(mem, 0xFFFFFFF0, 4); ok {
		t.Fatal("expected IOVecs to report out-of-bounds access")
	}
}

func TestReadWriteStringRoundTrip(t *testing.T) {
	mem := newTestMemory(t)
	n, ok := WriteString(mem, "hello", 0)
	if !ok || n != 5 {
		t.Fatalf("WriteString: n=%d ok=%v", n, ok)
	}
	s, ok := ReadString(mem, 0, 5)
	if !ok || s != "hello" {
		t.Fatalf("ReadString: s=%q ok=%v", s, ok)
	}
}

func TestNullTerminatedStrings(t *testing.T) {
	mem := newTestMemory(t)
	values := []string{"foo", "barbaz"}

	size := SizeOfNullTerminatedStrings(values)
	if size != 4+7 {
		t.Fatalf("SizeOfNullTerminatedStrings = %d, want 11", size)
	}

	const offsetsPtr, bufPtr = 0, 64
	written, ok := WriteNullTerminatedStrings(mem, values, offsetsPtr, bufPtr)
	if !ok || written != size {
		t.Fatalf("WriteNullTerminatedStrings: written=%d ok=%v", written, ok)
	}

	off0, _ := mem.ReadUint32Le(offsetsPtr)
	off1, _ := mem.ReadUint32Le(offsetsPtr + 4)
	if off0 != bufPtr {
		t.Fatalf("offset 0 = %d, want %d", off0, bufPtr)
	}
	s0, _ := ReadString(mem, off0, 3)
	if s0 != "foo" {
		t.Fatalf("value 0 = %q", s0)
	}
	nul, _ := mem.ReadByte(off0 + 3)
	if nul != 0 {
		t.Fatalf("expected NUL terminator after value 0, got %d", nul)
	}
	s1, _ := ReadString(mem, off1, 6)
	if s1 != "barbaz" {
		t.Fatalf("value 1 = %q", s1)
	}
}
