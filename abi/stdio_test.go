package abi

import "testing"

type fakeReadable struct {
	chunks [][]byte
	i      int
}

func (f *fakeReadable) Consume() []byte {
	if f.i >= len(f.chunks) {
		return nil
	}
	c := f.chunks[f.i]
	f.i++
	return c
}

func (f *fakeReadable) Close() error { return nil }

func TestCarryOverReaderExactFit(t *testing.T) {
	cr := NewCarryOverReader(&fakeReadable{chunks: [][]byte{[]byte("abcdef")}})
	iovs := []IOVec{make([]byte, 3), make([]byte, 3)}
	n := cr.ReadIntoIOVecs(iovs)
	if n != 6 || string(iovs[0]) != "abc" || string(iovs[1]) != "def" {
		t.Fatalf("n=%d iovs=%v", n, iovs)
	}
}

func TestCarryOverReaderSplitAcrossConsumeCalls(t *testing.T) {
	// Consume produces more bytes than the first iovec can hold; the
	// overflow must be retained for the next ReadIntoIOVecs call.
	cr := NewCarryOverReader(&fakeReadable{chunks: [][]byte{[]byte("abcdefgh")}})

	first := []IOVec{make([]byte, 3)}
	n := cr.ReadIntoIOVecs(first)
	if n != 3 || string(first[0]) != "abc" {
		t.Fatalf("first read: n=%d iov=%q", n, first[0])
	}

	second := []IOVec{make([]byte, 10)}
	n = cr.ReadIntoIOVecs(second)
	if n != 5 || string(second[0][:5]) != "defgh" {
		t.Fatalf("second read: n=%d iov=%q", n, second[0][:n])
	}
}

func TestCarryOverReaderEOF(t *testing.T) {
	cr := NewCarryOverReader(&fakeReadable{chunks: nil})
	iov := []IOVec{make([]byte, 4)}
	n := cr.ReadIntoIOVecs(iov)
	if n != 0 {
		t.Fatalf("n = %d, want 0 at EOF", n)
	}
}

func TestCarryOverReaderMultipleConsumeCallsFillOneIOVec(t *testing.T) {
	cr := NewCarryOverReader(&fakeReadable{chunks: [][]byte{[]byte("ab"), []byte("cd")}})
	iov := []IOVec{make([]byte, 4)}
	n := cr.ReadIntoIOVecs(iov)
	if n != 4 || string(iov[0]) != "abcd" {
		t.Fatalf("n=%d iov=%q", n, iov[0])
	}
}
