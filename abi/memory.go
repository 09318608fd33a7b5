// Package abi implements bit-exact encoding and decoding of WASI preview1
// data structures into a guest's linear memory.
//
// Every helper in this file takes the api.Memory of the current call as an
// argument rather than storing one: the guest may grow its memory between
// two host calls, which invalidates any view captured earlier, so the
// accessor must be re-derived on every entry into the host. api.Memory
// already re-borrows the live memory on each method call, which is what
// makes it a safe building block here.
package abi

import "github.com/tetratelabs/wazero/api"

// IOVec is a slice of guest memory referenced by an iovec descriptor. It
// aliases the guest's linear memory; it is never copied.
type IOVec []byte

// IOVecs decodes a sequence of preview1 iovec structs (8 bytes each:
// buf u32, len u32, little-endian) starting at iovsPtr into views over the
// guest's linear memory. Returns false if any iovec falls outside of
// addressable memory.
func IOVecs(mem api.Memory, iovsPtr, iovsLen uint32) ([]IOVec, bool) {
	iovs := make([]IOVec, iovsLen)
	for i := uint32(0); i < iovsLen; i++ {
		base := iovsPtr + i*8
		buf, ok := mem.ReadUint32Le(base)
		if !ok {
			return nil, false
		}
		length, ok := mem.ReadUint32Le(base + 4)
		if !ok {
			return nil, false
		}
		view, ok := mem.Read(buf, length)
		if !ok {
			return nil, false
		}
		iovs[i] = view
	}
	return iovs, true
}

// WriteString writes the UTF-8 bytes of s at offset off, without a
// terminating NUL, and returns the number of bytes written.
func WriteString(mem api.Memory, s string, off uint32) (uint32, bool) {
	if !mem.Write(off, []byte(s)) {
		return 0, false
	}
	return uint32(len(s)), true
}

// ByteLength returns the UTF-8 byte length of s.
func ByteLength(s string) uint32 { return uint32(len(s)) }

// ReadString decodes len bytes at ptr as a UTF-8 string.
func ReadString(mem api.Memory, ptr, length uint32) (string, bool) {
	b, ok := mem.Read(ptr, length)
	if !ok {
		return "", false
	}
	return string(b), true
}

// WriteNullTerminatedStrings writes each of values back to back at bufPtr,
// each followed by a single NUL byte, and writes the address of the start of
// each value's bytes (within bufPtr) as a little-endian u32 at
// offsetsPtr+4*i. It returns the total number of bytes written to bufPtr
// (including NULs).
func WriteNullTerminatedStrings(mem api.Memory, values []string, offsetsPtr, bufPtr uint32) (uint32, bool) {
	pos := bufPtr
	for i, v := range values {
		if !mem.WriteUint32Le(offsetsPtr+uint32(i)*4, pos) {
			return 0, false
		}
		n, ok := WriteString(mem, v, pos)
		if !ok {
			return 0, false
		}
		pos += n
		if !mem.WriteByte(pos, 0) {
			return 0, false
		}
		pos++
	}
	return pos - bufPtr, true
}

// SizeOfNullTerminatedStrings returns the number of bytes
// WriteNullTerminatedStrings would write to its buffer argument.
func SizeOfNullTerminatedStrings(values []string) uint32 {
	var n uint32
	for _, v := range values {
		n += ByteLength(v) + 1
	}
	return n
}
