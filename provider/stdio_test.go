package provider

import (
	"context"
	"testing"

	"github.com/swiftwasm/uwasi"
	"github.com/swiftwasm/uwasi/abi"
)

type chunkReadable struct {
	chunks [][]byte
	i      int
}

func (c *chunkReadable) Consume() []byte {
	if c.i >= len(c.chunks) {
		return nil
	}
	v := c.chunks[c.i]
	c.i++
	return v
}
func (c *chunkReadable) Close() error { return nil }

type captureWritable struct{ data []byte }

func (c *captureWritable) WriteV(iovs [][]byte) (int, error) {
	n := 0
	for _, b := range iovs {
		c.data = append(c.data, b...)
		n += len(b)
	}
	return n, nil
}
func (c *captureWritable) Close() error { return nil }

func TestUseStdioReadWrite(t *testing.T) {
	mod := newTestModule(t)
	stdin := &chunkReadable{chunks: [][]byte{[]byte("ping")}}
	stdout := &captureWritable{}
	stderr := &captureWritable{}

	imports := UseStdio(stdin, stdout, stderr)(&uwasi.Config{})

	const iovsPtr, bufPtr, nreadPtr = 0, 64, 200
	mod.Memory().WriteUint32Le(iovsPtr, bufPtr)
	mod.Memory().WriteUint32Le(iovsPtr+4, 16)

	res := imports["fd_read"].Func(context.Background(), mod, []uint64{0, iovsPtr, 1, nreadPtr})
	if abi.Errno(res[0]) != abi.ESUCCESS {
		t.Fatalf("fd_read errno = %v", res[0])
	}
	n, _ := mod.Memory().ReadUint32Le(nreadPtr)
	got, _ := mod.Memory().Read(bufPtr, n)
	if string(got) != "ping" {
		t.Fatalf("fd_read produced %q, want %q", got, "ping")
	}

	mod.Memory().Write(bufPtr, []byte("pong"))
	mod.Memory().WriteUint32Le(iovsPtr+4, 4)
	res = imports["fd_write"].Func(context.Background(), mod, []uint64{1, iovsPtr, 1, nreadPtr})
	if abi.Errno(res[0]) != abi.ESUCCESS {
		t.Fatalf("fd_write errno = %v", res[0])
	}
	if string(stdout.data) != "pong" {
		t.Fatalf("stdout captured %q, want %q", stdout.data, "pong")
	}
}

func TestUseStdioWriteBadFD(t *testing.T) {
	mod := newTestModule(t)
	imports := UseStdio(&chunkReadable{}, &captureWritable{}, &captureWritable{})(&uwasi.Config{})
	res := imports["fd_write"].Func(context.Background(), mod, []uint64{9, 0, 0, 0})
	if abi.Errno(res[0]) != abi.EBADF {
		t.Fatalf("fd_write(9) errno = %v, want EBADF", res[0])
	}
}

func TestUseStdioReadOnlyFromFD0(t *testing.T) {
	mod := newTestModule(t)
	imports := UseStdio(&chunkReadable{}, &captureWritable{}, &captureWritable{})(&uwasi.Config{})
	res := imports["fd_read"].Func(context.Background(), mod, []uint64{1, 0, 0, 0})
	if abi.Errno(res[0]) != abi.EBADF {
		t.Fatalf("fd_read(1) errno = %v, want EBADF", res[0])
	}
}
