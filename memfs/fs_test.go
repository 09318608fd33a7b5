package memfs

import (
	"testing"

	"github.com/swiftwasm/uwasi/abi"
)

type discardReadable struct{}

func (discardReadable) Consume() []byte { return nil }
func (discardReadable) Close() error    { return nil }

type discardWritable struct{ written [][]byte }

func (d *discardWritable) WriteV(iovs [][]byte) (int, error) {
	n := 0
	for _, b := range iovs {
		d.written = append(d.written, append([]byte(nil), b...))
		n += len(b)
	}
	return n, nil
}
func (d *discardWritable) Close() error { return nil }

func newTestFS(preopens ...string) *FS {
	return New(discardReadable{}, &discardWritable{}, &discardWritable{}, preopens)
}

func TestNewDefaultPreopen(t *testing.T) {
	fsys := newTestFS()
	preopens := fsys.Preopens()
	if len(preopens) != 1 || preopens[0] != 3 {
		t.Fatalf("Preopens() = %v, want [3]", preopens)
	}
	path, errno := fsys.FDPrestatDirName(3, 1)
	if errno != abi.ESUCCESS || path != "/" {
		t.Fatalf("FDPrestatDirName(3) = %q, %v", path, errno)
	}
}

func TestNewMultiplePreopensNumberedInOrder(t *testing.T) {
	fsys := newTestFS("/a", "/b", "/c")
	preopens := fsys.Preopens()
	want := []abi.FD{3, 4, 5}
	if len(preopens) != len(want) {
		t.Fatalf("Preopens() = %v, want %v", preopens, want)
	}
	for i, fd := range preopens {
		if fd != want[i] {
			t.Fatalf("Preopens()[%d] = %d, want %d", i, fd, want[i])
		}
	}
}

func TestFDAllocationNeverReused(t *testing.T) {
	fsys := newTestFS()
	fd1, errno := fsys.PathOpen(3, "file1", abi.OFlagsCreat)
	if errno != abi.ESUCCESS {
		t.Fatalf("open file1: %v", errno)
	}
	if errno := fsys.FDClose(fd1); errno != abi.ESUCCESS {
		t.Fatalf("close: %v", errno)
	}
	fd2, errno := fsys.PathOpen(3, "file2", abi.OFlagsCreat)
	if errno != abi.ESUCCESS {
		t.Fatalf("open file2: %v", errno)
	}
	if fd2 <= fd1 {
		t.Fatalf("fd2 (%d) did not exceed fd1 (%d): descriptor was reused", fd2, fd1)
	}
}

func TestPutFileThenOpenAndRead(t *testing.T) {
	fsys := newTestFS()
	fsys.PutFile("/greeting.txt", []byte("hello world"))

	fd, errno := fsys.PathOpen(3, "greeting.txt", 0)
	if errno != abi.ESUCCESS {
		t.Fatalf("PathOpen: %v", errno)
	}
	buf := make([]byte, 32)
	n, errno := fsys.FDRead(fd, [][]byte{buf})
	if errno != abi.ESUCCESS {
		t.Fatalf("FDRead: %v", errno)
	}
	if string(buf[:n]) != "hello world" {
		t.Fatalf("FDRead = %q", buf[:n])
	}
}

func TestStdioFDsPreregistered(t *testing.T) {
	fsys := newTestFS()
	for fd := abi.FD(0); fd <= 2; fd++ {
		st, errno := fsys.FDFdstatGet(fd)
		if errno != abi.ESUCCESS {
			t.Fatalf("FDFdstatGet(%d): %v", fd, errno)
		}
		if st.FileType != abi.FileTypeCharacterDevice {
			t.Fatalf("fd %d filetype = %v, want character device", fd, st.FileType)
		}
	}
}

func TestDevNull(t *testing.T) {
	fsys := newTestFS()
	fd, errno := fsys.PathOpen(3, "dev/null", 0)
	if errno != abi.ESUCCESS {
		t.Fatalf("open /dev/null: %v", errno)
	}
	n, errno := fsys.FDWrite(fd, [][]byte{[]byte("discarded")})
	if errno != abi.ESUCCESS || n != len("discarded") {
		t.Fatalf("write to /dev/null: n=%d errno=%v", n, errno)
	}
	buf := make([]byte, 4)
	n, errno = fsys.FDRead(fd, [][]byte{buf})
	if errno != abi.ESUCCESS || n != 0 {
		t.Fatalf("read from /dev/null: n=%d errno=%v, want 0 bytes", n, errno)
	}
}
