package main

import (
	"bufio"
	"io"
	"os"

	"github.com/swiftwasm/uwasi/internal/descriptor"
)

// osReader adapts an io.Reader to abi.Readable: each Consume reads one chunk
// up to a fixed buffer size and returns it, or nil at EOF. It mirrors the
// "backed by a consume() callback" shape abi.CarryOverReader expects.
type osReader struct {
	r   io.Reader
	buf []byte
}

// newStdinReader picks a raw, unbuffered reader over stdin when it's a real
// terminal (so interactive input isn't held back waiting for a full
// buffer), and a bufio-wrapped reader otherwise, since piped/redirected
// input benefits from fewer syscalls per guest read.
func newStdinReader(f *os.File) *osReader {
	if descriptor.IsATTY(int(f.Fd())) {
		return &osReader{r: f, buf: make([]byte, 4096)}
	}
	return &osReader{r: bufio.NewReaderSize(f, 65536), buf: make([]byte, 4096)}
}

func (r *osReader) Consume() []byte {
	n, err := r.r.Read(r.buf)
	if n == 0 || (err != nil && err != io.EOF) {
		return nil
	}
	return append([]byte(nil), r.buf[:n]...)
}

func (r *osReader) Close() error { return nil }

// osWriter adapts an io.Writer to abi.Writable, writing each iovec in order.
type osWriter struct {
	w io.Writer
	f *os.File
}

// newOSWriter picks an unbuffered writer for a real terminal, so guest
// output appears immediately, and a bufio-wrapped, flush-on-close writer
// otherwise.
func newOSWriter(f *os.File) *osWriter {
	if descriptor.IsATTY(int(f.Fd())) {
		return &osWriter{w: f, f: f}
	}
	bw := bufio.NewWriterSize(f, 65536)
	return &osWriter{w: bw, f: f}
}

func (w *osWriter) WriteV(iovs [][]byte) (int, error) {
	total := 0
	for _, b := range iovs {
		n, err := w.w.Write(b)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (w *osWriter) Close() error {
	if bw, ok := w.w.(*bufio.Writer); ok {
		return bw.Flush()
	}
	return nil
}
