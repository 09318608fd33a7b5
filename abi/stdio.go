package abi

import "sync"

// Writable and Readable are the two stdio proxy capability sets spec.md
// §4.6 describes. Both provider.UseStdio (plain stdio) and memfs's
// character-device nodes (stdio bound inside the sandboxed tree) bind
// against the same two interfaces, so a guest sees identical behaviour
// whichever provider ends up serving fd 0-2.
type Writable interface {
	WriteV(iovs [][]byte) (int, error)
	Close() error
}

// Readable is backed by a Consume callback that produces the next chunk of
// bytes (or none, at EOF) each time it's invoked. CarryOverReader adapts
// this into the iovec-partitioned readv shape fd_read needs.
type Readable interface {
	Consume() []byte
	Close() error
}

// CarryOverReader wraps a Readable whose Consume chunks don't line up with
// the guest's iovec partitions, buffering whatever didn't fit in the last
// call for the next one, per spec.md §4.6: "If consume() returns more bytes
// than fit, the overflow is retained in the carry-over buffer for the next
// readv."
type CarryOverReader struct {
	mu      sync.Mutex
	inner   Readable
	pending []byte
	eof     bool
}

func NewCarryOverReader(r Readable) *CarryOverReader {
	return &CarryOverReader{inner: r}
}

// ReadIntoIOVecs pulls bytes from the carry-over buffer first, then calls
// Consume repeatedly to fill the remaining iovec space. Reading stops at
// the first empty Consume result (EOF) or once every iovec is full.
func (cr *CarryOverReader) ReadIntoIOVecs(iovs []IOVec) int {
	total := 0
	for _, iov := range iovs {
		n := cr.read(iov)
		total += n
		if n < len(iov) {
			break
		}
	}
	return total
}

func (cr *CarryOverReader) read(dst []byte) int {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	n := 0
	for n < len(dst) {
		if len(cr.pending) == 0 {
			if cr.eof {
				break
			}
			chunk := cr.inner.Consume()
			if len(chunk) == 0 {
				cr.eof = true
				break
			}
			cr.pending = chunk
		}
		copied := copy(dst[n:], cr.pending)
		n += copied
		cr.pending = cr.pending[copied:]
	}
	return n
}

func (cr *CarryOverReader) Close() error { return cr.inner.Close() }
