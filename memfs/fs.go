// Package memfs implements the in-memory, sandboxed file system spec.md
// §4.7 describes: a tree of directory, regular-file, and character-device
// nodes, an open-file table keyed by a monotonically increasing descriptor
// number, preopen enumeration, and the fd_*/path_* WASI preview1 operations.
//
// The fd table follows the usual lookup-then-dispatch shape of a preview1
// host implementation, specialized to a single concrete backend (no type
// parameter is needed: this module implements exactly one file system, not
// a family of them) and allocates descriptors monotonically with no reuse,
// per spec.md §3's invariant.
package memfs

import (
	"golang.org/x/exp/slices"

	"github.com/swiftwasm/uwasi/abi"
)

// openFile is one entry in the descriptor table: a handle bound to a node,
// the node's current byte position (meaningful only for regular files), its
// original absolute guest path, and whether it is a preopen directory.
type openFile struct {
	node     *node
	path     string
	position uint64
	preopen  bool
}

// FS is the in-memory file system. The zero value is not usable; construct
// one with New.
type FS struct {
	root  *node
	files map[abi.FD]*openFile
	byAbs map[string]abi.FD // absolute guest path -> fd, for path_open dedup
	next  abi.FD
}

// New builds an FS with an empty root directory, "/dev" and "/dev/null"
// already present, and fd 0-2 bound to the given stdio proxies. preopens are
// registered in order, starting at fd 3, each preopen path ensured as a
// directory along the way (spec.md §4.7 "Preopen enumeration"). If preopens
// is empty, "/" itself becomes the sole preopen, matching spec.md's
// fallback rule.
func New(stdin abi.Readable, stdout, stderr abi.Writable, preopens []string) *FS {
	fsys := &FS{
		root:  newDirNode(),
		files: map[abi.FD]*openFile{},
		byAbs: map[string]abi.FD{},
		next:  3,
	}
	dev, _ := fsys.root.ensureChildDir("dev")
	dev.setChild("null", newDevNullNode())

	fsys.files[0] = &openFile{node: newStdioNode(stdin, nil), path: "/dev/stdin"}
	fsys.files[1] = &openFile{node: newStdioNode(nil, stdout), path: "/dev/stdout"}
	fsys.files[2] = &openFile{node: newStdioNode(nil, stderr), path: "/dev/stderr"}

	if len(preopens) == 0 {
		preopens = []string{"/"}
	}
	for _, p := range preopens {
		fsys.registerPreopen(p)
	}
	return fsys
}

func (fsys *FS) registerPreopen(guestPath string) abi.FD {
	abs := normalizePath(guestPath)
	dirNode := fsys.ensureDir(abs)
	fd := fsys.allocFD()
	fsys.files[fd] = &openFile{node: dirNode, path: abs, preopen: true}
	fsys.byAbs[abs] = fd
	return fd
}

func (fsys *FS) allocFD() abi.FD {
	fd := fsys.next
	fsys.next++
	return fd
}

// ensureDir creates every missing directory component of abs (already
// normalized) and returns the final node.
func (fsys *FS) ensureDir(abs string) *node {
	cur := fsys.root
	for _, seg := range normalize(abs) {
		cur, _ = cur.ensureChildDir(seg)
	}
	return cur
}

// PutFile installs content at abs (an absolute guest path), creating any
// missing parent directories, for host-side test and CLI fixture setup. It
// does not open the file.
func (fsys *FS) PutFile(abs string, content []byte) {
	segs := normalize(abs)
	if len(segs) == 0 {
		return
	}
	parent := fsys.ensureDir("/" + joinAll(segs[:len(segs)-1]))
	f := newFileNode()
	f.content = append([]byte(nil), content...)
	parent.setChild(segs[len(segs)-1], f)
}

func joinAll(segs []string) string {
	out := ""
	for i, s := range segs {
		if i > 0 {
			out += "/"
		}
		out += s
	}
	return out
}

// Preopens returns the registered preopen descriptors in ascending
// (registration) order, for fd_prestat_get/fd_prestat_dir_name enumeration
// and for provider wiring.
func (fsys *FS) Preopens() []abi.FD {
	var fds []abi.FD
	for fd, f := range fsys.files {
		if f.preopen {
			fds = append(fds, fd)
		}
	}
	slices.Sort(fds)
	return fds
}

func (fsys *FS) lookup(fd abi.FD) (*openFile, abi.Errno) {
	f, ok := fsys.files[fd]
	if !ok {
		return nil, abi.EBADF
	}
	return f, abi.ESUCCESS
}
