package memfs

import (
	"io"
	"io/fs"
	"path"
	"time"

	"github.com/swiftwasm/uwasi/abi"
)

// WalkFS exposes fsys's sandboxed tree as a stdlib fs.FS, so host code
// (tests, a CLI's debug dump) can walk it with fs.WalkDir without going
// through the WASI call surface. It reads the node tree directly instead
// of going through the open-file table: there is no fd_readdir
// implementation to build on (spec.md §3 notes it's out of scope), and a
// debug walker has no reason to consume a guest-visible descriptor
// anyway.
func WalkFS(fsys *FS) fs.FS {
	return &walkFS{fsys}
}

type walkFS struct{ fsys *FS }

func (w *walkFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	n, ok := w.fsys.root.resolve(normalize(name))
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return &walkFile{name: path.Base(name), node: n}, nil
}

type walkFile struct {
	name string
	node *node
	pos  int
	read int // byte read position, for regular files
}

func (f *walkFile) Stat() (fs.FileInfo, error) {
	return &walkFileInfo{name: f.name, node: f.node}, nil
}

func (f *walkFile) Read(b []byte) (int, error) {
	if f.node.kind == kindDirectory {
		return 0, &fs.PathError{Op: "read", Path: f.name, Err: fs.ErrInvalid}
	}
	if f.read >= len(f.node.content) {
		return 0, io.EOF
	}
	n := copy(b, f.node.content[f.read:])
	f.read += n
	return n, nil
}

func (f *walkFile) Close() error { return nil }

func (f *walkFile) ReadDir(n int) ([]fs.DirEntry, error) {
	if f.node.kind != kindDirectory {
		return nil, &fs.PathError{Op: "readdir", Path: f.name, Err: fs.ErrInvalid}
	}
	var out []fs.DirEntry
	for ; f.pos < len(f.node.order); f.pos++ {
		name := f.node.order[f.pos]
		out = append(out, &walkDirEntry{name: name, node: f.node.children[name]})
		if n > 0 && len(out) == n {
			return out, nil
		}
	}
	if n > 0 && len(out) == 0 {
		return nil, io.EOF
	}
	return out, nil
}

type walkFileInfo struct {
	name string
	node *node
}

func (i *walkFileInfo) Name() string      { return i.name }
func (i *walkFileInfo) Size() int64       { return int64(len(i.node.content)) }
func (i *walkFileInfo) Mode() fs.FileMode { return fileMode(i.node) }

// ModTime always reports the Unix epoch: file timestamps beyond what's
// explicitly specified are a Non-goal, so this module never tracks one.
func (i *walkFileInfo) ModTime() time.Time { return time.Unix(0, 0) }
func (i *walkFileInfo) IsDir() bool        { return i.node.kind == kindDirectory }
func (i *walkFileInfo) Sys() any           { return i.node }

type walkDirEntry struct {
	name string
	node *node
}

func (e *walkDirEntry) Name() string               { return e.name }
func (e *walkDirEntry) IsDir() bool                { return e.node.kind == kindDirectory }
func (e *walkDirEntry) Type() fs.FileMode          { return fileMode(e.node) }
func (e *walkDirEntry) Info() (fs.FileInfo, error) { return &walkFileInfo{name: e.name, node: e.node}, nil }

func fileMode(n *node) fs.FileMode {
	switch n.fileType() {
	case abi.FileTypeDirectory:
		return fs.ModeDir
	case abi.FileTypeCharacterDevice:
		return fs.ModeDevice | fs.ModeCharDevice
	default:
		return 0
	}
}
