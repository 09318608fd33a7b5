package memfs

import "github.com/swiftwasm/uwasi/abi"

// resolveDir returns the node a directory fd's recorded absolute guest path
// designates, which must itself be a directory: spec.md §4.7 resolves every
// relative path against "the directory fd's recorded absolute guest path",
// not against a cached node pointer, so a rename of an ancestor is reflected
// immediately.
func (fsys *FS) resolveDir(dirFD abi.FD) (*node, string, abi.Errno) {
	f, errno := fsys.lookup(dirFD)
	if errno != abi.ESUCCESS {
		return nil, "", errno
	}
	n, ok := fsys.root.resolve(normalize(f.path))
	if !ok || n.kind != kindDirectory {
		return nil, "", abi.ENOTDIR
	}
	return n, f.path, abi.ESUCCESS
}

// PathOpen implements spec.md §4.7's path_open, including its dedup-on-
// identical-absolute-path behaviour (Open Question #1, kept as specified).
func (fsys *FS) PathOpen(dirFD abi.FD, path string, flags abi.OpenFlags) (abi.FD, abi.Errno) {
	dir, base, errno := fsys.resolveDir(dirFD)
	if errno != abi.ESUCCESS {
		return 0, errno
	}
	abs := joinGuestPath(base, path)

	if existing, ok := fsys.byAbs[abs]; ok {
		return existing, abi.ESUCCESS
	}

	segs := normalize(path)
	target, found := dir.resolve(segs)

	switch {
	case found && flags.Has(abi.OFlagsExcl):
		return 0, abi.EEXIST
	case found && target.kind == kindRegularFile && flags.Has(abi.OFlagsTrunc):
		target.content = target.content[:0]
	case !found && !flags.Has(abi.OFlagsCreat):
		return 0, abi.ENOENT
	case !found:
		parent, name, ok := dir.resolveParent(segs)
		if !ok {
			return 0, abi.ENOENT
		}
		target = newFileNode()
		parent.setChild(name, target)
	}

	fd := fsys.allocFD()
	fsys.files[fd] = &openFile{node: target, path: abs}
	fsys.byAbs[abs] = fd
	return fd, abi.ESUCCESS
}

// FDRead and FDWrite dispatch on the descriptor's node kind, per spec.md
// §4.7: stdio proxies delegate to their Readable/Writable, /dev/null reads
// return EOF and writes discard, directories report EISDIR, and regular
// files copy to/from content at the current position.
func (fsys *FS) FDRead(fd abi.FD, iovs [][]byte) (int, abi.Errno) {
	f, errno := fsys.lookup(fd)
	if errno != abi.ESUCCESS {
		return 0, errno
	}
	switch f.node.kind {
	case kindCharDevice:
		if f.node.device.devnull {
			return 0, abi.ESUCCESS
		}
		if f.node.device.reader == nil {
			return 0, abi.EBADF
		}
		iovecs := make([]abi.IOVec, len(iovs))
		for i, v := range iovs {
			iovecs[i] = v
		}
		return f.node.device.reader.ReadIntoIOVecs(iovecs), abi.ESUCCESS
	case kindDirectory:
		return 0, abi.EISDIR
	default:
		n := copyOut(iovs, f.node.content, f.position)
		f.position += uint64(n)
		return n, abi.ESUCCESS
	}
}

func (fsys *FS) FDWrite(fd abi.FD, iovs [][]byte) (int, abi.Errno) {
	f, errno := fsys.lookup(fd)
	if errno != abi.ESUCCESS {
		return 0, errno
	}
	switch f.node.kind {
	case kindCharDevice:
		if f.node.device.devnull {
			total := 0
			for _, iov := range iovs {
				total += len(iov)
			}
			return total, abi.ESUCCESS
		}
		if f.node.device.writer == nil {
			return 0, abi.EBADF
		}
		n, err := f.node.device.writer.WriteV(iovs)
		if err != nil {
			return 0, abi.EIO
		}
		return n, abi.ESUCCESS
	case kindDirectory:
		return 0, abi.EISDIR
	default:
		n := copyIn(&f.node.content, iovs, f.position)
		f.position += uint64(n)
		return n, abi.ESUCCESS
	}
}

// FDPread and FDPwrite behave like FDRead/FDWrite but at an explicit offset
// that does not disturb the descriptor's current position, and are only
// meaningful for regular files (stdio and directories report ESPIPE/EISDIR,
// matching preview1's non-seekable-stream convention).
func (fsys *FS) FDPread(fd abi.FD, iovs [][]byte, offset uint64) (int, abi.Errno) {
	f, errno := fsys.lookup(fd)
	if errno != abi.ESUCCESS {
		return 0, errno
	}
	switch f.node.kind {
	case kindRegularFile:
		return copyOut(iovs, f.node.content, offset), abi.ESUCCESS
	case kindDirectory:
		return 0, abi.EISDIR
	default:
		return 0, abi.ESPIPE
	}
}

func (fsys *FS) FDPwrite(fd abi.FD, iovs [][]byte, offset uint64) (int, abi.Errno) {
	f, errno := fsys.lookup(fd)
	if errno != abi.ESUCCESS {
		return 0, errno
	}
	switch f.node.kind {
	case kindRegularFile:
		return copyIn(&f.node.content, iovs, offset), abi.ESUCCESS
	case kindDirectory:
		return 0, abi.EISDIR
	default:
		return 0, abi.ESPIPE
	}
}

// copyOut copies from src[pos:] into iovs in order, returning the number of
// bytes copied. It stops at the end of src (EOF), matching spec.md's
// "available = content.len - position; return early on EOF".
func copyOut(iovs [][]byte, src []byte, pos uint64) int {
	if pos >= uint64(len(src)) {
		return 0
	}
	remaining := src[pos:]
	total := 0
	for _, iov := range iovs {
		n := copy(iov, remaining)
		total += n
		remaining = remaining[n:]
		if len(remaining) == 0 {
			break
		}
	}
	return total
}

// copyIn copies the concatenation of iovs into *dst starting at pos,
// growing *dst (and zero-filling any hole before pos) as needed.
func copyIn(dst *[]byte, iovs [][]byte, pos uint64) int {
	total := 0
	for _, iov := range iovs {
		total += len(iov)
	}
	need := pos + uint64(total)
	if uint64(len(*dst)) < need {
		grown := make([]byte, need)
		copy(grown, *dst)
		*dst = grown
	}
	off := pos
	for _, iov := range iovs {
		copy((*dst)[off:], iov)
		off += uint64(len(iov))
	}
	return total
}

// FDSeek implements spec.md §4.7's fd_seek: rejects stdio, clamps negative
// results to 0, and is undefined (EINVAL) for any other node kind.
func (fsys *FS) FDSeek(fd abi.FD, delta int64, whence abi.Whence) (uint64, abi.Errno) {
	if fd < 3 {
		return 0, abi.ESPIPE
	}
	f, errno := fsys.lookup(fd)
	if errno != abi.ESUCCESS {
		return 0, errno
	}
	if f.node.kind != kindRegularFile {
		return 0, abi.EINVAL
	}
	var base int64
	switch whence {
	case abi.WhenceSet:
		base = 0
	case abi.WhenceCur:
		base = int64(f.position)
	case abi.WhenceEnd:
		base = int64(len(f.node.content))
	default:
		return 0, abi.EINVAL
	}
	newPos := base + delta
	if newPos < 0 {
		newPos = 0
	}
	f.position = uint64(newPos)
	return f.position, abi.ESUCCESS
}

func (fsys *FS) FDTell(fd abi.FD) (uint64, abi.Errno) {
	f, errno := fsys.lookup(fd)
	if errno != abi.ESUCCESS {
		return 0, errno
	}
	return f.position, abi.ESUCCESS
}

// FDClose implements Open Question #2's resolution (kept): stdio descriptors
// are never removed from the table, only closed; every other descriptor is
// removed outright, including its byAbs dedup entry.
func (fsys *FS) FDClose(fd abi.FD) abi.Errno {
	f, errno := fsys.lookup(fd)
	if errno != abi.ESUCCESS {
		return errno
	}
	if fd < 3 {
		if f.node.device.writer != nil {
			f.node.device.writer.Close()
		}
		if f.node.device.reader != nil {
			f.node.device.reader.Close()
		}
		return abi.ESUCCESS
	}
	delete(fsys.files, fd)
	delete(fsys.byAbs, f.path)
	return abi.ESUCCESS
}

func (fsys *FS) FDFdstatGet(fd abi.FD) (abi.FDStat, abi.Errno) {
	f, errno := fsys.lookup(fd)
	if errno != abi.ESUCCESS {
		return abi.FDStat{}, errno
	}
	return abi.FDStat{FileType: f.node.fileType()}, abi.ESUCCESS
}

// FDFdstatSetFlags and FDFdstatSetRights are no-ops that succeed for any
// valid descriptor: rights enforcement and fdflags are out of scope.
func (fsys *FS) FDFdstatSetFlags(fd abi.FD) abi.Errno {
	_, errno := fsys.lookup(fd)
	return errno
}

func (fsys *FS) FDFdstatSetRights(fd abi.FD) abi.Errno {
	_, errno := fsys.lookup(fd)
	return errno
}

func (fsys *FS) FDFilestatGet(fd abi.FD) (abi.FileStat, abi.Errno) {
	f, errno := fsys.lookup(fd)
	if errno != abi.ESUCCESS {
		return abi.FileStat{}, errno
	}
	return abi.FileStat{FileType: f.node.fileType(), Size: abi.FileSize(len(f.node.content))}, abi.ESUCCESS
}

// FDFilestatSetSize truncates or zero-extends a regular file's content.
func (fsys *FS) FDFilestatSetSize(fd abi.FD, size uint64) abi.Errno {
	f, errno := fsys.lookup(fd)
	if errno != abi.ESUCCESS {
		return errno
	}
	if f.node.kind != kindRegularFile {
		return abi.EINVAL
	}
	switch {
	case uint64(len(f.node.content)) > size:
		f.node.content = f.node.content[:size]
	case uint64(len(f.node.content)) < size:
		grown := make([]byte, size)
		copy(grown, f.node.content)
		f.node.content = grown
	}
	return abi.ESUCCESS
}

// FDSync and FDDatasync are no-ops: there is nothing to flush in memory.
func (fsys *FS) FDSync(fd abi.FD) abi.Errno {
	_, errno := fsys.lookup(fd)
	return errno
}

func (fsys *FS) FDDatasync(fd abi.FD) abi.Errno { return fsys.FDSync(fd) }

// FDAdvise and FDAllocate are no-ops beyond validating the descriptor:
// there is no backing store to advise the kernel about or preallocate on.
func (fsys *FS) FDAdvise(fd abi.FD) abi.Errno {
	_, errno := fsys.lookup(fd)
	return errno
}

func (fsys *FS) FDAllocate(fd abi.FD, offset, length uint64) abi.Errno {
	f, errno := fsys.lookup(fd)
	if errno != abi.ESUCCESS {
		return errno
	}
	if f.node.kind != kindRegularFile {
		return abi.EINVAL
	}
	need := offset + length
	if uint64(len(f.node.content)) < need {
		grown := make([]byte, need)
		copy(grown, f.node.content)
		f.node.content = grown
	}
	return abi.ESUCCESS
}

// FDRenumber moves the entry at from onto to, closing whatever previously
// occupied to.
func (fsys *FS) FDRenumber(from, to abi.FD) abi.Errno {
	f, errno := fsys.lookup(from)
	if errno != abi.ESUCCESS {
		return errno
	}
	if from == to {
		return abi.ESUCCESS
	}
	if old, ok := fsys.files[to]; ok {
		delete(fsys.byAbs, old.path)
	}
	fsys.files[to] = f
	delete(fsys.files, from)
	if f.path != "" {
		fsys.byAbs[f.path] = to
	}
	return abi.ESUCCESS
}

func (fsys *FS) FDPrestatGet(fd abi.FD) (abi.PreStat, abi.Errno) {
	f, errno := fsys.lookup(fd)
	if errno != abi.ESUCCESS {
		return abi.PreStat{}, errno
	}
	if !f.preopen {
		return abi.PreStat{}, abi.EBADF
	}
	return abi.PreStat{PathLen: uint32(len(f.path))}, abi.ESUCCESS
}

func (fsys *FS) FDPrestatDirName(fd abi.FD, pathLen uint32) (string, abi.Errno) {
	f, errno := fsys.lookup(fd)
	if errno != abi.ESUCCESS {
		return "", errno
	}
	if !f.preopen {
		return "", abi.EBADF
	}
	if uint32(len(f.path)) != pathLen {
		return "", abi.EINVAL
	}
	return f.path, abi.ESUCCESS
}

func (fsys *FS) PathCreateDirectory(dirFD abi.FD, path string) abi.Errno {
	dir, _, errno := fsys.resolveDir(dirFD)
	if errno != abi.ESUCCESS {
		return errno
	}
	cur := dir
	for _, seg := range normalize(path) {
		next, ok := cur.ensureChildDir(seg)
		if !ok {
			return abi.ENOTDIR
		}
		cur = next
	}
	return abi.ESUCCESS
}

func (fsys *FS) PathUnlinkFile(dirFD abi.FD, path string) abi.Errno {
	dir, _, errno := fsys.resolveDir(dirFD)
	if errno != abi.ESUCCESS {
		return errno
	}
	segs := normalize(path)
	parent, name, ok := dir.resolveParent(segs)
	if !ok {
		return abi.ENOENT
	}
	if _, ok := parent.child(name); !ok {
		return abi.ENOENT
	}
	parent.removeChild(name)
	return abi.ESUCCESS
}

// PathRemoveDirectory removes the named entry without requiring it to be
// empty first: spec.md §4.7 explicitly puts strict POSIX non-empty-directory
// rejection out of scope for this core.
func (fsys *FS) PathRemoveDirectory(dirFD abi.FD, path string) abi.Errno {
	return fsys.PathUnlinkFile(dirFD, path)
}

func (fsys *FS) PathFilestatGet(dirFD abi.FD, path string) (abi.FileStat, abi.Errno) {
	dir, _, errno := fsys.resolveDir(dirFD)
	if errno != abi.ESUCCESS {
		return abi.FileStat{}, errno
	}
	n, ok := dir.resolve(normalize(path))
	if !ok {
		return abi.FileStat{}, abi.ENOENT
	}
	if n.kind == kindCharDevice {
		return abi.FileStat{}, abi.EINVAL
	}
	return abi.FileStat{FileType: n.fileType(), Size: abi.FileSize(len(n.content))}, abi.ESUCCESS
}

// PathRename implements a coarse move: it relocates the node and fixes up
// any open-file dedup entry under its old absolute path, but does not
// attempt the finer-grained cross-directory edge cases (overwriting a
// non-empty destination directory, etc.) spec.md's "fine-grained
// path_rename" non-goal excludes.
func (fsys *FS) PathRename(oldDirFD abi.FD, oldPath string, newDirFD abi.FD, newPath string) abi.Errno {
	oldDir, oldBase, errno := fsys.resolveDir(oldDirFD)
	if errno != abi.ESUCCESS {
		return errno
	}
	newDir, newBase, errno := fsys.resolveDir(newDirFD)
	if errno != abi.ESUCCESS {
		return errno
	}
	oldSegs := normalize(oldPath)
	parent, name, ok := oldDir.resolveParent(oldSegs)
	if !ok {
		return abi.ENOENT
	}
	moved, ok := parent.child(name)
	if !ok {
		return abi.ENOENT
	}
	newSegs := normalize(newPath)
	newParent, newName, ok := newDir.resolveParent(newSegs)
	if !ok {
		return abi.ENOENT
	}
	parent.removeChild(name)
	newParent.setChild(newName, moved)

	oldAbs := joinGuestPath(oldBase, oldPath)
	newAbs := joinGuestPath(newBase, newPath)
	if fd, ok := fsys.byAbs[oldAbs]; ok {
		delete(fsys.byAbs, oldAbs)
		fsys.byAbs[newAbs] = fd
		fsys.files[fd].path = newAbs
	}
	return abi.ESUCCESS
}
