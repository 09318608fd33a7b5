package memfs

import (
	"context"

	"github.com/swiftwasm/uwasi"
	"github.com/swiftwasm/uwasi/abi"
	"github.com/tetratelabs/wazero/api"
)

// UseMemoryFS returns a uwasi.Provider backed by fsys, implementing every
// fd_*/path_* operation spec.md §4.7 describes. Names it has no opinion
// about (fd_readdir, fd_filestat_set_times, path_filestat_set_times,
// path_link, path_readlink, path_symlink) are left unsupplied, so
// composition fills them with the standard ENOSYS stub: each corresponds to
// a feature this module's Non-goals place out of scope.
func UseMemoryFS(fsys *FS) uwasi.Provider {
	return func(_ *uwasi.Config) map[string]abi.HostFunc {
		return map[string]abi.HostFunc{
			"fd_read":               hostFunc("fd_read", fdRead(fsys)),
			"fd_write":              hostFunc("fd_write", fdWrite(fsys)),
			"fd_pread":              hostFunc("fd_pread", fdPread(fsys)),
			"fd_pwrite":             hostFunc("fd_pwrite", fdPwrite(fsys)),
			"fd_seek":               hostFunc("fd_seek", fdSeek(fsys)),
			"fd_tell":               hostFunc("fd_tell", fdTell(fsys)),
			"fd_close":              hostFunc("fd_close", fdClose(fsys)),
			"fd_sync":               hostFunc("fd_sync", fdSync(fsys)),
			"fd_datasync":           hostFunc("fd_datasync", fdDatasync(fsys)),
			"fd_advise":             hostFunc("fd_advise", fdAdvise(fsys)),
			"fd_allocate":           hostFunc("fd_allocate", fdAllocate(fsys)),
			"fd_renumber":           hostFunc("fd_renumber", fdRenumber(fsys)),
			"fd_fdstat_get":         hostFunc("fd_fdstat_get", fdFdstatGet(fsys)),
			"fd_fdstat_set_flags":   hostFunc("fd_fdstat_set_flags", fdFdstatSetFlags(fsys)),
			"fd_fdstat_set_rights":  hostFunc("fd_fdstat_set_rights", fdFdstatSetRights(fsys)),
			"fd_filestat_get":       hostFunc("fd_filestat_get", fdFilestatGet(fsys)),
			"fd_filestat_set_size":  hostFunc("fd_filestat_set_size", fdFilestatSetSize(fsys)),
			"fd_prestat_get":        hostFunc("fd_prestat_get", fdPrestatGet(fsys)),
			"fd_prestat_dir_name":   hostFunc("fd_prestat_dir_name", fdPrestatDirName(fsys)),
			"path_open":             hostFunc("path_open", pathOpen(fsys)),
			"path_create_directory": hostFunc("path_create_directory", pathCreateDirectory(fsys)),
			"path_unlink_file":      hostFunc("path_unlink_file", pathUnlinkFile(fsys)),
			"path_remove_directory": hostFunc("path_remove_directory", pathRemoveDirectory(fsys)),
			"path_filestat_get":     hostFunc("path_filestat_get", pathFilestatGet(fsys)),
			"path_rename":           hostFunc("path_rename", pathRename(fsys)),
		}
	}
}

type fn func(ctx context.Context, mod api.Module, params []uint64) []uint64

func hostFunc(name string, f fn) abi.HostFunc {
	sig := abi.Signatures[name]
	return abi.HostFunc{Name: name, ParamTypes: sig.Params, ResultTypes: sig.Results, Func: f}
}

func errnoResult(e abi.Errno) []uint64 { return []uint64{uint64(e)} }

func fdRead(fsys *FS) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		fd, iovsPtr, iovsLen, nreadPtr := abi.FD(p[0]), uint32(p[1]), uint32(p[2]), uint32(p[3])
		iovs, ok := abi.IOVecs(mod.Memory(), iovsPtr, iovsLen)
		if !ok {
			return errnoResult(abi.EFAULT)
		}
		n, errno := fsys.FDRead(fd, toByteSlices(iovs))
		if errno != abi.ESUCCESS {
			return errnoResult(errno)
		}
		if !mod.Memory().WriteUint32Le(nreadPtr, uint32(n)) {
			return errnoResult(abi.EFAULT)
		}
		return errnoResult(abi.ESUCCESS)
	}
}

func fdWrite(fsys *FS) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		fd, iovsPtr, iovsLen, nwrittenPtr := abi.FD(p[0]), uint32(p[1]), uint32(p[2]), uint32(p[3])
		iovs, ok := abi.IOVecs(mod.Memory(), iovsPtr, iovsLen)
		if !ok {
			return errnoResult(abi.EFAULT)
		}
		n, errno := fsys.FDWrite(fd, toByteSlices(iovs))
		if errno != abi.ESUCCESS {
			return errnoResult(errno)
		}
		if !mod.Memory().WriteUint32Le(nwrittenPtr, uint32(n)) {
			return errnoResult(abi.EFAULT)
		}
		return errnoResult(abi.ESUCCESS)
	}
}

func fdPread(fsys *FS) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		fd, iovsPtr, iovsLen, offset, nreadPtr := abi.FD(p[0]), uint32(p[1]), uint32(p[2]), p[3], uint32(p[4])
		iovs, ok := abi.IOVecs(mod.Memory(), iovsPtr, iovsLen)
		if !ok {
			return errnoResult(abi.EFAULT)
		}
		n, errno := fsys.FDPread(fd, toByteSlices(iovs), offset)
		if errno != abi.ESUCCESS {
			return errnoResult(errno)
		}
		if !mod.Memory().WriteUint32Le(nreadPtr, uint32(n)) {
			return errnoResult(abi.EFAULT)
		}
		return errnoResult(abi.ESUCCESS)
	}
}

func fdPwrite(fsys *FS) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		fd, iovsPtr, iovsLen, offset, nwrittenPtr := abi.FD(p[0]), uint32(p[1]), uint32(p[2]), p[3], uint32(p[4])
		iovs, ok := abi.IOVecs(mod.Memory(), iovsPtr, iovsLen)
		if !ok {
			return errnoResult(abi.EFAULT)
		}
		n, errno := fsys.FDPwrite(fd, toByteSlices(iovs), offset)
		if errno != abi.ESUCCESS {
			return errnoResult(errno)
		}
		if !mod.Memory().WriteUint32Le(nwrittenPtr, uint32(n)) {
			return errnoResult(abi.EFAULT)
		}
		return errnoResult(abi.ESUCCESS)
	}
}

// fdSeek writes the new offset as a full u64, the corrected layout per
// SPEC_FULL.md §9 resolution #3 (REDESIGN FLAG), unlike the 32-bit write the
// surveyed source used.
func fdSeek(fsys *FS) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		fd, delta, whence, newOffsetPtr := abi.FD(p[0]), int64(p[1]), abi.Whence(uint32(p[2])), uint32(p[3])
		pos, errno := fsys.FDSeek(fd, delta, whence)
		if errno != abi.ESUCCESS {
			return errnoResult(errno)
		}
		if !mod.Memory().WriteUint64Le(newOffsetPtr, pos) {
			return errnoResult(abi.EFAULT)
		}
		return errnoResult(abi.ESUCCESS)
	}
}

func fdTell(fsys *FS) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		fd, ptr := abi.FD(p[0]), uint32(p[1])
		pos, errno := fsys.FDTell(fd)
		if errno != abi.ESUCCESS {
			return errnoResult(errno)
		}
		if !mod.Memory().WriteUint64Le(ptr, pos) {
			return errnoResult(abi.EFAULT)
		}
		return errnoResult(abi.ESUCCESS)
	}
}

func fdClose(fsys *FS) fn {
	return func(_ context.Context, _ api.Module, p []uint64) []uint64 {
		return errnoResult(fsys.FDClose(abi.FD(p[0])))
	}
}

func fdSync(fsys *FS) fn {
	return func(_ context.Context, _ api.Module, p []uint64) []uint64 {
		return errnoResult(fsys.FDSync(abi.FD(p[0])))
	}
}

func fdDatasync(fsys *FS) fn {
	return func(_ context.Context, _ api.Module, p []uint64) []uint64 {
		return errnoResult(fsys.FDDatasync(abi.FD(p[0])))
	}
}

func fdAdvise(fsys *FS) fn {
	return func(_ context.Context, _ api.Module, p []uint64) []uint64 {
		return errnoResult(fsys.FDAdvise(abi.FD(p[0])))
	}
}

func fdAllocate(fsys *FS) fn {
	return func(_ context.Context, _ api.Module, p []uint64) []uint64 {
		return errnoResult(fsys.FDAllocate(abi.FD(p[0]), p[1], p[2]))
	}
}

func fdRenumber(fsys *FS) fn {
	return func(_ context.Context, _ api.Module, p []uint64) []uint64 {
		return errnoResult(fsys.FDRenumber(abi.FD(p[0]), abi.FD(p[1])))
	}
}

func fdFdstatGet(fsys *FS) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		fd, ptr := abi.FD(p[0]), uint32(p[1])
		st, errno := fsys.FDFdstatGet(fd)
		if errno != abi.ESUCCESS {
			return errnoResult(errno)
		}
		if !abi.WriteFDStat(mod.Memory(), ptr, st) {
			return errnoResult(abi.EFAULT)
		}
		return errnoResult(abi.ESUCCESS)
	}
}

func fdFdstatSetFlags(fsys *FS) fn {
	return func(_ context.Context, _ api.Module, p []uint64) []uint64 {
		return errnoResult(fsys.FDFdstatSetFlags(abi.FD(p[0])))
	}
}

func fdFdstatSetRights(fsys *FS) fn {
	return func(_ context.Context, _ api.Module, p []uint64) []uint64 {
		return errnoResult(fsys.FDFdstatSetRights(abi.FD(p[0])))
	}
}

func fdFilestatGet(fsys *FS) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		fd, ptr := abi.FD(p[0]), uint32(p[1])
		st, errno := fsys.FDFilestatGet(fd)
		if errno != abi.ESUCCESS {
			return errnoResult(errno)
		}
		if !abi.WriteFileStat(mod.Memory(), ptr, st) {
			return errnoResult(abi.EFAULT)
		}
		return errnoResult(abi.ESUCCESS)
	}
}

func fdFilestatSetSize(fsys *FS) fn {
	return func(_ context.Context, _ api.Module, p []uint64) []uint64 {
		return errnoResult(fsys.FDFilestatSetSize(abi.FD(p[0]), p[1]))
	}
}

func fdPrestatGet(fsys *FS) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		fd, ptr := abi.FD(p[0]), uint32(p[1])
		st, errno := fsys.FDPrestatGet(fd)
		if errno != abi.ESUCCESS {
			return errnoResult(errno)
		}
		if !abi.WritePreStat(mod.Memory(), ptr, st) {
			return errnoResult(abi.EFAULT)
		}
		return errnoResult(abi.ESUCCESS)
	}
}

func fdPrestatDirName(fsys *FS) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		fd, pathPtr, pathLen := abi.FD(p[0]), uint32(p[1]), uint32(p[2])
		path, errno := fsys.FDPrestatDirName(fd, pathLen)
		if errno != abi.ESUCCESS {
			return errnoResult(errno)
		}
		if _, ok := abi.WriteString(mod.Memory(), path, pathPtr); !ok {
			return errnoResult(abi.EFAULT)
		}
		return errnoResult(abi.ESUCCESS)
	}
}

func pathOpen(fsys *FS) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		dirFD := abi.FD(p[0])
		// p[1] is lookupflags, unused: no symlink resolution to toggle.
		pathPtr, pathLen := uint32(p[2]), uint32(p[3])
		openFlags := abi.OpenFlags(uint32(p[4]))
		// p[5], p[6] are rights_base/rights_inheriting: accepted, not enforced.
		// p[7] is fdflags: accepted, not applied.
		openedFDPtr := uint32(p[8])

		path, ok := abi.ReadString(mod.Memory(), pathPtr, pathLen)
		if !ok {
			return errnoResult(abi.EFAULT)
		}
		fd, errno := fsys.PathOpen(dirFD, path, openFlags)
		if errno != abi.ESUCCESS {
			return errnoResult(errno)
		}
		if !mod.Memory().WriteUint32Le(openedFDPtr, uint32(fd)) {
			return errnoResult(abi.EFAULT)
		}
		return errnoResult(abi.ESUCCESS)
	}
}

func pathCreateDirectory(fsys *FS) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		dirFD, pathPtr, pathLen := abi.FD(p[0]), uint32(p[1]), uint32(p[2])
		path, ok := abi.ReadString(mod.Memory(), pathPtr, pathLen)
		if !ok {
			return errnoResult(abi.EFAULT)
		}
		return errnoResult(fsys.PathCreateDirectory(dirFD, path))
	}
}

func pathUnlinkFile(fsys *FS) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		dirFD, pathPtr, pathLen := abi.FD(p[0]), uint32(p[1]), uint32(p[2])
		path, ok := abi.ReadString(mod.Memory(), pathPtr, pathLen)
		if !ok {
			return errnoResult(abi.EFAULT)
		}
		return errnoResult(fsys.PathUnlinkFile(dirFD, path))
	}
}

func pathRemoveDirectory(fsys *FS) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		dirFD, pathPtr, pathLen := abi.FD(p[0]), uint32(p[1]), uint32(p[2])
		path, ok := abi.ReadString(mod.Memory(), pathPtr, pathLen)
		if !ok {
			return errnoResult(abi.EFAULT)
		}
		return errnoResult(fsys.PathRemoveDirectory(dirFD, path))
	}
}

func pathFilestatGet(fsys *FS) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		dirFD := abi.FD(p[0])
		// p[1] is lookupflags, unused.
		pathPtr, pathLen, buf := uint32(p[2]), uint32(p[3]), uint32(p[4])
		path, ok := abi.ReadString(mod.Memory(), pathPtr, pathLen)
		if !ok {
			return errnoResult(abi.EFAULT)
		}
		st, errno := fsys.PathFilestatGet(dirFD, path)
		if errno != abi.ESUCCESS {
			return errnoResult(errno)
		}
		if !abi.WriteFileStat(mod.Memory(), buf, st) {
			return errnoResult(abi.EFAULT)
		}
		return errnoResult(abi.ESUCCESS)
	}
}

func pathRename(fsys *FS) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		oldFD, oldPtr, oldLen := abi.FD(p[0]), uint32(p[1]), uint32(p[2])
		newFD, newPtr, newLen := abi.FD(p[3]), uint32(p[4]), uint32(p[5])
		oldPath, ok := abi.ReadString(mod.Memory(), oldPtr, oldLen)
		if !ok {
			return errnoResult(abi.EFAULT)
		}
		newPath, ok := abi.ReadString(mod.Memory(), newPtr, newLen)
		if !ok {
			return errnoResult(abi.EFAULT)
		}
		return errnoResult(fsys.PathRename(oldFD, oldPath, newFD, newPath))
	}
}

func toByteSlices(iovs []abi.IOVec) [][]byte {
	out := make([][]byte, len(iovs))
	for i, v := range iovs {
		out[i] = v
	}
	return out
}
