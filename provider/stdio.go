package provider

import (
	"context"

	"github.com/swiftwasm/uwasi"
	"github.com/swiftwasm/uwasi/abi"
	"github.com/tetratelabs/wazero/api"
)

// UseStdio contributes fd_read and fd_write, bound to the given stdio
// proxies (see abi.Readable/abi.Writable for the capability shapes). When a
// filesystem provider is also selected, its stdio character devices
// typically come later in the provider list and override these entries;
// UseStdio alone is what lets a no-filesystem configuration still satisfy a
// guest's fd 0/1/2 traffic.
func UseStdio(stdin abi.Readable, stdout, stderr abi.Writable) uwasi.Provider {
	cr := abi.NewCarryOverReader(stdin)
	return func(_ *uwasi.Config) map[string]abi.HostFunc {
		writers := map[abi.FD]abi.Writable{1: stdout, 2: stderr}
		return map[string]abi.HostFunc{
			"fd_read":  hostFunc("fd_read", stdioRead(cr)),
			"fd_write": hostFunc("fd_write", stdioWrite(writers)),
		}
	}
}

func stdioRead(cr *abi.CarryOverReader) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		fd, iovsPtr, iovsLen, nreadPtr := abi.FD(p[0]), uint32(p[1]), uint32(p[2]), uint32(p[3])
		if fd != 0 {
			return errnoResult(abi.EBADF)
		}
		iovs, ok := abi.IOVecs(mod.Memory(), iovsPtr, iovsLen)
		if !ok {
			return errnoResult(abi.EFAULT)
		}
		n := cr.ReadIntoIOVecs(iovs)
		if !mod.Memory().WriteUint32Le(nreadPtr, uint32(n)) {
			return errnoResult(abi.EFAULT)
		}
		return errnoResult(abi.ESUCCESS)
	}
}

func stdioWrite(writers map[abi.FD]abi.Writable) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		fd, iovsPtr, iovsLen, nwrittenPtr := abi.FD(p[0]), uint32(p[1]), uint32(p[2]), uint32(p[3])
		w, ok := writers[fd]
		if !ok {
			return errnoResult(abi.EBADF)
		}
		iovs, ok := abi.IOVecs(mod.Memory(), iovsPtr, iovsLen)
		if !ok {
			return errnoResult(abi.EFAULT)
		}
		buffers := make([][]byte, len(iovs))
		for i, v := range iovs {
			buffers[i] = v
		}
		n, err := w.WriteV(buffers)
		if err != nil {
			return errnoResult(abi.EIO)
		}
		if !mod.Memory().WriteUint32Le(nwrittenPtr, uint32(n)) {
			return errnoResult(abi.EFAULT)
		}
		return errnoResult(abi.ESUCCESS)
	}
}
