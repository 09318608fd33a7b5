package provider

import (
	"context"
	"crypto/rand"
	"io"

	"github.com/swiftwasm/uwasi"
	"github.com/swiftwasm/uwasi/abi"
	"github.com/tetratelabs/wazero/api"
)

// UseRandom contributes random_get, filling the requested span with bytes
// from source. The default, used when no source is given, is the host's
// CSPRNG (crypto/rand.Reader), per spec.md §4.5.
func UseRandom(source ...io.Reader) uwasi.Provider {
	src := io.Reader(rand.Reader)
	if len(source) > 0 && source[0] != nil {
		src = source[0]
	}
	return func(_ *uwasi.Config) map[string]abi.HostFunc {
		return map[string]abi.HostFunc{
			"random_get": hostFunc("random_get", randomGet(src)),
		}
	}
}

func randomGet(src io.Reader) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		bufPtr, length := uint32(p[0]), uint32(p[1])
		buf, ok := mod.Memory().Read(bufPtr, length)
		if !ok {
			return errnoResult(abi.EFAULT)
		}
		if _, err := io.ReadFull(src, buf); err != nil {
			return errnoResult(abi.EIO)
		}
		return errnoResult(abi.ESUCCESS)
	}
}
