package provider

import (
	"context"

	"github.com/swiftwasm/uwasi"
	"github.com/swiftwasm/uwasi/abi"
	"github.com/tetratelabs/wazero/api"
)

// UseArgs contributes args_get and args_sizes_get, serving cfg.Args exactly
// as configured.
func UseArgs() uwasi.Provider {
	return func(cfg *uwasi.Config) map[string]abi.HostFunc {
		args := cfg.Args
		return map[string]abi.HostFunc{
			"args_get":       hostFunc("args_get", getValues(args)),
			"args_sizes_get": hostFunc("args_sizes_get", sizesGet(args)),
		}
	}
}

type fn func(ctx context.Context, mod api.Module, params []uint64) []uint64

func hostFunc(name string, f fn) abi.HostFunc {
	sig := abi.Signatures[name]
	return abi.HostFunc{Name: name, ParamTypes: sig.Params, ResultTypes: sig.Results, Func: f}
}

func errnoResult(e abi.Errno) []uint64 { return []uint64{uint64(e)} }

// getValues writes one u32 pointer per value at ptrsOut (stride 4), each
// addressing that value's NUL-terminated bytes written back to back at
// bufOut, per spec.md §4.2's args_get/environ_get shape.
func getValues(values []string) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		ptrsOut, bufOut := uint32(p[0]), uint32(p[1])
		if _, ok := abi.WriteNullTerminatedStrings(mod.Memory(), values, ptrsOut, bufOut); !ok {
			return errnoResult(abi.EFAULT)
		}
		return errnoResult(abi.ESUCCESS)
	}
}

// sizesGet writes the count and total NUL-inclusive byte size of values.
func sizesGet(values []string) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		countPtr, sizePtr := uint32(p[0]), uint32(p[1])
		if !mod.Memory().WriteUint32Le(countPtr, uint32(len(values))) {
			return errnoResult(abi.EFAULT)
		}
		if !mod.Memory().WriteUint32Le(sizePtr, abi.SizeOfNullTerminatedStrings(values)) {
			return errnoResult(abi.EFAULT)
		}
		return errnoResult(abi.ESUCCESS)
	}
}
