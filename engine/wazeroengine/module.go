// Package wazeroengine adapts a uwasi import table into a real
// wazero.HostModule, using wazero's modern builder API
// (NewHostModuleBuilder / NewFunctionBuilder / Export) rather than the
// deprecated NewModuleBuilder/ExportFunction surface seen in older
// releases.
package wazeroengine

import (
	"context"

	"github.com/swiftwasm/uwasi/abi"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// ModuleName is the import module name a wasm guest expects its preview1
// host functions under.
const ModuleName = "wasi_snapshot_preview1"

// Instantiate builds and instantiates a wasi_snapshot_preview1 host module
// in r from imports (typically a uwasi.Driver's Imports field), registering
// one host function per name in abi.ImportNames with its exact preview1
// arity. wazero's api.GoModuleFunction writes its results back into the
// same stack slice it read params from and returns nothing, so each
// registration wraps abi.HostFunc.Func (which returns its results as a new
// slice, keeping the CORE's HostFunc type free of an engine-specific
// in-place-mutation requirement) in a thin closure that copies one into the
// other.
func Instantiate(ctx context.Context, r wazero.Runtime, imports map[string]abi.HostFunc) (api.Closer, error) {
	builder := r.NewHostModuleBuilder(ModuleName)
	for _, name := range abi.ImportNames {
		hf, ok := imports[name]
		if !ok {
			hf = abi.ENOSYSStub(name)
		}
		fn := hf.Func
		goFn := api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
			copy(stack, fn(ctx, mod, stack))
		})
		builder.NewFunctionBuilder().
			WithGoModuleFunction(goFn, hf.ParamTypes, hf.ResultTypes).
			Export(name)
	}
	return builder.Instantiate(ctx)
}
