// Package wazergoengine adapts a uwasi import table into a
// stealthrocket/wazergo host module, as an alternative to
// engine/wazeroengine's direct wazero.HostModuleBuilder route.
//
// wazergo.Function.Func, underneath its typed F1-through-F8 helpers, uses
// wazero's raw stack-based calling convention (params read from, and
// results written back into, the same []uint64). uwasi's abi.HostFunc takes
// its params in that same []uint64 form and returns its results as a
// slice. That means
// every name here is built directly against that low-level convention
// rather than needing 46 hand-written typed methods: the forwarding shim
// is exactly a copy from abi.HostFunc's result slice into wazergo's stack
// slice.
package wazergoengine

import (
	"context"
	"fmt"

	"github.com/stealthrocket/wazergo"
	"github.com/stealthrocket/wazergo/types"
	"github.com/swiftwasm/uwasi/abi"
	"github.com/tetratelabs/wazero/api"
)

const moduleName = "wasi_snapshot_preview1"

// Module holds the import table a HostModule was built from; wazergo
// instantiates one per guest module instantiation.
type Module struct {
	imports map[string]abi.HostFunc
}

// Option configures a Module at instantiation time.
type Option = wazergo.Option[*Module]

// WithImports supplies the composed import table to wire into the host
// module, typically a uwasi.Driver's Imports field.
func WithImports(imports map[string]abi.HostFunc) Option {
	return wazergo.OptionFunc(func(m *Module) { m.imports = imports })
}

type functions wazergo.Functions[*Module]

func (f functions) Name() string                               { return moduleName }
func (f functions) Functions() wazergo.Functions[*Module]       { return wazergo.Functions[*Module](f) }

func (f functions) Instantiate(ctx context.Context, opts ...Option) (*Module, error) {
	m := &Module{}
	wazergo.Configure(m, opts...)
	if m.imports == nil {
		return nil, fmt.Errorf("wazergoengine: no import table provided")
	}
	return m, nil
}

func (m *Module) Close(context.Context) error { return nil }

// HostModule builds the wazergo.HostModule for imports, one wazergo.Function
// per name in abi.ImportNames, each forwarding directly to the
// corresponding abi.HostFunc.
func HostModule(imports map[string]abi.HostFunc) wazergo.HostModule[*Module] {
	fns := make(wazergo.Functions[*Module], len(abi.ImportNames))
	for _, name := range abi.ImportNames {
		hf, ok := imports[name]
		if !ok {
			hf = abi.ENOSYSStub(name)
		}
		fns[name] = stackFunction(hf)
	}
	return functions(fns)
}

// stackFunction builds a wazergo.Function that forwards the raw wasm stack
// straight to hf.Func, matching the convention wazero itself uses for
// multi-result host functions (params read from, results written back into,
// the same slice).
func stackFunction(hf abi.HostFunc) wazergo.Function[*Module] {
	return wazergo.Function[*Module]{
		Params:  valueTypes(hf.ParamTypes),
		Results: valueTypes(hf.ResultTypes),
		Func: func(m *Module, ctx context.Context, mod api.Module, stack []uint64) {
			results := hf.Func(ctx, mod, stack)
			copy(stack, results)
		},
	}
}

func valueTypes(vts []api.ValueType) []types.Value {
	out := make([]types.Value, len(vts))
	for i, vt := range vts {
		if vt == api.ValueTypeI64 {
			out[i] = types.Uint64(0)
		} else {
			out[i] = types.Uint32(0)
		}
	}
	return out
}
