package uwasi

import (
	"context"
	"fmt"
	"io"

	"github.com/swiftwasm/uwasi/abi"
	"github.com/tetratelabs/wazero/api"
)

// Trace wraps a list of providers in one that composes them exactly as
// Compose would, then decorates every resulting host function to log
// "name(args...) => result" to w before returning, grounded on the same
// decorator shape as the rest of this module's providers: a func(*Config)
// returning a map, so Trace itself can be passed anywhere a Provider is
// expected.
//
// Trace never changes the Errno a wrapped function returns; it only adds a
// side-effecting log line around the call.
func Trace(w io.Writer, providers ...Provider) Provider {
	return func(cfg *Config) map[string]abi.HostFunc {
		inner := Compose(cfg, providers)
		traced := make(map[string]abi.HostFunc, len(inner))
		for name, fn := range inner {
			traced[name] = traceFunc(w, fn)
		}
		return traced
	}
}

func traceFunc(w io.Writer, hf abi.HostFunc) abi.HostFunc {
	name, inner := hf.Name, hf.Func
	hf.Func = func(ctx context.Context, mod api.Module, params []uint64) []uint64 {
		fmt.Fprintf(w, "%s(%v) => ", name, params)
		results := inner(ctx, mod, params)
		fmt.Fprintf(w, "%v\n", results)
		return results
	}
	return hf
}
