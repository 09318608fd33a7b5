package provider

import (
	"context"

	"github.com/swiftwasm/uwasi"
	"github.com/swiftwasm/uwasi/abi"
	"github.com/tetratelabs/wazero/api"
)

// UseProc contributes proc_exit and proc_raise. proc_raise is a no-op
// returning ESUCCESS: signal semantics beyond proc_exit are a Non-goal.
func UseProc() uwasi.Provider {
	return func(_ *uwasi.Config) map[string]abi.HostFunc {
		return map[string]abi.HostFunc{
			"proc_exit":  hostFunc("proc_exit", procExit),
			"proc_raise": hostFunc("proc_raise", procRaise),
		}
	}
}

// procExit panics with abi.NewExitError, the sentinel wazero's engines
// recover at the guest/host call boundary and report back to the driver as
// a plain error. It never returns normally, matching spec.md §4.4.
func procExit(_ context.Context, _ api.Module, p []uint64) []uint64 {
	panic(abi.NewExitError(int32(uint32(p[0]))))
}

func procRaise(_ context.Context, _ api.Module, _ []uint64) []uint64 {
	return errnoResult(abi.ESUCCESS)
}
