package provider

import (
	"github.com/swiftwasm/uwasi"
	"github.com/swiftwasm/uwasi/abi"
)

// UseEnviron contributes environ_get and environ_sizes_get, serving
// cfg.Env's "KEY=VALUE" entries in the order they were configured (spec.md
// §4.2: iteration order must be stable across paired _get/_sizes_get calls
// within one instance, which a plain slice guarantees without further
// bookkeeping).
func UseEnviron() uwasi.Provider {
	return func(cfg *uwasi.Config) map[string]abi.HostFunc {
		env := cfg.Env
		return map[string]abi.HostFunc{
			"environ_get":       hostFunc("environ_get", getValues(env)),
			"environ_sizes_get": hostFunc("environ_sizes_get", sizesGet(env)),
		}
	}
}
