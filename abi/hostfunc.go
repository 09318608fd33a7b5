package abi

import (
	"context"

	"github.com/tetratelabs/wazero/api"
)

// HostFunc is the unit of work a feature provider contributes: the body of
// one guest-importable function, together with the wasm value types an
// engine adapter needs to register it under the exact preview1 signature.
//
// Func receives the wasm arguments in order in params and returns the wasm
// results in order as a new slice. Every preview1 signature in Signatures
// has at most one result, the errno; any further outputs (e.g.
// args_sizes_get's argc and argv_buf_size) are written into guest memory at
// the pointers passed in params.
type HostFunc struct {
	Name        string
	ParamTypes  []api.ValueType
	ResultTypes []api.ValueType
	Func        func(ctx context.Context, mod api.Module, params []uint64) []uint64
}

// Signature describes the wasm value types of an import function, used to
// build stub implementations and to validate provider contributions.
type Signature struct {
	Params  []api.ValueType
	Results []api.ValueType
}

const (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
)

// ImportNames is the closed set of names a wasi_snapshot_preview1 import
// table may contain. Any provider contributing a name outside of this set
// is a bug: the composition step only fills and wraps names found here.
var ImportNames = []string{
	"args_get", "args_sizes_get",
	"clock_res_get", "clock_time_get",
	"environ_get", "environ_sizes_get",
	"fd_advise", "fd_allocate", "fd_close", "fd_datasync",
	"fd_fdstat_get", "fd_fdstat_set_flags", "fd_fdstat_set_rights",
	"fd_filestat_get", "fd_filestat_set_size", "fd_filestat_set_times",
	"fd_pread", "fd_prestat_dir_name", "fd_prestat_get", "fd_pwrite",
	"fd_read", "fd_readdir", "fd_renumber", "fd_seek", "fd_sync", "fd_tell",
	"fd_write",
	"path_create_directory", "path_filestat_get", "path_filestat_set_times",
	"path_link", "path_open", "path_readlink", "path_remove_directory",
	"path_rename", "path_symlink", "path_unlink_file",
	"poll_oneoff",
	"proc_exit", "proc_raise",
	"random_get",
	"sched_yield",
	"sock_accept", "sock_recv", "sock_send", "sock_shutdown",
}

// Signatures gives the wasm value types for every name in ImportNames. Used
// both to build ENOSYS stubs and by engine adapters to register real
// implementations with the correct arity.
var Signatures = map[string]Signature{
	"args_get":              {[]api.ValueType{i32, i32}, []api.ValueType{i32}},
	"args_sizes_get":        {[]api.ValueType{i32, i32}, []api.ValueType{i32}},
	"clock_res_get":         {[]api.ValueType{i32, i32}, []api.ValueType{i32}},
	"clock_time_get":        {[]api.ValueType{i32, i64, i32}, []api.ValueType{i32}},
	"environ_get":           {[]api.ValueType{i32, i32}, []api.ValueType{i32}},
	"environ_sizes_get":     {[]api.ValueType{i32, i32}, []api.ValueType{i32}},
	"fd_advise":             {[]api.ValueType{i32, i64, i64, i32}, []api.ValueType{i32}},
	"fd_allocate":           {[]api.ValueType{i32, i64, i64}, []api.ValueType{i32}},
	"fd_close":              {[]api.ValueType{i32}, []api.ValueType{i32}},
	"fd_datasync":           {[]api.ValueType{i32}, []api.ValueType{i32}},
	"fd_fdstat_get":         {[]api.ValueType{i32, i32}, []api.ValueType{i32}},
	"fd_fdstat_set_flags":   {[]api.ValueType{i32, i32}, []api.ValueType{i32}},
	"fd_fdstat_set_rights":  {[]api.ValueType{i32, i64, i64}, []api.ValueType{i32}},
	"fd_filestat_get":       {[]api.ValueType{i32, i32}, []api.ValueType{i32}},
	"fd_filestat_set_size":  {[]api.ValueType{i32, i64}, []api.ValueType{i32}},
	"fd_filestat_set_times": {[]api.ValueType{i32, i64, i64, i32}, []api.ValueType{i32}},
	"fd_pread":              {[]api.ValueType{i32, i32, i32, i64, i32}, []api.ValueType{i32}},
	"fd_prestat_dir_name":   {[]api.ValueType{i32, i32, i32}, []api.ValueType{i32}},
	"fd_prestat_get":        {[]api.ValueType{i32, i32}, []api.ValueType{i32}},
	"fd_pwrite":             {[]api.ValueType{i32, i32, i32, i64, i32}, []api.ValueType{i32}},
	"fd_read":               {[]api.ValueType{i32, i32, i32, i32}, []api.ValueType{i32}},
	"fd_readdir":            {[]api.ValueType{i32, i32, i32, i64, i32}, []api.ValueType{i32}},
	"fd_renumber":           {[]api.ValueType{i32, i32}, []api.ValueType{i32}},
	"fd_seek":               {[]api.ValueType{i32, i64, i32, i32}, []api.ValueType{i32}},
	"fd_sync":               {[]api.ValueType{i32}, []api.ValueType{i32}},
	"fd_tell":               {[]api.ValueType{i32, i32}, []api.ValueType{i32}},
	"fd_write":              {[]api.ValueType{i32, i32, i32, i32}, []api.ValueType{i32}},
	"path_create_directory": {[]api.ValueType{i32, i32, i32}, []api.ValueType{i32}},
	"path_filestat_get":     {[]api.ValueType{i32, i32, i32, i32, i32}, []api.ValueType{i32}},
	"path_filestat_set_times": {
		[]api.ValueType{i32, i32, i32, i32, i64, i64, i32}, []api.ValueType{i32},
	},
	"path_link": {
		[]api.ValueType{i32, i32, i32, i32, i32, i32, i32}, []api.ValueType{i32},
	},
	"path_open": {
		[]api.ValueType{i32, i32, i32, i32, i32, i64, i64, i32, i32}, []api.ValueType{i32},
	},
	"path_readlink":         {[]api.ValueType{i32, i32, i32, i32, i32, i32}, []api.ValueType{i32}},
	"path_remove_directory": {[]api.ValueType{i32, i32, i32}, []api.ValueType{i32}},
	"path_rename":           {[]api.ValueType{i32, i32, i32, i32, i32, i32}, []api.ValueType{i32}},
	"path_symlink":          {[]api.ValueType{i32, i32, i32, i32, i32}, []api.ValueType{i32}},
	"path_unlink_file":      {[]api.ValueType{i32, i32, i32}, []api.ValueType{i32}},
	"poll_oneoff":           {[]api.ValueType{i32, i32, i32, i32}, []api.ValueType{i32}},
	"proc_exit":             {[]api.ValueType{i32}, nil},
	"proc_raise":            {[]api.ValueType{i32}, []api.ValueType{i32}},
	"random_get":            {[]api.ValueType{i32, i32}, []api.ValueType{i32}},
	"sched_yield":           {nil, []api.ValueType{i32}},
	"sock_accept":           {[]api.ValueType{i32, i32, i32}, []api.ValueType{i32}},
	"sock_recv":             {[]api.ValueType{i32, i32, i32, i32, i32, i32}, []api.ValueType{i32}},
	"sock_send":             {[]api.ValueType{i32, i32, i32, i32, i32}, []api.ValueType{i32}},
	"sock_shutdown":         {[]api.ValueType{i32, i32}, []api.ValueType{i32}},
}

// ENOSYSStub returns a HostFunc for name that ignores its parameters, does
// not touch guest memory, and reports ENOSYS. Used to fill every import name
// no selected provider contributed.
func ENOSYSStub(name string) HostFunc {
	sig := Signatures[name]
	return HostFunc{
		Name:        name,
		ParamTypes:  sig.Params,
		ResultTypes: sig.Results,
		Func: func(_ context.Context, _ api.Module, _ []uint64) []uint64 {
			if len(sig.Results) == 0 {
				return nil
			}
			return []uint64{uint64(ENOSYS)}
		},
	}
}
