// Package uwasi implements the host side of the WASI preview1 system-call
// interface: the functions a WebAssembly guest imports under the module
// name "wasi_snapshot_preview1" to reach command-line arguments, the
// environment, clocks, randomness, standard I/O, and a sandboxed file
// system.
//
// The package is organized around three ideas. The abi subpackage encodes
// and decodes preview1's wire structures in a guest's linear memory. A
// Provider contributes zero or more named import functions; NewDriver
// composes an ordered list of providers into one import table, filling any
// name no provider supplied with a stub that reports ENOSYS, so a guest
// linked against a libc port can still boot even when most features were
// left out at build time. Driver.Start runs a guest instance to completion,
// translating the process-exit sentinel into an integer exit code;
// Driver.Initialize runs a reactor guest's _initialize and reports only an
// error.
package uwasi

import (
	"fmt"

	"github.com/swiftwasm/uwasi/abi"
)

// Preopen is a guest-visible directory path paired with a host-side hint.
// In this module the hint is informational only: every preopen is backed by
// the in-memory file system, never by a real host directory.
type Preopen struct {
	GuestPath string
	HostHint  string
}

// Config is the immutable configuration a Driver is built from.
type Config struct {
	// Args are the guest's command-line arguments; index 0 is conventionally
	// the program name.
	Args []string

	// Env holds "KEY=VALUE" entries. Order is preserved across environ_get
	// and environ_sizes_get within one Driver, but is otherwise unspecified.
	Env []string

	// Preopens lists the directories exposed to the guest, in the order
	// preopen descriptors should be assigned. A plain map isn't used here
	// because Go randomizes map iteration order, which would make preopen
	// descriptor numbers nondeterministic across runs of the same Config.
	Preopens []Preopen
}

// Provider contributes zero or more named host functions to an import
// table, as described by a Config. A Provider that has nothing to
// contribute (e.g. a feature disabled by its own options) may return a nil
// or empty map.
type Provider func(cfg *Config) map[string]abi.HostFunc

// Compose merges the import functions contributed by providers, in order
// (a later provider overwrites a name an earlier one also supplied), then
// fills every name in abi.ImportNames that remains absent with an ENOSYS
// stub.
func Compose(cfg *Config, providers []Provider) map[string]abi.HostFunc {
	table := make(map[string]abi.HostFunc, len(abi.ImportNames))
	for _, p := range providers {
		for name, fn := range p(cfg) {
			table[name] = fn
		}
	}
	for _, name := range abi.ImportNames {
		if _, ok := table[name]; !ok {
			table[name] = abi.ENOSYSStub(name)
		}
	}
	return table
}

// ConfigError is a host-side configuration fault: a mistake by the
// embedder, never guest-visible. Calling Start or Initialize twice, or
// instantiating a guest that doesn't export memory or the expected entry
// point, are ConfigErrors.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "uwasi: " + e.Reason }

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// Driver owns one composed import table and the run-once guards around
// Start and Initialize. Multiple Drivers are fully independent; there is no
// package-level state.
type Driver struct {
	Config  Config
	Imports map[string]abi.HostFunc

	started     bool
	initialized bool
}

// NewDriver composes providers against cfg and returns a Driver ready to
// produce an import object for a guest instantiation.
func NewDriver(cfg Config, providers ...Provider) *Driver {
	d := &Driver{Config: cfg}
	d.Imports = Compose(&d.Config, providers)
	return d
}

// markStart and markInitialize enforce that start() and initialize() are
// each callable at most once per driver, and are mutually exclusive: a
// command-model guest calls _start, a reactor-model guest calls
// _initialize, never both.
func (d *Driver) markStart() error {
	if d.started || d.initialized {
		return configErrorf("start/initialize called more than once on this driver")
	}
	d.started = true
	return nil
}

func (d *Driver) markInitialize() error {
	if d.started || d.initialized {
		return configErrorf("start/initialize called more than once on this driver")
	}
	d.initialized = true
	return nil
}
