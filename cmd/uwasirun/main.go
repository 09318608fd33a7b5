// Command uwasirun runs a single WebAssembly module against a sandboxed
// WASI preview1 host built from this module's providers. It is the "thin
// external collaborator" SPEC_FULL.md calls for: everything it does is
// already implemented in uwasi/provider/memfs/engine; this file only wires
// flags to constructors and runs the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/swiftwasm/uwasi"
	"github.com/swiftwasm/uwasi/engine/wazeroengine"
	"github.com/swiftwasm/uwasi/memfs"
	"github.com/swiftwasm/uwasi/provider"
	"github.com/tetratelabs/wazero"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `uwasirun - Run a WebAssembly module against an in-memory WASI sandbox

USAGE:
   uwasirun [OPTIONS]... <MODULE> [--] [ARGS]...

ARGS:
   <MODULE>
      The path of the WebAssembly module to run

   [ARGS]...
      Arguments to pass to the module

OPTIONS:
   --dir <GUEST[:HOST]>
      Expose GUEST as a preopened directory in the sandbox. HOST, if
      given, is recorded only as an informational hint: nothing is
      mounted from the real file system.

   --env <NAME=VAL>
      Pass an environment variable to the module

   --trace
      Log every WASI call to stderr, like strace

   -v, --version
      Print the version and exit

   -h, --help
      Show this usage information
`)
}

type stringList []string

func (s *stringList) String() string     { return fmt.Sprintf("%v", []string(*s)) }
func (s *stringList) Set(v string) error { *s = append(*s, v); return nil }

func main() {
	var (
		dirs    stringList
		envs    stringList
		trace   bool
		version bool
	)

	flagSet := flag.NewFlagSet("uwasirun", flag.ExitOnError)
	flagSet.Usage = printUsage
	flagSet.Var(&dirs, "dir", "")
	flagSet.Var(&envs, "env", "")
	flagSet.BoolVar(&trace, "trace", false, "")
	flagSet.BoolVar(&version, "version", false, "")
	flagSet.BoolVar(&version, "v", false, "")
	flagSet.Parse(os.Args[1:])

	if version {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "(devel)" {
			fmt.Println("uwasirun", info.Main.Version)
		} else {
			fmt.Println("uwasirun", "devel")
		}
		return
	}

	args := flagSet.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	if len(args) > 1 && args[1] == "--" {
		args = append(args[:1], args[2:]...)
	}

	code, err := run(args[0], args[1:], dirs, envs, trace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "uwasirun: %v\n", err)
		os.Exit(1)
	}
	os.Exit(int(code))
}

func run(wasmFile string, guestArgs []string, dirs, envs stringList, trace bool) (int32, error) {
	wasmCode, err := os.ReadFile(wasmFile)
	if err != nil {
		return 1, fmt.Errorf("could not read module %q: %w", wasmFile, err)
	}

	preopens, guestPaths := parseDirs(dirs)

	fsys := memfs.New(
		newStdinReader(os.Stdin),
		newOSWriter(os.Stdout),
		newOSWriter(os.Stderr),
		guestPaths,
	)

	cfg := uwasi.Config{
		Args:     append([]string{filepath.Base(wasmFile)}, guestArgs...),
		Env:      envs,
		Preopens: preopens,
	}

	providers := []uwasi.Provider{
		provider.UseArgs(),
		provider.UseEnviron(),
		provider.UseClock(),
		provider.UseProc(),
		provider.UseRandom(),
		memfs.UseMemoryFS(fsys),
	}
	if trace {
		providers = []uwasi.Provider{uwasi.Trace(os.Stderr, providers...)}
	}

	driver := uwasi.NewDriver(cfg, providers...)

	ctx := context.Background()
	runtime := wazero.NewRuntime(ctx)
	defer runtime.Close(ctx)

	hostModule, err := wazeroengine.Instantiate(ctx, runtime, driver.Imports)
	if err != nil {
		return 1, fmt.Errorf("could not build host module: %w", err)
	}
	defer hostModule.Close(ctx)

	compiled, err := runtime.CompileModule(ctx, wasmCode)
	if err != nil {
		return 1, fmt.Errorf("could not compile module %q: %w", wasmFile, err)
	}

	modCfg := wazero.NewModuleConfig().WithName(wasmFile)
	mod, err := runtime.InstantiateModule(ctx, compiled, modCfg)
	if err != nil {
		return 1, fmt.Errorf("could not instantiate module %q: %w", wasmFile, err)
	}
	defer mod.Close(ctx)

	return driver.Start(ctx, mod)
}

// parseDirs splits each "guest[:host]" flag value into a uwasi.Preopen (for
// Config's informational record) and the bare guest path memfs.New needs to
// actually register the preopen.
func parseDirs(dirs stringList) ([]uwasi.Preopen, []string) {
	preopens := make([]uwasi.Preopen, 0, len(dirs))
	guestPaths := make([]string, 0, len(dirs))
	for _, d := range dirs {
		guest, host, _ := strings.Cut(d, ":")
		preopens = append(preopens, uwasi.Preopen{GuestPath: guest, HostHint: host})
		guestPaths = append(guestPaths, guest)
	}
	return preopens, guestPaths
}
