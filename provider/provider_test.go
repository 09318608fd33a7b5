package provider

import (
	"context"
	"testing"

	"github.com/swiftwasm/uwasi"
	"github.com/swiftwasm/uwasi/abi"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// memoryModule is the minimal wasm binary for `(module (memory (export
// "memory") 1))`, mirroring abi's own test helper: providers need a real
// api.Memory to decode/encode arguments against.
var memoryModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x05, 0x03, 0x01, 0x00, 0x01,
	0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
}

func newTestModule(t *testing.T) api.Module {
	t.Helper()
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	t.Cleanup(func() { r.Close(ctx) })
	compiled, err := r.CompileModule(ctx, memoryModule)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	mod, err := r.InstantiateModule(ctx, compiled, wazero.NewModuleConfig())
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	t.Cleanup(func() { mod.Close(ctx) })
	return mod
}

func TestUseArgs(t *testing.T) {
	mod := newTestModule(t)
	cfg := &uwasi.Config{Args: []string{"prog", "a", "bb"}}
	imports := UseArgs()(cfg)

	sizes := imports["args_sizes_get"]
	res := sizes.Func(context.Background(), mod, []uint64{0, 4})
	if abi.Errno(res[0]) != abi.ESUCCESS {
		t.Fatalf("args_sizes_get errno = %v", res[0])
	}
	count, _ := mod.Memory().ReadUint32Le(0)
	if count != 3 {
		t.Fatalf("argc = %d, want 3", count)
	}

	get := imports["args_get"]
	res = get.Func(context.Background(), mod, []uint64{100, 200})
	if abi.Errno(res[0]) != abi.ESUCCESS {
		t.Fatalf("args_get errno = %v", res[0])
	}
	ptr0, _ := mod.Memory().ReadUint32Le(100)
	s, _ := abi.ReadString(mod.Memory(), ptr0, 4)
	if s != "prog" {
		t.Fatalf("args[0] = %q, want %q", s, "prog")
	}
}

func TestUseEnviron(t *testing.T) {
	mod := newTestModule(t)
	cfg := &uwasi.Config{Env: []string{"A=1", "B=2"}}
	imports := UseEnviron()(cfg)

	sizes := imports["environ_sizes_get"]
	res := sizes.Func(context.Background(), mod, []uint64{0, 4})
	if abi.Errno(res[0]) != abi.ESUCCESS {
		t.Fatalf("environ_sizes_get errno = %v", res[0])
	}
	count, _ := mod.Memory().ReadUint32Le(0)
	if count != 2 {
		t.Fatalf("environ count = %d, want 2", count)
	}
}

func TestUseClockMonotonicAdvances(t *testing.T) {
	mod := newTestModule(t)
	imports := UseClock()(&uwasi.Config{})
	timeGet := imports["clock_time_get"]

	res := timeGet.Func(context.Background(), mod, []uint64{uint64(abi.ClockMonotonic), 0, 0})
	if abi.Errno(res[0]) != abi.ESUCCESS {
		t.Fatalf("clock_time_get errno = %v", res[0])
	}
	t1, _ := mod.Memory().ReadUint64Le(0)

	res = timeGet.Func(context.Background(), mod, []uint64{uint64(abi.ClockMonotonic), 0, 0})
	if abi.Errno(res[0]) != abi.ESUCCESS {
		t.Fatalf("clock_time_get errno = %v", res[0])
	}
	t2, _ := mod.Memory().ReadUint64Le(0)

	if t2 < t1 {
		t.Fatalf("monotonic clock went backwards: %d -> %d", t1, t2)
	}
}

func TestUseClockUnknownClockIsENOSYS(t *testing.T) {
	mod := newTestModule(t)
	imports := UseClock()(&uwasi.Config{})
	res := imports["clock_res_get"].Func(context.Background(), mod, []uint64{99, 0})
	if abi.Errno(res[0]) != abi.ENOSYS {
		t.Fatalf("clock_res_get(99) errno = %v, want ENOSYS", res[0])
	}
}

func TestUseRandomFillsBuffer(t *testing.T) {
	mod := newTestModule(t)
	src := &counterReader{}
	imports := UseRandom(src)(&uwasi.Config{})

	res := imports["random_get"].Func(context.Background(), mod, []uint64{0, 8})
	if abi.Errno(res[0]) != abi.ESUCCESS {
		t.Fatalf("random_get errno = %v", res[0])
	}
	b, _ := mod.Memory().Read(0, 8)
	for i, want := range []byte{0, 1, 2, 3, 4, 5, 6, 7} {
		if b[i] != want {
			t.Fatalf("byte %d = %d, want %d", i, b[i], want)
		}
	}
}

type counterReader struct{ n byte }

func (c *counterReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = c.n
		c.n++
	}
	return len(p), nil
}

func TestProcExitPanicsWithExitError(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("proc_exit did not panic")
		}
	}()
	procExit(context.Background(), nil, []uint64{7})
}

func TestProcRaiseIsNoOp(t *testing.T) {
	res := procRaise(context.Background(), nil, []uint64{1})
	if abi.Errno(res[0]) != abi.ESUCCESS {
		t.Fatalf("proc_raise errno = %v, want ESUCCESS", res[0])
	}
}
