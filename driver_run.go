package uwasi

import (
	"context"
	"errors"

	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/sys"
)

// Start invokes the guest's _start export and returns the process exit
// code. A normal return from _start (no proc_exit call) yields exit code 0.
// Start may be called at most once per Driver, and is mutually exclusive
// with Initialize.
func (d *Driver) Start(ctx context.Context, mod api.Module) (int32, error) {
	if err := d.markStart(); err != nil {
		return 0, err
	}
	return d.run(ctx, mod, "_start")
}

// Initialize invokes the guest's _initialize export, used by reactor-model
// guests that are instantiated once and then called repeatedly through
// their own exports. Initialize may be called at most once per Driver, and
// is mutually exclusive with Start.
func (d *Driver) Initialize(ctx context.Context, mod api.Module) error {
	if err := d.markInitialize(); err != nil {
		return err
	}
	_, err := d.run(ctx, mod, "_initialize")
	return err
}

func (d *Driver) run(ctx context.Context, mod api.Module, export string) (int32, error) {
	if mod.Memory() == nil {
		return 0, configErrorf("guest module does not export memory")
	}
	fn := mod.ExportedFunction(export)
	if fn == nil {
		return 0, configErrorf("guest module does not export %q", export)
	}
	_, err := fn.Call(ctx)
	if err == nil {
		return 0, nil
	}
	var exitErr *sys.ExitError
	if errors.As(err, &exitErr) {
		return int32(exitErr.ExitCode()), nil
	}
	return 0, err
}
