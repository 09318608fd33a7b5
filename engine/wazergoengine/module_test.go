package wazergoengine

import (
	"context"
	"testing"

	"github.com/stealthrocket/wazergo"
	"github.com/swiftwasm/uwasi/abi"
)

func TestHostModuleFillsEveryImportName(t *testing.T) {
	imports := map[string]abi.HostFunc{
		"random_get": abi.ENOSYSStub("random_get"),
	}
	hm := HostModule(imports)
	fns := hm.Functions()
	if len(fns) != len(abi.ImportNames) {
		t.Fatalf("HostModule registered %d functions, want %d", len(fns), len(abi.ImportNames))
	}
	for _, name := range abi.ImportNames {
		if _, ok := fns[name]; !ok {
			t.Errorf("missing wazergo.Function for %q", name)
		}
	}
}

func TestInstantiateRequiresImports(t *testing.T) {
	hm := HostModule(map[string]abi.HostFunc{})
	if _, err := hm.Instantiate(context.Background()); err == nil {
		t.Fatal("expected an error when no WithImports option is supplied")
	}
}

func TestInstantiateWithImportsSucceeds(t *testing.T) {
	hm := HostModule(map[string]abi.HostFunc{})
	m, err := hm.Instantiate(context.Background(), WithImports(map[string]abi.HostFunc{}))
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if m == nil {
		t.Fatal("Instantiate returned a nil module")
	}
	var _ wazergo.Option[*Module] = WithImports(nil)
}
