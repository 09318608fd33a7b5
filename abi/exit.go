package abi

import "github.com/tetratelabs/wazero/sys"

// NewExitError builds the typed process-exit sentinel raised by proc_exit.
//
// proc_exit is the only non-errno exit path out of a running guest; it must
// unwind out of _start regardless of how deep the guest<->host call stack
// is. wazero's own engines already recover a panic of this concrete type at
// the function-call boundary and hand it back as a plain error, which is
// exactly the "platform unwinding mechanism caught at the boundary" this
// module's design notes call for, so proc_exit panics with it directly
// instead of inventing a parallel signalling path.
func NewExitError(code int32) *sys.ExitError {
	return sys.NewExitError(uint32(code))
}
