package provider

import (
	"context"
	"time"

	"github.com/swiftwasm/uwasi"
	"github.com/swiftwasm/uwasi/abi"
	"github.com/tetratelabs/wazero/api"
)

// monotonicResolution is the resolution reported for CLOCK_MONOTONIC,
// per spec.md §4.3 and SPEC_FULL.md §9 resolution #4.
const monotonicResolution = 5000 * time.Nanosecond

// realtimeResolution is the resolution reported for CLOCK_REALTIME.
const realtimeResolution = 1000 * time.Nanosecond

// ClockOption configures UseClock.
type ClockOption func(*clockConfig)

type clockConfig struct {
	monotonicResolution time.Duration
}

// WithMonotonicResolution overrides the resolution reported for
// CLOCK_MONOTONIC, resolving the Open Question spec.md §9 raises about
// refining the 5µs default.
func WithMonotonicResolution(d time.Duration) ClockOption {
	return func(c *clockConfig) { c.monotonicResolution = d }
}

// UseClock contributes clock_res_get and clock_time_get. Unlike the
// surveyed JS source, which reports ENOSYS for CLOCK_MONOTONIC on one path,
// UseClock exposes Go's real monotonic clock (time.Since against a fixed
// start) by default, a supplemented feature spec.md §9 explicitly invites:
// "a systems-language implementation typically has access to a real
// monotonic clock and should expose it".
func UseClock(opts ...ClockOption) uwasi.Provider {
	cfg := clockConfig{monotonicResolution: monotonicResolution}
	for _, opt := range opts {
		opt(&cfg)
	}
	start := time.Now()

	return func(_ *uwasi.Config) map[string]abi.HostFunc {
		return map[string]abi.HostFunc{
			"clock_res_get":  hostFunc("clock_res_get", clockResGet(cfg.monotonicResolution)),
			"clock_time_get": hostFunc("clock_time_get", clockTimeGet(start)),
		}
	}
}

func clockResGet(monotonicRes time.Duration) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		clockID, outPtr := abi.ClockID(uint32(p[0])), uint32(p[1])
		var res time.Duration
		switch clockID {
		case abi.ClockRealtime:
			res = realtimeResolution
		case abi.ClockMonotonic:
			res = monotonicRes
		default:
			return errnoResult(abi.ENOSYS)
		}
		if !mod.Memory().WriteUint64Le(outPtr, uint64(res.Nanoseconds())) {
			return errnoResult(abi.EFAULT)
		}
		return errnoResult(abi.ESUCCESS)
	}
}

func clockTimeGet(start time.Time) fn {
	return func(_ context.Context, mod api.Module, p []uint64) []uint64 {
		clockID, outPtr := abi.ClockID(uint32(p[0])), uint32(p[2])
		var ns int64
		switch clockID {
		case abi.ClockRealtime:
			ns = time.Now().UnixNano()
		case abi.ClockMonotonic:
			ns = time.Since(start).Nanoseconds()
		default:
			return errnoResult(abi.ENOSYS)
		}
		if !mod.Memory().WriteUint64Le(outPtr, uint64(ns)) {
			return errnoResult(abi.EFAULT)
		}
		return errnoResult(abi.ESUCCESS)
	}
}
