package abi

// ClockID identifies a clock passed to clock_res_get and clock_time_get.
type ClockID uint32

const (
	ClockRealtime ClockID = iota
	ClockMonotonic
	// ClockProcessCPUTimeID and ClockThreadCPUTimeID are accepted by the
	// closed import set but always report ENOSYS: CPU-time clocks are out
	// of scope for this module.
	ClockProcessCPUTimeID
	ClockThreadCPUTimeID
)

// FileType identifies the kind of a filesystem node.
type FileType uint8

const (
	FileTypeUnknown         FileType = 0
	FileTypeCharacterDevice FileType = 2
	FileTypeDirectory       FileType = 3
	FileTypeRegularFile     FileType = 4
)

// OpenFlags are the oflags accepted by path_open.
type OpenFlags uint16

const (
	OFlagsCreat     OpenFlags = 1 << 0
	OFlagsDirectory OpenFlags = 1 << 1
	OFlagsExcl      OpenFlags = 1 << 2
	OFlagsTrunc     OpenFlags = 1 << 3
)

func (f OpenFlags) Has(flag OpenFlags) bool { return f&flag != 0 }

// Whence values accepted by fd_seek.
type Whence uint8

const (
	WhenceSet Whence = 0
	WhenceCur Whence = 1
	WhenceEnd Whence = 2
)

// FDFlags are the fdflags reported by fd_fdstat_get. This module never sets
// any of them (no append/nonblock/dsync/rsync/sync semantics), but the type
// exists so FDStat's layout is self-describing.
type FDFlags uint16

// FD is a guest-visible file descriptor number.
type FD uint32

// FileSize is a 64 bit byte count or offset, as used throughout preview1.
type FileSize uint64

// FileDelta is a signed 64 bit seek offset.
type FileDelta int64

// Timestamp is a count of nanoseconds, either since the Unix epoch
// (CLOCK_REALTIME) or since an unspecified origin (CLOCK_MONOTONIC).
type Timestamp uint64
