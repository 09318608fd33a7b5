package abi

import "fmt"

// Errno is the error code returned by every WASI preview1 import function.
//
// The numeric values match the preview1 specification exactly; guest code
// linked against a libc port depends on this ordering.
type Errno uint32

const (
	// ESUCCESS indicates that no error occurred.
	ESUCCESS Errno = iota
	E2BIG
	EACCES
	EADDRINUSE
	EADDRNOTAVAIL
	EAFNOSUPPORT
	EAGAIN
	EALREADY
	// EBADF means bad file descriptor.
	EBADF
	EBADMSG
	EBUSY
	ECANCELED
	ECHILD
	ECONNABORTED
	ECONNREFUSED
	ECONNRESET
	EDEADLK
	EDESTADDRREQ
	EDOM
	EDQUOT
	// EEXIST means the file already exists.
	EEXIST
	EFAULT
	EFBIG
	EHOSTUNREACH
	EIDRM
	EILSEQ
	EINPROGRESS
	EINTR
	// EINVAL means an argument was invalid.
	EINVAL
	EIO
	EISCONN
	// EISDIR means the operation is not valid on a directory.
	EISDIR
	ELOOP
	EMFILE
	EMLINK
	EMSGSIZE
	EMULTIHOP
	ENAMETOOLONG
	ENETDOWN
	ENETRESET
	ENETUNREACH
	ENFILE
	ENOBUFS
	ENODEV
	// ENOENT means no such file or directory.
	ENOENT
	ENOEXEC
	ENOLCK
	ENOLINK
	ENOMEM
	ENOMSG
	ENOPROTOOPT
	ENOSPC
	// ENOSYS means the function is not implemented.
	ENOSYS
	ENOTCONN
	// ENOTDIR means the path component is not a directory.
	ENOTDIR
	ENOTEMPTY
	ENOTRECOVERABLE
	ENOTSOCK
	ENOTSUP
	ENOTTY
	ENXIO
	EOVERFLOW
	EOWNERDEAD
	EPERM
	EPIPE
	EPROTO
	EPROTONOSUPPORT
	EPROTOTYPE
	ERANGE
	EROFS
	ESPIPE
	ESRCH
	ESTALE
	ETIMEDOUT
	ETXTBSY
	EXDEV
	// ENOTCAPABLE means capabilities are insufficient. Always unused by this
	// module since rights enforcement is out of scope.
	ENOTCAPABLE
)

var errnoNames = [...]string{
	ESUCCESS: "ESUCCESS", E2BIG: "E2BIG", EACCES: "EACCES",
	EADDRINUSE: "EADDRINUSE", EADDRNOTAVAIL: "EADDRNOTAVAIL",
	EAFNOSUPPORT: "EAFNOSUPPORT", EAGAIN: "EAGAIN", EALREADY: "EALREADY",
	EBADF: "EBADF", EBADMSG: "EBADMSG", EBUSY: "EBUSY",
	ECANCELED: "ECANCELED", ECHILD: "ECHILD", ECONNABORTED: "ECONNABORTED",
	ECONNREFUSED: "ECONNREFUSED", ECONNRESET: "ECONNRESET", EDEADLK: "EDEADLK",
	EDESTADDRREQ: "EDESTADDRREQ", EDOM: "EDOM", EDQUOT: "EDQUOT",
	EEXIST: "EEXIST", EFAULT: "EFAULT", EFBIG: "EFBIG",
	EHOSTUNREACH: "EHOSTUNREACH", EIDRM: "EIDRM", EILSEQ: "EILSEQ",
	EINPROGRESS: "EINPROGRESS", EINTR: "EINTR", EINVAL: "EINVAL",
	EIO: "EIO", EISCONN: "EISCONN", EISDIR: "EISDIR", ELOOP: "ELOOP",
	EMFILE: "EMFILE", EMLINK: "EMLINK", EMSGSIZE: "EMSGSIZE",
	EMULTIHOP: "EMULTIHOP", ENAMETOOLONG: "ENAMETOOLONG",
	ENETDOWN: "ENETDOWN", ENETRESET: "ENETRESET", ENETUNREACH: "ENETUNREACH",
	ENFILE: "ENFILE", ENOBUFS: "ENOBUFS", ENODEV: "ENODEV",
	ENOENT: "ENOENT", ENOEXEC: "ENOEXEC", ENOLCK: "ENOLCK",
	ENOLINK: "ENOLINK", ENOMEM: "ENOMEM", ENOMSG: "ENOMSG",
	ENOPROTOOPT: "ENOPROTOOPT", ENOSPC: "ENOSPC", ENOSYS: "ENOSYS",
	ENOTCONN: "ENOTCONN", ENOTDIR: "ENOTDIR", ENOTEMPTY: "ENOTEMPTY",
	ENOTRECOVERABLE: "ENOTRECOVERABLE", ENOTSOCK: "ENOTSOCK",
	ENOTSUP: "ENOTSUP", ENOTTY: "ENOTTY", ENXIO: "ENXIO",
	EOVERFLOW: "EOVERFLOW", EOWNERDEAD: "EOWNERDEAD", EPERM: "EPERM",
	EPIPE: "EPIPE", EPROTO: "EPROTO", EPROTONOSUPPORT: "EPROTONOSUPPORT",
	EPROTOTYPE: "EPROTOTYPE", ERANGE: "ERANGE", EROFS: "EROFS",
	ESPIPE: "ESPIPE", ESRCH: "ESRCH", ESTALE: "ESTALE",
	ETIMEDOUT: "ETIMEDOUT", ETXTBSY: "ETXTBSY", EXDEV: "EXDEV",
	ENOTCAPABLE: "ENOTCAPABLE",
}

// Name returns the symbolic name of the errno, e.g. "EBADF".
func (e Errno) Name() string {
	if int(e) < len(errnoNames) && errnoNames[e] != "" {
		return errnoNames[e]
	}
	return fmt.Sprintf("Errno(%d)", uint32(e))
}

func (e Errno) String() string { return e.Name() }
