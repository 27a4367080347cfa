//go:build unix

package zmq

import "golang.org/x/sys/unix"

// Platform errno values used by libzmq on unix.
const (
	EACCES          = Errno(unix.EACCES)
	EADDRINUSE      = Errno(unix.EADDRINUSE)
	EAGAIN          = Errno(unix.EAGAIN)
	EBUSY           = Errno(unix.EBUSY)
	ECONNREFUSED    = Errno(unix.ECONNREFUSED)
	EFAULT          = Errno(unix.EFAULT)
	EINTR           = Errno(unix.EINTR)
	EHOSTUNREACH    = Errno(unix.EHOSTUNREACH)
	EINPROGRESS     = Errno(unix.EINPROGRESS)
	EINVAL          = Errno(unix.EINVAL)
	EMFILE          = Errno(unix.EMFILE)
	EMSGSIZE        = Errno(unix.EMSGSIZE)
	ENAMETOOLONG    = Errno(unix.ENAMETOOLONG)
	ENODEV          = Errno(unix.ENODEV)
	ENOENT          = Errno(unix.ENOENT)
	ENOMEM          = Errno(unix.ENOMEM)
	ENOTCONN        = Errno(unix.ENOTCONN)
	ENOTSOCK        = Errno(unix.ENOTSOCK)
	EPROTO          = Errno(unix.EPROTO)
	EPROTONOSUPPORT = Errno(unix.EPROTONOSUPPORT)
	ENOTSUP         = Errno(unix.ENOTSUP)
	ENOBUFS         = Errno(unix.ENOBUFS)
	ENETDOWN        = Errno(unix.ENETDOWN)
	EADDRNOTAVAIL   = Errno(unix.EADDRNOTAVAIL)
)
