//go:build !unix

package zmq

// The C runtime defines only the classic errno names; libzmq supplies the
// socket-level ones relative to ZMQ_HAUSNUMERO.
const (
	EACCES       = Errno(13)
	EAGAIN       = Errno(11)
	EBUSY        = Errno(16)
	EFAULT       = Errno(14)
	EINTR        = Errno(4)
	EINVAL       = Errno(22)
	EMFILE       = Errno(24)
	ENAMETOOLONG = Errno(38)
	ENODEV       = Errno(19)
	ENOENT       = Errno(2)
	ENOMEM       = Errno(12)
	EPROTO       = Errno(134)

	ENOTSUP         = Errno(hausnumero + 1)
	EPROTONOSUPPORT = Errno(hausnumero + 2)
	ENOBUFS         = Errno(hausnumero + 3)
	ENETDOWN        = Errno(hausnumero + 4)
	EADDRINUSE      = Errno(hausnumero + 5)
	EADDRNOTAVAIL   = Errno(hausnumero + 6)
	ECONNREFUSED    = Errno(hausnumero + 7)
	EINPROGRESS     = Errno(hausnumero + 8)
	ENOTSOCK        = Errno(hausnumero + 9)
	EMSGSIZE        = Errno(hausnumero + 10)
	ENOTCONN        = Errno(hausnumero + 15)
	EHOSTUNREACH    = Errno(hausnumero + 17)
)
