package zmq

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	ErrSocketClosed      = errors.New("zmq: socket is closed")
	ErrMessageClosed     = errors.New("zmq: message is closed")
	ErrContextTerminated = errors.New("zmq: context is terminated")
)

// Errno is the closed set of failures libzmq reports through errno.
//
// Values compare with == and errors.Is. The text returned by Error comes from
// zmq_strerror.
type Errno int

// libzmq reserves a block of codes above ZMQ_HAUSNUMERO for conditions the
// platform errno space does not define.
const hausnumero = 156384712

// Errors native to libzmq.
const (
	EFSM           = Errno(hausnumero + 51)
	ENOCOMPATPROTO = Errno(hausnumero + 52)
	ETERM          = Errno(hausnumero + 53)
	EMTHREAD       = Errno(hausnumero + 54)
)

// Codes libzmq substitutes when the platform lacks the POSIX name.
var hausnumeroAliases = map[int]Errno{
	hausnumero + 1:  ENOTSUP,
	hausnumero + 2:  EPROTONOSUPPORT,
	hausnumero + 3:  ENOBUFS,
	hausnumero + 4:  ENETDOWN,
	hausnumero + 5:  EADDRINUSE,
	hausnumero + 6:  EADDRNOTAVAIL,
	hausnumero + 7:  ECONNREFUSED,
	hausnumero + 8:  EINPROGRESS,
	hausnumero + 9:  ENOTSOCK,
	hausnumero + 10: EMSGSIZE,
	hausnumero + 17: EHOSTUNREACH,
	hausnumero + 15: ENOTCONN,
}

var knownErrnos = func() map[int]Errno {
	all := []Errno{
		EACCES, EADDRINUSE, EAGAIN, EBUSY, ECONNREFUSED, EFAULT, EINTR,
		EHOSTUNREACH, EINPROGRESS, EINVAL, EMFILE, EMSGSIZE, ENAMETOOLONG,
		ENODEV, ENOENT, ENOMEM, ENOTCONN, ENOTSOCK, EPROTO, EPROTONOSUPPORT,
		ENOTSUP, ENOBUFS, ENETDOWN, EADDRNOTAVAIL,
		EFSM, ENOCOMPATPROTO, ETERM, EMTHREAD,
	}
	m := make(map[int]Errno, len(all)+len(hausnumeroAliases))
	for _, e := range all {
		m[int(e)] = e
	}
	for raw, e := range hausnumeroAliases {
		if _, ok := m[raw]; !ok {
			m[raw] = e
		}
	}
	return m
}()

// ErrnoFromRaw translates a raw errno read after a failed libzmq call.
//
// An unrecognized code panics: the binding cannot reason about a failure class
// it does not know.
func ErrnoFromRaw(raw int) Errno {
	if e, ok := knownErrnos[raw]; ok {
		return e
	}
	panic(fmt.Sprintf("zmq: unknown error [%d]: %s", raw, ffiStrerror(raw)))
}

func (e Errno) Error() string {
	return ffiStrerror(int(e))
}

// Is lets Errno match the portable fs and errors sentinels.
func (e Errno) Is(target error) bool {
	switch target {
	case fs.ErrPermission:
		return e == EACCES
	case fs.ErrNotExist:
		return e == ENOENT
	case errors.ErrUnsupported:
		return e == ENOTSUP || e == EPROTONOSUPPORT
	}
	return false
}

// Timeout reports whether a non-blocking or timed operation found nothing ready.
func (e Errno) Timeout() bool {
	return e == EAGAIN
}

// Temporary reports whether retrying the same call may succeed.
func (e Errno) Temporary() bool {
	return e == EINTR || e == EBUSY || e.Timeout()
}

func checkResult(code int) error {
	if code == 0 {
		return nil
	}
	return ErrnoFromRaw(code)
}

// NotUTF8Error is returned by RecvString when the frame is not valid UTF-8.
type NotUTF8Error struct {
	Data []byte
}

func (e *NotUTF8Error) Error() string {
	return fmt.Sprintf("zmq: frame of %d bytes is not valid UTF-8", len(e.Data))
}
