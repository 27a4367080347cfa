package zmq

import (
	"runtime"
	"unsafe"
)

// Proxy shuttles messages between frontend and backend until the context is
// terminated, which it reports as ETERM. Every message is also copied to
// capture when it is not nil.
func Proxy(frontend, backend, capture *Socket) error {
	front, back, capt, err := proxyHandles(frontend, backend, capture)
	if err != nil {
		return err
	}
	defer keepSocketsAlive(frontend, backend, capture)
	return checkResult(ffiProxy(front, back, capt))
}

// ProxySteerable is Proxy controlled through control, which accepts the
// commands PAUSE, RESUME and TERMINATE. It returns nil after TERMINATE.
func ProxySteerable(frontend, backend, capture, control *Socket) error {
	front, back, capt, err := proxyHandles(frontend, backend, capture)
	if err != nil {
		return err
	}
	ctrl, err := optionalHandle(control)
	if err != nil {
		return err
	}
	defer keepSocketsAlive(frontend, backend, capture, control)
	return checkResult(ffiProxySteerable(front, back, capt, ctrl))
}

func proxyHandles(frontend, backend, capture *Socket) (unsafe.Pointer, unsafe.Pointer, unsafe.Pointer, error) {
	front, err := frontend.getHandle()
	if err != nil {
		return nil, nil, nil, err
	}
	back, err := backend.getHandle()
	if err != nil {
		return nil, nil, nil, err
	}
	capt, err := optionalHandle(capture)
	if err != nil {
		return nil, nil, nil, err
	}
	return front, back, capt, nil
}

func optionalHandle(s *Socket) (unsafe.Pointer, error) {
	if s == nil {
		return nil, nil
	}
	return s.getHandle()
}

func keepSocketsAlive(sockets ...*Socket) {
	for _, s := range sockets {
		runtime.KeepAlive(s)
	}
}
