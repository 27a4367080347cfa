package zmq

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"unsafe"
)

// Context option codes from zmq.h.
const (
	ctxIOThreads  = 1
	ctxMaxSockets = 2
	ctxMaxMsgSz   = 5
	ctxIPv6       = 42
	ctxBlocky     = 70
)

// ContextOption configures a Context at creation.
type ContextOption func(*contextConfig)

type contextSetting struct {
	option int
	value  int
}

type contextConfig struct {
	settings []contextSetting
}

func (c *contextConfig) set(option, value int) {
	c.settings = append(c.settings, contextSetting{option: option, value: value})
}

// WithIOThreads sets the size of the I/O thread pool.
func WithIOThreads(n int) ContextOption {
	return func(c *contextConfig) { c.set(ctxIOThreads, n) }
}

// WithMaxSockets caps the number of sockets the context will create.
func WithMaxSockets(n int) ContextOption {
	return func(c *contextConfig) { c.set(ctxMaxSockets, n) }
}

// WithMaxMessageSize caps the size of inbound messages for all sockets.
func WithMaxMessageSize(n int) ContextOption {
	return func(c *contextConfig) { c.set(ctxMaxMsgSz, n) }
}

// WithIPv6 enables IPv6 on sockets created by the context.
func WithIPv6(enabled bool) ContextOption {
	return func(c *contextConfig) { c.set(ctxIPv6, boolToInt(enabled)) }
}

// WithBlocky selects whether Destroy waits for unsent messages by default.
func WithBlocky(enabled bool) ContextOption {
	return func(c *contextConfig) { c.set(ctxBlocky, boolToInt(enabled)) }
}

// Context owns a libzmq engine. Sockets are created from it.
//
// A Context is safe for concurrent use. Destroy blocks until every socket
// created from the context has been closed.
type Context struct {
	mu         sync.RWMutex
	handle     unsafe.Pointer
	terminated bool
}

// NewContext creates a context and applies opts in order.
func NewContext(opts ...ContextOption) (*Context, error) {
	cfg := &contextConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	handle, code := ffiCtxNew()
	if err := checkResult(code); err != nil {
		return nil, err
	}
	for _, s := range cfg.settings {
		if err := checkResult(ffiCtxSet(handle, s.option, s.value)); err != nil {
			_ = ffiCtxTerm(handle)
			return nil, err
		}
	}

	ctx := &Context{handle: handle}
	live.contexts.Add(1)
	runtime.SetFinalizer(ctx, finalizeContext)
	return ctx, nil
}

func finalizeContext(c *Context) {
	log().Debug("context dropped without Destroy")
	for {
		err := c.Destroy()
		if err == nil {
			return
		}
		if errors.Is(err, EINTR) {
			continue
		}
		panic(fmt.Sprintf("zmq: failed to terminate dropped context: %v", err))
	}
}

// Socket creates a socket of type t.
func (c *Context) Socket(t SocketType) (*Socket, error) {
	if c == nil {
		return nil, ErrContextTerminated
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.terminated {
		return nil, ErrContextTerminated
	}

	handle, code := ffiSocket(c.handle, int(t))
	if err := checkResult(code); err != nil {
		return nil, err
	}
	return newSocket(c, handle), nil
}

// Destroy terminates the context. It blocks until all sockets are closed and
// their linger periods have elapsed.
//
// EINTR means the call was interrupted and should be retried. Calling Destroy
// on a context that is already terminated returns EFAULT.
func (c *Context) Destroy() error {
	if c == nil {
		return EFAULT
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.terminated {
		return EFAULT
	}

	if err := checkResult(ffiCtxTerm(c.handle)); err != nil {
		return err
	}
	c.handle = nil
	c.terminated = true
	live.contexts.Add(-1)
	runtime.SetFinalizer(c, nil)
	return nil
}

func (c *Context) get(option int) (int, error) {
	if c == nil {
		return 0, ErrContextTerminated
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.terminated {
		return 0, ErrContextTerminated
	}

	value, code := ffiCtxGet(c.handle, option)
	if err := checkResult(code); err != nil {
		return 0, err
	}
	return value, nil
}

func (c *Context) set(option, value int) error {
	if c == nil {
		return ErrContextTerminated
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.terminated {
		return ErrContextTerminated
	}
	return checkResult(ffiCtxSet(c.handle, option, value))
}

// IOThreads returns the size of the I/O thread pool.
func (c *Context) IOThreads() (int, error) { return c.get(ctxIOThreads) }

// SetIOThreads resizes the I/O thread pool. It only affects sockets created
// afterwards; a negative value is rejected with EINVAL.
func (c *Context) SetIOThreads(n int) error { return c.set(ctxIOThreads, n) }

func (c *Context) MaxSockets() (int, error) { return c.get(ctxMaxSockets) }

func (c *Context) SetMaxSockets(n int) error { return c.set(ctxMaxSockets, n) }

func (c *Context) MaxMessageSize() (int, error) { return c.get(ctxMaxMsgSz) }

func (c *Context) SetMaxMessageSize(n int) error { return c.set(ctxMaxMsgSz, n) }

func (c *Context) IPv6() (bool, error) {
	v, err := c.get(ctxIPv6)
	return v != 0, err
}

func (c *Context) SetIPv6(enabled bool) error { return c.set(ctxIPv6, boolToInt(enabled)) }

func (c *Context) Blocky() (bool, error) {
	v, err := c.get(ctxBlocky)
	return v != 0, err
}

func (c *Context) SetBlocky(enabled bool) error { return c.set(ctxBlocky, boolToInt(enabled)) }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
