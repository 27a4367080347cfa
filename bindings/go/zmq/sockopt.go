package zmq

import (
	"bytes"
	"runtime"
	"unsafe"
)

// Socket option codes from zmq.h.
const (
	optAffinity               = 4
	optIdentity               = 5
	optSubscribe              = 6
	optUnsubscribe            = 7
	optRate                   = 8
	optRecoveryIvl            = 9
	optSndBuf                 = 11
	optRcvBuf                 = 12
	optRcvMore                = 13
	optFD                     = 14
	optEvents                 = 15
	optType                   = 16
	optLinger                 = 17
	optReconnectIvl           = 18
	optBacklog                = 19
	optReconnectIvlMax        = 21
	optMaxMsgSize             = 22
	optSndHWM                 = 23
	optRcvHWM                 = 24
	optMulticastHops          = 25
	optRcvTimeo               = 27
	optSndTimeo               = 28
	optLastEndpoint           = 32
	optRouterMandatory        = 33
	optTCPKeepalive           = 34
	optTCPKeepaliveCnt        = 35
	optTCPKeepaliveIdle       = 36
	optTCPKeepaliveIntvl      = 37
	optImmediate              = 39
	optXPubVerbose            = 40
	optIPv6                   = 42
	optMechanism              = 43
	optPlainServer            = 44
	optPlainUsername          = 45
	optPlainPassword          = 46
	optCurveServer            = 47
	optCurvePublicKey         = 48
	optCurveSecretKey         = 49
	optCurveServerKey         = 50
	optProbeRouter            = 51
	optReqCorrelate           = 52
	optReqRelaxed             = 53
	optConflate               = 54
	optZapDomain              = 55
	optRouterHandover         = 56
	optTOS                    = 57
	optGSSAPIServer           = 62
	optGSSAPIPrincipal        = 63
	optGSSAPIServicePrincipal = 64
	optGSSAPIPlaintext        = 65
	optHandshakeIvl           = 66
	optSocksProxy             = 68
	optXPubNoDrop             = 69
	optXPubWelcomeMsg         = 72
	optStreamNotify           = 73
	optInvertMatching         = 74
	optHeartbeatIvl           = 75
	optHeartbeatTTL           = 76
	optHeartbeatTimeout       = 77
	optConnectTimeout         = 79
)

// Read buffer sizes. Identities are at most 255 bytes, curve keys are read in
// their 32 byte binary form and text options carry a trailing NUL.
const (
	identityBufSize = 255
	curveKeyBufSize = 32
	stringBufSize   = 256
)

type numericOption interface {
	int32 | int64 | uint64
}

func getNumber[T numericOption](s *Socket, option int) (T, error) {
	var value T
	handle, err := s.getHandle()
	if err != nil {
		return value, err
	}
	defer runtime.KeepAlive(s)
	size := unsafe.Sizeof(value)
	if err := checkResult(ffiGetsockopt(handle, option, unsafe.Pointer(&value), &size)); err != nil {
		return value, err
	}
	return value, nil
}

func setNumber[T numericOption](s *Socket, option int, value T) error {
	handle, err := s.getHandle()
	if err != nil {
		return err
	}
	defer runtime.KeepAlive(s)
	return checkResult(ffiSetsockopt(handle, option, unsafe.Pointer(&value), unsafe.Sizeof(value)))
}

func getInt32(s *Socket, option int) (int32, error) { return getNumber[int32](s, option) }
func getInt64(s *Socket, option int) (int64, error) { return getNumber[int64](s, option) }
func getUint64(s *Socket, option int) (uint64, error) { return getNumber[uint64](s, option) }

func setInt32(s *Socket, option int, v int32) error { return setNumber(s, option, v) }
func setInt64(s *Socket, option int, v int64) error { return setNumber(s, option, v) }
func setUint64(s *Socket, option int, v uint64) error { return setNumber(s, option, v) }

func getBool(s *Socket, option int) (bool, error) {
	v, err := getInt32(s, option)
	return v == 1, err
}

func setBool(s *Socket, option int, v bool) error {
	return setInt32(s, option, int32(boolToInt(v)))
}

func getBytes(s *Socket, option int, bufSize int) ([]byte, error) {
	handle, err := s.getHandle()
	if err != nil {
		return nil, err
	}
	defer runtime.KeepAlive(s)
	buf := make([]byte, bufSize)
	size := uintptr(bufSize)
	if err := checkResult(ffiGetsockopt(handle, option, unsafe.Pointer(&buf[0]), &size)); err != nil {
		return nil, err
	}
	return buf[:size], nil
}

func setBytes(s *Socket, option int, v []byte) error {
	handle, err := s.getHandle()
	if err != nil {
		return err
	}
	defer runtime.KeepAlive(s)
	var ptr unsafe.Pointer
	if len(v) > 0 {
		ptr = unsafe.Pointer(&v[0])
	}
	return checkResult(ffiSetsockopt(handle, option, ptr, uintptr(len(v))))
}

func getString(s *Socket, option int) (string, error) {
	b, err := getBytes(s, option, stringBufSize)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b), nil
}

func setString(s *Socket, option int, v string) error {
	return setBytes(s, option, []byte(v))
}

// setOptionalString clears the option when v is nil.
func setOptionalString(s *Socket, option int, v *string) error {
	if v == nil {
		return setBytes(s, option, nil)
	}
	return setString(s, option, *v)
}

func (s *Socket) Affinity() (uint64, error) { return getUint64(s, optAffinity) }
func (s *Socket) SetAffinity(v uint64) error { return setUint64(s, optAffinity, v) }

// Identity returns the routing id of the socket, at most 255 bytes.
func (s *Socket) Identity() ([]byte, error) { return getBytes(s, optIdentity, identityBufSize) }

func (s *Socket) SetIdentity(v []byte) error { return setBytes(s, optIdentity, v) }

// Subscribe adds a prefix filter to a SUB socket. An empty prefix matches all.
func (s *Socket) Subscribe(prefix []byte) error { return setBytes(s, optSubscribe, prefix) }

func (s *Socket) Unsubscribe(prefix []byte) error { return setBytes(s, optUnsubscribe, prefix) }

func (s *Socket) Rate() (int32, error) { return getInt32(s, optRate) }
func (s *Socket) SetRate(v int32) error { return setInt32(s, optRate, v) }
func (s *Socket) RecoveryIvl() (int32, error) { return getInt32(s, optRecoveryIvl) }
func (s *Socket) SetRecoveryIvl(v int32) error { return setInt32(s, optRecoveryIvl, v) }
func (s *Socket) SndBuf() (int32, error) { return getInt32(s, optSndBuf) }
func (s *Socket) SetSndBuf(v int32) error { return setInt32(s, optSndBuf, v) }
func (s *Socket) RcvBuf() (int32, error) { return getInt32(s, optRcvBuf) }
func (s *Socket) SetRcvBuf(v int32) error { return setInt32(s, optRcvBuf, v) }

// RcvMore reports whether the last frame received has more frames following.
func (s *Socket) RcvMore() (bool, error) { return getBool(s, optRcvMore) }

// FD returns the descriptor libzmq signals when the socket's events change.
// It is edge triggered; read Events after it becomes readable.
func (s *Socket) FD() (int, error) {
	handle, err := s.getHandle()
	if err != nil {
		return 0, err
	}
	defer runtime.KeepAlive(s)
	var fd nativeFD
	size := unsafe.Sizeof(fd)
	if err := checkResult(ffiGetsockopt(handle, optFD, unsafe.Pointer(&fd), &size)); err != nil {
		return 0, err
	}
	return int(fd), nil
}

// Events returns the socket's current readiness.
func (s *Socket) Events() (PollEvents, error) {
	v, err := getInt32(s, optEvents)
	return PollEvents(v), err
}

func (s *Socket) Linger() (int32, error) { return getInt32(s, optLinger) }
func (s *Socket) SetLinger(v int32) error { return setInt32(s, optLinger, v) }
func (s *Socket) ReconnectIvl() (int32, error) { return getInt32(s, optReconnectIvl) }
func (s *Socket) SetReconnectIvl(v int32) error { return setInt32(s, optReconnectIvl, v) }
func (s *Socket) ReconnectIvlMax() (int32, error) { return getInt32(s, optReconnectIvlMax) }
func (s *Socket) SetReconnectIvlMax(v int32) error {
	return setInt32(s, optReconnectIvlMax, v)
}
func (s *Socket) Backlog() (int32, error) { return getInt32(s, optBacklog) }
func (s *Socket) SetBacklog(v int32) error { return setInt32(s, optBacklog, v) }
func (s *Socket) MaxMsgSize() (int64, error) { return getInt64(s, optMaxMsgSize) }
func (s *Socket) SetMaxMsgSize(v int64) error { return setInt64(s, optMaxMsgSize, v) }
func (s *Socket) SndHWM() (int32, error) { return getInt32(s, optSndHWM) }
func (s *Socket) SetSndHWM(v int32) error { return setInt32(s, optSndHWM, v) }
func (s *Socket) RcvHWM() (int32, error) { return getInt32(s, optRcvHWM) }
func (s *Socket) SetRcvHWM(v int32) error { return setInt32(s, optRcvHWM, v) }
func (s *Socket) MulticastHops() (int32, error) { return getInt32(s, optMulticastHops) }
func (s *Socket) SetMulticastHops(v int32) error {
	return setInt32(s, optMulticastHops, v)
}

// RcvTimeo is the receive timeout in milliseconds; -1 blocks forever.
func (s *Socket) RcvTimeo() (int32, error) { return getInt32(s, optRcvTimeo) }
func (s *Socket) SetRcvTimeo(v int32) error { return setInt32(s, optRcvTimeo, v) }
func (s *Socket) SndTimeo() (int32, error) { return getInt32(s, optSndTimeo) }
func (s *Socket) SetSndTimeo(v int32) error { return setInt32(s, optSndTimeo, v) }

// LastEndpoint returns the endpoint most recently bound or connected, with any
// wildcard port resolved.
func (s *Socket) LastEndpoint() (string, error) { return getString(s, optLastEndpoint) }

func (s *Socket) SetRouterMandatory(v bool) error { return setBool(s, optRouterMandatory, v) }

// TCPKeepalive is -1 for the OS default, 0 to disable and 1 to enable.
func (s *Socket) TCPKeepalive() (int32, error) { return getInt32(s, optTCPKeepalive) }
func (s *Socket) SetTCPKeepalive(v int32) error { return setInt32(s, optTCPKeepalive, v) }
func (s *Socket) TCPKeepaliveCnt() (int32, error) {
	return getInt32(s, optTCPKeepaliveCnt)
}
func (s *Socket) SetTCPKeepaliveCnt(v int32) error { return setInt32(s, optTCPKeepaliveCnt, v) }
func (s *Socket) TCPKeepaliveIdle() (int32, error) {
	return getInt32(s, optTCPKeepaliveIdle)
}
func (s *Socket) SetTCPKeepaliveIdle(v int32) error {
	return setInt32(s, optTCPKeepaliveIdle, v)
}
func (s *Socket) TCPKeepaliveIntvl() (int32, error) {
	return getInt32(s, optTCPKeepaliveIntvl)
}
func (s *Socket) SetTCPKeepaliveIntvl(v int32) error {
	return setInt32(s, optTCPKeepaliveIntvl, v)
}

func (s *Socket) Immediate() (bool, error) { return getBool(s, optImmediate) }
func (s *Socket) SetImmediate(v bool) error { return setBool(s, optImmediate, v) }

// SetXPubVerbose makes an XPUB socket pass every subscription upstream, not
// only new ones.
func (s *Socket) SetXPubVerbose(v bool) error { return setBool(s, optXPubVerbose, v) }

func (s *Socket) IPv6() (bool, error) { return getBool(s, optIPv6) }
func (s *Socket) SetIPv6(v bool) error { return setBool(s, optIPv6, v) }

// Mechanism reports the security mechanism currently configured.
func (s *Socket) Mechanism() (Mechanism, error) {
	v, err := getInt32(s, optMechanism)
	return Mechanism(v), err
}

func (s *Socket) PlainServer() (bool, error) { return getBool(s, optPlainServer) }
func (s *Socket) SetPlainServer(v bool) error { return setBool(s, optPlainServer, v) }

func (s *Socket) PlainUsername() (string, error) { return getString(s, optPlainUsername) }

// SetPlainUsername switches the socket to the PLAIN mechanism. A nil username
// reverts it to NULL.
func (s *Socket) SetPlainUsername(v *string) error {
	return setOptionalString(s, optPlainUsername, v)
}

func (s *Socket) PlainPassword() (string, error) { return getString(s, optPlainPassword) }

func (s *Socket) SetPlainPassword(v *string) error {
	return setOptionalString(s, optPlainPassword, v)
}

func (s *Socket) CurveServer() (bool, error) { return getBool(s, optCurveServer) }
func (s *Socket) SetCurveServer(v bool) error { return setBool(s, optCurveServer, v) }

// Curve keys are read back in binary form. Setters accept either the 32 byte
// binary key or its 40 character Z85 text.
func (s *Socket) CurvePublicKey() ([]byte, error) {
	return getBytes(s, optCurvePublicKey, curveKeyBufSize)
}
func (s *Socket) SetCurvePublicKey(key []byte) error { return setBytes(s, optCurvePublicKey, key) }
func (s *Socket) CurveSecretKey() ([]byte, error) {
	return getBytes(s, optCurveSecretKey, curveKeyBufSize)
}
func (s *Socket) SetCurveSecretKey(key []byte) error { return setBytes(s, optCurveSecretKey, key) }
func (s *Socket) CurveServerKey() ([]byte, error) {
	return getBytes(s, optCurveServerKey, curveKeyBufSize)
}
func (s *Socket) SetCurveServerKey(key []byte) error { return setBytes(s, optCurveServerKey, key) }

func (s *Socket) SetProbeRouter(v bool) error { return setBool(s, optProbeRouter, v) }
func (s *Socket) SetReqCorrelate(v bool) error { return setBool(s, optReqCorrelate, v) }
func (s *Socket) SetReqRelaxed(v bool) error { return setBool(s, optReqRelaxed, v) }
func (s *Socket) Conflate() (bool, error) { return getBool(s, optConflate) }
func (s *Socket) SetConflate(v bool) error { return setBool(s, optConflate, v) }
func (s *Socket) ZapDomain() (string, error) { return getString(s, optZapDomain) }
func (s *Socket) SetZapDomain(v string) error { return setString(s, optZapDomain, v) }
func (s *Socket) SetRouterHandover(v bool) error { return setBool(s, optRouterHandover, v) }
func (s *Socket) TOS() (int32, error) { return getInt32(s, optTOS) }
func (s *Socket) SetTOS(v int32) error { return setInt32(s, optTOS, v) }

func (s *Socket) GSSAPIServer() (bool, error) { return getBool(s, optGSSAPIServer) }
func (s *Socket) SetGSSAPIServer(v bool) error { return setBool(s, optGSSAPIServer, v) }
func (s *Socket) GSSAPIPrincipal() (string, error) {
	return getString(s, optGSSAPIPrincipal)
}
func (s *Socket) SetGSSAPIPrincipal(v string) error {
	return setString(s, optGSSAPIPrincipal, v)
}
func (s *Socket) GSSAPIServicePrincipal() (string, error) {
	return getString(s, optGSSAPIServicePrincipal)
}
func (s *Socket) SetGSSAPIServicePrincipal(v string) error {
	return setString(s, optGSSAPIServicePrincipal, v)
}
func (s *Socket) GSSAPIPlaintext() (bool, error) { return getBool(s, optGSSAPIPlaintext) }
func (s *Socket) SetGSSAPIPlaintext(v bool) error { return setBool(s, optGSSAPIPlaintext, v) }

func (s *Socket) HandshakeIvl() (int32, error) { return getInt32(s, optHandshakeIvl) }
func (s *Socket) SetHandshakeIvl(v int32) error { return setInt32(s, optHandshakeIvl, v) }

func (s *Socket) SocksProxy() (string, error) { return getString(s, optSocksProxy) }

// SetSocksProxy routes tcp connections through a SOCKS5 proxy. A nil address
// disables the proxy.
func (s *Socket) SetSocksProxy(v *string) error { return setOptionalString(s, optSocksProxy, v) }

func (s *Socket) SetXPubNoDrop(v bool) error { return setBool(s, optXPubNoDrop, v) }

// SetXPubWelcomeMsg sets the message an XPUB socket sends each new subscriber.
// A nil message disables it.
func (s *Socket) SetXPubWelcomeMsg(v *string) error {
	return setOptionalString(s, optXPubWelcomeMsg, v)
}

func (s *Socket) SetStreamNotify(v bool) error { return setBool(s, optStreamNotify, v) }

func (s *Socket) InvertMatching() (bool, error) { return getBool(s, optInvertMatching) }
func (s *Socket) SetInvertMatching(v bool) error { return setBool(s, optInvertMatching, v) }

func (s *Socket) HeartbeatIvl() (int32, error) { return getInt32(s, optHeartbeatIvl) }
func (s *Socket) SetHeartbeatIvl(v int32) error { return setInt32(s, optHeartbeatIvl, v) }
func (s *Socket) HeartbeatTTL() (int32, error) { return getInt32(s, optHeartbeatTTL) }
func (s *Socket) SetHeartbeatTTL(v int32) error { return setInt32(s, optHeartbeatTTL, v) }
func (s *Socket) HeartbeatTimeout() (int32, error) { return getInt32(s, optHeartbeatTimeout) }
func (s *Socket) SetHeartbeatTimeout(v int32) error { return setInt32(s, optHeartbeatTimeout, v) }
func (s *Socket) ConnectTimeout() (int32, error) { return getInt32(s, optConnectTimeout) }
func (s *Socket) SetConnectTimeout(v int32) error { return setInt32(s, optConnectTimeout, v) }
