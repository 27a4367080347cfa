package main

import (
	"bytes"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

// LineHandler receives every complete line a peer sends.
type LineHandler func(peer string, line []byte)

// LogServer accepts raw TCP clients on a STREAM socket and splits what they
// send into lines. It runs as a suture service.
type LogServer struct {
	ctx      *zmq.Context
	endpoint string
	interval time.Duration
	handle   LineHandler
	log      *logrus.Entry

	stop    chan struct{}
	bound   chan string
	pending map[string][]byte
}

// NewLogServer creates a server that binds endpoint when served.
func NewLogServer(ctx *zmq.Context, endpoint string, handle LineHandler, log *logrus.Entry) *LogServer {
	return &LogServer{
		ctx:      ctx,
		endpoint: endpoint,
		interval: 200 * time.Millisecond,
		handle:   handle,
		log:      log,
		stop:     make(chan struct{}),
		bound:    make(chan string, 1),
	}
}

// Bound yields the resolved endpoint each time the server binds.
func (s *LogServer) Bound() <-chan string {
	return s.bound
}

// Serve runs until Stop is called. Errors are logged and returned to the
// supervisor, which restarts the service.
func (s *LogServer) Serve() {
	if err := s.serve(); err != nil {
		s.log.WithError(err).Error("log server failed")
	}
}

// Stop ends Serve.
func (s *LogServer) Stop() {
	close(s.stop)
	s.log.Info("log server stop")
}

func (s *LogServer) serve() error {
	sock, err := s.ctx.Socket(zmq.STREAM)
	if err != nil {
		return errors.Wrap(err, "create stream socket")
	}
	defer sock.Close()
	if err := sock.SetLinger(0); err != nil {
		return errors.Wrap(err, "set linger")
	}
	if err := sock.Bind(s.endpoint); err != nil {
		return errors.Wrapf(err, "bind %s", s.endpoint)
	}
	address, err := sock.LastEndpoint()
	if err != nil {
		return errors.Wrap(err, "read endpoint")
	}
	s.log.Infof("log server listen %s", address)
	select {
	case s.bound <- address:
	default:
	}

	s.pending = make(map[string][]byte)
	timeout := s.interval.Milliseconds()
	for {
		select {
		case <-s.stop:
			s.flushAll()
			return nil
		default:
		}

		n, err := sock.Poll(zmq.POLLIN, timeout)
		if err != nil {
			return errors.Wrap(err, "poll")
		}
		if n == 0 {
			continue
		}
		if err := s.receive(sock); err != nil {
			return err
		}
	}
}

// receive handles one [routing id, data] pair. An empty data frame announces a
// new connection the first time and a disconnect the second.
func (s *LogServer) receive(sock *zmq.Socket) error {
	frames, err := sock.RecvMultipart(zmq.DONTWAIT)
	if errors.Is(err, zmq.EAGAIN) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "receive")
	}
	if len(frames) != 2 {
		return errors.Errorf("stream socket delivered %d frames", len(frames))
	}
	peer, data := string(frames[0]), frames[1]

	buf, known := s.pending[peer]
	if len(data) == 0 {
		if known {
			s.log.WithField("peer", peer).Debug("log client closed")
			s.flush(peer, buf)
			delete(s.pending, peer)
		} else {
			s.log.WithField("peer", peer).Debug("log client connect")
			s.pending[peer] = nil
		}
		return nil
	}

	buf = append(buf, data...)
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		s.handle(peer, bytes.TrimSuffix(buf[:i], []byte{'\r'}))
		buf = buf[i+1:]
	}
	s.pending[peer] = append([]byte(nil), buf...)
	return nil
}

func (s *LogServer) flush(peer string, buf []byte) {
	if len(buf) > 0 {
		s.handle(peer, buf)
	}
}

func (s *LogServer) flushAll() {
	for peer, buf := range s.pending {
		s.flush(peer, buf)
	}
	clear(s.pending)
}
