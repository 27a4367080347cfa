// Command monitor attaches a monitor to a REP socket and logs its lifecycle
// events while a REQ client connects, talks and goes away.
package main

import (
	"errors"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

const monitorEndpoint = "inproc://monitor.rep"

var endpoint string

func main() {
	AddFlags(pflag.CommandLine)
	pflag.Parse()
	if err := run(); err != nil {
		logrus.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	ctx, err := zmq.NewContext()
	if err != nil {
		return pkgerrors.Wrap(err, "create context")
	}

	server, err := ctx.Socket(zmq.REP)
	if err != nil {
		return pkgerrors.Wrap(err, "create server")
	}
	if err := server.Monitor(monitorEndpoint, zmq.EventAll); err != nil {
		return pkgerrors.Wrap(err, "start monitor")
	}

	var g errgroup.Group
	g.Go(func() error { return watch(ctx) })

	if err := exchange(ctx, server); err != nil {
		return err
	}

	if err := server.Monitor("", 0); err != nil {
		return pkgerrors.Wrap(err, "stop monitor")
	}
	server.Close()
	if err := g.Wait(); err != nil {
		return err
	}
	return pkgerrors.Wrap(ctx.Destroy(), "destroy context")
}

func exchange(ctx *zmq.Context, server *zmq.Socket) error {
	if err := server.Bind(endpoint); err != nil {
		return pkgerrors.Wrapf(err, "bind %s", endpoint)
	}
	address, err := server.LastEndpoint()
	if err != nil {
		return pkgerrors.Wrap(err, "read endpoint")
	}

	client, err := ctx.Socket(zmq.REQ)
	if err != nil {
		return pkgerrors.Wrap(err, "create client")
	}
	defer client.Close()
	if err := client.SetLinger(0); err != nil {
		return pkgerrors.Wrap(err, "set linger")
	}
	if err := client.Connect(address); err != nil {
		return pkgerrors.Wrapf(err, "connect %s", address)
	}

	if err := client.SendString("ping", 0); err != nil {
		return pkgerrors.Wrap(err, "send ping")
	}
	if _, err := server.RecvString(0); err != nil {
		return pkgerrors.Wrap(err, "receive ping")
	}
	if err := server.SendString("pong", 0); err != nil {
		return pkgerrors.Wrap(err, "send pong")
	}
	_, err = client.RecvString(0)
	return pkgerrors.Wrap(err, "receive pong")
}

// watch logs events until the monitor reports it has stopped.
func watch(ctx *zmq.Context) error {
	sock, err := ctx.Socket(zmq.PAIR)
	if err != nil {
		return pkgerrors.Wrap(err, "create monitor socket")
	}
	defer sock.Close()
	if err := sock.Connect(monitorEndpoint); err != nil {
		return pkgerrors.Wrapf(err, "connect %s", monitorEndpoint)
	}

	for {
		event, err := zmq.RecvMonitorEvent(sock, 0)
		if errors.Is(err, zmq.ETERM) {
			return nil
		}
		if err != nil {
			return pkgerrors.Wrap(err, "receive event")
		}
		logrus.WithFields(logrus.Fields{
			"endpoint": event.Endpoint,
			"value":    event.Value,
		}).Info(event.Event)
		if event.Event == zmq.EventMonitorStopped {
			return nil
		}
	}
}

// AddFlags -
func AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&endpoint, "bind", "tcp://127.0.0.1:*", "endpoint the monitored server binds")
}
