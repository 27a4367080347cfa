// Command taskvent pushes a batch of tasks to taskwork workers and signals the
// start of the batch to tasksink.
package main

import (
	"bufio"
	"math/rand"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

var bindEndpoint string
var sinkEndpoint string
var tasks int

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
		return errors.Wrap(err, "create context")
	}
	defer ctx.Destroy()

	sender, err := ctx.Socket(zmq.PUSH)
	if err != nil {
		return errors.Wrap(err, "create sender")
	}
	defer sender.Close()
	if err := sender.Bind(bindEndpoint); err != nil {
		return errors.Wrapf(err, "bind %s", bindEndpoint)
	}

	sink, err := ctx.Socket(zmq.PUSH)
	if err != nil {
		return errors.Wrap(err, "create sink socket")
	}
	defer sink.Close()
	if err := sink.Connect(sinkEndpoint); err != nil {
		return errors.Wrapf(err, "connect %s", sinkEndpoint)
	}

	logrus.Info("Press Enter when the workers are ready: ")
	if _, err := bufio.NewReader(os.Stdin).ReadString('\n'); err != nil {
		return errors.Wrap(err, "read stdin")
	}
	logrus.Info("Sending tasks to workers...")

	// The first message is "0" and signals start of batch.
	if err := sink.SendString("0", 0); err != nil {
		return errors.Wrap(err, "signal sink")
	}

	totalMsec := 0
	for n := 0; n < tasks; n++ {
		workload := rand.Intn(100) + 1
		totalMsec += workload
		if err := sender.SendString(strconv.Itoa(workload), 0); err != nil {
			return errors.Wrapf(err, "send task %d", n)
		}
	}
	logrus.Infof("Total expected cost: %d msec", totalMsec)
	return nil
}

// AddFlags -
func AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&bindEndpoint, "bind", "tcp://*:5557", "endpoint workers pull tasks from")
	fs.StringVar(&sinkEndpoint, "sink", "tcp://localhost:5558", "sink endpoint")
	fs.IntVar(&tasks, "tasks", 100, "tasks per batch")
}
