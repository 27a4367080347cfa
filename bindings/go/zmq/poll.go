package zmq

import "unsafe"

// PollItem is one entry of a Poll set: either a socket or a raw descriptor.
type PollItem struct {
	socket  unsafe.Pointer
	fd      int
	events  PollEvents
	revents PollEvents
}

// NewFDPollItem watches a raw file descriptor alongside sockets.
func NewFDPollItem(fd int, events PollEvents) PollItem {
	return PollItem{fd: fd, events: events}
}

// Revents returns the events reported by the last Poll.
func (p PollItem) Revents() PollEvents { return p.revents }

func (p PollItem) IsReadable() bool { return p.revents&POLLIN != 0 }
func (p PollItem) IsWritable() bool { return p.revents&POLLOUT != 0 }
func (p PollItem) IsError() bool    { return p.revents&POLLERR != 0 }

// HasSocket reports whether the item watches a socket.
func (p PollItem) HasSocket() bool { return p.socket != nil }

// HasFD reports whether the item watches a raw descriptor.
func (p PollItem) HasFD() bool { return p.socket == nil && p.fd >= 0 }

// Poll waits up to timeoutMs milliseconds for any item to become ready and
// returns how many are. A timeout of -1 blocks, 0 returns at once. Revents of
// every item is updated in place. Sockets behind the items must stay reachable
// until Poll returns.
func Poll(items []PollItem, timeoutMs int64) (int, error) {
	for _, item := range items {
		if !item.HasSocket() && !item.HasFD() {
			return 0, ErrSocketClosed
		}
	}
	n, code := ffiPoll(items, timeoutMs)
	if err := checkResult(code); err != nil {
		return 0, err
	}
	return n, nil
}
