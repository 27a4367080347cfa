package zmq

import "sync/atomic"

// Stats counts the native handles the binding currently owns.
type Stats struct {
	Contexts     int64
	Sockets      int64
	Messages     int64
	OwnedBuffers int64
}

var live struct {
	contexts     atomic.Int64
	sockets      atomic.Int64
	messages     atomic.Int64
	ownedBuffers atomic.Int64
}

// ReadStats returns a snapshot of the live handle counters. Handles leaked
// without Close show up here until the garbage collector finalizes them.
func ReadStats() Stats {
	return Stats{
		Contexts:     live.contexts.Load(),
		Sockets:      live.sockets.Load(),
		Messages:     live.messages.Load(),
		OwnedBuffers: live.ownedBuffers.Load(),
	}
}

func ownedBufferAcquired() { live.ownedBuffers.Add(1) }

// ownedBufferReleased runs from the libzmq release callback, possibly on one of
// libzmq's I/O threads.
func ownedBufferReleased() { live.ownedBuffers.Add(-1) }
