package server

import (
	"sync"

	"github.com/inference-gateway/adk/types"
)

// taskBroadcast is a small per-task fan-out: one buffered channel per live
// subscriber, guarded by a mutex. It realizes the resubscribe event-source
// design: created lazily on the first message/stream call for a task id,
// and torn down once the task reaches a terminal state and its last
// subscriber has detached. Grounded on the teacher's worker/queue channel
// wiring in the original server.go, generalized from a single consumer
// queue to a multi-subscriber fan-out since tasks/resubscribe requires more
// than one concurrent listener per task.
type taskBroadcast struct {
	mu     sync.Mutex
	subs   map[int]chan types.StreamResponse
	nextID int
}

func newTaskBroadcast() *taskBroadcast {
	return &taskBroadcast{subs: make(map[int]chan types.StreamResponse)}
}

// subscribe attaches a new subscriber and returns its channel plus an
// unsubscribe function that must be called exactly once when the caller is
// done listening.
func (b *taskBroadcast) subscribe() (<-chan types.StreamResponse, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan types.StreamResponse, 16)
	b.subs[id] = ch

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if existing, ok := b.subs[id]; ok {
			close(existing)
			delete(b.subs, id)
		}
	}
}

// publish fans evt out to every live subscriber. A subscriber whose buffer
// is full is skipped rather than blocking the publisher — resubscribe does
// not replay, so a skipped event is equivalent to the subscriber not yet
// having attached.
func (b *taskBroadcast) publish(evt types.StreamResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

func (b *taskBroadcast) subscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
