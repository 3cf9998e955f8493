package framework

import "sync"

// MessageQueue is an in-process MessageBus backed by a buffered channel. Consumers read
// messages from C.
//
// QueueMessage never blocks: when the buffer is full, or the queue has been closed, the
// message is rejected. That is how a slow or departed consumer applies backpressure.
type MessageQueue struct {
	C         chan interface{}
	closed    bool
	dropped   int
	lock      sync.Mutex
	closeOnce sync.Once
}

// NewMessageQueue creates a queue that can hold up to channelSize unread messages.
func NewMessageQueue(channelSize int) *MessageQueue {
	return &MessageQueue{C: make(chan interface{}, channelSize)}
}

func (q *MessageQueue) QueueMessage(message interface{}) bool {
	q.lock.Lock()
	defer q.lock.Unlock()
	if q.closed {
		q.dropped++
		return false
	}
	select { // non-blocking push
	case q.C <- message:
		return true
	default:
		q.dropped++
		return false
	}
}

// Dropped returns the number of messages that were rejected so far.
func (q *MessageQueue) Dropped() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return q.dropped
}

// Close stops the queue from accepting messages and closes C. Messages already buffered can
// still be read from C until it is drained.
func (q *MessageQueue) Close() {
	q.closeOnce.Do(func() {
		q.lock.Lock()
		q.closed = true
		close(q.C)
		q.lock.Unlock()
	})
}
