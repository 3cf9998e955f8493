package framework

import "sync"

// MessageBus accepts messages describing what is happening during a test run.
//
// QueueMessage returns false if the message was rejected, which means the producer should
// stop starting new work (the consumer is shutting down or cannot keep up).
type MessageBus interface {
	QueueMessage(message interface{}) bool
}

// MessageRecorder is a MessageBus that keeps every accepted message in memory. It can be set
// to reject messages once a certain number have been accepted, to simulate a consumer that
// stops accepting work.
type MessageRecorder struct {
	messages    []interface{}
	rejectAfter int
	rejected    int
	lock        sync.Mutex
}

// NewMessageRecorder creates a recorder that accepts everything.
func NewMessageRecorder() *MessageRecorder {
	return &MessageRecorder{rejectAfter: -1}
}

// RejectAfter causes the recorder to reject every message after the first count accepted
// messages. A negative count accepts everything.
func (r *MessageRecorder) RejectAfter(count int) *MessageRecorder {
	r.lock.Lock()
	r.rejectAfter = count
	r.lock.Unlock()
	return r
}

func (r *MessageRecorder) QueueMessage(message interface{}) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.rejectAfter >= 0 && len(r.messages) >= r.rejectAfter {
		r.rejected++
		return false
	}
	r.messages = append(r.messages, message)
	return true
}

// Messages returns a copy of the accepted messages in order.
func (r *MessageRecorder) Messages() []interface{} {
	r.lock.Lock()
	ret := append([]interface{}(nil), r.messages...)
	r.lock.Unlock()
	return ret
}

// RejectedCount returns the number of messages that were turned away.
func (r *MessageRecorder) RejectedCount() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.rejected
}
