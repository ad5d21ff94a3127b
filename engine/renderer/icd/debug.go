package icd

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/dset/engine/containers"
)

type DebugMessageType uint8

const (
	DebugMessageInfo DebugMessageType = iota
	DebugMessageWarning
	DebugMessageError
)

func (t DebugMessageType) String() string {
	switch t {
	case DebugMessageInfo:
		return "info"
	case DebugMessageWarning:
		return "warning"
	case DebugMessageError:
		return "error"
	default:
		return fmt.Sprintf("debug_message_type(%d)", uint8(t))
	}
}

type DebugMessage struct {
	Type       DebugMessageType
	ObjectType ObjectType
	ObjectID   uint32
	ObjectName string
	Text       string
}

func (m DebugMessage) String() string {
	return fmt.Sprintf("[%s] %s #%d (%s): %s", m.Type, m.ObjectType, m.ObjectID, m.ObjectName, m.Text)
}

// FnDebugCallback receives every reported message. Returning true marks the
// message as handled and stops delivery to later callbacks.
type FnDebugCallback func(msg DebugMessage, listener interface{}) bool

type registeredCallback struct {
	listener interface{}
	callback FnDebugCallback
}

// DebugReport keeps the most recent messages of a device and forwards each
// message to the registered callbacks in registration order.
type DebugReport struct {
	mu        sync.Mutex
	enabled   bool
	history   *containers.RingQueue[DebugMessage]
	dropped   int
	callbacks []*registeredCallback
}

func NewDebugReport(enabled bool, history int) *DebugReport {
	return &DebugReport{
		enabled: enabled,
		history: containers.NewRingQueue[DebugMessage](history),
	}
}

// Register adds a callback for listener. A listener can only be registered
// once; a duplicate registration returns false.
func (r *DebugReport) Register(listener interface{}, fn FnDebugCallback) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.callbacks {
		if c.listener == listener {
			return false
		}
	}
	r.callbacks = append(r.callbacks, &registeredCallback{
		listener: listener,
		callback: fn,
	})
	return true
}

// Unregister removes the callback of listener and reports whether one was found.
func (r *DebugReport) Unregister(listener interface{}) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.callbacks {
		if c.listener == listener {
			r.callbacks = append(r.callbacks[:i], r.callbacks[i+1:]...)
			return true
		}
	}
	return false
}

// Report records msg and hands it to the callbacks. It returns true when a
// callback handled the message. Nothing happens while the report is disabled.
func (r *DebugReport) Report(msg DebugMessage) bool {
	r.mu.Lock()
	if !r.enabled {
		r.mu.Unlock()
		return false
	}
	if r.history.Push(msg) {
		r.dropped++
	}
	callbacks := make([]*registeredCallback, len(r.callbacks))
	copy(callbacks, r.callbacks)
	r.mu.Unlock()

	for _, c := range callbacks {
		if c.callback(msg, c.listener) {
			return true
		}
	}
	return false
}

// Messages returns the retained messages, oldest first.
func (r *DebugReport) Messages() []DebugMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history.Items()
}

// Dropped returns how many messages fell out of the history.
func (r *DebugReport) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

func (r *DebugReport) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}
