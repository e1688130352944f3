package store

import (
	"slices"
	"sync"
)

// Op names the kind of transition a slice applied
type Op string

const (
	OpBegin      Op = "begin"
	OpSettle     Op = "settle"
	OpFail       Op = "fail"
	OpClearError Op = "clear_error"
	OpFilters    Op = "filters"
	OpClear      Op = "clear"
)

// Slice names used in Change notifications
const (
	SliceNgo          = "ngo"
	SliceRequirement  = "requirement"
	SliceConversation = "conversation"
)

// Change describes one applied transition
type Change struct {
	Slice string
	Op    Op
}

// Listener is called after a transition has been applied. Listeners may read snapshots
// but must not mutate the slice that notified them from inside the callback.
type Listener func(Change)

// base carries the lock, status, and listener set shared by every slice.
// emitMu serializes transitions with their notifications so listeners observe
// changes in the order they were applied.
type base struct {
	name string

	emitMu sync.Mutex
	mu     sync.RWMutex
	status RequestStatus

	listenMu  sync.Mutex
	listeners map[int]Listener
	nextID    int
}

func newBase(name string) base {
	return base{name: name, listeners: make(map[int]Listener)}
}

// update applies fn under the write lock, then notifies listeners outside it
func (b *base) update(op Op, fn func()) {
	b.emitMu.Lock()
	defer b.emitMu.Unlock()

	b.mu.Lock()
	fn()
	b.mu.Unlock()

	b.emit(Change{Slice: b.name, Op: op})
}

func (b *base) emit(c Change) {
	b.listenMu.Lock()
	ids := make([]int, 0, len(b.listeners))
	for id := range b.listeners {
		ids = append(ids, id)
	}
	fns := make([]Listener, 0, len(ids))
	// subscription order
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, b.listeners[id])
	}
	b.listenMu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}

// Subscribe registers fn for change notifications and returns a function that removes it.
func (b *base) Subscribe(fn Listener) (unsubscribe func()) {
	b.listenMu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.listenMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.listenMu.Lock()
			delete(b.listeners, id)
			b.listenMu.Unlock()
		})
	}
}

// Status returns the current request status of the slice
func (b *base) Status() RequestStatus {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status
}

// Begin marks a command of this slice's family as in flight and clears any prior error.
func (b *base) Begin() {
	b.update(OpBegin, func() { b.status = beginStatus() })
}

// Fail settles a command as failed. Collections are left untouched.
func (b *base) Fail(msg string) {
	b.update(OpFail, func() { b.status = failedStatus(msg) })
}

// Settle settles a command that has no collection transition
func (b *base) Settle() {
	b.update(OpSettle, func() { b.status = settledStatus() })
}

// ClearError drops the stored error without touching the loading flag
func (b *base) ClearError() {
	b.update(OpClearError, func() { b.status.Error = "" })
}
