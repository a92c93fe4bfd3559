package floating

import (
	"sync"

	"github.com/grindlemire/go-floating/internal/debug"
)

// maxFlushRounds bounds Flush so that tasks which keep re-queueing
// themselves cannot hang the caller.
const maxFlushRounds = 10000

// Loop is the single-threaded task loop of a Document. Everything except
// Post must be called from the loop's own goroutine.
//
// Work is split the way a browser splits it: microtasks (mutation records)
// run first, then zero-delay timers, then animation frames. Post is the one
// goroutine-safe entry point and is how results computed elsewhere get back
// onto the loop.
type Loop struct {
	microtasks []func()
	timers     []loopTask
	frames     []loopTask
	running    []loopTask
	nextID     int

	postMu sync.Mutex
	posted []func()
}

type loopTask struct {
	id int
	fn func()
}

// NewLoop creates an empty loop.
func NewLoop() *Loop {
	return &Loop{}
}

// QueueMicrotask schedules fn before any timer or frame.
func (l *Loop) QueueMicrotask(fn func()) {
	l.microtasks = append(l.microtasks, fn)
}

// SetTimeout schedules fn on the next timer turn and returns its id.
func (l *Loop) SetTimeout(fn func()) int {
	l.nextID++
	l.timers = append(l.timers, loopTask{id: l.nextID, fn: fn})
	return l.nextID
}

// ClearTimeout cancels a pending timer. Unknown ids are ignored.
func (l *Loop) ClearTimeout(id int) {
	l.timers = removeTask(l.timers, id)
}

// RequestFrame schedules fn for the next animation frame and returns its id.
func (l *Loop) RequestFrame(fn func()) int {
	l.nextID++
	l.frames = append(l.frames, loopTask{id: l.nextID, fn: fn})
	return l.nextID
}

// CancelFrame cancels a pending frame callback. Unknown ids are ignored.
func (l *Loop) CancelFrame(id int) {
	l.frames = removeTask(l.frames, id)
	l.running = removeTask(l.running, id)
}

// Post queues fn from any goroutine. It runs on the next Flush.
func (l *Loop) Post(fn func()) {
	l.postMu.Lock()
	l.posted = append(l.posted, fn)
	l.postMu.Unlock()
}

// RunMicrotasks drains the microtask queue, including microtasks queued
// while draining.
func (l *Loop) RunMicrotasks() {
	for len(l.microtasks) > 0 {
		task := l.microtasks[0]
		l.microtasks = l.microtasks[1:]
		task()
	}
}

// RunTimers runs the timers that were pending when it was called.
func (l *Loop) RunTimers() {
	batch := l.timers
	l.timers = nil
	for _, t := range batch {
		t.fn()
		l.RunMicrotasks()
	}
}

// RunFrames runs the frame callbacks that were pending when it was called.
// A callback cancelled by an earlier callback of the same batch is skipped.
func (l *Loop) RunFrames() {
	l.running = l.frames
	l.frames = nil
	for len(l.running) > 0 {
		f := l.running[0]
		l.running = l.running[1:]
		f.fn()
		l.RunMicrotasks()
	}
}

// runPosted runs the work posted from other goroutines.
func (l *Loop) runPosted() bool {
	l.postMu.Lock()
	batch := l.posted
	l.posted = nil
	l.postMu.Unlock()
	for _, fn := range batch {
		fn()
		l.RunMicrotasks()
	}
	return len(batch) > 0
}

// Flush runs microtasks, posted work, timers and frames until nothing is
// left.
func (l *Loop) Flush() {
	for round := 0; round < maxFlushRounds; round++ {
		l.RunMicrotasks()
		if l.runPosted() {
			continue
		}
		if len(l.timers) > 0 {
			l.RunTimers()
			continue
		}
		if len(l.frames) > 0 {
			l.RunFrames()
			continue
		}
		return
	}
	debug.Log("Loop.Flush: gave up after %d rounds", maxFlushRounds)
}

// Pending returns the number of queued microtasks, timers and frames.
func (l *Loop) Pending() int {
	return len(l.timers) + len(l.frames) + len(l.microtasks)
}

func removeTask(tasks []loopTask, id int) []loopTask {
	for i, t := range tasks {
		if t.id == id {
			return append(tasks[:i:i], tasks[i+1:]...)
		}
	}
	return tasks
}
