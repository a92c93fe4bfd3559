package floating

import "github.com/grindlemire/go-floating/internal/debug"

// FocusRequest configures FocusQueue.Enqueue.
type FocusRequest struct {
	// PreventScroll is passed through to the focus call.
	PreventScroll bool
	// KeepPrevious leaves an already pending request in place instead of
	// cancelling it. Restoration uses it so that a late restore is not
	// dropped by a nested surface tearing down in the same tick.
	KeepPrevious bool
	// Sync focuses immediately instead of on the next frame.
	Sync bool
}

// FocusQueue defers focus moves to the next animation frame through a
// single slot: a new request cancels the pending one unless it asks to keep
// it. Requests for elements that are detached by the time they run do
// nothing.
type FocusQueue struct {
	doc     *Document
	frameID int
}

func newFocusQueue(doc *Document) *FocusQueue {
	return &FocusQueue{doc: doc}
}

// Enqueue requests focus on el.
func (q *FocusQueue) Enqueue(el *Element, req FocusRequest) {
	if !req.KeepPrevious && q.frameID != 0 {
		q.doc.loop.CancelFrame(q.frameID)
		q.frameID = 0
	}
	exec := func() {
		if el == nil || !el.IsConnected() {
			debug.Log("FocusQueue: dropping request for detached %s", el)
			return
		}
		el.Focus(FocusOptions{PreventScroll: req.PreventScroll})
	}
	if req.Sync {
		exec()
		return
	}
	var id int
	id = q.doc.loop.RequestFrame(func() {
		if q.frameID == id {
			q.frameID = 0
		}
		exec()
	})
	q.frameID = id
}

// Pending reports whether the latest request is still waiting for its frame.
func (q *FocusQueue) Pending() bool {
	return q.frameID != 0
}

// enqueueFocus requests focus through the element's document queue.
func enqueueFocus(el *Element, req FocusRequest) {
	if el == nil || el.doc == nil {
		return
	}
	el.doc.focusQueue.Enqueue(el, req)
}
