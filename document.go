package floating

import (
	"github.com/grindlemire/go-floating/internal/debug"
)

// FocusOptions mirrors the platform focus options.
type FocusOptions struct {
	// PreventScroll suppresses scrolling the focused element into view.
	PreventScroll bool
}

// Document is a headless element tree with a single focus owner, bubbling
// event dispatch, mutation observers and a task loop. It stands in for the
// platform document the focus engine runs against.
type Document struct {
	root *Element
	body *Element

	active *Element
	loop   *Loop

	listeners map[EventType][]*elementListener
	nextID    uint64

	observers []*MutationObserver

	supportsInert bool
	focusQueue    *FocusQueue
	marks         *markRegistry

	// scrolled records elements focused without PreventScroll, in order.
	scrolled []*Element
}

// DocumentOption configures a Document.
type DocumentOption func(*Document)

// WithInertSupport declares whether the platform implements the inert
// attribute. Without it, focus managers always render guards.
func WithInertSupport(supported bool) DocumentOption {
	return func(d *Document) {
		d.supportsInert = supported
	}
}

// NewDocument creates an empty document with a body element.
func NewDocument(opts ...DocumentOption) *Document {
	d := &Document{
		loop:          NewLoop(),
		supportsInert: true,
		listeners:     make(map[EventType][]*elementListener),
	}
	d.root = New("html")
	d.root.doc = d
	d.body = New("body")
	d.root.AddChild(d.body)
	d.focusQueue = newFocusQueue(d)
	d.marks = newMarkRegistry()
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Body returns the body element.
func (d *Document) Body() *Element {
	return d.body
}

// Loop returns the document's task loop.
func (d *Document) Loop() *Loop {
	return d.loop
}

// Flush runs every pending microtask, timer and frame.
func (d *Document) Flush() {
	d.loop.Flush()
}

// SupportsInert reports whether the inert attribute is available.
func (d *Document) SupportsInert() bool {
	return d.supportsInert
}

// FocusQueue returns the document's single-slot focus request queue.
func (d *Document) FocusQueue() *FocusQueue {
	return d.focusQueue
}

// CreateElement creates an element owned by this document but not yet
// attached to it.
func (d *Document) CreateElement(tag string, opts ...Option) *Element {
	e := New(tag, opts...)
	e.setDocRecursive(d)
	return e
}

// ActiveElement returns the focused element, or nil when nothing is focused.
func (d *Document) ActiveElement() *Element {
	if d.active != nil && !d.active.IsConnected() {
		d.active = nil
	}
	return d.active
}

// ScrolledIntoView returns the elements that were scrolled into view by
// focus calls, oldest first.
func (d *Document) ScrolledIntoView() []*Element {
	out := make([]*Element, len(d.scrolled))
	copy(out, d.scrolled)
	return out
}

// GetByID returns the first connected element with the given id.
func (d *Document) GetByID(id string) *Element {
	return d.root.QueryByID(id)
}

// AddEventListener registers a document-level listener. It observes
// bubbling events after all element listeners on the path have run.
func (d *Document) AddEventListener(typ EventType, fn func(Event)) Unbind {
	d.nextID++
	l := &elementListener{id: d.nextID, fn: fn}
	d.listeners[typ] = append(d.listeners[typ], l)
	return func() {
		list := d.listeners[typ]
		for i, cur := range list {
			if cur.id == l.id {
				d.listeners[typ] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of document-level listeners for typ.
func (d *Document) ListenerCount(typ EventType) int {
	return len(d.listeners[typ])
}

// Dispatch delivers ev to its target, its ancestors for bubbling types, and
// finally the document listeners.
func (d *Document) Dispatch(ev Event) {
	target := ev.Target()
	if target != nil {
		target.runListeners(ev)
		if ev.Type().bubbles() {
			for n := target.parent; n != nil && !ev.propagationStopped(); n = n.parent {
				n.runListeners(ev)
			}
		}
	}
	if ev.propagationStopped() || (target != nil && !ev.Type().bubbles()) {
		return
	}
	list := d.listeners[ev.Type()]
	snapshot := make([]*elementListener, len(list))
	copy(snapshot, list)
	ev.setCurrentTarget(nil)
	for _, l := range snapshot {
		l.fn(ev)
	}
}

// PressKey dispatches a keydown at the active element (or the body) and
// performs the default action: Tab and Shift+Tab move focus in tab order,
// Enter and Space click buttons.
func (d *Document) PressKey(key Key, mod Modifier) *KeyEvent {
	ev := NewKeyEvent(key, mod)
	ev.target = d.ActiveElement()
	if ev.target == nil {
		ev.target = d.body
	}
	debug.Log("Document.PressKey: key=%s mod=%s target=%s", key, mod, ev.target)
	d.Dispatch(ev)
	if ev.DefaultPrevented() {
		return ev
	}
	switch key {
	case KeyTab:
		d.sequentialFocus(ev.Shift())
	case KeyEnter, KeySpace:
		if t := ev.target; t != d.body && t.Tag() == "button" {
			d.Dispatch(newPointerEvent(EventClick, t))
		}
	}
	return ev
}

// PointerDown dispatches pointerdown and mousedown at target and then moves
// focus to the closest focusable ancestor, or clears focus if there is none.
func (d *Document) PointerDown(target *Element) {
	if target == nil {
		target = d.body
	}
	pd := newPointerEvent(EventPointerDown, target)
	d.Dispatch(pd)
	md := newPointerEvent(EventMouseDown, target)
	d.Dispatch(md)
	if pd.DefaultPrevented() || md.DefaultPrevented() {
		return
	}
	for n := target; n != nil; n = n.parent {
		if IsFocusable(n) {
			d.focusElement(n, FocusOptions{PreventScroll: true})
			return
		}
	}
	if d.active != nil {
		d.blurElement(d.active)
	}
}

// Click presses and releases the pointer on target.
func (d *Document) Click(target *Element) {
	d.PointerDown(target)
	if target == nil {
		target = d.body
	}
	d.Dispatch(newPointerEvent(EventClick, target))
}

// sequentialFocus moves focus to the next (or previous) tabbable element of
// the whole document. When traversal runs off either end focus leaves the
// document.
func (d *Document) sequentialFocus(backward bool) {
	order := DefaultTabbable(d.body)
	if len(order) == 0 {
		return
	}
	next := adjacentTabbable(d.body, order, d.ActiveElement(), backward)
	if next == nil {
		debug.Log("Document.sequentialFocus: focus left the document")
		if d.active != nil {
			d.blurElement(d.active)
		}
		return
	}
	d.focusElement(next, FocusOptions{})
}

// adjacentTabbable returns the tabbable element following (or preceding)
// from in order. An element outside the order is located by document
// position, the way a platform resumes traversal from a non-tabbable focus.
func adjacentTabbable(container *Element, order []*Element, from *Element, backward bool) *Element {
	if from == nil {
		if backward {
			return order[len(order)-1]
		}
		return order[0]
	}
	for i, el := range order {
		if el == from {
			if backward {
				if i == 0 {
					return nil
				}
				return order[i-1]
			}
			if i == len(order)-1 {
				return nil
			}
			return order[i+1]
		}
	}

	pos := documentPositions(container)
	fromPos, ok := pos[from]
	if !ok {
		return nil
	}
	if backward {
		for i := len(order) - 1; i >= 0; i-- {
			if pos[order[i]] < fromPos && !order[i].Contains(from) {
				return order[i]
			}
		}
		return nil
	}
	for _, el := range order {
		if pos[el] > fromPos {
			return el
		}
	}
	return nil
}

func documentPositions(container *Element) map[*Element]int {
	pos := make(map[*Element]int)
	i := 0
	container.Walk(func(n *Element) bool {
		pos[n] = i
		i++
		return true
	})
	return pos
}

func (d *Document) focusElement(el *Element, opts FocusOptions) {
	if el == nil || el.doc != d || !el.IsConnected() || !IsFocusable(el) {
		debug.Log("Document.focus: ignoring %s", el)
		return
	}
	prev := d.ActiveElement()
	if prev == el {
		return
	}
	debug.Log("Document.focus: %s -> %s", prev, el)

	d.active = nil
	if prev != nil {
		d.Dispatch(&FocusEvent{eventBase: eventBase{typ: EventBlur, target: prev}, RelatedTarget: el})
		d.Dispatch(&FocusEvent{eventBase: eventBase{typ: EventFocusOut, target: prev}, RelatedTarget: el})
	}
	// A blur handler may have moved focus or detached the target.
	if d.active != nil || !el.IsConnected() {
		return
	}

	d.active = el
	if !opts.PreventScroll {
		d.scrolled = append(d.scrolled, el)
	}
	d.Dispatch(&FocusEvent{eventBase: eventBase{typ: EventFocus, target: el}, RelatedTarget: prev})
	if d.active == el {
		d.Dispatch(&FocusEvent{eventBase: eventBase{typ: EventFocusIn, target: el}, RelatedTarget: prev})
	}
}

func (d *Document) blurElement(el *Element) {
	if d.active != el {
		return
	}
	d.active = nil
	d.Dispatch(&FocusEvent{eventBase: eventBase{typ: EventBlur, target: el}})
	d.Dispatch(&FocusEvent{eventBase: eventBase{typ: EventFocusOut, target: el}})
}
