package floating

import "sync"

// EventType names an event dispatched through the document.
type EventType string

const (
	EventKeyDown     EventType = "keydown"
	EventFocus       EventType = "focus"
	EventBlur        EventType = "blur"
	EventFocusIn     EventType = "focusin"
	EventFocusOut    EventType = "focusout"
	EventPointerDown EventType = "pointerdown"
	EventMouseDown   EventType = "mousedown"
	EventClick       EventType = "click"
)

// bubbles reports whether events of this type propagate to ancestors.
func (t EventType) bubbles() bool {
	return t != EventFocus && t != EventBlur
}

// Event is the common interface of everything dispatched through a Document.
type Event interface {
	Type() EventType
	// Target is the element the event was dispatched at.
	Target() *Element
	// CurrentTarget is the element whose listener is running, nil for
	// document-level listeners.
	CurrentTarget() *Element
	PreventDefault()
	DefaultPrevented() bool
	StopPropagation()
	propagationStopped() bool
	setCurrentTarget(*Element)
}

type eventBase struct {
	typ       EventType
	target    *Element
	current   *Element
	prevented bool
	stopped   bool
}

func (e *eventBase) Type() EventType              { return e.typ }
func (e *eventBase) Target() *Element             { return e.target }
func (e *eventBase) CurrentTarget() *Element      { return e.current }
func (e *eventBase) PreventDefault()              { e.prevented = true }
func (e *eventBase) DefaultPrevented() bool       { return e.prevented }
func (e *eventBase) StopPropagation()             { e.stopped = true }
func (e *eventBase) propagationStopped() bool     { return e.stopped }
func (e *eventBase) setCurrentTarget(el *Element) { e.current = el }

// KeyEvent represents a keyboard key press.
type KeyEvent struct {
	eventBase
	Key  Key
	Rune rune
	Mod  Modifier
}

// NewKeyEvent creates a keydown event. The target is filled in on dispatch.
func NewKeyEvent(key Key, mod Modifier) *KeyEvent {
	return &KeyEvent{eventBase: eventBase{typ: EventKeyDown}, Key: key, Mod: mod}
}

// Shift reports whether the Shift modifier was held.
func (k *KeyEvent) Shift() bool {
	return k.Mod.Has(ModShift)
}

// FocusEvent is dispatched for focus, blur, focusin and focusout.
// RelatedTarget is the element losing focus (focus/focusin) or receiving it
// (blur/focusout); nil when focus comes from or goes to nowhere.
type FocusEvent struct {
	eventBase
	RelatedTarget *Element
}

// PointerEvent is dispatched for pointerdown, mousedown and click.
type PointerEvent struct {
	eventBase
	PointerType string
}

func newPointerEvent(typ EventType, target *Element) *PointerEvent {
	return &PointerEvent{eventBase: eventBase{typ: typ, target: target}, PointerType: "mouse"}
}

// stopEvent prevents the default action and stops propagation.
func stopEvent(e Event) {
	e.PreventDefault()
	e.StopPropagation()
}

// Events is a typed publish/subscribe channel.
type Events[T any] struct {
	mu        sync.RWMutex
	nextID    uint64
	listeners []listenerEntry[T]
}

type listenerEntry[T any] struct {
	id uint64
	fn func(T)
}

// NewEvents creates an empty event channel.
func NewEvents[T any]() *Events[T] {
	return &Events[T]{}
}

// Emit sends an event to all listeners in subscription order.
func (e *Events[T]) Emit(event T) {
	e.mu.RLock()
	listeners := make([]listenerEntry[T], len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.RUnlock()

	for _, l := range listeners {
		l.fn(event)
	}
}

// Subscribe adds a listener and returns the handle that removes it.
// Calling the handle more than once is harmless.
func (e *Events[T]) Subscribe(fn func(T)) Unbind {
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listenerEntry[T]{id: id, fn: fn})
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of active listeners.
func (e *Events[T]) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners)
}
