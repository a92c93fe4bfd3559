package floating

import (
	"strconv"
	"strings"
)

// Well-known attribute names.
const (
	AttrTabIndex   = "tabindex"
	AttrAutofocus  = "autofocus"
	AttrDisabled   = "disabled"
	AttrHidden     = "hidden"
	AttrInert      = "inert"
	AttrAriaHidden = "aria-hidden"
	AttrAriaLive   = "aria-live"
	AttrRole       = "role"
	AttrReadOnly   = "readonly"
	AttrHref       = "href"
	AttrType       = "type"
	AttrStyle      = "style"
)

// Element is a node of a Document tree. It carries a tag, string attributes,
// optional text, ordered children and event listeners. Elements created with
// New are detached until they are added under a document's body.
type Element struct {
	// Tree structure (single source of truth)
	children []*Element
	parent   *Element
	doc      *Document

	tag   string
	text  string
	attrs map[string]string

	listeners map[EventType][]*elementListener
	nextID    uint64
}

type elementListener struct {
	id uint64
	fn func(Event)
}

// New creates a detached element with the given tag and options.
func New(tag string, opts ...Option) *Element {
	e := &Element{
		tag:   strings.ToLower(tag),
		attrs: make(map[string]string),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	return e.tag
}

// ID returns the id attribute, or "" when unset.
func (e *Element) ID() string {
	return e.attrs["id"]
}

// Text returns the element's own text.
func (e *Element) Text() string {
	return e.text
}

// SetText replaces the element's own text and records a childList mutation.
func (e *Element) SetText(text string) {
	if e.text == text {
		return
	}
	e.text = text
	e.recordMutation(MutationRecord{Type: MutationChildList, Target: e})
}

// String returns a short description used in logs and traces.
func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	if id := e.ID(); id != "" {
		return e.tag + "#" + id
	}
	if e.text != "" {
		return e.tag + "(" + e.text + ")"
	}
	return e.tag
}

// Document returns the owning document, or nil if the element has never been
// attached to one.
func (e *Element) Document() *Document {
	return e.doc
}

// --- Attributes ---

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// HasAttr reports whether the attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// SetAttr sets an attribute and records an attribute mutation. Writing the
// value the attribute already holds still records a mutation, matching what
// a platform mutation observer reports.
func (e *Element) SetAttr(name, value string) {
	e.attrs[name] = value
	e.recordMutation(MutationRecord{Type: MutationAttributes, Target: e, AttributeName: name})
}

// RemoveAttr removes an attribute. Removing an absent attribute is a no-op.
func (e *Element) RemoveAttr(name string) {
	if _, ok := e.attrs[name]; !ok {
		return
	}
	delete(e.attrs, name)
	e.recordMutation(MutationRecord{Type: MutationAttributes, Target: e, AttributeName: name})
}

// Attrs returns a copy of all attributes.
func (e *Element) Attrs() map[string]string {
	out := make(map[string]string, len(e.attrs))
	for k, v := range e.attrs {
		out[k] = v
	}
	return out
}

// TabIndex returns the parsed tabindex attribute and whether it is present
// and valid.
func (e *Element) TabIndex() (int, bool) {
	raw, ok := e.attrs[AttrTabIndex]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetTabIndex writes the tabindex attribute.
func (e *Element) SetTabIndex(n int) {
	e.SetAttr(AttrTabIndex, strconv.Itoa(n))
}

// Role returns the role attribute.
func (e *Element) Role() string {
	return e.attrs[AttrRole]
}

// IsTypeable reports whether the element accepts typed text.
func (e *Element) IsTypeable() bool {
	if e == nil || e.HasAttr(AttrReadOnly) {
		return false
	}
	switch e.tag {
	case "textarea":
		return true
	case "input":
		switch e.attrs[AttrType] {
		case "", "text", "search", "url", "tel", "email", "password", "number":
			return true
		}
	}
	return e.attrs["contenteditable"] == "true"
}

// IsTypeableCombobox reports whether the element is a combobox the user
// types into, which changes how a floating surface anchored to it traps focus.
func (e *Element) IsTypeableCombobox() bool {
	return e != nil && e.Role() == "combobox" && e.IsTypeable()
}

// --- Listeners ---

// AddEventListener registers fn for events of the given type dispatched at
// this element or, for bubbling types, at its descendants.
func (e *Element) AddEventListener(typ EventType, fn func(Event)) Unbind {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]*elementListener)
	}
	e.nextID++
	l := &elementListener{id: e.nextID, fn: fn}
	e.listeners[typ] = append(e.listeners[typ], l)
	return func() {
		list := e.listeners[typ]
		for i, cur := range list {
			if cur.id == l.id {
				e.listeners[typ] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of listeners registered for typ.
func (e *Element) ListenerCount(typ EventType) int {
	return len(e.listeners[typ])
}

func (e *Element) runListeners(ev Event) {
	list := e.listeners[ev.Type()]
	if len(list) == 0 {
		return
	}
	snapshot := make([]*elementListener, len(list))
	copy(snapshot, list)
	ev.setCurrentTarget(e)
	for _, l := range snapshot {
		l.fn(ev)
	}
}

// --- Focus ---

// Focus moves document focus to this element. Focusing a detached or
// unfocusable element is a no-op.
func (e *Element) Focus(opts ...FocusOptions) {
	if e == nil || e.doc == nil {
		return
	}
	var o FocusOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	e.doc.focusElement(e, o)
}

// Blur removes focus from this element if it holds it.
func (e *Element) Blur() {
	if e == nil || e.doc == nil {
		return
	}
	e.doc.blurElement(e)
}

// IsFocused reports whether this element is the document's active element.
func (e *Element) IsFocused() bool {
	return e != nil && e.doc != nil && e.doc.active == e
}

func (e *Element) recordMutation(rec MutationRecord) {
	if e.doc != nil && e.IsConnected() {
		e.doc.recordMutation(rec)
	}
}
