package floating

// --- Element's tree API ---

// AddChild appends children to this Element and records a childList
// mutation. A child that already has a parent is moved.
func (e *Element) AddChild(children ...*Element) {
	for _, child := range children {
		e.insertAt(child, len(e.children))
	}
}

// InsertBefore inserts child before ref. A nil or foreign ref appends.
func (e *Element) InsertBefore(child, ref *Element) {
	idx := e.indexOf(ref)
	if idx < 0 {
		idx = len(e.children)
	}
	e.insertAt(child, idx)
}

// InsertAfter inserts child after ref. A nil or foreign ref appends.
func (e *Element) InsertAfter(child, ref *Element) {
	idx := e.indexOf(ref)
	if idx < 0 {
		idx = len(e.children)
	} else {
		idx++
	}
	e.insertAt(child, idx)
}

func (e *Element) insertAt(child *Element, idx int) {
	if child == nil || child == e || child.Contains(e) {
		return
	}
	if child.parent != nil {
		if child.parent == e && e.indexOf(child) < idx {
			idx--
		}
		child.parent.RemoveChild(child)
	}
	child.parent = e
	child.setDocRecursive(e.doc)
	e.children = append(e.children, nil)
	copy(e.children[idx+1:], e.children[idx:])
	e.children[idx] = child
	e.recordMutation(MutationRecord{Type: MutationChildList, Target: e, Added: []*Element{child}})
}

// RemoveChild removes a child from this Element, preserving the order of
// its siblings. Returns true if the child was found and removed. Removing
// the subtree holding focus drops focus without firing blur events.
func (e *Element) RemoveChild(child *Element) bool {
	idx := e.indexOf(child)
	if idx < 0 {
		return false
	}
	if d := e.doc; d != nil && d.active != nil && child.Contains(d.active) {
		d.active = nil
	}
	e.children = append(e.children[:idx:idx], e.children[idx+1:]...)
	child.parent = nil
	e.recordMutation(MutationRecord{Type: MutationChildList, Target: e, Removed: []*Element{child}})
	return true
}

// Remove detaches this element from its parent.
func (e *Element) Remove() {
	if e != nil && e.parent != nil {
		e.parent.RemoveChild(e)
	}
}

// Children returns a copy of the child elements.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// Parent returns the parent element, or nil if this is a root.
func (e *Element) Parent() *Element {
	return e.parent
}

// Contains reports whether other is e or one of its descendants. Either side
// being nil yields false.
func (e *Element) Contains(other *Element) bool {
	if e == nil || other == nil {
		return false
	}
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// IsConnected reports whether the element is attached to its document.
func (e *Element) IsConnected() bool {
	if e == nil || e.doc == nil {
		return false
	}
	return e.doc.root.Contains(e)
}

// Walk visits e and its descendants in document order. Returning false from
// fn skips the visited element's subtree.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.children {
		c.Walk(fn)
	}
}

// QueryAll returns the descendants (excluding e) matching pred in document
// order.
func (e *Element) QueryAll(pred func(*Element) bool) []*Element {
	var out []*Element
	for _, c := range e.children {
		c.Walk(func(n *Element) bool {
			if pred(n) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// QueryByID returns the first element in e's subtree with the given id.
func (e *Element) QueryByID(id string) *Element {
	var found *Element
	e.Walk(func(n *Element) bool {
		if found != nil {
			return false
		}
		if n.ID() == id {
			found = n
			return false
		}
		return true
	})
	return found
}

func (e *Element) indexOf(child *Element) int {
	if child == nil {
		return -1
	}
	for i, c := range e.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (e *Element) setDocRecursive(doc *Document) {
	if e == nil || doc == nil {
		return
	}
	e.doc = doc
	for _, child := range e.children {
		child.setDocRecursive(doc)
	}
}
