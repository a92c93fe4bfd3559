package floating

import "github.com/grindlemire/go-floating/internal/debug"

// TabOrder returns the assembled tab order for the current reference and
// floating elements. Autofocus content narrows the content entries.
func (m *FocusManager) TabOrder() []*Element {
	return AssembleTabOrder(m.cfg.order, m.node.Reference.Get(), m.node.Floating.Get(), m.cfg.tabbable)
}

// fullTabOrder is TabOrder without the autofocus narrowing, used to step
// through every reachable target.
func (m *FocusManager) fullTabOrder() []*Element {
	return assembleTabOrder(m.cfg.order, m.node.Reference.Get(), m.node.Floating.Get(), m.cfg.tabbable, false)
}

func (m *FocusManager) tabbableContent() []*Element {
	return TabbableContent(m.cfg.tabbable, m.node.Floating.Get())
}

// onTrapKeyDown intercepts Tab while the surface is modal and open.
func (m *FocusManager) onTrapKeyDown(ev Event) {
	ke, ok := ev.(*KeyEvent)
	if !ok || ke.Key != KeyTab {
		return
	}
	reference := m.node.Reference.Get()
	floating := m.node.Floating.Get()
	order := m.cfg.order

	// Nothing to move to: keep focus on the floating element.
	if floating.Contains(m.doc.ActiveElement()) && len(m.tabbableContent()) == 0 && !reference.IsTypeableCombobox() {
		debug.Log("FocusManager.trap: no tabbable content, holding focus")
		stopEvent(ev)
	}

	els := m.TabOrder()
	target := ev.Target()

	if order.At(0) == OrderReference && target == reference && reference != nil {
		stopEvent(ev)
		if ke.Shift() {
			m.redirect(els, len(els)-1)
		} else {
			m.redirect(els, 1)
		}
		return
	}
	if order.At(1) == OrderFloating && target == floating && floating != nil && ke.Shift() {
		stopEvent(ev)
		m.redirect(els, 0)
		return
	}
	if ev.DefaultPrevented() {
		return
	}

	full := m.fullTabOrder()
	i := indexOfElement(full, target)
	if i < 0 {
		return
	}
	want := full[(i+1)%len(full)]
	if ke.Shift() {
		want = full[(i-1+len(full))%len(full)]
	}
	// Native traversal, including a hop through a guard, already lands on
	// want.
	if m.nativeLanding(target, ke.Shift()) == want {
		return
	}
	stopEvent(ev)
	debug.Log("FocusManager.trap: redirecting to %s", want)
	enqueueFocus(want, FocusRequest{})
}

// nativeLanding returns where sequential navigation from el ends up,
// following a guard to the element it redirects to.
func (m *FocusManager) nativeLanding(el *Element, backward bool) *Element {
	order := DefaultTabbable(m.doc.body)
	if len(order) == 0 {
		return nil
	}
	next := adjacentTabbable(m.doc.body, order, el, backward)
	if next == nil || (next != m.startGuard && next != m.endGuard) {
		return next
	}
	els := m.TabOrder()
	if len(els) == 0 {
		return nil
	}
	if next == m.startGuard && m.cfg.order.At(0) != OrderReference {
		return els[len(els)-1]
	}
	return els[0]
}

func (m *FocusManager) redirect(els []*Element, i int) {
	if i < 0 || i >= len(els) {
		return
	}
	debug.Log("FocusManager.trap: redirecting to %s", els[i])
	enqueueFocus(els[i], FocusRequest{})
}

func indexOfElement(els []*Element, el *Element) int {
	if el == nil {
		return -1
	}
	for i, cur := range els {
		if cur == el {
			return i
		}
	}
	return -1
}
