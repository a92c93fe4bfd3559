package floating

import "github.com/grindlemire/go-floating/internal/debug"

// watchFocusOut closes the surface when focus leaves the floating tree from
// the reference, or from the floating element when non-modal.
func (m *FocusManager) watchFocusOut(run *Scope, floating *Element) {
	reference := m.node.Reference.Get()
	if reference == nil {
		return
	}
	loop := m.doc.Loop()

	onPointerDown := func(Event) {
		m.pointerDown = true
		loop.ClearTimeout(m.pointerTimer)
		m.pointerTimer = loop.SetTimeout(func() {
			m.pointerDown = false
			m.pointerTimer = 0
		})
	}
	onFocusOut := live(run, func(ev Event) {
		if fe, ok := ev.(*FocusEvent); ok {
			m.handleFocusOut(fe, reference, floating)
		}
	})

	run.OnCleanup(reference.AddEventListener(EventFocusOut, onFocusOut))
	run.OnCleanup(reference.AddEventListener(EventPointerDown, onPointerDown))
	if !m.cfg.modal {
		run.OnCleanup(floating.AddEventListener(EventFocusOut, onFocusOut))
	}
	run.OnCleanup(func() {
		loop.ClearTimeout(m.pointerTimer)
		m.pointerTimer = 0
		m.pointerDown = false
	})
}

func (m *FocusManager) handleFocusOut(ev *FocusEvent, reference, floating *Element) {
	rt := ev.RelatedTarget
	if rt == nil || rt == floating || rt == reference {
		return
	}
	if m.insideFloatingTree(rt, reference, floating) {
		return
	}
	if m.pointerDown || rt == m.snapshot {
		return
	}
	debug.Log("FocusManager: focus moved outside to %s, closing node=%s", rt, m.node.ID())
	m.preventReturn = true
	m.node.EmitDismiss(DismissPayload{Kind: DismissOutsideFocus, Event: ev})
	m.node.RequestOpenChange(false, ev)
}

// insideFloatingTree reports whether el belongs to this surface, to a
// surface nested under it, or to one of its ancestors' anchors.
func (m *FocusManager) insideFloatingTree(el, reference, floating *Element) bool {
	if reference.Contains(el) || floating.Contains(el) || el.Contains(floating) {
		return true
	}
	if p := m.cfg.portal; p != nil && p.Node().Contains(el) {
		return true
	}
	if el.HasAttr(AttrFocusGuard) {
		return true
	}
	t := m.node.Tree()
	if t == nil {
		return false
	}
	for _, child := range t.Children(m.node.ID()) {
		if child.Floating.Get().Contains(el) || child.Reference.Get().Contains(el) {
			return true
		}
	}
	for _, anc := range t.Ancestors(m.node.ID()) {
		if anc.Floating.Get() == el || anc.Reference.Get() == el {
			return true
		}
	}
	return false
}
