package floating

import "github.com/grindlemire/go-floating/internal/debug"

// focusInitial moves focus into the surface once it opens, unless focus is
// already inside or initial focus is off.
func (m *FocusManager) focusInitial(floating *Element) {
	if m.cfg.initialElement == nil && m.cfg.initialIndex < 0 {
		return
	}
	if floating.Contains(m.snapshot) {
		return
	}
	target := m.cfg.initialElement
	if target == nil {
		if els := m.TabOrder(); m.cfg.initialIndex < len(els) {
			target = els[m.cfg.initialIndex]
		}
	}
	if target == nil {
		target = floating
	}
	debug.Log("FocusManager: initial focus %s", target)
	enqueueFocus(target, FocusRequest{PreventScroll: target == floating})
}

// watchDismiss follows the node's dismissals for the engagement and restores
// focus when it ends.
func (m *FocusManager) watchDismiss(run *Scope, floating *Element) {
	run.OnCleanup(m.node.Dismiss.Subscribe(m.onDismiss))
	run.OnCleanup(func() { m.restore(floating) })
}

func (m *FocusManager) onDismiss(p DismissPayload) {
	if p.Kind == DismissEscapeKey {
		if ref := m.node.Reference.Get(); ref != nil {
			m.snapshot = ref
		}
	}
	if p.Kind == DismissEscapeKey || p.Kind == DismissReferencePress {
		return
	}
	switch o := p.ReturnFocus; {
	case o == nil:
		m.preventReturn = true
	case o.Structured:
		m.preventReturn = false
		m.preventReturnScroll = o.PreventScroll
	default:
		m.preventReturn = !o.Enabled
	}
}

func (m *FocusManager) restore(floating *Element) {
	target := m.snapshot
	m.snapshot = nil
	if ref := m.node.Reference.Get(); ref != nil && m.shouldFocusReference(floating) {
		target = ref
	}
	if !m.cfg.returnFocus || m.preventReturn || target == nil {
		debug.Log("FocusManager.restore: node=%s skipped (returnFocus=%v prevented=%v)", m.node.ID(), m.cfg.returnFocus, m.preventReturn)
		return
	}
	debug.Log("FocusManager.restore: node=%s -> %s", m.node.ID(), target)
	enqueueFocus(target, FocusRequest{KeepPrevious: true, PreventScroll: m.preventReturnScroll})
}

func (m *FocusManager) shouldFocusReference(floating *Element) bool {
	active := m.doc.ActiveElement()
	if floating.Contains(active) {
		return true
	}
	if t := m.node.Tree(); t != nil {
		for _, child := range t.Children(m.node.ID()) {
			if child.Floating.Get().Contains(active) {
				return true
			}
		}
	}
	switch eventType(m.node.OpenEvent()) {
	case EventClick, EventMouseDown, EventPointerDown:
		return true
	}
	return false
}
