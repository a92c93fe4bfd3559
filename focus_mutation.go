package floating

// SyncTabIndex sets the floating element's tabindex to "0" when it has to be
// reachable itself and "-1" otherwise. It only writes on change.
func (m *FocusManager) SyncTabIndex() {
	floating := m.node.Floating.Get()
	if floating == nil {
		return
	}
	want := "-1"
	if m.cfg.order.Has(OrderFloating) ||
		(m.doc.ActiveElement() != m.node.Reference.Get() && len(m.tabbableContent()) == 0) {
		want = "0"
	}
	if cur, ok := floating.Attr(AttrTabIndex); ok && cur == want {
		return
	}
	floating.SetAttr(AttrTabIndex, want)
}

// observeContent keeps the tabindex in sync while content changes.
func (m *FocusManager) observeContent(run *Scope, floating *Element) {
	m.SyncTabIndex()
	obs := m.doc.NewMutationObserver(func([]MutationRecord) {
		if !run.Disposed() {
			m.SyncTabIndex()
		}
	})
	obs.Observe(floating, MutationObserverInit{ChildList: true, Attributes: true, Subtree: true})
	run.OnCleanup(obs.Disconnect)
}
