package floating

import "github.com/grindlemire/go-floating/internal/debug"

// FocusManager manages keyboard focus for one floating surface. While the
// node is open it moves focus into the surface, traps Tab when modal, closes
// the surface when focus leaves the floating tree, hides the rest of the
// document from assistive technology, keeps the floating element's tabindex
// in line with its content and, on close, returns focus to where it was.
type FocusManager struct {
	doc  *Document
	node *Node
	cfg  focusManagerConfig

	disabled *State[bool]
	scope    *Scope
	trapped  bool

	startGuard   *Element
	endGuard     *Element
	startDismiss *Element
	endDismiss   *Element

	// Per engagement.
	snapshot            *Element
	preventReturn       bool
	preventReturnScroll bool
	pointerDown         bool
	pointerTimer        int
}

// NewFocusManager creates a focus manager for node. Nothing happens until
// Mount.
func NewFocusManager(doc *Document, node *Node, opts ...FocusManagerOption) *FocusManager {
	if doc == nil || node == nil {
		panic("floating: NewFocusManager requires a document and a node")
	}
	cfg := defaultFocusManagerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &FocusManager{
		doc:      doc,
		node:     node,
		cfg:      cfg,
		disabled: NewState(cfg.disabled),
	}
}

// Node returns the managed node.
func (m *FocusManager) Node() *Node {
	return m.node
}

// Mount starts managing focus. The manager engages whenever the node is
// open, its floating element is set and it is not disabled. Mounting twice
// is a no-op.
func (m *FocusManager) Mount() {
	if m.scope != nil && !m.scope.Disposed() {
		return
	}
	debug.Log("FocusManager.Mount: node=%s modal=%v order=%s", m.node.ID(), m.cfg.modal, m.cfg.order)
	m.scope = NewScope()
	m.scope.Effect(m.engage, m.node.Open, m.node.Floating, m.disabled)
}

// Unmount releases everything the manager acquired, restoring focus if it
// was engaged. Unmounting twice is a no-op.
func (m *FocusManager) Unmount() {
	if m.scope == nil || m.scope.Disposed() {
		return
	}
	debug.Log("FocusManager.Unmount: node=%s", m.node.ID())
	m.scope.Dispose()
}

// SetDisabled enables or disables the manager.
func (m *FocusManager) SetDisabled(disabled bool) {
	m.disabled.Set(disabled)
}

// Disabled reports whether the manager is disabled.
func (m *FocusManager) Disabled() bool {
	return m.disabled.Get()
}

// Trapped reports whether Tab is currently being intercepted.
func (m *FocusManager) Trapped() bool {
	return m.trapped
}

// Guards returns the inside focus guards, nil when not rendered.
func (m *FocusManager) Guards() (start, end *Element) {
	return m.startGuard, m.endGuard
}

// DismissButtons returns the visually hidden dismiss buttons, nil when not
// rendered.
func (m *FocusManager) DismissButtons() (start, end *Element) {
	return m.startDismiss, m.endDismiss
}

// engage runs once per change of open, floating or disabled. Cleanups run in
// reverse, so restoration registered last reads the document before anything
// else is torn down.
func (m *FocusManager) engage(run *Scope) {
	floating := m.node.Floating.Get()
	if !m.node.IsOpen() || floating == nil {
		return
	}
	disabled := m.disabled.Get()
	m.render(run, floating, disabled)
	if disabled {
		return
	}

	m.snapshot = m.doc.ActiveElement()
	m.preventReturn = false
	m.preventReturnScroll = false
	debug.Log("FocusManager.engage: node=%s snapshot=%s", m.node.ID(), m.snapshot)

	if p := m.cfg.portal; p != nil {
		p.SetFocusManagerState(&FocusManagerState{
			Modal:           m.cfg.modal,
			CloseOnFocusOut: m.cfg.closeOnFocusOut,
			Open:            true,
			Node:            m.node,
		})
		run.OnCleanup(func() { p.SetFocusManagerState(nil) })
	}
	if m.cfg.modal {
		m.trapped = true
		run.OnCleanup(m.doc.AddEventListener(EventKeyDown, live(run, m.onTrapKeyDown)))
		run.OnCleanup(func() { m.trapped = false })
	}
	if m.cfg.closeOnFocusOut {
		run.Effect(func(sub *Scope) { m.watchFocusOut(sub, floating) }, m.node.Reference)
	}
	run.Effect(func(sub *Scope) { m.mask(sub, floating) }, m.node.Reference)
	m.observeContent(run, floating)
	m.focusInitial(floating)
	m.watchDismiss(run, floating)
}

func (m *FocusManager) guardsEnabled() bool {
	if !m.doc.SupportsInert() {
		return true
	}
	return m.cfg.guards
}

// render places [start guard][start dismiss] floating [end dismiss][end
// guard] as siblings of the floating element.
func (m *FocusManager) render(run *Scope, floating *Element, disabled bool) {
	parent := floating.Parent()
	if parent == nil {
		return
	}
	combobox := m.node.Reference.Get().IsTypeableCombobox()

	if !disabled || m.cfg.dismissEnabled || m.cfg.modal {
		onClick := func(ev Event) { m.node.RequestOpenChange(false, ev) }
		if !combobox {
			m.startDismiss = newDismissButton(m.doc, m.cfg.label(), onClick)
			parent.InsertBefore(m.startDismiss, floating)
		}
		m.endDismiss = newDismissButton(m.doc, m.cfg.label(), onClick)
		parent.InsertAfter(m.endDismiss, floating)
	}

	if !disabled && m.guardsEnabled() && !combobox && (m.cfg.portal != nil || m.cfg.modal) {
		first, last := floating, floating
		if m.startDismiss != nil {
			first = m.startDismiss
		}
		if m.endDismiss != nil {
			last = m.endDismiss
		}
		m.startGuard = newFocusGuard(m.doc, "inside", m.onStartGuardFocus)
		m.endGuard = newFocusGuard(m.doc, "inside", m.onEndGuardFocus)
		parent.InsertBefore(m.startGuard, first)
		parent.InsertAfter(m.endGuard, last)
		if p := m.cfg.portal; p != nil {
			p.setInsideGuards(m.startGuard, m.endGuard)
		}
	}

	run.OnCleanup(func() {
		if p := m.cfg.portal; p != nil && m.startGuard != nil {
			p.setInsideGuards(nil, nil)
		}
		for _, el := range []*Element{m.startGuard, m.startDismiss, m.endDismiss, m.endGuard} {
			el.Remove()
		}
		m.startGuard, m.endGuard = nil, nil
		m.startDismiss, m.endDismiss = nil, nil
	})
}

// mask hides everything outside the floating tree for the engagement.
func (m *FocusManager) mask(run *Scope, floating *Element) {
	reference := m.node.Reference.Get()
	inside := []*Element{floating}
	if p := m.cfg.portal; p != nil {
		// Portals nested in this one stay visible.
		inside = append(inside, p.Node().QueryAll(func(n *Element) bool {
			return n.HasAttr(AttrPortal)
		})...)
	}
	if m.startDismiss != nil {
		inside = append(inside, m.startDismiss)
	}
	if m.endDismiss != nil {
		inside = append(inside, m.endDismiss)
	}
	if reference != nil && (m.cfg.order.Has(OrderReference) || reference.IsTypeableCombobox()) {
		inside = append(inside, reference)
	}

	mode := MaskMarkerOnly
	if m.cfg.modal {
		mode = MaskInert
		if m.guardsEnabled() {
			mode = MaskAriaHidden
		}
	}
	run.OnCleanup(m.doc.MarkOthers(inside, mode))
}

// onStartGuardFocus handles focus arriving on the start guard.
func (m *FocusManager) onStartGuardFocus(ev *FocusEvent) {
	if m.cfg.modal {
		els := m.TabOrder()
		if len(els) == 0 {
			return
		}
		target := els[len(els)-1]
		if m.cfg.order.At(0) == OrderReference {
			target = els[0]
		}
		debug.Log("FocusManager: start guard redirects to %s", target)
		enqueueFocus(target, FocusRequest{})
		return
	}
	p := m.cfg.portal
	if p == nil || !p.PreserveTabOrder() {
		return
	}
	m.preventReturn = false
	if isOutsideEvent(ev, p.Node()) {
		m.SyncTabIndex()
		next := tabbableAfter(m.doc, m.startGuard, nil)
		if next == nil {
			next = m.node.Reference.Get()
		}
		next.Focus()
		return
	}
	p.beforeOutside.Focus()
}

// onEndGuardFocus handles focus arriving on the end guard.
func (m *FocusManager) onEndGuardFocus(ev *FocusEvent) {
	if m.cfg.modal {
		if els := m.TabOrder(); len(els) > 0 {
			debug.Log("FocusManager: end guard redirects to %s", els[0])
			enqueueFocus(els[0], FocusRequest{})
		}
		return
	}
	p := m.cfg.portal
	if p == nil || !p.PreserveTabOrder() {
		return
	}
	if m.cfg.closeOnFocusOut {
		m.preventReturn = true
	}
	if isOutsideEvent(ev, p.Node()) {
		m.SyncTabIndex()
		prev := tabbableBefore(m.doc, m.endGuard, nil)
		if prev == nil {
			prev = m.node.Reference.Get()
		}
		prev.Focus()
		return
	}
	p.afterOutside.Focus()
}

// live drops events delivered after run was disposed; dispatch snapshots its
// listeners, so a handler can fire once more in the tick that removed it.
func live(run *Scope, fn func(Event)) func(Event) {
	return func(ev Event) {
		if run.Disposed() {
			return
		}
		fn(ev)
	}
}
