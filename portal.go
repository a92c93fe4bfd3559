package floating

import "github.com/grindlemire/go-floating/internal/debug"

// FocusManagerState is what a focus manager publishes to the portal it
// renders into.
type FocusManagerState struct {
	Modal           bool
	CloseOnFocusOut bool
	Open            bool
	Node            *Node
}

// Portal is a container element that floating content renders into,
// detached from its logical position in the tree. With preserved tab order,
// a non-modal open surface gets two outside guards around the container so
// that Tab and Shift+Tab can leave the portal as if its content followed
// the reference element.
type Portal struct {
	doc              *Document
	node             *Element
	preserveTabOrder bool

	beforeOutside *Element
	afterOutside  *Element
	beforeInside  *Element
	afterInside   *Element

	state *FocusManagerState
}

// PortalOption configures a Portal.
type PortalOption func(*portalConfig)

type portalConfig struct {
	root             *Element
	id               string
	preserveTabOrder bool
}

// WithPortalRoot mounts the portal container under root instead of the body.
func WithPortalRoot(root *Element) PortalOption {
	return func(c *portalConfig) { c.root = root }
}

// WithPortalID sets the container's id attribute.
func WithPortalID(id string) PortalOption {
	return func(c *portalConfig) { c.id = id }
}

// WithPreserveTabOrder toggles tab order preservation (default on).
func WithPreserveTabOrder(enabled bool) PortalOption {
	return func(c *portalConfig) { c.preserveTabOrder = enabled }
}

// NewPortal creates a portal container and mounts it.
func NewPortal(doc *Document, opts ...PortalOption) *Portal {
	cfg := portalConfig{preserveTabOrder: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.root == nil {
		cfg.root = doc.Body()
	}
	node := doc.CreateElement("div", WithAttr(AttrPortal, ""))
	if cfg.id != "" {
		node.SetAttr("id", cfg.id)
	}
	cfg.root.AddChild(node)
	return &Portal{doc: doc, node: node, preserveTabOrder: cfg.preserveTabOrder}
}

// Node returns the portal container.
func (p *Portal) Node() *Element {
	return p.node
}

// PreserveTabOrder reports whether the portal keeps its content in the
// reference's tab order.
func (p *Portal) PreserveTabOrder() bool {
	return p.preserveTabOrder
}

// PortalGuards holds the four boundary guards around portal content.
type PortalGuards struct {
	BeforeOutside *Element
	AfterOutside  *Element
	BeforeInside  *Element
	AfterInside   *Element
}

// Guards returns the currently rendered guards; absent ones are nil.
func (p *Portal) Guards() PortalGuards {
	return PortalGuards{
		BeforeOutside: p.beforeOutside,
		AfterOutside:  p.afterOutside,
		BeforeInside:  p.beforeInside,
		AfterInside:   p.afterInside,
	}
}

// setInsideGuards records the guards a focus manager rendered inside the
// portal.
func (p *Portal) setInsideGuards(before, after *Element) {
	p.beforeInside = before
	p.afterInside = after
}

// FocusManagerState returns the published focus manager state, or nil.
func (p *Portal) FocusManagerState() *FocusManagerState {
	return p.state
}

// SetFocusManagerState publishes the focus manager state and renders or
// removes the outside guards accordingly.
func (p *Portal) SetFocusManagerState(state *FocusManagerState) {
	p.state = state
	render := p.preserveTabOrder && state != nil && !state.Modal && state.Open
	if render == (p.beforeOutside != nil) {
		return
	}
	if !render {
		p.beforeOutside.Remove()
		p.afterOutside.Remove()
		p.beforeOutside, p.afterOutside = nil, nil
		return
	}
	parent := p.node.Parent()
	if parent == nil {
		return
	}
	p.beforeOutside = newFocusGuard(p.doc, "outside", p.onBeforeOutsideFocus)
	p.afterOutside = newFocusGuard(p.doc, "outside", p.onAfterOutsideFocus)
	parent.InsertBefore(p.beforeOutside, p.node)
	parent.InsertAfter(p.afterOutside, p.node)
}

// Unmount removes the container and any guards.
func (p *Portal) Unmount() {
	if p.beforeOutside != nil {
		p.beforeOutside.Remove()
		p.afterOutside.Remove()
		p.beforeOutside, p.afterOutside = nil, nil
	}
	p.node.Remove()
}

func (p *Portal) reference() *Element {
	if p.state == nil || p.state.Node == nil {
		return nil
	}
	return p.state.Node.Reference.Get()
}

// onBeforeOutsideFocus enters the portal when Tab arrives from outside and
// returns to the reference when Shift+Tab leaves the portal.
func (p *Portal) onBeforeOutsideFocus(ev *FocusEvent) {
	if isOutsideEvent(ev, p.node) {
		debug.Log("Portal: entering through the before guard")
		p.beforeInside.Focus()
		return
	}
	ref := p.reference()
	target := ref
	if ref != nil && !IsTabbable(ref) {
		if prev := tabbableBefore(p.doc, ref, p.node); prev != nil {
			target = prev
		}
	}
	debug.Log("Portal: leaving backwards to %s", target)
	target.Focus()
}

// onAfterOutsideFocus enters the portal when Shift+Tab arrives from outside
// and continues after the reference when Tab leaves the portal.
func (p *Portal) onAfterOutsideFocus(ev *FocusEvent) {
	if isOutsideEvent(ev, p.node) {
		debug.Log("Portal: entering through the after guard")
		p.afterInside.Focus()
		return
	}
	ref := p.reference()
	target := tabbableAfter(p.doc, ref, p.node)
	if target == nil {
		target = ref
	}
	debug.Log("Portal: leaving forwards to %s", target)
	target.Focus()
	if p.state != nil && p.state.CloseOnFocusOut && p.state.Node != nil {
		p.state.Node.RequestOpenChange(false, ev)
	}
}
