package floating

import "github.com/grindlemire/go-floating/internal/debug"

// DismissKind says why a floating surface is being dismissed.
type DismissKind string

const (
	DismissEscapeKey      DismissKind = "escapeKey"
	DismissReferencePress DismissKind = "referencePress"
	DismissOutsidePress   DismissKind = "outsidePress"
	DismissOutsideFocus   DismissKind = "outsideFocus"
	DismissAncestorScroll DismissKind = "ancestorScroll"
)

// ReturnFocusOverride is the optional return-focus instruction carried by a
// dismissal. It is either a plain boolean or a structured {PreventScroll}
// record.
type ReturnFocusOverride struct {
	Structured    bool
	Enabled       bool
	PreventScroll bool
}

// ReturnFocusBool builds the plain boolean form.
func ReturnFocusBool(enabled bool) *ReturnFocusOverride {
	return &ReturnFocusOverride{Enabled: enabled}
}

// ReturnFocusPreventScroll builds the structured form.
func ReturnFocusPreventScroll(preventScroll bool) *ReturnFocusOverride {
	return &ReturnFocusOverride{Structured: true, PreventScroll: preventScroll}
}

// DismissPayload is published on a node's dismiss channel before the close
// request it explains.
type DismissPayload struct {
	Kind        DismissKind
	ReturnFocus *ReturnFocusOverride
	Event       Event
}

// Dismiss closes a node on Escape, on presses outside the floating tree and,
// optionally, on presses of the reference element. Each dismissal is
// published on the node's dismiss channel before the close request.
type Dismiss struct {
	doc  *Document
	node *Node
	cfg  dismissConfig

	scope *Scope
}

type dismissConfig struct {
	escapeKey      bool
	outsidePress   bool
	referencePress bool
	returnFocus    *ReturnFocusOverride
}

// DismissOption configures a Dismiss.
type DismissOption func(*dismissConfig)

// WithEscapeKey toggles dismissal on Escape (default on).
func WithEscapeKey(enabled bool) DismissOption {
	return func(c *dismissConfig) { c.escapeKey = enabled }
}

// WithOutsidePress toggles dismissal on presses outside the tree (default on).
func WithOutsidePress(enabled bool) DismissOption {
	return func(c *dismissConfig) { c.outsidePress = enabled }
}

// WithReferencePress toggles dismissal on presses of the reference (default off).
func WithReferencePress(enabled bool) DismissOption {
	return func(c *dismissConfig) { c.referencePress = enabled }
}

// WithOutsidePressReturnFocus sets the override outside presses carry. The
// default is ReturnFocusBool(false): a deliberate outside press keeps focus
// where the user put it.
func WithOutsidePressReturnFocus(o *ReturnFocusOverride) DismissOption {
	return func(c *dismissConfig) { c.returnFocus = o }
}

// NewDismiss creates a dismiss interaction for node.
func NewDismiss(doc *Document, node *Node, opts ...DismissOption) *Dismiss {
	if doc == nil || node == nil {
		panic("floating: NewDismiss requires a document and a node")
	}
	cfg := dismissConfig{
		escapeKey:    true,
		outsidePress: true,
		returnFocus:  ReturnFocusBool(false),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Dismiss{doc: doc, node: node, cfg: cfg}
}

// Mount starts listening while the node is open. Mounting twice is a no-op.
func (d *Dismiss) Mount() {
	if d.scope != nil && !d.scope.Disposed() {
		return
	}
	d.scope = NewScope()
	d.scope.Effect(func(run *Scope) {
		if !d.node.IsOpen() {
			return
		}
		if d.cfg.escapeKey {
			run.OnCleanup(d.doc.AddEventListener(EventKeyDown, d.onKeyDown))
		}
		if d.cfg.outsidePress {
			run.OnCleanup(d.doc.AddEventListener(EventPointerDown, d.onOutsidePress))
		}
		if ref := d.node.Reference.Get(); ref != nil && d.cfg.referencePress {
			run.OnCleanup(ref.AddEventListener(EventPointerDown, d.onReferencePress))
		}
	}, d.node.Open, d.node.Reference)
}

// Unmount stops listening. Unmounting twice is a no-op.
func (d *Dismiss) Unmount() {
	if d.scope != nil {
		d.scope.Dispose()
	}
}

func (d *Dismiss) onKeyDown(ev Event) {
	ke, ok := ev.(*KeyEvent)
	if !ok || ke.Key != KeyEscape || !d.node.IsOpen() {
		return
	}
	// The innermost open surface handles Escape.
	if t := d.node.Tree(); t != nil && len(t.Children(d.node.ID())) > 0 {
		return
	}
	d.dismiss(DismissPayload{Kind: DismissEscapeKey, Event: ev})
}

func (d *Dismiss) onOutsidePress(ev Event) {
	if !d.node.IsOpen() {
		return
	}
	target := ev.Target()
	if d.insideTree(target) {
		return
	}
	d.dismiss(DismissPayload{Kind: DismissOutsidePress, ReturnFocus: d.cfg.returnFocus, Event: ev})
}

func (d *Dismiss) onReferencePress(ev Event) {
	if !d.node.IsOpen() {
		return
	}
	d.dismiss(DismissPayload{Kind: DismissReferencePress, Event: ev})
}

func (d *Dismiss) insideTree(target *Element) bool {
	if target == nil {
		return false
	}
	if d.node.Floating.Get().Contains(target) || d.node.Reference.Get().Contains(target) {
		return true
	}
	if target.HasAttr(AttrFocusGuard) {
		return true
	}
	if t := d.node.Tree(); t != nil {
		for _, child := range t.Children(d.node.ID()) {
			if child.Floating.Get().Contains(target) || child.Reference.Get().Contains(target) {
				return true
			}
		}
	}
	return false
}

func (d *Dismiss) dismiss(payload DismissPayload) {
	debug.Log("Dismiss: node=%s kind=%s", d.node.ID(), payload.Kind)
	d.node.EmitDismiss(payload)
	d.node.RequestOpenChange(false, payload.Event)
}
