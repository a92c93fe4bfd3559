package floating

import (
	"github.com/google/uuid"

	"github.com/grindlemire/go-floating/internal/debug"
)

// Node is one floating surface: a reference element, a floating element, an
// open flag and the dismiss channel that interactions publish on. A node
// holds its elements without owning them.
type Node struct {
	id       string
	parentID string
	tree     *Tree

	// Reference is the anchor element.
	Reference *State[*Element]
	// Floating is the positioned surface.
	Floating *State[*Element]
	// Open reports whether the surface is open.
	Open *State[bool]
	// Dismiss carries the reason for every dismissal before the close
	// request is made.
	Dismiss *Events[DismissPayload]

	openEvent    Event
	onOpenChange func(open bool, ev Event)
}

// NodeOption configures a Node.
type NodeOption func(*Node)

// WithNodeID overrides the generated identifier.
func WithNodeID(id string) NodeOption {
	return func(n *Node) {
		n.id = id
	}
}

// WithParent nests the node under another node of the same tree.
func WithParent(parent *Node) NodeOption {
	return func(n *Node) {
		if parent != nil {
			n.parentID = parent.id
		}
	}
}

// WithOnOpenChange installs the handler for open/close requests. Without
// one, requests are applied to Open directly.
func WithOnOpenChange(fn func(n *Node, open bool, ev Event)) NodeOption {
	return func(n *Node) {
		n.onOpenChange = func(open bool, ev Event) { fn(n, open, ev) }
	}
}

// WithElements sets the initial reference and floating elements.
func WithElements(reference, floating *Element) NodeOption {
	return func(n *Node) {
		n.Reference.Set(reference)
		n.Floating.Set(floating)
	}
}

// NewNode creates a closed node with a fresh identifier.
func NewNode(opts ...NodeOption) *Node {
	n := &Node{
		id:        uuid.NewString(),
		Reference: NewState[*Element](nil),
		Floating:  NewState[*Element](nil),
		Open:      NewState(false),
		Dismiss:   NewEvents[DismissPayload](),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// ID returns the node's stable identifier.
func (n *Node) ID() string {
	return n.id
}

// ParentID returns the parent node's identifier, or "".
func (n *Node) ParentID() string {
	return n.parentID
}

// Tree returns the tree the node is registered in, or nil.
func (n *Node) Tree() *Tree {
	return n.tree
}

// IsOpen reports whether the surface is open.
func (n *Node) IsOpen() bool {
	return n.Open.Get()
}

// OpenEvent returns the event that last opened the node.
func (n *Node) OpenEvent() Event {
	return n.openEvent
}

// RequestOpenChange asks for the node to open or close because of ev. The
// installed handler decides; the default applies the change.
func (n *Node) RequestOpenChange(open bool, ev Event) {
	debug.Log("Node.RequestOpenChange: node=%s open=%v event=%v", n.id, open, eventType(ev))
	if n.onOpenChange != nil {
		n.onOpenChange(open, ev)
		return
	}
	n.SetOpen(open, ev)
}

// SetOpen applies an open state change, remembering the event that opened
// the node.
func (n *Node) SetOpen(open bool, ev Event) {
	if open {
		n.openEvent = ev
	}
	n.Open.Set(open)
}

// EmitDismiss publishes payload on the dismiss channel.
func (n *Node) EmitDismiss(payload DismissPayload) {
	debug.Log("Node.EmitDismiss: node=%s kind=%s", n.id, payload.Kind)
	n.Dismiss.Emit(payload)
}

func eventType(ev Event) EventType {
	if ev == nil {
		return ""
	}
	return ev.Type()
}
