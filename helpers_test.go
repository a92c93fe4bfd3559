package floating

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixture is a document laid out as
//
//	body
//	  button#before
//	  button#reference
//	  div#floating
//	    button#item1 ... button#itemN
//	  button#after
type fixture struct {
	doc       *Document
	before    *Element
	reference *Element
	floating  *Element
	after     *Element
	items     []*Element
	node      *Node
}

func newFixture(t *testing.T, items int, opts ...NodeOption) *fixture {
	t.Helper()
	return newFixtureIn(t, NewDocument(), items, opts...)
}

func newFixtureIn(t *testing.T, doc *Document, items int, opts ...NodeOption) *fixture {
	t.Helper()
	f := &fixture{doc: doc}
	f.before = doc.CreateElement("button", WithID("before"))
	f.reference = doc.CreateElement("button", WithID("reference"))
	f.floating = doc.CreateElement("div", WithID("floating"))
	for i := 1; i <= items; i++ {
		item := doc.CreateElement("button", WithID(fmt.Sprintf("item%d", i)))
		f.floating.AddChild(item)
		f.items = append(f.items, item)
	}
	f.after = doc.CreateElement("button", WithID("after"))
	doc.Body().AddChild(f.before, f.reference, f.floating, f.after)
	f.node = NewNode(append([]NodeOption{WithElements(f.reference, f.floating)}, opts...)...)
	return f
}

func (f *fixture) manage(opts ...FocusManagerOption) *FocusManager {
	m := NewFocusManager(f.doc, f.node, opts...)
	m.Mount()
	return m
}

func (f *fixture) open() {
	f.node.SetOpen(true, nil)
	f.doc.Flush()
}

func (f *fixture) close() {
	f.node.SetOpen(false, nil)
	f.doc.Flush()
}

func (f *fixture) press(key Key, mod Modifier) *KeyEvent {
	ev := f.doc.PressKey(key, mod)
	f.doc.Flush()
	return ev
}

func (f *fixture) focus(el *Element) {
	el.Focus()
	f.doc.Flush()
}

func (f *fixture) byID(id string) *Element {
	switch id {
	case "reference":
		return f.reference
	case "floating":
		return f.floating
	}
	return f.doc.GetByID(id)
}

// activeID names the focused element, or "" when nothing is focused.
func (f *fixture) activeID() string {
	if el := f.doc.ActiveElement(); el != nil {
		return el.ID()
	}
	return ""
}

func requireActive(t *testing.T, f *fixture, want string) {
	t.Helper()
	require.Equal(t, want, f.activeID(), "active element")
}

func ids(els []*Element) []string {
	out := make([]string, len(els))
	for i, el := range els {
		out[i] = el.ID()
		if out[i] == "" {
			out[i] = el.Tag()
		}
	}
	return out
}
