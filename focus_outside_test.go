package floating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// closeCounter installs an open-change handler that counts close requests
// and applies them.
func closeCounter(count *int) NodeOption {
	return WithOnOpenChange(func(n *Node, open bool, ev Event) {
		if !open {
			*count++
		}
		n.SetOpen(open, ev)
	})
}

func TestFocusOutside_UnrelatedElementDismissesOnce(t *testing.T) {
	type tc struct {
		opts  []FocusManagerOption
		start func(f *fixture)
	}

	tests := map[string]tc{
		"non-modal from content": {
			opts:  []FocusManagerOption{WithModal(false)},
			start: func(f *fixture) {},
		},
		"modal from the reference": {
			opts:  []FocusManagerOption{WithoutInitialFocus()},
			start: func(f *fixture) { f.focus(f.reference) },
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var closes int
			f := newFixture(t, 2, closeCounter(&closes))
			f.manage(tt.opts...)
			var kinds []DismissKind
			f.node.Dismiss.Subscribe(func(p DismissPayload) { kinds = append(kinds, p.Kind) })

			tt.start(f)
			f.open()
			f.focus(f.after)

			assert.Equal(t, 1, closes)
			assert.False(t, f.node.IsOpen())
			assert.Equal(t, []DismissKind{DismissOutsideFocus}, kinds)
			requireActive(t, f, "after")
		})
	}
}

func TestFocusOutside_InsideTargetsKeepOpen(t *testing.T) {
	type tc struct {
		target func(f *fixture) *Element
	}

	tests := map[string]tc{
		"content item": {
			target: func(f *fixture) *Element { return f.items[1] },
		},
		"floating element": {
			target: func(f *fixture) *Element { return f.floating },
		},
		"reference": {
			target: func(f *fixture) *Element { return f.reference },
		},
		"focus guard": {
			target: func(f *fixture) *Element {
				g := f.doc.CreateElement("span", WithTabIndex(0), WithAttr(AttrFocusGuard, ""))
				f.doc.Body().AddChild(g)
				return g
			},
		},
		"ancestor of the floating element": {
			target: func(f *fixture) *Element {
				wrapper := f.doc.CreateElement("div", WithID("wrapper"), WithTabIndex(-1))
				f.doc.Body().InsertBefore(wrapper, f.floating)
				wrapper.AddChild(f.floating)
				return wrapper
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var closes int
			f := newFixture(t, 2, closeCounter(&closes))
			target := tt.target(f)
			f.manage(WithModal(false))
			f.open()
			requireActive(t, f, "item1")

			f.focus(target)
			assert.Equal(t, 0, closes)
			assert.True(t, f.node.IsOpen())
		})
	}
}

func TestFocusOutside_PointerDownOnReferenceSuppressesForOneTick(t *testing.T) {
	var closes int
	f := newFixture(t, 1, closeCounter(&closes))
	f.manage(WithoutInitialFocus())
	f.focus(f.reference)
	f.open()

	f.doc.PointerDown(f.reference)
	f.after.Focus()
	assert.Equal(t, 0, closes)

	f.doc.Flush()
	f.focus(f.reference)
	f.focus(f.after)
	assert.Equal(t, 1, closes)
}

func TestFocusOutside_SnapshotTargetDoesNotDismiss(t *testing.T) {
	var closes int
	f := newFixture(t, 1, closeCounter(&closes))
	f.manage(WithModal(false))
	f.focus(f.before)
	f.open()
	requireActive(t, f, "item1")

	f.focus(f.before)
	assert.Equal(t, 0, closes)
}

func TestFocusOutside_CloseOnFocusOutDisabled(t *testing.T) {
	var closes int
	f := newFixture(t, 1, closeCounter(&closes))
	f.manage(WithModal(false), WithCloseOnFocusOut(false))
	f.open()

	f.focus(f.after)
	assert.Equal(t, 0, closes)
	assert.Equal(t, 0, f.reference.ListenerCount(EventFocusOut))
}

func TestFocusOutside_NestedSurfaces(t *testing.T) {
	tree := NewTree()
	var parentCloses, childCloses int
	f := newFixture(t, 2, closeCounter(&parentCloses))
	require.NoError(t, tree.Register(f.node))

	childFloating := f.doc.CreateElement("div", WithID("child-floating"),
		WithChildren(
			f.doc.CreateElement("button", WithID("child1")),
			f.doc.CreateElement("button", WithID("child2")),
		),
	)
	f.doc.Body().AddChild(childFloating)
	child := NewNode(WithParent(f.node), WithElements(f.items[0], childFloating), closeCounter(&childCloses))
	require.NoError(t, tree.Register(child))

	f.manage(WithModal(false))
	NewFocusManager(f.doc, child, WithModal(false)).Mount()

	f.open()
	requireActive(t, f, "item1")

	child.SetOpen(true, nil)
	f.doc.Flush()
	requireActive(t, f, "child1")
	assert.Equal(t, 0, parentCloses)
	assert.True(t, f.node.IsOpen())

	// Focus moving back up to the parent's anchor keeps the child open.
	f.focus(f.items[0])
	assert.Equal(t, 0, childCloses)

	f.focus(f.doc.GetByID("child2"))
	f.focus(f.items[1])
	assert.Equal(t, 1, childCloses)
	assert.Equal(t, 0, parentCloses)
	assert.True(t, f.node.IsOpen())
}
