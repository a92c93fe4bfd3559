package floating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFocusReturn_DismissOverrides(t *testing.T) {
	type tc struct {
		opts       []FocusManagerOption
		payload    *DismissPayload
		want       string
		wantScroll bool
	}

	tests := map[string]tc{
		"no dismissal returns to the snapshot": {
			want:       "before",
			wantScroll: true,
		},
		"absent override suppresses": {
			payload: &DismissPayload{Kind: DismissOutsidePress},
			want:    "after",
		},
		"true override returns": {
			payload:    &DismissPayload{Kind: DismissOutsidePress, ReturnFocus: ReturnFocusBool(true)},
			want:       "before",
			wantScroll: true,
		},
		"false override suppresses": {
			payload: &DismissPayload{Kind: DismissAncestorScroll, ReturnFocus: ReturnFocusBool(false)},
			want:    "after",
		},
		"structured override returns without scrolling": {
			payload: &DismissPayload{Kind: DismissOutsidePress, ReturnFocus: ReturnFocusPreventScroll(true)},
			want:    "before",
		},
		"structured override returns with scrolling": {
			payload:    &DismissPayload{Kind: DismissOutsidePress, ReturnFocus: ReturnFocusPreventScroll(false)},
			want:       "before",
			wantScroll: true,
		},
		"escape returns to the reference": {
			payload:    &DismissPayload{Kind: DismissEscapeKey, ReturnFocus: ReturnFocusBool(false)},
			want:       "reference",
			wantScroll: true,
		},
		"reference press ignores the override": {
			payload:    &DismissPayload{Kind: DismissReferencePress, ReturnFocus: ReturnFocusBool(false)},
			want:       "before",
			wantScroll: true,
		},
		"return focus disabled": {
			opts: []FocusManagerOption{WithReturnFocus(false)},
			want: "after",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, 2)
			opts := append([]FocusManagerOption{WithCloseOnFocusOut(false)}, tt.opts...)
			f.manage(opts...)

			f.focus(f.before)
			f.open()
			requireActive(t, f, "item1")
			f.focus(f.after)

			scrolled := len(f.doc.ScrolledIntoView())
			if tt.payload != nil {
				f.node.EmitDismiss(*tt.payload)
			}
			f.close()

			requireActive(t, f, tt.want)
			if tt.want != "after" {
				assert.Equal(t, tt.wantScroll, len(f.doc.ScrolledIntoView()) > scrolled)
			}
		})
	}
}

func TestFocusReturn_PrefersReference(t *testing.T) {
	type tc struct {
		openEvent Event
		focusIn   bool
	}

	tests := map[string]tc{
		"focus inside the floating element": {
			focusIn: true,
		},
		"opened by click": {
			openEvent: newPointerEvent(EventClick, nil),
		},
		"opened by mousedown": {
			openEvent: newPointerEvent(EventMouseDown, nil),
		},
		"opened by pointerdown": {
			openEvent: newPointerEvent(EventPointerDown, nil),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, 1)
			f.manage(WithCloseOnFocusOut(false))

			f.focus(f.before)
			f.node.SetOpen(true, tt.openEvent)
			f.doc.Flush()
			if !tt.focusIn {
				f.focus(f.after)
			}
			f.close()

			requireActive(t, f, "reference")
		})
	}
}

func TestFocusReturn_KeyboardOpenReturnsToSnapshot(t *testing.T) {
	f := newFixture(t, 1)
	f.manage(WithCloseOnFocusOut(false))

	f.focus(f.before)
	f.node.SetOpen(true, NewKeyEvent(KeyEnter, ModNone))
	f.doc.Flush()
	f.focus(f.after)
	f.close()

	requireActive(t, f, "before")
}

func TestFocusReturn_NestedTeardownEndsOnRootReference(t *testing.T) {
	tree := NewTree()
	f := newFixture(t, 2)
	assert.NoError(t, tree.Register(f.node))

	childFloating := f.doc.CreateElement("div", WithID("child-floating"),
		WithChildren(f.doc.CreateElement("button", WithID("child1"))),
	)
	f.doc.Body().AddChild(childFloating)
	child := NewNode(WithParent(f.node), WithElements(f.items[0], childFloating))
	assert.NoError(t, tree.Register(child))

	f.manage()
	NewFocusManager(f.doc, child).Mount()

	f.focus(f.reference)
	f.open()
	child.SetOpen(true, nil)
	f.doc.Flush()
	requireActive(t, f, "child1")

	// Close root first, then the child, and unmount both surfaces before the
	// queued focus requests run.
	f.node.SetOpen(false, nil)
	child.SetOpen(false, nil)
	childFloating.Remove()
	f.floating.Remove()
	f.doc.Flush()

	requireActive(t, f, "reference")
}

func TestFocusReturn_DetachedTargetIsIgnored(t *testing.T) {
	f := newFixture(t, 1)
	f.manage(WithCloseOnFocusOut(false))

	f.focus(f.before)
	f.open()
	f.focus(f.after)
	f.node.SetOpen(false, nil)
	f.before.Remove()
	f.doc.Flush()
	requireActive(t, f, "after")
}
