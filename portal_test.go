package floating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// portalFixture moves the floating element into a portal at the end of the
// body:
//
//	body
//	  button#before, button#reference, button#after
//	  [outside guard] div[portal] [outside guard]
type portalFixture struct {
	*fixture
	portal *Portal
}

func newPortalFixture(t *testing.T, items int, portalOpts []PortalOption, nodeOpts ...NodeOption) *portalFixture {
	t.Helper()
	f := newFixture(t, items, nodeOpts...)
	f.after.Remove()
	f.doc.Body().InsertAfter(f.after, f.reference)
	p := NewPortal(f.doc, portalOpts...)
	p.Node().AddChild(f.floating)
	return &portalFixture{fixture: f, portal: p}
}

func TestPortal_OutsideGuardsFollowFocusManagerState(t *testing.T) {
	type tc struct {
		portalOpts []PortalOption
		modal      bool
		wantGuards bool
	}

	tests := map[string]tc{
		"non-modal preserving tab order": {
			wantGuards: true,
		},
		"modal": {
			modal: true,
		},
		"tab order not preserved": {
			portalOpts: []PortalOption{WithPreserveTabOrder(false)},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newPortalFixture(t, 1, tt.portalOpts)
			m := f.manage(WithModal(tt.modal), WithPortal(f.portal))
			f.open()

			state := f.portal.FocusManagerState()
			require.NotNil(t, state)
			assert.Equal(t, tt.modal, state.Modal)
			assert.True(t, state.Open)
			assert.Same(t, f.node, state.Node)

			g := f.portal.Guards()
			assert.Equal(t, tt.wantGuards, g.BeforeOutside != nil)
			assert.Equal(t, tt.wantGuards, g.AfterOutside != nil)
			if tt.wantGuards {
				body := f.doc.Body().Children()
				n := len(body)
				assert.Same(t, g.BeforeOutside, body[n-3])
				assert.Same(t, f.portal.Node(), body[n-2])
				assert.Same(t, g.AfterOutside, body[n-1])
				v, _ := g.BeforeOutside.Attr(AttrGuardType)
				assert.Equal(t, "outside", v)
			}
			start, end := m.Guards()
			assert.Same(t, start, g.BeforeInside)
			assert.Same(t, end, g.AfterInside)

			f.close()
			assert.Nil(t, f.portal.FocusManagerState())
			g = f.portal.Guards()
			assert.Nil(t, g.BeforeOutside)
			assert.Nil(t, g.AfterOutside)
			assert.Nil(t, g.BeforeInside)
		})
	}
}

func TestPortal_TabOutOfContentContinuesAfterReference(t *testing.T) {
	var closes int
	f := newPortalFixture(t, 2, nil, closeCounter(&closes))
	f.manage(WithModal(false), WithPortal(f.portal))
	f.focus(f.reference)
	f.open()
	requireActive(t, f.fixture, "item1")

	f.focus(f.items[1])
	f.press(KeyTab, ModNone)

	requireActive(t, f.fixture, "after")
	assert.Equal(t, 1, closes)
	assert.False(t, f.node.IsOpen())
}

func TestPortal_TabIntoContentFromPrecedingElement(t *testing.T) {
	f := newPortalFixture(t, 2, nil)
	f.manage(WithModal(false), WithPortal(f.portal), WithCloseOnFocusOut(false))
	f.open()

	f.focus(f.after)
	f.press(KeyTab, ModNone)
	requireActive(t, f.fixture, "item1")

	f.press(KeyTab, ModShift)
	requireActive(t, f.fixture, "reference")
	assert.True(t, f.node.IsOpen())
}

func TestPortal_ShiftTabIntoContentFromFollowingElement(t *testing.T) {
	f := newPortalFixture(t, 2, nil)
	tail := f.doc.CreateElement("button", WithID("tail"))
	f.doc.Body().AddChild(tail)
	f.manage(WithModal(false), WithPortal(f.portal), WithCloseOnFocusOut(false))
	f.open()

	f.focus(tail)
	f.press(KeyTab, ModShift)
	requireActive(t, f.fixture, "item2")
}

func TestPortal_ShiftTabOutFallsBackBeforeUntabbableReference(t *testing.T) {
	f := newPortalFixture(t, 1, nil)
	f.reference.SetTabIndex(-1)
	f.manage(WithModal(false), WithPortal(f.portal), WithCloseOnFocusOut(false))
	f.open()
	requireActive(t, f.fixture, "item1")

	f.press(KeyTab, ModShift)
	requireActive(t, f.fixture, "before")
}

func TestPortal_NestedPortalsStayVisible(t *testing.T) {
	f := newPortalFixture(t, 1, nil)
	nested := NewPortal(f.doc, WithPortalRoot(f.portal.Node()), WithPortalID("nested"))
	f.manage(WithPortal(f.portal))
	f.open()

	assert.False(t, nested.Node().HasAttr(AttrInertMarker))
	assert.True(t, f.before.HasAttr(AttrInertMarker))
}

func TestPortal_Unmount(t *testing.T) {
	f := newPortalFixture(t, 1, nil)
	f.manage(WithModal(false), WithPortal(f.portal))
	f.open()

	f.portal.Unmount()
	assert.False(t, f.portal.Node().IsConnected())
	assert.Nil(t, f.portal.Guards().BeforeOutside)
	assert.Nil(t, f.doc.GetByID("floating"))
}
