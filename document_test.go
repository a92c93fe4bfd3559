package floating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_FocusEvents(t *testing.T) {
	doc := NewDocument()
	a := doc.CreateElement("button", WithID("a"))
	b := doc.CreateElement("button", WithID("b"))
	wrap := doc.CreateElement("div", WithChildren(a, b))
	doc.Body().AddChild(wrap)

	var log []string
	record := func(name string) func(Event) {
		return func(ev Event) {
			rel := "none"
			if fe := ev.(*FocusEvent); fe.RelatedTarget != nil {
				rel = fe.RelatedTarget.ID()
			}
			log = append(log, name+":"+string(ev.Type())+":"+ev.Target().ID()+"->"+rel)
		}
	}
	for _, typ := range []EventType{EventFocus, EventBlur, EventFocusIn, EventFocusOut} {
		wrap.AddEventListener(typ, record("wrap"))
	}
	doc.AddEventListener(EventFocusIn, record("doc"))
	doc.AddEventListener(EventFocus, record("doc"))

	a.Focus()
	log = nil
	b.Focus()

	// focus and blur do not bubble; focusin and focusout do.
	assert.Equal(t, []string{
		"wrap:focusout:a->b",
		"wrap:focusin:b->a",
		"doc:focusin:b->a",
	}, log)
	assert.True(t, b.IsFocused())
	assert.Same(t, b, doc.ActiveElement())
}

func TestDocument_FocusIgnoresUnfocusable(t *testing.T) {
	doc := NewDocument()
	other := NewDocument()
	a := doc.CreateElement("button", WithID("a"))
	div := doc.CreateElement("div")
	foreign := other.CreateElement("button")
	other.Body().AddChild(foreign)
	doc.Body().AddChild(a, div)
	a.Focus()

	div.Focus()
	foreign.Focus()
	New("button").Focus()
	assert.Same(t, a, doc.ActiveElement())

	a.Blur()
	assert.Nil(t, doc.ActiveElement())
}

func TestDocument_BlurHandlerCanRedirectFocus(t *testing.T) {
	doc := NewDocument()
	a := doc.CreateElement("button", WithID("a"))
	b := doc.CreateElement("button", WithID("b"))
	c := doc.CreateElement("button", WithID("c"))
	doc.Body().AddChild(a, b, c)
	a.Focus()

	a.AddEventListener(EventBlur, func(Event) { c.Focus() })
	var bFocused bool
	b.AddEventListener(EventFocus, func(Event) { bFocused = true })

	b.Focus()
	assert.Same(t, c, doc.ActiveElement())
	assert.False(t, bFocused)
}

func TestDocument_PressKeyTab(t *testing.T) {
	type tc struct {
		start string
		mod   Modifier
		want  string
	}

	tests := map[string]tc{
		"forward":                    {start: "a", want: "b"},
		"backward":                   {start: "b", mod: ModShift, want: "a"},
		"skips untabbable":           {start: "b", want: "d"},
		"from nothing goes first":    {want: "a"},
		"backward from nothing":      {mod: ModShift, want: "d"},
		"leaves the document":        {start: "d"},
		"resumes from a focused div": {start: "c", want: "d"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			doc := NewDocument()
			doc.Body().AddChild(
				doc.CreateElement("button", WithID("a")),
				doc.CreateElement("button", WithID("b")),
				doc.CreateElement("div", WithID("c"), WithTabIndex(-1)),
				doc.CreateElement("button", WithID("d")),
			)
			if tt.start != "" {
				doc.GetByID(tt.start).Focus()
			}
			ev := doc.PressKey(KeyTab, tt.mod)
			assert.False(t, ev.DefaultPrevented())

			if tt.want == "" {
				assert.Nil(t, doc.ActiveElement())
				return
			}
			require.NotNil(t, doc.ActiveElement())
			assert.Equal(t, tt.want, doc.ActiveElement().ID())
		})
	}
}

func TestDocument_PressKeyDefaultPrevented(t *testing.T) {
	doc := NewDocument()
	a := doc.CreateElement("button", WithID("a"))
	b := doc.CreateElement("button", WithID("b"))
	doc.Body().AddChild(a, b)
	a.Focus()

	unbind := doc.AddEventListener(EventKeyDown, func(ev Event) { ev.PreventDefault() })
	doc.PressKey(KeyTab, ModNone)
	assert.Same(t, a, doc.ActiveElement())

	unbind()
	unbind()
	assert.Equal(t, 0, doc.ListenerCount(EventKeyDown))
	doc.PressKey(KeyTab, ModNone)
	assert.Same(t, b, doc.ActiveElement())
}

func TestDocument_EnterClicksButtons(t *testing.T) {
	doc := NewDocument()
	var clicks int
	a := doc.CreateElement("button", WithID("a"), WithOnClick(func(*Element) { clicks++ }))
	doc.Body().AddChild(a)

	doc.PressKey(KeyEnter, ModNone)
	assert.Equal(t, 0, clicks)

	a.Focus()
	doc.PressKey(KeyEnter, ModNone)
	doc.PressKey(KeySpace, ModNone)
	assert.Equal(t, 2, clicks)
}

func TestDocument_PointerDown(t *testing.T) {
	doc := NewDocument()
	a := doc.CreateElement("button", WithID("a"))
	label := doc.CreateElement("span", WithText("label"))
	focusable := doc.CreateElement("div", WithID("card"), WithTabIndex(-1), WithChildren(label))
	plain := doc.CreateElement("p")
	doc.Body().AddChild(a, focusable, plain)

	var seen []EventType
	doc.AddEventListener(EventPointerDown, func(ev Event) { seen = append(seen, ev.Type()) })
	doc.AddEventListener(EventMouseDown, func(ev Event) { seen = append(seen, ev.Type()) })

	a.Focus()
	doc.PointerDown(label)
	assert.Same(t, focusable, doc.ActiveElement())
	assert.Equal(t, []EventType{EventPointerDown, EventMouseDown}, seen)
	assert.Empty(t, doc.ScrolledIntoView()[1:], "pointer focus does not scroll")

	doc.PointerDown(plain)
	assert.Nil(t, doc.ActiveElement())

	a.AddEventListener(EventMouseDown, func(ev Event) { ev.PreventDefault() })
	doc.PointerDown(a)
	assert.Nil(t, doc.ActiveElement())

	var clicked bool
	plain.AddEventListener(EventClick, func(Event) { clicked = true })
	doc.Click(plain)
	assert.True(t, clicked)
}

func TestDocument_RemovingFocusedSubtreeDropsFocus(t *testing.T) {
	doc := NewDocument()
	a := doc.CreateElement("button", WithID("a"))
	wrap := doc.CreateElement("div", WithChildren(a))
	doc.Body().AddChild(wrap)
	a.Focus()

	var blurred bool
	a.AddEventListener(EventBlur, func(Event) { blurred = true })
	wrap.Remove()

	assert.Nil(t, doc.ActiveElement())
	assert.False(t, blurred)
	assert.False(t, a.IsConnected())
	assert.Nil(t, doc.GetByID("a"))
}

func TestDocument_Options(t *testing.T) {
	assert.True(t, NewDocument().SupportsInert())
	assert.False(t, NewDocument(WithInertSupport(false)).SupportsInert())
}
