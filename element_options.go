package floating

import "strconv"

// Option configures an Element.
type Option func(*Element)

// WithID sets the id attribute.
func WithID(id string) Option {
	return func(e *Element) {
		e.attrs["id"] = id
	}
}

// WithAttr sets an arbitrary attribute.
func WithAttr(name, value string) Option {
	return func(e *Element) {
		e.attrs[name] = value
	}
}

// WithTabIndex sets the tabindex attribute.
func WithTabIndex(n int) Option {
	return func(e *Element) {
		e.attrs[AttrTabIndex] = strconv.Itoa(n)
	}
}

// WithText sets the element's own text.
func WithText(text string) Option {
	return func(e *Element) {
		e.text = text
	}
}

// WithRole sets the role attribute.
func WithRole(role string) Option {
	return func(e *Element) {
		e.attrs[AttrRole] = role
	}
}

// WithAutofocus marks the element as the preferred initial focus target
// among its container's tabbable content.
func WithAutofocus() Option {
	return func(e *Element) {
		e.attrs[AttrAutofocus] = ""
	}
}

// WithDisabledAttr marks a form control as disabled.
func WithDisabledAttr() Option {
	return func(e *Element) {
		e.attrs[AttrDisabled] = ""
	}
}

// WithChildren appends children at construction time.
func WithChildren(children ...*Element) Option {
	return func(e *Element) {
		for _, c := range children {
			c.parent = e
			e.children = append(e.children, c)
		}
	}
}

// WithOnClick registers a click listener.
func WithOnClick(fn func(*Element)) Option {
	return func(e *Element) {
		e.AddEventListener(EventClick, func(Event) { fn(e) })
	}
}

// WithOnFocus registers a focus listener.
func WithOnFocus(fn func(*Element, *FocusEvent)) Option {
	return func(e *Element) {
		e.AddEventListener(EventFocus, func(ev Event) {
			if fe, ok := ev.(*FocusEvent); ok {
				fn(e, fe)
			}
		})
	}
}
