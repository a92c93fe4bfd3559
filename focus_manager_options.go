package floating

// FocusManagerOption configures a FocusManager.
type FocusManagerOption func(*focusManagerConfig)

type focusManagerConfig struct {
	disabled        bool
	modal           bool
	order           Order
	initialIndex    int
	initialElement  *Element
	guards          bool
	returnFocus     bool
	dismissEnabled  bool
	dismissLabel    string
	closeOnFocusOut bool
	tabbable        TabbableQuery
	portal          *Portal
}

func defaultFocusManagerConfig() focusManagerConfig {
	return focusManagerConfig{
		modal:           true,
		order:           DefaultOrder,
		guards:          true,
		returnFocus:     true,
		closeOnFocusOut: true,
		tabbable:        DefaultTabbable,
	}
}

// WithModal traps focus inside the surface (default on).
func WithModal(modal bool) FocusManagerOption {
	return func(c *focusManagerConfig) {
		c.modal = modal
	}
}

// WithOrder sets the logical tab order. An empty order keeps the default.
func WithOrder(order Order) FocusManagerOption {
	return func(c *focusManagerConfig) {
		if len(order) > 0 {
			c.order = append(Order(nil), order...)
		}
	}
}

// WithInitialFocusIndex focuses the element at index i of the assembled tab
// order when the surface opens. A negative index disables initial focus.
func WithInitialFocusIndex(i int) FocusManagerOption {
	return func(c *focusManagerConfig) {
		c.initialIndex = i
		c.initialElement = nil
	}
}

// WithInitialFocusElement focuses el when the surface opens.
func WithInitialFocusElement(el *Element) FocusManagerOption {
	return func(c *focusManagerConfig) {
		c.initialElement = el
		c.initialIndex = 0
	}
}

// WithoutInitialFocus leaves focus where it is when the surface opens.
func WithoutInitialFocus() FocusManagerOption {
	return WithInitialFocusIndex(-1)
}

// WithGuards toggles the focus guards (default on). Documents without inert
// support always render them.
func WithGuards(enabled bool) FocusManagerOption {
	return func(c *focusManagerConfig) {
		c.guards = enabled
	}
}

// WithReturnFocus toggles focus restoration on close (default on).
func WithReturnFocus(enabled bool) FocusManagerOption {
	return func(c *focusManagerConfig) {
		c.returnFocus = enabled
	}
}

// WithVisuallyHiddenDismiss renders the dismiss buttons even when the
// manager is disabled and non-modal.
func WithVisuallyHiddenDismiss(enabled bool) FocusManagerOption {
	return func(c *focusManagerConfig) {
		c.dismissEnabled = enabled
	}
}

// WithVisuallyHiddenDismissLabel is WithVisuallyHiddenDismiss with a custom
// button label.
func WithVisuallyHiddenDismissLabel(label string) FocusManagerOption {
	return func(c *focusManagerConfig) {
		c.dismissEnabled = label != ""
		c.dismissLabel = label
	}
}

// WithCloseOnFocusOut closes the surface when focus leaves the floating tree
// (default on).
func WithCloseOnFocusOut(enabled bool) FocusManagerOption {
	return func(c *focusManagerConfig) {
		c.closeOnFocusOut = enabled
	}
}

// WithDisabled starts the manager disabled.
func WithDisabled(disabled bool) FocusManagerOption {
	return func(c *focusManagerConfig) {
		c.disabled = disabled
	}
}

// WithTabbable replaces the tabbable query.
func WithTabbable(q TabbableQuery) FocusManagerOption {
	return func(c *focusManagerConfig) {
		if q != nil {
			c.tabbable = q
		}
	}
}

// WithPortal declares that the floating element renders inside p.
func WithPortal(p *Portal) FocusManagerOption {
	return func(c *focusManagerConfig) {
		c.portal = p
	}
}

func (c *focusManagerConfig) label() string {
	if c.dismissLabel != "" {
		return c.dismissLabel
	}
	return DefaultDismissLabel
}
