package floating

// Attributes used to tag elements rendered by the focus engine.
const (
	// AttrFocusGuard marks guard elements so focus classification can
	// recognise them.
	AttrFocusGuard = "data-floating-ui-focus-guard"
	// AttrPortal marks portal container elements.
	AttrPortal = "data-floating-ui-portal"
	// AttrGuardType is "inside" for guards rendered by a focus manager and
	// "outside" for guards rendered by a portal.
	AttrGuardType = "data-type"
)

// HiddenStyle keeps an element focusable and out of sight.
const HiddenStyle = "border: 0; clip: rect(0 0 0 0); height: 1px; margin: -1px; overflow: hidden; padding: 0; position: fixed; white-space: nowrap; width: 1px; top: 0; left: 0"

// DefaultDismissLabel is the text of the visually hidden dismiss buttons.
const DefaultDismissLabel = "Dismiss"

// newFocusGuard creates a zero-size, keyboard-focusable boundary marker.
func newFocusGuard(doc *Document, guardType string, onFocus func(*FocusEvent)) *Element {
	g := doc.CreateElement("span",
		WithTabIndex(0),
		WithAttr(AttrFocusGuard, ""),
		WithAttr(AttrGuardType, guardType),
		WithAttr(AttrAriaHidden, "true"),
		WithAttr(AttrStyle, HiddenStyle),
	)
	g.AddEventListener(EventFocus, func(ev Event) {
		if fe, ok := ev.(*FocusEvent); ok {
			onFocus(fe)
		}
	})
	return g
}

// newDismissButton creates a visually hidden button that is reachable by
// screen readers but not by Tab.
func newDismissButton(doc *Document, label string, onClick func(Event)) *Element {
	b := doc.CreateElement("button",
		WithAttr(AttrType, "button"),
		WithTabIndex(-1),
		WithAttr(AttrStyle, HiddenStyle),
		WithText(label),
	)
	b.AddEventListener(EventClick, onClick)
	return b
}

// isOutsideEvent reports whether a focus event came from outside container.
func isOutsideEvent(ev *FocusEvent, container *Element) bool {
	return ev.RelatedTarget == nil || !container.Contains(ev.RelatedTarget)
}

// tabbableAfter returns the tabbable element of the document that follows
// anchor, skipping guards and anything inside skip.
func tabbableAfter(doc *Document, anchor, skip *Element) *Element {
	return adjacentOutside(doc, anchor, skip, false)
}

// tabbableBefore returns the tabbable element of the document that precedes
// anchor, skipping guards and anything inside skip.
func tabbableBefore(doc *Document, anchor, skip *Element) *Element {
	return adjacentOutside(doc, anchor, skip, true)
}

func adjacentOutside(doc *Document, anchor, skip *Element, backward bool) *Element {
	if doc == nil || anchor == nil {
		return nil
	}
	var order []*Element
	for _, el := range DefaultTabbable(doc.body) {
		if el == anchor || (!skip.Contains(el) && !el.HasAttr(AttrFocusGuard)) {
			order = append(order, el)
		}
	}
	if len(order) == 0 {
		return nil
	}
	return adjacentTabbable(doc.body, order, anchor, backward)
}
