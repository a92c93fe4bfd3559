package floating

import "sort"

// TabbableQuery returns the keyboard-reachable descendants of container in
// sequential navigation order. It must reflect the tree as it is when called.
type TabbableQuery func(container *Element) []*Element

// DefaultTabbable is the built-in TabbableQuery. Elements with a positive
// tabindex come first in ascending tabindex order, followed by tabindex-0
// and natively tabbable elements in document order. The container itself is
// never included.
func DefaultTabbable(container *Element) []*Element {
	if container == nil {
		return nil
	}
	type candidate struct {
		el       *Element
		tabIndex int
		pos      int
	}
	var (
		positive []candidate
		regular  []*Element
		pos      int
	)
	for _, child := range container.children {
		child.Walk(func(n *Element) bool {
			pos++
			if isInertOrHidden(n) {
				return false
			}
			if !IsTabbable(n) {
				return true
			}
			if ti := effectiveTabIndex(n); ti > 0 {
				positive = append(positive, candidate{el: n, tabIndex: ti, pos: pos})
			} else {
				regular = append(regular, n)
			}
			return true
		})
	}
	sort.SliceStable(positive, func(i, j int) bool {
		return positive[i].tabIndex < positive[j].tabIndex
	})
	out := make([]*Element, 0, len(positive)+len(regular))
	for _, c := range positive {
		out = append(out, c.el)
	}
	return append(out, regular...)
}

// IsFocusable reports whether el can receive focus at all, by keyboard or
// programmatically.
func IsFocusable(el *Element) bool {
	if el == nil || el.doc == nil || el == el.doc.root {
		return false
	}
	for n := el; n != nil; n = n.parent {
		if isInertOrHidden(n) {
			return false
		}
	}
	if _, ok := el.TabIndex(); ok {
		return !isDisabledControl(el)
	}
	return isNativelyFocusable(el)
}

// IsTabbable reports whether el takes part in sequential Tab navigation.
func IsTabbable(el *Element) bool {
	if !IsFocusable(el) {
		return false
	}
	return effectiveTabIndex(el) >= 0
}

func effectiveTabIndex(el *Element) int {
	if ti, ok := el.TabIndex(); ok {
		return ti
	}
	if isNativelyFocusable(el) {
		return 0
	}
	return -1
}

func isNativelyFocusable(el *Element) bool {
	switch el.tag {
	case "button", "select", "textarea", "summary", "details":
		return !isDisabledControl(el)
	case "input":
		return el.attrs[AttrType] != "hidden" && !isDisabledControl(el)
	case "a", "area":
		return el.HasAttr(AttrHref)
	case "audio", "video":
		return el.HasAttr("controls")
	}
	if v, ok := el.attrs["contenteditable"]; ok && v != "false" {
		return true
	}
	return false
}

func isDisabledControl(el *Element) bool {
	switch el.tag {
	case "button", "input", "select", "textarea", "fieldset", "optgroup", "option":
		return el.HasAttr(AttrDisabled)
	}
	return false
}

func isInertOrHidden(el *Element) bool {
	if el.HasAttr(AttrInert) || el.HasAttr(AttrHidden) {
		return true
	}
	return el.attrs[AttrStyle] == "display: none"
}
