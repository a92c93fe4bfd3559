package floating

import (
	"fmt"
	"strings"
)

// OrderItem is one entry of a focus manager's logical tab order.
type OrderItem string

const (
	OrderReference OrderItem = "reference"
	OrderFloating  OrderItem = "floating"
	OrderContent   OrderItem = "content"
)

// Order is a permutation or subset of reference, floating and content.
type Order []OrderItem

// DefaultOrder traps focus within the floating element's content.
var DefaultOrder = Order{OrderContent}

// Has reports whether the order contains item.
func (o Order) Has(item OrderItem) bool {
	for _, it := range o {
		if it == item {
			return true
		}
	}
	return false
}

// At returns the item at i, or "" when out of range.
func (o Order) At(i int) OrderItem {
	if i < 0 || i >= len(o) {
		return ""
	}
	return o[i]
}

// String returns the order as a comma-separated list.
func (o Order) String() string {
	parts := make([]string, len(o))
	for i, it := range o {
		parts[i] = string(it)
	}
	return strings.Join(parts, ",")
}

// ParseOrder parses a list such as "reference,content".
func ParseOrder(s string) (Order, error) {
	var out Order
	seen := map[OrderItem]bool{}
	for _, raw := range strings.Split(s, ",") {
		item := OrderItem(strings.TrimSpace(raw))
		switch item {
		case OrderReference, OrderFloating, OrderContent:
		default:
			return nil, fmt.Errorf("unknown order item %q", raw)
		}
		if seen[item] {
			return nil, fmt.Errorf("duplicate order item %q", item)
		}
		seen[item] = true
		out = append(out, item)
	}
	return out, nil
}

// TabbableContent returns the tabbable descendants of container. When any
// of them carries the autofocus attribute, only those are returned so a
// caller can pick the initial target without changing the order.
func TabbableContent(query TabbableQuery, container *Element) []*Element {
	if container == nil {
		return nil
	}
	if query == nil {
		query = DefaultTabbable
	}
	elements := query(container)
	var autofocus []*Element
	for _, el := range elements {
		if el.HasAttr(AttrAutofocus) {
			autofocus = append(autofocus, el)
		}
	}
	if len(autofocus) > 0 {
		return autofocus
	}
	return elements
}

// AssembleTabOrder flattens order into concrete focus targets: reference and
// floating become the elements themselves, dropped when absent, and content
// expands to the floating element's current tabbable content. Nothing is
// cached; every call queries the tree afresh.
func AssembleTabOrder(order Order, reference, floating *Element, query TabbableQuery) []*Element {
	return assembleTabOrder(order, reference, floating, query, true)
}

func assembleTabOrder(order Order, reference, floating *Element, query TabbableQuery, autofocus bool) []*Element {
	if query == nil {
		query = DefaultTabbable
	}
	var out []*Element
	for _, item := range order {
		switch item {
		case OrderReference:
			if reference != nil {
				out = append(out, reference)
			}
		case OrderFloating:
			if floating != nil {
				out = append(out, floating)
			}
		case OrderContent:
			if autofocus {
				out = append(out, TabbableContent(query, floating)...)
			} else if floating != nil {
				out = append(out, query(floating)...)
			}
		}
	}
	return out
}
