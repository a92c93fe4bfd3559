package floating

import (
	"sync"

	"github.com/grindlemire/go-floating/internal/debug"
)

// AttrInertMarker tags every element hidden by a mask, whatever the mode.
const AttrInertMarker = "data-floating-ui-inert"

// MaskMode selects the attribute a mask writes on hidden elements.
type MaskMode int

const (
	// MaskMarkerOnly writes only the marker attribute.
	MaskMarkerOnly MaskMode = iota
	// MaskAriaHidden hides elements from assistive technology.
	MaskAriaHidden
	// MaskInert hides elements from assistive technology and removes them
	// from the tab order.
	MaskInert
)

func (m MaskMode) controlAttr() string {
	switch m {
	case MaskAriaHidden:
		return AttrAriaHidden
	case MaskInert:
		return AttrInert
	}
	return ""
}

func (m MaskMode) String() string {
	switch m {
	case MaskAriaHidden:
		return "aria-hidden"
	case MaskInert:
		return "inert"
	}
	return "marker"
}

// markRegistry holds the reference counts shared by every active mask of a
// document, one set per control attribute. An element keeps an attribute
// while any mask that wrote it still needs it.
type markRegistry struct {
	counters     map[string]map[*Element]int
	markers      map[*Element]int
	uncontrolled map[string]map[*Element]bool
	locks        int
}

func newMarkRegistry() *markRegistry {
	return &markRegistry{
		counters:     make(map[string]map[*Element]int),
		markers:      make(map[*Element]int),
		uncontrolled: make(map[string]map[*Element]bool),
	}
}

func (r *markRegistry) controlled(attr string) (map[*Element]int, map[*Element]bool) {
	if r.counters[attr] == nil {
		r.counters[attr] = make(map[*Element]int)
		r.uncontrolled[attr] = make(map[*Element]bool)
	}
	return r.counters[attr], r.uncontrolled[attr]
}

// MarkOthers hides every element that is neither inside, nor an ancestor of,
// one of the avoid elements, walking from the body down. Live regions stay
// visible. Elements that were already hidden by someone else keep their
// attribute when the mask is reverted. The returned cleanup is idempotent.
func (d *Document) MarkOthers(avoid []*Element, mode MaskMode) func() {
	reg := d.marks
	ctrl := mode.controlAttr()
	var counters map[*Element]int
	var uncontrolled map[*Element]bool
	if ctrl != "" {
		counters, uncontrolled = reg.controlled(ctrl)
	}

	keepSet := make(map[*Element]bool)
	stopSet := make(map[*Element]bool)
	var keep func(el *Element)
	keep = func(el *Element) {
		if el == nil || keepSet[el] {
			return
		}
		keepSet[el] = true
		keep(el.parent)
	}

	live := d.body.QueryAll(func(n *Element) bool { return n.HasAttr(AttrAriaLive) })
	all := append(append([]*Element{}, avoid...), live...)
	for _, el := range all {
		if el == nil || !d.body.Contains(el) {
			continue
		}
		stopSet[el] = true
		keep(el)
	}

	var hidden []*Element
	var deep func(parent *Element)
	deep = func(parent *Element) {
		if parent == nil || stopSet[parent] {
			return
		}
		for _, n := range parent.Children() {
			if n.tag == "script" {
				continue
			}
			if keepSet[n] {
				deep(n)
				continue
			}
			reg.markers[n]++
			hidden = append(hidden, n)
			if reg.markers[n] == 1 {
				n.SetAttr(AttrInertMarker, "")
			}
			if ctrl == "" {
				continue
			}
			v, ok := n.Attr(ctrl)
			alreadyHidden := ok && v != "false"
			counters[n]++
			if counters[n] == 1 && alreadyHidden {
				uncontrolled[n] = true
			}
			if !alreadyHidden {
				n.SetAttr(ctrl, "true")
			}
		}
	}
	deep(d.body)
	reg.locks++
	debug.Log("Document.MarkOthers: mode=%s hidden=%d locks=%d", mode, len(hidden), reg.locks)

	var once sync.Once
	return func() {
		once.Do(func() {
			for _, el := range hidden {
				reg.markers[el]--
				if ctrl != "" {
					counters[el]--
					if counters[el] <= 0 {
						if !uncontrolled[el] {
							el.RemoveAttr(ctrl)
						}
						delete(uncontrolled, el)
						delete(counters, el)
					}
				}
				if reg.markers[el] <= 0 {
					el.RemoveAttr(AttrInertMarker)
					delete(reg.markers, el)
				}
			}
			reg.locks--
			if reg.locks == 0 {
				reg.counters = make(map[string]map[*Element]int)
				reg.markers = make(map[*Element]int)
				reg.uncontrolled = make(map[string]map[*Element]bool)
			}
			debug.Log("Document.MarkOthers: reverted %d elements, locks=%d", len(hidden), reg.locks)
		})
	}
}
