package floating

// MutationType names the kind of change a MutationRecord describes.
type MutationType string

const (
	MutationChildList  MutationType = "childList"
	MutationAttributes MutationType = "attributes"
)

// MutationRecord describes one change to the document tree.
type MutationRecord struct {
	Type          MutationType
	Target        *Element
	AttributeName string
	Added         []*Element
	Removed       []*Element
}

// MutationObserverInit selects which mutations an observer receives.
type MutationObserverInit struct {
	ChildList  bool
	Attributes bool
	Subtree    bool
}

// MutationObserver batches mutation records for observed targets and
// delivers them in a microtask.
type MutationObserver struct {
	doc      *Document
	callback func([]MutationRecord)
	targets  []observedTarget
	pending  []MutationRecord
	queued   bool
}

type observedTarget struct {
	el   *Element
	init MutationObserverInit
}

// NewMutationObserver creates an observer that calls fn with batched records.
func (d *Document) NewMutationObserver(fn func([]MutationRecord)) *MutationObserver {
	return &MutationObserver{doc: d, callback: fn}
}

// Observe starts observing target. Observing the same target again replaces
// its options.
func (o *MutationObserver) Observe(target *Element, init MutationObserverInit) {
	if target == nil {
		return
	}
	for i, t := range o.targets {
		if t.el == target {
			o.targets[i].init = init
			return
		}
	}
	if len(o.targets) == 0 {
		o.doc.observers = append(o.doc.observers, o)
	}
	o.targets = append(o.targets, observedTarget{el: target, init: init})
}

// Disconnect stops observation and drops undelivered records. Calling it
// more than once is harmless.
func (o *MutationObserver) Disconnect() {
	o.targets = nil
	o.pending = nil
	obs := o.doc.observers
	for i, cur := range obs {
		if cur == o {
			o.doc.observers = append(obs[:i:i], obs[i+1:]...)
			break
		}
	}
}

// TakeRecords returns and clears undelivered records.
func (o *MutationObserver) TakeRecords() []MutationRecord {
	out := o.pending
	o.pending = nil
	return out
}

func (o *MutationObserver) matches(rec MutationRecord) bool {
	for _, t := range o.targets {
		if rec.Target != t.el && !(t.init.Subtree && t.el.Contains(rec.Target)) {
			continue
		}
		switch rec.Type {
		case MutationChildList:
			if t.init.ChildList {
				return true
			}
		case MutationAttributes:
			if t.init.Attributes {
				return true
			}
		}
	}
	return false
}

func (o *MutationObserver) enqueue(rec MutationRecord) {
	o.pending = append(o.pending, rec)
	if o.queued {
		return
	}
	o.queued = true
	o.doc.loop.QueueMicrotask(func() {
		o.queued = false
		records := o.TakeRecords()
		if len(records) > 0 && len(o.targets) > 0 {
			o.callback(records)
		}
	})
}

func (d *Document) recordMutation(rec MutationRecord) {
	if len(d.observers) == 0 {
		return
	}
	observers := make([]*MutationObserver, len(d.observers))
	copy(observers, d.observers)
	for _, o := range observers {
		if o.matches(rec) {
			o.enqueue(rec)
		}
	}
}
