package floating

import "sync"

// Scope owns side effects and guarantees their cleanup. Every listener,
// observer or binding acquired inside a scope is released exactly once when
// the scope is disposed, whichever path disposes it.
type Scope struct {
	mu       sync.Mutex
	cleanups []func()
	children []*Scope
	disposed bool
}

// NewScope creates an empty root scope.
func NewScope() *Scope {
	return &Scope{}
}

// OnCleanup registers fn to run when the scope is disposed. Cleanups run in
// reverse registration order. Registering on a disposed scope runs fn
// immediately.
func (s *Scope) OnCleanup(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
	s.mu.Unlock()
}

// Child creates a scope that is disposed together with s.
func (s *Scope) Child() *Scope {
	child := &Scope{}
	s.mu.Lock()
	if s.disposed {
		child.disposed = true
	} else {
		live := s.children[:0]
		for _, c := range s.children {
			if !c.Disposed() {
				live = append(live, c)
			}
		}
		s.children = append(live, child)
	}
	s.mu.Unlock()
	return child
}

// Disposed reports whether Dispose has run.
func (s *Scope) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// Dispose runs child scopes' cleanups and then this scope's cleanups.
// Calling Dispose again is a no-op.
func (s *Scope) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	children := s.children
	cleanups := s.cleanups
	s.children = nil
	s.cleanups = nil
	s.mu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

// Effect runs fn in a child scope now and again whenever any dependency
// changes. Before each re-run the previous run's scope is disposed, so
// cleanups registered by fn always pair with the run that acquired them.
func (s *Scope) Effect(fn func(run *Scope), deps ...Dependency) {
	var (
		mu  sync.Mutex
		cur *Scope
	)
	rerun := func() {
		if s.Disposed() {
			return
		}
		mu.Lock()
		prev := cur
		cur = s.Child()
		next := cur
		mu.Unlock()
		if prev != nil {
			prev.Dispose()
		}
		fn(next)
	}
	for _, dep := range deps {
		s.OnCleanup(dep.Subscribe(rerun))
	}
	rerun()
}
