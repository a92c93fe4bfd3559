package floating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScope_DisposeOrder(t *testing.T) {
	s := NewScope()
	var order []string
	s.OnCleanup(func() { order = append(order, "parent-1") })
	child := s.Child()
	child.OnCleanup(func() { order = append(order, "child") })
	s.OnCleanup(func() { order = append(order, "parent-2") })

	s.Dispose()
	s.Dispose()

	assert.Equal(t, []string{"child", "parent-2", "parent-1"}, order)
	assert.True(t, s.Disposed())
	assert.True(t, child.Disposed())
}

func TestScope_OnCleanupAfterDisposeRunsImmediately(t *testing.T) {
	s := NewScope()
	s.Dispose()

	var ran bool
	s.OnCleanup(func() { ran = true })
	s.OnCleanup(nil)
	assert.True(t, ran)
	assert.True(t, s.Child().Disposed())
}

func TestScope_Effect(t *testing.T) {
	type tc struct {
		sets      []int
		wantRuns  int
		wantClean int
	}

	tests := map[string]tc{
		"runs once immediately": {
			wantRuns: 1,
		},
		"re-runs on change": {
			sets:      []int{1, 2},
			wantRuns:  3,
			wantClean: 2,
		},
		"unchanged values do not re-run": {
			sets:      []int{0, 0, 5, 5},
			wantRuns:  2,
			wantClean: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dep := NewState(0)
			s := NewScope()
			var runs, cleans int
			s.Effect(func(run *Scope) {
				runs++
				run.OnCleanup(func() { cleans++ })
			}, dep)

			for _, v := range tt.sets {
				dep.Set(v)
			}
			assert.Equal(t, tt.wantRuns, runs)
			assert.Equal(t, tt.wantClean, cleans)

			s.Dispose()
			assert.Equal(t, tt.wantRuns, cleans)

			dep.Set(99)
			assert.Equal(t, tt.wantRuns, runs)
		})
	}
}

func TestScope_EffectDisposesPreviousRunFirst(t *testing.T) {
	dep := NewState("a")
	s := NewScope()
	var log []string
	s.Effect(func(run *Scope) {
		v := dep.Get()
		log = append(log, "run "+v)
		run.OnCleanup(func() { log = append(log, "clean "+v) })
	}, dep)

	dep.Set("b")
	assert.Equal(t, []string{"run a", "clean a", "run b"}, log)
}

func TestScope_NestedEffects(t *testing.T) {
	outer := NewState(0)
	inner := NewState(0)
	s := NewScope()
	var innerRuns, innerCleans int
	s.Effect(func(run *Scope) {
		run.Effect(func(sub *Scope) {
			innerRuns++
			sub.OnCleanup(func() { innerCleans++ })
		}, inner)
	}, outer)

	inner.Set(1)
	assert.Equal(t, 2, innerRuns)

	// Re-running the outer effect tears down the inner one with it.
	outer.Set(1)
	assert.Equal(t, 3, innerRuns)
	assert.Equal(t, 2, innerCleans)

	s.Dispose()
	assert.Equal(t, 3, innerCleans)
	inner.Set(2)
	assert.Equal(t, 3, innerRuns)
}
